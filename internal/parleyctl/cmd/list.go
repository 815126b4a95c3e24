package cmd

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var listExample = heredoc.Doc(`
	# List stored conversations, newest first
	parleyctl list`)

// NewCmdList returns the 'list' sub command.
func NewCmdList() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List stored conversations",
		Example: listExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList()
		},
	}
}

func runList() error {
	summaries, err := newClient().ListConversations(context.Background())
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Println("No stored conversations.")
		return nil
	}

	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("ID", "CREATED", "MESSAGES", "TOPIC", "LAST MESSAGE")
	for _, s := range summaries {
		table.AddRow(s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.MessageCount, s.Topic, s.LastMessage)
	}
	fmt.Println(table)

	return nil
}
