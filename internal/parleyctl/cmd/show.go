package cmd

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var showExample = heredoc.Doc(`
	# Print the full transcript of a stored conversation
	parleyctl show 2f9c41d8`)

// NewCmdShow returns the 'show' sub command.
func NewCmdShow() *cobra.Command {
	return &cobra.Command{
		Use:     "show CONVERSATION_ID",
		Short:   "Print the full transcript of a stored conversation",
		Example: showExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(args[0])
		},
	}
}

func runShow(id string) error {
	conv, err := newClient().GetConversation(context.Background(), id)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	bold.Printf("%s\n", conv.Topic)
	fmt.Printf("%s · %d messages · created %s\n\n", conv.ID, len(conv.Messages), conv.CreatedAt.Format("2006-01-02 15:04"))

	colors := map[string]*color.Color{}
	for _, m := range conv.Messages {
		printMessage(colors, m.Author, m.Text, m.Turn)
	}

	return nil
}
