package cmd

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var usageExample = heredoc.Doc(`
	# Print the estimated per-agent usage across stored conversations
	parleyctl usage`)

// NewCmdUsage returns the 'usage' sub command.
func NewCmdUsage() *cobra.Command {
	return &cobra.Command{
		Use:     "usage",
		Short:   "Print the estimated usage and cost per agent",
		Example: usageExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsage()
		},
	}
}

func runUsage() error {
	report, err := newClient().Usage(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Conversations: %d, messages: %d\n\n", report.Conversations, report.TotalMessages)

	if len(report.Agents) == 0 {
		fmt.Println("No agent messages recorded.")
		return nil
	}

	table := uitable.New()
	table.AddRow("AGENT", "MESSAGES", "EST. TOKENS", "EST. COST (USD)")
	for _, a := range report.Agents {
		table.AddRow(a.Name, a.Messages, a.EstimatedTokens, fmt.Sprintf("%.4f", a.EstimatedCost))
	}
	fmt.Println(table)

	return nil
}
