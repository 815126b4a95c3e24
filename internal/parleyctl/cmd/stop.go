package cmd

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

var stopExample = heredoc.Doc(`
	# Stop one running conversation
	parleyctl stop 2f9c41d8

	# Stop every running conversation
	parleyctl stop`)

// NewCmdStop returns the 'stop' sub command.
func NewCmdStop() *cobra.Command {
	return &cobra.Command{
		Use:     "stop [CONVERSATION_ID]",
		Short:   "Stop a running conversation, or all of them",
		Example: stopExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return runStop(id)
		},
	}
}

func runStop(id string) error {
	ok, err := newClient().StopChat(context.Background(), id)
	if err != nil {
		return err
	}

	if ok {
		if id == "" {
			fmt.Println("Stop requested for all running conversations.")
		} else {
			fmt.Printf("Stop requested for conversation %s.\n", id)
		}
	}

	return nil
}
