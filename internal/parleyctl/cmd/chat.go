package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"

	"github.com/kiosk404/parley/internal/parleyctl/client"
)

const wrapWidth = 88

var agentColors = []*color.Color{
	color.New(color.FgCyan, color.Bold),
	color.New(color.FgMagenta, color.Bold),
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

var chatExample = heredoc.Doc(`
	# Start a fresh discussion with the default turn budget
	parleyctl chat "Should we colonize Mars?"

	# Start a short discussion
	parleyctl chat --turns 4 "The ethics of AI art"

	# Continue a stored conversation with a steering message
	parleyctl chat --continue 2f9c41d8 "What about the costs?"`)

// NewCmdChat returns the 'chat' sub command.
func NewCmdChat() *cobra.Command {
	var (
		turns          int
		conversationID string
	)

	cmd := &cobra.Command{
		Use:     "chat TOPIC",
		Short:   "Start or continue a round-table discussion and follow it live",
		Example: chatExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(args[0], turns, conversationID)
		},
	}

	cmd.Flags().IntVarP(&turns, "turns", "t", 0, "Agent turn budget (0 uses the server default).")
	cmd.Flags().StringVarP(&conversationID, "continue", "c", "", "Continue the stored conversation with this id.")

	return cmd
}

func runChat(topic string, turns int, conversationID string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := newClient()
	req := client.StreamRequest{
		Topic:          topic,
		Turns:          turns,
		ConversationID: conversationID,
		IsContinuation: conversationID != "",
	}

	colors := map[string]*color.Color{}
	err := c.StreamChat(ctx, req, func(ev client.Event) {
		switch ev.Type {
		case "start":
			fmt.Printf("Discussion: %s (%d turns)\n\n", ev.Data.Topic, ev.Data.Turns)
		case "message":
			printMessage(colors, ev.Data.AI, ev.Data.Message, ev.Data.Turn)
		case "complete":
			fmt.Printf("\nConversation %s finished (%d messages).\n", ev.Data.ConversationID, ev.Data.TotalMessages)
		case "stopped":
			fmt.Printf("\nConversation %s stopped.\n", ev.Data.ConversationID)
		case "error":
			color.Red("\nAgent %s failed: %s", ev.Data.AI, ev.Data.Error)
		}
	})
	if err != nil && ctx.Err() == nil {
		return err
	}

	return nil
}

func printMessage(colors map[string]*color.Color, author, text string, turn int) {
	cl, ok := colors[author]
	if !ok {
		cl = agentColors[len(colors)%len(agentColors)]
		colors[author] = cl
	}

	cl.Printf("[%d] %s:\n", turn, author)
	fmt.Println(wordwrap.WrapString(text, wrapWidth))
	fmt.Println()
}
