// Package cmd implements the parleyctl command line tool.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kiosk404/parley/internal/parleyctl/client"
	"github.com/kiosk404/parley/pkg/utils/cliflag"
)

const defaultServer = "http://127.0.0.1:11750"

var (
	serverURL string
	authToken string
)

// NewDefaultParleyCtlCommand creates the `parleyctl` command with default arguments.
func NewDefaultParleyCtlCommand() *cobra.Command {
	cmds := &cobra.Command{
		Use:   "parleyctl",
		Short: "parleyctl drives round-table conversations on a parleyd gateway",
		Long: `parleyctl is the CLI tool for the parleyd conversation gateway.

It starts and continues round-table discussions between the configured
LLM agents, follows the event stream live, stops running sessions, and
inspects stored transcripts and usage estimates.`,
		Run: runHelp,
	}

	flags := cmds.PersistentFlags()
	flags.SetNormalizeFunc(cliflag.WordSepNormalizeFunc)

	flags.StringVarP(&serverURL, "server", "s", defaultServer, "Base URL of the parleyd gateway.")
	flags.StringVar(&authToken, "token", os.Getenv("PARLEY_GATEWAY_TOKEN"), "Bearer token for the gateway (defaults to PARLEY_GATEWAY_TOKEN).")

	cmds.AddCommand(NewCmdChat())
	cmds.AddCommand(NewCmdList())
	cmds.AddCommand(NewCmdShow())
	cmds.AddCommand(NewCmdStop())
	cmds.AddCommand(NewCmdUsage())

	return cmds
}

func newClient() *client.Client {
	return client.New(serverURL, authToken, nil)
}

func runHelp(cmd *cobra.Command, args []string) {
	_ = cmd.Help()
}
