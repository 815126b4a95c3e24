// Package app builds the cobra command scaffolding shared by the parley
// binaries: sectioned flags, config file loading through viper, and a
// uniform run entry point.
package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiosk404/parley/pkg/utils/cliflag"
)

// RunFunc is the application's startup callback.
type RunFunc func(basename string) error

// CliOptions abstracts the option structs that can configure an App
// from the command line.
type CliOptions interface {
	// Flags returns the flags grouped into named sections.
	Flags() cliflag.NamedFlagSets
	// Validate checks the options and returns all violations.
	Validate() []error
}

// CompleteableOptions is implemented by options that fill defaults after
// flag and config binding.
type CompleteableOptions interface {
	Complete() error
}

// App is a command line application skeleton.
type App struct {
	basename    string
	name        string
	description string
	options     CliOptions
	runFunc     RunFunc
	noConfig    bool
	args        cobra.PositionalArgs
	cmd         *cobra.Command
}

// Option configures an App.
type Option func(*App)

// WithOptions attaches command line options to the application.
func WithOptions(opts CliOptions) Option {
	return func(a *App) { a.options = opts }
}

// WithRunFunc sets the application startup callback.
func WithRunFunc(run RunFunc) Option {
	return func(a *App) { a.runFunc = run }
}

// WithDescription sets the long description shown in help output.
func WithDescription(desc string) Option {
	return func(a *App) { a.description = desc }
}

// WithNoConfig disables the --config flag and config file loading.
func WithNoConfig() Option {
	return func(a *App) { a.noConfig = true }
}

// WithDefaultValidArgs rejects any positional arguments.
func WithDefaultValidArgs() Option {
	return func(a *App) {
		a.args = func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				if len(arg) > 0 {
					return fmt.Errorf("%q does not take any arguments, got %q", cmd.CommandPath(), args)
				}
			}
			return nil
		}
	}
}

// NewApp creates an App with the given name, binary basename and options.
func NewApp(name, basename string, opts ...Option) *App {
	a := &App{
		name:     name,
		basename: basename,
	}
	for _, o := range opts {
		o(a)
	}
	a.buildCommand()
	return a
}

func (a *App) buildCommand() {
	cmd := &cobra.Command{
		Use:           a.basename,
		Short:         a.name,
		Long:          a.description,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          a.args,
	}
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	cmd.Flags().SortFlags = true
	cmd.Flags().SetNormalizeFunc(cliflag.WordSepNormalizeFunc)

	if a.options != nil {
		fss := a.options.Flags()
		for _, name := range fss.Order {
			cmd.Flags().AddFlagSet(fss.FlagSets[name])
		}
	}

	if !a.noConfig {
		addConfigFlag(a.basename, cmd.Flags())
	}

	cmd.RunE = a.runCommand
	a.cmd = cmd
}

func (a *App) runCommand(cmd *cobra.Command, args []string) error {
	if !a.noConfig {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		if a.options != nil {
			if err := viper.Unmarshal(a.options); err != nil {
				return err
			}
		}
	}

	if a.options != nil {
		if completeable, ok := a.options.(CompleteableOptions); ok {
			if err := completeable.Complete(); err != nil {
				return err
			}
		}
		if errs := a.options.Validate(); len(errs) > 0 {
			return aggregateErrors(errs)
		}
	}

	if a.runFunc != nil {
		return a.runFunc(a.basename)
	}
	return nil
}

// Run launches the application and exits non-zero on error.
func (a *App) Run() {
	if err := a.cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}

// Command exposes the underlying cobra command, mainly for tests.
func (a *App) Command() *cobra.Command {
	return a.cmd
}

func aggregateErrors(errs []error) error {
	msg := ""
	for i, err := range errs {
		if i > 0 {
			msg += "; "
		}
		msg += err.Error()
	}
	return fmt.Errorf("%s", msg)
}
