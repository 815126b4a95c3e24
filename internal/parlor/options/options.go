package options

import (
	genericoptions "github.com/kiosk404/parley/internal/pkg/options"
	"github.com/kiosk404/parley/internal/pkg/server"
	"github.com/kiosk404/parley/pkg/utils/cliflag"
	"github.com/kiosk404/parley/pkg/utils/json"
)

type Options struct {
	GenericServerRunOptions *genericoptions.ServerRunOptions `json:"serving" mapstructure:"serving"`
	ChatOptions             *genericoptions.ChatOptions      `json:"chat"    mapstructure:"chat"`
	RosterOptions           *genericoptions.RosterOptions    `json:"roster"  mapstructure:"roster"`
}

func (o *Options) Flags() (fss cliflag.NamedFlagSets) {
	o.GenericServerRunOptions.AddFlags(fss.FlagSet("generic"))
	o.ChatOptions.AddFlags(fss.FlagSet("chat"))
	o.RosterOptions.AddFlags(fss.FlagSet("roster"))
	return fss
}

func NewOptions() *Options {
	return &Options{
		GenericServerRunOptions: genericoptions.NewServerRunOptions(),
		ChatOptions:             genericoptions.NewChatOptions(),
		RosterOptions:           genericoptions.NewRosterOptions(),
	}
}

// ApplyTo applies the run options to the method receiver and returns self.
func (o *Options) ApplyTo(c *server.Config) error {
	return nil
}

// Validate checks all sub-options.
func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.GenericServerRunOptions.Validate()...)
	errs = append(errs, o.ChatOptions.Validate()...)
	errs = append(errs, o.RosterOptions.Validate()...)
	return errs
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)

	return string(data)
}

// Complete set default Options.
func (o *Options) Complete() error {
	return nil
}
