package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFlagName = "config"

var cfgFile string

// addConfigFlag wires the --config flag and the viper config file lookup
// for the given binary basename. Environment variables with the PARLEY_
// prefix override file values.
func addConfigFlag(basename string, fs *pflag.FlagSet) {
	fs.StringVarP(&cfgFile, configFlagName, "c", cfgFile,
		"Read configuration from the specified FILE, supporting JSON, YAML and TOML formats.")

	viper.AutomaticEnv()
	viper.SetEnvPrefix(strings.ReplaceAll(strings.ToUpper(basename), "-", "_"))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	cobra.OnInitialize(func() {
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath(".")
			if home, err := os.UserHomeDir(); err == nil {
				viper.AddConfigPath(filepath.Join(home, "."+basename))
			}
			viper.AddConfigPath(filepath.Join("/etc", basename))
			viper.SetConfigName(basename)
		}

		if err := viper.ReadInConfig(); err != nil {
			// Missing config files are fine; defaults and flags apply.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
				fmt.Fprintf(os.Stderr, "Error: failed to read configuration file %s: %v\n", cfgFile, err)
				os.Exit(1)
			}
		}
	})
}
