// Package cliflag groups pflag flags into named sections for help output.
package cliflag

import (
	"strings"

	"github.com/spf13/pflag"
)

// NamedFlagSets stores named flag sets in the order they were added.
type NamedFlagSets struct {
	// Order is the ordered list of flag set names.
	Order []string
	// FlagSets holds the flag sets by name.
	FlagSets map[string]*pflag.FlagSet
}

// FlagSet returns the flag set with the given name, creating it on first use.
func (nfs *NamedFlagSets) FlagSet(name string) *pflag.FlagSet {
	if nfs.FlagSets == nil {
		nfs.FlagSets = map[string]*pflag.FlagSet{}
	}
	if _, ok := nfs.FlagSets[name]; !ok {
		nfs.FlagSets[name] = pflag.NewFlagSet(name, pflag.ExitOnError)
		nfs.Order = append(nfs.Order, name)
	}
	return nfs.FlagSets[name]
}

// WordSepNormalizeFunc normalizes "_" separators in flag names to "-".
func WordSepNormalizeFunc(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if strings.Contains(name, "_") {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	}
	return pflag.NormalizedName(name)
}
