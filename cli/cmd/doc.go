// Package cmd implements the curly subcommands.
//
// Each command is a kong command struct with a Run(context.Context) error
// method. Commands read their input and write their output through the
// streams stored in the context by [WithStreams], falling back to the
// process standard streams.
package cmd

import (
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/curly/lang"
)

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file written by [Init].
	ConfigIdentifier = "config"
)

// Vars returns the kong variables referenced by command flag defaults.
func Vars() kong.Vars {
	return kong.Vars{
		"maxDepth": strconv.Itoa(lang.DefaultMaxDepth),
	}
}
