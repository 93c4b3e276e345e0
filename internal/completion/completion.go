// Package completion provides CLI tab-completion for cardinal.
//
// The binary itself handles completions: when invoked with COMP_LINE set
// (by the shell), it outputs matching completions and exits.
// Works across bash, zsh, and fish with a one-time install.
package completion

import (
	"os"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/install"
	"github.com/posener/complete/v2/predict"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/filter"
)

const name = "cardinal"

var (
	mapFiles  = predict.Files("*.y*ml")
	logLevels = predict.Set{"trace", "debug", "info", "warn", "error"}
)

// global flags accepted by every subcommand
func withGlobal(flags map[string]complete.Predictor) map[string]complete.Predictor {
	out := map[string]complete.Predictor{
		"config":    predict.Files("*.yaml"),
		"log-level": logLevels,
		"no-color":  predict.Nothing,
	}
	for k, v := range flags {
		out[k] = v
	}
	return out
}


// command defines the full cardinal CLI completion tree.
var command = &complete.Command{
	Sub: map[string]*complete.Command{
		"validate": {
			Flags: withGlobal(map[string]complete.Predictor{
				"info":   predict.Nothing,
				"format": predict.Set{"text", "json"},
			}),
			Args: mapFiles,
		},
		"probe": {
			Flags: withGlobal(map[string]complete.Predictor{
				"at":           predict.Something,
				"team":         predict.Something,
				"material":     predict.Something,
				"holding":      predict.Something,
				"player-state": predict.Set(filter.PlayerStateNames()),
				"format":       predict.Set{"text", "json"},
			}),
			Args: mapFiles,
		},
		"watch": {
			Flags: withGlobal(map[string]complete.Predictor{
				"dir":      predict.Dirs("*"),
				"debounce": predict.Something,
			}),
		},
		"completion": {Flags: map[string]complete.Predictor{"install": predict.Nothing, "uninstall": predict.Nothing}},
		"version":    {Flags: map[string]complete.Predictor{"json": predict.Nothing}},
		"help":       {},
	},
}

// Run checks if the binary was invoked for shell completion.
// If COMP_LINE is set, it outputs completions and exits (never returns).
// Otherwise it returns false and the program continues normally.
func Run() bool {
	if os.Getenv("COMP_LINE") != "" || os.Getenv("COMP_INSTALL") != "" || os.Getenv("COMP_UNINSTALL") != "" {
		command.Complete(name)
		return true
	}
	return false
}

// Install sets up shell completion for the detected shells.
func Install() error {
	return install.Install(name)
}

// Uninstall removes shell completion for the detected shells.
func Uninstall() error {
	return install.Uninstall(name)
}

// IsInstalled reports whether shell completion is already set up.
func IsInstalled() bool {
	return install.IsInstalled(name)
}
