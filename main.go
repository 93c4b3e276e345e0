package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/completion"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/config"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/logger"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/mapconf"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/match"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/tui"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/types"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

// Version is set at build time via ldflags: -X main.Version=x.y.z
var Version = "1.0.0"

var log = logger.New("main")

// Exit codes
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	// The shell invokes the binary itself for completions.
	if completion.Run() {
		return
	}

	// Check for subcommands first
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "validate":
			os.Exit(runValidate(os.Args[2:], os.Stdout))
		case "probe":
			os.Exit(runProbe(os.Args[2:], os.Stdout))
		case "watch":
			os.Exit(runWatch(os.Args[2:], os.Stdout))
		case "completion":
			os.Exit(runCompletion(os.Args[2:]))
		case "help", "-h", "--help":
			printUsage(os.Stdout)
			return
		case "version", "-v", "--version":
			os.Exit(runVersion(os.Args[2:], os.Stdout))
		default:
			tui.PrintError(fmt.Sprintf("unknown command %q", os.Args[1]))
			printUsage(os.Stderr)
			os.Exit(exitUsage)
		}
	}

	// No subcommand - show help
	printUsage(os.Stdout)
}

// =============================================================================
// Configuration
// =============================================================================

// commonFlags are accepted by every command that loads maps.
type commonFlags struct {
	configPath string
	logLevel   string
	noColor    bool
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	c := &commonFlags{}
	fs.StringVar(&c.configPath, "config", config.DefaultConfigPath(), "Path to configuration file")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	fs.BoolVar(&c.noColor, "no-color", false, "Disable colored output")
	return c
}

// load reads the config file, then applies CARDINAL_* variables, flags and
// any command specific overrides in that order. Logging and styling are
// configured from the result.
func (c *commonFlags) load(overrides ...func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	env.Apply(cfg)

	if c.logLevel != "" {
		cfg.Log.Level = types.LogLevel(strings.ToLower(c.logLevel))
	}
	if c.noColor {
		cfg.Log.NoColor = true
	}
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.SetGlobalLevelFromString(string(cfg.Log.Level))
	if cfg.Log.NoColor {
		logger.SetColored(false)
		tui.SetPlainMode(true)
	} else {
		logger.AutoColor()
	}
	return cfg, nil
}

func matchOptions(cfg *config.Config) (match.Options, error) {
	fatal, err := cfg.Engine.FatalKinds()
	if err != nil {
		return match.Options{}, err
	}
	return match.Options{
		Seed:             cfg.Engine.Seed,
		CaseSensitiveIDs: cfg.Engine.CaseSensitiveIDs,
		Fatal:            fatal,
	}, nil
}

func parseFormat(s string) (types.OutputFormat, error) {
	f := types.OutputFormat(strings.ToLower(s))
	if !f.Valid() {
		return "", fmt.Errorf("unknown format %q (valid: text, json)", s)
	}
	return f, nil
}

// expandMapPaths replaces every directory in paths by the map files it
// holds, in name order.
func expandMapPaths(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, err
		}
		var names []string
		for _, e := range entries {
			if !e.IsDir() && mapconf.IsMapFile(e.Name()) {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			files = append(files, filepath.Join(p, name))
		}
	}
	return files, nil
}

// =============================================================================
// validate
// =============================================================================

type fileReport struct {
	File  string `json:"file"`
	Error string `json:"error,omitempty"`
	mapconf.LintResult
}

// runValidate handles the validate subcommand
func runValidate(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	common := addCommonFlags(fs)
	showInfo := fs.Bool("info", false, "Show informational messages")
	format := fs.String("format", string(types.OutputText), "Output format: text or json")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	outFmt, err := parseFormat(*format)
	if err != nil {
		tui.PrintError(err.Error())
		return exitUsage
	}
	cfg, err := common.load()
	if err != nil {
		tui.PrintError(err.Error())
		return exitFail
	}
	opts, err := matchOptions(cfg)
	if err != nil {
		tui.PrintError(err.Error())
		return exitFail
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{cfg.Maps.Dir}
	}
	files, err := expandMapPaths(paths)
	if err != nil {
		tui.PrintError(err.Error())
		return exitFail
	}
	if len(files) == 0 {
		tui.PrintWarning("no map files found in " + strings.Join(paths, ", "))
		return exitOK
	}

	linter := mapconf.NewLinter(opts)
	reports := make([]fileReport, 0, len(files))
	errs, warns := 0, 0
	for _, file := range files {
		log.Debug("Linting %s", file)
		report := fileReport{File: file}
		result, err := linter.LintFile(file)
		if err != nil {
			report.Error = err.Error()
			errs++
		} else {
			report.LintResult = result
			errs += result.Errors
			warns += result.Warns
		}
		reports = append(reports, report)
	}

	if outFmt.IsJSON() {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			tui.PrintError(err.Error())
			return exitFail
		}
	} else {
		for _, r := range reports {
			fmt.Fprintln(stdout, tui.Separator(r.File))
			if r.Error != "" {
				fmt.Fprintf(stdout, "  %s\n", r.Error)
				continue
			}
			fmt.Fprint(stdout, r.FormatIssues(*showInfo))
		}
		fmt.Fprintln(stdout)
		switch {
		case errs > 0:
			fmt.Fprintf(stdout, "%s %d error(s), %d warning(s)\n", tui.StyleError.Render(tui.IconCross), errs, warns)
		case warns > 0:
			fmt.Fprintf(stdout, "%s %d warning(s)\n", tui.StyleWarning.Render(tui.IconWarning), warns)
		default:
			fmt.Fprintf(stdout, "%s All %d map(s) valid\n", tui.StyleSuccess.Render(tui.IconCheck), len(files))
		}
	}

	if errs > 0 {
		return exitFail
	}
	if len(fs.Args()) == 0 && cfg.Maps.Watch {
		return watchMaps(cfg, opts, 0, stdout)
	}
	return exitOK
}

// =============================================================================
// probe
// =============================================================================

type probeVerdict struct {
	Type    string `json:"type"`
	Verdict string `json:"verdict"`
	Rule    string `json:"rule,omitempty"`
}

// runProbe loads one map and reports what each applied rule set decides for
// a synthetic player at a location.
func runProbe(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("probe", flag.ContinueOnError)
	common := addCommonFlags(fs)
	at := fs.String("at", "0,0,0", "Probe location as x,y,z")
	team := fs.String("team", "", "Team of the probing player")
	material := fs.String("material", "", "Material of the block at the location")
	holding := fs.String("holding", "", "Material held by the player")
	states := fs.StringSlice("player-state", nil, "Player state (crouching, sprinting, flying, can-fly); repeatable")
	format := fs.String("format", string(types.OutputText), "Output format: text or json")
	showMetrics := fs.Bool("metrics", false, "Print verdict counters in Prometheus text format")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		tui.PrintError("usage: cardinal probe <map.yaml> --at x,y,z [flags]")
		return exitUsage
	}

	outFmt, err := parseFormat(*format)
	if err != nil {
		tui.PrintError(err.Error())
		return exitUsage
	}
	pos, err := world.ParseVector(*at)
	if err != nil {
		tui.PrintError(err.Error())
		return exitUsage
	}
	cfg, err := common.load()
	if err != nil {
		tui.PrintError(err.Error())
		return exitFail
	}
	opts, err := matchOptions(cfg)
	if err != nil {
		tui.PrintError(err.Error())
		return exitFail
	}

	m, err := mapconf.NewLoader("", opts).LoadFile(fs.Arg(0))
	if m != nil {
		defer m.End()
	}
	if err != nil {
		tui.PrintError(err.Error())
		return exitFail
	}
	for _, d := range m.Diag.Errors() {
		log.Warn("%v", d)
	}

	probe := mapconf.Probe{At: pos, Team: *team, Material: *material, Holding: *holding, States: *states}
	verdicts, err := probe.Run(m)
	if err != nil {
		tui.PrintError(err.Error())
		return exitUsage
	}

	out := make([]probeVerdict, 0, len(verdicts))
	for _, v := range verdicts {
		pv := probeVerdict{Type: string(v.Type), Verdict: v.State.String()}
		if v.Rule != nil {
			pv.Rule = v.Rule.ID
		}
		out = append(out, pv)
	}

	if outFmt.IsJSON() {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			tui.PrintError(err.Error())
			return exitFail
		}
	} else {
		fmt.Fprintln(stdout, tui.Separator(fmt.Sprintf("%s at %s", m.ID, pos)))
		if len(out) == 0 {
			fmt.Fprintln(stdout, tui.StyleMuted.Render("  map declares no applied rules"))
		}
		rows := make([][]string, 0, len(out))
		for _, v := range out {
			rule := v.Rule
			if rule == "" {
				rule = "-"
			}
			rows = append(rows, []string{v.Type, tui.VerdictBadge(v.Verdict), tui.StyleMuted.Render(rule)})
		}
		fmt.Fprint(stdout, tui.AlignColumns(rows, "  ", 2))
	}

	if *showMetrics {
		m.WriteMetrics(stdout)
	}
	return exitOK
}

// =============================================================================
// watch
// =============================================================================

// runWatch validates the maps directory and re-validates it on every change
// until interrupted.
func runWatch(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	common := addCommonFlags(fs)
	dir := fs.String("dir", "", "Maps directory (default from config)")
	debounce := fs.Duration("debounce", 0, "Quiet period before re-validating (default from config)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	cfg, err := common.load(func(cfg *config.Config) {
		if *dir != "" {
			cfg.Maps.Dir = *dir
		}
	})
	if err != nil {
		tui.PrintError(err.Error())
		return exitFail
	}
	opts, err := matchOptions(cfg)
	if err != nil {
		tui.PrintError(err.Error())
		return exitFail
	}
	return watchMaps(cfg, opts, *debounce, stdout)
}

func watchMaps(cfg *config.Config, opts match.Options, debounce time.Duration, stdout io.Writer) int {
	if debounce <= 0 {
		debounce = time.Duration(cfg.Maps.DebounceMS) * time.Millisecond
	}
	loader := mapconf.NewLoader(cfg.Maps.Dir, opts)
	linter := mapconf.NewLinter(opts)
	report := func(results []mapconf.Result) {
		fmt.Fprintln(stdout, tui.Separator(time.Now().Format(time.TimeOnly)))
		for _, r := range results {
			reportResult(stdout, linter, r)
		}
	}

	results, err := loader.LoadDir()
	if err != nil {
		tui.PrintError(err.Error())
		return exitFail
	}
	report(results)
	for _, r := range results {
		if r.Match != nil {
			r.Match.End()
		}
	}

	w, err := mapconf.NewWatcher(loader, debounce, report)
	if err != nil {
		tui.PrintError(err.Error())
		return exitFail
	}
	if err := w.Start(); err != nil {
		tui.PrintError(fmt.Sprintf("failed to watch %s: %v", cfg.Maps.Dir, err))
		return exitFail
	}
	tui.PrintInfo(fmt.Sprintf("Watching %s (Ctrl+C to stop)", cfg.Maps.Dir))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	if err := w.Stop(); err != nil {
		log.Warn("Failed to stop watcher: %v", err)
	}
	return exitOK
}

func reportResult(stdout io.Writer, linter *mapconf.Linter, r mapconf.Result) {
	name := filepath.Base(r.Path)
	if r.Match == nil {
		fmt.Fprintf(stdout, "%s %s: %v\n", tui.StyleError.Render(tui.IconCross), name, r.Err)
		return
	}
	result := linter.LintMatch(r.Match)
	icon := tui.StyleSuccess.Render(tui.IconCheck)
	switch {
	case result.Errors > 0:
		icon = tui.StyleError.Render(tui.IconCross)
	case result.Warns > 0:
		icon = tui.StyleWarning.Render(tui.IconWarning)
	}
	fmt.Fprintf(stdout, "%s %s (%s): %d error(s), %d warning(s)\n", icon, name, r.Match.ID, result.Errors, result.Warns)
	fmt.Fprint(stdout, result.FormatIssues(false))
}

// =============================================================================
// completion, version, help
// =============================================================================

func runCompletion(args []string) int {
	fs := flag.NewFlagSet("completion", flag.ContinueOnError)
	install := fs.Bool("install", false, "Install shell completion")
	uninstall := fs.Bool("uninstall", false, "Remove shell completion")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	switch {
	case *install && *uninstall:
		tui.PrintError("--install and --uninstall are mutually exclusive")
		return exitUsage
	case *install:
		if err := completion.Install(); err != nil {
			tui.PrintError(fmt.Sprintf("failed to install completion: %v", err))
			return exitFail
		}
		tui.PrintSuccess("Shell completion installed; restart your shell to use it")
	case *uninstall:
		if err := completion.Uninstall(); err != nil {
			tui.PrintError(fmt.Sprintf("failed to uninstall completion: %v", err))
			return exitFail
		}
		tui.PrintSuccess("Shell completion removed")
	default:
		if completion.IsInstalled() {
			tui.PrintInfo("Shell completion is installed")
		} else {
			tui.PrintInfo("Shell completion is not installed; run: cardinal completion --install")
		}
	}
	return exitOK
}

func runVersion(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "Print as JSON")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if *asJSON {
		if err := json.NewEncoder(stdout).Encode(map[string]string{"version": Version}); err != nil {
			return exitFail
		}
		return exitOK
	}
	fmt.Fprintf(stdout, "cardinal version %s\n", Version)
	return exitOK
}

// parseFlags parses args into fs. When it reports false the command should
// return the exit code: zero after -h, a usage error otherwise.
func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK, false
		}
		return exitUsage, false
	}
	return exitOK, true
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Cardinal - match rule engine for map-defined Minecraft matches

Usage:
  cardinal validate [flags] [file.yaml|dir ...]   Check map documents (default: maps.dir)
  cardinal probe <map.yaml> --at x,y,z [flags]    Show what each applied rule decides at a location
  cardinal watch [--dir DIR] [--debounce D]       Re-validate maps whenever they change
  cardinal completion [--install|--uninstall]     Manage shell completion
  cardinal version [--json]                       Show version
  cardinal help                                   Show this help message

Common Flags:
  --config string      Path to configuration file (default ~/.cardinal/config.yaml)
  --log-level string   Log level: trace, debug, info, warn, error
  --no-color           Disable colored output

Validate Flags:
  --info               Show informational messages
  --format string      Output format: text or json

Probe Flags:
  --team string            Team of the probing player
  --material string        Material of the block at the location
  --holding string         Material held by the player
  --player-state strings   crouching, walking, sprinting, flying, can-fly
  --metrics                Print verdict counters in Prometheus text format

Environment Variables:
  CARDINAL_LOG_LEVEL, CARDINAL_NO_COLOR, CARDINAL_MAPS_DIR, CARDINAL_WATCH,
  CARDINAL_SEED, CARDINAL_FATAL_ERRORS

Examples:
  cardinal validate maps/
  cardinal probe maps/ctw.yaml --at 5,64,5 --team blue --player-state crouching
  cardinal watch --dir maps/`)
}
