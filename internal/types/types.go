// Package types defines common type-safe enums used across the codebase.
package types

// LogLevel is a configured log verbosity.
type LogLevel string

const (
	LogLevelTrace LogLevel = "trace"
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Valid returns true if the level is known. Empty means the default.
func (l LogLevel) Valid() bool {
	switch l {
	case LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, "":
		return true
	}
	return false
}

// OutputFormat selects how the CLI prints reports.
type OutputFormat string

const (
	// OutputText is human-readable, colored when the terminal allows.
	OutputText OutputFormat = "text"
	// OutputJSON is one JSON document per report.
	OutputJSON OutputFormat = "json"
)

// Valid returns true if the OutputFormat is a known valid value.
func (f OutputFormat) Valid() bool {
	return f == OutputText || f == OutputJSON
}

// IsJSON returns true for JSON output.
func (f OutputFormat) IsJSON() bool {
	return f == OutputJSON
}

// MapSection names a top-level section of a map document.
type MapSection string

const (
	SectionTeams      MapSection = "teams"
	SectionObjectives MapSection = "objectives"
	SectionKits       MapSection = "kits"
	SectionRegions    MapSection = "regions"
	SectionFilters    MapSection = "filters"
	SectionApplied    MapSection = "applied"
)

// AllSections returns the sections in load order.
func AllSections() []MapSection {
	return []MapSection{SectionTeams, SectionObjectives, SectionKits, SectionRegions, SectionFilters, SectionApplied}
}

// Valid returns true if the section is known.
func (s MapSection) Valid() bool {
	for _, v := range AllSections() {
		if v == s {
			return true
		}
	}
	return false
}
