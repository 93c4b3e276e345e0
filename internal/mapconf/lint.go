package mapconf

import (
	"fmt"
	"strings"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/applied"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/diag"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/filter"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/ids"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/match"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/region"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/tui"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

// LintSeverity represents the severity of a lint issue.
type LintSeverity string

const (
	LintError   LintSeverity = "error"
	LintWarning LintSeverity = "warning"
	LintInfo    LintSeverity = "info"
)

// LintIssue represents a problem found in a map.
type LintIssue struct {
	Element  string       `json:"element"`
	Field    string       `json:"field,omitempty"`
	Loc      diag.Loc     `json:"loc"`
	Severity LintSeverity `json:"severity"`
	Message  string       `json:"message"`
}

// LintResult contains all issues found during linting.
type LintResult struct {
	Issues []LintIssue `json:"issues"`
	Errors int         `json:"errors"`
	Warns  int         `json:"warnings"`
}

func (r *LintResult) add(issue LintIssue) {
	r.Issues = append(r.Issues, issue)
	switch issue.Severity {
	case LintError:
		r.Errors++
	case LintWarning:
		r.Warns++
	case LintInfo:
		// info items don't increment counters
	}
}

// Linter checks map documents for configuration errors and for rules that
// load but probably do not do what the author meant.
type Linter struct {
	loader *Loader
}

// NewLinter creates a linter building matches with opts. Fatal diagnostic
// kinds in opts are reported as errors, the rest as warnings.
func NewLinter(opts match.Options) *Linter {
	return &Linter{loader: NewLoader("", opts)}
}

// LintFile loads and lints one map file.
func (l *Linter) LintFile(path string) (LintResult, error) {
	m, err := l.loader.LoadFile(path)
	if m == nil {
		return LintResult{}, err
	}
	defer m.End()
	return l.LintMatch(m), nil
}

// LintBytes lints a map document held in memory.
func (l *Linter) LintBytes(data []byte, name string) (LintResult, error) {
	m, err := l.loader.LoadBytes(data, name)
	if m == nil {
		return LintResult{}, err
	}
	defer m.End()
	return l.LintMatch(m), nil
}

// LintMatch reports the diagnostics of a loaded match followed by the
// checks on its filters and applied rules.
func (l *Linter) LintMatch(m *match.Match) LintResult {
	var result LintResult
	for _, e := range m.Diag.Errors() {
		sev := LintWarning
		if e.Fatal {
			sev = LintError
		}
		result.add(LintIssue{
			Element:  e.Element,
			Field:    e.Property,
			Loc:      e.Loc,
			Severity: sev,
			Message:  strings.TrimPrefix(e.Error(), e.Loc.String()+": "),
		})
	}

	seen := make(map[filter.Filter]bool)
	filters := ids.Map[filter.Filter](m.Registry)
	for _, id := range m.Registry.IDs() {
		if f, ok := filters[id]; ok {
			l.lintFilter(&result, id, f, seen)
		}
	}

	rules := 0
	for _, t := range applied.Types {
		set, ok := m.AppliedSet(t)
		if !ok {
			continue
		}
		for i, r := range set.Rules() {
			rules++
			name := r.ID
			if name == "" {
				name = fmt.Sprintf("%s #%d", t, i+1)
			}
			l.lintRule(&result, name, r, seen)
		}
	}
	if rules == 0 {
		result.add(LintIssue{Element: m.ID, Severity: LintInfo, Message: "map declares no applied rules"})
	}
	if len(m.Teams()) == 0 {
		result.add(LintIssue{Element: m.ID, Field: "teams", Severity: LintInfo, Message: "map declares no teams"})
	}
	return result
}

func (l *Linter) lintRule(result *LintResult, name string, r *applied.Rule, seen map[filter.Filter]bool) {
	if r.Filter == filter.Undecided {
		result.add(LintIssue{
			Element:  name,
			Field:    "filter",
			Severity: LintInfo,
			Message:  "rule has no filter and never decides",
		})
	}
	if r.Region == region.Nowhere || r.Region == region.Empty || (r.Region.IsBounded() && r.Region.Bounds().IsEmpty()) {
		result.add(LintIssue{
			Element:  name,
			Field:    "region",
			Severity: LintWarning,
			Message:  "region contains nothing, the rule never applies",
		})
	}
	if r.Type == applied.TypeVelocity && r.Velocity != nil && *r.Velocity == (world.Vector{}) {
		result.add(LintIssue{
			Element:  name,
			Field:    "velocity",
			Severity: LintWarning,
			Message:  "zero velocity has no effect",
		})
	}
	l.lintFilter(result, name, r.Filter, seen)
}

// lintFilter walks f without following references; referenced filters are
// linted under their own id.
func (l *Linter) lintFilter(result *LintResult, name string, f filter.Filter, seen map[filter.Filter]bool) {
	if f == nil || seen[f] {
		return
	}
	seen[f] = true

	switch v := f.(type) {
	case *filter.RefFilter:
		return
	case *filter.RandomFilter:
		if v.Chance == 0 || v.Chance == 1 {
			result.add(LintIssue{
				Element:  name,
				Field:    "random",
				Severity: LintWarning,
				Message:  fmt.Sprintf("chance %v never varies, use always or never", v.Chance),
			})
		}
	case *filter.RangeFilter:
		if v.Min == 0 && v.Max == filter.Unlimited {
			result.add(LintIssue{
				Element:  name,
				Field:    "range",
				Loc:      v.Loc,
				Severity: LintWarning,
				Message:  "range accepts any count and always allows",
			})
		}
	case *filter.AllFilter, *filter.AnyFilter, *filter.OneFilter:
		if children := f.(filter.Parent).Children(); len(children) == 1 {
			result.add(LintIssue{
				Element:  name,
				Severity: LintInfo,
				Message:  "aggregate with a single child is redundant",
			})
		}
	case *filter.MaterialFilter:
		l.lintPattern(result, name, "material", v.Pattern)
	case *filter.ItemFilter:
		l.lintPattern(result, name, "material", v.Pattern)
	}

	if p, ok := f.(filter.Parent); ok {
		for _, child := range p.Children() {
			l.lintFilter(result, name, child, seen)
		}
	}
}

func (l *Linter) lintPattern(result *LintResult, name, field string, p filter.MaterialPattern) {
	for _, n := range world.MaterialNames() {
		if m, err := world.ParseMaterial(n); err == nil && p.Match(m) {
			return
		}
	}
	result.add(LintIssue{
		Element:  name,
		Field:    field,
		Severity: LintWarning,
		Message:  fmt.Sprintf("pattern %q matches no known material", p),
	})
}

// FormatIssues returns a human-readable string of all issues.
func (r LintResult) FormatIssues(showInfo bool) string {
	if len(r.Issues) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, issue := range r.Issues {
		if issue.Severity == LintInfo && !showInfo {
			continue
		}

		where := issue.Element
		if issue.Loc.Line > 0 {
			where = fmt.Sprintf("%s (%s)", issue.Element, issue.Loc)
		}
		var icon, line string
		if tui.IsPlainMode() {
			switch issue.Severity {
			case LintError:
				icon = "X"
			case LintWarning:
				icon = "!"
			case LintInfo:
				icon = "i"
			default:
				icon = "?"
			}
			line = fmt.Sprintf("  %s [%s] %s: %s\n", icon, issue.Severity, where, issue.Message)
		} else {
			switch issue.Severity {
			case LintError:
				icon = tui.StyleError.Render(tui.IconCross)
			case LintWarning:
				icon = tui.StyleWarning.Render(tui.IconWarning)
			case LintInfo:
				icon = tui.StyleInfo.Render(tui.IconInfo)
			default:
				icon = "?"
			}
			line = fmt.Sprintf("  %s %s %s: %s\n",
				icon, tui.SeverityBadge(string(issue.Severity)), tui.StyleBold.Render(where), issue.Message)
		}
		sb.WriteString(line)
	}

	return sb.String()
}
