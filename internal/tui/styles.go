package tui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// plainMode disables all styling: no colors, no icons, no boxes.
// When enabled, output is clean plain text suitable for CI, piped output or --no-color.
var (
	plainMode bool
	plainOnce sync.Once
	plainMu   sync.RWMutex
)

// initPlainMode auto-detects plain mode from the environment on first call.
// Precedence: NO_COLOR > TTY detection > colour profile.
func initPlainMode() {
	plainOnce.Do(func() {
		if termenv.EnvNoColor() {
			plainMode = true
			return
		}
		if !term.IsTerminal(int(os.Stdout.Fd())) { //nolint:gosec // Fd() fits in int on all supported platforms
			plainMode = true
			return
		}
		if termenv.NewOutput(os.Stdout).Profile == termenv.Ascii {
			plainMode = true
		}
	})
}

// SetPlainMode explicitly enables or disables plain mode.
// Call this early (e.g. when parsing --no-color) before any styled output.
func SetPlainMode(plain bool) {
	plainMu.Lock()
	defer plainMu.Unlock()
	plainMode = plain
	plainOnce.Do(func() {})
}

// IsPlainMode returns true if styling is disabled.
func IsPlainMode() bool {
	initPlainMode()
	plainMu.RLock()
	defer plainMu.RUnlock()
	return plainMode
}

// Color palette, named after the blocks they come from. Adapts to the OS theme.
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#9E2A2B", Dark: "#E46876"} // Redstone
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#2D4F8A", Dark: "#7FB4CA"} // Lapis
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#3F6B2A", Dark: "#98BB6C"} // Emerald
	ColorError   = lipgloss.AdaptiveColor{Light: "#B5382A", Dark: "#E05A3A"} // Nether brick
	ColorWarning = lipgloss.AdaptiveColor{Light: "#8B6914", Dark: "#E6C384"} // Gold ingot
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#2D4F8A", Dark: "#7FB4CA"} // Lapis
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#8A8F98"} // Andesite
)

// Reusable styles.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleBold    = lipgloss.NewStyle().Bold(true)
	StyleAccent  = lipgloss.NewStyle().Foreground(ColorAccent)

	// Branded prefix: [cardinal] (unexported, use Prefix())
	stylePrefix = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
)

// Prefix returns the branded [cardinal] prefix string.
func Prefix() string {
	if IsPlainMode() {
		return "[cardinal]"
	}
	return stylePrefix.Render("[cardinal]")
}

// SeverityStyle returns the style for a lint severity.
func SeverityStyle(severity string) lipgloss.Style {
	switch severity {
	case "error":
		return StyleError
	case "warning":
		return StyleWarning
	case "info":
		return StyleInfo
	default:
		return StyleMuted
	}
}

// SeverityBadge returns a styled severity badge like "■ ERROR".
func SeverityBadge(severity string) string {
	label := upperLabel(severity)
	if IsPlainMode() {
		return "[" + label + "]"
	}
	return SeverityStyle(severity).Render(IconSquare + " " + label)
}

// VerdictStyle returns the style for a filter verdict name.
func VerdictStyle(verdict string) lipgloss.Style {
	switch verdict {
	case "allow":
		return StyleSuccess
	case "deny":
		return StyleError
	default:
		return StyleMuted
	}
}

// VerdictBadge renders a verdict such as "allow" with its icon.
func VerdictBadge(verdict string) string {
	label := upperLabel(verdict)
	if IsPlainMode() {
		return label
	}
	icon := IconAbstain
	switch verdict {
	case "allow":
		icon = IconAllow
	case "deny":
		icon = IconDeny
	}
	return VerdictStyle(verdict).Render(icon + " " + label)
}

func upperLabel(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

// Separator returns a section separator bar.
func Separator(title string) string {
	if IsPlainMode() {
		if title == "" {
			return "---"
		}
		return "--- " + title + " ---"
	}
	bar := StyleAccent.Render("▸▸")
	if title == "" {
		return bar + StyleMuted.Render(" ━━━━━━━━━━━━━━━━━━━━━━━━")
	}
	return bar + " " + StyleBold.Render(title) + " " + StyleMuted.Render("━━━━━━━━━━━━━━━━")
}
