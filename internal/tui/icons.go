package tui

// Icons, all from widely supported Unicode blocks.
const (
	IconCheck   = "✔" // heavy check mark
	IconCross   = "✖" // heavy multiplication x
	IconWarning = "⚠" // warning sign
	IconInfo    = "ℹ" // information source
	IconSquare  = "▪" // severity badge
	IconAllow   = "●" // filled circle
	IconDeny    = "⊘" // circled slash
	IconAbstain = "○" // hollow circle
)
