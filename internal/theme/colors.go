package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Session status colors
const (
	ColorActive   Color = "2" // Green
	ColorCreating Color = "6" // Cyan
	ColorDetached Color = "3" // Yellow
	ColorFailed   Color = "1" // Red
	ColorStopped  Color = "8" // Gray
	ColorStopping Color = "5" // Magenta
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
)

// Accent colors
const (
	ColorOrphan  Color = "214" // Orange - untracked sessions
	ColorSpinner Color = "205" // Pink
)

// Table colors
const (
	ColorHeaderBackground Color = "8"
	ColorHeaderForeground Color = "15"
)
