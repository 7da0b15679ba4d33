package styles

import "github.com/charmbracelet/lipgloss"

// Theme colors
var (
	CBg      = lipgloss.Color("#0C1016")
	CPanel   = lipgloss.Color("#111A24")
	CBorder  = lipgloss.Color("#7D5AFC")
	CMuted   = lipgloss.Color("#8399AF")
	CText    = lipgloss.Color("#D9E4F1")
	CAccent  = lipgloss.Color("#7EE787") // green
	CAccent2 = lipgloss.Color("#79C0FF") // blue
	CWarn    = lipgloss.Color("#FFA657") // orange
	CDanger  = lipgloss.Color("#F25D94") // pink-red, destructive actions
)

// Shared styles
var (
	AppStyle = lipgloss.NewStyle().
			Background(CBg).
			Foreground(CText)

	TitleStyle = lipgloss.NewStyle().
			Foreground(CAccent2).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(CMuted)

	WarnStyle = lipgloss.NewStyle().
			Foreground(CWarn)

	NavStyle = lipgloss.NewStyle().
			Background(CPanel).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(CBorder).
			Padding(0, 1)

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(CBorder).
			Padding(1, 2)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF7DB")).
			Background(lipgloss.Color("#888B7E")).
			Padding(0, 3).
			MarginTop(1)

	ActiveButtonStyle = ButtonStyle.
				Background(CDanger).
				Underline(true)

	HotkeyKeyStyle = lipgloss.NewStyle().
			Foreground(CAccent).
			Bold(true)
)

// Key renders a hotkey with accent styling.
func Key(s string) string {
	return HotkeyKeyStyle.Render(s)
}
