// Package log renders the collapsible log panel fed by the application
// logger.
package log

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"wallet-account-tui/helpers"
	"wallet-account-tui/styles"
)

// Render draws the log panel under the active page.
func Render(width, height int, ready bool, spinnerView string, vp viewport.Model) string {
	title := styles.TitleStyle.Render("Log")

	panelHeight := helpers.Min(helpers.Max(5, height-10), helpers.Min(height/3, 15))
	vp.Height = panelHeight

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(helpers.Max(0, width-2)).
		Height(panelHeight + 2)

	if !ready {
		return border.Render(title + "\n\n" + spinnerView + " initializing…")
	}

	if vp.TotalLineCount() > vp.Height {
		title += styles.MutedStyle.Render(fmt.Sprintf(" [%d%%]", int(vp.ScrollPercent()*100)))
	}
	return border.Render(title + "\n\n" + vp.View())
}
