// Package accounts renders the account list page.
package accounts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wallet-account-tui/helpers"
	"wallet-account-tui/store"
	"wallet-account-tui/styles"
)

// Nav returns the navigation bar for the list page.
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("↑/↓") + " move",
		styles.Key("Enter") + " open",
		styles.Key("a") + " add",
		styles.Key("l") + " log",
		styles.Key("q") + " quit",
	}, "   ")
	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the account list with the selection marker.
func Render(list []store.Account, selectedIdx int, addError string) string {
	header := styles.TitleStyle.Render("Accounts")

	if len(list) == 0 {
		empty := styles.MutedStyle.Render("No accounts yet. Press 'a' to add one.")
		return header + "\n\n" + empty
	}

	var items []string
	for i, acct := range list {
		label := helpers.ShortenAddr(acct.Address)
		if acct.Name != "" {
			label = acct.Name + " — " + label
		}
		if acct.Hardware {
			label += "  " + styles.MutedStyle.Render("[hardware]")
		}

		if i == selectedIdx {
			marker := lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true)
			items = append(items, marker.Render("▶ "+label)+"\n  "+
				lipgloss.NewStyle().Foreground(styles.CText).Render(acct.Address))
		} else {
			items = append(items, "  "+styles.MutedStyle.Render(label)+"\n  "+
				helpers.FadeString(acct.Address, "#7D5AFC", "#FF87D7"))
		}
	}

	status := styles.MutedStyle.Render(fmt.Sprintf("%d accounts", len(list)))
	out := header + "\n\n" + strings.Join(items, "\n\n") + "\n\n" + status
	if addError != "" {
		out += "\n" + styles.WarnStyle.Render(addError)
	}
	return out
}
