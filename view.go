package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wallet-account-tui/helpers"
	"wallet-account-tui/styles"
	"wallet-account-tui/views/accounts"
	logview "wallet-account-tui/views/log"
)

// View implements tea.Model.
func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n\n")

	switch m.activePage {
	case pageAccount:
		b.WriteString(m.detail.View())
	default:
		if m.adding && m.addForm != nil {
			b.WriteString(styles.TitleStyle.Render("Add account"))
			b.WriteString("\n\n")
			b.WriteString(m.addForm.View())
		} else {
			b.WriteString(accounts.Render(m.st.Accounts(), m.selected, m.addError))
			b.WriteString("\n\n")
			b.WriteString(accounts.Nav(helpers.Max(0, m.w-4)))
		}
	}

	if m.logEnabled {
		vp := m.logViewport
		vp.SetContent(m.logBuffer.String())
		vp.GotoBottom()
		b.WriteString("\n\n")
		b.WriteString(logview.Render(helpers.Max(0, m.w-4), m.h, m.logReady, m.spin.View(), vp))
	}

	return styles.AppStyle.Render(b.String())
}

// header shows the app title and the connection state.
func (m model) header() string {
	title := styles.TitleStyle.Render("Wallet")

	var state string
	switch {
	case m.svc.rpcURL == "":
		state = styles.WarnStyle.Render("no RPC endpoint")
	case m.svc.client == nil:
		state = styles.MutedStyle.Render(m.spin.View() + " connecting…")
	case m.st.NetworkID() == "":
		state = styles.MutedStyle.Render("connected")
	default:
		state = styles.MutedStyle.Render("network " + m.st.NetworkID())
	}

	gap := helpers.Max(1, m.w-4-lipgloss.Width(title)-lipgloss.Width(state))
	return title + strings.Repeat(" ", gap) + state
}
