package account

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"wallet-account-tui/helpers"
	"wallet-account-tui/store"
	"wallet-account-tui/styles"
)

// View renders the page. A missing account yields the defined empty state;
// no dialog is constructed for it.
func (c Controller) View() string {
	acct, ok := c.env.Store.Account(c.address)
	if !ok {
		return styles.MutedStyle.Render("No account for " + helpers.ShortenAddr(c.address) + ".")
	}

	if c.txLink != "" {
		return c.renderTxLink()
	}
	if d, open := c.vis.Active(); open {
		return c.renderDialog(d, acct)
	}

	available := !acct.Hardware || c.env.Hardware.Connected(c.address)
	bal, hasBal := c.env.Store.Balance(c.address)
	networkID := c.env.Store.NetworkID()
	certs := c.env.Store.CertificationMap()

	var lines []string

	title := "Account"
	if acct.Name != "" {
		title = acct.Name
	}
	lines = append(lines, styles.TitleStyle.Render(title))

	addrLine := styles.MutedStyle.Underline(true).Render(c.address)
	if acct.Hardware {
		if available {
			addrLine += "  " + styles.MutedStyle.Render("[hardware, connected]")
		} else {
			addrLine += "  " + styles.WarnStyle.Render("[hardware, disconnected]")
		}
	}
	if c.status != "" {
		addrLine += "  " + lipgloss.NewStyle().Foreground(styles.CAccent).Render(c.status)
	}
	lines = append(lines, addrLine, "")

	body := c.renderBody(hasBal, bal, certs)
	if !available {
		// header and holdings render dimmed while the device is away
		body = styles.MutedStyle.Render(body)
	}
	lines = append(lines, body)

	actions := buildActions(acct, bal, hasBal, networkID, certs)
	lines = append(lines, "", c.renderActionBar(actions, available))

	return strings.Join(lines, "\n")
}

func (c Controller) renderBody(hasBal bool, bal store.Balance, certs map[string][]store.Certification) string {
	var lines []string

	if c.loading && !hasBal {
		return c.spin.View() + " fetching balances…"
	}

	if hasBal {
		eth := lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("ETH") +
			"  " + helpers.FormatETH(bal.Wei) +
			"  " + styles.MutedStyle.Render("as of "+helpers.LoadedAt(bal.LoadedAt, c.loading))
		lines = append(lines, eth)

		if len(bal.Tokens) == 0 {
			lines = append(lines, styles.MutedStyle.Render("No token holdings."))
		} else {
			for _, t := range bal.Tokens {
				row := lipgloss.NewStyle().Foreground(styles.CAccent).Render(padSymbol(t.Symbol)) +
					"  " + helpers.FormatToken(t.Balance, t.Decimals, t.Symbol)
				lines = append(lines, row)
			}
		}
	} else {
		lines = append(lines, styles.MutedStyle.Render("Balance not loaded yet."))
	}

	if names := certNames(certs, c.address); len(names) > 0 {
		lines = append(lines, "", styles.MutedStyle.Render("Certified: ")+strings.Join(names, ", "))
	}

	if len(c.history) >= 2 {
		graph := asciigraph.Plot(c.history,
			asciigraph.Height(5),
			asciigraph.Width(helpers.Min(helpers.Max(c.w-12, 20), 60)),
			asciigraph.Caption("balance (ETH)"),
		)
		lines = append(lines, "", graph)
	}

	return strings.Join(lines, "\n")
}

func (c Controller) renderActionBar(actions []Action, available bool) string {
	parts := make([]string, 0, len(actions)+2)
	for _, a := range actions {
		if !a.Enabled {
			parts = append(parts, styles.MutedStyle.Render(a.Key+" "+a.Label))
			continue
		}
		parts = append(parts, styles.Key(a.Key)+" "+a.Label)
	}
	parts = append(parts, styles.Key("c")+" copy", styles.Key("Esc")+" back")
	bar := strings.Join(parts, "   ")
	if !available {
		bar += "   " + styles.WarnStyle.Render("device disconnected")
	}
	if c.w > 0 {
		return styles.NavStyle.Width(c.w).Render(bar)
	}
	return styles.NavStyle.Render(bar)
}

func padSymbol(s string) string {
	for len(s) < 6 {
		s += " "
	}
	return s
}

func certNames(certs map[string][]store.Certification, address string) []string {
	var names []string
	for _, c := range certs[strings.ToLower(address)] {
		names = append(names, c.Name)
	}
	return names
}
