package account

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mdp/qrterminal/v3"

	"wallet-account-tui/helpers"
	"wallet-account-tui/store"
	"wallet-account-tui/styles"
)

// openDialog prepares the state behind a dialog whose flag just turned on.
// Fund and the hardware delete variant have no form.
func (c Controller) openDialog(d Dialog, acct store.Account, bal store.Balance) Controller {
	c.data = &formValues{}
	c.formDialog = d

	switch d {
	case DialogTransfer:
		c.form = newForm(
			huh.NewInput().
				Title("Recipient").
				Placeholder("0x…").
				Validate(validAddress).
				Value(&c.data.to),
			huh.NewInput().
				Title("Amount (ETH)").
				Validate(validAmount).
				Value(&c.data.amount),
		)

	case DialogEdit:
		c.data.name = acct.Name
		c.form = newForm(
			huh.NewInput().
				Title("Nickname").
				Placeholder("Optional nickname").
				Value(&c.data.name),
		)

	case DialogExport:
		c.form = newForm(
			huh.NewInput().
				Title("Account password").
				EchoMode(huh.EchoModePassword).
				Value(&c.data.exportPassword),
		)

	case DialogPassword:
		c.form = newForm(
			huh.NewInput().
				Title("Current password").
				EchoMode(huh.EchoModePassword).
				Value(&c.data.oldPassword),
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Value(&c.data.newPassword),
		)

	case DialogVerification:
		c.form = newForm(
			huh.NewInput().
				Title("Phone number").
				Description("A confirmation code will be sent by SMS.").
				Placeholder("+1…").
				Value(&c.data.phone),
		)

	case DialogFaucet:
		c.form = newForm(
			huh.NewConfirm().
				Title("Request test ether from the faucet?").
				Affirmative("Request").
				Negative("Cancel").
				Value(&c.data.confirm),
		)

	case DialogDelete:
		if acct.Hardware {
			c.deleteYes = false
			c.form = nil
			c.data = nil
			return c
		}
		c.form = newForm(
			huh.NewInput().
				Title("Account password").
				Description("Deleting the key is irreversible.").
				EchoMode(huh.EchoModePassword).
				Value(&c.data.deletePassword),
			huh.NewConfirm().
				Title("Delete this key?").
				Affirmative("Delete").
				Negative("Keep").
				Value(&c.data.confirm),
		)

	case DialogFund:
		c.form = nil
		c.data = nil
	}
	return c
}

func newForm(fields ...huh.Field) *huh.Form {
	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeCatppuccin())
	form.Init()
	return form
}

func validAddress(s string) error {
	if !helpers.IsValidEthAddress(s) {
		return errors.New("not a valid address")
	}
	return nil
}

func validAmount(s string) error {
	f, ok := new(big.Float).SetString(s)
	if !ok || f.Sign() <= 0 {
		return errors.New("enter a positive amount")
	}
	return nil
}

// paymentLink builds an EIP-681 payment request for external signing.
func paymentLink(to, amount, networkID string) string {
	amountFloat, ok := new(big.Float).SetString(amount)
	if !ok {
		return ""
	}
	wei, _ := new(big.Float).Mul(amountFloat, big.NewFloat(1e18)).Int(nil)
	if networkID == "" {
		return fmt.Sprintf("ethereum:%s?value=%s", to, wei)
	}
	return fmt.Sprintf("ethereum:%s@%s?value=%s", to, networkID, wei)
}

func qrBlock(text string) string {
	var buf strings.Builder
	qrterminal.GenerateWithConfig(text, qrterminal.Config{
		Level:     qrterminal.L,
		Writer:    &buf,
		BlackChar: qrterminal.BLACK,
		WhiteChar: qrterminal.WHITE,
		QuietZone: 1,
	})
	return buf.String()
}

func (c Controller) placeDialog(content string) string {
	dialog := styles.DialogStyle.Render(content)
	return lipgloss.Place(c.w, c.h, lipgloss.Center, lipgloss.Center, dialog)
}

// renderDialog draws the active dialog. Forms render themselves; fund, the
// hardware delete variant and the transfer result are custom panels.
func (c Controller) renderDialog(d Dialog, acct store.Account) string {
	switch d {
	case DialogFund:
		title := styles.TitleStyle.Render("Fund " + helpers.ShortenAddr(c.address))
		body := qrBlock(c.address) + "\n" +
			styles.MutedStyle.Render("Send ETH or tokens to this address to fund it.") + "\n" +
			styles.MutedStyle.Render("Press Esc to close.")
		return c.placeDialog(title + "\n\n" + body)

	case DialogDelete:
		if acct.Hardware {
			return c.renderForgetDialog()
		}
	}

	if c.form != nil {
		title := styles.TitleStyle.Render(dialogTitle(d, c.address))
		return c.placeDialog(title + "\n\n" + c.form.View())
	}
	return ""
}

// renderForgetDialog is the non-destructive delete variant for hardware
// accounts: it only removes the entry from the local list.
func (c Controller) renderForgetDialog() string {
	msg := helpers.FadeString(
		"Forget the hardware account "+helpers.ShortenAddr(c.address)+"? Its key stays on the device.",
		"#F25D94", "#EDFF82",
	)
	question := lipgloss.NewStyle().Width(54).Align(lipgloss.Center).Render(msg)

	var yes, no string
	if c.deleteYes {
		yes = styles.ActiveButtonStyle.MarginRight(2).Render("Forget")
		no = styles.ButtonStyle.Render("Keep")
	} else {
		yes = styles.ButtonStyle.MarginRight(2).Render("Forget")
		no = styles.ActiveButtonStyle.MarginRight(0).Render("Keep")
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, yes, no)

	return c.placeDialog(lipgloss.JoinVertical(lipgloss.Center, question, buttons))
}

func (c Controller) renderTxLink() string {
	title := styles.TitleStyle.Render("Payment request ready to sign")
	body := qrBlock(c.txLink) + "\n" +
		c.txLink + "\n\n" +
		styles.MutedStyle.Render("Scan with your signing wallet. Press Esc to close.")
	return c.placeDialog(title + "\n\n" + body)
}

func dialogTitle(d Dialog, address string) string {
	short := helpers.ShortenAddr(address)
	switch d {
	case DialogTransfer:
		return "Transfer from " + short
	case DialogEdit:
		return "Edit " + short
	case DialogExport:
		return "Export " + short
	case DialogPassword:
		return "Change password for " + short
	case DialogVerification:
		return "Verify " + short
	case DialogFaucet:
		return "Faucet for " + short
	case DialogDelete:
		return "Delete " + short
	}
	return string(d)
}
