// Package account implements the account page: one account's balance,
// certification badges and history, an action bar gated by network and
// certification context, and the modal dialogs behind each action.
package account

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"wallet-account-tui/export"
	"wallet-account-tui/helpers"
	"wallet-account-tui/store"
	"wallet-account-tui/styles"
)

const (
	refreshInterval = 30 * time.Second
	historyPoints   = 60
)

// Connectivity answers whether the signing device for a hardware account is
// attached.
type Connectivity interface {
	Connected(address string) bool
}

// KeyManager covers the key-store operations the page's dialogs trigger.
type KeyManager interface {
	Update(address, oldPassword, newPassword string) error
	Delete(address, password string) error
}

// Services produces the asynchronous fetch and request commands. Results are
// merged into the store by the command itself; the page only receives the
// completion message.
type Services interface {
	FetchCertifications(address string) tea.Cmd
	FetchBalance(address string) tea.Cmd
	RequestFaucet(address string) tea.Cmd
	RequestVerification(address, phone string) tea.Cmd
}

// Collaborators are the injected externals the page works against.
type Collaborators struct {
	Store       *store.Store
	Hardware    Connectivity
	Exporter    export.Exporter
	Keys        KeyManager
	Services    Services
	Report      func(error)
	DownloadDir string
}

// formValues backs the active dialog form. It lives on the heap so the huh
// bindings stay valid while the controller value is copied through Update.
type formValues struct {
	name           string
	exportPassword string
	oldPassword    string
	newPassword    string
	deletePassword string
	phone          string
	to             string
	amount         string
	confirm        bool
}

// Controller is the account page sub-model. One instance exists per mounted
// page; its dialog state and export session are never shared across mounts.
type Controller struct {
	env     Collaborators
	address string
	vis     Visibility
	session *export.Session
	spin    spinner.Model

	w, h    int
	loading bool
	status  string
	history []float64

	form       *huh.Form
	formDialog Dialog
	data       *formValues
	deleteYes  bool
	txLink     string

	refreshGen int
}

// Mount constructs the page for an address and performs the mount-time side
// effects: the export session is created, the address becomes the sole
// visible account, and the certification and balance fetches are requested.
// Visibility registration is issued before the fetches.
func Mount(env Collaborators, address string) (Controller, tea.Cmd) {
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	c := Controller{
		env:  env,
		spin: sp,
	}
	return c.Retarget(address)
}

// Retarget re-points the mounted page at a different address, replacing the
// visible-set entry and re-requesting per-address data.
func (c Controller) Retarget(address string) (Controller, tea.Cmd) {
	c.address = address
	c.vis = NewVisibility()
	c.form = nil
	c.data = nil
	c.status = ""
	c.txLink = ""
	c.history = nil
	c.loading = true

	acct, _ := c.env.Store.Account(address)
	c.session = export.NewSession(acct, address, c.env.Exporter, c.env.DownloadDir, c.env.Report)

	// invalidates any refresh chain armed for the previous target
	c.refreshGen++

	c.env.Store.SetVisibleAccounts([]string{address})
	return c, tea.Batch(
		c.env.Services.FetchCertifications(address),
		c.env.Services.FetchBalance(address),
		c.spin.Tick,
		refreshTick(c.refreshGen),
	)
}

// Unmount clears the visible-accounts set. Safe to call at any time; it does
// not wait for in-flight fetches.
func (c Controller) Unmount() {
	c.env.Store.ClearVisibleAccounts()
}

// Address returns the currently mounted address.
func (c Controller) Address() string {
	return c.address
}

// DialogOpen reports whether a dialog or result overlay is showing; the host
// uses it to decide whether Esc leaves the page or closes the dialog.
func (c Controller) DialogOpen() bool {
	_, open := c.vis.Active()
	return open || c.txLink != ""
}

// SetSize stores the window size for dialog placement.
func (c Controller) SetSize(w, h int) Controller {
	c.w, c.h = w, h
	return c
}

func refreshTick(gen int) tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshTickMsg{gen: gen}
	})
}

func clearStatusTick() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func copyAddress(address string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(address); err != nil {
			return nil
		}
		return copiedMsg{}
	}
}

func exportCmd(s *export.Session) tea.Cmd {
	return func() tea.Msg {
		return ExportedMsg{Path: s.Export()}
	}
}

func changePasswordCmd(km KeyManager, address, oldPassword, newPassword string) tea.Cmd {
	return func() tea.Msg {
		return PasswordChangedMsg{Address: address, Err: km.Update(address, oldPassword, newPassword)}
	}
}

func deleteKeyCmd(km KeyManager, address, password string) tea.Cmd {
	return func() tea.Msg {
		return DeletedMsg{Address: address, Err: km.Delete(address, password)}
	}
}

func forgetCmd(address string) tea.Cmd {
	return func() tea.Msg {
		return ForgottenMsg{Address: address}
	}
}

// Update handles page messages. Unrecognized messages flow into the active
// form so its internal machinery keeps working.
func (c Controller) Update(msg tea.Msg) (Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		c.spin, cmd = c.spin.Update(msg)
		return c, cmd

	case refreshTickMsg:
		if msg.gen != c.refreshGen {
			// armed before a retarget, let the chain die
			return c, nil
		}
		return c, tea.Batch(c.env.Services.FetchBalance(c.address), refreshTick(c.refreshGen))

	case BalanceLoadedMsg:
		if !strings.EqualFold(msg.Address, c.address) {
			// late result for a previous target, the store absorbed it
			return c, nil
		}
		c.loading = false
		if msg.Err != nil {
			c.env.Report(msg.Err)
			return c, nil
		}
		if bal, ok := c.env.Store.Balance(c.address); ok {
			c.history = append(c.history, helpers.WeiToFloat(bal.Wei))
			if len(c.history) > historyPoints {
				c.history = c.history[len(c.history)-historyPoints:]
			}
		}
		return c, nil

	case CertificationsLoadedMsg:
		return c, nil

	case copiedMsg:
		c.status = "address copied"
		return c, clearStatusTick()

	case clearStatusMsg:
		c.status = ""
		return c, nil

	case ExportedMsg:
		if msg.Path != "" {
			c.status = "exported to " + msg.Path
		}
		return c, clearStatusTick()

	case FaucetResultMsg:
		if msg.Err != nil {
			c.env.Report(msg.Err)
		} else {
			c.status = "faucet request sent"
		}
		return c, clearStatusTick()

	case VerificationStartedMsg:
		if msg.Err != nil {
			c.env.Report(msg.Err)
		} else {
			c.status = "verification requested"
		}
		return c, clearStatusTick()

	case PasswordChangedMsg:
		if msg.Err != nil {
			c.env.Report(msg.Err)
		} else {
			c.status = "password changed"
		}
		return c, clearStatusTick()

	case DeletedMsg:
		if msg.Err != nil {
			c.env.Report(msg.Err)
		}
		// on success the host removes the account and leaves the page
		return c, nil

	case tea.KeyMsg:
		return c.handleKey(msg)
	}

	if c.form != nil {
		return c.updateForm(msg)
	}
	return c, nil
}

func (c Controller) handleKey(msg tea.KeyMsg) (Controller, tea.Cmd) {
	if c.txLink != "" {
		switch msg.String() {
		case "esc", "enter":
			c.txLink = ""
		}
		return c, nil
	}

	if d, open := c.vis.Active(); open {
		return c.updateDialog(d, msg)
	}

	switch msg.String() {
	case "c":
		return c, copyAddress(c.address)
	}

	acct, ok := c.env.Store.Account(c.address)
	if !ok {
		return c, nil
	}
	bal, hasBal := c.env.Store.Balance(c.address)
	actions := buildActions(acct, bal, hasBal, c.env.Store.NetworkID(), c.env.Store.CertificationMap())
	for _, a := range actions {
		if msg.String() != a.Key {
			continue
		}
		if !a.Enabled {
			return c, nil
		}
		c.vis.Toggle(a.Dialog)
		if c.vis.Open(a.Dialog) {
			c = c.openDialog(a.Dialog, acct, bal)
		}
		return c, nil
	}
	return c, nil
}

func (c Controller) updateDialog(d Dialog, msg tea.KeyMsg) (Controller, tea.Cmd) {
	acct, _ := c.env.Store.Account(c.address)

	// the hardware delete variant and the fund panel are plain key-driven
	// dialogs, everything else is a huh form
	if d == DialogDelete && acct.Hardware {
		switch msg.String() {
		case "left", "right", "tab":
			c.deleteYes = !c.deleteYes
		case "enter":
			c.vis.Toggle(DialogDelete)
			if c.deleteYes {
				return c, forgetCmd(c.address)
			}
		case "esc":
			c.vis.Toggle(DialogDelete)
		}
		return c, nil
	}

	if d == DialogFund {
		switch msg.String() {
		case "esc", "enter", "f":
			c.vis.Toggle(DialogFund)
		}
		return c, nil
	}

	if msg.String() == "esc" {
		c.vis.Toggle(d)
		c.form = nil
		c.data = nil
		return c, nil
	}
	if c.form != nil {
		return c.updateForm(msg)
	}
	return c, nil
}

func (c Controller) updateForm(msg tea.Msg) (Controller, tea.Cmd) {
	f, cmd := c.form.Update(msg)
	if form, ok := f.(*huh.Form); ok {
		c.form = form
	}

	switch c.form.State {
	case huh.StateCompleted:
		d := c.formDialog
		c.form = nil
		if c.vis.Open(d) {
			c.vis.Toggle(d)
		}
		return c.completeDialog(d)
	case huh.StateAborted:
		if c.vis.Open(c.formDialog) {
			c.vis.Toggle(c.formDialog)
		}
		c.form = nil
		c.data = nil
	}
	return c, cmd
}

func (c Controller) completeDialog(d Dialog) (Controller, tea.Cmd) {
	data := c.data
	c.data = nil
	if data == nil {
		return c, nil
	}

	switch d {
	case DialogTransfer:
		c.txLink = paymentLink(data.to, data.amount, c.env.Store.NetworkID())
		return c, nil

	case DialogEdit:
		return c, func() tea.Msg {
			return EditedMsg{Address: c.address, Name: data.name}
		}

	case DialogExport:
		c.session.SetPassword(data.exportPassword)
		return c, exportCmd(c.session)

	case DialogPassword:
		return c, changePasswordCmd(c.env.Keys, c.address, data.oldPassword, data.newPassword)

	case DialogVerification:
		return c, c.env.Services.RequestVerification(c.address, data.phone)

	case DialogFaucet:
		if data.confirm {
			return c, c.env.Services.RequestFaucet(c.address)
		}
		return c, nil

	case DialogDelete:
		if data.confirm {
			return c, deleteKeyCmd(c.env.Keys, c.address, data.deletePassword)
		}
		return c, nil
	}
	return c, nil
}
