package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"wallet-account-tui/config"
	"wallet-account-tui/helpers"
	"wallet-account-tui/store"
	account "wallet-account-tui/views/account"
)

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.logViewport.Width = helpers.Max(0, msg.Width-6)
		if m.mounted {
			m.detail = m.detail.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		if m.mounted {
			m.detail, cmd = m.detail.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case rpcConnectedMsg:
		if msg.err != nil {
			m.logger.Error("rpc connection failed", "err", msg.err)
			return m, nil
		}
		m.svc.client = msg.client
		m.logger.Info("connected", "url", m.svc.rpcURL)
		return m, fetchNetworkID(msg.client)

	case networkIDMsg:
		if msg.err != nil {
			m.logger.Error("network id lookup failed", "err", msg.err)
			return m, nil
		}
		m.st.SetNetworkID(msg.id)
		m.logger.Info("network", "id", msg.id)
		return m, nil

	case storeEventMsg:
		// redraw on store changes and keep listening
		if msg.event.Type == store.EventNetworkChanged && m.mounted {
			// action bar gating depends on the network id
			m.logger.Debug("network changed", "id", m.st.NetworkID())
		}
		return m, waitForStore(m.sub)

	case logInitMsg:
		m.logReady = true
		return m, nil

	case account.ForgottenMsg:
		return m.removeAccount(msg.Address)

	case account.DeletedMsg:
		if msg.Err != nil {
			// the page reports the failure and stays open
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		return m.removeAccount(msg.Address)

	case account.EditedMsg:
		m.st.AddAccount(m.editedAccount(msg.Address, msg.Name))
		config.Save(m.configPath, m.cfg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// everything else flows to whichever component is active
	if m.adding && m.addForm != nil {
		return m.updateAddForm(msg)
	}
	if m.mounted {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.activePage == pageAccount {
		return m.handleAccountKey(msg)
	}
	return m.handleAccountsKey(msg)
}

// -------------------- ACCOUNTS PAGE --------------------

func (m model) handleAccountsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.adding && m.addForm != nil {
		if msg.String() == "esc" {
			m.adding = false
			m.addForm = nil
			m.addData = nil
			m.addError = ""
			return m, nil
		}
		return m.updateAddForm(msg)
	}

	list := m.st.Accounts()
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "down", "j":
		if m.selected < len(list)-1 {
			m.selected++
		}
		return m, nil

	case "enter":
		if len(list) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.detail, cmd = account.Mount(m.collaborators(), list[m.selected].Address)
		m.detail = m.detail.SetSize(m.w, m.h)
		m.mounted = true
		m.activePage = pageAccount
		return m, cmd

	case "a":
		m.addData = &addValues{}
		m.addForm = newAddForm(m.addData)
		m.adding = true
		m.addError = ""
		return m, m.addForm.Init()

	case "l":
		m.logEnabled = !m.logEnabled
		m.cfg.Logger = m.logEnabled
		config.Save(m.configPath, m.cfg)
		if m.logEnabled && !m.logReady {
			return m, initLogViewport()
		}
		return m, nil
	}
	return m, nil
}

func newAddForm(data *addValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Address").
				Placeholder("0x…").
				Value(&data.address),
			huh.NewInput().
				Title("Name").
				Placeholder("optional").
				Value(&data.name),
			huh.NewConfirm().
				Title("Hardware account?").
				Affirmative("Yes").
				Negative("No").
				Value(&data.hardware),
		),
	).WithTheme(huh.ThemeCatppuccin())
}

func (m model) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	f, cmd := m.addForm.Update(msg)
	if form, ok := f.(*huh.Form); ok {
		m.addForm = form
	}

	switch m.addForm.State {
	case huh.StateCompleted:
		data := m.addData
		m.adding = false
		m.addForm = nil
		m.addData = nil
		if !helpers.IsValidEthAddress(data.address) {
			m.addError = "not a valid address: " + data.address
			return m, nil
		}
		m.addError = ""
		acct := store.Account{Address: data.address, Name: data.name, Hardware: data.hardware}
		m.st.AddAccount(acct)
		m.cfg.Accounts = append(m.cfg.Accounts, config.AccountEntry{
			Address:  acct.Address,
			Name:     acct.Name,
			Hardware: acct.Hardware,
		})
		config.Save(m.configPath, m.cfg)
		m.logger.Info("account added", "address", helpers.ShortenAddr(acct.Address))
		return m, nil

	case huh.StateAborted:
		m.adding = false
		m.addForm = nil
		m.addData = nil
		return m, nil
	}
	return m, cmd
}

// -------------------- ACCOUNT PAGE --------------------

func (m model) handleAccountKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Esc leaves the page unless a dialog wants it first.
	if msg.String() == "esc" && !m.detail.DialogOpen() {
		return m.leaveAccountPage()
	}

	if !m.detail.DialogOpen() {
		switch msg.String() {
		case "[":
			return m.retargetNeighbor(-1)
		case "]":
			return m.retargetNeighbor(+1)
		case "l":
			m.logEnabled = !m.logEnabled
			m.cfg.Logger = m.logEnabled
			config.Save(m.configPath, m.cfg)
			if m.logEnabled && !m.logReady {
				return m, initLogViewport()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m model) leaveAccountPage() (tea.Model, tea.Cmd) {
	m.detail.Unmount()
	m.mounted = false
	m.activePage = pageAccounts
	return m, nil
}

// retargetNeighbor re-points the mounted page at the previous or next account
// in the list without unmounting.
func (m model) retargetNeighbor(dir int) (tea.Model, tea.Cmd) {
	list := m.st.Accounts()
	if len(list) < 2 {
		return m, nil
	}
	next := (m.selected + dir + len(list)) % len(list)
	m.selected = next

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Retarget(list[next].Address)
	m.detail = m.detail.SetSize(m.w, m.h)
	return m, cmd
}

// -------------------- ACCOUNT MUTATIONS --------------------

// removeAccount drops the account from the store and the config and returns
// to the list page.
func (m model) removeAccount(address string) (tea.Model, tea.Cmd) {
	m.st.RemoveAccount(address)

	kept := m.cfg.Accounts[:0]
	for _, a := range m.cfg.Accounts {
		if !equalAddr(a.Address, address) {
			kept = append(kept, a)
		}
	}
	m.cfg.Accounts = kept
	config.Save(m.configPath, m.cfg)
	m.logger.Info("account removed", "address", helpers.ShortenAddr(address))

	if n := len(m.st.Accounts()); m.selected >= n && n > 0 {
		m.selected = n - 1
	} else if n == 0 {
		m.selected = 0
	}
	return m.leaveAccountPage()
}

func (m model) editedAccount(address, name string) store.Account {
	acct, _ := m.st.Account(address)
	acct.Address = address
	acct.Name = name
	for i, a := range m.cfg.Accounts {
		if equalAddr(a.Address, address) {
			m.cfg.Accounts[i].Name = name
		}
	}
	return acct
}

func equalAddr(a, b string) bool {
	return strings.EqualFold(a, b)
}
