package main

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"wallet-account-tui/config"
	"wallet-account-tui/hardware"
	"wallet-account-tui/keys"
	"wallet-account-tui/store"
	account "wallet-account-tui/views/account"
)

const testAddr = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

// hostModel builds a model on the account page with a recording reporter,
// bypassing the on-disk config.
func hostModel(t *testing.T) (model, *[]error) {
	t.Helper()
	st := store.New()
	st.SetAccounts([]store.Account{{Address: testAddr}})

	reported := &[]error{}
	svc := &services{st: st}
	svc.report = func(err error) { *reported = append(*reported, err) }

	m := model{
		activePage: pageAccount,
		cfg: config.Config{
			Accounts:    []config.AccountEntry{{Address: testAddr}},
			DownloadDir: t.TempDir(),
		},
		configPath: filepath.Join(t.TempDir(), "config.json"),
		st:         st,
		svc:        svc,
		hw:         hardware.NewMonitor(),
		ks:         keys.Open(t.TempDir()),
		logger:     log.New(io.Discard),
	}
	m.detail, _ = account.Mount(m.collaborators(), testAddr)
	m.mounted = true
	return m, reported
}

func TestDeleteFailureReachesReporter(t *testing.T) {
	m, reported := hostModel(t)

	next, _ := m.Update(account.DeletedMsg{
		Address: testAddr,
		Err:     errors.New("could not decrypt key with given password"),
	})
	got := next.(model)

	assert.Len(t, *reported, 1, "a failed deletion must reach the error reporter")
	assert.True(t, got.mounted, "a failed deletion must keep the page open")
	assert.Equal(t, pageAccount, got.activePage)
	_, ok := got.st.Account(testAddr)
	assert.True(t, ok, "the account must survive a failed deletion")
}

func TestDeleteSuccessRemovesAccountAndLeavesPage(t *testing.T) {
	m, reported := hostModel(t)

	next, _ := m.Update(account.DeletedMsg{Address: testAddr})
	got := next.(model)

	assert.Empty(t, *reported)
	assert.False(t, got.mounted)
	assert.Equal(t, pageAccounts, got.activePage)
	_, ok := got.st.Account(testAddr)
	assert.False(t, ok, "the account should be gone after deletion")
	assert.Empty(t, got.cfg.Accounts, "the config entry should be gone after deletion")
}
