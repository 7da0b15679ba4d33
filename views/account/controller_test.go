package account

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"wallet-account-tui/store"
)

type fakeServices struct {
	certFetches []string
	balFetches  []string
	faucets     []string
	phones      []string
}

func (f *fakeServices) FetchCertifications(address string) tea.Cmd {
	f.certFetches = append(f.certFetches, address)
	return nil
}

func (f *fakeServices) FetchBalance(address string) tea.Cmd {
	f.balFetches = append(f.balFetches, address)
	return nil
}

func (f *fakeServices) RequestFaucet(address string) tea.Cmd {
	f.faucets = append(f.faucets, address)
	return nil
}

func (f *fakeServices) RequestVerification(address, phone string) tea.Cmd {
	f.phones = append(f.phones, phone)
	return nil
}

type fakeConn map[string]bool

func (f fakeConn) Connected(address string) bool { return f[strings.ToLower(address)] }

type fakeKeys struct {
	deleted []string
	updated []string
	err     error
}

func (f *fakeKeys) Update(address, oldPassword, newPassword string) error {
	f.updated = append(f.updated, address)
	return f.err
}

func (f *fakeKeys) Delete(address, password string) error {
	f.deleted = append(f.deleted, address)
	return f.err
}

type fakeExporter struct {
	err error
}

func (f *fakeExporter) Export(address, password string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte(`{"address":"x"}`), nil
}

func testEnv(t *testing.T) (Collaborators, *store.Store, *fakeServices) {
	t.Helper()
	st := store.New()
	svc := &fakeServices{}
	env := Collaborators{
		Store:       st,
		Hardware:    fakeConn{},
		Exporter:    &fakeExporter{},
		Keys:        &fakeKeys{},
		Services:    svc,
		Report:      func(error) {},
		DownloadDir: t.TempDir(),
	}
	return env, st, svc
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

const (
	addrA = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	addrB = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func TestMountRegistersVisibilityAndFetches(t *testing.T) {
	env, st, svc := testEnv(t)
	st.SetAccounts([]store.Account{{Address: addrA}})

	_, _ = Mount(env, addrA)

	assert.Equal(t, []string{addrA}, st.VisibleAccounts())
	assert.Equal(t, []string{addrA}, svc.certFetches)
	assert.Equal(t, []string{addrA}, svc.balFetches)
}

func TestRetargetReplacesVisibleSet(t *testing.T) {
	env, st, svc := testEnv(t)
	st.SetAccounts([]store.Account{{Address: addrA}, {Address: addrB}})

	c, _ := Mount(env, addrA)
	c, _ = c.Retarget(addrB)

	assert.Equal(t, []string{addrB}, st.VisibleAccounts(), "visible set must be replaced, not extended")
	assert.Equal(t, []string{addrA, addrB}, svc.certFetches, "certification fetch for the new address must be requested")
	assert.Equal(t, addrB, c.Address())
}

func TestUnmountClearsVisibleSet(t *testing.T) {
	env, st, _ := testEnv(t)
	st.SetAccounts([]store.Account{{Address: addrA}})

	c, _ := Mount(env, addrA)
	c.Unmount()
	assert.Empty(t, st.VisibleAccounts())

	// idempotent
	c.Unmount()
	assert.Empty(t, st.VisibleAccounts())
}

func TestMissingAccountRendersEmptyState(t *testing.T) {
	env, _, _ := testEnv(t)

	c, _ := Mount(env, addrA)
	view := c.View()
	assert.Contains(t, view, "No account")

	// action keys must not construct dialogs in the empty state
	c, _ = c.Update(key('d'))
	assert.False(t, c.DialogOpen())
	assert.Nil(t, c.form)
}

func TestActionKeyTogglesDialog(t *testing.T) {
	env, st, _ := testEnv(t)
	st.SetAccounts([]store.Account{{Address: addrA}})
	st.SetNetworkID("1")

	c, _ := Mount(env, addrA)

	c, _ = c.Update(key('e'))
	assert.True(t, c.vis.Open(DialogEdit))
	assert.NotNil(t, c.form)

	// esc closes it again
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, c.vis.Open(DialogEdit))
	assert.Nil(t, c.form)
}

func TestDisabledTransferKeyIgnored(t *testing.T) {
	env, st, _ := testEnv(t)
	st.SetAccounts([]store.Account{{Address: addrA}})

	// no balance loaded: transfer disabled
	c, _ := Mount(env, addrA)
	c, _ = c.Update(key('t'))
	assert.False(t, c.vis.Open(DialogTransfer))

	// with a token holding the same key opens the dialog
	st.SetBalance(addrA, store.Balance{
		Wei:    big.NewInt(1e18),
		Tokens: []store.TokenBalance{{Symbol: "DAI", Decimals: 18, Balance: big.NewInt(1)}},
	})
	c, _ = c.Update(key('t'))
	assert.True(t, c.vis.Open(DialogTransfer))
}

func TestHardwareDeleteVariant(t *testing.T) {
	env, st, _ := testEnv(t)
	st.SetAccounts([]store.Account{{Address: addrA, Hardware: true}})

	c, _ := Mount(env, addrA)
	c, _ = c.Update(key('d'))
	assert.True(t, c.vis.Open(DialogDelete))
	assert.Nil(t, c.form, "hardware delete uses the forget dialog, not a form")
	assert.Contains(t, c.View(), "Forget")

	// confirm emits ForgottenMsg for the host to route back to the list
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyTab})
	c, cmd := c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if assert.NotNil(t, cmd) {
		msg := cmd()
		forgotten, ok := msg.(ForgottenMsg)
		assert.True(t, ok, "want ForgottenMsg, got %T", msg)
		assert.Equal(t, addrA, forgotten.Address)
	}
	assert.False(t, c.vis.Open(DialogDelete))
}

func TestHardwareDisconnectedRendersWarning(t *testing.T) {
	env, st, _ := testEnv(t)
	st.SetAccounts([]store.Account{{Address: addrA, Hardware: true}})

	c, _ := Mount(env, addrA)
	view := c.View()
	assert.Contains(t, view, "disconnected")

	env.Hardware.(fakeConn)[addrA] = true
	view = c.View()
	assert.Contains(t, view, "connected")
}

func TestExportCompletionUsesSessionPassword(t *testing.T) {
	env, st, _ := testEnv(t)
	st.SetAccounts([]store.Account{{Address: addrA}})

	c, _ := Mount(env, addrA)
	c.data = &formValues{exportPassword: "hunter2"}
	c, cmd := c.completeDialog(DialogExport)
	if assert.NotNil(t, cmd) {
		msg := cmd()
		exported, ok := msg.(ExportedMsg)
		assert.True(t, ok, "want ExportedMsg, got %T", msg)
		assert.NotEmpty(t, exported.Path)
	}
	assert.Equal(t, "hunter2", c.session.Password())
}

func TestExportFailureGoesToReporter(t *testing.T) {
	env, st, _ := testEnv(t)
	st.SetAccounts([]store.Account{{Address: addrA}})
	env.Exporter = &fakeExporter{err: errors.New("bad password")}
	var reported []error
	env.Report = func(err error) { reported = append(reported, err) }

	c, _ := Mount(env, addrA)
	c.data = &formValues{exportPassword: "wrong"}
	_, cmd := c.completeDialog(DialogExport)
	msg := cmd()
	exported := msg.(ExportedMsg)
	assert.Empty(t, exported.Path)
	assert.Len(t, reported, 1)
}

func TestFaucetConfirmTriggersRequest(t *testing.T) {
	env, st, svc := testEnv(t)
	st.SetAccounts([]store.Account{{Address: addrA}})
	st.SetNetworkID("42")

	c, _ := Mount(env, addrA)
	c.data = &formValues{confirm: true}
	c, _ = c.completeDialog(DialogFaucet)
	assert.Equal(t, []string{addrA}, svc.faucets)

	c.data = &formValues{confirm: false}
	_, _ = c.completeDialog(DialogFaucet)
	assert.Len(t, svc.faucets, 1, "declining must not fire a request")
}

func TestStaleBalanceResultIgnored(t *testing.T) {
	env, st, _ := testEnv(t)
	st.SetAccounts([]store.Account{{Address: addrA}, {Address: addrB}})

	c, _ := Mount(env, addrA)
	c, _ = c.Retarget(addrB)

	st.SetBalance(addrA, store.Balance{Wei: big.NewInt(5e18)})
	c, _ = c.Update(BalanceLoadedMsg{Address: addrA})
	assert.Empty(t, c.history, "late result for the previous address must not touch page state")

	st.SetBalance(addrB, store.Balance{Wei: big.NewInt(1e18)})
	c, _ = c.Update(BalanceLoadedMsg{Address: addrB})
	assert.Len(t, c.history, 1)
}

func TestRetargetInvalidatesOldRefreshChain(t *testing.T) {
	env, st, svc := testEnv(t)
	st.SetAccounts([]store.Account{{Address: addrA}, {Address: addrB}})

	c, _ := Mount(env, addrA)
	c, _ = c.Retarget(addrB)
	assert.Equal(t, []string{addrA, addrB}, svc.balFetches)

	// a tick armed before the retarget must die without fetching or re-arming
	c, cmd := c.Update(refreshTickMsg{gen: c.refreshGen - 1})
	assert.Nil(t, cmd)
	assert.Equal(t, []string{addrA, addrB}, svc.balFetches)

	// the live chain keeps refreshing the current address
	c, cmd = c.Update(refreshTickMsg{gen: c.refreshGen})
	assert.NotNil(t, cmd)
	assert.Equal(t, []string{addrA, addrB, addrB}, svc.balFetches)
}

func TestTransferCompletionBuildsPaymentLink(t *testing.T) {
	env, st, _ := testEnv(t)
	st.SetAccounts([]store.Account{{Address: addrA}})
	st.SetNetworkID("1")

	c, _ := Mount(env, addrA)
	c.data = &formValues{to: addrB, amount: "1.5"}
	c, _ = c.completeDialog(DialogTransfer)
	assert.Equal(t, "ethereum:"+addrB+"@1?value=1500000000000000000", c.txLink)
	assert.True(t, c.DialogOpen(), "payment overlay counts as an open dialog")
}
