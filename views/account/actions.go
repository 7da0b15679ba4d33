package account

import (
	"wallet-account-tui/eligibility"
	"wallet-account-tui/store"
)

// Action is one entry of the account page's action bar. Actions toggle their
// dialog's visibility flag; they never open a dialog directly.
type Action struct {
	Dialog  Dialog
	Label   string
	Key     string
	Enabled bool
}

// buildActions assembles the action bar in fixed order. Presence depends on
// the network and certification context, enablement on the balance; both are
// recomputed on every render.
func buildActions(acct store.Account, bal store.Balance, hasBalance bool, networkID string, certs map[string][]store.Certification) []Action {
	actions := []Action{
		{Dialog: DialogTransfer, Label: "transfer", Key: "t",
			Enabled: hasBalance && len(bal.Tokens) > 0},
		{Dialog: DialogFund, Label: "fund", Key: "f", Enabled: true},
	}
	if eligibility.IsVerifiable(networkID) {
		actions = append(actions, Action{Dialog: DialogVerification, Label: "verify", Key: "v", Enabled: true})
	}
	if eligibility.IsFaucetEligible(networkID, certs, acct.Address) {
		actions = append(actions, Action{Dialog: DialogFaucet, Label: "faucet", Key: "a", Enabled: true})
	}
	actions = append(actions,
		Action{Dialog: DialogEdit, Label: "edit", Key: "e", Enabled: true},
		Action{Dialog: DialogExport, Label: "export", Key: "x", Enabled: true},
	)
	if !acct.Hardware {
		actions = append(actions, Action{Dialog: DialogPassword, Label: "password", Key: "p", Enabled: true})
	}
	actions = append(actions, Action{Dialog: DialogDelete, Label: "delete", Key: "d", Enabled: true})
	return actions
}
