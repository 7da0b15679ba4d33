package account

import (
	"math/big"
	"testing"

	"wallet-account-tui/store"
)

const testAddr = "0xabcdef0123456789abcdef0123456789abcdef01"

func findAction(actions []Action, d Dialog) (Action, bool) {
	for _, a := range actions {
		if a.Dialog == d {
			return a, true
		}
	}
	return Action{}, false
}

func tokenBalance() store.Balance {
	return store.Balance{
		Wei:    big.NewInt(1e18),
		Tokens: []store.TokenBalance{{Symbol: "USDC", Decimals: 6, Balance: big.NewInt(5e6)}},
	}
}

func TestTransferEnablement(t *testing.T) {
	acct := store.Account{Address: testAddr}

	t.Run("no balance", func(t *testing.T) {
		actions := buildActions(acct, store.Balance{}, false, "1", nil)
		a, _ := findAction(actions, DialogTransfer)
		if a.Enabled {
			t.Error("transfer must be disabled without a balance")
		}
	})

	t.Run("empty token sequence", func(t *testing.T) {
		actions := buildActions(acct, store.Balance{Wei: big.NewInt(1)}, true, "1", nil)
		a, _ := findAction(actions, DialogTransfer)
		if a.Enabled {
			t.Error("transfer must be disabled with no token holdings")
		}
	})

	t.Run("with holdings", func(t *testing.T) {
		actions := buildActions(acct, tokenBalance(), true, "1", nil)
		a, _ := findAction(actions, DialogTransfer)
		if !a.Enabled {
			t.Error("transfer should be enabled with token holdings")
		}
	})
}

func TestNetworkGatedActions(t *testing.T) {
	acct := store.Account{Address: testAddr}

	t.Run("kovan uncertified", func(t *testing.T) {
		// faucet present, verify absent
		actions := buildActions(acct, store.Balance{}, false, "42", nil)
		if _, ok := findAction(actions, DialogFaucet); !ok {
			t.Error("faucet should be present on Kovan")
		}
		if _, ok := findAction(actions, DialogVerification); ok {
			t.Error("verify should be absent off mainnet")
		}
	})

	t.Run("mainnet sms certified", func(t *testing.T) {
		certs := map[string][]store.Certification{
			testAddr: {{Name: "smsverification-1"}},
		}
		actions := buildActions(acct, store.Balance{}, false, "1", certs)
		if _, ok := findAction(actions, DialogFaucet); !ok {
			t.Error("faucet should be present for certified mainnet address")
		}
		if _, ok := findAction(actions, DialogVerification); !ok {
			t.Error("verify should be present on mainnet")
		}
	})

	t.Run("mainnet uncertified", func(t *testing.T) {
		actions := buildActions(acct, store.Balance{}, false, "1", nil)
		if _, ok := findAction(actions, DialogFaucet); ok {
			t.Error("faucet should be absent for uncertified mainnet address")
		}
	})
}

func TestPasswordActionHiddenForHardware(t *testing.T) {
	hw := store.Account{Address: testAddr, Hardware: true}
	actions := buildActions(hw, store.Balance{}, false, "1", nil)
	if _, ok := findAction(actions, DialogPassword); ok {
		t.Error("password action must be absent for hardware accounts")
	}

	local := store.Account{Address: testAddr}
	actions = buildActions(local, store.Balance{}, false, "1", nil)
	if _, ok := findAction(actions, DialogPassword); !ok {
		t.Error("password action should be present for local accounts")
	}
}

func TestActionOrderIsFixed(t *testing.T) {
	acct := store.Account{Address: testAddr}
	certs := map[string][]store.Certification{testAddr: {{Name: "smsverification"}}}
	actions := buildActions(acct, tokenBalance(), true, "1", certs)

	want := []Dialog{
		DialogTransfer, DialogFund, DialogVerification, DialogFaucet,
		DialogEdit, DialogExport, DialogPassword, DialogDelete,
	}
	if len(actions) != len(want) {
		t.Fatalf("got %d actions, want %d", len(actions), len(want))
	}
	for i, d := range want {
		if actions[i].Dialog != d {
			t.Errorf("action[%d] = %s, want %s", i, actions[i].Dialog, d)
		}
	}
}
