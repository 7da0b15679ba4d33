package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"

	"wallet-account-tui/config"
	"wallet-account-tui/rpc"
	"wallet-account-tui/store"
	account "wallet-account-tui/views/account"
)

// -------------------- COMMAND FUNCTIONS --------------------

// connectRPC establishes the RPC connection to the Ethereum node.
func connectRPC(url string) tea.Cmd {
	return func() tea.Msg {
		client, err := rpc.Connect(url)
		return rpcConnectedMsg{client: client, err: err}
	}
}

// fetchNetworkID queries the network identifier once connected.
func fetchNetworkID(client *rpc.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer cancel()
		id, err := client.NetworkID(ctx)
		return networkIDMsg{id: id, err: err}
	}
}

// waitForStore blocks on the store subscription and delivers the next change
// notification; update re-arms it after each event.
func waitForStore(sub store.Subscriber) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-sub
		if !ok {
			return nil
		}
		return storeEventMsg{event: ev}
	}
}

// initLogViewport initializes the log viewport.
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// -------------------- SERVICES --------------------

// services implements the account page's fetch and request collaborators.
// Fetch results are merged into the shared store here, not by the page.
type services struct {
	st              *store.Store
	certifiers      []rpc.Certifier
	tokens          []rpc.WatchedToken
	faucetURL       string
	verificationURL string
	rpcURL          string
	report          func(error)

	// set once the connection attempt finishes; nil means not connected
	client *rpc.Client
}

func (s *services) FetchBalance(address string) tea.Cmd {
	return func() tea.Msg {
		client := s.client
		if client == nil {
			return account.BalanceLoadedMsg{Address: address, Err: errors.New("no RPC connection")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
		defer cancel()

		res, err := client.LoadBalance(ctx, common.HexToAddress(address), s.tokens)
		if err != nil {
			return account.BalanceLoadedMsg{Address: address, Err: err}
		}

		toks := make([]store.TokenBalance, 0, len(res.Tokens))
		for _, t := range res.Tokens {
			toks = append(toks, store.TokenBalance{Symbol: t.Symbol, Decimals: t.Decimals, Balance: t.Balance})
		}
		s.st.SetBalance(address, store.Balance{Wei: res.Wei, Tokens: toks, LoadedAt: res.LoadedAt})
		return account.BalanceLoadedMsg{Address: address}
	}
}

func (s *services) FetchCertifications(address string) tea.Cmd {
	return func() tea.Msg {
		client := s.client
		if client == nil {
			// conservative: predicates stay false until data arrives
			return account.CertificationsLoadedMsg{Address: address}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
		defer cancel()

		names := client.FetchCertifications(ctx, common.HexToAddress(address), s.certifiers)
		certs := make([]store.Certification, 0, len(names))
		for _, n := range names {
			certs = append(certs, store.Certification{Name: n})
		}
		s.st.SetCertifications(address, certs)
		return account.CertificationsLoadedMsg{Address: address}
	}
}

func (s *services) RequestFaucet(address string) tea.Cmd {
	return func() tea.Msg {
		return account.FaucetResultMsg{Address: address, Err: postJSON(s.faucetURL, address, "")}
	}
}

func (s *services) RequestVerification(address, phone string) tea.Cmd {
	return func() tea.Msg {
		return account.VerificationStartedMsg{Address: address, Err: postJSON(s.verificationURL, address, phone)}
	}
}

// postJSON fires a small request at one of the helper services. The caller
// only learns success or failure; any payload is ignored.
func postJSON(url, address, phone string) error {
	if url == "" {
		return errors.New("no service endpoint configured")
	}
	body := fmt.Sprintf(`{"address":%q}`, address)
	if phone != "" {
		body = fmt.Sprintf(`{"address":%q,"number":%q}`, address, phone)
	}
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("service returned %s", resp.Status)
	}
	return nil
}

// -------------------- CONFIG CONVERSIONS --------------------

func certifiersFromConfig(cfg config.Config) []rpc.Certifier {
	out := make([]rpc.Certifier, 0, len(cfg.Certifiers))
	for _, c := range cfg.Certifiers {
		if !common.IsHexAddress(c.Address) {
			continue
		}
		out = append(out, rpc.Certifier{Name: c.Name, Address: common.HexToAddress(c.Address)})
	}
	return out
}

func tokensFromConfig(cfg config.Config) []rpc.WatchedToken {
	out := make([]rpc.WatchedToken, 0, len(cfg.Tokens))
	for _, t := range cfg.Tokens {
		if !common.IsHexAddress(t.Address) {
			continue
		}
		out = append(out, rpc.WatchedToken{Symbol: t.Symbol, Decimals: t.Decimals, Address: common.HexToAddress(t.Address)})
	}
	return out
}
