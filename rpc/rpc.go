// Package rpc talks to the Ethereum node: connection handling, network
// identification, balance loading and certification queries against the
// on-chain certifier contracts.
package rpc

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Client wraps an Ethereum RPC client.
type Client struct {
	*ethclient.Client
	URL string
}

// Connect dials an RPC endpoint with the default timeout.
func Connect(url string) (*Client, error) {
	return ConnectWithTimeout(url, 8*time.Second)
}

// ConnectWithTimeout dials an RPC endpoint with a custom timeout.
func ConnectWithTimeout(url string, timeout time.Duration) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return &Client{Client: client, URL: url}, nil
}

// NetworkID returns the connected network's identifier in decimal string
// form ("1" for mainnet, "42" for Kovan).
func (c *Client) NetworkID(ctx context.Context) (string, error) {
	id, err := c.Client.NetworkID(ctx)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Four-byte call selectors, derived once from the canonical signatures.
var (
	balanceOfSelector = crypto.Keccak256([]byte("balanceOf(address)"))[:4]
	certifiedSelector = crypto.Keccak256([]byte("certified(address)"))[:4]
)

// addressCall runs a constant contract call taking a single address argument
// and returns the raw result words.
func addressCall(ctx context.Context, client *ethclient.Client, contract common.Address, selector []byte, arg common.Address) ([]byte, error) {
	data := append(append([]byte{}, selector...), common.LeftPadBytes(arg.Bytes(), 32)...)
	msg := ethereum.CallMsg{To: &contract, Data: data}
	return client.CallContract(ctx, msg, nil)
}

// WatchedToken is an ERC-20 contract to include in balance loads.
type WatchedToken struct {
	Symbol   string
	Decimals uint8
	Address  common.Address
}

// TokenBalance is a non-zero holding found during a balance load.
type TokenBalance struct {
	Symbol   string
	Decimals uint8
	Balance  *big.Int
}

// BalanceResult is the outcome of one balance load. Individual token query
// failures are skipped, not fatal.
type BalanceResult struct {
	Address  string
	Wei      *big.Int
	Tokens   []TokenBalance
	LoadedAt time.Time
}

// LoadBalance fetches the native balance and the non-zero watchlist token
// holdings for an address.
func (c *Client) LoadBalance(ctx context.Context, addr common.Address, watch []WatchedToken) (BalanceResult, error) {
	res := BalanceResult{
		Address:  addr.Hex(),
		Wei:      big.NewInt(0),
		LoadedAt: time.Now(),
	}

	wei, err := c.BalanceAt(ctx, addr, nil)
	if err != nil {
		return res, err
	}
	res.Wei = wei

	for _, t := range watch {
		out, err := addressCall(ctx, c.Client, t.Address, balanceOfSelector, addr)
		if err != nil || len(out) == 0 {
			continue
		}
		bal := new(big.Int).SetBytes(out)
		if bal.Sign() > 0 {
			res.Tokens = append(res.Tokens, TokenBalance{
				Symbol:   t.Symbol,
				Decimals: t.Decimals,
				Balance:  bal,
			})
		}
	}

	return res, nil
}

// Certifier is an on-chain attestation contract exposing
// certified(address) -> bool.
type Certifier struct {
	Name    string
	Address common.Address
}

// FetchCertifications queries each certifier for the address and returns the
// names of those that attest to it. A failing certifier query counts as not
// certified rather than an error; a missing answer only makes the
// eligibility predicates conservative.
func (c *Client) FetchCertifications(ctx context.Context, addr common.Address, certifiers []Certifier) []string {
	var names []string
	for _, cert := range certifiers {
		out, err := addressCall(ctx, c.Client, cert.Address, certifiedSelector, addr)
		if err != nil || len(out) < 32 {
			continue
		}
		if new(big.Int).SetBytes(out[:32]).Sign() > 0 {
			names = append(names, cert.Name)
		}
	}
	return names
}
