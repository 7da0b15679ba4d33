// Package config persists the application configuration as a JSON file in
// the user's home directory.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the on-disk application configuration.
type Config struct {
	RPCURLs         []RPCUrl         `json:"rpc_urls"`
	Accounts        []AccountEntry   `json:"accounts"`
	Certifiers      []CertifierEntry `json:"certifiers"`
	Tokens          []TokenEntry     `json:"tokens"`
	FaucetURL       string           `json:"faucet_url,omitempty"`
	VerificationURL string           `json:"verification_url,omitempty"`
	KeystoreDir     string           `json:"keystore_dir,omitempty"`
	DownloadDir     string           `json:"download_dir,omitempty"`
	Logger          bool             `json:"logger"`
}

// RPCUrl is a configured RPC endpoint.
type RPCUrl struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// AccountEntry is a tracked account. Hardware marks accounts whose key lives
// on an external signing device.
type AccountEntry struct {
	Address  string   `json:"address"`
	Name     string   `json:"name,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Hardware bool     `json:"hardware,omitempty"`
}

// CertifierEntry is an on-chain certifier contract queried for attestation
// records.
type CertifierEntry struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// TokenEntry is an ERC-20 contract included in balance loads.
type TokenEntry struct {
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	Address  string `json:"address"`
}

// DefaultPath returns the standard config location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".account-tui.json")
}

// Load reads the config from path, returning the zero Config on any error.
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// Save writes the config to path, best effort.
func Save(path string, cfg Config) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o644)
}

// LoadOrCreate loads the config at path, writing and returning the defaults
// when the file is missing or unreadable.
func LoadOrCreate(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		cfg := Default()
		Save(path, cfg)
		return cfg
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default()
	}
	return cfg
}

// Default returns a configuration with a public mainnet endpoint, the usual
// stablecoin watchlist and the mainnet verification certifiers.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		RPCURLs: []RPCUrl{
			{Name: "Public Mainnet", URL: "https://ethereum-rpc.publicnode.com", Active: true},
		},
		Accounts: []AccountEntry{
			{Name: "vitalik.eth", Address: "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"},
		},
		Certifiers: []CertifierEntry{
			{Name: "smsverification", Address: "0x7B3F58965439b22ef1dA4BB57f1DeDaB831C90f9"},
			{Name: "emailverification", Address: "0x1812c729Be69aA13fEBE7F8e3eE3b977Cd151F8f"},
		},
		Tokens: []TokenEntry{
			{Symbol: "WETH", Decimals: 18, Address: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"},
			{Symbol: "USDC", Decimals: 6, Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"},
			{Symbol: "USDT", Decimals: 6, Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7"},
			{Symbol: "DAI", Decimals: 18, Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F"},
		},
		FaucetURL:       "https://faucet.kovan.network/api/drip",
		VerificationURL: "https://sms-verification.parity.io/api/request",
		KeystoreDir:     filepath.Join(home, ".account-tui", "keystore"),
		DownloadDir:     filepath.Join(home, "Downloads"),
		Logger:          false,
	}
}
