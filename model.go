package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"wallet-account-tui/config"
	"wallet-account-tui/hardware"
	"wallet-account-tui/keys"
	"wallet-account-tui/store"
	"wallet-account-tui/styles"
	account "wallet-account-tui/views/account"
)

// -------------------- MODEL --------------------

type page int

const (
	pageAccounts page = iota
	pageAccount
)

// addValues backs the add-account form; heap allocated so the huh bindings
// survive model copies.
type addValues struct {
	address  string
	name     string
	hardware bool
}

// model is the application state following The Elm Architecture.
type model struct {
	w, h int

	activePage page

	cfg        config.Config
	configPath string

	st  *store.Store
	sub store.Subscriber

	svc *services
	hw  *hardware.Monitor
	ks  *keys.Store

	// accounts page
	selected int
	adding   bool
	addForm  *huh.Form
	addData  *addValues
	addError string

	// account page
	detail  account.Controller
	mounted bool

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *strings.Builder
	logViewport viewport.Model
	logReady    bool

	spin spinner.Model
}

func newModel() model {
	configPath := config.DefaultPath()
	cfg := config.LoadOrCreate(configPath)

	st := store.New()
	st.SetAccounts(accountsFromConfig(cfg))

	// rpc URL: environment wins over config
	rpcURL := strings.TrimSpace(os.Getenv("ETH_RPC_URL"))
	if rpcURL == "" {
		for _, r := range cfg.RPCURLs {
			if r.Active {
				rpcURL = r.URL
				break
			}
		}
	}

	buf := &strings.Builder{}
	logger := log.New(buf)
	logger.SetLevel(log.DebugLevel)

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	vp := viewport.New(0, 15)
	vp.Style = lipgloss.NewStyle().Foreground(styles.CText).Background(styles.CPanel)

	svc := &services{
		st:              st,
		certifiers:      certifiersFromConfig(cfg),
		tokens:          tokensFromConfig(cfg),
		faucetURL:       cfg.FaucetURL,
		verificationURL: cfg.VerificationURL,
		rpcURL:          rpcURL,
	}
	svc.report = func(err error) {
		if err != nil {
			logger.Error(err.Error())
		}
	}

	m := model{
		activePage:  pageAccounts,
		cfg:         cfg,
		configPath:  configPath,
		st:          st,
		sub:         st.Subscribe(),
		svc:         svc,
		hw:          hardware.NewMonitor(),
		ks:          keys.Open(cfg.KeystoreDir),
		logEnabled:  cfg.Logger,
		logger:      logger,
		logBuffer:   buf,
		logViewport: vp,
		spin:        sp,
	}
	return m
}

// collaborators assembles the injected context for the account page.
func (m *model) collaborators() account.Collaborators {
	return account.Collaborators{
		Store:       m.st,
		Hardware:    m.hw,
		Exporter:    m.ks,
		Keys:        m.ks,
		Services:    m.svc,
		Report:      m.svc.report,
		DownloadDir: m.cfg.DownloadDir,
	}
}

func accountsFromConfig(cfg config.Config) []store.Account {
	out := make([]store.Account, 0, len(cfg.Accounts))
	for _, a := range cfg.Accounts {
		out = append(out, store.Account{
			Address:  a.Address,
			Name:     a.Name,
			Tags:     a.Tags,
			Hardware: a.Hardware,
		})
	}
	return out
}

// Init implements tea.Model and issues the startup commands.
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, waitForStore(m.sub)}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport())
	}
	if m.svc.rpcURL != "" {
		cmds = append(cmds, connectRPC(m.svc.rpcURL))
	}
	return tea.Batch(cmds...)
}
