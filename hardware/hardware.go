// Package hardware answers whether the signing device backing a hardware
// account is currently attached. Detection itself happens outside the UI;
// the monitor just tracks the attached set.
package hardware

import (
	"os"
	"strings"
	"sync"
)

// EnvConnected lists attached device addresses, comma separated, for setups
// without a running device daemon.
const EnvConnected = "WALLET_HW_ADDRS"

// Monitor tracks which hardware-account addresses are reachable.
type Monitor struct {
	mu        sync.RWMutex
	connected map[string]bool
}

// NewMonitor seeds the attached set from the WALLET_HW_ADDRS environment
// variable.
func NewMonitor() *Monitor {
	m := &Monitor{connected: make(map[string]bool)}
	for _, addr := range strings.Split(os.Getenv(EnvConnected), ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			m.connected[strings.ToLower(addr)] = true
		}
	}
	return m
}

// Connected reports whether the device holding the address's key is attached.
func (m *Monitor) Connected(address string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected[strings.ToLower(address)]
}

// SetConnected records a device attach or detach.
func (m *Monitor) SetConnected(address string, attached bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if attached {
		m.connected[strings.ToLower(address)] = true
	} else {
		delete(m.connected, strings.ToLower(address))
	}
}
