// Package export implements the per-view export session: a password buffer
// and a commit action bound to the account being shown. A session lives
// exactly as long as the account page that created it and is never shared.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wallet-account-tui/store"
)

// Exporter produces the serialized, password-encrypted form of an account.
// The key store owns the format.
type Exporter interface {
	Export(address, password string) ([]byte, error)
}

// Session holds the export state for one mounted account view. Failures are
// handed to the report callback instead of being returned; render code never
// deals with export errors directly.
type Session struct {
	account  store.Account
	address  string
	exporter Exporter
	dir      string
	report   func(error)

	password string
}

// NewSession builds a session scoped to the address being viewed. report
// must be non-nil.
func NewSession(account store.Account, address string, exporter Exporter, dir string, report func(error)) *Session {
	return &Session{
		account:  account,
		address:  address,
		exporter: exporter,
		dir:      dir,
		report:   report,
	}
}

// Address returns the address this session was mounted for.
func (s *Session) Address() string {
	return s.address
}

// Password returns the current password buffer.
func (s *Session) Password() string {
	return s.password
}

// SetPassword replaces the password buffer.
func (s *Session) SetPassword(p string) {
	s.password = p
}

// Export writes the encoded account to the download directory and returns
// the written path, or the empty string after reporting a failure.
func (s *Session) Export() string {
	if s.account.Hardware {
		s.report(fmt.Errorf("export %s: hardware accounts hold no local key", s.address))
		return ""
	}
	blob, err := s.exporter.Export(s.address, s.password)
	if err != nil {
		s.report(err)
		return ""
	}
	name := strings.ToLower(s.address) + ".json"
	path := filepath.Join(s.dir, name)
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.report(fmt.Errorf("export %s: %w", s.address, err))
		return ""
	}
	if err := os.WriteFile(path, blob, 0o600); err != nil {
		s.report(fmt.Errorf("export %s: %w", s.address, err))
		return ""
	}
	return path
}
