// Package store holds the shared wallet state: accounts, balances,
// certification records and the current network, plus the set of addresses
// currently visible on screen. Views read snapshots; the fetch layer writes
// results back in. Changes are broadcast to channel subscribers.
package store

import (
	"math/big"
	"strings"
	"sync"
	"time"
)

// Account is a wallet entry known to the application. Hardware accounts keep
// their key on an external signing device; everything else lives in the local
// key store.
type Account struct {
	Address  string
	Name     string
	Tags     []string
	Hardware bool
}

// TokenBalance is a single token holding inside a Balance.
type TokenBalance struct {
	Symbol   string
	Decimals uint8
	Balance  *big.Int
}

// Balance is the native balance plus token holdings for one address.
type Balance struct {
	Wei      *big.Int
	Tokens   []TokenBalance
	LoadedAt time.Time
}

// Certification is an attestation issued for an address by an on-chain
// certifier contract, identified by the certifier's name.
type Certification struct {
	Name string
}

// EventType identifies what part of the store changed.
type EventType string

const (
	EventAccountsChanged       EventType = "accounts_changed"
	EventBalanceUpdated        EventType = "balance_updated"
	EventCertificationsUpdated EventType = "certifications_updated"
	EventNetworkChanged        EventType = "network_changed"
	EventVisibilityChanged     EventType = "visibility_changed"
)

// Event is broadcast to subscribers after a mutation. Address is set for
// per-address updates and empty otherwise.
type Event struct {
	Type    EventType
	Address string
}

// Subscriber receives store events.
type Subscriber chan Event

// Store is safe for concurrent use. All addresses are normalized to lower
// case internally, so lookups are case-insensitive.
type Store struct {
	mu             sync.RWMutex
	accounts       map[string]Account
	order          []string
	balances       map[string]Balance
	certifications map[string][]Certification
	networkID      string
	visible        []string
	subscribers    []Subscriber
}

func New() *Store {
	return &Store{
		accounts:       make(map[string]Account),
		balances:       make(map[string]Balance),
		certifications: make(map[string][]Certification),
	}
}

func key(address string) string {
	return strings.ToLower(address)
}

// Subscribe registers a new subscriber and returns its event channel.
func (s *Store) Subscribe() Subscriber {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(Subscriber, 64)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (s *Store) Unsubscribe(ch Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subscribers {
		if sub == ch {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

func (s *Store) notify(event Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.subscribers {
		select {
		case sub <- event:
		default:
			// slow subscriber, drop the event
		}
	}
}

// SetAccounts replaces the account list, preserving the given order.
func (s *Store) SetAccounts(accounts []Account) {
	s.mu.Lock()
	s.accounts = make(map[string]Account, len(accounts))
	s.order = s.order[:0]
	for _, a := range accounts {
		k := key(a.Address)
		s.accounts[k] = a
		s.order = append(s.order, k)
	}
	s.mu.Unlock()
	s.notify(Event{Type: EventAccountsChanged})
}

// AddAccount appends an account; an existing entry for the same address is
// overwritten in place.
func (s *Store) AddAccount(a Account) {
	s.mu.Lock()
	k := key(a.Address)
	if _, ok := s.accounts[k]; !ok {
		s.order = append(s.order, k)
	}
	s.accounts[k] = a
	s.mu.Unlock()
	s.notify(Event{Type: EventAccountsChanged, Address: a.Address})
}

// RemoveAccount drops an account and any per-address state held for it.
func (s *Store) RemoveAccount(address string) {
	s.mu.Lock()
	k := key(address)
	delete(s.accounts, k)
	delete(s.balances, k)
	delete(s.certifications, k)
	for i, o := range s.order {
		if o == k {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.notify(Event{Type: EventAccountsChanged, Address: address})
}

// Account looks up one account by address.
func (s *Store) Account(address string) (Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[key(address)]
	return a, ok
}

// Accounts returns all accounts in insertion order.
func (s *Store) Accounts() []Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Account, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.accounts[k])
	}
	return out
}

// Balance looks up the last loaded balance for an address.
func (s *Store) Balance(address string) (Balance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.balances[key(address)]
	return b, ok
}

// SetBalance records a freshly loaded balance. Results for addresses that are
// no longer visible are stored all the same; stale data is harmless here.
func (s *Store) SetBalance(address string, b Balance) {
	s.mu.Lock()
	s.balances[key(address)] = b
	s.mu.Unlock()
	s.notify(Event{Type: EventBalanceUpdated, Address: address})
}

// Certifications returns the certification records for an address, nil when
// none are known.
func (s *Store) Certifications(address string) []Certification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.certifications[key(address)]
}

// CertificationMap returns a snapshot of all certification records keyed by
// lower-cased address.
func (s *Store) CertificationMap() map[string][]Certification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]Certification, len(s.certifications))
	for k, v := range s.certifications {
		out[k] = v
	}
	return out
}

// SetCertifications records fetched certification data for an address.
func (s *Store) SetCertifications(address string, certs []Certification) {
	s.mu.Lock()
	s.certifications[key(address)] = certs
	s.mu.Unlock()
	s.notify(Event{Type: EventCertificationsUpdated, Address: address})
}

// NetworkID returns the connected network identifier, empty until known.
func (s *Store) NetworkID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.networkID
}

func (s *Store) SetNetworkID(id string) {
	s.mu.Lock()
	s.networkID = id
	s.mu.Unlock()
	s.notify(Event{Type: EventNetworkChanged})
}

// SetVisibleAccounts replaces the visible-accounts set.
func (s *Store) SetVisibleAccounts(addresses []string) {
	s.mu.Lock()
	s.visible = make([]string, 0, len(addresses))
	for _, a := range addresses {
		s.visible = append(s.visible, key(a))
	}
	s.mu.Unlock()
	s.notify(Event{Type: EventVisibilityChanged})
}

// ClearVisibleAccounts empties the visible-accounts set. Safe to call more
// than once.
func (s *Store) ClearVisibleAccounts() {
	s.mu.Lock()
	s.visible = nil
	s.mu.Unlock()
	s.notify(Event{Type: EventVisibilityChanged})
}

// VisibleAccounts returns the visible-accounts set, lower-cased.
func (s *Store) VisibleAccounts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.visible))
	copy(out, s.visible)
	return out
}
