package registry

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// HolderIndex records every account that has ever held a non-zero balance, in
// the order each account was first credited. An account appears at most once;
// later balance activity never re-appends it. The index is the target list
// for the shutdown sweep, so missing an account here means that account's
// balance survives shutdown.
type HolderIndex struct {
	order []string
	seen  map[string]time.Time
	mu    sync.RWMutex
	log   *logrus.Logger
}

func NewHolderIndex() *HolderIndex {
	return &HolderIndex{
		order: []string{},
		seen:  make(map[string]time.Time),
		log:   logrus.StandardLogger(),
	}
}

// SetLogger replaces the index's logger (standard logrus logger by default).
func (hi *HolderIndex) SetLogger(log *logrus.Logger) {
	if log != nil {
		hi.log = log
	}
}

// Record appends an account on first sight. Idempotent; safe to call from the
// ledger's credit hook on every credit.
func (hi *HolderIndex) Record(account string) {
	if account == "" {
		return
	}

	hi.mu.Lock()
	defer hi.mu.Unlock()

	if _, exists := hi.seen[account]; exists {
		return
	}
	hi.seen[account] = time.Now()
	hi.order = append(hi.order, account)

	hi.log.WithFields(logrus.Fields{
		"account":  account,
		"position": len(hi.order) - 1,
	}).Debug("holder recorded")
}

// Seen reports whether an account has ever been recorded.
func (hi *HolderIndex) Seen(account string) bool {
	hi.mu.RLock()
	defer hi.mu.RUnlock()
	_, exists := hi.seen[account]
	return exists
}

// FirstSeen returns when an account was first recorded.
func (hi *HolderIndex) FirstSeen(account string) (time.Time, bool) {
	hi.mu.RLock()
	defer hi.mu.RUnlock()
	at, exists := hi.seen[account]
	return at, exists
}

// Holders returns a copy of the index in insertion order.
func (hi *HolderIndex) Holders() []string {
	hi.mu.RLock()
	defer hi.mu.RUnlock()

	holders := make([]string, len(hi.order))
	copy(holders, hi.order)
	return holders
}

func (hi *HolderIndex) Len() int {
	hi.mu.RLock()
	defer hi.mu.RUnlock()
	return len(hi.order)
}
