package token

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// CreditHook is invoked whenever an account's balance moves from zero to
// non-zero. It receives the credited account, not the caller that triggered
// the credit. The hook runs with the token lock held and must not call back
// into the token.
type CreditHook func(account string)

type Token struct {
	Name        string
	Symbol      string
	Decimals    uint8
	totalSupply uint64
	maxSupply   uint64 // 0 = unlimited
	balances    map[string]uint64
	allowances  map[string]map[string]uint64
	creditHook  CreditHook
	events      []Event
	mu          sync.RWMutex
}

func New(name, symbol string, decimals uint8, maxSupply uint64) *Token {
	return &Token{
		Name:       name,
		Symbol:     symbol,
		Decimals:   decimals,
		maxSupply:  maxSupply,
		balances:   make(map[string]uint64),
		allowances: make(map[string]map[string]uint64),
		events:     []Event{},
	}
}

// SetCreditHook registers the zero-to-nonzero balance callback. Only one hook
// is supported; a second call replaces the first.
func (t *Token) SetCreditHook(h CreditHook) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.creditHook = h
}

// credit adds amount to an account's balance and fires the credit hook when
// the balance crosses from zero. Callers must hold t.mu and must have already
// checked for overflow.
func (t *Token) credit(account string, amount uint64) {
	wasZero := t.balances[account] == 0
	t.balances[account] += amount
	if wasZero && amount > 0 && t.creditHook != nil {
		t.creditHook(account)
	}
}

func (t *Token) validateAddress(address string) bool {
	return address != "" && len(address) < 256
}

// generateTxHash produces a unique identifier for emitted events.
func (t *Token) generateTxHash(operation, address string, amount uint64) string {
	data := fmt.Sprintf("%s_%s_%s_%d_%d",
		t.Symbol, operation, address, amount, time.Now().UnixNano())
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("0x%x", hash[:8])
}
