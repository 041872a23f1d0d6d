package token

import (
	"errors"
)

func (t *Token) TotalSupply() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.totalSupply
}

func (t *Token) MaxSupply() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.maxSupply
}

func (t *Token) BalanceOf(address string) (uint64, error) {
	if !t.validateAddress(address) {
		return 0, errors.New("invalid address")
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.balances[address], nil
}

// CirculatingSupply recomputes supply from the balance map. Used by invariant
// checks; equals TotalSupply unless the ledger is corrupted.
func (t *Token) CirculatingSupply() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	supply := uint64(0)
	for _, balance := range t.balances {
		supply += balance
	}
	return supply
}

// SetBalance installs a balance directly, bypassing transfer semantics. It is
// the persistence load path: total supply is adjusted so the supply invariant
// holds, and the credit hook fires for non-zero balances so restored holders
// re-enter any registered index.
func (t *Token) SetBalance(address string, balance uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	old := t.balances[address]
	t.totalSupply = t.totalSupply - old + balance
	t.balances[address] = 0
	t.credit(address, balance)
}

// GetAllBalances returns a copy of the balance map for persistence.
func (t *Token) GetAllBalances() map[string]uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	balances := make(map[string]uint64, len(t.balances))
	for addr, balance := range t.balances {
		balances[addr] = balance
	}
	return balances
}
