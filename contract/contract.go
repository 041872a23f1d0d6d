package contract

import (
	"sync"
	"time"

	"github.com/eventhorizon-labs/timedtoken/registry"
	"github.com/eventhorizon-labs/timedtoken/token"
)

// TimedToken is a fungible token with a hard expiry. While the clock is
// before the expiry time the contract is Active: anyone can mint within the
// configured caps and move balances. From the expiry time onward it is
// Expired: minting and transfers are rejected and the one-way shutdown sweep
// becomes legal. The transition is a pure function of the clock, evaluated
// lazily on each call.
type TimedToken struct {
	cfg    Config
	ledger *token.Token
	index  *registry.HolderIndex

	mintCounts          map[string]uint64
	nativeBalance       uint64
	ownerNativeReceived uint64

	now func() time.Time
	mu  sync.Mutex
}

func New(cfg Config) *TimedToken {
	ledger := token.New(cfg.Name, cfg.Symbol, cfg.Decimals, cfg.MaxSupply)
	index := registry.NewHolderIndex()

	// Every credit path runs through the hook, keyed on the credited
	// account, so holders funded only by delegated transfers are still
	// swept at shutdown.
	ledger.SetCreditHook(index.Record)

	return &TimedToken{
		cfg:        cfg,
		ledger:     ledger,
		index:      index,
		mintCounts: make(map[string]uint64),
		now:        time.Now,
	}
}

// Ledger exposes the underlying token for read-side queries.
func (c *TimedToken) Ledger() *token.Token { return c.ledger }

// Holders exposes the known-accounts index.
func (c *TimedToken) Holders() *registry.HolderIndex { return c.index }

func (c *TimedToken) Config() Config { return c.cfg }

// IsExpired reports whether the contract has crossed its expiry time.
func (c *TimedToken) IsExpired() bool {
	return !c.now().Before(c.cfg.Expiry)
}

// TimeUntilDestruction returns how long until shutdown becomes legal, zero
// once expired.
func (c *TimedToken) TimeUntilDestruction() time.Duration {
	remaining := c.cfg.Expiry.Sub(c.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// MintCountOf returns how many successful mints an account has made.
func (c *TimedToken) MintCountOf(account string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mintCounts[account]
}

// FundNative credits native currency to the contract, modeling value sent to
// it before shutdown. The full native balance is swept to the owner when the
// contract self-destructs.
func (c *TimedToken) FundNative(amount uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nativeBalance += amount
}

// NativeBalance returns the native currency the contract currently holds.
func (c *TimedToken) NativeBalance() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nativeBalance
}

// OwnerNativeReceived returns the cumulative native value swept to the owner.
func (c *TimedToken) OwnerNativeReceived() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ownerNativeReceived
}

// State is the persistable snapshot of the contract: ledger balances, mint
// counters, the holder index in insertion order, and the native accounting.
type State struct {
	Balances            map[string]uint64 `json:"balances"`
	MintCounts          map[string]uint64 `json:"mint_counts"`
	Holders             []string          `json:"holders"`
	NativeBalance       uint64            `json:"native_balance"`
	OwnerNativeReceived uint64            `json:"owner_native_received"`
}

// Snapshot captures the contract state for persistence.
func (c *TimedToken) Snapshot() State {
	c.mu.Lock()
	counts := make(map[string]uint64, len(c.mintCounts))
	for addr, n := range c.mintCounts {
		counts[addr] = n
	}
	native := c.nativeBalance
	received := c.ownerNativeReceived
	c.mu.Unlock()

	return State{
		Balances:            c.ledger.GetAllBalances(),
		MintCounts:          counts,
		Holders:             c.index.Holders(),
		NativeBalance:       native,
		OwnerNativeReceived: received,
	}
}

// Restore loads a previously saved snapshot. Holders are recorded first so
// the index keeps its original insertion order regardless of balance map
// iteration order.
func (c *TimedToken) Restore(st State) {
	for _, addr := range st.Holders {
		c.index.Record(addr)
	}
	for addr, balance := range st.Balances {
		c.ledger.SetBalance(addr, balance)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for addr, n := range st.MintCounts {
		c.mintCounts[addr] = n
	}
	c.nativeBalance = st.NativeBalance
	c.ownerNativeReceived = st.OwnerNativeReceived
}
