package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhorizon-labs/timedtoken/token"
)

func TestCheckAndSelfDestruct(t *testing.T) {
	owner := "0xOwner"
	alice := "0xAlice"

	t.Run("Fails strictly before expiry for all callers", func(t *testing.T) {
		c := newTestContract(testConfig(), expiry.Add(-time.Second))

		assert.ErrorIs(t, c.CheckAndSelfDestruct(owner), ErrNotYetExpired)
		assert.ErrorIs(t, c.CheckAndSelfDestruct(alice), ErrNotYetExpired)
	})

	t.Run("Owner-only policy rejects non-owner", func(t *testing.T) {
		c := newTestContract(testConfig(), expiry)

		assert.ErrorIs(t, c.CheckAndSelfDestruct(alice), ErrUnauthorized)
		assert.NoError(t, c.CheckAndSelfDestruct(owner))
	})

	t.Run("Any-caller policy allows anyone", func(t *testing.T) {
		cfg := testConfig()
		cfg.DestructPolicy = DestructAnyCaller
		c := newTestContract(cfg, expiry)

		assert.NoError(t, c.CheckAndSelfDestruct(alice))
	})

	t.Run("Sweeps native balance to owner and zeroes holders", func(t *testing.T) {
		c := newTestContract(testConfig(), expiry.Add(-time.Hour))
		require.NoError(t, c.MintTokens(alice, 10_000))
		require.NoError(t, c.MintTokens("0xBob", 5_000))
		c.FundNative(777)

		c.setNow(expiry)
		require.NoError(t, c.CheckAndSelfDestruct(owner))

		for _, holder := range c.Holders().Holders() {
			balance, err := c.Ledger().BalanceOf(holder)
			require.NoError(t, err)
			assert.Equal(t, uint64(0), balance, "holder %s must be swept", holder)
		}
		assert.Equal(t, uint64(0), c.Ledger().TotalSupply())
		assert.Equal(t, uint64(0), c.NativeBalance())
		assert.Equal(t, uint64(777), c.OwnerNativeReceived())
		assertSupplyInvariant(t, c)
	})

	t.Run("Leaves mint counters and index intact", func(t *testing.T) {
		c := newTestContract(testConfig(), expiry.Add(-time.Hour))
		require.NoError(t, c.MintTokens(alice, 100))
		require.NoError(t, c.MintTokens(alice, 100))

		c.setNow(expiry)
		require.NoError(t, c.CheckAndSelfDestruct(owner))

		assert.Equal(t, uint64(2), c.MintCountOf(alice))
		assert.Equal(t, []string{alice}, c.Holders().Holders())
	})

	t.Run("Second destruct is a harmless re-sweep", func(t *testing.T) {
		c := newTestContract(testConfig(), expiry.Add(-time.Hour))
		require.NoError(t, c.MintTokens(alice, 100))
		c.FundNative(50)

		c.setNow(expiry)
		require.NoError(t, c.CheckAndSelfDestruct(owner))
		require.NoError(t, c.CheckAndSelfDestruct(owner))

		assert.Equal(t, uint64(50), c.OwnerNativeReceived())
		assert.Equal(t, uint64(0), c.Ledger().TotalSupply())

		destructs := c.Ledger().EventsByType(token.EventDestruct)
		assert.Len(t, destructs, 2)
	})

	t.Run("Destruct event carries the destruction time", func(t *testing.T) {
		c := newTestContract(testConfig(), expiry.Add(time.Minute))
		require.NoError(t, c.CheckAndSelfDestruct(owner))

		destructs := c.Ledger().EventsByType(token.EventDestruct)
		require.Len(t, destructs, 1)
		assert.Equal(t, expiry.Add(time.Minute), destructs[0].Timestamp)
	})
}

// Full lifecycle from the contract's documented behavior: capped mints before
// expiry, quota exhaustion, then shutdown.
func TestMintLifecycleScenario(t *testing.T) {
	cfg := testConfig() // cap 10_000, max 1_000_000, limit 3
	a := "0xAccountA"
	b := "0xAccountB"

	c := newTestContract(cfg, expiry.Add(-time.Second))

	for i := 0; i < 3; i++ {
		require.NoError(t, c.MintTokens(a, 10_000))
	}
	balance, _ := c.Ledger().BalanceOf(a)
	require.Equal(t, uint64(30_000), balance)

	assert.ErrorIs(t, c.MintTokens(a, 10_000), ErrMintLimitExceeded)

	t.Run("Transferred-away balance still swept at recipient", func(t *testing.T) {
		require.NoError(t, c.Transfer(a, b, 30_000))

		aBalance, _ := c.Ledger().BalanceOf(a)
		bBalance, _ := c.Ledger().BalanceOf(b)
		require.Equal(t, uint64(0), aBalance)
		require.Equal(t, uint64(30_000), bBalance)
		require.True(t, c.Holders().Seen(b), "recipient must be indexed from the credit")

		c.setNow(expiry)
		require.NoError(t, c.CheckAndSelfDestruct(cfg.Owner))

		bBalance, _ = c.Ledger().BalanceOf(b)
		assert.Equal(t, uint64(0), bBalance)
		assertSupplyInvariant(t, c)
	})
}

// Accounts funded only through delegated transfers initiated by someone else
// must still be indexed and swept.
func TestTransferFromRecipientIsSwept(t *testing.T) {
	cfg := testConfig()
	c := newTestContract(cfg, expiry.Add(-time.Hour))

	funder := "0xFunder"
	operator := "0xOperator"
	passive := "0xPassive" // never calls anything itself

	require.NoError(t, c.MintTokens(funder, 10_000))
	require.NoError(t, c.Ledger().Approve(funder, operator, 10_000))
	require.NoError(t, c.TransferFrom(operator, funder, passive, 10_000))

	require.True(t, c.Holders().Seen(passive))

	c.setNow(expiry)
	require.NoError(t, c.CheckAndSelfDestruct(cfg.Owner))

	balance, _ := c.Ledger().BalanceOf(passive)
	assert.Equal(t, uint64(0), balance)
	assert.Equal(t, uint64(0), c.Ledger().TotalSupply())
}
