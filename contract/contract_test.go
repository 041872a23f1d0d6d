package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expiry = time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)

func testConfig() Config {
	return Config{
		Name:                "Timed Token",
		Symbol:              "TMT",
		Decimals:            18,
		MaxSupply:           1_000_000,
		MintCap:             10_000,
		PerAccountMintLimit: 3,
		Expiry:              expiry,
		Owner:               "0xOwner",
		DestructPolicy:      DestructOwnerOnly,
	}
}

// newTestContract pins the contract clock to a fixed instant.
func newTestContract(cfg Config, at time.Time) *TimedToken {
	c := New(cfg)
	c.now = func() time.Time { return at }
	return c
}

func (c *TimedToken) setNow(at time.Time) {
	c.now = func() time.Time { return at }
}

func assertSupplyInvariant(t *testing.T, c *TimedToken) {
	t.Helper()
	assert.Equal(t, c.ledger.TotalSupply(), c.ledger.CirculatingSupply())
}

func TestMintTokens(t *testing.T) {
	alice := "0xAlice"

	t.Run("Succeeds within caps while active", func(t *testing.T) {
		c := newTestContract(testConfig(), expiry.Add(-time.Hour))

		require.NoError(t, c.MintTokens(alice, 10_000))
		balance, _ := c.Ledger().BalanceOf(alice)
		assert.Equal(t, uint64(10_000), balance)
		assert.Equal(t, uint64(1), c.MintCountOf(alice))
		assert.True(t, c.Holders().Seen(alice))
		assertSupplyInvariant(t, c)
	})

	t.Run("Fails expired regardless of arguments", func(t *testing.T) {
		c := newTestContract(testConfig(), expiry)

		assert.ErrorIs(t, c.MintTokens(alice, 1), ErrExpired)
		assert.ErrorIs(t, c.MintTokens(alice, 999_999_999), ErrExpired)
		assert.Equal(t, uint64(0), c.Ledger().TotalSupply())
	})

	t.Run("Fails above per-call cap, supply unchanged", func(t *testing.T) {
		c := newTestContract(testConfig(), expiry.Add(-time.Hour))

		assert.ErrorIs(t, c.MintTokens(alice, 10_001), ErrCapExceeded)
		assert.Equal(t, uint64(0), c.Ledger().TotalSupply())
		assert.Equal(t, uint64(0), c.MintCountOf(alice))
		assert.False(t, c.Holders().Seen(alice))
	})

	t.Run("Fails when max supply would be exceeded", func(t *testing.T) {
		cfg := testConfig()
		cfg.MaxSupply = 15_000
		c := newTestContract(cfg, expiry.Add(-time.Hour))

		require.NoError(t, c.MintTokens(alice, 10_000))
		assert.ErrorIs(t, c.MintTokens(alice, 6_000), ErrSupplyExceeded)
		assert.Equal(t, uint64(10_000), c.Ledger().TotalSupply())
		// The failed attempt must not consume mint quota.
		assert.Equal(t, uint64(1), c.MintCountOf(alice))
	})

	t.Run("Fails after per-account limit is exhausted", func(t *testing.T) {
		c := newTestContract(testConfig(), expiry.Add(-time.Hour))

		for i := 0; i < 3; i++ {
			require.NoError(t, c.MintTokens(alice, 100))
		}
		assert.ErrorIs(t, c.MintTokens(alice, 100), ErrMintLimitExceeded)
		assert.Equal(t, uint64(3), c.MintCountOf(alice))

		// Another account still has its own quota.
		assert.NoError(t, c.MintTokens("0xBob", 100))
	})

	t.Run("Check order: cap beats supply beats quota", func(t *testing.T) {
		cfg := testConfig()
		cfg.MaxSupply = 5_000
		c := newTestContract(cfg, expiry.Add(-time.Hour))
		require.NoError(t, c.MintTokens(alice, 5_000))

		// Over the cap AND over supply AND quota irrelevant: cap reported.
		assert.ErrorIs(t, c.MintTokens(alice, 20_000), ErrCapExceeded)
		// Within cap but over supply: supply reported.
		assert.ErrorIs(t, c.MintTokens(alice, 10_000), ErrSupplyExceeded)
	})
}

func TestTransfersGatedByExpiry(t *testing.T) {
	alice := "0xAlice"
	bob := "0xBob"

	c := newTestContract(testConfig(), expiry.Add(-time.Hour))
	require.NoError(t, c.MintTokens(alice, 10_000))
	require.NoError(t, c.Ledger().Approve(alice, bob, 5_000))

	t.Run("Active transfers succeed", func(t *testing.T) {
		require.NoError(t, c.Transfer(alice, bob, 1_000))
		require.NoError(t, c.TransferFrom(bob, alice, bob, 1_000))

		bobBalance, _ := c.Ledger().BalanceOf(bob)
		assert.Equal(t, uint64(2_000), bobBalance)
		assertSupplyInvariant(t, c)
	})

	t.Run("Expired transfers rejected with no state change", func(t *testing.T) {
		c.setNow(expiry)

		assert.ErrorIs(t, c.Transfer(alice, bob, 1_000), ErrExpired)
		assert.ErrorIs(t, c.TransferFrom(bob, alice, bob, 1_000), ErrExpired)

		bobBalance, _ := c.Ledger().BalanceOf(bob)
		assert.Equal(t, uint64(2_000), bobBalance)
	})
}

func TestClockReadouts(t *testing.T) {
	c := newTestContract(testConfig(), expiry.Add(-90*time.Minute))

	assert.False(t, c.IsExpired())
	assert.Equal(t, 90*time.Minute, c.TimeUntilDestruction())

	c.setNow(expiry)
	assert.True(t, c.IsExpired())
	assert.Equal(t, time.Duration(0), c.TimeUntilDestruction())

	c.setNow(expiry.Add(time.Hour))
	assert.True(t, c.IsExpired())
	assert.Equal(t, time.Duration(0), c.TimeUntilDestruction())
}

func TestSnapshotRestore(t *testing.T) {
	c := newTestContract(testConfig(), expiry.Add(-time.Hour))
	require.NoError(t, c.MintTokens("0xAlice", 500))
	require.NoError(t, c.MintTokens("0xBob", 300))
	require.NoError(t, c.Transfer("0xAlice", "0xCarol", 100))
	c.FundNative(42)

	st := c.Snapshot()

	restored := newTestContract(testConfig(), expiry.Add(-time.Hour))
	restored.Restore(st)

	assert.Equal(t, []string{"0xAlice", "0xBob", "0xCarol"}, restored.Holders().Holders())
	assert.Equal(t, uint64(1), restored.MintCountOf("0xAlice"))
	assert.Equal(t, uint64(42), restored.NativeBalance())

	balance, _ := restored.Ledger().BalanceOf("0xAlice")
	assert.Equal(t, uint64(400), balance)
	assert.Equal(t, c.Ledger().TotalSupply(), restored.Ledger().TotalSupply())
	assertSupplyInvariant(t, restored)
}

func TestLoadEnvironmentConfigDefaults(t *testing.T) {
	cfg := LoadEnvironmentConfig()

	assert.Equal(t, uint64(1_000_000), cfg.MaxSupply)
	assert.Equal(t, uint64(10_000), cfg.MintCap)
	assert.Equal(t, uint64(3), cfg.PerAccountMintLimit)
	assert.Equal(t, DestructOwnerOnly, cfg.DestructPolicy)
	assert.True(t, cfg.Expiry.After(time.Now()))
}
