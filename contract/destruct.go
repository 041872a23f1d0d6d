package contract

import (
	"github.com/sirupsen/logrus"

	"github.com/eventhorizon-labs/timedtoken/ledgerlog"
)

// CheckAndSelfDestruct runs the one-way shutdown sweep once the contract has
// expired: it records a destruct notification, sweeps the contract's native
// balance to the owner, then zeroes every indexed holder's balance in
// insertion order. Mint counters and the holder index are left intact.
//
// The sweep is idempotent. A second call after expiry passes the same
// preconditions, sweeps zero native value, and re-zeroes already-empty
// balances.
func (c *TimedToken) CheckAndSelfDestruct(caller string) error {
	if !c.IsExpired() {
		ledgerlog.Operation("self_destruct", caller, "", 0, ErrNotYetExpired,
			logrus.Fields{"remaining": c.TimeUntilDestruction().String()})
		return ErrNotYetExpired
	}
	if c.cfg.DestructPolicy == DestructOwnerOnly && caller != c.cfg.Owner {
		ledgerlog.Operation("self_destruct", caller, "", 0, ErrUnauthorized, nil)
		return ErrUnauthorized
	}

	destructedAt := c.now()
	c.ledger.EmitDestruct(destructedAt, map[string]interface{}{
		"caller":  caller,
		"expiry":  c.cfg.Expiry,
		"holders": c.index.Len(),
	})

	c.mu.Lock()
	swept := c.nativeBalance
	c.nativeBalance = 0
	c.ownerNativeReceived += swept
	c.mu.Unlock()

	zeroed := uint64(0)
	for _, holder := range c.index.Holders() {
		debited, err := c.ledger.ZeroBalance(holder)
		if err != nil {
			// Indexed entries were validated when credited; nothing to do
			// but report and keep sweeping.
			ledgerlog.Operation("sweep_balance", holder, "", 0, err, nil)
			continue
		}
		zeroed += debited
	}

	ledgerlog.Operation("self_destruct", caller, c.cfg.Owner, swept, nil, logrus.Fields{
		"destructed_at":  destructedAt,
		"holders_swept":  c.index.Len(),
		"balance_zeroed": zeroed,
	})
	return nil
}
