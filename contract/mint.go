package contract

import (
	"github.com/sirupsen/logrus"

	"github.com/eventhorizon-labs/timedtoken/ledgerlog"
)

// MintTokens credits amount to the caller, subject to the contract gates.
// Preconditions are checked in a fixed order and the first failure is
// reported: expired, per-call cap, maximum supply, per-account quota. A
// failed mint changes nothing.
func (c *TimedToken) MintTokens(caller string, amount uint64) error {
	if c.IsExpired() {
		ledgerlog.Operation("mint_tokens", "", caller, amount, ErrExpired, nil)
		return ErrExpired
	}
	if c.cfg.MintCap > 0 && amount > c.cfg.MintCap {
		ledgerlog.Operation("mint_tokens", "", caller, amount, ErrCapExceeded,
			logrus.Fields{"mint_cap": c.cfg.MintCap})
		return ErrCapExceeded
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	supply := c.ledger.TotalSupply()
	if c.cfg.MaxSupply > 0 && supply+amount > c.cfg.MaxSupply {
		ledgerlog.Operation("mint_tokens", "", caller, amount, ErrSupplyExceeded,
			logrus.Fields{"total_supply": supply, "max_supply": c.cfg.MaxSupply})
		return ErrSupplyExceeded
	}
	if c.mintCounts[caller] >= c.cfg.PerAccountMintLimit {
		ledgerlog.Operation("mint_tokens", "", caller, amount, ErrMintLimitExceeded,
			logrus.Fields{"mint_count": c.mintCounts[caller], "mint_limit": c.cfg.PerAccountMintLimit})
		return ErrMintLimitExceeded
	}

	if err := c.ledger.Mint(caller, amount); err != nil {
		ledgerlog.Operation("mint_tokens", "", caller, amount, err, nil)
		return err
	}
	c.mintCounts[caller]++

	ledgerlog.Operation("mint_tokens", "", caller, amount, nil,
		logrus.Fields{"mint_count": c.mintCounts[caller]})
	return nil
}

// Transfer moves amount from the caller to another account while the
// contract is Active.
func (c *TimedToken) Transfer(caller, to string, amount uint64) error {
	if c.IsExpired() {
		ledgerlog.Operation("transfer", caller, to, amount, ErrExpired, nil)
		return ErrExpired
	}

	err := c.ledger.Transfer(caller, to, amount)
	ledgerlog.Operation("transfer", caller, to, amount, err, nil)
	return err
}

// TransferFrom moves amount from one account to another on the caller's
// allowance while the contract is Active. The recipient enters the holder
// index through the ledger's credit hook, keyed on the credited account.
func (c *TimedToken) TransferFrom(caller, from, to string, amount uint64) error {
	if c.IsExpired() {
		ledgerlog.Operation("transfer_from", from, to, amount, ErrExpired,
			logrus.Fields{"spender": caller})
		return ErrExpired
	}

	err := c.ledger.TransferFrom(from, caller, to, amount)
	ledgerlog.Operation("transfer_from", from, to, amount, err,
		logrus.Fields{"spender": caller})
	return err
}
