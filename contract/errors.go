package contract

import "errors"

var (
	// ErrExpired rejects minting and transfers at or after the expiry time.
	ErrExpired = errors.New("contract expired: operations are disabled")
	// ErrCapExceeded rejects a single mint larger than the per-call cap.
	ErrCapExceeded = errors.New("mint amount exceeds per-call cap")
	// ErrSupplyExceeded rejects a mint that would push supply past the maximum.
	ErrSupplyExceeded = errors.New("mint amount would exceed maximum supply")
	// ErrMintLimitExceeded rejects a mint by an account that used up its quota.
	ErrMintLimitExceeded = errors.New("per-account mint limit exhausted")
	// ErrNotYetExpired rejects a shutdown attempt before the expiry time.
	ErrNotYetExpired = errors.New("contract not yet expired")
	// ErrUnauthorized rejects an owner-gated shutdown from a non-owner.
	ErrUnauthorized = errors.New("unauthorized: owner access required")
)
