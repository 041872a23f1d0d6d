package contract

import (
	"os"
	"strconv"
	"time"
)

// DestructPolicy selects who may trigger the shutdown sweep once the contract
// has expired. The two deployed variants of this contract disagreed here, so
// the policy is explicit configuration rather than a merged behavior.
type DestructPolicy string

const (
	// DestructOwnerOnly restricts CheckAndSelfDestruct to the owner account.
	DestructOwnerOnly DestructPolicy = "owner_only"
	// DestructAnyCaller lets any account trigger the sweep after expiry.
	DestructAnyCaller DestructPolicy = "any_caller"
)

type Config struct {
	Name                string
	Symbol              string
	Decimals            uint8
	MaxSupply           uint64
	MintCap             uint64 // per-call mint ceiling
	PerAccountMintLimit uint64 // successful mints allowed per account
	Expiry              time.Time
	Owner               string
	DestructPolicy      DestructPolicy
}

// LoadEnvironmentConfig builds a Config from environment variables with
// defaults suitable for local runs. TIMEDTOKEN_EXPIRY_UNIX is absolute
// (seconds); when unset the contract expires one hour after startup.
func LoadEnvironmentConfig() Config {
	expiry := time.Now().Add(1 * time.Hour)
	if raw := os.Getenv("TIMEDTOKEN_EXPIRY_UNIX"); raw != "" {
		if unix, err := strconv.ParseInt(raw, 10, 64); err == nil {
			expiry = time.Unix(unix, 0)
		}
	}

	policy := DestructOwnerOnly
	if getEnv("TIMEDTOKEN_DESTRUCT_POLICY", "") == string(DestructAnyCaller) {
		policy = DestructAnyCaller
	}

	return Config{
		Name:                getEnv("TIMEDTOKEN_NAME", "Timed Token"),
		Symbol:              getEnv("TIMEDTOKEN_SYMBOL", "TMT"),
		Decimals:            uint8(getEnvUint("TIMEDTOKEN_DECIMALS", 18)),
		MaxSupply:           getEnvUint("TIMEDTOKEN_MAX_SUPPLY", 1_000_000),
		MintCap:             getEnvUint("TIMEDTOKEN_MINT_CAP", 10_000),
		PerAccountMintLimit: getEnvUint("TIMEDTOKEN_MINT_LIMIT", 3),
		Expiry:              expiry,
		Owner:               getEnv("TIMEDTOKEN_OWNER", "owner"),
		DestructPolicy:      policy,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvUint(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseUint(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
