// Package storage persists the contract state (balances, mint counters,
// holder index, native accounting) in a bbolt database.
package storage

import (
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/eventhorizon-labs/timedtoken/contract"
)

var (
	bucketBalances   = []byte("balances")
	bucketMintCounts = []byte("mint_counts")
	bucketHolders    = []byte("holders")
	bucketMeta       = []byte("meta")

	keyNativeBalance = []byte("native_balance")
	keyOwnerReceived = []byte("owner_native_received")
)

type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketBalances, bucketMintCounts, bucketHolders, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create state buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored state with the given snapshot in one transaction.
func (s *Store) Save(st contract.State) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketBalances, bucketMintCounts, bucketHolders, bucketMeta} {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}

		balances := tx.Bucket(bucketBalances)
		for addr, balance := range st.Balances {
			if err := balances.Put([]byte(addr), itob(balance)); err != nil {
				return err
			}
		}

		counts := tx.Bucket(bucketMintCounts)
		for addr, n := range st.MintCounts {
			if err := counts.Put([]byte(addr), itob(n)); err != nil {
				return err
			}
		}

		// Holder keys are the insertion positions so Load preserves order.
		holders := tx.Bucket(bucketHolders)
		for i, addr := range st.Holders {
			if err := holders.Put(itob(uint64(i)), []byte(addr)); err != nil {
				return err
			}
		}

		meta := tx.Bucket(bucketMeta)
		if err := meta.Put(keyNativeBalance, itob(st.NativeBalance)); err != nil {
			return err
		}
		return meta.Put(keyOwnerReceived, itob(st.OwnerNativeReceived))
	})
}

// Load reads the stored state. An empty database yields an empty state.
func (s *Store) Load() (contract.State, error) {
	st := contract.State{
		Balances:   make(map[string]uint64),
		MintCounts: make(map[string]uint64),
	}

	err := s.db.View(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketBalances).ForEach(func(k, v []byte) error {
			st.Balances[string(k)] = btoi(v)
			return nil
		}); err != nil {
			return err
		}

		if err := tx.Bucket(bucketMintCounts).ForEach(func(k, v []byte) error {
			st.MintCounts[string(k)] = btoi(v)
			return nil
		}); err != nil {
			return err
		}

		// bbolt iterates keys in byte order, so big-endian position keys
		// come back in insertion order.
		if err := tx.Bucket(bucketHolders).ForEach(func(k, v []byte) error {
			st.Holders = append(st.Holders, string(v))
			return nil
		}); err != nil {
			return err
		}

		meta := tx.Bucket(bucketMeta)
		if v := meta.Get(keyNativeBalance); v != nil {
			st.NativeBalance = btoi(v)
		}
		if v := meta.Get(keyOwnerReceived); v != nil {
			st.OwnerNativeReceived = btoi(v)
		}
		return nil
	})
	if err != nil {
		return contract.State{}, fmt.Errorf("load state: %w", err)
	}
	return st, nil
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func btoi(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}
