package core

import (
	"fmt"
	"sync"
)

// AccountStore is the external collaborator the spec calls out as owned
// outside the transaction core (§1, §6): `merge(address, delta)` is its one
// required operation. StateMutator and the Verifier depend only on this
// interface, never on a concrete store.
type AccountStore interface {
	// Get returns the account at address, or ErrMissingSender if it does not
	// exist.
	Get(address string) (*Account, error)
	// Merge applies delta to the account at address atomically and returns
	// the updated account. Implementations must serialize merges against the
	// same address (spec §5) while allowing distinct addresses to proceed
	// concurrently.
	Merge(address string, delta Delta) (*Account, error)
}

// MemoryAccountStore is a reference AccountStore used by tests and the CLI.
// It reuses the teacher's mutex-guarded map pattern from its account
// manager (one sync.Mutex, coarse-grained over the whole map) rather than a
// per-key lock, which is sufficient here because merges are short and the
// store is not a production ledger backend.
type MemoryAccountStore struct {
	mu       sync.Mutex
	accounts map[string]*Account
}

// NewMemoryAccountStore returns an empty store.
func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{accounts: make(map[string]*Account)}
}

// Put seeds or overwrites the account at acct.Address. Intended for test and
// genesis setup, not for steady-state mutation.
func (s *MemoryAccountStore) Put(acct *Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *acct
	s.accounts[acct.Address] = &cp
}

func (s *MemoryAccountStore) Get(address string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[address]
	if !ok {
		return nil, NewErrorf(ErrMissingSender, "no account for address %q", address)
	}
	cp := *acct
	return &cp, nil
}

// Merge applies delta additively to the stored account, creating it on first
// use when necessary (the genesis account, for instance, is never
// pre-seeded with zero balances). Balance/UBalance deltas are checked so
// that a merge can never drive either counter negative or past its 64-bit
// ceiling; see addChecked in state.go for the same guard used by the
// StateMutator.
func (s *MemoryAccountStore) Merge(address string, delta Delta) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[address]
	if !ok {
		acct = &Account{Address: address}
		s.accounts[address] = acct
	}

	newBalance, err := applySigned(acct.Balance, delta.Balance)
	if err != nil {
		return nil, WrapError(ErrStoreError, fmt.Sprintf("balance merge for %s", address), err)
	}
	newUBalance, err := applySigned(acct.UBalance, delta.UBalance)
	if err != nil {
		return nil, WrapError(ErrStoreError, fmt.Sprintf("u_balance merge for %s", address), err)
	}

	acct.Balance = newBalance
	acct.UBalance = newUBalance

	if delta.SetSecondSignature != nil {
		acct.SecondSignature = *delta.SetSecondSignature
	}
	if delta.SetSecondPublicKey != nil {
		acct.SecondPublicKey = delta.SetSecondPublicKey
	}
	acct.Multisignatures = append(acct.Multisignatures, delta.AddMultisignatures...)
	acct.UMultisignatures = append(acct.UMultisignatures, delta.AddUMultisignatures...)

	cp := *acct
	return &cp, nil
}

// applySigned adds a signed delta to an unsigned counter, rejecting
// underflow and overflow rather than wrapping.
func applySigned(base uint64, delta int64) (uint64, error) {
	if delta >= 0 {
		return addChecked(base, uint64(delta))
	}
	dec := uint64(-delta)
	if dec > base {
		return 0, NewErrorf(ErrInsufficientBalance, "merge would underflow: base=%d delta=%d", base, delta)
	}
	return base - dec, nil
}
