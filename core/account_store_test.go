package core_test

import (
	"testing"

	"github.com/synnergy-chain/txcore/core"
)

func TestMemoryAccountStoreMergeBalance(t *testing.T) {
	store := core.NewMemoryAccountStore()
	store.Put(&core.Account{Address: "acct1", Balance: 100})

	updated, err := store.Merge("acct1", core.Delta{Balance: -40})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if updated.Balance != 60 {
		t.Fatalf("expected balance 60, got %d", updated.Balance)
	}

	updated, err = store.Merge("acct1", core.Delta{Balance: 40})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if updated.Balance != 100 {
		t.Fatalf("expected balance to round-trip back to 100, got %d", updated.Balance)
	}
}

func TestMemoryAccountStoreMergeUnderflowRejected(t *testing.T) {
	store := core.NewMemoryAccountStore()
	store.Put(&core.Account{Address: "acct1", Balance: 10})

	if _, err := store.Merge("acct1", core.Delta{Balance: -20}); err == nil {
		t.Fatalf("expected underflowing merge to fail")
	}
}

func TestMemoryAccountStoreGetMissing(t *testing.T) {
	store := core.NewMemoryAccountStore()
	if _, err := store.Get("ghost"); err == nil {
		t.Fatalf("expected Get of a missing account to fail")
	} else if kind, ok := core.KindOf(err); !ok || kind != core.ErrMissingSender {
		t.Fatalf("expected ErrMissingSender, got %v", err)
	}
}

func TestMemoryAccountStoreMergeCreatesAccount(t *testing.T) {
	store := core.NewMemoryAccountStore()
	updated, err := store.Merge("new-acct", core.Delta{Balance: 5})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if updated.Balance != 5 {
		t.Fatalf("expected balance 5, got %d", updated.Balance)
	}
}

func TestMemoryAccountStoreMergeSecondSignature(t *testing.T) {
	store := core.NewMemoryAccountStore()
	store.Put(&core.Account{Address: "acct1"})

	enabled := true
	pk := []byte{1, 2, 3}
	updated, err := store.Merge("acct1", core.Delta{SetSecondSignature: &enabled, SetSecondPublicKey: pk})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if !updated.SecondSignature {
		t.Fatalf("expected second signature flag to be set")
	}
	if string(updated.SecondPublicKey) != string(pk) {
		t.Fatalf("expected second public key to be stored")
	}
}
