package core_test

import (
	"context"
	"testing"

	"github.com/synnergy-chain/txcore/core"
)

type noopHandler struct{}

func (noopHandler) Create(core.CreateParams) (*core.Transaction, error)             { return nil, nil }
func (noopHandler) GetBytes(*core.Transaction) ([]byte, error)                      { return nil, nil }
func (noopHandler) CalculateFee(*core.Transaction, *core.Account) uint64            { return 0 }
func (noopHandler) Verify(*core.Transaction, *core.Account, *core.Account) error    { return nil }
func (noopHandler) ObjectNormalize(*core.Transaction) error                         { return nil }
func (noopHandler) DBRead(map[string]string) (map[string]interface{}, error)        { return nil, nil }
func (noopHandler) Apply(*core.Transaction, *core.Account, core.AccountStore) error { return nil }
func (noopHandler) Undo(*core.Transaction, *core.Account, core.AccountStore) error  { return nil }
func (noopHandler) ApplyUnconfirmed(*core.Transaction, *core.Account, core.AccountStore) error {
	return nil
}
func (noopHandler) UndoUnconfirmed(*core.Transaction, *core.Account, core.AccountStore) error {
	return nil
}
func (noopHandler) Ready(*core.Transaction, *core.Account) bool { return true }
func (noopHandler) Process(context.Context, *core.Transaction) (*core.Transaction, error) {
	return nil, nil
}

func TestTypeRegistryRegisterAndLookup(t *testing.T) {
	r := core.NewTypeRegistry()
	if err := r.Register(7, noopHandler{}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	h, ok := r.Lookup(7)
	if !ok || h == nil {
		t.Fatalf("expected registered handler to be found")
	}
}

func TestTypeRegistryDuplicateRegistration(t *testing.T) {
	r := core.NewTypeRegistry()
	if err := r.Register(7, noopHandler{}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(7, noopHandler{}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestTypeRegistryUnknownTypeLookup(t *testing.T) {
	r := core.NewTypeRegistry()
	if _, err := r.MustLookup(3); err == nil {
		t.Fatalf("expected MustLookup of an unregistered type to fail")
	} else if kind, ok := core.KindOf(err); !ok || kind != core.ErrUnknownType {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}
