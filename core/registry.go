package core

import (
	"context"
	"sync"
)

// Handler is the capability set every transaction-type plug-in implements
// (spec §4.4). The source accepted any object exposing the capability names
// by duck typing; Go's interfaces make that capability set explicit and
// compile-time checked, per the Design Notes' re-architecting guidance.
//
// DBSave and AfterSave are optional in the source ("db_save?", "after_save?")
// and are modelled as separate interfaces — DBSaver and AfterSaver — that a
// Handler may additionally implement, rather than forcing every handler to
// carry no-op methods.
type Handler interface {
	Create(params CreateParams) (*Transaction, error)
	GetBytes(tx *Transaction) ([]byte, error)
	CalculateFee(tx *Transaction, sender *Account) uint64
	Verify(tx *Transaction, sender, requester *Account) error
	ObjectNormalize(tx *Transaction) error
	DBRead(row map[string]string) (map[string]interface{}, error)
	Apply(tx *Transaction, sender *Account, store AccountStore) error
	Undo(tx *Transaction, sender *Account, store AccountStore) error
	ApplyUnconfirmed(tx *Transaction, sender *Account, store AccountStore) error
	UndoUnconfirmed(tx *Transaction, sender *Account, store AccountStore) error
	Ready(tx *Transaction, sender *Account) bool
	Process(ctx context.Context, tx *Transaction) (*Transaction, error)
}

// DBSaver is implemented by handlers that persist rows beyond the base `trs`
// row (spec §4.8).
type DBSaver interface {
	DBSave(tx *Transaction) ([]Row, error)
}

// AfterSaver is implemented by handlers with post-insert side effects.
type AfterSaver interface {
	AfterSave(tx *Transaction) error
}

// MultisigKeysGroupExtractor is implemented by the multisignature
// registration handler so the Verifier can derive a co-signer set from the
// asset payload (spec §4.6 check 9) without the core depending on any
// specific asset schema.
type MultisigKeysGroupExtractor interface {
	KeysGroup(tx *Transaction) ([][]byte, bool)
}

// TypeRegistry maps a numeric type tag to its Handler. It is built once at
// startup and is read-only thereafter (spec §5); the mutex below guards
// against concurrent registration during startup wiring, not steady-state
// reads, which is why Lookup takes only a read lock.
type TypeRegistry struct {
	mu       sync.RWMutex
	handlers map[uint8]Handler
}

// NewTypeRegistry returns an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{handlers: make(map[uint8]Handler)}
}

// Register binds a handler to a type tag. Handler satisfies the full
// capability set at compile time; Register only rejects a nil handler or a
// tag that is already bound, mirroring the source's "registration fails if
// any required capability is absent" by construction rather than reflection.
func (r *TypeRegistry) Register(typ uint8, h Handler) error {
	if h == nil {
		return NewErrorf(ErrUnknownType, "nil handler for type %d", typ)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[typ]; exists {
		return NewErrorf(ErrUnknownType, "type %d already registered", typ)
	}
	r.handlers[typ] = h
	return nil
}

// Lookup resolves the handler bound to typ.
func (r *TypeRegistry) Lookup(typ uint8) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[typ]
	return h, ok
}

// MustLookup resolves the handler bound to typ or returns an UnknownType
// error, saving every call site from repeating the same two-line check.
func (r *TypeRegistry) MustLookup(typ uint8) (Handler, error) {
	h, ok := r.Lookup(typ)
	if !ok {
		return nil, NewErrorf(ErrUnknownType, "unregistered transaction type %d", typ)
	}
	return h, nil
}
