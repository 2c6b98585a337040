package core

import "time"

// Transaction is the canonical, consensus-critical record described by the
// transaction core. Every byte that feeds Codec, IdHasher and SignatureEngine
// flows from the fields below — nothing else on this struct is allowed to
// affect canonical bytes.
type Transaction struct {
	Type                uint8
	Timestamp           int32
	SenderPublicKey     []byte // 32 bytes
	RequesterPublicKey  []byte // 32 bytes, nil if absent
	SenderID            string
	RecipientID         string // "" if absent
	Amount              uint64
	Fee                 uint64
	Asset               map[string]interface{}
	Signature           []byte // 64 bytes, nil if not yet signed
	SignSignature       []byte // 64 bytes, nil if absent
	Signatures          [][]byte

	// Derived/attached fields. Never authoritative on ingress; recomputed or
	// set by the core itself.
	ID            string
	BlockID       string
	Height        uint64
	Confirmations uint64
}

// Clone returns a copy of tx with its byte slices and top-level Asset map
// copied (nested asset values are shared), used by tests to check that id
// derivation is a pure function of canonical bytes (spec invariant 2).
func (tx *Transaction) Clone() *Transaction {
	if tx == nil {
		return nil
	}
	out := *tx
	out.SenderPublicKey = append([]byte(nil), tx.SenderPublicKey...)
	out.RequesterPublicKey = append([]byte(nil), tx.RequesterPublicKey...)
	out.Signature = append([]byte(nil), tx.Signature...)
	out.SignSignature = append([]byte(nil), tx.SignSignature...)
	out.Signatures = make([][]byte, len(tx.Signatures))
	for i, s := range tx.Signatures {
		out.Signatures[i] = append([]byte(nil), s...)
	}
	out.Asset = make(map[string]interface{}, len(tx.Asset))
	for k, v := range tx.Asset {
		out.Asset[k] = v
	}
	return &out
}

// Account is the view of chain state the transaction core consumes. It is
// owned by AccountStore, never by this package.
type Account struct {
	Address          string
	PublicKey        []byte
	Balance          uint64
	UBalance         uint64
	SecondSignature  bool
	SecondPublicKey  []byte
	Multisignatures  [][]byte
	UMultisignatures [][]byte
}

// BlockRef is the minimal block identity the StateMutator needs: enough to
// compute a round and to recognise the genesis block.
type BlockRef struct {
	ID     string
	Height uint64
}

// Delta is the additive update applied to an account by AccountStore.Merge.
// Balance/UBalance are signed so that apply and undo share one type.
type Delta struct {
	Balance  int64
	UBalance int64
	BlockID  string
	Round    uint64

	SetSecondSignature *bool
	SetSecondPublicKey []byte
	AddMultisignatures  [][]byte
	AddUMultisignatures [][]byte
}

// CreateParams is the input a Handler.Create implementation consumes to
// build a brand-new, unsigned transaction.
type CreateParams struct {
	Type            uint8
	Timestamp       int32
	SenderPublicKey []byte
	RecipientID     string
	Amount          uint64
	Asset           map[string]interface{}
	Now             time.Time
}
