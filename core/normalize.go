package core

import (
	"encoding/hex"
	"regexp"
)

// RawTransaction is the shape a Normalize caller receives off the wire:
// every optional field is a pointer so that "absent" and "zero value" stay
// distinguishable, mirroring the source's null/undefined stripping (spec
// §4.5). Required fields are plain values: an absent senderPublicKey or
// signature is an empty string that shape validation below rejects, while an
// absent type or timestamp cannot be told apart from zero.
type RawTransaction struct {
	ID        *string
	Height    *uint64
	BlockID   *string

	Type            uint8
	Timestamp       int32
	SenderID        *string
	RecipientID     *string
	SenderPublicKey string // 64 hex chars
	RequesterPublicKey *string

	Amount uint64
	Fee    uint64

	Signature     string // 128 hex chars
	SignSignature *string

	Asset map[string]interface{}
}

var (
	hexPublicKeyRE = regexp.MustCompile(`^[0-9a-f]{64}$`)
	hexSignatureRE = regexp.MustCompile(`^[0-9a-f]{128}$`)
)

// Normalize validates the shape of raw against the field constraints of
// spec §4.5 and, on success, delegates asset validation to the handler's
// ObjectNormalize. It never trusts raw.ID — the returned Transaction's ID
// is left empty for the caller to recompute via ComputeID (invariant 1).
func Normalize(ctx *Context, raw *RawTransaction) (*Transaction, error) {
	if !hexPublicKeyRE.MatchString(raw.SenderPublicKey) {
		return nil, NewError(ErrMalformedTransaction, "senderPublicKey must be 64 lowercase hex characters")
	}
	if raw.RequesterPublicKey != nil && !hexPublicKeyRE.MatchString(*raw.RequesterPublicKey) {
		return nil, NewError(ErrMalformedTransaction, "requesterPublicKey must be 64 lowercase hex characters")
	}
	if !hexSignatureRE.MatchString(raw.Signature) {
		return nil, NewError(ErrMalformedTransaction, "signature must be 128 lowercase hex characters")
	}
	if raw.SignSignature != nil && !hexSignatureRE.MatchString(*raw.SignSignature) {
		return nil, NewError(ErrMalformedTransaction, "signSignature must be 128 lowercase hex characters")
	}
	if raw.Amount > ctx.TotalSupply {
		return nil, NewErrorf(ErrMalformedTransaction, "amount %d exceeds total supply %d", raw.Amount, ctx.TotalSupply)
	}
	if raw.Fee > ctx.TotalSupply {
		return nil, NewErrorf(ErrMalformedTransaction, "fee %d exceeds total supply %d", raw.Fee, ctx.TotalSupply)
	}
	if raw.Asset == nil {
		raw.Asset = map[string]interface{}{}
	}

	senderPK, err := hex.DecodeString(raw.SenderPublicKey)
	if err != nil {
		return nil, WrapError(ErrMalformedTransaction, "senderPublicKey decode failed", err)
	}
	signature, err := hex.DecodeString(raw.Signature)
	if err != nil {
		return nil, WrapError(ErrMalformedTransaction, "signature decode failed", err)
	}

	tx := &Transaction{
		Type:            raw.Type,
		Timestamp:       raw.Timestamp,
		SenderPublicKey: senderPK,
		Amount:          raw.Amount,
		Fee:             raw.Fee,
		Asset:           raw.Asset,
		Signature:       signature,
	}

	if raw.BlockID != nil {
		tx.BlockID = *raw.BlockID
	}
	if raw.Height != nil {
		tx.Height = *raw.Height
	}
	if raw.SenderID != nil {
		tx.SenderID = *raw.SenderID
	}
	if raw.RecipientID != nil {
		tx.RecipientID = *raw.RecipientID
	}
	if raw.RequesterPublicKey != nil {
		requesterPK, err := hex.DecodeString(*raw.RequesterPublicKey)
		if err != nil {
			return nil, WrapError(ErrMalformedTransaction, "requesterPublicKey decode failed", err)
		}
		tx.RequesterPublicKey = requesterPK
	}
	if raw.SignSignature != nil {
		signSig, err := hex.DecodeString(*raw.SignSignature)
		if err != nil {
			return nil, WrapError(ErrMalformedTransaction, "signSignature decode failed", err)
		}
		tx.SignSignature = signSig
	}

	handler, err := ctx.Registry.MustLookup(tx.Type)
	if err != nil {
		return nil, err
	}
	if err := handler.ObjectNormalize(tx); err != nil {
		return nil, WrapError(ErrMalformedTransaction, "handler.object_normalize failed", err)
	}

	return tx, nil
}
