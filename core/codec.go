package core

import (
	"encoding/binary"
	"strconv"
	"strings"
)

// ToBytes produces the canonical, consensus-critical byte encoding of tx
// (spec §4.1). It is the sole pre-image for hashing (IdHasher) and signing
// (SignatureEngine); any change to the byte order, field widths, or
// inclusion rules below forks the chain.
//
// The concatenation order is fixed:
//
//	type(1) | timestamp(4,BE) | sender_pk(32) | [requester_pk(32)] |
//	recipient_id(8,BE) | amount(8,BE) | asset_bytes | [signature(64)] | [sign_signature(64)]
//
// The buffer is allocated once at the exact final length, matching the
// teacher's single-allocation `to_bytes` style in core/transaction_hash.go.
func ToBytes(ctx *Context, tx *Transaction, skipSignature, skipSecondSignature bool) ([]byte, error) {
	handler, err := ctx.Registry.MustLookup(tx.Type)
	if err != nil {
		return nil, err
	}

	assetBytes, err := handler.GetBytes(tx)
	if err != nil {
		return nil, WrapError(ErrAssetEncodeFailed, "handler.get_bytes failed", err)
	}

	recipientField, err := encodeRecipientID(tx.RecipientID)
	if err != nil {
		return nil, err
	}

	includeSig := !skipSignature && len(tx.Signature) > 0
	includeSig2 := !skipSecondSignature && len(tx.SignSignature) > 0

	length := 1 + 4 + 32 + 8 + 8 + len(assetBytes)
	if len(tx.RequesterPublicKey) > 0 {
		length += 32
	}
	if includeSig {
		length += 64
	}
	if includeSig2 {
		length += 64
	}

	buf := make([]byte, length)
	offset := 0

	buf[offset] = tx.Type
	offset++

	binary.BigEndian.PutUint32(buf[offset:offset+4], uint32(tx.Timestamp))
	offset += 4

	offset += copy(buf[offset:offset+32], tx.SenderPublicKey)

	if len(tx.RequesterPublicKey) > 0 {
		offset += copy(buf[offset:offset+32], tx.RequesterPublicKey)
	}

	offset += copy(buf[offset:offset+8], recipientField[:])

	binary.BigEndian.PutUint64(buf[offset:offset+8], tx.Amount)
	offset += 8

	offset += copy(buf[offset:offset+len(assetBytes)], assetBytes)

	if includeSig {
		offset += copy(buf[offset:offset+64], tx.Signature)
	}

	if includeSig2 {
		offset += copy(buf[offset:offset+64], tx.SignSignature)
	}

	return buf, nil
}

// encodeRecipientID parses an address of the form "<digits><suffix>" into an
// 8-byte big-endian field, zero-padded on the high end. An absent recipient
// encodes as eight zero bytes. Per Design Notes, parsing strips exactly one
// trailing suffix character; anything else is MalformedTransaction.
func encodeRecipientID(recipientID string) ([8]byte, error) {
	var out [8]byte
	if recipientID == "" {
		return out, nil
	}
	if len(recipientID) < 2 {
		return out, NewErrorf(ErrMalformedTransaction, "recipient id %q too short to carry a suffix", recipientID)
	}
	digits := recipientID[:len(recipientID)-1]
	if digits == "" || strings.ContainsFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) {
		return out, NewErrorf(ErrMalformedTransaction, "recipient id %q is not a decimal address", recipientID)
	}
	value, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return out, WrapError(ErrMalformedTransaction, "recipient id out of range", err)
	}
	binary.BigEndian.PutUint64(out[:], value)
	return out, nil
}
