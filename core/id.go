package core

import (
	"crypto/sha256"
	"encoding/binary"
	"strconv"
)

// ComputeID derives the decimal transaction identifier from the canonical
// bytes (spec §4.2): SHA-256 the canonical bytes, reverse the digest's first
// eight bytes, read the result as a little-endian uint64, render in base 10.
//
// The reversal-then-little-endian-read is kept literal, rather than folded
// into the mathematically equivalent big-endian read of the same eight
// bytes, so the code reads the same way the spec states it.
func ComputeID(ctx *Context, tx *Transaction) (string, error) {
	b, err := ToBytes(ctx, tx, false, false)
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256(b)

	var reversed [8]byte
	for i := 0; i < 8; i++ {
		reversed[i] = digest[7-i]
	}

	id := binary.LittleEndian.Uint64(reversed[:])
	return strconv.FormatUint(id, 10), nil
}
