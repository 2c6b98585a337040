package core_test

import (
	"crypto/sha256"
	"encoding/binary"
	"strconv"
	"testing"

	"github.com/synnergy-chain/txcore/core"
)

func TestComputeIDMatchesReversedDigestPrefix(t *testing.T) {
	ctx := newTestContext(t)
	tx := &core.Transaction{
		Type:            0,
		Timestamp:       141738,
		SenderPublicKey: make([]byte, 32),
		RecipientID:     "58191285901858109L",
		Amount:          1000,
		Signature:       make([]byte, 64),
	}

	id, err := core.ComputeID(ctx, tx)
	if err != nil {
		t.Fatalf("ComputeID: %v", err)
	}

	b, err := core.ToBytes(ctx, tx, false, false)
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	digest := sha256.Sum256(b)
	var reversed [8]byte
	for i := 0; i < 8; i++ {
		reversed[i] = digest[7-i]
	}
	want := strconv.FormatUint(binary.LittleEndian.Uint64(reversed[:]), 10)

	if id != want {
		t.Fatalf("ComputeID = %s, want %s", id, want)
	}
}

func TestComputeIDIsPureFunctionOfCanonicalBytes(t *testing.T) {
	ctx := newTestContext(t)
	tx := &core.Transaction{
		Type:            0,
		Timestamp:       141738,
		SenderPublicKey: make([]byte, 32),
		RecipientID:     "58191285901858109L",
		Amount:          1000,
		Signature:       make([]byte, 64),
	}

	id1, err := core.ComputeID(ctx, tx)
	if err != nil {
		t.Fatalf("ComputeID: %v", err)
	}
	clone := tx.Clone()
	clone.ID = "some-other-id"
	clone.Height = 5
	clone.Confirmations = 9

	id2, err := core.ComputeID(ctx, clone)
	if err != nil {
		t.Fatalf("ComputeID clone: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("id should be a pure function of canonical bytes: %s != %s", id1, id2)
	}
}
