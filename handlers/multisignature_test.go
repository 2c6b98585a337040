package handlers_test

import (
	"strings"
	"testing"

	"github.com/synnergy-chain/txcore/core"
	"github.com/synnergy-chain/txcore/handlers"
)

func multisigAssetFixture(keys ...string) map[string]interface{} {
	group := make([]interface{}, len(keys))
	for i, k := range keys {
		group[i] = "+" + k
	}
	return map[string]interface{}{
		"multisignature": map[string]interface{}{
			"min":       2,
			"lifetime":  24,
			"keysgroup": group,
		},
	}
}

func TestMultisignatureHandlerKeysGroupStripsActionByte(t *testing.T) {
	h := handlers.MultisignatureHandler{}
	keyA := strings.Repeat("a", 64)
	keyB := strings.Repeat("b", 64)
	tx := &core.Transaction{Asset: multisigAssetFixture(keyA, keyB)}

	keys, ok := h.KeysGroup(tx)
	if !ok {
		t.Fatalf("expected KeysGroup to succeed")
	}
	if len(keys) != 2 || len(keys[0]) != 32 || len(keys[1]) != 32 {
		t.Fatalf("expected two 32-byte keys, got %v", keys)
	}
}

func TestMultisignatureHandlerFeeScalesWithKeysgroupSize(t *testing.T) {
	h := handlers.MultisignatureHandler{}
	keyA := strings.Repeat("a", 64)
	keyB := strings.Repeat("b", 64)
	keyC := strings.Repeat("c", 64)

	tx2 := &core.Transaction{Asset: multisigAssetFixture(keyA, keyB)}
	tx3 := &core.Transaction{Asset: multisigAssetFixture(keyA, keyB, keyC)}

	fee2 := h.CalculateFee(tx2, nil)
	fee3 := h.CalculateFee(tx3, nil)
	if fee2 != 3*handlers.MultisignatureFeeUnit {
		t.Fatalf("expected fee %d for 2 keys, got %d", 3*handlers.MultisignatureFeeUnit, fee2)
	}
	if fee3 != 4*handlers.MultisignatureFeeUnit {
		t.Fatalf("expected fee %d for 3 keys, got %d", 4*handlers.MultisignatureFeeUnit, fee3)
	}
}

func TestMultisignatureHandlerVerifyRejectsOutOfRangeMin(t *testing.T) {
	h := handlers.MultisignatureHandler{}
	keyA := strings.Repeat("a", 64)
	tx := &core.Transaction{Asset: multisigAssetFixture(keyA)} // min=2 but only 1 key

	if err := h.Verify(tx, nil, nil); err == nil {
		t.Fatalf("expected an error when min exceeds keysgroup size")
	}
}

func TestMultisignatureHandlerReadyRequiresMinSignatures(t *testing.T) {
	h := handlers.MultisignatureHandler{}
	keyA := strings.Repeat("a", 64)
	keyB := strings.Repeat("b", 64)
	tx := &core.Transaction{Asset: multisigAssetFixture(keyA, keyB)}

	if h.Ready(tx, nil) {
		t.Fatalf("expected Ready=false with no signatures present")
	}
	tx.Signatures = [][]byte{make([]byte, 64), make([]byte, 64)}
	if !h.Ready(tx, nil) {
		t.Fatalf("expected Ready=true once signatures meet min")
	}
}

func TestMultisignatureHandlerApplyRegistersKeys(t *testing.T) {
	h := handlers.MultisignatureHandler{}
	store := core.NewMemoryAccountStore()
	store.Put(&core.Account{Address: "sender-addr"})

	keyA := strings.Repeat("a", 64)
	tx := &core.Transaction{Asset: multisigAssetFixture(keyA)}

	sender, _ := store.Get("sender-addr")
	if err := h.Apply(tx, sender, store); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	after, _ := store.Get("sender-addr")
	if len(after.Multisignatures) != 1 {
		t.Fatalf("expected one registered multisignature key, got %d", len(after.Multisignatures))
	}
}
