package handlers_test

import (
	"strings"
	"testing"

	"github.com/synnergy-chain/txcore/core"
	"github.com/synnergy-chain/txcore/handlers"
)

func secondSigAsset(pkHex string) map[string]interface{} {
	return map[string]interface{}{"signature": map[string]interface{}{"publicKey": pkHex}}
}

func TestSecondSignatureHandlerRejectsAlreadyRegistered(t *testing.T) {
	h := handlers.SecondSignatureHandler{}
	sender := &core.Account{SecondSignature: true}
	tx := &core.Transaction{Asset: secondSigAsset(strings.Repeat("1", 64))}

	err := h.Verify(tx, sender, nil)
	if err == nil {
		t.Fatalf("expected an error for an account that already has a second signature")
	}
	if kind, ok := core.KindOf(err); !ok || kind != core.ErrMalformedTransaction {
		t.Fatalf("expected ErrMalformedTransaction, got %v", err)
	}
}

func TestSecondSignatureHandlerApplyUndo(t *testing.T) {
	h := handlers.SecondSignatureHandler{}
	store := core.NewMemoryAccountStore()
	store.Put(&core.Account{Address: "sender-addr"})

	pkHex := strings.Repeat("2", 64)
	tx := &core.Transaction{Asset: secondSigAsset(pkHex)}

	sender, _ := store.Get("sender-addr")
	if err := h.Apply(tx, sender, store); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	after, _ := store.Get("sender-addr")
	if !after.SecondSignature {
		t.Fatalf("expected second signature enabled after apply")
	}
	if len(after.SecondPublicKey) != 32 {
		t.Fatalf("expected a 32-byte second public key, got %d bytes", len(after.SecondPublicKey))
	}

	if err := h.Undo(tx, after, store); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	restored, _ := store.Get("sender-addr")
	if restored.SecondSignature {
		t.Fatalf("expected second signature disabled after undo")
	}
}

func TestSecondSignatureHandlerObjectNormalizeRejectsMalformedKey(t *testing.T) {
	h := handlers.SecondSignatureHandler{}
	tx := &core.Transaction{Asset: secondSigAsset("not-hex")}
	if err := h.ObjectNormalize(tx); err == nil {
		t.Fatalf("expected an error for a non-hex public key")
	}
}
