package core_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/synnergy-chain/txcore/core"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	ctx := newTestContext(t)
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	tx := &core.Transaction{
		Type:            0,
		Timestamp:       100,
		SenderPublicKey: pub,
		RecipientID:     "58191285901858109L",
		Amount:          500,
	}

	sig, err := core.Sign(ctx, priv, tx)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	tx.Signature = sig

	if !core.VerifyUnsigned(ctx, pub, tx, sig) {
		t.Fatalf("expected primary signature to verify")
	}
}

func TestVerifyUnsignedRejectsWrongKey(t *testing.T) {
	ctx := newTestContext(t)
	pub, priv, _ := ed25519.GenerateKey(rand.Reader)
	otherPub, _, _ := ed25519.GenerateKey(rand.Reader)

	tx := &core.Transaction{Type: 0, SenderPublicKey: pub, Amount: 10}
	sig, err := core.Sign(ctx, priv, tx)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if core.VerifyUnsigned(ctx, otherPub, tx, sig) {
		t.Fatalf("expected verification to fail against the wrong key")
	}
}

func TestVerifyUnsignedRejectsMissingSignature(t *testing.T) {
	ctx := newTestContext(t)
	pub, _, _ := ed25519.GenerateKey(rand.Reader)
	tx := &core.Transaction{Type: 0, SenderPublicKey: pub}

	if core.VerifyUnsigned(ctx, pub, tx, nil) {
		t.Fatalf("expected verification of an empty signature to return false, not panic or succeed")
	}
}

func TestSignSecondaryCoversPrimarySignature(t *testing.T) {
	ctx := newTestContext(t)
	pub, priv, _ := ed25519.GenerateKey(rand.Reader)
	secondPub, secondPriv, _ := ed25519.GenerateKey(rand.Reader)

	tx := &core.Transaction{Type: 0, SenderPublicKey: pub, Amount: 10}
	sig, err := core.Sign(ctx, priv, tx)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	tx.Signature = sig

	sig2, err := core.SignSecondary(ctx, secondPriv, tx)
	if err != nil {
		t.Fatalf("SignSecondary: %v", err)
	}
	tx.SignSignature = sig2

	if !core.VerifySecondary(ctx, secondPub, tx, sig2) {
		t.Fatalf("expected second signature to verify")
	}

	// Changing the primary signature must invalidate the second signature,
	// since verify_secondary's pre-image includes it.
	tx.Signature = make([]byte, ed25519.SignatureSize)
	if core.VerifySecondary(ctx, secondPub, tx, sig2) {
		t.Fatalf("expected second signature to no longer verify once the primary signature changed")
	}
}

func TestMultiSignIgnoresBothSignatureSlots(t *testing.T) {
	ctx := newTestContext(t)
	pub, priv, _ := ed25519.GenerateKey(rand.Reader)

	tx := &core.Transaction{Type: 0, SenderPublicKey: pub, Amount: 10}
	sig, err := core.MultiSign(ctx, priv, tx)
	if err != nil {
		t.Fatalf("MultiSign: %v", err)
	}

	tx.Signature = make([]byte, ed25519.SignatureSize)
	tx.SignSignature = make([]byte, ed25519.SignatureSize)
	if !core.VerifyUnsigned(ctx, pub, tx, sig) {
		t.Fatalf("multisignature should verify regardless of the signature/sign_signature slots' contents")
	}
}
