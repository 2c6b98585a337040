package core

import (
	"crypto/ed25519"
	"crypto/sha256"
)

// SignatureEngine produces and verifies Ed25519 signatures over
// SHA-256(canonical_bytes) (spec §4.3). It replaces the teacher's
// multi-scheme core/security.go (BLS, Dilithium, TLS, AEAD) with the single
// primitive this core actually needs; the rest of that file's concerns
// belong to the validator and network layers, out of scope here (see
// DESIGN.md).

// Sign produces the primary signature: Ed25519 over SHA-256(to_bytes(trs))
// with no bytes skipped.
func Sign(ctx *Context, priv ed25519.PrivateKey, tx *Transaction) ([]byte, error) {
	b, err := ToBytes(ctx, tx, false, false)
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256(b)
	return ed25519.Sign(priv, digest[:]), nil
}

// SignSecondary produces the second-factor signature, computed over the
// canonical bytes including the primary signature but excluding the second
// signature slot itself (skip_sig=false, skip_sig2=true) — the second
// signature covers the primary signature.
func SignSecondary(ctx *Context, priv ed25519.PrivateKey, tx *Transaction) ([]byte, error) {
	b, err := ToBytes(ctx, tx, false, true)
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256(b)
	return ed25519.Sign(priv, digest[:]), nil
}

// MultiSign produces a co-signer's multisignature approval: Ed25519 over
// SHA-256(to_bytes(trs, skip_sig=true, skip_sig2=true)) — neither signature
// slot participates in the pre-image, since a multisignature approves the
// transaction's substantive content alone.
func MultiSign(ctx *Context, priv ed25519.PrivateKey, tx *Transaction) ([]byte, error) {
	b, err := ToBytes(ctx, tx, true, true)
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256(b)
	return ed25519.Sign(priv, digest[:]), nil
}

// VerifyUnsigned verifies sig against the unsigned pre-image
// (skip_sig=true, skip_sig2=true) — shared by primary-signature verification
// and multisignature co-signer verification, since both check the same
// content-only byte sequence. A missing/empty signature or public key
// returns false rather than an error (spec §4.3).
func VerifyUnsigned(ctx *Context, pk ed25519.PublicKey, tx *Transaction, sig []byte) bool {
	if len(pk) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	b, err := ToBytes(ctx, tx, true, true)
	if err != nil {
		return false
	}
	digest := sha256.Sum256(b)
	return ed25519.Verify(pk, digest[:], sig)
}

// VerifySecondary verifies a second-factor signature against the pre-image
// that includes the primary signature but excludes the second (skip_sig=
// false, skip_sig2=true).
func VerifySecondary(ctx *Context, pk ed25519.PublicKey, tx *Transaction, sig []byte) bool {
	if len(pk) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	b, err := ToBytes(ctx, tx, false, true)
	if err != nil {
		return false
	}
	digest := sha256.Sum256(b)
	return ed25519.Verify(pk, digest[:], sig)
}
