package core

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"strings"
)

// Verify runs the full verification pipeline against tx (spec §4.6). The
// thirteen checks run in order; the first failure short-circuits and is
// returned. requester may be nil.
func Verify(ctx *Context, tx *Transaction, sender, requester *Account) error {
	// 1. Type known.
	handler, err := ctx.Registry.MustLookup(tx.Type)
	if err != nil {
		return err
	}

	// 2. Sender present.
	if sender == nil {
		return NewError(ErrMissingSender, "sender account is required")
	}

	// 3. Sender public key matches account, unless grandfathered.
	if !bytes.Equal(tx.SenderPublicKey, sender.PublicKey) {
		if !ctx.IsSenderPublicKeyException(tx.ID) {
			return NewErrorf(ErrInvalidSenderPublicKey, "transaction %s sender public key does not match account %s", tx.ID, sender.Address)
		}
		Log.WithField("tx", tx.ID).Debug("sender public key mismatch grandfathered by exception list")
	}

	// 4. Sender address matches, case-insensitively.
	if !strings.EqualFold(tx.SenderID, sender.Address) {
		return NewErrorf(ErrInvalidSenderAddress, "transaction %s sender id %q does not match account address %q", tx.ID, tx.SenderID, sender.Address)
	}

	// 5. Requester, if present, must be in the sender's multisignature set.
	if requester != nil {
		if !containsKey(sender.Multisignatures, requester.PublicKey) {
			return NewErrorf(ErrInvalidRequesterPublicKey, "transaction %s requester is not a co-signer of sender %s", tx.ID, sender.Address)
		}
	}

	// 6. Primary signature, verified against requester if present else sender.
	signerPK := sender.PublicKey
	if requester != nil {
		signerPK = requester.PublicKey
	}
	if !VerifyUnsigned(ctx, ed25519.PublicKey(signerPK), tx, tx.Signature) {
		return NewErrorf(ErrFailedSignature, "transaction %s primary signature verification failed", tx.ID)
	}

	// 7. Second signature.
	if err := verifySecondSignature(ctx, tx, sender, requester); err != nil {
		return err
	}

	// 8. Unique multisignatures.
	if hasDuplicateSignature(tx.Signatures) {
		return NewErrorf(ErrDuplicateSignature, "transaction %s contains duplicate signatures", tx.ID)
	}

	// 9. Multisignature verification.
	if err := verifyMultisignatures(ctx, tx, sender, requester, handler); err != nil {
		return err
	}

	// 10. Fee equality.
	if tx.Fee != handler.CalculateFee(tx, sender) {
		return NewErrorf(ErrInvalidFee, "transaction %s fee %d does not match required fee %d", tx.ID, tx.Fee, handler.CalculateFee(tx, sender))
	}

	// 11. Amount bounds.
	if tx.Amount > ctx.TotalSupply {
		return NewErrorf(ErrInvalidAmount, "transaction %s amount %d exceeds total supply %d", tx.ID, tx.Amount, ctx.TotalSupply)
	}

	// 12. Timestamp not from the future, in slot terms.
	if ctx.Slots != nil && ctx.Slots.SlotNumber(int64(tx.Timestamp)) > ctx.Slots.CurrentSlot() {
		return NewErrorf(ErrInvalidTimestamp, "transaction %s timestamp is ahead of the current slot", tx.ID)
	}

	// 13. Handler-specific verify, returned verbatim.
	if err := handler.Verify(tx, sender, requester); err != nil {
		return err
	}

	return nil
}

func verifySecondSignature(ctx *Context, tx *Transaction, sender, requester *Account) error {
	var signer *Account
	if requester == nil {
		if !sender.SecondSignature {
			return nil
		}
		signer = sender
	} else {
		if !requester.SecondSignature {
			return nil
		}
		signer = requester
	}
	if len(tx.SignSignature) == 0 {
		return NewErrorf(ErrFailedSecondSignature, "transaction %s missing required second signature", tx.ID)
	}
	if !VerifySecondary(ctx, ed25519.PublicKey(signer.SecondPublicKey), tx, tx.SignSignature) {
		return NewErrorf(ErrFailedSecondSignature, "transaction %s second signature verification failed", tx.ID)
	}
	return nil
}

func hasDuplicateSignature(sigs [][]byte) bool {
	seen := make(map[string]struct{}, len(sigs))
	for _, s := range sigs {
		key := string(s)
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
	}
	return false
}

// verifyMultisignatures implements check 9: the co-signer set is the
// sender's confirmed multisignatures, falling back to unconfirmed, falling
// back to the asset-derived set for a multisignature-registration
// transaction. If a requester is present, the sender's own public key joins
// the set (the sender is always entitled to co-sign on its own behalf).
func verifyMultisignatures(ctx *Context, tx *Transaction, sender, requester *Account, handler Handler) error {
	if len(tx.Signatures) == 0 {
		return nil
	}

	keysGroup := sender.Multisignatures
	if len(keysGroup) == 0 {
		keysGroup = sender.UMultisignatures
	}
	if len(keysGroup) == 0 {
		if extractor, ok := handler.(MultisigKeysGroupExtractor); ok {
			if derived, ok := extractor.KeysGroup(tx); ok {
				keysGroup = derived
			}
		}
	}
	if requester != nil {
		keysGroup = append(append([][]byte(nil), keysGroup...), sender.PublicKey)
	}

	for _, sig := range tx.Signatures {
		verified := false
		for _, key := range keysGroup {
			if requester != nil && bytes.Equal(key, requester.PublicKey) {
				continue
			}
			if VerifyUnsigned(ctx, ed25519.PublicKey(key), tx, sig) {
				verified = true
				break
			}
		}
		if !verified {
			return NewErrorf(ErrFailedMultisignature, "transaction %s signature %s does not verify against any co-signer key", tx.ID, hex.EncodeToString(sig))
		}
	}
	return nil
}

func containsKey(keys [][]byte, key []byte) bool {
	for _, k := range keys {
		if bytes.Equal(k, key) {
			return true
		}
	}
	return false
}
