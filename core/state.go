package core

import "math"

// addChecked adds b to a, rejecting overflow past the uint64 ceiling rather
// than wrapping. Per Design Notes §9, amounts and fees are bounded by
// TOTAL_SUPPLY (< 2^64); no biginteger library is imported, only an explicit
// checked addition.
func addChecked(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, NewErrorf(ErrInvalidAmount, "checked addition overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// round computes ceil(height/delegatesPerRound), the StateMutator's round
// number for a confirmed delta (spec §4.7).
func round(height, delegatesPerRound uint64) uint64 {
	if delegatesPerRound == 0 {
		return 0
	}
	return (height + delegatesPerRound - 1) / delegatesPerRound
}

// debit returns amount+fee as a single checked sum, the quantity moved by
// every confirmed/unconfirmed merge below.
func debit(tx *Transaction) (uint64, error) {
	return addChecked(tx.Amount, tx.Fee)
}

// Ready reports whether tx may be applied against sender (spec §4.7's
// `ready` pre-check). StateMutator.Apply enforces it; ApplyUnconfirmed
// deliberately does not, preserving the asymmetry the source's `process`
// exhibits (commented out at pool-admission time, enforced at block-apply
// time) per the Design Notes' resolved Open Question.
func Ready(ctx *Context, tx *Transaction, sender *Account) bool {
	handler, err := ctx.Registry.MustLookup(tx.Type)
	if err != nil {
		return false
	}
	return handler.Ready(tx, sender)
}

// Apply performs the confirmed balance merge and delegates to the handler,
// reversing the balance merge if the handler fails (spec §4.7). block.ID
// equal to the chain's genesis id waives the sufficient-balance check.
func Apply(ctx *Context, tx *Transaction, block BlockRef, sender *Account, store AccountStore) error {
	handler, err := ctx.Registry.MustLookup(tx.Type)
	if err != nil {
		return err
	}
	if !handler.Ready(tx, sender) {
		return NewErrorf(ErrNotReady, "transaction %s is not ready to apply", tx.ID)
	}

	spend, err := debit(tx)
	if err != nil {
		return err
	}
	if !ctx.IsGenesis(block.ID) && sender.Balance < spend {
		return NewErrorf(ErrInsufficientBalance, "sender %s balance %d below required %d", sender.Address, sender.Balance, spend)
	}

	delta := Delta{
		Balance: -int64(spend),
		BlockID: block.ID,
		Round:   round(block.Height, ctx.DelegatesPerRound),
	}
	updated, err := store.Merge(sender.Address, delta)
	if err != nil {
		return WrapError(ErrStoreError, "apply: confirmed balance merge failed", err)
	}

	if err := handler.Apply(tx, updated, store); err != nil {
		if _, rerr := store.Merge(sender.Address, Delta{Balance: int64(spend), BlockID: block.ID}); rerr != nil {
			return WrapError(ErrStoreError, "apply: rollback of balance merge failed after handler error", rerr)
		}
		return WrapError(ErrHandlerError, "apply: handler.apply failed", err)
	}
	return nil
}

// Undo reverses a confirmed apply: credit amount+fee back to balance, then
// delegate to the handler, rolling back the credit if the handler fails.
func Undo(ctx *Context, tx *Transaction, block BlockRef, sender *Account, store AccountStore) error {
	handler, err := ctx.Registry.MustLookup(tx.Type)
	if err != nil {
		return err
	}

	credit, err := debit(tx)
	if err != nil {
		return err
	}

	delta := Delta{
		Balance: int64(credit),
		BlockID: block.ID,
		Round:   round(block.Height, ctx.DelegatesPerRound),
	}
	updated, err := store.Merge(sender.Address, delta)
	if err != nil {
		return WrapError(ErrStoreError, "undo: confirmed balance merge failed", err)
	}

	if err := handler.Undo(tx, updated, store); err != nil {
		if _, rerr := store.Merge(sender.Address, Delta{Balance: -int64(credit), BlockID: block.ID}); rerr != nil {
			return WrapError(ErrStoreError, "undo: rollback of balance merge failed after handler error", rerr)
		}
		return WrapError(ErrHandlerError, "undo: handler.undo failed", err)
	}
	return nil
}

// ApplyUnconfirmed admits tx into the pool: second-signature pre-checks,
// then the same two-phase merge against u_balance (spec §4.7). requester may
// be nil. genesisBlockID is compared with ctx.GenesisBlockID; when the two
// are equal the second-signature pre-checks are waived.
func ApplyUnconfirmed(ctx *Context, tx *Transaction, sender, requester *Account, store AccountStore, genesisBlockID string) error {
	handler, err := ctx.Registry.MustLookup(tx.Type)
	if err != nil {
		return err
	}

	if err := checkSecondSignaturePresence(tx, sender, requester, ctx.IsGenesis(genesisBlockID)); err != nil {
		return err
	}

	spend, err := debit(tx)
	if err != nil {
		return err
	}

	updated, err := store.Merge(sender.Address, Delta{UBalance: -int64(spend)})
	if err != nil {
		return WrapError(ErrStoreError, "apply_unconfirmed: unconfirmed balance merge failed", err)
	}

	if err := handler.ApplyUnconfirmed(tx, updated, store); err != nil {
		if _, rerr := store.Merge(sender.Address, Delta{UBalance: int64(spend)}); rerr != nil {
			return WrapError(ErrStoreError, "apply_unconfirmed: rollback failed after handler error", rerr)
		}
		return WrapError(ErrHandlerError, "apply_unconfirmed: handler.apply_unconfirmed failed", err)
	}
	return nil
}

// UndoUnconfirmed reverses an unconfirmed apply: credit amount+fee back to
// u_balance, then delegate to the handler, rolling back on failure.
func UndoUnconfirmed(ctx *Context, tx *Transaction, sender *Account, store AccountStore) error {
	handler, err := ctx.Registry.MustLookup(tx.Type)
	if err != nil {
		return err
	}

	credit, err := debit(tx)
	if err != nil {
		return err
	}

	updated, err := store.Merge(sender.Address, Delta{UBalance: int64(credit)})
	if err != nil {
		return WrapError(ErrStoreError, "undo_unconfirmed: unconfirmed balance merge failed", err)
	}

	if err := handler.UndoUnconfirmed(tx, updated, store); err != nil {
		if _, rerr := store.Merge(sender.Address, Delta{UBalance: -int64(credit)}); rerr != nil {
			return WrapError(ErrStoreError, "undo_unconfirmed: rollback failed after handler error", rerr)
		}
		return WrapError(ErrHandlerError, "undo_unconfirmed: handler.undo_unconfirmed failed", err)
	}
	return nil
}

// checkSecondSignaturePresence enforces spec §4.7's apply_unconfirmed
// pre-checks: the relevant account's second-signature flag and the
// transaction's sign_signature presence must agree, except in the genesis
// block.
func checkSecondSignaturePresence(tx *Transaction, sender, requester *Account, isGenesis bool) error {
	if isGenesis {
		return nil
	}
	signer := sender
	if requester != nil {
		signer = requester
	}
	hasSig2 := len(tx.SignSignature) > 0
	if signer.SecondSignature && !hasSig2 {
		return NewError(ErrFailedSecondSignature, "missing sender second signature")
	}
	if !signer.SecondSignature && hasSig2 {
		return NewError(ErrFailedSecondSignature, "unexpected second signature present")
	}
	return nil
}
