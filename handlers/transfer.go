// Package handlers provides the reference transaction-type handlers the
// core's TypeRegistry dispatches to. These are the "external plug-ins"
// spec §1 says are specified by interface only; the implementations here
// are a reference set, grounded on the teacher's wallet/transfer logic in
// the Synnergy core package, adapted to this core's Handler interface.
package handlers

import (
	"context"

	"github.com/synnergy-chain/txcore/core"
)

// TransferFee is the flat fee a type-0 transfer charges, independent of
// amount.
const TransferFee = uint64(10_000_000)

// TransferHandler implements core.Handler for type 0 (plain balance
// transfer). It carries no asset payload.
type TransferHandler struct{}

func (TransferHandler) Create(p core.CreateParams) (*core.Transaction, error) {
	return &core.Transaction{
		Type:            0,
		Timestamp:       p.Timestamp,
		SenderPublicKey: p.SenderPublicKey,
		RecipientID:     p.RecipientID,
		Amount:          p.Amount,
		Fee:             TransferFee,
		Asset:           map[string]interface{}{},
	}, nil
}

func (TransferHandler) GetBytes(tx *core.Transaction) ([]byte, error) {
	return nil, nil
}

func (TransferHandler) CalculateFee(tx *core.Transaction, sender *core.Account) uint64 {
	return TransferFee
}

func (TransferHandler) Verify(tx *core.Transaction, sender, requester *core.Account) error {
	return nil
}

func (TransferHandler) ObjectNormalize(tx *core.Transaction) error {
	return nil
}

func (TransferHandler) DBRead(row map[string]string) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

func (TransferHandler) Apply(tx *core.Transaction, recipient *core.Account, store core.AccountStore) error {
	if tx.RecipientID == "" {
		return nil
	}
	_, err := store.Merge(tx.RecipientID, core.Delta{Balance: int64(tx.Amount)})
	return err
}

func (TransferHandler) Undo(tx *core.Transaction, recipient *core.Account, store core.AccountStore) error {
	if tx.RecipientID == "" {
		return nil
	}
	_, err := store.Merge(tx.RecipientID, core.Delta{Balance: -int64(tx.Amount)})
	return err
}

func (TransferHandler) ApplyUnconfirmed(tx *core.Transaction, sender *core.Account, store core.AccountStore) error {
	return nil
}

func (TransferHandler) UndoUnconfirmed(tx *core.Transaction, sender *core.Account, store core.AccountStore) error {
	return nil
}

func (TransferHandler) Ready(tx *core.Transaction, sender *core.Account) bool {
	return len(tx.Signature) > 0
}

func (TransferHandler) Process(ctx context.Context, tx *core.Transaction) (*core.Transaction, error) {
	return tx, nil
}
