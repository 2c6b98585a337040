package handlers

import (
	"context"
	"encoding/hex"

	"github.com/synnergy-chain/txcore/core"
)

// SecondSignatureFee is the flat registration fee for a type-1 transaction,
// charged once per account.
const SecondSignatureFee = uint64(500_000_000)

// SecondSignatureHandler implements core.Handler for type 1: registering a
// second passphrase/public key on the sender's account. The asset payload
// is {"signature": {"publicKey": "<64 hex chars>"}}.
type SecondSignatureHandler struct{}

func (SecondSignatureHandler) Create(p core.CreateParams) (*core.Transaction, error) {
	return &core.Transaction{
		Type:            1,
		Timestamp:       p.Timestamp,
		SenderPublicKey: p.SenderPublicKey,
		Amount:          0,
		Fee:             SecondSignatureFee,
		Asset:           p.Asset,
	}, nil
}

// GetBytes encodes the registered public key as its raw 32 bytes, the only
// asset-specific bytes this handler contributes to the canonical pre-image.
func (SecondSignatureHandler) GetBytes(tx *core.Transaction) ([]byte, error) {
	pk, err := secondPublicKey(tx)
	if err != nil {
		return nil, err
	}
	return pk, nil
}

func (SecondSignatureHandler) CalculateFee(tx *core.Transaction, sender *core.Account) uint64 {
	return SecondSignatureFee
}

func (SecondSignatureHandler) Verify(tx *core.Transaction, sender, requester *core.Account) error {
	if sender.SecondSignature {
		return core.NewError(core.ErrMalformedTransaction, "account already has a second signature registered")
	}
	if _, err := secondPublicKey(tx); err != nil {
		return err
	}
	return nil
}

func (SecondSignatureHandler) ObjectNormalize(tx *core.Transaction) error {
	_, err := secondPublicKey(tx)
	return err
}

func (SecondSignatureHandler) DBRead(row map[string]string) (map[string]interface{}, error) {
	pk, ok := row["s_publicKey"]
	if !ok || pk == "" {
		return map[string]interface{}{}, nil
	}
	return map[string]interface{}{
		"signature": map[string]interface{}{"publicKey": pk},
	}, nil
}

func (SecondSignatureHandler) DBSave(tx *core.Transaction) ([]core.Row, error) {
	pk, err := secondPublicKey(tx)
	if err != nil {
		return nil, err
	}
	return []core.Row{{
		Table: "signatures",
		Fields: map[string]string{
			"transactionId": tx.ID,
			"s_publicKey":   hex.EncodeToString(pk),
		},
	}}, nil
}

func (SecondSignatureHandler) Apply(tx *core.Transaction, sender *core.Account, store core.AccountStore) error {
	pk, err := secondPublicKey(tx)
	if err != nil {
		return err
	}
	enabled := true
	_, err = store.Merge(sender.Address, core.Delta{SetSecondSignature: &enabled, SetSecondPublicKey: pk})
	return err
}

func (SecondSignatureHandler) Undo(tx *core.Transaction, sender *core.Account, store core.AccountStore) error {
	disabled := false
	_, err := store.Merge(sender.Address, core.Delta{SetSecondSignature: &disabled, SetSecondPublicKey: nil})
	return err
}

func (SecondSignatureHandler) ApplyUnconfirmed(tx *core.Transaction, sender *core.Account, store core.AccountStore) error {
	return nil
}

func (SecondSignatureHandler) UndoUnconfirmed(tx *core.Transaction, sender *core.Account, store core.AccountStore) error {
	return nil
}

func (SecondSignatureHandler) Ready(tx *core.Transaction, sender *core.Account) bool {
	return len(tx.Signature) > 0
}

func (SecondSignatureHandler) Process(ctx context.Context, tx *core.Transaction) (*core.Transaction, error) {
	return tx, nil
}

func secondPublicKey(tx *core.Transaction) ([]byte, error) {
	sigAsset, ok := tx.Asset["signature"].(map[string]interface{})
	if !ok {
		return nil, core.NewError(core.ErrMalformedTransaction, "missing asset.signature")
	}
	pkHex, ok := sigAsset["publicKey"].(string)
	if !ok || len(pkHex) != 64 {
		return nil, core.NewError(core.ErrMalformedTransaction, "asset.signature.publicKey must be 64 hex characters")
	}
	pk, err := hex.DecodeString(pkHex)
	if err != nil {
		return nil, core.WrapError(core.ErrMalformedTransaction, "asset.signature.publicKey is not valid hex", err)
	}
	return pk, nil
}
