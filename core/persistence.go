package core

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// Row is a single table write the Persistence adapter produces: an insert
// or upsert of Fields keyed by column name, targeting Table (spec §4.8).
// Text-typed fields keep the ledger adapter (C12, KeyValueLedger) agnostic
// of any particular SQL/KV schema; numeric fields are formatted as decimal
// strings and binary fields as lowercase hex, matching the persisted-state
// layout in spec §6.
type Row struct {
	Table  string
	Fields map[string]string
}

// DBSave produces the row set to insert for tx: the base `trs` row first,
// followed by any rows the handler contributes (spec §4.8).
func DBSave(ctx *Context, tx *Transaction) ([]Row, error) {
	handler, err := ctx.Registry.MustLookup(tx.Type)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{
		"id":                 tx.ID,
		"blockId":            tx.BlockID,
		"type":               strconv.FormatUint(uint64(tx.Type), 10),
		"timestamp":          strconv.FormatInt(int64(tx.Timestamp), 10),
		"senderPublicKey":    hex.EncodeToString(tx.SenderPublicKey),
		"requesterPublicKey": hex.EncodeToString(tx.RequesterPublicKey),
		"senderId":           tx.SenderID,
		"recipientId":        tx.RecipientID,
		"amount":             strconv.FormatUint(tx.Amount, 10),
		"fee":                strconv.FormatUint(tx.Fee, 10),
		"signature":          hex.EncodeToString(tx.Signature),
		"signSignature":      hex.EncodeToString(tx.SignSignature),
		"signatures":         joinSignatures(tx.Signatures),
	}
	rows := []Row{{Table: "trs", Fields: fields}}

	if saver, ok := handler.(DBSaver); ok {
		extra, err := saver.DBSave(tx)
		if err != nil {
			return nil, WrapError(ErrHandlerError, "handler.db_save failed", err)
		}
		rows = append(rows, extra...)
	}
	return rows, nil
}

// DBRead reconstructs a Transaction from a database row, returning (nil,
// nil) if no transaction id is present, matching the source's `null`
// sentinel for "no row" rather than an error (spec §4.8).
func DBRead(ctx *Context, row map[string]string) (*Transaction, error) {
	id, ok := row["id"]
	if !ok || id == "" {
		return nil, nil
	}

	typ, err := strconv.ParseUint(row["type"], 10, 8)
	if err != nil {
		return nil, WrapError(ErrMalformedTransaction, "db_read: bad type field", err)
	}
	timestamp, err := strconv.ParseInt(row["timestamp"], 10, 32)
	if err != nil {
		return nil, WrapError(ErrMalformedTransaction, "db_read: bad timestamp field", err)
	}
	amount, err := strconv.ParseUint(row["amount"], 10, 64)
	if err != nil {
		return nil, WrapError(ErrMalformedTransaction, "db_read: bad amount field", err)
	}
	fee, err := strconv.ParseUint(row["fee"], 10, 64)
	if err != nil {
		return nil, WrapError(ErrMalformedTransaction, "db_read: bad fee field", err)
	}
	senderPK, err := hex.DecodeString(row["senderPublicKey"])
	if err != nil {
		return nil, WrapError(ErrMalformedTransaction, "db_read: bad senderPublicKey field", err)
	}
	requesterPK, err := hex.DecodeString(row["requesterPublicKey"])
	if err != nil {
		return nil, WrapError(ErrMalformedTransaction, "db_read: bad requesterPublicKey field", err)
	}
	signature, err := hex.DecodeString(row["signature"])
	if err != nil {
		return nil, WrapError(ErrMalformedTransaction, "db_read: bad signature field", err)
	}
	signSignature, err := hex.DecodeString(row["signSignature"])
	if err != nil {
		return nil, WrapError(ErrMalformedTransaction, "db_read: bad signSignature field", err)
	}

	tx := &Transaction{
		ID:                 id,
		BlockID:            row["blockId"],
		Type:               uint8(typ),
		Timestamp:          int32(timestamp),
		SenderPublicKey:    senderPK,
		RequesterPublicKey: requesterPK,
		SenderID:           row["senderId"],
		RecipientID:        row["recipientId"],
		Amount:             amount,
		Fee:                fee,
		Signature:          signature,
		SignSignature:      signSignature,
		Signatures:         splitSignatures(row["signatures"]),
	}

	handler, err := ctx.Registry.MustLookup(tx.Type)
	if err != nil {
		return nil, err
	}
	asset, err := handler.DBRead(row)
	if err != nil {
		return nil, WrapError(ErrHandlerError, "handler.db_read failed", err)
	}
	tx.Asset = asset

	return tx, nil
}

// AfterSave delegates to the handler's post-insert hook when defined;
// otherwise it is a no-op (spec §4.8).
func AfterSave(ctx *Context, tx *Transaction) error {
	handler, err := ctx.Registry.MustLookup(tx.Type)
	if err != nil {
		return err
	}
	if saver, ok := handler.(AfterSaver); ok {
		if err := saver.AfterSave(tx); err != nil {
			return WrapError(ErrHandlerError, "handler.after_save failed", err)
		}
	}
	return nil
}

func joinSignatures(sigs [][]byte) string {
	parts := make([]string, len(sigs))
	for i, s := range sigs {
		parts[i] = hex.EncodeToString(s)
	}
	return strings.Join(parts, ",")
}

func splitSignatures(field string) [][]byte {
	if field == "" {
		return nil
	}
	parts := strings.Split(field, ",")
	out := make([][]byte, 0, len(parts))
	for _, p := range parts {
		b, err := hex.DecodeString(p)
		if err != nil {
			continue
		}
		out = append(out, b)
	}
	return out
}
