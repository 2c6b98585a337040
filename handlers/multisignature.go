package handlers

import (
	"context"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/synnergy-chain/txcore/core"
)

// MultisignatureFeeUnit is charged once per keysgroup entry plus one, the
// conventional multisignature-registration fee shape.
const MultisignatureFeeUnit = uint64(500_000_000)

// MultisignatureHandler implements core.Handler for type 4: registering a
// multisignature group on the sender's account. The asset payload is
// {"multisignature": {"min": N, "lifetime": N, "keysgroup": ["+<64hex>", ...]}}.
// A leading "+" enrolls a key, "-" removes one (removal is not modelled by
// this reference handler's Apply — only initial registration is).
type MultisignatureHandler struct{}

func (MultisignatureHandler) Create(p core.CreateParams) (*core.Transaction, error) {
	return &core.Transaction{
		Type:            4,
		Timestamp:       p.Timestamp,
		SenderPublicKey: p.SenderPublicKey,
		Amount:          0,
		Asset:           p.Asset,
	}, nil
}

// GetBytes encodes min, lifetime, and the keysgroup entries concatenated in
// order, deterministic regardless of how the caller constructed the asset
// map (spec §4.1's determinism requirement).
func (MultisignatureHandler) GetBytes(tx *core.Transaction) ([]byte, error) {
	min, lifetime, keysgroup, err := multisigAsset(tx)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, 2+len(keysgroup)*65)
	buf = append(buf, byte(min), byte(lifetime))
	for _, k := range keysgroup {
		buf = append(buf, k...)
	}
	return buf, nil
}

func (MultisignatureHandler) CalculateFee(tx *core.Transaction, sender *core.Account) uint64 {
	_, _, keysgroup, err := multisigAsset(tx)
	if err != nil {
		return 0
	}
	return uint64(len(keysgroup)+1) * MultisignatureFeeUnit
}

func (MultisignatureHandler) Verify(tx *core.Transaction, sender, requester *core.Account) error {
	min, lifetime, keysgroup, err := multisigAsset(tx)
	if err != nil {
		return err
	}
	if min < 1 || int(min) > len(keysgroup) {
		return core.NewError(core.ErrMalformedTransaction, "multisignature min out of range for keysgroup size")
	}
	if lifetime < 1 || lifetime > 72 {
		return core.NewError(core.ErrMalformedTransaction, "multisignature lifetime out of range")
	}
	return nil
}

func (MultisignatureHandler) ObjectNormalize(tx *core.Transaction) error {
	_, _, _, err := multisigAsset(tx)
	return err
}

func (MultisignatureHandler) DBRead(row map[string]string) (map[string]interface{}, error) {
	keysgroup, ok := row["m_keysgroup"]
	if !ok || keysgroup == "" {
		return map[string]interface{}{}, nil
	}
	return map[string]interface{}{
		"multisignature": map[string]interface{}{
			"min":       row["m_min"],
			"lifetime":  row["m_lifetime"],
			"keysgroup": strings.Split(keysgroup, ","),
		},
	}, nil
}

func (MultisignatureHandler) DBSave(tx *core.Transaction) ([]core.Row, error) {
	min, lifetime, keysgroup, err := multisigAsset(tx)
	if err != nil {
		return nil, err
	}
	return []core.Row{{
		Table: "multisignatures",
		Fields: map[string]string{
			"transactionId": tx.ID,
			"m_min":         strconv.FormatUint(uint64(min), 10),
			"m_lifetime":    strconv.FormatUint(uint64(lifetime), 10),
			"m_keysgroup":   strings.Join(rawKeysgroup(tx), ","),
		},
	}}, nil
}

func (MultisignatureHandler) Apply(tx *core.Transaction, sender *core.Account, store core.AccountStore) error {
	_, _, keysgroup, err := multisigAsset(tx)
	if err != nil {
		return err
	}
	_, err = store.Merge(sender.Address, core.Delta{AddMultisignatures: keysgroup})
	return err
}

func (MultisignatureHandler) Undo(tx *core.Transaction, sender *core.Account, store core.AccountStore) error {
	return nil
}

func (MultisignatureHandler) ApplyUnconfirmed(tx *core.Transaction, sender *core.Account, store core.AccountStore) error {
	_, _, keysgroup, err := multisigAsset(tx)
	if err != nil {
		return err
	}
	_, err = store.Merge(sender.Address, core.Delta{AddUMultisignatures: keysgroup})
	return err
}

func (MultisignatureHandler) UndoUnconfirmed(tx *core.Transaction, sender *core.Account, store core.AccountStore) error {
	return nil
}

func (MultisignatureHandler) Ready(tx *core.Transaction, sender *core.Account) bool {
	min, _, _, err := multisigAsset(tx)
	if err != nil {
		return false
	}
	return len(tx.Signatures) >= int(min)
}

func (MultisignatureHandler) Process(ctx context.Context, tx *core.Transaction) (*core.Transaction, error) {
	return tx, nil
}

// KeysGroup implements core.MultisigKeysGroupExtractor: the Verifier falls
// back to this when the sender has no confirmed or unconfirmed
// multisignature set yet, e.g. for the registration transaction itself.
func (MultisignatureHandler) KeysGroup(tx *core.Transaction) ([][]byte, bool) {
	_, _, keysgroup, err := multisigAsset(tx)
	if err != nil {
		return nil, false
	}
	return keysgroup, true
}

func rawKeysgroup(tx *core.Transaction) []string {
	asset, ok := tx.Asset["multisignature"].(map[string]interface{})
	if !ok {
		return nil
	}
	raw, ok := asset["keysgroup"].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// multisigAsset parses and validates the multisignature asset payload,
// stripping each keysgroup entry's leading "+"/"-" action byte per spec
// §4.6 check 9.
func multisigAsset(tx *core.Transaction) (min, lifetime uint8, keysgroup [][]byte, err error) {
	asset, ok := tx.Asset["multisignature"].(map[string]interface{})
	if !ok {
		return 0, 0, nil, core.NewError(core.ErrMalformedTransaction, "missing asset.multisignature")
	}
	minVal, err2 := toUint8(asset["min"])
	if err2 != nil {
		return 0, 0, nil, core.NewError(core.ErrMalformedTransaction, "asset.multisignature.min must be an integer")
	}
	lifetimeVal, err2 := toUint8(asset["lifetime"])
	if err2 != nil {
		return 0, 0, nil, core.NewError(core.ErrMalformedTransaction, "asset.multisignature.lifetime must be an integer")
	}
	raw, ok := asset["keysgroup"].([]interface{})
	if !ok || len(raw) == 0 {
		return 0, 0, nil, core.NewError(core.ErrMalformedTransaction, "asset.multisignature.keysgroup must be a non-empty array")
	}
	keys := make([][]byte, 0, len(raw))
	for _, r := range raw {
		s, ok := r.(string)
		if !ok || len(s) != 65 {
			return 0, 0, nil, core.NewError(core.ErrMalformedTransaction, "keysgroup entry must be a 1-byte action prefix plus 64 hex chars")
		}
		key, err2 := hex.DecodeString(s[1:])
		if err2 != nil {
			return 0, 0, nil, core.WrapError(core.ErrMalformedTransaction, "keysgroup entry is not valid hex", err2)
		}
		keys = append(keys, key)
	}
	return minVal, lifetimeVal, keys, nil
}

func toUint8(v interface{}) (uint8, error) {
	switch n := v.(type) {
	case int:
		return uint8(n), nil
	case int64:
		return uint8(n), nil
	case float64:
		return uint8(n), nil
	case uint8:
		return n, nil
	default:
		return 0, core.NewError(core.ErrMalformedTransaction, "expected integer value")
	}
}
