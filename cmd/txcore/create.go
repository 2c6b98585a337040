package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/synnergy-chain/txcore/core"
)

func createCmd() *cobra.Command {
	var typ uint8
	var recipient string
	var amount uint64
	var senderPublicKeyHex string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Build an unsigned transaction and print its canonical JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := buildContext()
			if err != nil {
				return err
			}
			handler, err := ctx.Registry.MustLookup(typ)
			if err != nil {
				return err
			}
			senderPK, err := hex.DecodeString(senderPublicKeyHex)
			if err != nil {
				return fmt.Errorf("invalid --sender-public-key: %w", err)
			}

			now := time.Now()
			tx, err := handler.Create(core.CreateParams{
				Type:            typ,
				Timestamp:       int32(now.Unix()),
				SenderPublicKey: senderPK,
				RecipientID:     recipient,
				Amount:          amount,
				Now:             now,
			})
			if err != nil {
				return err
			}

			id, err := core.ComputeID(ctx, tx)
			if err != nil {
				return err
			}
			tx.ID = id

			out, err := json.MarshalIndent(txView(tx), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().Uint8Var(&typ, "type", 0, "transaction type")
	cmd.Flags().StringVar(&recipient, "recipient", "", "recipient address (decimal id + suffix)")
	cmd.Flags().Uint64Var(&amount, "amount", 0, "amount in base units")
	cmd.Flags().StringVar(&senderPublicKeyHex, "sender-public-key", "", "sender public key, 64 hex chars")
	return cmd
}

// txView renders a Transaction the way the persisted-state layout expects
// hex/decimal fields, for human-readable CLI output.
func txView(tx *core.Transaction) map[string]interface{} {
	return map[string]interface{}{
		"id":                 tx.ID,
		"type":               tx.Type,
		"timestamp":          tx.Timestamp,
		"senderPublicKey":    hex.EncodeToString(tx.SenderPublicKey),
		"requesterPublicKey": hex.EncodeToString(tx.RequesterPublicKey),
		"recipientId":        tx.RecipientID,
		"amount":             strconv.FormatUint(tx.Amount, 10),
		"fee":                strconv.FormatUint(tx.Fee, 10),
		"signature":          hex.EncodeToString(tx.Signature),
		"signSignature":      hex.EncodeToString(tx.SignSignature),
	}
}
