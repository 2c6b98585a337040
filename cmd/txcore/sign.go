package main

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/synnergy-chain/txcore/core"
)

func signCmd() *cobra.Command {
	var txJSON string
	var privateKeyHex string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a transaction JSON file (as produced by 'create') and print it with a signature and id",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := buildContext()
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(txJSON)
			if err != nil {
				return fmt.Errorf("reading %s: %w", txJSON, err)
			}
			var view map[string]interface{}
			if err := json.Unmarshal(raw, &view); err != nil {
				return fmt.Errorf("parsing %s: %w", txJSON, err)
			}
			tx, err := txFromView(view)
			if err != nil {
				return err
			}

			priv, err := decodePrivateKey(privateKeyHex)
			if err != nil {
				return err
			}

			sig, err := core.Sign(ctx, priv, tx)
			if err != nil {
				return err
			}
			tx.Signature = sig

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

	cmd.Flags().StringVar(&txJSON, "tx", "", "path to the transaction JSON to sign")
	cmd.Flags().StringVar(&privateKeyHex, "private-key", "", "Ed25519 private key, 128 hex chars (seed+public, 64 bytes)")
	cmd.MarkFlagRequired("tx")
	cmd.MarkFlagRequired("private-key")
	return cmd
}

func decodePrivateKey(hexKey string) (ed25519.PrivateKey, error) {
	b, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid --private-key: %w", err)
	}
	if len(b) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("--private-key must be %d bytes, got %d", ed25519.PrivateKeySize, len(b))
	}
	return ed25519.PrivateKey(b), nil
}

// txFromView reconstructs a *core.Transaction from the CLI's JSON rendering
// (the inverse of txView), for commands that accept a previously printed
// transaction as input.
func txFromView(view map[string]interface{}) (*core.Transaction, error) {
	tx := &core.Transaction{}

	if v, ok := view["type"].(float64); ok {
		tx.Type = uint8(v)
	}
	if v, ok := view["timestamp"].(float64); ok {
		tx.Timestamp = int32(v)
	}
	if v, ok := view["senderPublicKey"].(string); ok && v != "" {
		b, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("senderPublicKey: %w", err)
		}
		tx.SenderPublicKey = b
	}
	if v, ok := view["requesterPublicKey"].(string); ok && v != "" {
		b, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("requesterPublicKey: %w", err)
		}
		tx.RequesterPublicKey = b
	}
	if v, ok := view["recipientId"].(string); ok {
		tx.RecipientID = v
	}
	if v, ok := view["amount"].(string); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("amount: %w", err)
		}
		tx.Amount = n
	}
	if v, ok := view["fee"].(string); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("fee: %w", err)
		}
		tx.Fee = n
	}
	if v, ok := view["signature"].(string); ok && v != "" {
		b, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("signature: %w", err)
		}
		tx.Signature = b
	}
	if v, ok := view["signSignature"].(string); ok && v != "" {
		b, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("signSignature: %w", err)
		}
		tx.SignSignature = b
	}
	tx.Asset = map[string]interface{}{}
	return tx, nil
}
