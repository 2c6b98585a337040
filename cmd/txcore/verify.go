package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/synnergy-chain/txcore/core"
)

func verifyCmd() *cobra.Command {
	var txJSON string
	var senderAddress string
	var senderBalance uint64

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signed transaction JSON file against a synthetic sender account",
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
			tx.SenderID = senderAddress

			id, err := core.ComputeID(ctx, tx)
			if err != nil {
				return err
			}
			tx.ID = id

			sender := &core.Account{
				Address:   senderAddress,
				PublicKey: tx.SenderPublicKey,
				Balance:   senderBalance,
			}

			if err := core.Verify(ctx, tx, sender, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "transaction %s OK\n", hex.EncodeToString(tx.Signature)[:16])
			return nil
		},
	}

	cmd.Flags().StringVar(&txJSON, "tx", "", "path to the transaction JSON")
	cmd.Flags().StringVar(&senderAddress, "sender-address", "", "sender account address")
	cmd.Flags().Uint64Var(&senderBalance, "sender-balance", 0, "sender account balance in base units")
	cmd.MarkFlagRequired("tx")
	cmd.MarkFlagRequired("sender-address")
	return cmd
}
