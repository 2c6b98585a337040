package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/synnergy-chain/txcore/core"
)

func idCmd() *cobra.Command {
	var txJSON string

	cmd := &cobra.Command{
		Use:   "id",
		Short: "Recompute the canonical id of a transaction JSON file",
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

			id, err := core.ComputeID(ctx, tx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&txJSON, "tx", "", "path to the transaction JSON")
	cmd.MarkFlagRequired("tx")
	return cmd
}
