package main

import (
	"time"

	"github.com/synnergy-chain/txcore/core"
	"github.com/synnergy-chain/txcore/handlers"
	"github.com/synnergy-chain/txcore/pkg/config"
)

// buildContext loads the chain configuration and assembles the immutable
// core.Context every subcommand operates against, wiring the reference
// handler set from the handlers package.
func buildContext() (*core.Context, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}

	registry, err := handlers.NewDefaultRegistry()
	if err != nil {
		return nil, err
	}

	epoch := time.Unix(cfg.Chain.EpochUnixSeconds, 0).UTC()
	interval := time.Duration(cfg.Chain.SlotIntervalSeconds) * time.Second
	slots := core.NewSlotCalendar(epoch, interval)

	return core.NewContext(
		registry,
		slots,
		cfg.Chain.TotalSupply,
		cfg.Chain.DelegatesPerRound,
		cfg.Chain.GenesisBlockID,
		cfg.Chain.SenderPublicKeyExceptions,
	), nil
}
