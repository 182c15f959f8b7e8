package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgnsrekt/gexray/internal/chain"
	"github.com/dgnsrekt/gexray/internal/exposure"
	"github.com/dgnsrekt/gexray/internal/marketclock"
)

func calcCmd() *cobra.Command {
	var (
		chainPath string
		levels    bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run one exposure calculation from a chain snapshot file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if chainPath == "" {
				return fmt.Errorf("--chain is required")
			}
			return runCalc(chainPath, levels)
		},
	}

	cmd.Flags().StringVar(&chainPath, "chain", "", "path to a chain snapshot JSON file")
	cmd.Flags().BoolVar(&levels, "levels", false, "print the compact levels payload instead of the full snapshot")
	return cmd
}

func runCalc(chainPath string, levels bool) error {
	snap, err := chain.LoadSnapshot(chainPath)
	if err != nil {
		return err
	}

	clock := marketclock.New()
	engine := exposure.NewEngine(cfg.Engine, clock, logger)

	result, err := engine.Calculate(snap.Symbol, snap.Spot, snap.Contracts)
	if err != nil {
		return err
	}

	logger.Info("calculation complete",
		zap.String("symbol", result.Symbol),
		zap.Int("zones", len(result.Zones)),
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if levels {
		return enc.Encode(result.Levels())
	}
	return enc.Encode(result)
}
