package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/phanxgames/gesture"
	"github.com/spf13/cobra"
)

var (
	frameMS  int
	settleMS int
)

var runCmd = &cobra.Command{
	Use:   "run <replay.json>",
	Short: "Run a replay file and print recognized gestures",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read replay: %w", err)
		}
		cfg := gesture.DefaultConfig()
		if configPath != "" {
			if cfg, err = gesture.LoadConfig(configPath); err != nil {
				return err
			}
		}
		cfg.Debug = cfg.Debug || verbose

		records, err := runReplay(data, cfg, logger, replayOptions{
			frame:  time.Duration(frameMS) * time.Millisecond,
			settle: time.Duration(settleMS) * time.Millisecond,
		})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		for _, rec := range records {
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective gesture config as TOML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := gesture.DefaultConfig()
		if configPath != "" {
			var err error
			if cfg, err = gesture.LoadConfig(configPath); err != nil {
				return err
			}
		}
		return gesture.WriteConfig(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	runCmd.Flags().IntVar(&frameMS, "frame-ms", 16, "simulated frame duration in milliseconds")
	runCmd.Flags().IntVar(&settleMS, "settle-ms", 1000, "time to keep running after the last step")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}
