package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "dev"

var (
	verbose    bool
	configPath string
	logger     = logrus.New()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gesturereplay",
	Short: "Replay scripted pointer input through the gesture recognizers",
	Long: `gesturereplay builds a node layout from a replay file, attaches the
long-press and double-tap recognizers it lists, feeds the scripted pointer
steps through a deterministic clock and prints each recognized gesture.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func initConfig() {
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "gesture config file (TOML)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
