package main

import (
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "config.yaml"

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := rootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gamegen",
		Short: "Round-robin game dataset generator",
		Long: heredoc.Doc(`
			gamegen builds a labeled dataset of round-robin games. Every pair of
			teams meets a fixed number of times, each game gets randomized WIP,
			RBI and WAR ratios, and a winner is picked by the selected bias.
		`),
		SilenceErrors: true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			} else if cmd.Flag("verbose").Changed {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "Show debug information")
	root.PersistentFlags().BoolP("trace", "t", false, "Log every generated game")

	root.AddCommand(initCmd(), generateCmd(), validateCmd())
	return root
}
