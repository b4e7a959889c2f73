package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/cadence/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] -- command [args...]",
	Short: "Repeat a command under a completion policy",
	Long: `Runs the given command repeatedly: a clean exit finishes the loop,
failing exits are absorbed up to the skip limit, and the loop gives up
after the attempt budget. The exit code is 0 only if the command
eventually succeeded.

A YAML config (--config) replaces the flag-built policy and handler.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		attempts, _ := cmd.Flags().GetInt("attempts")
		skipLimit, _ := cmd.Flags().GetInt("skip-limit")
		parallel, _ := cmd.Flags().GetInt("parallel")
		isolated, _ := cmd.Flags().GetBool("isolated")
		configPath, _ := cmd.Flags().GetString("config")
		metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
		debug, _ := cmd.Flags().GetBool("debug")

		err := cli.RunSession(cli.RunOptions{
			Command:     args,
			Attempts:    attempts,
			SkipLimit:   skipLimit,
			Parallel:    parallel,
			Isolated:    isolated,
			ConfigPath:  configPath,
			MetricsAddr: metricsAddr,
			Debug:       debug,
		})
		if err != nil {
			if !errors.Is(err, cli.ErrNeverSucceeded) {
				fmt.Printf("Error: %v\n", err)
			}
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntP("attempts", "n", 3, "Maximum number of attempts")
	runCmd.Flags().Int("skip-limit", 0, "Failures to absorb before aborting (default: all within the budget)")
	runCmd.Flags().IntP("parallel", "p", 1, "Run attempts concurrently on this many workers")
	runCmd.Flags().Bool("isolated", false, "Give each concurrent attempt its own child scope")
	runCmd.Flags().StringP("config", "c", "", "YAML run config replacing the flag-built policy/handler")
	runCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :2112)")
}
