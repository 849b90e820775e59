// Package main provides the CLI entry point for benchcmd, the launch
// command generator for the two-party secure aggregation benchmark.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ucbsky/elsa/config"
	"github.com/ucbsky/elsa/launch"
)

const defaultConfigPath = "benchmark_config.toml"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		logger.Error("benchcmd failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "benchcmd",
		Short: "Generate launch commands for the two-party benchmark",
		Long: `Benchcmd reads a benchmark configuration describing the meta client
and the Alice and Bob server roles and prints the shell commands that
launch each process, ready to paste on the respective machines.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRenderCmd(logger),
		newValidateCmd(logger),
		newInitCmd(logger),
	)

	return root
}

func newRenderCmd(logger *slog.Logger) *cobra.Command {
	var (
		configPath string
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the benchmark launch commands",
		Long: `Load the benchmark configuration and print the client, Alice, and Bob
launch commands. When Bob runs under the flamegraph profiler, a fourth
command fetches the profiling artifact after the run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logger.InfoContext(cmd.Context(), "configuration loaded",
				slog.String("path", configPath),
				slog.Int("gsize", cfg.Parameters.GSize),
				slog.Int("num_clients", cfg.Parameters.NumClients),
				slog.Int("input_size", cfg.Parameters.InputSize),
				slog.Bool("flamegraph_alice", cfg.Server.FlamegraphAlice),
				slog.Bool("flamegraph_bob", cfg.Server.FlamegraphBob),
			)

			plan := launch.Build(cfg)

			if outputJSON {
				return plan.WriteJSON(os.Stdout)
			}

			return plan.Write(os.Stdout)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", defaultConfigPath,
		"Path to the benchmark configuration file")
	flags.BoolVar(&outputJSON, "json", false,
		"Output commands as JSON instead of labeled text")

	return cmd
}

func newValidateCmd(logger *slog.Logger) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a benchmark configuration without rendering",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logger.InfoContext(cmd.Context(), "configuration valid",
				slog.String("path", configPath),
				slog.String("client_bin", cfg.Client.Bin),
				slog.String("server_bin", cfg.Server.Bin),
				slog.Int("num_mpc_sockets", cfg.Server.NumMPCSockets),
			)

			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath,
		"Path to the benchmark configuration file")

	return cmd
}

func newInitCmd(logger *slog.Logger) *cobra.Command {
	var (
		configPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample benchmark configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				if _, err := os.Stat(configPath); err == nil {
					return fmt.Errorf(
						"%s already exists (use --force to overwrite)",
						configPath,
					)
				}
			}

			f, err := os.Create(configPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", configPath, err)
			}

			if err := config.WriteSample(f); err != nil {
				f.Close()

				return fmt.Errorf("write sample: %w", err)
			}

			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", configPath, err)
			}

			logger.InfoContext(cmd.Context(), "sample configuration written",
				slog.String("path", configPath),
			)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", defaultConfigPath,
		"Path of the configuration file to create")
	flags.BoolVar(&force, "force", false,
		"Overwrite an existing configuration file")

	return cmd
}
