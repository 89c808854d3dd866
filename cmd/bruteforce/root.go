package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ygrebnov/bruteforce"
	"github.com/ygrebnov/bruteforce/metrics"
)

const (
	flagThreads         = "threads"
	flagIters           = "iters"
	flagTimeout         = "timeout"
	flagConfig          = "config"
	flagMetricsTextfile = "metrics-textfile"
	flagLogLevel        = "log-level"
	flagLogFormat       = "log-format"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	settings   runSettings
	configPath string

	registry *prometheus.Registry
	opts     []bruteforce.Option
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "bruteforce",
		Short: "Run parallel brute-force searches",
		Long: `Runs one of the bundled search workloads across all CPU cores.

The thread count falls back on the BRUTE_FORCE_THREADS environment variable and
then on the number of logical CPUs when neither --threads nor the config file sets it.

Examples:
  bruteforce pow --difficulty 3
  bruteforce collide --timeout 1m --metrics-textfile run.prom`,
		SilenceUsage:      true,
		PersistentPreRunE: a.prepare,
	}

	f := root.PersistentFlags()
	f.UintVar(&a.settings.threads, flagThreads, 0, "number of workers (0: environment or CPU count)")
	f.UintVar(&a.settings.itersPerStopCheck, flagIters, bruteforce.DefaultItersPerStopCheck, "checks between stop signal reads")
	f.DurationVar(&a.settings.timeout, flagTimeout, 0, "give up after this long (0: run until found)")
	f.StringVar(&a.configPath, flagConfig, "", "YAML configuration file")
	f.StringVar(&a.settings.metricsTextfile, flagMetricsTextfile, "", "write Prometheus metrics to this file after the run")
	f.StringVar(&a.settings.logLevel, flagLogLevel, "info", "log level (debug, info, warn, error)")
	f.StringVar(&a.settings.logFormat, flagLogFormat, "text", "log format (text, json)")

	root.AddCommand(newPowCmd(a), newCollideCmd(a))
	return root
}

func (a *app) prepare(cmd *cobra.Command, _ []string) error {
	if a.configPath != "" {
		fs, err := loadFileSettings(a.configPath)
		if err != nil {
			return err
		}
		if err := fs.apply(&a.settings, cmd.Flags().Changed); err != nil {
			return err
		}
	}

	logger, err := a.settings.logger()
	if err != nil {
		return err
	}

	a.registry = prometheus.NewRegistry()
	a.opts = []bruteforce.Option{
		bruteforce.WithLogger(logger),
		bruteforce.WithMetrics(metrics.NewPrometheusProvider(a.registry, "bruteforce")),
	}
	if a.settings.threads > 0 {
		a.opts = append(a.opts, bruteforce.WithThreads(a.settings.threads))
	}
	// always set: the flag defaults to DefaultItersPerStopCheck and an explicit 0 must be rejected
	a.opts = append(a.opts, bruteforce.WithItersPerStopCheck(a.settings.itersPerStopCheck))
	return nil
}

// finish exports metrics when requested.
func (a *app) finish() error {
	if a.settings.metricsTextfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.settings.metricsTextfile, a.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

// search runs start/check with the configured timeout policy.
func search[S, R any](
	ctx context.Context, a *app, start bruteforce.Start[S], check bruteforce.Check[S, R],
) (r R, found bool, err error) {
	defer func() {
		if ferr := a.finish(); ferr != nil && err == nil {
			err = ferr
		}
	}()

	if a.settings.timeout > 0 {
		return bruteforce.RunWithTimeout(ctx, a.settings.timeout, start, check, a.opts...)
	}
	r, err = bruteforce.Run(ctx, start, check, a.opts...)
	return r, err == nil, err
}

func elapsedSince(t time.Time) string {
	return time.Since(t).Round(time.Millisecond).String()
}
