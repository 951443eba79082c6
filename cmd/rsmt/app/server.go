/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package app implements a Server object for running the rsmt solver.
package app

import (
	"bytes"
	goflag "flag"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"k8s.io/component-base/version"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/rsmt/cmd/rsmt/app/options"
	"github.com/mihai-snyk/rsmt/pkg/steiner"
	"github.com/mihai-snyk/rsmt/pkg/steiner/board"
	"github.com/mihai-snyk/rsmt/pkg/steiner/framework"
	"github.com/mihai-snyk/rsmt/pkg/steiner/metrics"
	"github.com/mihai-snyk/rsmt/pkg/tracing"
)

// NewRSMTCommand creates a *cobra.Command object with default parameters
func NewRSMTCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rsmt",
		Short: "rsmt approximates rectilinear Steiner minimal trees",
		Long: `rsmt searches for short rectilinear Steiner trees on a grid board with a
genetic algorithm. Each chromosome selects a set of Steiner points and is
scored by the Manhattan minimum spanning tree over the pins plus those points.`,
		SilenceUsage: true,
	}

	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.AddCommand(NewRunCommand(out), NewVersionCommand(out))
	return cmd
}

// NewRunCommand builds the run subcommand.
func NewRunCommand(out io.Writer) *cobra.Command {
	o := options.NewRunOptions()
	cmd := &cobra.Command{
		Use:   "run BOARD_FILE",
		Short: "Search for a Steiner tree on the board described in BOARD_FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd, o, args[0], out)
		},
	}
	o.AddFlags(cmd.Flags())
	return cmd
}

// NewVersionCommand builds the version subcommand.
func NewVersionCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(out, "rsmt version %+v\n", version.Get())
		},
	}
}

// Run solves one board and prints the resulting layout to out.
func Run(cmd *cobra.Command, o *options.RunOptions, boardFile string, out io.Writer) error {
	ctx := cmd.Context()
	logger := klog.FromContext(ctx)

	cfg, err := o.Config(cmd.Flags())
	if err != nil {
		return err
	}
	b, pins, err := board.LoadFile(boardFile)
	if err != nil {
		return err
	}
	logger.V(1).Info("Loaded board", "file", boardFile, "height", b.Height, "width", b.Width, "pins", pins.Count())

	shutdown, err := tracing.NewTracerProvider(ctx, o.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			logger.Error(err, "Failed to shut down tracer provider")
		}
	}()

	registry := prometheus.NewRegistry()
	m, err := metrics.New(registry)
	if err != nil {
		return err
	}

	solver, err := steiner.New(ctx, cfg, steiner.WithRecorder(m))
	if err != nil {
		return err
	}
	solution, err := solver.Solve(ctx, b, pins)
	if err != nil {
		return err
	}

	fmt.Fprint(out, framework.Render(b, pins, solution.Pruned))
	fmt.Fprintf(out, "cost: %d\n", solution.PrunedCost)
	fmt.Fprintf(out, "pin-only cost: %d\n", solution.Report.PinOnlyCost)
	fmt.Fprintf(out, "steiner points: %d\n", solution.Report.SteinerPoints)
	if solution.Greedy != nil {
		fmt.Fprintf(out, "greedy cost: %d\n", solution.Greedy.Cost)
	}

	if cfg.Output.MetricsFile != "" {
		var buf bytes.Buffer
		if err := metrics.WriteText(registry, &buf); err != nil {
			return err
		}
		if err := os.WriteFile(cfg.Output.MetricsFile, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write metrics file: %w", err)
		}
		logger.V(2).Info("Wrote metrics", "file", cfg.Output.MetricsFile)
	}
	return nil
}
