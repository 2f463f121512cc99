package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/vseledkin/paperlayout/analysis"
	"github.com/vseledkin/paperlayout/config"
	"github.com/vseledkin/paperlayout/driver"
	"github.com/vseledkin/paperlayout/force"
	"github.com/vseledkin/paperlayout/internal/snapshot"
	"github.com/vseledkin/paperlayout/layout"
)

var (
	runSnapshotPath    string
	runMaxIterPerLevel int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load a snapshot, build the layout hierarchy, and run the force iteration",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runSnapshotPath, "snapshot", "s", "", "path to a JSON paper snapshot (required)")
	runCmd.Flags().IntVar(&runMaxIterPerLevel, "max-iter-per-level", 0, "override driver.max_iterations per level (0 = use config)")
	runCmd.MarkFlagRequired("snapshot")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	f, err := os.Open(runSnapshotPath)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	papers, err := snapshot.Load(f)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	logger.Info("loaded %d papers from %s", len(papers), runSnapshotPath)

	analysis.RecomputeColours(papers, analysis.ColourOptions{Verbose: verbose, Logger: logger})

	finest, err := layout.BuildFromPapers(papers, layout.BuildParams{
		FactorRefLink:   cfg.Coarsening.FactorRefLink,
		FactorOtherLink: cfg.Coarsening.FactorOtherLink,
		AgeWeaken:       cfg.Coarsening.AgeWeaken,
	})
	if err != nil {
		return fmt.Errorf("build finest layout: %w", err)
	}

	top := finest
	for len(top.Nodes) > cfg.Coarsening.MinLevelNodes {
		coarser := layout.BuildReducedFromLayout(top)
		if len(coarser.Nodes) >= len(top.Nodes) {
			break
		}
		top = coarser
	}
	layout.RecomputeMassRadius(finest)

	rng := rand.New(rand.NewSource(1))
	jitter := func() float64 { return rng.Float64() - 0.5 }
	uniform := func() float64 { return rng.Float64() - 0.5 }
	for _, n := range top.Nodes {
		layout.ComputeBestStartPosition(n, jitter, uniform)
	}

	opts := driver.Options{
		Force: force.Params{
			LinkStrength:             cfg.Force.LinkStrength,
			UseRefFreq:               cfg.Force.UseRefFreq,
			AntiGravityFalloffRsq:    cfg.Force.AntiGravityFalloffRsq,
			AntiGravityFalloffRsqInv: cfg.Force.AntiGravityFalloffRsqInv,
			DoCloseRepulsion:         cfg.Force.DoCloseRepulsion,
			CloseRepulsionA:          cfg.Force.CloseRepulsionA,
			CloseRepulsionB:          cfg.Force.CloseRepulsionB,
			CloseRepulsionC:          cfg.Force.CloseRepulsionC,
			CloseRepulsionD:          cfg.Force.CloseRepulsionD,
		},
		InitialStepSize:     cfg.Driver.InitialStepSize,
		StepGrowth:          cfg.Driver.StepGrowth,
		StepShrink:          cfg.Driver.StepShrink,
		MinStepSize:         cfg.Driver.MinStepSize,
		MaxStepSize:         cfg.Driver.MaxStepSize,
		ConvergenceMaxForce: cfg.Driver.ConvergenceMaxForce,
		Logger:              logger,
	}

	maxIter := cfg.Driver.MaxIterations
	if runMaxIterPerLevel > 0 {
		maxIter = runMaxIterPerLevel
	}

	ctx := context.Background()
	for level := top; level != nil; level = driver.PromoteToFiner(level) {
		d := driver.New(opts)
		result, err := d.Run(ctx, level, maxIter)
		if err != nil {
			return fmt.Errorf("run iteration: %w", err)
		}
		logger.Info("level with %d nodes converged=%v maxForce=%.6f", len(level.Nodes), result.Converged, result.MaxForce)
	}

	for _, n := range finest.Nodes {
		fmt.Printf("%d\t%d\t%d\t%d\n", n.Paper.ID, layout.ExportPosition(n.X), layout.ExportPosition(n.Y), layout.ExportPosition(n.Radius))
	}
	return nil
}
