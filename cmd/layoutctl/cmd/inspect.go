package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vseledkin/paperlayout/internal/snapshot"
	"github.com/vseledkin/paperlayout/layout"
)

var inspectSnapshotPath string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print summary statistics for a paper snapshot's finest layout",
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectSnapshotPath, "snapshot", "s", "", "path to a JSON paper snapshot (required)")
	inspectCmd.MarkFlagRequired("snapshot")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	f, err := os.Open(inspectSnapshotPath)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	papers, err := snapshot.Load(f)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	finest, err := layout.BuildFromPapers(papers, layout.BuildParams{FactorRefLink: 1})
	if err != nil {
		return fmt.Errorf("build layout: %w", err)
	}
	layout.RecomputeMassRadius(finest)

	s := finest.Stats()
	fmt.Printf("nodes:        %d\n", s.NumNodes)
	fmt.Printf("links:        %d\n", s.NumLinks)
	fmt.Printf("total mass:   %.4f\n", s.TotalMass)
	fmt.Printf("total radius: %.4f\n", s.TotalRadius)
	fmt.Printf("finest ratio: %.4f\n", s.FinestFraction)
	return nil
}
