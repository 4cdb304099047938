package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	overlapsOut    outputFlags
	overlapsLayer  string
	overlapsDelete bool
)

var overlapsCmd = &cobra.Command{
	Use:   "overlaps [file]",
	Short: "Find lines hidden under heavier overlapping lines",
	Args:  cobra.ExactArgs(1),
	RunE:  runOverlaps,
}

func init() {
	overlapsOut.register(overlapsCmd)
	overlapsCmd.Flags().StringVar(&overlapsLayer, "layer", "", "only process objects on this layer and its sublayers")
	overlapsCmd.Flags().BoolVar(&overlapsDelete, "delete", false, "delete the redundant lines")
	rootCmd.AddCommand(overlapsCmd)
}

func runOverlaps(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, args[0])
	if err != nil {
		return err
	}

	flagged, err := s.SelectOverlappingLines(ctx, objectsOnLayer(s, overlapsLayer))
	if err != nil {
		return err
	}

	fmt.Printf("Redundant lines: %d\n", len(flagged))
	for _, id := range flagged {
		fmt.Printf("  %s\n", id)
	}
	if overlapsDelete && len(flagged) > 0 {
		s.Doc.Delete(flagged...)
		fmt.Println("Redundant lines deleted")
	}

	report := s.NewReport("Overlapping Lines", args[0])
	report.Overlaps = flagged
	return finish(ctx, s, overlapsOut, report)
}
