package main

import (
	"fmt"

	"github.com/piwi3910/PlanTidy/internal/cleanup"
	"github.com/piwi3910/PlanTidy/internal/model"
	"github.com/spf13/cobra"
)

var (
	extendOut    outputFlags
	extendLayer  string
	extendGroups bool
)

var extendCmd = &cobra.Command{
	Use:   "extend [file]",
	Short: "Extend curve ends to the closest curve",
	Long: `Break curves into straight segments and extend every segment end onto the
closest line, intersection or collinear neighbour. The touched segments are
grouped together.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtend,
}

func init() {
	extendOut.register(extendCmd)
	extendCmd.Flags().StringVar(&extendLayer, "layer", "", "only process objects on this layer and its sublayers")
	extendCmd.Flags().BoolVar(&extendGroups, "groups", false, "extend each group of the chosen objects separately")
	rootCmd.AddCommand(extendCmd)
}

func runExtend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, args[0])
	if err != nil {
		return err
	}

	ids := objectsOnLayer(s, extendLayer)
	var results []cleanup.ExtendResult
	if extendGroups {
		if results, err = s.ExtendToClosestGroups(ctx, ids); err != nil {
			return err
		}
		fmt.Printf("Groups: %d\n", len(results))
	} else {
		res, err := s.ExtendToClosest(ctx, ids)
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	var segments int
	var moves []model.Extension
	for _, res := range results {
		segments += len(res.Segments)
		moves = append(moves, res.Moves...)
	}
	fmt.Printf("Segments: %d\n", segments)
	fmt.Printf("Extended ends: %d\n", len(moves))
	for _, m := range moves {
		fmt.Printf("  %s %s: (%.3f, %.3f) -> (%.3f, %.3f)\n", m.CurveID, m.End, m.From.X, m.From.Y, m.To.X, m.To.Y)
	}

	report := s.NewReport("Curve Extension", args[0])
	report.Extensions = moves
	return finish(ctx, s, extendOut, report)
}
