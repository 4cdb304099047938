package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	frameOut       outputFlags
	frameScale     float64
	frameNoLegends bool
)

var frameCmd = &cobra.Command{
	Use:   "frame [file]",
	Short: "Add a scaled print frame and legends",
	Long: `Draw a paper-sized frame around the drawing at the given scale, or at the
first configured scale that fits, and place the scale bar and color legend
below it.`,
	Args: cobra.ExactArgs(1),
	RunE: runFrame,
}

func init() {
	frameOut.register(frameCmd)
	frameCmd.Flags().Float64Var(&frameScale, "scale", 0, "scale denominator (0 picks the first that fits)")
	frameCmd.Flags().BoolVar(&frameNoLegends, "no-legends", false, "do not add the scale bar and color legend")
	rootCmd.AddCommand(frameCmd)
}

func runFrame(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, args[0])
	if err != nil {
		return err
	}

	frame, ok, err := s.PrintFrame(ctx, s.Doc.ObjectIDs(), frameScale)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no configured scale fits the drawing")
	}
	fmt.Printf("Scale: 1/%g\n", frame.Scale)
	fmt.Printf("Frame corner: (%.3f, %.3f)\n", frame.Corner.X, frame.Corner.Y)

	if !frameNoLegends {
		created, err := s.AddLegends(ctx, frame.Scale, frame.Corner)
		if err != nil {
			return err
		}
		fmt.Printf("Legend objects: %d\n", len(created))
	}

	report := s.NewReport("Print Frame", args[0])
	report.Notes = append(report.Notes, fmt.Sprintf("Print frame at 1/%g", frame.Scale))
	return finish(ctx, s, frameOut, report)
}
