package main

import (
	"fmt"
	"strings"

	"github.com/piwi3910/PlanTidy/internal/importer"
	"github.com/piwi3910/PlanTidy/internal/project"
	"github.com/spf13/cobra"
)

var (
	organizeOut       outputFlags
	organizeRules     string
	organizeStandards string
	organizeKeep      bool
)

var organizeCmd = &cobra.Command{
	Use:   "organize [file]",
	Short: "Sort objects onto the standard layers",
	Long: `Create the standard linework and color layers, move labels, keyword-matched
layers, colored hatches and dashed curves onto them, then purge empty layers
and reapply the standard print settings.`,
	Args: cobra.ExactArgs(1),
	RunE: runOrganize,
}

func init() {
	organizeOut.register(organizeCmd)
	organizeCmd.Flags().StringVar(&organizeRules, "rules", "", "layer rule table (.csv or .xlsx) replacing the configured rules")
	organizeCmd.Flags().StringVar(&organizeStandards, "standards", "", "layer standards file replacing the configured standards")
	organizeCmd.Flags().BoolVar(&organizeKeep, "keep-empty", false, "keep empty layers")
	rootCmd.AddCommand(organizeCmd)
}

func runOrganize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, args[0])
	if err != nil {
		return err
	}

	if organizeStandards != "" {
		err := project.ApplyLayerStandards(organizeStandards, &s.Config)
		s.Logger.LogFile(ctx, "load standards", organizeStandards, err)
		if err != nil {
			return err
		}
	}
	if organizeRules != "" {
		rules := importer.ImportLayerRules(organizeRules)
		s.Logger.LogWarnings(ctx, organizeRules, rules.Warnings)
		if len(rules.Errors) > 0 {
			return fmt.Errorf("import rules %s: %s", organizeRules, strings.Join(rules.Errors, "; "))
		}
		s.Config.LayerRules = rules.Rules
		if len(rules.BlockKeywords) > 0 {
			s.Config.BlockKeywords = rules.BlockKeywords
		}
		if err := s.Config.Validate(); err != nil {
			return err
		}
		s.Logger.LogFile(ctx, "import rules", organizeRules, nil)
	}

	rep, err := s.OrganizeLayers(ctx)
	if err != nil {
		return err
	}
	var purged []string
	if !organizeKeep {
		if purged, err = s.PurgeEmptyLayers(ctx); err != nil {
			return err
		}
	}
	printed := s.AssignStandardPrint("")

	fmt.Printf("Labels moved: %d\n", rep.Labels)
	fmt.Printf("Layers moved by rule: %d\n", rep.ByRule)
	fmt.Printf("Hatches sorted: %d\n", rep.Hatches)
	fmt.Printf("Dashed curves: %d\n", rep.Dashed)
	fmt.Printf("Empty layers purged: %d\n", len(purged))
	fmt.Printf("Print settings applied: %d\n", printed)

	report := s.NewReport("Layer Organisation", args[0])
	report.Notes = append(report.Notes,
		fmt.Sprintf("%d labels moved to the legend layer", rep.Labels),
		fmt.Sprintf("%d layers moved by keyword rules", rep.ByRule),
	)
	for _, name := range purged {
		report.Notes = append(report.Notes, "Purged layer "+name)
	}
	return finish(ctx, s, organizeOut, report)
}
