package main

import (
	"fmt"
	"strings"

	"github.com/piwi3910/PlanTidy/internal/cleanup"
	"github.com/piwi3910/PlanTidy/internal/drawing"
	"github.com/piwi3910/PlanTidy/internal/importer"
	"github.com/piwi3910/PlanTidy/internal/logging"
	"github.com/piwi3910/PlanTidy/internal/project"
	"github.com/spf13/cobra"
)

var (
	blocksReport string
	blocksJobs   int
)

var blocksCmd = &cobra.Command{
	Use:   "blocks [library-dir]",
	Short: "Group similar blocks of a block library",
	Long: `Load every DXF file of a directory as one block definition and group the
definitions whose outlines match within the configured tolerances.`,
	Args: cobra.ExactArgs(1),
	RunE: runBlocks,
}

func init() {
	blocksCmd.Flags().StringVar(&blocksReport, "report", "", "write a similarity report (.pdf or .xlsx)")
	blocksCmd.Flags().IntVarP(&blocksJobs, "jobs", "j", importer.DefaultLibraryWorkers, "number of files read in parallel")
	rootCmd.AddCommand(blocksCmd)
}

func runBlocks(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dir := args[0]

	logger, err := logging.New(logLevel, logFormat)
	if err != nil {
		return err
	}
	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		logger.LogFile(ctx, "load config", configPath, err)
		return err
	}

	doc := drawing.New()
	lib, err := importer.LoadBlockLibraryN(ctx, doc, dir, blocksJobs)
	if err != nil {
		logger.LogFile(ctx, "load block library", dir, err)
		return err
	}
	logger.LogWarnings(ctx, dir, lib.Warnings)
	if len(lib.Blocks) == 0 {
		return fmt.Errorf("no blocks found in %s", dir)
	}

	s, err := cleanup.NewSession(doc, cfg, logger)
	if err != nil {
		return err
	}
	partition, err := s.ClusterBlocks(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Blocks: %d\n", len(lib.Blocks))
	fmt.Printf("Groups: %d\n", len(partition))
	for _, g := range partition {
		if len(g.Members) == 0 {
			fmt.Printf("  %s\n", g.Representative)
			continue
		}
		fmt.Printf("  %s: %s\n", g.Representative, strings.Join(g.Members, ", "))
	}

	if blocksReport == "" {
		return nil
	}
	report := s.NewReport("Block Similarity", dir)
	report.Similarity = partition
	err = writeReport(blocksReport, report)
	logger.LogFile(ctx, "export report", blocksReport, err)
	return err
}
