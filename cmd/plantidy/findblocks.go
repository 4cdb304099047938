package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	findBlocksOut      outputFlags
	findBlocksToGroups bool
)

var findBlocksCmd = &cobra.Command{
	Use:   "find-blocks [file]",
	Short: "List block instances whose name matches a keyword",
	Long: `Select the editable instances of every block whose name contains one of the
configured block keywords and list the keywords each one matched. With
--to-groups the selected instances are exploded into groups.`,
	Args: cobra.ExactArgs(1),
	RunE: runFindBlocks,
}

func init() {
	findBlocksOut.register(findBlocksCmd)
	findBlocksCmd.Flags().BoolVar(&findBlocksToGroups, "to-groups", false, "convert the found instances to groups")
	rootCmd.AddCommand(findBlocksCmd)
}

func runFindBlocks(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, args[0])
	if err != nil {
		return err
	}

	found := s.FindBlocks(ctx)
	fmt.Printf("Instances: %d\n", len(found))
	var notes []string
	for _, id := range found {
		keywords, err := s.KeywordsInBlockName(id)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("%s: %s", id, strings.Join(keywords, ", "))
		fmt.Printf("  %s\n", line)
		notes = append(notes, line)
	}

	if findBlocksToGroups && len(found) > 0 {
		groups, err := s.BlocksToGroups(ctx, found)
		if err != nil {
			return err
		}
		fmt.Printf("Groups created: %d\n", len(groups))
	}

	report := s.NewReport("Keyword Blocks", args[0])
	report.Notes = notes
	return finish(ctx, s, findBlocksOut, report)
}
