package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
)

var (
	cellSource string
	cellType   string
)

var cellCmd = &cobra.Command{
	Use:   "cell",
	Short: "Edit notebook cells",
	Long: `Commands that change a notebook on disk. Each command loads the notebook,
applies one change and saves it atomically. Indices are 1-based.

Cell source comes from --source, or from stdin when --source is not given.`,
}

var cellEditCmd = &cobra.Command{
	Use:   "edit [notebook] [index]",
	Short: "Replace the source of a cell",
	Long: `Replaces the source of a cell. Code cells lose their outputs and execution
count, since they no longer match the new source.`,
	Args: cobra.ExactArgs(2),
	RunE: runCellEdit,
}

var cellAddCmd = &cobra.Command{
	Use:   "add [notebook] [index]",
	Short: "Insert a new cell",
	Long: `Inserts a new cell so that it ends up at the given index. Index N+1 appends
to a notebook with N cells.`,
	Args: cobra.ExactArgs(2),
	RunE: runCellAdd,
}

var cellDeleteCmd = &cobra.Command{
	Use:   "delete [notebook] [index]",
	Short: "Delete a cell",
	Args:  cobra.ExactArgs(2),
	RunE:  runCellDelete,
}

var cellMergeCmd = &cobra.Command{
	Use:   "merge [notebook] [index1] [index2]",
	Short: "Merge a cell into the one before it",
	Long: `Appends the source of cell index2 to cell index1, separated by a newline,
and removes cell index2. index2 must be index1+1. The merged cell is code only
if both cells were code, and carries no outputs.`,
	Args: cobra.ExactArgs(3),
	RunE: runCellMerge,
}

func init() {
	cellEditCmd.Flags().StringVarP(&cellSource, "source", "s", "", "new cell source (default: read stdin)")
	cellAddCmd.Flags().StringVarP(&cellSource, "source", "s", "", "cell source (default: read stdin)")
	cellAddCmd.Flags().StringVarP(&cellType, "type", "t", string(domain.CellTypeCode), "cell type: code or markdown")

	cellCmd.AddCommand(cellEditCmd)
	cellCmd.AddCommand(cellAddCmd)
	cellCmd.AddCommand(cellDeleteCmd)
	cellCmd.AddCommand(cellMergeCmd)
	rootCmd.AddCommand(cellCmd)
}

func runCellEdit(cmd *cobra.Command, args []string) error {
	if cellService == nil {
		return errors.New("cell service not configured")
	}

	index, err := parseIndex(args[1], "cell")
	if err != nil {
		return err
	}
	source, err := readSource(cmd)
	if err != nil {
		return err
	}

	if err := cellService.EditCell(cmd.Context(), args[0], index, source); err != nil {
		return fmt.Errorf("editing cell: %w", err)
	}

	cmd.Printf("Edited cell %d in %s\n", index, args[0])
	return nil
}

func runCellAdd(cmd *cobra.Command, args []string) error {
	if cellService == nil {
		return errors.New("cell service not configured")
	}

	index, err := parseIndex(args[1], "cell")
	if err != nil {
		return err
	}
	source, err := readSource(cmd)
	if err != nil {
		return err
	}

	added, err := cellService.AddCell(cmd.Context(), args[0], index, domain.CellType(cellType), source)
	if err != nil {
		return fmt.Errorf("adding cell: %w", err)
	}

	cmd.Printf("Added %s cell %d to %s\n", cellType, added, args[0])
	return nil
}

func runCellDelete(cmd *cobra.Command, args []string) error {
	if cellService == nil {
		return errors.New("cell service not configured")
	}

	index, err := parseIndex(args[1], "cell")
	if err != nil {
		return err
	}

	if err := cellService.DeleteCell(cmd.Context(), args[0], index); err != nil {
		return fmt.Errorf("deleting cell: %w", err)
	}

	cmd.Printf("Deleted cell %d from %s\n", index, args[0])
	return nil
}

func runCellMerge(cmd *cobra.Command, args []string) error {
	if cellService == nil {
		return errors.New("cell service not configured")
	}

	index1, err := parseIndex(args[1], "cell")
	if err != nil {
		return err
	}
	index2, err := parseIndex(args[2], "cell")
	if err != nil {
		return err
	}

	if err := cellService.MergeCells(cmd.Context(), args[0], index1, index2); err != nil {
		return fmt.Errorf("merging cells: %w", err)
	}

	cmd.Printf("Merged cell %d into cell %d in %s\n", index2, index1, args[0])
	return nil
}

// readSource returns --source if it was given, otherwise all of stdin.
func readSource(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("source") {
		return cellSource, nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading source from stdin: %w", err)
	}
	return string(data), nil
}

// parseIndex parses a 1-based index argument. Range checks are left to the services.
func parseIndex(arg, name string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %s index %q is not an integer", domain.ErrInvalidInput, name, arg)
	}
	return n, nil
}
