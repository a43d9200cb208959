package domain

import "fmt"

// MergeSeparator joins the sources of two merged cells.
const MergeSeparator = "\n"

// NewCell builds an empty-output cell of a creatable type.
func NewCell(cellType CellType, source string) (Cell, error) {
	if !cellType.IsCreatable() {
		return Cell{}, fmt.Errorf("%w: %q, must be %q or %q",
			ErrInvalidCellType, cellType, CellTypeCode, CellTypeMarkdown)
	}
	return Cell{
		Type:     cellType,
		Source:   source,
		Metadata: Fields{},
	}, nil
}

// EditCell replaces the source of the cell at a 1-based index.
// Code cells lose their outputs and execution count.
func (n *Notebook) EditCell(index int, source string) error {
	cell, err := n.Cell(index)
	if err != nil {
		return err
	}

	cell.Source = source
	if cell.IsCode() {
		cell.ClearOutputs()
	}
	return nil
}

// InsertCell inserts a cell so that it ends up at the given 1-based index.
// Cells at or after that index shift one place later.
// It returns the index the cell now occupies.
func (n *Notebook) InsertCell(index int, cell Cell) (int, error) {
	pos, err := n.insertionPosition(index)
	if err != nil {
		return 0, err
	}
	if !cell.Type.IsCreatable() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCellType, cell.Type)
	}

	n.Cells = append(n.Cells, Cell{})
	copy(n.Cells[pos+1:], n.Cells[pos:])
	n.Cells[pos] = cell
	return pos + 1, nil
}

// DeleteCell removes the cell at a 1-based index.
func (n *Notebook) DeleteCell(index int) error {
	pos, err := n.position(index)
	if err != nil {
		return err
	}

	n.Cells = append(n.Cells[:pos], n.Cells[pos+1:]...)
	return nil
}

// MergeCells joins the cell at index2 onto the cell at index1.
// index2 must equal index1+1. The result is code only if both cells were
// code; it never carries outputs because it has not been run.
func (n *Notebook) MergeCells(index1, index2 int) error {
	pos1, err := n.position(index1)
	if err != nil {
		return err
	}
	pos2, err := n.position(index2)
	if err != nil {
		return err
	}
	if pos2 != pos1+1 {
		return fmt.Errorf("%w: cell %d is not immediately after cell %d",
			ErrNonConsecutiveIndices, index2, index1)
	}

	first, second := n.Cells[pos1], n.Cells[pos2]

	mergedType := CellTypeMarkdown
	if first.IsCode() && second.IsCode() {
		mergedType = CellTypeCode
	}

	n.Cells[pos1] = Cell{
		Type:     mergedType,
		ID:       first.ID,
		Source:   first.Source + MergeSeparator + second.Source,
		Metadata: first.Metadata,
	}
	n.Cells = append(n.Cells[:pos2], n.Cells[pos2+1:]...)
	return nil
}

// OutputAt returns the output at 1-based cell and output indices.
func (n *Notebook) OutputAt(cellIndex, outputIndex int) (Output, error) {
	cell, err := n.Cell(cellIndex)
	if err != nil {
		return nil, err
	}
	if !cell.IsCode() {
		return nil, fmt.Errorf("%w: cell %d is a %s cell", ErrOutputTypeUnsupported, cellIndex, cell.Type)
	}
	if outputIndex < 1 || outputIndex > len(cell.Outputs) {
		return nil, fmt.Errorf("%w: output index %d not in [1, %d] for cell %d",
			ErrIndexOutOfRange, outputIndex, len(cell.Outputs), cellIndex)
	}
	return cell.Outputs[outputIndex-1], nil
}
