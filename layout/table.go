package layout

import "strings"

// TableCell is one finished cell handed to a table printer.
type TableCell struct {
	Rowspan int
	Colspan int
	Text    string

	lines    []string
	rendered bool
}

func (c *TableCell) rowspan() int { return max(1, c.Rowspan) }
func (c *TableCell) colspan() int { return max(1, c.Colspan) }

// TableFunc renders collected rows into text. CloseTable calls it once.
type TableFunc func(rows [][]*TableCell) string

// TablePrinter returns a TableFunc aligning cells in a monospace grid with
// rowSpacing blank lines between rows and colSpacing spaces between columns.
func TablePrinter(rowSpacing, colSpacing int) TableFunc {
	return func(rows [][]*TableCell) string {
		return TableToString(rows, rowSpacing, colSpacing)
	}
}

// grid is a sparse row-major matrix of cell slots; a spanning cell fills
// every slot it covers.
type grid [][]*TableCell

func (g *grid) row(j int) []*TableCell {
	for len(*g) <= j {
		*g = append(*g, nil)
	}
	return (*g)[j]
}

func firstVacant(row []*TableCell, x int) int {
	for x < len(row) && row[x] != nil {
		x++
	}
	return x
}

// put places cell at (baseRow, baseCol). Slots already taken by an earlier
// spanning cell keep their owner.
func (g *grid) put(cell *TableCell, baseRow, baseCol int) {
	for r := 0; r < cell.rowspan(); r++ {
		row := g.row(baseRow + r)
		for c := 0; c < cell.colspan(); c++ {
			x := baseCol + c
			for len(row) <= x {
				row = append(row, nil)
			}
			if row[x] == nil {
				row[x] = cell
			}
		}
		(*g)[baseRow+r] = row
	}
}

// transpose returns the n×n column-major copy of g.
func (g grid) transpose(n int) grid {
	t := make(grid, n)
	for x := range t {
		t[x] = make([]*TableCell, n)
		for y := 0; y < n && y < len(g); y++ {
			if x < len(g[y]) {
				t[x][y] = g[y][x]
			}
		}
	}
	return t
}

// offset returns offsets[i], extending the slice one unit per missing index.
func offset(offsets *[]int, i int) int {
	for len(*offsets) <= i {
		n := len(*offsets)
		if n == 0 {
			*offsets = append(*offsets, 0)
		} else {
			*offsets = append(*offsets, 1+(*offsets)[n-1])
		}
	}
	return (*offsets)[i]
}

func updateOffset(offsets *[]int, base, span, value int) {
	end := offset(offsets, base+span)
	(*offsets)[base+span] = max(end, offset(offsets, base)+value)
}

// TableToString lays rows out on a grid honouring row and column spans and
// renders them column by column. Rows without cells still produce a blank line.
func TableToString(rows [][]*TableCell, rowSpacing, colSpacing int) string {
	var (
		layout     grid
		rowOffsets = []int{0}
		colNumber  = 0
		rowNumber  = len(rows)
	)
	for j, cells := range rows {
		layout.row(j)
		x := 0
		for _, cell := range cells {
			cell.rendered = false
			x = firstVacant(layout[j], x)
			layout.put(cell, j, x)
			x += cell.colspan()
			cell.lines = strings.Split(cell.Text, "\n")
			updateOffset(&rowOffsets, j, cell.rowspan(), len(cell.lines)+rowSpacing)
		}
		colNumber = max(colNumber, len(layout[j]))
	}

	cols := layout.transpose(max(rowNumber, colNumber))
	var out []string
	line := func(i int) {
		for len(out) <= i {
			out = append(out, "")
		}
	}
	colOffsets := []int{0}

	for x := 0; x < colNumber; x++ {
		for y := 0; y < rowNumber; {
			cell := cols[x][y]
			if cell == nil {
				line(offset(&rowOffsets, y))
				y++
				continue
			}
			if !cell.rendered {
				colOffset := 0
				if len(colOffsets) > x {
					colOffset = offset(&colOffsets, x)
				}
				width := 0
				for j, text := range cell.lines {
					i := offset(&rowOffsets, y) + j
					line(i)
					out[i] = padRight(out[i], colOffset) + text
					width = max(width, runeLen(text))
				}
				updateOffset(&colOffsets, x, cell.colspan(), width+colSpacing)
				cell.rendered = true
			}
			y += cell.rowspan()
		}
	}
	return strings.Join(out, "\n")
}

func padRight(s string, n int) string {
	if pad := n - runeLen(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func padLeft(s string, n int) string {
	if pad := n - runeLen(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}
