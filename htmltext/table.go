package htmltext

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hazyhaar/htmltext/extract"
	"github.com/hazyhaar/htmltext/layout"
)

// formatDataTable lays the table out as aligned columns.
func formatDataTable(n *html.Node, w Walker, b *layout.Builder, fo FormatOptions) error {
	render := layout.TablePrinter(intOr(fo.RowSpacing, 0), intOr(fo.ColSpacing, 3))
	return collectTable(n, w, b, fo, render)
}

// formatBorderedTable lays the table out inside box-drawing borders.
func formatBorderedTable(n *html.Node, w Walker, b *layout.Builder, fo FormatOptions) error {
	var renderErr error
	render := func(rows [][]*layout.TableCell) string {
		out, err := renderBordered(rows)
		renderErr = err
		return out
	}
	if err := collectTable(n, w, b, fo, render); err != nil {
		return err
	}
	return renderErr
}

// collectTable feeds the rows and cells of a <table> to the builder and
// renders them with render.
func collectTable(n *html.Node, w Walker, b *layout.Builder, fo FormatOptions, render layout.TableFunc) error {
	if err := b.OpenTable(); err != nil {
		return err
	}
	t := tableWalker{w: w, b: b, fo: fo}
	for _, c := range extract.Children(n) {
		if err := t.walk(c); err != nil {
			return err
		}
	}
	return b.CloseTable(render, intOr(fo.LeadingLineBreaks, 2), intOr(fo.TrailingLineBreaks, 2))
}

type tableWalker struct {
	w  Walker
	b  *layout.Builder
	fo FormatOptions
}

func (t tableWalker) walk(n *html.Node) error {
	if n.Type != html.ElementNode {
		return nil
	}
	switch n.DataAtom {
	case atom.Thead, atom.Tbody, atom.Tfoot, atom.Center:
		for _, c := range extract.Children(n) {
			if err := t.walk(c); err != nil {
				return err
			}
		}
	case atom.Tr:
		if err := t.b.OpenTableRow(); err != nil {
			return err
		}
		for _, c := range extract.ElementChildren(n) {
			var err error
			switch c.DataAtom {
			case atom.Th:
				err = t.headerCell(c)
			case atom.Td:
				err = t.cell(c)
			}
			if err != nil {
				return err
			}
		}
		return t.b.CloseTableRow()
	}
	return nil
}

func (t tableWalker) headerCell(n *html.Node) error {
	if t.fo.UppercaseHeaderCells != nil && !*t.fo.UppercaseHeaderCells {
		return t.cell(n)
	}
	t.b.PushWordTransform(upper())
	defer t.b.PopWordTransform()
	return t.cell(n)
}

func (t tableWalker) cell(n *html.Node) error {
	if err := t.b.OpenTableCell(t.fo.MaxColumnWidth); err != nil {
		return err
	}
	if err := t.w.Walk(extract.Children(n), t.b); err != nil {
		return err
	}
	return t.b.CloseTableCell(span(n, "colspan"), span(n, "rowspan"))
}

// span reads a colspan/rowspan attribute; missing or malformed values give 1.
func span(n *html.Node, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(extract.Attr(n, key)))
	if err != nil || v < 1 {
		return 1
	}
	return v
}

// renderBordered draws rows with tablewriter. A cell spanning several
// columns is followed by empty cells; rowspans are not merged.
func renderBordered(rows [][]*layout.TableCell) (string, error) {
	width := 0
	grid := make([][]string, 0, len(rows))
	for _, row := range rows {
		var cells []string
		for _, c := range row {
			cells = append(cells, c.Text)
			for i := 1; i < c.Colspan; i++ {
				cells = append(cells, "")
			}
		}
		width = max(width, len(cells))
		grid = append(grid, cells)
	}
	if width == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	table := tablewriter.NewTable(&buf)
	for _, cells := range grid {
		for len(cells) < width {
			cells = append(cells, "")
		}
		if err := table.Append(cells); err != nil {
			return "", err
		}
	}
	if err := table.Render(); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
