package ingest

import (
	"bytes"
	"fmt"
	"io"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownReader parses test-case definitions written as a GFM pipe table.
// The first table found in the document is used; anything around it
// (headings, prose) is ignored. A <br> inside a cell is treated as a line
// break, which is how multi-line Detail Steps survive the table format.
type MarkdownReader struct {
	markdown goldmark.Markdown
}

var brTagPattern = regexp.MustCompile(`(?i)<br\s*/?>`)

// NewMarkdownReader creates a new MarkdownReader with GFM table support.
func NewMarkdownReader() *MarkdownReader {
	return &MarkdownReader{
		markdown: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Parse reads markdown content and returns the raw table.
func (p *MarkdownReader) Parse(r io.Reader) (*Table, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	doc := p.markdown.Parser().Parse(text.NewReader(content))

	tableNode := findFirstTable(doc)
	if tableNode == nil {
		return nil, fmt.Errorf("no table found in markdown document")
	}

	table := &Table{}
	for row := tableNode.FirstChild(); row != nil; row = row.NextSibling() {
		cells := extractRowCells(row, content)
		switch row.(type) {
		case *extast.TableHeader:
			table.Header = cells
		case *extast.TableRow:
			table.Rows = append(table.Rows, cells)
		}
	}

	if len(table.Header) == 0 {
		return nil, fmt.Errorf("markdown table has no header row")
	}
	return table, nil
}

// findFirstTable walks the document and returns the first table node.
func findFirstTable(doc ast.Node) ast.Node {
	var found ast.Node
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := n.(*extast.Table); ok {
			found = n
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}

// extractRowCells returns the text of every cell in a header or data row.
func extractRowCells(row ast.Node, source []byte) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if _, ok := cell.(*extast.TableCell); ok {
			cells = append(cells, extractCellText(cell, source))
		}
	}
	return cells
}

// extractCellText extracts plain text from a table cell, converting <br>
// tags to line breaks.
func extractCellText(cell ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(cell, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.RawHTML:
			if brTagPattern.Match(t.Segments.Value(source)) {
				buf.WriteString("\n")
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
