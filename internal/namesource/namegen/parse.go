package namegen

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"genpi/internal/pi/models"
)

const tableClass = "gen-table-1"

// ParseNames extracts the name table from a generator page. The first row is
// the header. Every other row must yield exactly two kanji segments and two
// reading segments; one bad row fails the whole page.
func ParseNames(r io.Reader) ([]models.Name, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := findFirst(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Table && hasClass(n, tableClass)
	})
	if table == nil {
		return nil, fmt.Errorf("table.%s not found", tableClass)
	}

	rows := findAll(table, func(n *html.Node) bool { return n.DataAtom == atom.Tr })
	if len(rows) < 2 {
		return nil, errors.New("name table has no data rows")
	}

	names := make([]models.Name, 0, len(rows)-1)
	for i, row := range rows[1:] {
		name, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		names = append(names, name)
	}
	return names, nil
}

func parseRow(row *html.Node) (models.Name, error) {
	nameCell := findFirst(row, isCell("name"))
	if nameCell == nil {
		return models.Name{}, errors.New("td.name not found")
	}
	kanji := textSegments(nameCell)
	if len(kanji) != 2 {
		return models.Name{}, fmt.Errorf("td.name has %d segments, want 2", len(kanji))
	}

	pronCell := findFirst(row, isCell("pron"))
	if pronCell == nil {
		return models.Name{}, errors.New("td.pron not found")
	}
	readings := strings.FieldsFunc(innerText(pronCell), func(r rune) bool {
		return r == ' ' || r == '/' || r == '　' || r == '\n' || r == '\t'
	})
	if len(readings) != 2 {
		return models.Name{}, fmt.Errorf("td.pron has %d segments, want 2", len(readings))
	}

	return models.NewName(kanji[0], readings[0], kanji[1], readings[1])
}

func isCell(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.DataAtom == atom.Td && hasClass(n, class)
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

// findFirst returns the first element below n, in document order, matching fn.
func findFirst(n *html.Node, fn func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && fn(c) {
			return c
		}
		if found := findFirst(c, fn); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, fn func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && fn(c) {
			out = append(out, c)
		}
		out = append(out, findAll(c, fn)...)
	}
	return out
}

// textSegments splits the text below n on whitespace, treating separate text
// nodes as separate segments.
func textSegments(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				out = append(out, strings.Fields(c.Data)...)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func innerText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
