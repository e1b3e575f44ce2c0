package sheet

import (
	"fmt"
	"strings"
)

// Cell is a single spreadsheet cell: either a literal value or a stored
// formula. Formula text always carries the leading "=".
type Cell struct {
	Formula string
	Value   any
}

// Literal wraps a plain cell value.
func Literal(v any) Cell { return Cell{Value: v} }

// Formula wraps stored formula text.
func Formula(text string) Cell { return Cell{Formula: text} }

// IsFormula reports whether the cell carries a formula.
func (c Cell) IsFormula() bool { return c.Formula != "" }

// Raw returns the value a store should write: the formula text when one
// is present, else the literal value.
func (c Cell) Raw() any {
	if c.IsFormula() {
		return c.Formula
	}
	return c.Value
}

// Row is an ordered sequence of cells matching one schema version's
// column order.
type Row []Cell

// DefaultLinkLabel is used for the validation link when the record has
// no company name.
const DefaultLinkLabel = "Source"

// ValidationCell derives the validation-link cell from a source URL and
// a label. When the record is not validated, or there is no source URL,
// the cell is the plain URL text (possibly empty). Otherwise it becomes
// a HYPERLINK formula pointing at the source.
func ValidationCell(sourceURL, label string, isValidated bool) Cell {
	if !isValidated || sourceURL == "" {
		return Literal(sourceURL)
	}
	if label == "" {
		label = DefaultLinkLabel
	}
	return Formula(fmt.Sprintf(`=HYPERLINK("%s","%s Link")`,
		escapeQuotes(sourceURL), escapeQuotes(label)))
}

// escapeQuotes doubles embedded double quotes so user-controlled text
// cannot break out of the formula string. Already-doubled quotes are
// collapsed first, which makes re-escaping idempotent.
func escapeQuotes(s string) string {
	s = strings.ReplaceAll(s, `""`, `"`)
	return strings.ReplaceAll(s, `"`, `""`)
}
