package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationCellNotValidated(t *testing.T) {
	cell := ValidationCell("http://x.test", "Acme", false)
	assert.False(t, cell.IsFormula())
	assert.Equal(t, "http://x.test", cell.Value)
}

func TestValidationCellEmptySource(t *testing.T) {
	cell := ValidationCell("", "Acme", true)
	assert.False(t, cell.IsFormula())
	assert.Equal(t, "", cell.Value)
}

func TestValidationCellFormula(t *testing.T) {
	cell := ValidationCell("http://x.test", "Acme", true)
	assert.True(t, cell.IsFormula())
	assert.Equal(t, `=HYPERLINK("http://x.test","Acme Link")`, cell.Formula)
}

func TestValidationCellEscapesQuotes(t *testing.T) {
	cell := ValidationCell("http://x.test", `Acme "A" Co`, true)
	assert.Equal(t, `=HYPERLINK("http://x.test","Acme ""A"" Co Link")`, cell.Formula)
}

func TestValidationCellEscapingIsIdempotent(t *testing.T) {
	// A label that already carries doubled quotes must not be escaped
	// again.
	once := ValidationCell(`http://x.test/"a"`, `Acme "A" Co`, true)
	twice := ValidationCell(`http://x.test/""a""`, `Acme ""A"" Co`, true)
	assert.Equal(t, once.Formula, twice.Formula)
}

func TestValidationCellDefaultLabel(t *testing.T) {
	cell := ValidationCell("http://x.test", "", true)
	assert.Equal(t, `=HYPERLINK("http://x.test","Source Link")`, cell.Formula)
}

func TestCellRaw(t *testing.T) {
	assert.Equal(t, "plain", Literal("plain").Raw())
	assert.Equal(t, true, Literal(true).Raw())
	assert.Equal(t, `=HYPERLINK("u","l")`, Formula(`=HYPERLINK("u","l")`).Raw())
}
