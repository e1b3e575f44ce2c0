// Package schema maps loosely-shaped extracted card records onto the
// fixed column layouts of the spreadsheet. Two layouts coexist: the
// legacy 12-column sheet and the extended 22-column sheet produced
// after web enrichment was added.
package schema

import (
	"fmt"
	"strings"
	"time"

	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/models"
	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/sheet"
)

// Version names a fixed column layout for normalized rows.
type Version string

const (
	Legacy   Version = "legacy"
	Extended Version = "extended"
)

// SchemaError reports an unrecognized schema version. Missing record
// fields never produce an error, only empty cells.
type SchemaError struct {
	Version Version
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unrecognized schema version %q", string(e.Version))
}

var legacyHeaders = []string{
	"Timestamp", "Photo 1", "Photo 2", "Company", "Name", "Phone",
	"Email", "Address", "Validated", "Validation Link", "About", "Location",
}

var extendedHeaders = []string{
	"Timestamp", "Photo 1", "Photo 2", "Company", "Name", "Phone",
	"Email", "Address", "Industry", "Title", "Website", "Social Media",
	"Services", "Company Size", "Established Year", "Registration Status",
	"Trust Score", "Key People",
	"Validated", "Validation Link", "About", "Location",
}

// Headers returns the column headers for a schema version, in column
// order.
func Headers(v Version) ([]string, error) {
	switch v {
	case Legacy:
		return legacyHeaders, nil
	case Extended:
		return extendedHeaders, nil
	default:
		return nil, &SchemaError{Version: v}
	}
}

// ParseVersion maps a configuration string onto a known Version.
func ParseVersion(s string) (Version, error) {
	switch Version(strings.ToLower(strings.TrimSpace(s))) {
	case Legacy:
		return Legacy, nil
	case Extended:
		return Extended, nil
	case "":
		return Extended, nil
	default:
		return "", &SchemaError{Version: Version(s)}
	}
}

// RowInput carries everything one normalized row is built from: the
// extracted record plus the values the pipeline computed around it.
type RowInput struct {
	Record     models.CardRecord
	Timestamp  time.Time
	Photo1Ref  string
	Photo2Ref  string
	Validation sheet.Cell
}

// BuildRow emits exactly one cell per column of version v, in fixed
// order. Missing string fields become empty strings; the validation
// flag is passed through verbatim.
func BuildRow(in RowInput, v Version) (sheet.Row, error) {
	r := in.Record

	head := sheet.Row{
		sheet.Literal(in.Timestamp.Format("2006-01-02 15:04:05")),
		sheet.Literal(in.Photo1Ref),
		sheet.Literal(in.Photo2Ref),
		sheet.Literal(r.Company),
		sheet.Literal(r.Name),
		sheet.Literal(r.Phone),
		sheet.Literal(r.Email),
		sheet.Literal(r.Address),
	}
	tail := sheet.Row{
		validationFlagCell(r.IsValidated),
		in.Validation,
		sheet.Literal(r.AboutTheCompany),
		sheet.Literal(r.Location),
	}

	switch v {
	case Legacy:
		return append(head, tail...), nil
	case Extended:
		row := append(head,
			sheet.Literal(r.Industry),
			sheet.Literal(r.Title),
			sheet.Literal(r.Website),
			sheet.Literal(r.SocialMedia),
			sheet.Literal(r.Services),
			sheet.Literal(r.CompanySize),
			sheet.Literal(r.FoundedYear),
			sheet.Literal(r.RegistrationStatus),
			sheet.Literal(r.TrustScore),
			sheet.Literal(FlattenKeyPeople(r)),
		)
		return append(row, tail...), nil
	default:
		return nil, &SchemaError{Version: v}
	}
}

// validationFlagCell stores the incoming flag verbatim (bool or string),
// defaulting to an empty cell when absent.
func validationFlagCell(v any) sheet.Cell {
	if v == nil {
		return sheet.Literal("")
	}
	return sheet.Literal(v)
}

// contactSentinel is what the enrichment model emits when it could not
// find a contact for a key person.
const contactSentinel = "Not Found"

// FlattenKeyPeople renders the key-people list one entry per line as
// "Name (Role)", appending " - contact" when a real contact was found.
// Records predating the list fall back to the discrete founder, CEO and
// owner fields, in that order.
func FlattenKeyPeople(r models.CardRecord) string {
	if len(r.KeyPeople) > 0 {
		lines := make([]string, 0, len(r.KeyPeople))
		for _, p := range r.KeyPeople {
			line := fmt.Sprintf("%s (%s)", p.Name, p.Role)
			if p.Contact != "" && p.Contact != contactSentinel {
				line += " - " + p.Contact
			}
			lines = append(lines, line)
		}
		return strings.Join(lines, "\n")
	}

	var lines []string
	for _, entry := range []struct{ label, value string }{
		{"Founder", r.Founder},
		{"CEO", r.CEO},
		{"Owner", r.Owner},
	} {
		if entry.value != "" {
			lines = append(lines, entry.label+": "+entry.value)
		}
	}
	return strings.Join(lines, "\n")
}
