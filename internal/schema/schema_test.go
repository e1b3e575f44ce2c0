package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/models"
	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/sheet"
)

var testTime = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func buildInput(record models.CardRecord) RowInput {
	return RowInput{
		Record:     record,
		Timestamp:  testTime,
		Photo1Ref:  "https://storage.googleapis.com/b/photo1.jpg",
		Photo2Ref:  "",
		Validation: sheet.ValidationCell(record.ValidationSource, record.Company, record.Validated()),
	}
}

func TestBuildRowColumnCounts(t *testing.T) {
	record := models.CardRecord{Company: "Acme"}

	legacy, err := BuildRow(buildInput(record), Legacy)
	require.NoError(t, err)
	assert.Len(t, legacy, 12)

	extended, err := BuildRow(buildInput(record), Extended)
	require.NoError(t, err)
	assert.Len(t, extended, 22)

	legacyHeaders, err := Headers(Legacy)
	require.NoError(t, err)
	assert.Len(t, legacy, len(legacyHeaders))

	extendedHeaders, err := Headers(Extended)
	require.NoError(t, err)
	assert.Len(t, extended, len(extendedHeaders))
}

func TestBuildRowEmptyRecord(t *testing.T) {
	row, err := BuildRow(buildInput(models.CardRecord{}), Extended)
	require.NoError(t, err)
	require.Len(t, row, 22)

	// Everything except the timestamp and photo1 reference defaults to
	// an empty string cell, never an absent one.
	assert.Equal(t, testTime.Format("2006-01-02 15:04:05"), row[0].Value)
	for i, cell := range row[2:] {
		assert.False(t, cell.IsFormula(), "column %d", i+2)
		assert.Equal(t, "", cell.Value, "column %d", i+2)
	}
}

func TestBuildRowValidationFlagVerbatim(t *testing.T) {
	headers, err := Headers(Extended)
	require.NoError(t, err)
	validatedCol := indexOf(t, headers, "Validated")

	boolRow, err := BuildRow(buildInput(models.CardRecord{IsValidated: true}), Extended)
	require.NoError(t, err)
	assert.Equal(t, true, boolRow[validatedCol].Value)

	stringRow, err := BuildRow(buildInput(models.CardRecord{IsValidated: "true"}), Extended)
	require.NoError(t, err)
	assert.Equal(t, "true", stringRow[validatedCol].Value)
}

func TestBuildRowValidationLink(t *testing.T) {
	record := models.CardRecord{
		Company:          `Acme "A" Co`,
		ValidationSource: "http://x.test",
		IsValidated:      true,
	}
	row, err := BuildRow(buildInput(record), Legacy)
	require.NoError(t, err)

	headers, err := Headers(Legacy)
	require.NoError(t, err)
	linkCol := indexOf(t, headers, "Validation Link")
	assert.Equal(t, `=HYPERLINK("http://x.test","Acme ""A"" Co Link")`, row[linkCol].Formula)
}

func TestBuildRowUnknownVersion(t *testing.T) {
	_, err := BuildRow(buildInput(models.CardRecord{}), Version("v3"))
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, Version("v3"), schemaErr.Version)
}

func TestFlattenKeyPeopleSentinelContact(t *testing.T) {
	record := models.CardRecord{
		KeyPeople: []models.KeyPerson{{Name: "Jo", Role: "CEO", Contact: "Not Found"}},
	}
	assert.Equal(t, "Jo (CEO)", FlattenKeyPeople(record))
}

func TestFlattenKeyPeopleWithContact(t *testing.T) {
	record := models.CardRecord{
		KeyPeople: []models.KeyPerson{
			{Name: "Jo", Role: "CEO", Contact: "jo@acme.test"},
			{Name: "Sam", Role: "Founder"},
		},
	}
	assert.Equal(t, "Jo (CEO) - jo@acme.test\nSam (Founder)", FlattenKeyPeople(record))
}

func TestFlattenKeyPeopleDiscreteFallback(t *testing.T) {
	record := models.CardRecord{Founder: "Ada", Owner: "Lin"}
	assert.Equal(t, "Founder: Ada\nOwner: Lin", FlattenKeyPeople(record))
}

func TestFlattenKeyPeopleEmpty(t *testing.T) {
	assert.Equal(t, "", FlattenKeyPeople(models.CardRecord{}))
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("legacy")
	require.NoError(t, err)
	assert.Equal(t, Legacy, v)

	v, err = ParseVersion("")
	require.NoError(t, err)
	assert.Equal(t, Extended, v)

	_, err = ParseVersion("v3")
	assert.Error(t, err)
}

func indexOf(t *testing.T, headers []string, name string) int {
	t.Helper()
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	t.Fatalf("header %q not found", name)
	return -1
}
