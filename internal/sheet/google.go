package sheet

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"
)

// GoogleStore appends to and reads from one named data region of a
// Google spreadsheet via the Sheets API.
type GoogleStore struct {
	svc           *sheets.Service
	spreadsheetID string
	readRange     string
}

// NewGoogleStore returns a store bound to one spreadsheet and range.
// The range is A1 notation naming the data region, e.g. "Cards!A:V".
func NewGoogleStore(svc *sheets.Service, spreadsheetID, readRange string) *GoogleStore {
	return &GoogleStore{svc: svc, spreadsheetID: spreadsheetID, readRange: readRange}
}

// Append commits one row below the current data region. USER_ENTERED
// input lets the service parse HYPERLINK formulas the same way a typed
// cell would be.
func (s *GoogleStore) Append(ctx context.Context, row Row) error {
	values := make([]any, len(row))
	for i, cell := range row {
		values[i] = cell.Raw()
	}
	vr := &sheets.ValueRange{Values: [][]any{values}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.readRange, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return s.accessError(err)
	}
	return nil
}

// ReadAll fetches the region twice, once formula-rendered and once
// formatted, and reconciles per cell: stored formula text wins over the
// computed value. Fewer than two rows means no data, not an error.
func (s *GoogleStore) ReadAll(ctx context.Context) ([]Record, error) {
	formulas, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).
		ValueRenderOption("FORMULA").Context(ctx).Do()
	if err != nil {
		return nil, s.accessError(err)
	}
	rendered, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).
		ValueRenderOption("FORMATTED_VALUE").Context(ctx).Do()
	if err != nil {
		return nil, s.accessError(err)
	}
	if len(rendered.Values) < 2 {
		return []Record{}, nil
	}

	headers := make([]string, len(rendered.Values[0]))
	for i, h := range rendered.Values[0] {
		headers[i] = fmt.Sprint(h)
	}

	records := make([]Record, 0, len(rendered.Values)-1)
	for i := 1; i < len(rendered.Values); i++ {
		rec := make(Record, len(headers))
		for j, header := range headers {
			rec[header] = reconcile(cellAt(formulas.Values, i, j), cellAt(rendered.Values, i, j))
		}
		records = append(records, rec)
	}
	return records, nil
}

// reconcile prefers the formula-rendered value when it is actually a
// formula; only some columns carry one, so this is a per-cell decision.
func reconcile(formulaRendered, computed any) any {
	if text, ok := formulaRendered.(string); ok && len(text) > 0 && text[0] == '=' {
		return text
	}
	if computed == nil {
		return ""
	}
	return computed
}

func cellAt(values [][]any, row, col int) any {
	if row >= len(values) || col >= len(values[row]) {
		return nil
	}
	return values[row][col]
}

// accessError separates an unparsable/unknown range (missing data
// region) from an unreachable spreadsheet, so callers can tell which
// half of the handle failed.
func (s *GoogleStore) accessError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == 400 {
		// The API reports an unknown sheet or range as a 400 parse error.
		return &StoreAccessError{Store: s.spreadsheetID, Region: s.readRange, Err: err}
	}
	return &StoreAccessError{Store: s.spreadsheetID, Err: err}
}
