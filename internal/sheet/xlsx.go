package sheet

import (
	"context"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXStore persists rows into one sheet of a local workbook. It is the
// network-free backend used for development and tests; hosted
// deployments use GoogleStore. The workbook must already exist with a
// header row in place.
type XLSXStore struct {
	path  string
	sheet string
}

// NewXLSXStore returns a store bound to the given workbook path and
// sheet name.
func NewXLSXStore(path, sheetName string) *XLSXStore {
	return &XLSXStore{path: path, sheet: sheetName}
}

func (s *XLSXStore) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, &StoreAccessError{Store: s.path, Err: err}
	}
	idx, err := f.GetSheetIndex(s.sheet)
	if err != nil || idx < 0 {
		_ = f.Close()
		return nil, &StoreAccessError{Store: s.path, Region: s.sheet, Err: err}
	}
	return f, nil
}

// Append writes one row after the current last row. The existing row
// contents are never consulted, only the row count.
func (s *XLSXStore) Append(ctx context.Context, row Row) error {
	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return &StoreAccessError{Store: s.path, Region: s.sheet, Err: err}
	}
	target := len(rows) + 1

	for i, cell := range row {
		name, err := excelize.CoordinatesToCellName(i+1, target)
		if err != nil {
			return err
		}
		if cell.IsFormula() {
			err = f.SetCellFormula(s.sheet, name, strings.TrimPrefix(cell.Formula, "="))
		} else {
			err = f.SetCellValue(s.sheet, name, cell.Value)
		}
		if err != nil {
			return err
		}
	}
	return f.Save()
}

// ReadAll loads the header row plus all data rows, reconciling each
// cell between its stored formula and its computed value. A workbook
// with no data rows yields an empty slice.
func (s *XLSXStore) ReadAll(ctx context.Context) ([]Record, error) {
	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return nil, &StoreAccessError{Store: s.path, Region: s.sheet, Err: err}
	}
	if len(rows) < 2 {
		return []Record{}, nil
	}

	headers := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for i, dataRow := range rows[1:] {
		rec := make(Record, len(headers))
		for j, header := range headers {
			name, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			formula, err := f.GetCellFormula(s.sheet, name)
			if err == nil && formula != "" {
				rec[header] = "=" + strings.TrimPrefix(formula, "=")
				continue
			}
			if j < len(dataRow) {
				rec[header] = dataRow[j]
			} else {
				rec[header] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
