package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/haslund/reorg/internal/action"
	"github.com/haslund/reorg/internal/snapshot"
)

// maxOutlineLevel is the deepest row grouping level the xlsx format
// supports; deeper entries stay at this level.
const maxOutlineLevel = 7

// Write renders the snapshot into a new workbook at path, one row per
// entry in depth-first order, with row grouping matching tree depth
// and a drop list of the action names on the Action column.
func Write(entries []snapshot.Entry, path, sheetName string) error {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeHeader(f, sheetName); err != nil {
		return err
	}

	// The row offset is threaded through the recursive writer and
	// returned as the next free row; data starts on row 2, below the
	// header.
	next, err := writeRows(f, sheetName, entries, 2, 0)
	if err != nil {
		return err
	}

	if next > 2 {
		if err := writeValidations(f, sheetName, next-1); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheetName string) error {
	for i, header := range headers {
		cellName, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cellName, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	return nil
}

// writeRows writes entries starting at row, returning the next free
// row index. Report entries are skipped.
func writeRows(f *excelize.File, sheetName string, entries []snapshot.Entry, row, indent int) (int, error) {
	for _, entry := range entries {
		if entry.Type == snapshot.TypeReport {
			continue
		}

		if err := setCell(f, sheetName, colPath, row, entry.Name); err != nil {
			return row, err
		}
		if entry.User != "" {
			if err := setCell(f, sheetName, colUser, row, entry.User); err != nil {
				return row, err
			}
			if err := setCell(f, sheetName, colGroup, row, entry.Group); err != nil {
				return row, err
			}
			if err := setCell(f, sheetName, colSize, row, entry.Size); err != nil {
				return row, err
			}
		}

		if indent > 0 {
			level := indent
			if level > maxOutlineLevel {
				level = maxOutlineLevel
			}
			if err := f.SetRowOutlineLevel(sheetName, row, uint8(level)); err != nil {
				return row, fmt.Errorf("failed to set row outline: %w", err)
			}
		}

		row++

		if len(entry.Contents) > 0 {
			var err error
			row, err = writeRows(f, sheetName, entry.Contents, row, indent+1)
			if err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

// writeValidations attaches the action-name drop list to the Action
// column of every data row.
func writeValidations(f *excelize.File, sheetName string, lastRow int) error {
	dv := excelize.NewDataValidation(true)
	dv.Sqref = fmt.Sprintf("E2:E%d", lastRow)
	if err := dv.SetDropList(action.KindNames()); err != nil {
		return fmt.Errorf("failed to build action drop list: %w", err)
	}
	if err := f.AddDataValidation(sheetName, dv); err != nil {
		return fmt.Errorf("failed to add data validation: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, sheetName string, col, row int, value interface{}) error {
	cellName, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, cellName, value); err != nil {
		return fmt.Errorf("failed to write cell %s: %w", cellName, err)
	}
	return nil
}
