// Package sheet is the boundary between the review workbook and the
// action engine: it turns workbook rows into Action declarations and
// writes the snapshot back out as a workbook for review.
//
// Row layout, one row per path beneath a header row: column A is the
// path, B-D are informational (owner, group, size), E is the action
// name, F the target path, G a free-text comment.
package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/haslund/reorg/internal/action"
	"github.com/haslund/reorg/internal/pathutil"
)

// DefaultSheetName is the worksheet created by the snapshot command.
const DefaultSheetName = "Files+Folders"

const (
	colPath = iota
	colUser
	colGroup
	colSize
	colAction
	colTarget
	colComment
)

var headers = []string{
	"Folder/File",
	"Owner: User",
	"Owner: Group",
	"Size",
	"Action",
	"Target Location",
	"Comment",
}

// Open opens an existing workbook.
func Open(path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return f, nil
}

// PickSheet returns the worksheet to read: the named one when name is
// non-empty, otherwise the workbook's active sheet. A named sheet that
// does not exist is an error.
func PickSheet(f *excelize.File, name string) (string, error) {
	if name == "" {
		return f.GetSheetName(f.GetActiveSheetIndex()), nil
	}
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return "", fmt.Errorf("failed to look up sheet %q: %w", name, err)
	}
	if idx < 0 {
		return "", fmt.Errorf("sheet %q not found in workbook", name)
	}
	return name, nil
}

// ToActions converts the rows of a worksheet into the declared action
// set, keyed by source path. Rows without an action are collected and
// checked for an ancestor that covers them; the returned warnings name
// every path no declared action governs. A row carrying a target but
// no action is a malformed declaration.
func ToActions(f *excelize.File, sheetName string) (map[string]*action.Action, []string, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return map[string]*action.Action{}, nil, nil
	}

	actions := make(map[string]*action.Action)
	var unaddressed []string

	for _, row := range rows[1:] {
		path := cell(row, colPath)
		if path == "" {
			continue
		}
		name := cell(row, colAction)
		target := cell(row, colTarget)

		if target != "" && name == "" {
			return nil, nil, fmt.Errorf("%w: target %s defined without action on %s", action.ErrInvalidArgument, target, path)
		}

		if name == "" {
			unaddressed = append(unaddressed, path)
			continue
		}

		kind, err := action.ParseKind(name)
		if err != nil {
			return nil, nil, err
		}
		a, err := action.New(kind, path, target, pathutil.Depth(path))
		if err != nil {
			return nil, nil, err
		}
		actions[a.Source] = a
	}

	var warnings []string
	for _, path := range unaddressed {
		if !hasAncestorAction(actions, path) {
			warnings = append(warnings, fmt.Sprintf("%s has no action", path))
		}
	}

	return actions, warnings, nil
}

func hasAncestorAction(actions map[string]*action.Action, path string) bool {
	for _, ancestor := range pathutil.Ancestors(path) {
		if _, ok := actions[ancestor]; ok {
			return true
		}
	}
	return false
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
