// Package sheet assembles spreadsheet creation payloads from metrics
// results and publishes them to a Sheets-compatible endpoint.
package sheet

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/chingu-voyage/heartbeat/schema"
)

// Spreadsheet is the creation payload for a spreadsheet with one or more
// sheets (tabs).
type Spreadsheet struct {
	Properties  SpreadsheetProperties `json:"properties"`
	Sheets      []Sheet               `json:"sheets"`
	NamedRanges []NamedRange          `json:"namedRanges,omitempty"`
}

// SpreadsheetProperties holds top-level spreadsheet metadata.
type SpreadsheetProperties struct {
	Title  string `json:"title"`
	Locale string `json:"locale"`
}

// Sheet is one tab, with its grid data and conditional format rules.
type Sheet struct {
	Properties         SheetProperties   `json:"properties"`
	Data               []GridData        `json:"data,omitempty"`
	ConditionalFormats []ConditionalRule `json:"conditionalFormats,omitempty"`
}

// SheetProperties holds per-tab metadata.
type SheetProperties struct {
	SheetID        int64           `json:"sheetId"`
	Title          string          `json:"title"`
	Index          int             `json:"index"`
	GridProperties *GridProperties `json:"gridProperties,omitempty"`
}

// GridProperties bounds the grid of a sheet.
type GridProperties struct {
	RowCount    int `json:"rowCount"`
	ColumnCount int `json:"columnCount"`
}

// GridData carries cell values anchored at a start position.
type GridData struct {
	StartRow    int       `json:"startRow"`
	StartColumn int       `json:"startColumn"`
	RowData     []RowData `json:"rowData"`
}

// RowData is one row of cells.
type RowData struct {
	Values []CellData `json:"values"`
}

// CellData is one cell.
type CellData struct {
	UserEnteredValue UserEnteredValue `json:"userEnteredValue"`
}

// UserEnteredValue is a typed cell value. Exactly one field is set.
type UserEnteredValue struct {
	StringValue  *string  `json:"stringValue,omitempty"`
	NumberValue  *float64 `json:"numberValue,omitempty"`
	BoolValue    *bool    `json:"boolValue,omitempty"`
	FormulaValue *string  `json:"formulaValue,omitempty"`
}

// NamedRange registers a named cell range referenced by formulas.
type NamedRange struct {
	NamedRangeID string    `json:"namedRangeId"`
	Name         string    `json:"name"`
	Range        GridRange `json:"range"`
}

// GridRange is a half-open range of rows and columns on a sheet.
type GridRange struct {
	SheetID          int64 `json:"sheetId"`
	StartRowIndex    int   `json:"startRowIndex"`
	EndRowIndex      *int  `json:"endRowIndex,omitempty"`
	StartColumnIndex int   `json:"startColumnIndex"`
	EndColumnIndex   *int  `json:"endColumnIndex,omitempty"`
}

// ConditionalRule colors cells whose value falls inside a threshold band.
type ConditionalRule struct {
	Ranges      []GridRange `json:"ranges"`
	BooleanRule BooleanRule `json:"booleanRule"`
}

// BooleanRule pairs a condition with the format to apply on match.
type BooleanRule struct {
	Condition BooleanCondition `json:"condition"`
	Format    CellFormat       `json:"format"`
}

// BooleanCondition is a NUMBER_BETWEEN condition over two bounds.
type BooleanCondition struct {
	Type   string           `json:"type"`
	Values []ConditionValue `json:"values"`
}

// ConditionValue is one bound of a condition.
type ConditionValue struct {
	UserEnteredValue string `json:"userEnteredValue"`
}

// CellFormat carries the background color applied by a rule.
type CellFormat struct {
	BackgroundColor schema.BandColor `json:"backgroundColor"`
}

// Builder accumulates spreadsheet properties, per-sheet data, named ranges
// and format rules, then renders the creation payload.
type Builder struct {
	props       SpreadsheetProperties
	sheets      map[int]*Sheet
	namedRanges []NamedRange
	maxSheets   int
}

// NewBuilder creates an empty spreadsheet builder.
func NewBuilder() *Builder {
	return &Builder{sheets: map[int]*Sheet{}}
}

// SetSpreadsheetProps defines the top-level spreadsheet properties.
func (b *Builder) SetSpreadsheetProps(title, locale string, maxSheets int) error {
	if title == "" {
		return fmt.Errorf("invalid spreadsheet title: %q", title)
	}
	if locale == "" {
		return fmt.Errorf("invalid spreadsheet locale: %q", locale)
	}
	if maxSheets < 0 {
		return fmt.Errorf("invalid maximum no. of sheets: %d", maxSheets)
	}
	b.props = SpreadsheetProperties{Title: title, Locale: locale}
	b.maxSheets = maxSheets
	return nil
}

// SetSheetProps defines the properties of one sheet (tab).
func (b *Builder) SetSheetProps(sheetIndex int, props SheetProperties) error {
	if sheetIndex < 0 {
		return fmt.Errorf("invalid sheet association index: %d", sheetIndex)
	}
	if props.SheetID <= 0 {
		return fmt.Errorf("invalid sheet id: %d", props.SheetID)
	}
	if props.Title == "" {
		return fmt.Errorf("invalid sheet title: %q", props.Title)
	}
	if props.GridProperties != nil {
		if props.GridProperties.RowCount <= 0 {
			return fmt.Errorf("invalid sheet row count: %d", props.GridProperties.RowCount)
		}
		if props.GridProperties.ColumnCount <= 0 {
			return fmt.Errorf("invalid sheet column count: %d", props.GridProperties.ColumnCount)
		}
	}
	b.sheet(sheetIndex).Properties = props
	return nil
}

// SetSheetValues sets the cell values for one sheet, anchored at the given
// start position. Values are typed per cell: bool, numeric and string are
// accepted; strings starting with '=' become formulas.
func (b *Builder) SetSheetValues(sheetIndex, startRow, startColumn int, values [][]any) error {
	if sheetIndex < 0 {
		return fmt.Errorf("invalid sheet association index: %d", sheetIndex)
	}
	if startRow < 0 {
		return fmt.Errorf("invalid start row: %d", startRow)
	}
	if startColumn < 0 {
		return fmt.Errorf("invalid start column: %d", startColumn)
	}

	rowData := make([]RowData, 0, len(values))
	for i, row := range values {
		cells := make([]CellData, 0, len(row))
		for j, value := range row {
			cell, err := cellValue(value)
			if err != nil {
				return fmt.Errorf("row %d column %d: %w", i, j, err)
			}
			cells = append(cells, cell)
		}
		rowData = append(rowData, RowData{Values: cells})
	}

	b.sheet(sheetIndex).Data = []GridData{{
		StartRow:    startRow,
		StartColumn: startColumn,
		RowData:     rowData,
	}}
	return nil
}

// CreateNamedRange registers a named range. Range IDs are assigned by
// incrementing the highest existing ID.
func (b *Builder) CreateNamedRange(meta schema.NamedRangeMeta) error {
	if meta.Name == "" {
		return fmt.Errorf("invalid range name: %q", meta.Name)
	}

	rangeID := 1
	for _, existing := range b.namedRanges {
		if id, err := strconv.Atoi(existing.NamedRangeID); err == nil && id >= rangeID {
			rangeID = id + 1
		}
	}

	gridRange := GridRange{
		SheetID:          meta.SheetID,
		StartRowIndex:    meta.StartRow,
		StartColumnIndex: meta.StartColumn,
	}
	if meta.EndRow != schema.NotFound {
		endRow := meta.EndRow
		gridRange.EndRowIndex = &endRow
	}
	if meta.EndColumn != schema.NotFound {
		endColumn := meta.EndColumn
		gridRange.EndColumnIndex = &endColumn
	}

	b.namedRanges = append(b.namedRanges, NamedRange{
		NamedRangeID: strconv.Itoa(rangeID),
		Name:         meta.Name,
		Range:        gridRange,
	})
	return nil
}

// AddFormatRule attaches a NUMBER_BETWEEN conditional format rule to a
// sheet column, using the bounds and color of the named threshold band.
func (b *Builder) AddFormatRule(sheetIndex int, sheetID int64, column int, label string, bands []schema.ThresholdBand) error {
	if sheetIndex < 0 {
		return fmt.Errorf("invalid sheet association index: %d", sheetIndex)
	}

	var band *schema.ThresholdBand
	for i := range bands {
		if strings.EqualFold(bands[i].Label, label) {
			band = &bands[i]
			break
		}
	}
	if band == nil {
		return fmt.Errorf("no threshold band with label %q", label)
	}

	rule := ConditionalRule{
		Ranges: []GridRange{{
			SheetID:          sheetID,
			StartRowIndex:    1, // data rows only, header excluded
			StartColumnIndex: column,
		}},
		BooleanRule: BooleanRule{
			Condition: BooleanCondition{
				Type: "NUMBER_BETWEEN",
				Values: []ConditionValue{
					{UserEnteredValue: strconv.FormatFloat(band.Low, 'f', -1, 64)},
					{UserEnteredValue: strconv.FormatFloat(band.High, 'f', -1, 64)},
				},
			},
			Format: CellFormat{BackgroundColor: band.Color},
		},
	}

	sheet := b.sheet(sheetIndex)
	sheet.ConditionalFormats = append(sheet.ConditionalFormats, rule)
	return nil
}

// Build renders the accumulated state as a creation payload.
func (b *Builder) Build() ([]byte, error) {
	if b.props.Title == "" {
		return nil, fmt.Errorf("spreadsheet properties are not set")
	}
	if len(b.sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	if b.maxSheets > 0 && len(b.sheets) > b.maxSheets {
		return nil, fmt.Errorf("spreadsheet has %d sheets, maximum is %d", len(b.sheets), b.maxSheets)
	}

	payload := Spreadsheet{
		Properties:  b.props,
		NamedRanges: b.namedRanges,
	}
	for i := 0; i < len(b.sheets); i++ {
		sheet, ok := b.sheets[i]
		if !ok {
			return nil, fmt.Errorf("sheet index %d is missing", i)
		}
		payload.Sheets = append(payload.Sheets, *sheet)
	}

	return json.Marshal(payload)
}

func (b *Builder) sheet(index int) *Sheet {
	if _, ok := b.sheets[index]; !ok {
		b.sheets[index] = &Sheet{}
	}
	return b.sheets[index]
}

// cellValue converts a Go value into a typed spreadsheet cell.
func cellValue(value any) (CellData, error) {
	var entered UserEnteredValue
	switch v := value.(type) {
	case bool:
		entered.BoolValue = &v
	case int:
		f := float64(v)
		entered.NumberValue = &f
	case int64:
		f := float64(v)
		entered.NumberValue = &f
	case float64:
		entered.NumberValue = &v
	case string:
		// Strings starting with '=' are assumed to be formulas
		if strings.HasPrefix(v, "=") {
			entered.FormulaValue = &v
		} else {
			entered.StringValue = &v
		}
	default:
		return CellData{}, fmt.Errorf("unexpected cell value type: %T", value)
	}
	return CellData{UserEnteredValue: entered}, nil
}
