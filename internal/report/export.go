package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Export formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// ContentType returns the MIME type of an export format.
func ContentType(format string) string {
	switch format {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	}
	return "application/octet-stream"
}

// Write renders r in the given format.
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case FormatXLSX:
		return r.WriteXLSX(w)
	case FormatCSV:
		return r.WriteCSV(w)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// WriteCSV writes the summary metrics for summary reports and the record
// table otherwise.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if r.Kind == KindSummary {
		if err := cw.Write([]string{"Metric", "Value"}); err != nil {
			return err
		}
		for _, row := range r.summaryRows() {
			if err := cw.Write([]string{fmt.Sprint(row[0]), fmt.Sprint(row[1])}); err != nil {
				return err
			}
		}
	} else {
		if err := cw.Write(RecordColumns); err != nil {
			return err
		}
		for _, rec := range r.Records {
			if err := cw.Write(r.recordRow(rec)); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

var recordColumnWidths = []float64{15, 25, 15, 20, 10, 12}

// WriteXLSX writes a workbook with a Summary sheet and, for detailed
// reports, a Records sheet.
func (r *Report) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	rows := append([][]any{
		{fmt.Sprintf("%s Burial Record Report", r.Kind)},
		{},
	}, r.summaryRows()...)
	for i, row := range rows {
		if err := setRow(f, summary, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(summary, "A", "A", 22); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if r.Kind == KindDetailed {
		if err := r.writeRecordSheet(f); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func (r *Report) writeRecordSheet(f *excelize.File) error {
	const sheet = "Records"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	header := make([]any, len(RecordColumns))
	for i, h := range RecordColumns {
		header[i] = h
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(RecordColumns), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}

	for i, rec := range r.Records {
		vals := r.recordRow(rec)
		row := make([]any, len(vals))
		for j, v := range vals {
			row[j] = v
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	for i, width := range recordColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("set row %s!%s: %w", sheet, cell, err)
	}
	return nil
}
