// CLAUDE:SUMMARY XLSX rendering of a document's header info and measurement table.
// Package export renders extraction results as XLSX workbooks so QA teams
// can review measurement tables in a spreadsheet instead of raw JSON.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hazyhaar/cavex/measure"
)

// Service produces XLSX bytes from extraction results.
type Service struct {
	logger *slog.Logger
}

// NewService creates an export service. A nil logger falls back to slog.Default.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// MeasurementsXLSX returns an XLSX workbook with one "Measurements" sheet:
// a header block with the report metadata, then one row per measurement.
func (s *Service) MeasurementsXLSX(res *measure.DocumentResult) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Measurements"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet excelize creates alongside ours.
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	row := 1
	writeMeta := func(label string, v *string) {
		if v == nil {
			return
		}
		write(1, row, label)
		write(2, row, *v)
		row++
	}

	write(1, row, "Cavity ID")
	write(2, row, res.CavityID)
	row++
	h := res.HeaderInfo
	writeMeta("Supplier", h.SupplierName)
	writeMeta("Supplier Code", h.SupplierCode)
	writeMeta("Part No", h.PartNumber)
	writeMeta("Part Name", h.PartName)
	writeMeta("Tooling No", h.ToolingNumber)
	writeMeta("Cavity No", h.CavityNumber)
	writeMeta("Assembly", h.AssemblyName)
	writeMeta("Material", h.Material)
	writeMeta("Manufacturer", h.MaterialManufacturer)
	writeMeta("Grade", h.GradeName)
	writeMeta("Compliance", h.ComplianceResult)
	row++ // blank spacer row before the table

	headers := []string{"No", "Sym", "Dimension", "Upper", "Lower", "Pos", "Measured by Vendor", "Page"}
	for i, h := range headers {
		write(i+1, row, h)
	}
	row++

	for _, m := range res.Measurements {
		write(1, row, m.No)
		write(2, row, m.Sym)
		write(3, row, m.Dimension)
		write(4, row, m.Upper)
		write(5, row, m.Lower)
		write(6, row, m.Pos)
		write(7, row, m.MeasuredByVendor)
		write(8, row, m.Page)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 8)
	_ = f.SetColWidth(sheet, "B", "B", 8)
	_ = f.SetColWidth(sheet, "C", "E", 12)
	_ = f.SetColWidth(sheet, "F", "F", 14)
	_ = f.SetColWidth(sheet, "G", "G", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"cavity_id", res.CavityID,
		"rows", len(res.Measurements),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
