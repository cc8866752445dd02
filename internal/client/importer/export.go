package importer

import (
	"errors"
	"fmt"

	"github.com/gestdata/registrosgo/internal/registro"
	"github.com/xuri/excelize/v2"
)

// ErrNothingToExport means the working set was empty
var ErrNothingToExport = errors.New("no hay datos para exportar")

var exportColumns = []struct {
	Header string
	Width  float64
}{
	{"ID", 8},
	{"PROYECTO", 30},
	{"CENTRO DE OPERACIÓN", 25},
	{"CARGO", 15},
	{"CEDULA", 15},
	{"NOMBRE", 30},
	{"NUMERO", 15},
	{"STATUS", 10},
}

// ExportFile writes the given records to an .xlsx workbook, one sheet named
// "Datos" with the same column set the importer understands plus the id.
func ExportFile(path string, records []registro.Record) error {
	if len(records) == 0 {
		return ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Datos"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for i, col := range exportColumns {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, colName, colName, col.Width); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("%s1", colName), col.Header); err != nil {
			return err
		}
	}

	for i, rec := range records {
		row := i + 2
		values := []string{
			rec.ID.String(),
			rec.Proyecto,
			rec.CentroOperacion,
			rec.Cargo,
			rec.Cedula,
			rec.Nombre,
			rec.Numero,
			rec.Status,
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

// WriteTemplate produces an import template workbook with the expected
// headers and one example row.
func WriteTemplate(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Plantilla"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	example := []string{
		"", // no id column in the template
		"Ejemplo: Proyecto Norte",
		"Ejemplo: Cali",
		"Ejemplo: Operario",
		"12345678",
		"Ejemplo: Juan Pérez",
		"3001234567",
		registro.StatusActive,
	}

	// Skip the ID column, templates hold only importable fields
	for i, col := range exportColumns[1:] {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, colName, colName, col.Width); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("%s1", colName), col.Header); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("%s2", colName), example[i+1]); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
