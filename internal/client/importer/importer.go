// Package importer converts tabular spreadsheet data into record drafts.
package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gestdata/registrosgo/internal/registro"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrEmptyFile means the sheet had no data rows below the header
	ErrEmptyFile = errors.New("el archivo está vacío o no tiene datos")
	// ErrNoValidRows means nothing usable remained after filtering
	ErrNoValidRows = errors.New("no se encontraron datos válidos en el archivo")
)

// Candidate header names per field. Matching is case-insensitive substring
// matching; the leftmost matching header column wins.
var (
	proyectoHeaders = []string{"proyecto"}
	centroHeaders   = []string{"centro", "operacion", "operación"}
	cargoHeaders    = []string{"cargo"}
	cedulaHeaders   = []string{"cedula", "cédula"}
	nombreHeaders   = []string{"nombre"}
	numeroHeaders   = []string{"numero", "número", "telefono", "teléfono"}
	statusHeaders   = []string{"status", "estado"}
)

// ParseRows maps raw cell rows (row 0 = headers) to record drafts.
// Entirely empty rows are skipped; drafts come back in original row order.
// The transform is pure, feeding the result into the staging cache is the
// caller's job.
func ParseRows(rows [][]string) ([]registro.Record, error) {
	if len(rows) < 2 {
		return nil, ErrEmptyFile
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	findColumn := func(names []string) int {
		for i, h := range headers {
			for _, name := range names {
				if strings.Contains(h, name) {
					return i
				}
			}
		}
		return -1
	}

	columns := map[string]int{
		"proyecto": findColumn(proyectoHeaders),
		"centro":   findColumn(centroHeaders),
		"cargo":    findColumn(cargoHeaders),
		"cedula":   findColumn(cedulaHeaders),
		"nombre":   findColumn(nombreHeaders),
		"numero":   findColumn(numeroHeaders),
		"status":   findColumn(statusHeaders),
	}

	cell := func(row []string, col int) string {
		if col < 0 || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	var drafts []registro.Record
	for _, row := range rows[1:] {
		empty := true
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		draft := registro.Record{
			Proyecto:        cell(row, columns["proyecto"]),
			CentroOperacion: cell(row, columns["centro"]),
			Cargo:           cell(row, columns["cargo"]),
			Cedula:          cell(row, columns["cedula"]),
			Nombre:          cell(row, columns["nombre"]),
			Numero:          cell(row, columns["numero"]),
			Status:          cell(row, columns["status"]),
		}
		drafts = append(drafts, draft.WithDefaults())
	}

	if len(drafts) == 0 {
		return nil, ErrNoValidRows
	}
	return drafts, nil
}

// ParseFile reads the first sheet of an .xlsx workbook and maps it to drafts
func ParseFile(path string) ([]registro.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error al procesar el archivo Excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error al procesar el archivo Excel: %w", err)
	}
	return ParseRows(rows)
}
