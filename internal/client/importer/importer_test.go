package importer

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/gestdata/registrosgo/internal/registro"
)

func TestParseRows(t *testing.T) {
	rows := [][]string{
		{"NOMBRE", "CEDULA", "PROYECTO"},
		{"Juan Pérez", "123", "Norte"},
	}

	drafts, err := ParseRows(rows)
	if err != nil {
		t.Fatalf("ParseRows failed: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("Expected 1 draft, got %d", len(drafts))
	}

	d := drafts[0]
	if d.Nombre != "Juan Pérez" || d.Cedula != "123" || d.Proyecto != "Norte" {
		t.Errorf("Mapped fields wrong: %+v", d)
	}
	if d.Status != registro.StatusActive {
		t.Errorf("Status should default to %s, got %q", registro.StatusActive, d.Status)
	}
	if d.CentroOperacion != "" || d.Cargo != "" || d.Numero != "" {
		t.Errorf("Unmatched fields should stay empty: %+v", d)
	}
}

func TestParseRowsHeaderMatching(t *testing.T) {
	rows := [][]string{
		{"Proyecto Asignado", "Centro de Operación", "Teléfono Móvil", "Cédula", "Nombre Completo", "Estado"},
		{"Sur", "Cali", "3001234567", "456", "Ana Gómez", "NO"},
	}

	drafts, err := ParseRows(rows)
	if err != nil {
		t.Fatalf("ParseRows failed: %v", err)
	}

	d := drafts[0]
	if d.Proyecto != "Sur" {
		t.Errorf("Substring match on proyecto failed: %q", d.Proyecto)
	}
	if d.CentroOperacion != "Cali" {
		t.Errorf("Accented header should match centro: %q", d.CentroOperacion)
	}
	if d.Numero != "3001234567" {
		t.Errorf("Telefono header should map to numero: %q", d.Numero)
	}
	if d.Status != registro.StatusInactive {
		t.Errorf("Explicit estado should be kept: %q", d.Status)
	}
}

func TestParseRowsSkipsEmptyRows(t *testing.T) {
	rows := [][]string{
		{"NOMBRE", "CEDULA", "PROYECTO"},
		{"", "", ""},
		{"Juan", "123", "Norte"},
		{"", "  ", ""},
	}

	drafts, err := ParseRows(rows)
	if err != nil {
		t.Fatalf("ParseRows failed: %v", err)
	}
	if len(drafts) != 1 {
		t.Errorf("Blank rows should be skipped, got %d drafts", len(drafts))
	}
}

func TestParseRowsHeaderOnly(t *testing.T) {
	rows := [][]string{{"NOMBRE", "CEDULA", "PROYECTO"}}

	_, err := ParseRows(rows)
	if !errors.Is(err, ErrEmptyFile) {
		t.Errorf("Expected ErrEmptyFile, got %v", err)
	}

	_, err = ParseRows(nil)
	if !errors.Is(err, ErrEmptyFile) {
		t.Errorf("Expected ErrEmptyFile for no rows, got %v", err)
	}
}

func TestParseRowsNoValidRows(t *testing.T) {
	rows := [][]string{
		{"NOMBRE", "CEDULA", "PROYECTO"},
		{"", "", ""},
	}

	_, err := ParseRows(rows)
	if !errors.Is(err, ErrNoValidRows) {
		t.Errorf("Expected ErrNoValidRows, got %v", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datos.xlsx")

	records := []registro.Record{
		{
			ID:              registro.AuthoritativeID(1),
			Proyecto:        "Norte",
			CentroOperacion: "Cali",
			Cargo:           "Operario",
			Cedula:          "123",
			Nombre:          "Juan Pérez",
			Numero:          "3001234567",
			Status:          registro.StatusActive,
		},
		{
			ID:       registro.AuthoritativeID(2),
			Proyecto: "Sur",
			Cedula:   "456",
			Nombre:   "Ana Gómez",
			Status:   registro.StatusInactive,
		},
	}

	if err := ExportFile(path, records); err != nil {
		t.Fatalf("ExportFile failed: %v", err)
	}

	drafts, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed on exported workbook: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("Expected 2 drafts, got %d", len(drafts))
	}
	if drafts[0].Nombre != "Juan Pérez" || drafts[0].CentroOperacion != "Cali" {
		t.Errorf("First record fields lost in round trip: %+v", drafts[0])
	}
	if drafts[1].Status != registro.StatusInactive {
		t.Errorf("Status lost in round trip: %+v", drafts[1])
	}
}

func TestExportEmpty(t *testing.T) {
	err := ExportFile(filepath.Join(t.TempDir(), "empty.xlsx"), nil)
	if !errors.Is(err, ErrNothingToExport) {
		t.Errorf("Expected ErrNothingToExport, got %v", err)
	}
}

func TestWriteTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plantilla.xlsx")

	if err := WriteTemplate(path); err != nil {
		t.Fatalf("WriteTemplate failed: %v", err)
	}

	drafts, err := ParseFile(path)
	if err != nil {
		t.Fatalf("Template should parse as a valid import file: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("Expected the example row, got %d drafts", len(drafts))
	}
	if drafts[0].Cedula != "12345678" {
		t.Errorf("Example row mismatch: %+v", drafts[0])
	}
}
