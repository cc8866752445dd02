package staging

import (
	"path/filepath"
	"testing"

	"github.com/gestdata/registrosgo/internal/registro"
)

func draft(nombre string) registro.Record {
	return registro.Record{Proyecto: "Norte", Cedula: "123", Nombre: nombre}
}

func TestAddOne(t *testing.T) {
	s, _, err := Open("")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}

	rec, err := s.AddOne(draft("Juan Pérez"))
	if err != nil {
		t.Fatalf("Failed to add valid draft: %v", err)
	}
	if !rec.ID.IsTemporary() {
		t.Error("Staged record should carry a temporary id")
	}
	if rec.Status != registro.StatusActive {
		t.Errorf("Status should default to %s, got %s", registro.StatusActive, rec.Status)
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 staged record, got %d", s.Len())
	}
}

func TestAddOneValidation(t *testing.T) {
	s, _, _ := Open("")

	_, err := s.AddOne(registro.Record{Proyecto: "Norte"})
	if err == nil {
		t.Fatal("Draft missing required fields should be rejected")
	}
	if _, ok := err.(*registro.ValidationError); !ok {
		t.Errorf("Expected *registro.ValidationError, got %T", err)
	}
	if s.Len() != 0 {
		t.Error("Store should be unchanged after a rejected draft")
	}
}

func TestAddManyPartialSuccess(t *testing.T) {
	s, _, _ := Open("")

	drafts := []registro.Record{
		draft("Ana"),
		{Nombre: "sin proyecto ni cedula"},
		draft("Luis"),
	}

	added, rejected, err := s.AddMany(drafts)
	if err != nil {
		t.Fatalf("AddMany failed: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("Expected 2 added, got %d", len(added))
	}
	if len(rejected) != 1 || rejected[0].Index != 1 {
		t.Errorf("Expected rejection at index 1, got %v", rejected)
	}

	// Original order preserved
	records := s.Records()
	if records[0].Nombre != "Ana" || records[1].Nombre != "Luis" {
		t.Errorf("Order not preserved: %v", records)
	}
}

func TestRemove(t *testing.T) {
	s, _, _ := Open("")
	rec, _ := s.AddOne(draft("Ana"))

	found, err := s.Remove(rec.ID)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !found {
		t.Error("Remove should find the staged record")
	}
	if s.Len() != 0 {
		t.Error("Record should be gone after removal")
	}

	found, _ = s.Remove(registro.AuthoritativeID(999))
	if found {
		t.Error("Removing an unknown id should report not found")
	}
}

func TestReplaceAll(t *testing.T) {
	s, _, _ := Open("")
	s.AddOne(draft("Ana"))
	s.AddOne(draft("Luis"))

	authoritative := []registro.Record{
		{ID: registro.AuthoritativeID(2), Proyecto: "Norte", Cedula: "2", Nombre: "Luis", Status: registro.StatusActive},
		{ID: registro.AuthoritativeID(1), Proyecto: "Norte", Cedula: "1", Nombre: "Ana", Status: registro.StatusActive},
	}
	if err := s.ReplaceAll(authoritative); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	records := s.Records()
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if !records[0].ID.IsAuthoritative() {
		t.Error("Replaced records should carry authoritative ids")
	}
}

func TestSnapshotRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staging.json")

	s, restored, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	if restored {
		t.Error("Fresh path should not restore anything")
	}

	rec, err := s.AddOne(draft("Ana"))
	if err != nil {
		t.Fatalf("Failed to add draft: %v", err)
	}

	// Reopen from the same snapshot
	s2, restored, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	if !restored {
		t.Fatal("Second open should restore the snapshot")
	}

	records := s2.Records()
	if len(records) != 1 {
		t.Fatalf("Expected 1 restored record, got %d", len(records))
	}
	if records[0].Nombre != "Ana" {
		t.Errorf("Restored record mismatch: %v", records[0])
	}
	if records[0].ID.String() != rec.ID.String() {
		t.Error("Temporary id should survive the snapshot round trip")
	}
}

func TestClearRemovesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staging.json")

	s, _, _ := Open(path)
	s.AddOne(draft("Ana"))

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if s.Len() != 0 {
		t.Error("Store should be empty after Clear")
	}

	_, restored, err := Open(path)
	if err != nil {
		t.Fatalf("Reopen after Clear failed: %v", err)
	}
	if restored {
		t.Error("Clear should also remove the durable snapshot")
	}

	// Clearing an already-clear store is fine
	if err := s.Clear(); err != nil {
		t.Errorf("Second Clear should succeed: %v", err)
	}
}
