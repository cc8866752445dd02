package handlers

import (
	"encoding/json"
	"testing"

	"github.com/gestdata/registrosgo/internal/models"
)

func TestToRegistroCamelCaseCoalescing(t *testing.T) {
	// The legacy frontend sent centro de operación in camelCase
	var body CreateRegistroRequest
	payload := `{"proyecto":"Norte","centroOperacion":"Cali","cedula":"123","nombre":"Juan"}`
	if err := json.Unmarshal([]byte(payload), &body); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}

	registro := body.toRegistro()
	if registro.CentroOperacion == nil || *registro.CentroOperacion != "Cali" {
		t.Errorf("camelCase centroOperacion should be accepted, got %v", registro.CentroOperacion)
	}

	// When both spellings arrive, snake_case wins
	body.CentroOperacion = "Bogotá"
	registro = body.toRegistro()
	if registro.CentroOperacion == nil || *registro.CentroOperacion != "Bogotá" {
		t.Errorf("snake_case should take precedence, got %v", registro.CentroOperacion)
	}
}

func TestToRegistroOptionalFieldsBecomeNull(t *testing.T) {
	body := CreateRegistroRequest{
		Proyecto: "Norte",
		Cedula:   "123",
		Nombre:   "Juan",
	}

	registro := body.toRegistro()
	if registro.CentroOperacion != nil {
		t.Errorf("Empty centro should persist as NULL, got %v", *registro.CentroOperacion)
	}
	if registro.Cargo != nil {
		t.Errorf("Empty cargo should persist as NULL, got %v", *registro.Cargo)
	}
	if registro.Numero != nil {
		t.Errorf("Empty numero should persist as NULL, got %v", *registro.Numero)
	}
	if registro.Status != models.StatusActive {
		t.Errorf("Missing status should default to %s, got %s", models.StatusActive, registro.Status)
	}

	body.Numero = "3001234567"
	body.Status = models.StatusInactive
	registro = body.toRegistro()
	if registro.Numero == nil || *registro.Numero != "3001234567" {
		t.Errorf("Non-empty numero should be kept, got %v", registro.Numero)
	}
	if registro.Status != models.StatusInactive {
		t.Errorf("Explicit status should be kept, got %s", registro.Status)
	}
}
