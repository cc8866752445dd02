package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gestdata/registrosgo/internal/models"
	"github.com/gorilla/mux"
)

// CreateRegistroRequest is the create payload. The legacy frontend sent
// centro de operación in camelCase while everything else was already
// snake_case, so both spellings are accepted.
type CreateRegistroRequest struct {
	Proyecto             string `json:"proyecto"`
	CentroOperacion      string `json:"centro_operacion"`
	CentroOperacionCamel string `json:"centroOperacion"`
	Cargo                string `json:"cargo"`
	Cedula               string `json:"cedula"`
	Nombre               string `json:"nombre"`
	Numero               string `json:"numero"`
	Status               string `json:"status"`
}

// toRegistro maps the payload to the stored shape: snake_case wins over the
// legacy camelCase spelling, empty optionals become NULL, and a missing
// status falls back to active.
func (b CreateRegistroRequest) toRegistro() models.Registro {
	centro := b.CentroOperacion
	if centro == "" {
		centro = b.CentroOperacionCamel
	}
	status := b.Status
	if status == "" {
		status = models.StatusActive
	}

	return models.Registro{
		Proyecto:        b.Proyecto,
		CentroOperacion: models.OptionalField(centro),
		Cargo:           models.OptionalField(b.Cargo),
		Cedula:          b.Cedula,
		Nombre:          b.Nombre,
		Numero:          models.OptionalField(b.Numero),
		Status:          status,
	}
}

// listRegistros returns all stored records, newest first
func (r *Router) listRegistros(w http.ResponseWriter, req *http.Request) {
	var registros []models.Registro
	if err := r.db.Order("id DESC").Find(&registros).Error; err != nil {
		log.Printf("❌ Error fetching records: %v", err)
		respondError(w, http.StatusInternalServerError, "Error obteniendo registros")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":   true,
		"data": registros,
	})
}

// createRegistro persists a single record
func (r *Router) createRegistro(w http.ResponseWriter, req *http.Request) {
	var body CreateRegistroRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Payload inválido")
		return
	}

	if body.Proyecto == "" || body.Cedula == "" || body.Nombre == "" {
		respondError(w, http.StatusBadRequest, "Campos obligatorios faltantes")
		return
	}

	registro := body.toRegistro()
	if err := r.db.Create(&registro).Error; err != nil {
		log.Printf("❌ Error saving record: %v", err)
		respondError(w, http.StatusInternalServerError, "Error guardando registro")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"ok": true,
		"id": registro.ID,
	})
}

// deleteRegistro removes one record by id. Deleting an id that does not
// exist still reports ok, the operation is idempotent.
func (r *Router) deleteRegistro(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if err := r.db.Delete(&models.Registro{}, id).Error; err != nil {
		log.Printf("❌ Error deleting record %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Error eliminando registro")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// clearRegistros wipes the whole table. Idempotent: an already-empty table
// still reports ok.
func (r *Router) clearRegistros(w http.ResponseWriter, req *http.Request) {
	if err := r.db.Where("1 = 1").Delete(&models.Registro{}).Error; err != nil {
		log.Printf("❌ Error clearing records: %v", err)
		respondError(w, http.StatusInternalServerError, "Error limpiando registros")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}
