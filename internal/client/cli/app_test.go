package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gestdata/registrosgo/internal/client/api"
	"github.com/gestdata/registrosgo/internal/client/staging"
	"github.com/gestdata/registrosgo/internal/registro"
)

func newTestApp(t *testing.T, handler http.Handler) (*App, *staging.Store, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, _, err := staging.Open("")
	if err != nil {
		t.Fatalf("Failed to open staging store: %v", err)
	}

	app := NewApp(api.New(srv.URL), store)
	var out bytes.Buffer
	app.out = &out
	return app, store, &out
}

func TestDeleteTemporaryIsLocalOnly(t *testing.T) {
	var requests atomic.Int64
	app, store, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
	}))

	rec, err := store.AddOne(registro.Record{Proyecto: "Norte", Cedula: "1", Nombre: "Ana"})
	if err != nil {
		t.Fatalf("Failed to stage record: %v", err)
	}

	if err := app.Delete(context.Background(), rec.ID.String()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if store.Len() != 0 {
		t.Error("Staged record should be gone")
	}
	if requests.Load() != 0 {
		t.Errorf("Deleting a never-committed record must not reach the gateway, saw %d requests", requests.Load())
	}
}

func TestDeleteAuthoritativeHitsGateway(t *testing.T) {
	var requests atomic.Int64
	app, store, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.Method != http.MethodDelete || r.URL.Path != "/api/registros/7" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
	}))

	store.ReplaceAll([]registro.Record{{
		ID: registro.AuthoritativeID(7), Proyecto: "Norte", Cedula: "1", Nombre: "Ana",
	}})

	if err := app.Delete(context.Background(), "7"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if requests.Load() != 1 {
		t.Errorf("Expected exactly one gateway call, saw %d", requests.Load())
	}
	if store.Len() != 0 {
		t.Error("Record should also be removed locally")
	}
}

func TestLoginAttachesToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Username != "admin" || body.Password != "secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{"ok": false, "error": "Credenciales inválidas"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "token": "tok-123"})
	})
	var gotAuth string
	mux.HandleFunc("/api/registros/7", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
	})
	app, store, out := newTestApp(t, mux)

	if err := app.Login(context.Background(), "admin", "secret123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !strings.Contains(out.String(), "Sesión iniciada") {
		t.Errorf("Login output unexpected: %q", out.String())
	}

	store.ReplaceAll([]registro.Record{{
		ID: registro.AuthoritativeID(7), Proyecto: "Norte", Cedula: "1", Nombre: "Ana",
	}})
	if err := app.Delete(context.Background(), "7"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Expected session token on later calls, got %q", gotAuth)
	}
}

func TestLoginRejected(t *testing.T) {
	app, _, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": false, "error": "Credenciales inválidas"})
	}))

	if err := app.Login(context.Background(), "admin", "wrong"); err == nil {
		t.Fatal("Expected login to fail with bad credentials")
	}
}

func TestListEmpty(t *testing.T) {
	app, _, out := newTestApp(t, http.NewServeMux())

	app.List(context.Background())
	if !strings.Contains(out.String(), "No hay registros") {
		t.Errorf("Empty list output unexpected: %q", out.String())
	}
}
