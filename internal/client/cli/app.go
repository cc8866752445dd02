// Package cli implements the interactive client over the staging cache and
// the sync client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/gestdata/registrosgo/internal/client/api"
	"github.com/gestdata/registrosgo/internal/client/importer"
	"github.com/gestdata/registrosgo/internal/client/staging"
	"github.com/gestdata/registrosgo/internal/registro"
)

// App wires the staging cache and the sync client behind the user-facing
// commands. Gateway failures never abort the app; they are reported and the
// working set stays as it was.
type App struct {
	client *api.Client
	store  *staging.Store
	out    io.Writer
}

// NewApp creates the client application
func NewApp(client *api.Client, store *staging.Store) *App {
	return &App{client: client, store: store, out: os.Stdout}
}

// Login authenticates against the gateway and keeps the token for the
// session.
func (a *App) Login(ctx context.Context, username, password string) error {
	if err := a.client.Login(ctx, username, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	fmt.Fprintln(a.out, "✅ Sesión iniciada")
	return nil
}

// Add validates and stages one draft
func (a *App) Add(_ context.Context, draft registro.Record) error {
	rec, err := a.store.AddOne(draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✅ Registro agregado (%s)\n", rec.ID)
	return nil
}

// Import parses a spreadsheet and stages the valid rows
func (a *App) Import(_ context.Context, path string) error {
	drafts, err := importer.ParseFile(path)
	if err != nil {
		return err
	}

	added, rejected, err := a.store.AddMany(drafts)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✅ %d registros cargados\n", len(added))
	for _, r := range rejected {
		fmt.Fprintf(a.out, "⚠️  Fila %d descartada: %v\n", r.Index+2, r.Err)
	}
	return nil
}

// List prints the current working set
func (a *App) List(_ context.Context) {
	records := a.store.Records()
	if len(records) == 0 {
		fmt.Fprintln(a.out, "No hay registros")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROYECTO\tCENTRO\tCARGO\tCEDULA\tNOMBRE\tNUMERO\tSTATUS")
	for _, rec := range records {
		id := rec.ID.String()
		if rec.ID.IsTemporary() {
			id = id[:8] + "… (sin guardar)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			id, rec.Proyecto, rec.CentroOperacion, rec.Cargo,
			rec.Cedula, rec.Nombre, rec.Numero, rec.Status)
	}
	w.Flush()
}

// Refresh replaces the working set with the authoritative list
func (a *App) Refresh(ctx context.Context) error {
	records, err := a.client.FetchAll(ctx)
	if err != nil {
		return err
	}
	if err := a.store.ReplaceAll(records); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✅ %d registros obtenidos\n", len(records))
	return nil
}

// Commit sends the staged set to the gateway and reconciles
func (a *App) Commit(ctx context.Context) error {
	result, err := a.client.CommitStaged(ctx, a.store)

	if result.Total == 0 && err == nil {
		fmt.Fprintln(a.out, "No hay registros para procesar")
		return nil
	}

	fmt.Fprintf(a.out, "✅ Procesados %d de %d registros\n", result.Accepted, result.Total)
	for _, f := range result.Failures {
		fmt.Fprintf(a.out, "⚠️  Registro %d (cédula %s) no guardado: %v\n", f.Index+1, f.Cedula, f.Err)
	}
	if err != nil {
		return fmt.Errorf("no se pudo recargar la lista: %w", err)
	}
	return nil
}

// Delete removes one record. Authoritative records are deleted durably and
// locally; a temporary record only ever existed here, so it is removed
// locally and nothing is sent to the gateway.
func (a *App) Delete(ctx context.Context, idStr string) error {
	id := registro.ParseID(idStr)
	if id.IsZero() {
		return errors.New("identificador vacío")
	}

	if err := a.client.DeleteOne(ctx, id); err != nil {
		return err
	}
	found, err := a.store.Remove(id)
	if err != nil {
		return err
	}
	if !found && id.IsTemporary() {
		return fmt.Errorf("registro %s no encontrado", idStr)
	}
	fmt.Fprintln(a.out, "✅ Registro eliminado")
	return nil
}

// Clear wipes the store and the local working set
func (a *App) Clear(ctx context.Context) error {
	if err := a.client.DeleteAll(ctx); err != nil {
		return err
	}
	if err := a.store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "✅ Todos los registros eliminados")
	return nil
}

// Export writes the working set to a spreadsheet
func (a *App) Export(_ context.Context, path string) error {
	if err := importer.ExportFile(path, a.store.Records()); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✅ Archivo exportado: %s\n", path)
	return nil
}

// Template writes an empty import template
func (a *App) Template(path string) error {
	if err := importer.WriteTemplate(path); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✅ Plantilla generada: %s\n", path)
	return nil
}
