// Package api is the sync client: it bridges the staging cache's local
// record shape to the persistence gateway's wire shape and reconciles
// authoritative state back.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gestdata/registrosgo/internal/registro"
)

// TransportError wraps a network or connection failure
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a non-ok envelope from the gateway
type StatusError struct {
	Op      string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Op, e.Status)
}

// ItemFailure records why one draft of a bulk save was not persisted
type ItemFailure struct {
	Index  int
	Cedula string
	Err    error
}

// BulkResult summarizes a sequential best-effort bulk save
type BulkResult struct {
	Accepted int
	Total    int
	Failures []ItemFailure
}

// Client talks to the persistence gateway
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a gateway client for the given base URL
func New(baseURL string) *Client {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
					return dialer.DialContext(ctx, network, addr)
				},
				MaxIdleConns:    10,
				IdleConnTimeout: 90 * time.Second,
			},
		},
	}
}

// SetToken attaches a bearer token to subsequent requests
func (c *Client) SetToken(token string) {
	c.token = token
}

// wireRegistro is the gateway's record shape (snake_case, NULLs for empty
// optional fields).
type wireRegistro struct {
	ID              int64   `json:"id"`
	Proyecto        string  `json:"proyecto"`
	CentroOperacion *string `json:"centro_operacion"`
	Cargo           *string `json:"cargo"`
	Cedula          string  `json:"cedula"`
	Nombre          string  `json:"nombre"`
	Numero          *string `json:"numero"`
	Status          string  `json:"status"`
}

func (w wireRegistro) toRecord() registro.Record {
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	return registro.Record{
		ID:              registro.AuthoritativeID(w.ID),
		Proyecto:        w.Proyecto,
		CentroOperacion: deref(w.CentroOperacion),
		Cargo:           deref(w.Cargo),
		Cedula:          w.Cedula,
		Nombre:          w.Nombre,
		Numero:          deref(w.Numero),
		Status:          w.Status,
	}
}

// createPayload is the create body. Temporary ids are never sent to the
// store, so there is no id field here at all.
type createPayload struct {
	Proyecto        string `json:"proyecto"`
	CentroOperacion string `json:"centro_operacion"`
	Cargo           string `json:"cargo"`
	Cedula          string `json:"cedula"`
	Nombre          string `json:"nombre"`
	Numero          string `json:"numero"`
	Status          string `json:"status"`
}

// do issues one request and decodes the envelope into out, which must
// carry the ok/error fields alongside the operation's payload.
func (c *Client) do(ctx context.Context, op, method, path string, body interface{}, out envelope) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("%s: failed to marshal payload: %w", op, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if out == nil {
		out = &okEnvelope{}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode >= 400 || !out.isOK() {
		return &StatusError{Op: op, Status: resp.StatusCode, Message: out.errMessage()}
	}
	return nil
}

// envelope is the common shape of every gateway response
type envelope interface {
	isOK() bool
	errMessage() string
}

type okEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (e *okEnvelope) isOK() bool { return e.OK }

func (e *okEnvelope) errMessage() string { return e.Error }

// Login exchanges credentials for a bearer token and attaches it to the
// client.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var out struct {
		okEnvelope
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", body, &out); err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

// FetchAll lists the authoritative record set, newest first
func (c *Client) FetchAll(ctx context.Context) ([]registro.Record, error) {
	var out struct {
		okEnvelope
		Data []wireRegistro `json:"data"`
	}
	if err := c.do(ctx, "fetch records", http.MethodGet, "/api/registros", nil, &out); err != nil {
		return nil, err
	}

	records := make([]registro.Record, 0, len(out.Data))
	for _, w := range out.Data {
		records = append(records, w.toRecord())
	}
	return records, nil
}

// SaveOne persists a single record and returns the assigned id
func (c *Client) SaveOne(ctx context.Context, rec registro.Record) (int64, error) {
	payload := createPayload{
		Proyecto:        rec.Proyecto,
		CentroOperacion: rec.CentroOperacion,
		Cargo:           rec.Cargo,
		Cedula:          rec.Cedula,
		Nombre:          rec.Nombre,
		Numero:          rec.Numero,
		Status:          rec.Status,
	}

	var out struct {
		okEnvelope
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, "save record", http.MethodPost, "/api/registros", payload, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// SaveMany persists records one request at a time, best effort: a rejected
// or unreachable item is recorded and the loop moves on. Nothing is retried.
func (c *Client) SaveMany(ctx context.Context, recs []registro.Record) BulkResult {
	result := BulkResult{Total: len(recs)}
	for i, rec := range recs {
		if _, err := c.SaveOne(ctx, rec); err != nil {
			result.Failures = append(result.Failures, ItemFailure{
				Index:  i,
				Cedula: rec.Cedula,
				Err:    err,
			})
			continue
		}
		result.Accepted++
	}
	return result
}

// DeleteOne removes a record from the store. A temporary id was never
// persisted, so no request is issued for it.
func (c *Client) DeleteOne(ctx context.Context, id registro.ID) error {
	n, ok := id.Num()
	if !ok {
		return nil
	}
	return c.do(ctx, "delete record", http.MethodDelete, fmt.Sprintf("/api/registros/%d", n), nil, nil)
}

// DeleteAll wipes every stored record
func (c *Client) DeleteAll(ctx context.Context) error {
	return c.do(ctx, "clear records", http.MethodDelete, "/api/registros", nil, nil)
}
