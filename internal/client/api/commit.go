package api

import (
	"context"

	"github.com/gestdata/registrosgo/internal/client/staging"
	"github.com/gestdata/registrosgo/internal/registro"
)

// CommitStaged is the "start process" operation: it sends the staged set to
// the gateway one record at a time, then reloads the authoritative list and
// swaps it into the staging store. Temporary ids never reach the wire, the
// create payload simply has no id field.
//
// Only records still carrying a temporary id are sent. Records with an
// authoritative id are already in the store — a previous commit or refresh
// put them there — and saving them again would duplicate them.
//
// Nothing to send commits trivially with no network traffic. The bulk
// result is returned even when the reconciliation fetch fails, so the caller
// can still report how many records were accepted.
func (c *Client) CommitStaged(ctx context.Context, store *staging.Store) (BulkResult, error) {
	var pending []registro.Record
	for _, rec := range store.Records() {
		if !rec.ID.IsAuthoritative() {
			pending = append(pending, rec)
		}
	}
	if len(pending) == 0 {
		return BulkResult{}, nil
	}

	result := c.SaveMany(ctx, pending)

	authoritative, err := c.FetchAll(ctx)
	if err != nil {
		return result, err
	}
	if err := store.ReplaceAll(authoritative); err != nil {
		return result, err
	}
	return result, nil
}
