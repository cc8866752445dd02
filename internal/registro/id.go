// Package registro holds the client-side record shape shared by the staging
// cache, the importer and the sync client.
package registro

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ID identifies a record on the client. It is either temporary (a random
// token assigned when the record enters the staging cache, never persisted)
// or authoritative (the integer the store assigned on insert). A zero ID
// marks a draft that has not been staged yet.
type ID struct {
	token string
	num   int64
}

// NewTemporaryID returns a fresh temporary identifier
func NewTemporaryID() ID {
	return ID{token: strings.ReplaceAll(uuid.NewString(), "-", "")}
}

// AuthoritativeID wraps a store-assigned integer identifier
func AuthoritativeID(n int64) ID {
	return ID{num: n}
}

// ParseID interprets a serialized identifier: decimal strings are
// authoritative, anything else is a temporary token.
func ParseID(s string) ID {
	if s == "" {
		return ID{}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return AuthoritativeID(n)
	}
	return ID{token: s}
}

// IsZero reports whether the identifier is unset
func (id ID) IsZero() bool {
	return id.token == "" && id.num == 0
}

// IsTemporary reports whether the identifier is a client-generated token
func (id ID) IsTemporary() bool {
	return id.token != ""
}

// IsAuthoritative reports whether the identifier was assigned by the store
func (id ID) IsAuthoritative() bool {
	return id.token == "" && id.num != 0
}

// Num returns the store-assigned integer and whether the id is authoritative
func (id ID) Num() (int64, bool) {
	if !id.IsAuthoritative() {
		return 0, false
	}
	return id.num, true
}

// String returns the display form of the identifier
func (id ID) String() string {
	if id.token != "" {
		return id.token
	}
	if id.num != 0 {
		return strconv.FormatInt(id.num, 10)
	}
	return ""
}

// MarshalJSON serializes the identifier in its string form
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON restores an identifier from its string form
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*id = ParseID(s)
	return nil
}
