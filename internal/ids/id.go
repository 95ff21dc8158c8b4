// Package ids defines the opaque identifier type shared by every entity,
// event, and stream in rackd.
package ids

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"
)

// Id is a 128-bit opaque identifier. It is comparable and hashable so it
// can be used directly as a map key or struct field.
type Id uuid.UUID

// Nil is the zero value identifier.
var Nil = Id(uuid.Nil)

// New generates a fresh random identifier.
func New() Id {
	return Id(uuid.New())
}

// Parse parses the string form of an identifier.
func Parse(s string) (Id, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("parse id: %w", err)
	}
	return Id(u), nil
}

// MustParse parses s and panics on failure. Intended for constants in tests.
func MustParse(s string) Id {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id Id) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether id is the zero value.
func (id Id) IsNil() bool {
	return id == Nil
}

// MarshalJSON renders the identifier as its canonical string form.
func (id Id) MarshalJSON() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalJSON parses the canonical string form into id.
func (id *Id) UnmarshalJSON(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalJSON(data); err != nil {
		return err
	}
	*id = Id(u)
	return nil
}

// Value implements driver.Valuer so Id can be written directly by pgx.
func (id Id) Value() (driver.Value, error) {
	return id.String(), nil
}

// Scan implements sql.Scanner so Id can be read directly by pgx.
func (id *Id) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	case [16]byte:
		*id = Id(v)
		return nil
	case nil:
		*id = Nil
		return nil
	default:
		return fmt.Errorf("id: unsupported scan source %T", src)
	}
}
