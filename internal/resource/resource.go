// Package resource implements list/create/retrieve/update/delete for rows
// owned by a single account. Every read and write is scoped by the owner
// predicate, so another account's id resolves to not found.
package resource

import (
	"context"
)

// Row is a table row owned by one account.
type Row interface {
	GetID() string
	GetOwnerID() string
	SetOwnerID(id string)
}

// Defaulter is implemented by rows with non-zero column defaults. Create
// calls it before applying the payload.
type Defaulter interface {
	SetDefaults()
}

// RowPtr lets generic code hold R by value and call Row methods on *R.
type RowPtr[R any] interface {
	*R
	Row
}

// Payload is a decoded request body. Validate collects every field error
// (required fields are skipped when partial); ApplyTo copies the fields the
// client sent onto the row.
type Payload[R any] interface {
	Validate(partial bool) error
	ApplyTo(row *R)
}

type PayloadPtr[T, R any] interface {
	*T
	Payload[R]
}

// Store is the repository for one owned resource type.
type Store[R any] interface {
	List(ctx context.Context, ownerID string) ([]R, error)
	Get(ctx context.Context, ownerID, id string) (R, error)
	Create(ctx context.Context, row *R) error
	Save(ctx context.Context, row *R) error
	Delete(ctx context.Context, ownerID, id string) error
}
