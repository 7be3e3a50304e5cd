package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the identity shared by every collection.
// Seq is assigned by the store and grows with each insert; "latest" listings sort on it.
type Base struct {
	ID        uuid.UUID `db:"id"`
	Seq       int64     `db:"seq"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func NewBase(now time.Time) Base {
	return Base{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
