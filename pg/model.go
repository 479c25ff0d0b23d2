package pg

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Timestamps can be embedded in Bun models to maintain created_at and updated_at.
type Timestamps struct {
	CreatedAt time.Time `bun:",nullzero,notnull" json:"created_at"`
	UpdatedAt time.Time `bun:",nullzero,notnull" json:"updated_at"`
}

var _ bun.BeforeAppendModelHook = (*Timestamps)(nil)

// BeforeAppendModel stamps the fields on insert and update.
func (m *Timestamps) BeforeAppendModel(_ context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		m.UpdatedAt = now
	case *bun.UpdateQuery:
		m.UpdatedAt = now
	}
	return nil
}
