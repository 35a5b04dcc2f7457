// Package files persists submitted ad images and serves them through
// short-lived signed URLs.
package files

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/adscreen/pkg/storage"
)

// File is the metadata row for a stored image blob.
type File struct {
	ID          uuid.UUID `json:"id"`
	StorageKey  string    `json:"storage_key"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// System defines the image file contract.
type System interface {
	Handler() *Handler
	// Save uploads data and records it. The blob is removed again if the
	// record cannot be written.
	Save(ctx context.Context, data []byte, contentType string) (*File, error)
	Find(ctx context.Context, id uuid.UUID) (*File, error)
	// Open returns the record and its blob. The caller must close the body.
	Open(ctx context.Context, id uuid.UUID) (*File, *storage.Object, error)
	// SignURL returns a download path carrying a token for id.
	SignURL(id uuid.UUID) (string, error)
	// Verify checks a token issued by SignURL for id.
	Verify(id uuid.UUID, token string) error
}
