package files

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/adscreen/pkg/query"
	"github.com/JaimeStill/adscreen/pkg/repository"
	"github.com/JaimeStill/adscreen/pkg/storage"
)

var projection = query.
	NewProjectionMap("public", "files", "f").
	Project("id", "ID").
	Project("storage_key", "StorageKey").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("created_at", "CreatedAt")

type repo struct {
	db      *sql.DB
	storage storage.System
	signer  *Signer
	logger  *slog.Logger
}

// New creates a file repository implementing the System interface.
func New(db *sql.DB, store storage.System, signer *Signer, logger *slog.Logger) System {
	return &repo{
		db:      db,
		storage: store,
		signer:  signer,
		logger:  logger.With("system", "files"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Save(ctx context.Context, data []byte, contentType string) (*File, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	id := uuid.New()
	key := StorageKey(id, contentType)

	if err := r.storage.Upload(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return nil, fmt.Errorf("upload image blob: %w", err)
	}

	q := `
		INSERT INTO files (id, storage_key, content_type, size_bytes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, storage_key, content_type, size_bytes, created_at`

	args := []any{id, key, contentType, int64(len(data))}

	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (File, error) {
		return repository.QueryOne(ctx, tx, q, args, scanFile)
	})
	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("image stored", "id", f.ID, "content_type", f.ContentType, "size", f.SizeBytes)
	return &f, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*File, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	f, err := repository.QueryOne(ctx, r.db, q, args, scanFile)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &f, nil
}

func (r *repo) Open(ctx context.Context, id uuid.UUID) (*File, *storage.Object, error) {
	f, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	obj, err := r.storage.Download(ctx, f.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	if obj.ContentType == "" {
		obj.ContentType = f.ContentType
	}
	if obj.ContentLength == 0 {
		obj.ContentLength = f.SizeBytes
	}
	return f, obj, nil
}

func (r *repo) SignURL(id uuid.UUID) (string, error) {
	return r.signer.URL(id)
}

func (r *repo) Verify(id uuid.UUID, token string) error {
	return r.signer.Verify(id, token)
}

// StorageKey returns the blob key for an image id, with an extension
// derived from its MIME type.
func StorageKey(id uuid.UUID, contentType string) string {
	return fmt.Sprintf("images/%s.%s", id, extension(contentType))
}

func extension(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "webp"):
		return "webp"
	case strings.Contains(contentType, "gif"):
		return "gif"
	default:
		return "jpg"
	}
}

func scanFile(s repository.Scanner) (File, error) {
	var f File
	err := s.Scan(&f.ID, &f.StorageKey, &f.ContentType, &f.SizeBytes, &f.CreatedAt)
	return f, err
}
