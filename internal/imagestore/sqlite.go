package imagestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/kanban/internal/db"
	"github.com/alexanderramin/kanban/internal/domain"
)

// SQLiteStore keeps images in the images table of the main database.
type SQLiteStore struct {
	db db.DBTX
}

func NewSQLiteStore(conn db.DBTX) *SQLiteStore {
	return &SQLiteStore{db: conn}
}

func (s *SQLiteStore) Put(ctx context.Context, data []byte, contentType string) (string, error) {
	contentType, err := prepare(data, contentType)
	if err != nil {
		return "", err
	}
	ref := Ref(data)
	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO images (ref, content_type, size, data, created_at) VALUES (?, ?, ?, ?, ?)`,
		ref, contentType, len(data), data, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("inserting image: %w", err)
	}
	return ref, nil
}

func (s *SQLiteStore) Get(ctx context.Context, ref string) (*Image, error) {
	if err := checkRef(ref); err != nil {
		return nil, err
	}
	img := &Image{Ref: ref}
	err := s.db.QueryRowContext(ctx,
		`SELECT content_type, data FROM images WHERE ref = ?`, ref).Scan(&img.ContentType, &img.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("image %s: %w", ref, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return img, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, ref string) error {
	if err := checkRef(ref); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM images WHERE ref = ?`, ref); err != nil {
		return fmt.Errorf("deleting image: %w", err)
	}
	return nil
}
