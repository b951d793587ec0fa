package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/zhouzirui/folio/backend/internal/model/message"
)

// ErrUnsupportedScheme is returned by Open for unknown URI schemes.
var ErrUnsupportedScheme = errors.New("unsupported database uri scheme")

// Open connects to the store named by uri. The scheme selects the backend:
// mongodb and mongodb+srv use MongoDB, postgres and postgresql use
// PostgreSQL, memory keeps messages in process.
func Open(ctx context.Context, uri string) (message.Store, error) {
	parsed, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return nil, fmt.Errorf("parse database uri: %w", err)
	}

	switch strings.ToLower(parsed.Scheme) {
	case "mongodb", "mongodb+srv":
		store, err := NewMongoStore(ctx, uri)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "postgres", "postgresql":
		store, err := NewPostgresStore(ctx, uri)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "memory":
		return message.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, parsed.Scheme)
	}
}
