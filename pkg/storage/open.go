package storage

import (
	"context"
	"fmt"
	"log"
	"time"
)

// WatchDebounce is how long a key must stay quiet after an external change
// before its cached value is dropped
const WatchDebounce = 300 * time.Millisecond

// Open builds the gateway for a backend name: "file", "postgres" or
// "memory". The file backend is cached and watched for external edits.
// closeFn releases whatever Open acquired.
func Open(ctx context.Context, backend, dataDir, databaseURL string) (gw Gateway, closeFn func() error, err error) {
	switch backend {
	case "", "file":
		files, err := NewFileGateway(dataDir)
		if err != nil {
			return nil, nil, err
		}
		cached := NewCachedGateway(files, WatchDebounce)
		if err := files.Watch(cached.Invalidate); err != nil {
			return nil, nil, err
		}
		log.Printf("Watching %s for external changes", files.DataDir())
		return cached, func() error {
			cached.Close()
			return files.Close()
		}, nil

	case "postgres":
		if databaseURL == "" {
			return nil, nil, fmt.Errorf("postgres backend needs a database URL")
		}
		pg, err := NewPostgresGateway(ctx, databaseURL)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil

	case "memory":
		return NewMemoryGateway(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
