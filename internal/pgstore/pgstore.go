// Package pgstore is a Postgres-backed snapshot source: it reads the
// latest published snapshot JSON for a container and feeds it through
// wire.LoadAndPublish, so a config can be rolled out by inserting a row
// rather than redeploying a binary (spec §4.5's parse boundary, fed from
// a real source instead of a test fixture).
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/konditional-dev/konditional/hooks"
	"github.com/konditional-dev/konditional/registry"
	"github.com/konditional-dev/konditional/wire"
)

// Source reads snapshot rows from a konditional_snapshots table:
//
//	CREATE TABLE konditional_snapshots (
//	  container    text NOT NULL,
//	  payload      jsonb NOT NULL,
//	  generated_at timestamptz NOT NULL DEFAULT now()
//	);
type Source struct {
	pool *pgxpool.Pool
}

// NewSource wraps an existing pool. The caller owns the pool's lifecycle.
func NewSource(pool *pgxpool.Pool) *Source {
	return &Source{pool: pool}
}

// ErrNoSnapshot is returned when a container has no published row yet.
var ErrNoSnapshot = errors.New("pgstore: no snapshot published for container")

// FetchLatest returns the most recently inserted payload for container.
func (s *Source) FetchLatest(ctx context.Context, container string) ([]byte, error) {
	var payload []byte
	row := s.pool.QueryRow(ctx,
		`SELECT payload FROM konditional_snapshots WHERE container = $1 ORDER BY generated_at DESC LIMIT 1`,
		container,
	)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("pgstore: fetch latest for %q: %w", container, err)
	}
	return payload, nil
}

// Publish inserts a new snapshot row for container. Nothing on the
// evaluation hot path calls it.
func (s *Source) Publish(ctx context.Context, container string, payload []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO konditional_snapshots (container, payload, generated_at) VALUES ($1, $2, now())`,
		container, payload,
	)
	if err != nil {
		return fmt.Errorf("pgstore: publish for %q: %w", container, err)
	}
	return nil
}

// Watch polls FetchLatest every interval and republishes into dst via
// wire.LoadAndPublish until ctx is cancelled. A decode failure is
// reported through dst's hooks (ConfigLoadEvent{Success:false} plus a
// warning log); a fetch failure is only logged as a warning, and
// ErrNoSnapshot is skipped silently. Either way the previously published
// snapshot keeps serving traffic, per spec §4.5's "a failed load never
// touches the registry."
func Watch(ctx context.Context, src *Source, container string, dst *registry.Container, schema *wire.Schema, opts wire.Options, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	poll := func() {
		payload, err := src.FetchLatest(ctx, container)
		if err != nil {
			if !errors.Is(err, ErrNoSnapshot) {
				dst.Hooks().Logger.Warn(fmt.Sprintf("pgstore watch fetch failed for %s", container), err)
			}
			return
		}
		if perr := wire.LoadAndPublish(dst, schema, payload, opts); perr != nil {
			dst.Hooks().Metrics.RecordConfigLoad(hooks.ConfigLoadEvent{
				ContainerID: container,
				Success:     false,
				Reason:      perr.Reason,
			})
			dst.Hooks().Logger.Warn(fmt.Sprintf("pgstore watch decode failed for %s", container), perr)
			return
		}
		dst.Hooks().Metrics.RecordConfigLoad(hooks.ConfigLoadEvent{
			ContainerID: container,
			Version:     dst.Current().Metadata.Version,
			FlagCount:   len(dst.Current().Flags),
			Success:     true,
		})
	}

	poll()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poll()
		}
	}
}
