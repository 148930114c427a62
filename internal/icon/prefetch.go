package icon

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Prefetch looks up every named icon concurrently so caches are warm before
// the first render. The first failure cancels the remaining lookups.
func Prefetch(ctx context.Context, p Provider, names []string, workers int) error {
	if workers <= 0 {
		workers = 4
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, name := range names {
		g.Go(func() error {
			if _, err := p.Icon(ctx, name); err != nil {
				return fmt.Errorf("prefetch icon %s: %w", name, err)
			}
			log.Debugf("Prefetched icon %s", name)
			return nil
		})
	}

	return g.Wait()
}
