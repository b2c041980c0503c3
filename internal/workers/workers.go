package workers

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type IssuancePruner interface {
	DeleteBefore(ctx context.Context, ts int64) (int64, error)
}

// PruneIssuances deletes issuance log entries older than retention.
func PruneIssuances(ctx context.Context, repo IssuancePruner, retention time.Duration, now time.Time) (int64, error) {
	cutoff := now.Add(-retention).Unix()

	deleted, err := repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Int64("cutoff", cutoff).Msg("worker: failed to prune issuances")
		return 0, err
	}

	log.Info().Int64("deleted", deleted).Int64("cutoff", cutoff).Msg("worker: pruned issuances")
	return deleted, nil
}
