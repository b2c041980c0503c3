package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockPruner struct {
	cutoff int64
	err    error
}

func (m *MockPruner) DeleteBefore(ctx context.Context, ts int64) (int64, error) {
	m.cutoff = ts
	if m.err != nil {
		return 0, m.err
	}
	return 4, nil
}

func TestPruneIssuances(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	pruner := &MockPruner{}

	deleted, err := PruneIssuances(context.Background(), pruner, 24*time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
	assert.Equal(t, now.Add(-24*time.Hour).Unix(), pruner.cutoff)
}

func TestPruneIssuances_Error(t *testing.T) {
	_, err := PruneIssuances(context.Background(), &MockPruner{err: errors.New("locked")}, time.Hour, time.Now())
	assert.EqualError(t, err, "locked")
}
