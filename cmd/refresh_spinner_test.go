package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRefreshSpinnerReturnsFetchResult(t *testing.T) {
	var output bytes.Buffer
	count, err := runRefreshSpinner(context.Background(), &output, "Fetching...", 2, time.Now, func(context.Context) (int, error) {
		return 5, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.Contains(t, output.String(), "5 duplicate groups, 3 more than before")

	boom := errors.New("boom")
	_, err = runRefreshSpinner(context.Background(), &bytes.Buffer{}, "Fetching...", 0, time.Now, func(context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestRefreshSpinnerView(t *testing.T) {
	start := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	current := start
	m := newRefreshSpinnerModel("Fetching...", 4, nil, func() time.Time { return current })

	assert.Contains(t, m.View(), "Fetching...")
	assert.NotContains(t, m.View(), "0s")

	current = start.Add(3500 * time.Millisecond)
	assert.Contains(t, m.View(), "Fetching... 3s")

	current = start.Add(4 * time.Second)
	updated, _ := m.Update(refreshDoneMsg{count: 1})
	assert.Contains(t, updated.View(), "1 duplicate groups, 3 fewer than before (4s)")

	failed, _ := m.Update(refreshDoneMsg{err: errors.New("boom")})
	assert.Empty(t, failed.View())
}

func TestDescribeGroupDelta(t *testing.T) {
	assert.Equal(t, "2 more than before", describeGroupDelta(1, 3))
	assert.Equal(t, "1 fewer than before", describeGroupDelta(3, 2))
	assert.Equal(t, "unchanged", describeGroupDelta(3, 3))
}
