package broadcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()

	m.RecordPublished()
	m.RecordPublished()
	m.RecordPublishFailure()
	m.RecordBroadcast(3)
	m.RecordBroadcast(5)
	m.RecordBroadcastFailure()
	m.RecordNoWorkers()

	s := m.Snapshot()
	assert.Equal(t, 2, s.Published)
	assert.Equal(t, 1, s.PublishFailures)
	assert.Equal(t, 2, s.Broadcasts)
	assert.Equal(t, 8, s.WorkersNotified)
	assert.Equal(t, 1, s.BroadcastFailed)
	assert.Equal(t, 1, s.NoWorkersFound)
	assert.Equal(t, 5, s.LastMatchedCount)
	require.NotNil(t, s.LastBroadcastAt)
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()

	m.RecordPublished()
	m.RecordBroadcast(4)
	m.RecordNoWorkers()
	m.Reset()

	s := m.Snapshot()
	assert.Equal(t, 0, s.Published)
	assert.Equal(t, 0, s.Broadcasts)
	assert.Equal(t, 0, s.WorkersNotified)
	assert.Equal(t, 0, s.NoWorkersFound)
	assert.Equal(t, 0, s.LastMatchedCount)
	assert.Nil(t, s.LastBroadcastAt)
}

func TestMetricsEmptySnapshot(t *testing.T) {
	s := NewMetrics().Snapshot()
	assert.Equal(t, 0, s.Published)
	assert.Nil(t, s.LastBroadcastAt)
}
