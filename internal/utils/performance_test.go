package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformanceTrackerStats(t *testing.T) {
	pt := NewPerformanceTracker()
	pt.TrackOperation("analyze", 10*time.Millisecond)
	pt.TrackOperation("analyze", 30*time.Millisecond)
	pt.TrackOperation("align", 5*time.Millisecond)

	stats := pt.Stats()

	require.Len(t, stats, 2)
	assert.Equal(t, "align", stats[0].Operation)
	assert.Equal(t, "analyze", stats[1].Operation)
	assert.Equal(t, 2, stats[1].Count)
	assert.Equal(t, 20*time.Millisecond, stats[1].Average)
	assert.Equal(t, 30*time.Millisecond, stats[1].Max)
	assert.Equal(t, 40*time.Millisecond, stats[1].Total)
}

func TestPerformanceTrackerReport(t *testing.T) {
	pt := NewPerformanceTracker()
	pt.TrackOperation("analyze", 10*time.Millisecond)

	report := pt.GenerateAggregateReport()

	assert.Contains(t, report, "analyze")
	assert.Contains(t, report, "Count: 1")
}
