package utils

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// PerformanceTracker records per-operation durations so slow analysis
// requests can be spotted without external tooling.
type PerformanceTracker struct {
	metrics map[string][]time.Duration
	mu      sync.Mutex
}

func NewPerformanceTracker() *PerformanceTracker {
	return &PerformanceTracker{
		metrics: make(map[string][]time.Duration),
	}
}

func (pt *PerformanceTracker) TrackOperation(operation string, duration time.Duration) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if pt.metrics == nil {
		pt.metrics = make(map[string][]time.Duration)
	}
	pt.metrics[operation] = append(pt.metrics[operation], duration)
}

// OperationStats summarizes one tracked operation
type OperationStats struct {
	Operation string        `json:"operation"`
	Count     int           `json:"count"`
	Average   time.Duration `json:"average"`
	Max       time.Duration `json:"max"`
	Total     time.Duration `json:"total"`
}

// Stats returns per-operation summaries sorted by operation name
func (pt *PerformanceTracker) Stats() []OperationStats {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	stats := make([]OperationStats, 0, len(pt.metrics))
	for op, durations := range pt.metrics {
		var total, max time.Duration
		for _, d := range durations {
			total += d
			if d > max {
				max = d
			}
		}
		stats = append(stats, OperationStats{
			Operation: op,
			Count:     len(durations),
			Average:   total / time.Duration(len(durations)),
			Max:       max,
			Total:     total,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Operation < stats[j].Operation
	})

	return stats
}

func (pt *PerformanceTracker) GenerateAggregateReport() string {
	report := "Performance Report:\n"
	for _, s := range pt.Stats() {
		report += fmt.Sprintf("%s:\n", s.Operation)
		report += fmt.Sprintf("  Count: %d\n", s.Count)
		report += fmt.Sprintf("  Average: %v\n", s.Average)
		report += fmt.Sprintf("  Max: %v\n", s.Max)
		report += fmt.Sprintf("  Total: %v\n", s.Total)
	}
	return report
}
