package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Lightweight process-wide stage timer and counter set for meshing runs.

var (
	mu       sync.Mutex
	totals   = make(map[string]time.Duration)
	calls    = make(map[string]int)
	counters = make(map[string]int64)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("meshing.Batch")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		totals[name] += d
		calls[name]++
		mu.Unlock()
	}
}

// Count adds n to the named counter.
func Count(name string, n int) {
	mu.Lock()
	counters[name] += int64(n)
	mu.Unlock()
}

// Reset clears all timings and counters.
func Reset() {
	mu.Lock()
	clear(totals)
	clear(calls)
	clear(counters)
	mu.Unlock()
}

// Snapshot returns a copy of the accumulated durations.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(totals))
	for k, v := range totals {
		out[k] = v
	}
	return out
}

// Calls returns how many times the named stage was tracked.
func Calls(name string) int {
	mu.Lock()
	defer mu.Unlock()
	return calls[name]
}

// Counters returns a copy of the accumulated counters.
func Counters() map[string]int64 {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]int64, len(counters))
	for k, v := range counters {
		out[k] = v
	}
	return out
}

// TopN formats the n slowest stages.
// Example: "meshing.Batch:4.2ms (12x), meshing.Index:2.1ms (12x)"
func TopN(n int) string {
	ss := Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ms := float64(list[i].dur.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms (%dx)", list[i].name, ms, Calls(list[i].name)))
	}
	return strings.Join(parts, ", ")
}
