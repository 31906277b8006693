package engine

import (
	"sync"
	"time"
)

// Defaults for NewFrameTraceBuffer.
const (
	DefaultTraceCapacity = 240
	DefaultFrameBudget   = 16667 * time.Microsecond
)

// FramePhaseTimings is the wall time of each frame phase in milliseconds.
type FramePhaseTimings struct {
	LayoutMs   float64 `json:"layoutMs"`
	DispatchMs float64 `json:"dispatchMs"`
	PaintMs    float64 `json:"paintMs"`
}

// FrameCounts is the work one frame did.
type FrameCounts struct {
	LaidOutWindows int `json:"laidOutWindows"`
	PaintedWindows int `json:"paintedWindows"`
	LayoutSteps    int `json:"layoutSteps"`
	ChildRequests  int `json:"childRequests"`
	Messages       int `json:"messages"`
	TaggedRegions  int `json:"taggedRegions"`
	WidgetCount    int `json:"widgetCount"`
}

// FrameSample describes one call to App.Frame.
type FrameSample struct {
	Frame     uint64            `json:"frame"`
	Timestamp int64             `json:"ts"`
	FrameMs   float64           `json:"frameMs"`
	Phases    FramePhaseTimings `json:"phases"`
	Counts    FrameCounts       `json:"counts"`
}

// FrameTimeline is the retained samples, oldest first.
type FrameTimeline struct {
	Samples []FrameSample `json:"samples"`
	// OverBudget counts every recorded frame slower than BudgetMs, including
	// frames that have since been evicted.
	OverBudget int     `json:"overBudget"`
	BudgetMs   float64 `json:"budgetMs"`
}

// FrameSummary aggregates the retained samples.
type FrameSummary struct {
	Frames        int
	MeanMs        float64
	Slowest       FrameSample
	LayoutSteps   int
	ChildRequests int
	Messages      int
}

// FrameTraceBuffer keeps the most recent frame samples. It is safe for
// concurrent use, so a trace can be read while the loop runs.
type FrameTraceBuffer struct {
	mu         sync.RWMutex
	ring       []FrameSample
	next       int
	full       bool
	overBudget int
	budget     time.Duration
}

// NewFrameTraceBuffer retains up to capacity samples and counts frames
// slower than budget. Non-positive arguments select the defaults.
func NewFrameTraceBuffer(capacity int, budget time.Duration) *FrameTraceBuffer {
	if capacity <= 0 {
		capacity = DefaultTraceCapacity
	}
	if budget <= 0 {
		budget = DefaultFrameBudget
	}
	return &FrameTraceBuffer{ring: make([]FrameSample, capacity), budget: budget}
}

// Capacity returns the number of samples retained.
func (b *FrameTraceBuffer) Capacity() int {
	return len(b.ring)
}

// Add records a sample, evicting the oldest when full.
func (b *FrameTraceBuffer) Add(sample FrameSample, took time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ring[b.next] = sample
	b.next++
	if b.next == len(b.ring) {
		b.next = 0
		b.full = true
	}
	if took > b.budget {
		b.overBudget++
	}
}

// Snapshot copies the retained samples in frame order.
func (b *FrameTraceBuffer) Snapshot() FrameTimeline {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return FrameTimeline{
		Samples:    b.ordered(),
		OverBudget: b.overBudget,
		BudgetMs:   durationToMillis(b.budget),
	}
}

// Summary aggregates the retained samples.
func (b *FrameTraceBuffer) Summary() FrameSummary {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var s FrameSummary
	var total float64
	for _, sample := range b.ordered() {
		s.Frames++
		total += sample.FrameMs
		if s.Frames == 1 || sample.FrameMs > s.Slowest.FrameMs {
			s.Slowest = sample
		}
		s.LayoutSteps += sample.Counts.LayoutSteps
		s.ChildRequests += sample.Counts.ChildRequests
		s.Messages += sample.Counts.Messages
	}
	if s.Frames > 0 {
		s.MeanMs = total / float64(s.Frames)
	}
	return s
}

// ordered returns the samples oldest first. Callers hold mu.
func (b *FrameTraceBuffer) ordered() []FrameSample {
	if !b.full {
		return append([]FrameSample(nil), b.ring[:b.next]...)
	}
	out := make([]FrameSample, 0, len(b.ring))
	out = append(out, b.ring[b.next:]...)
	return append(out, b.ring[:b.next]...)
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
