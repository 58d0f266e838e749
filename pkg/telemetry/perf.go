package telemetry

import (
	"log"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/koreacryo/icefx/pkg/systems"
)

// WindowStats summarizes one scheduler's frames over a completed window.
type WindowStats struct {
	Scheduler     string  `csv:"scheduler"`
	WindowEnd     uint64  `csv:"window_end"`
	Frames        int     `csv:"frames"`
	Dropped       int     `csv:"dropped"`
	AvgFrameUS    float64 `csv:"avg_frame_us"`
	StdFrameUS    float64 `csv:"std_frame_us"`
	MaxFrameUS    float64 `csv:"max_frame_us"`
	AvgPopulation float64 `csv:"avg_population"`
	MinPopulation int     `csv:"min_population"`
	MaxPopulation int     `csv:"max_population"`
}

// WindowWriter receives each completed window.
type WindowWriter interface {
	WriteWindow(stats WindowStats) error
}

// schedulerWindow rolling buffer for one scheduler
type schedulerWindow struct {
	durations  []float64 // microseconds
	population []float64
	dropped    int
	lastFrame  uint64
}

// PerfCollector implements systems.FrameObserver. It buffers per-scheduler
// frame samples and, every windowSize frames, hands a summary to the writer.
type PerfCollector struct {
	windowSize int
	writer     WindowWriter
	windows    map[string]*schedulerWindow
	last       map[string]WindowStats

	writeFailed bool
}

var _ systems.FrameObserver = (*PerfCollector)(nil)

// NewPerfCollector creates a collector.
// windowSize: number of frames per summary (e.g., 60 for 1 second at 60fps).
// writer may be nil; summaries are then only kept in memory.
func NewPerfCollector(windowSize int, writer WindowWriter) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		writer:     writer,
		windows:    make(map[string]*schedulerWindow),
		last:       make(map[string]WindowStats),
	}
}

// ObserveFrame records one frame sample.
func (p *PerfCollector) ObserveFrame(s systems.FrameSample) {
	w := p.windows[s.Scheduler]
	if w == nil {
		w = &schedulerWindow{
			durations:  make([]float64, 0, p.windowSize),
			population: make([]float64, 0, p.windowSize),
		}
		p.windows[s.Scheduler] = w
	}

	w.durations = append(w.durations, float64(s.Duration)/float64(time.Microsecond))
	w.population = append(w.population, float64(s.Population))
	if s.Dropped {
		w.dropped++
	}
	w.lastFrame = s.Frame

	if len(w.durations) >= p.windowSize {
		p.flush(s.Scheduler, w)
	}
}

// Last returns the most recent completed window for a scheduler.
func (p *PerfCollector) Last(scheduler string) (WindowStats, bool) {
	s, ok := p.last[scheduler]
	return s, ok
}

// Flush summarizes and emits every partially filled window.
func (p *PerfCollector) Flush() {
	for name, w := range p.windows {
		if len(w.durations) > 0 {
			p.flush(name, w)
		}
	}
}

func (p *PerfCollector) flush(name string, w *schedulerWindow) {
	stats := summarize(name, w)
	p.last[name] = stats

	w.durations = w.durations[:0]
	w.population = w.population[:0]
	w.dropped = 0

	if p.writer == nil {
		return
	}
	if err := p.writer.WriteWindow(stats); err != nil && !p.writeFailed {
		// 只记录第一次失败，避免每个窗口刷屏
		p.writeFailed = true
		log.Printf("[Telemetry] Warning: failed to write window: %v", err)
	}
}

func summarize(name string, w *schedulerWindow) WindowStats {
	meanDur, stdDur := stat.MeanStdDev(w.durations, nil)
	if len(w.durations) < 2 {
		stdDur = 0
	}

	maxDur := 0.0
	for _, d := range w.durations {
		maxDur = max(maxDur, d)
	}

	minPop, maxPop := int(w.population[0]), int(w.population[0])
	for _, v := range w.population[1:] {
		minPop = min(minPop, int(v))
		maxPop = max(maxPop, int(v))
	}

	return WindowStats{
		Scheduler:     name,
		WindowEnd:     w.lastFrame,
		Frames:        len(w.durations),
		Dropped:       w.dropped,
		AvgFrameUS:    meanDur,
		StdFrameUS:    stdDur,
		MaxFrameUS:    maxDur,
		AvgPopulation: stat.Mean(w.population, nil),
		MinPopulation: minPop,
		MaxPopulation: maxPop,
	}
}
