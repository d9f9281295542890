package core

import "time"

// StageMetric is the outcome of one converter or exporter pass.
type StageMetric struct {
	Name    string
	Items   int
	Failed  int
	Elapsed time.Duration
}

// AvgMs is the mean time per processed item, in milliseconds.
func (s StageMetric) AvgMs() float64 {
	n := s.Items + s.Failed
	if n == 0 {
		return 0
	}
	return float64(s.Elapsed.Microseconds()) / 1000.0 / float64(n)
}

// Metrics collects stage timings in the order they ran.
type Metrics struct {
	stages []StageMetric
}

func (m *Metrics) Record(name string, items, failed int, elapsed time.Duration) StageMetric {
	s := StageMetric{Name: name, Items: items, Failed: failed, Elapsed: elapsed}
	m.stages = append(m.stages, s)
	return s
}

func (m *Metrics) Stages() []StageMetric {
	return m.stages
}

// Total sums every recorded stage.
func (m *Metrics) Total() time.Duration {
	var d time.Duration
	for _, s := range m.stages {
		d += s.Elapsed
	}
	return d
}

// Slowest returns the stage with the largest elapsed time.
func (m *Metrics) Slowest() (StageMetric, bool) {
	if len(m.stages) == 0 {
		return StageMetric{}, false
	}
	slowest := m.stages[0]
	for _, s := range m.stages[1:] {
		if s.Elapsed > slowest.Elapsed {
			slowest = s
		}
	}
	return slowest, true
}
