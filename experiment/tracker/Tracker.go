// Package tracker implements Trackers, which track and save metric
// series generated during an experiment
package tracker

import (
	"encoding/json"
	"fmt"
	"os"
)

// Tracker keeps track of named metric series and saves them after the
// experiment has finished
type Tracker interface {
	Track(name string, value float64)
	Save(path string) error
}

// Metrics collects metric series keyed by name. Metrics can be stored
// once per run or once per training step; the saved JSON maps each
// name to its series, so downstream tooling can load and select
// metrics directly.
type Metrics struct {
	series map[string][]float64
}

// NewMetrics returns an empty Metrics tracker
func NewMetrics() *Metrics {
	return &Metrics{series: make(map[string][]float64)}
}

// Track appends value to the series of the named metric
func (m *Metrics) Track(name string, value float64) {
	m.series[name] = append(m.series[name], value)
}

// Series returns the recorded series of the named metric
func (m *Metrics) Series(name string) []float64 {
	return m.series[name]
}

// Save writes all recorded series to path as JSON
func (m *Metrics) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save: could not create metrics file: %v", err)
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(m.series); err != nil {
		return fmt.Errorf("save: could not encode metrics: %v", err)
	}
	return nil
}

// LoadMetrics loads and returns the metric series saved by a Metrics
// tracker
func LoadMetrics(path string) (map[string][]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loadMetrics: could not open metrics "+
			"file: %v", err)
	}
	defer file.Close()

	var series map[string][]float64
	if err := json.NewDecoder(file).Decode(&series); err != nil {
		return nil, fmt.Errorf("loadMetrics: could not decode metrics: %v",
			err)
	}
	return series, nil
}
