// Package classifier implements the prediction capability behind the
// prediction service: a nearest-centroid model over fixed-width feature
// vectors, persisted with gob.
package classifier

import (
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
)

var (
	// ErrNotTrained is returned by Predict before any Fit call.
	ErrNotTrained = errors.New("model is not trained")
	// ErrBadInput is returned for empty or mismatched training/predict data.
	ErrBadInput = errors.New("invalid input data")
)

// centroid is the mean feature vector of one class.
type centroid struct {
	Label float64
	Mean  []float64
	Count int
}

// Model is a nearest-centroid classifier. It is safe for concurrent use;
// Fit replaces the centroids atomically under the lock.
type Model struct {
	mu        sync.RWMutex
	Centroids []centroid
	Width     int
}

// New returns an untrained model.
func New() *Model {
	return &Model{}
}

// Trained reports whether the model has been fitted.
func (m *Model) Trained() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Centroids) > 0
}

// Fit trains the model on the given samples and returns the training
// accuracy. All feature vectors must share one width and labels must align
// with features.
func (m *Model) Fit(features [][]float64, labels []float64) (float64, error) {
	if len(features) == 0 || len(features) != len(labels) {
		return 0, ErrBadInput
	}
	width := len(features[0])
	if width == 0 {
		return 0, ErrBadInput
	}

	sums := make(map[float64][]float64)
	counts := make(map[float64]int)
	for i, fv := range features {
		if len(fv) != width {
			return 0, fmt.Errorf("%w: feature vector %d has width %d, want %d", ErrBadInput, i, len(fv), width)
		}
		label := labels[i]
		if sums[label] == nil {
			sums[label] = make([]float64, width)
		}
		for j, v := range fv {
			sums[label][j] += v
		}
		counts[label]++
	}

	centroids := make([]centroid, 0, len(sums))
	for label, sum := range sums {
		mean := make([]float64, width)
		for j := range sum {
			mean[j] = sum[j] / float64(counts[label])
		}
		centroids = append(centroids, centroid{Label: label, Mean: mean, Count: counts[label]})
	}

	m.mu.Lock()
	m.Centroids = centroids
	m.Width = width
	m.mu.Unlock()

	// Training accuracy against the fitted centroids.
	correct := 0
	for i, fv := range features {
		pred, _, err := m.Predict(fv)
		if err == nil && pred == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(features)), nil
}

// Predict classifies one feature vector and returns the winning label with a
// confidence in (0, 1]. Confidence is the inverse-distance weight of the
// winning centroid relative to all centroids.
func (m *Model) Predict(features []float64) (float64, float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.Centroids) == 0 {
		return 0, 0, ErrNotTrained
	}
	if len(features) != m.Width {
		return 0, 0, fmt.Errorf("%w: feature vector has width %d, want %d", ErrBadInput, len(features), m.Width)
	}

	const eps = 1e-9
	best := 0
	bestDist := math.Inf(1)
	weightSum := 0.0
	weights := make([]float64, len(m.Centroids))
	for i, c := range m.Centroids {
		d := euclidean(features, c.Mean)
		if d < bestDist {
			bestDist = d
			best = i
		}
		weights[i] = 1 / (d + eps)
		weightSum += weights[i]
	}

	return m.Centroids[best].Label, weights[best] / weightSum, nil
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Save writes the model to path, creating parent directories as needed.
func (m *Model) Save(path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	defer f.Close()

	snapshot := struct {
		Centroids []centroid
		Width     int
	}{m.Centroids, m.Width}
	if err := gob.NewEncoder(f).Encode(&snapshot); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return nil
}

// Load reads a model from path. A missing file yields a fresh untrained
// model rather than an error, so first startup works without seed data.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open model file: %w", err)
	}
	defer f.Close()

	var snapshot struct {
		Centroids []centroid
		Width     int
	}
	if err := gob.NewDecoder(f).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	return &Model{Centroids: snapshot.Centroids, Width: snapshot.Width}, nil
}
