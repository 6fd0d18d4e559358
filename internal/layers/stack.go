// Layers package replays an ordered stack of operations over an image
package layers

import (
	"fmt"
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"image-processing-engine/internal/algorithms"
	"image-processing-engine/internal/core"
)

// Layer represents one processing step
type Layer struct {
	ID        string
	Name      string
	Operation string
	Params    algorithms.Params
	Enabled   bool
	Opacity   float64 // 0.0 to 1.0
}

// Stack manages multiple processing layers
type Stack struct {
	mu     sync.RWMutex
	layers []*Layer
	logger logrus.FieldLogger
	nextID int
}

func NewStack(logger logrus.FieldLogger) *Stack {
	return &Stack{
		layers: make([]*Layer, 0),
		logger: logger,
		nextID: 1,
	}
}

// AddLayer appends an enabled, fully opaque layer and returns its ID
func (s *Stack) AddLayer(name, operation string, params algorithms.Params) (string, error) {
	if err := algorithms.ValidateParameters(operation, params); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("layer_%d", s.nextID)
	s.nextID++

	if name == "" {
		name = operation
	}
	s.layers = append(s.layers, &Layer{
		ID:        id,
		Name:      name,
		Operation: operation,
		Params:    params,
		Enabled:   true,
		Opacity:   1.0,
	})

	s.logger.WithFields(logrus.Fields{
		"layer_id":  id,
		"operation": operation,
	}).Debug("Layer added")

	return id, nil
}

func (s *Stack) find(id string) (int, error) {
	for i, l := range s.layers {
		if l.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("layer not found: %s", id)
}

// SetEnabled toggles a layer
func (s *Stack) SetEnabled(id string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.find(id)
	if err != nil {
		return err
	}
	s.layers[i].Enabled = enabled
	return nil
}

// SetOpacity sets a layer's opacity, clamped to [0, 1]
func (s *Stack) SetOpacity(id string, opacity float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.find(id)
	if err != nil {
		return err
	}
	switch {
	case opacity < 0 || math.IsNaN(opacity):
		opacity = 0
	case opacity > 1:
		opacity = 1
	}
	s.layers[i].Opacity = opacity
	return nil
}

// Remove deletes a layer
func (s *Stack) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.find(id)
	if err != nil {
		return err
	}
	s.layers = append(s.layers[:i], s.layers[i+1:]...)
	return nil
}

// Layers returns a snapshot of all layers
func (s *Stack) Layers() []Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Layer, len(s.layers))
	for i, l := range s.layers {
		result[i] = *l
	}
	return result
}

// Process applies all enabled layers to input. Two-operand layers take
// secondary as their second image. Any failure aborts the run.
func (s *Stack) Process(input, secondary *core.PixelBuffer) (*core.PixelBuffer, error) {
	if err := core.ValidateBuffer(input); err != nil {
		return nil, err
	}

	result := input.Clone()
	for _, layer := range s.Layers() {
		if !layer.Enabled {
			continue
		}

		processed, err := algorithms.Apply(layer.Operation, result, secondary, layer.Params)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"layer_id":  layer.ID,
				"operation": layer.Operation,
				"error":     err,
			}).Error("Layer failed")
			return nil, fmt.Errorf("layer %s (%s): %w", layer.ID, layer.Name, err)
		}

		if layer.Opacity < 1 {
			processed, err = algorithms.Blend(processed, result, layer.Opacity)
			if err != nil {
				return nil, fmt.Errorf("layer %s (%s): %w", layer.ID, layer.Name, err)
			}
		}

		s.logger.WithFields(logrus.Fields{
			"layer_id":  layer.ID,
			"operation": layer.Operation,
			"opacity":   layer.Opacity,
		}).Debug("Layer applied")

		result = processed
	}

	return result, nil
}
