package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/assetgraph/pkg/errors"
)

// =============================================================================
// Visualization Serialization API
// =============================================================================

// MarshalVisualization converts a visualization to indented JSON bytes.
func MarshalVisualization(v Visualization) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(v, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalVisualization deserializes and validates JSON bytes.
func UnmarshalVisualization(data []byte) (Visualization, error) {
	return readFrom(bytes.NewReader(data))
}

// WriteVisualizationFile writes a visualization to a JSON file.
// The file is created with 0644 permissions.
func WriteVisualizationFile(v Visualization, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(v, f)
}

// WriteVisualization writes a visualization as JSON to an io.Writer.
func WriteVisualization(v Visualization, w io.Writer) error {
	return writeTo(v, w)
}

// ReadVisualizationFile reads and validates a JSON file.
func ReadVisualizationFile(path string) (Visualization, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Visualization{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Visualization{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readFrom(f)
}

// ReadVisualization decodes and validates a JSON visualization.
func ReadVisualization(r io.Reader) (Visualization, error) {
	return readFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTo(v Visualization, w io.Writer) error {
	// Encode empty collections as [] rather than null.
	if v.Nodes == nil {
		v.Nodes = []Node{}
	}
	if v.Edges == nil {
		v.Edges = []Edge{}
	}
	if v.Arrows == nil {
		v.Arrows = []Arrow{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (Visualization, error) {
	var v Visualization
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return Visualization{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode visualization")
	}
	if err := v.Validate(); err != nil {
		return Visualization{}, err
	}
	return v, nil
}
