package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	tferrors "github.com/matzehuels/tierflow/pkg/errors"
	"github.com/matzehuels/tierflow/pkg/flow"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a flow graph to indented JSON bytes.
func MarshalGraph(g flow.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph decodes JSON bytes into a validated flow graph.
func UnmarshalGraph(data []byte) (flow.Graph, error) {
	return readGraphFrom(bytes.NewReader(data))
}

// WriteGraphFile writes a flow graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g flow.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// WriteGraph writes a flow graph as JSON to an io.Writer.
func WriteGraph(g flow.Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadGraphFile reads a JSON file and returns the decoded flow graph.
func ReadGraphFile(path string) (flow.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return flow.Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// ReadGraph decodes a JSON graph from an io.Reader. Graphs that violate the
// snapshot invariants are rejected with an INVALID_GRAPH error.
func ReadGraph(r io.Reader) (flow.Graph, error) {
	return readGraphFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g flow.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromFlow(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (flow.Graph, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return flow.Graph{}, fmt.Errorf("decode: %w", err)
	}
	g, err := ToFlow(data)
	if err != nil {
		return flow.Graph{}, tferrors.Wrap(tferrors.ErrCodeInvalidGraph, err, "invalid flow graph")
	}
	return g, nil
}
