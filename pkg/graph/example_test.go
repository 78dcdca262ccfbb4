package graph_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/assetgraph/pkg/graph"
)

func ExampleReadVisualization() {
	data := `{
		"nodes": [
			{"id": "CL", "class": "commodity", "position": [-1, 0, 0]},
			{"id": "XOM", "name": "Exxon", "class": "equity", "position": [1, 0, 0]}
		],
		"edges": [{"source": "CL", "target": "XOM", "type": "commodity_exposure", "strength": 0.9}],
		"arrows": [{"source": "CL", "target": "XOM", "type": "commodity_exposure", "start": [-1, 0, 0], "end": [1, 0, 0]}],
		"seed": 42
	}`

	v, err := graph.ReadVisualization(strings.NewReader(data))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for _, n := range v.Nodes {
		fmt.Printf("%s (%s)\n", n.DisplayLabel(), n.Class)
	}
	fmt.Printf("arrow length: %.1f\n", v.Arrows[0].Length())
	// Output:
	// CL (commodity)
	// Exxon (equity)
	// arrow length: 2.0
}

func ExampleUnmarshalVisualization_invalid() {
	_, err := graph.UnmarshalVisualization([]byte(`{"nodes": [{"id": "a"}], "edges": [{"source": "a", "target": "b"}]}`))
	fmt.Println(err)
	// Output:
	// INVALID_FORMAT: edge a→b references an unknown node
}
