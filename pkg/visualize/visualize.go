// Package visualize renders pivot chains as diagrams: the record source, the
// chained dimensions, and the bucket fan-out of the final grouping result.
package visualize

import (
	"fmt"

	"github.com/emicklei/dot"

	"github.com/pivotkit/pivotkit/pkg/pivot"
)

// Graph is the visualization graph of a pivot chain.
type Graph struct {
	Name       string
	Records    int
	Dimensions []DimensionNode
	Buckets    []BucketNode
}

// DimensionNode represents one grouping pass.
type DimensionNode struct {
	Label    string
	Position int
}

// BucketNode represents one composite key with its bucket size.
type BucketNode struct {
	Key  string
	Size int
}

// BuildGraph constructs a visualization graph from a grouping result.
func BuildGraph(res *pivot.Result, name string) *Graph {
	g := &Graph{
		Name:       name,
		Dimensions: make([]DimensionNode, 0, res.Depth()),
		Buckets:    make([]BucketNode, 0, res.Len()),
	}

	for _, d := range res.Dimensions() {
		g.Dimensions = append(g.Dimensions, DimensionNode{
			Label:    d.Label(),
			Position: d.Position,
		})
	}

	for _, k := range res.Keys() {
		bucket, _ := res.Bucket(k)
		g.Records += len(bucket)
		g.Buckets = append(g.Buckets, BucketNode{Key: k.String(), Size: len(bucket)})
	}

	return g
}

// BuildDotGraph creates a dot.Graph from the visualization graph. This
// unified graph can then be rendered in different formats (DOT, Mermaid).
func BuildDotGraph(g *Graph) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "LR") // Left to right layout.
	graph.Attr("label", g.Name)
	graph.Attr("labelloc", "t") // Label at top.
	graph.Attr("fontsize", "16")

	source := graph.Node("records").
		Attr("label", fmt.Sprintf("records (%d)", g.Records)).
		Attr("shape", "ellipse").
		Attr("style", "filled").
		Attr("fillcolor", "lightgreen")

	// Chain the dimension passes left to right.
	prev := source
	for _, d := range g.Dimensions {
		node := graph.Node(fmt.Sprintf("dim-%d", d.Position)).
			Attr("label", fmt.Sprintf("pivot: %s", d.Label)).
			Attr("shape", "box").
			Attr("style", "filled,rounded").
			Attr("fillcolor", "lightblue").
			Attr("color", "darkblue").
			Attr("penwidth", "2").
			Attr("fontname", "helvetica")
		graph.Edge(prev, node).
			Attr("fontname", "helvetica").
			Attr("fontsize", "10")
		prev = node
	}

	// Fan out from the last pass to the buckets.
	for i, b := range g.Buckets {
		node := graph.Node(fmt.Sprintf("bucket-%d", i)).
			Attr("label", b.Key).
			Attr("shape", "ellipse").
			Attr("style", "filled").
			Attr("fillcolor", "lightyellow")
		graph.Edge(prev, node).
			Attr("label", fmt.Sprintf("%d record(s)", b.Size)).
			Attr("fontname", "helvetica").
			Attr("fontsize", "10")
	}

	return graph
}
