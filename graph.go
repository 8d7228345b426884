package dart

import (
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

// nodeLabel mirrors the domain stack's TreeNode/LeafNode.GraphDescription:
// a short multi-line label describing the node for graph rendering.
func nodeLabel(n *Node, id int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d\n", n.SampleCount)
	fmt.Fprintf(&sb, "id: %d\n", id)
	fmt.Fprintf(&sb, "pos: %d\n", n.PositiveCount)
	if n.IsLeaf() {
		fmt.Fprintf(&sb, "p = %6.4f", n.Leaf.PredictedProbability)
	} else {
		fmt.Fprintf(&sb, "f_%d == 0?", n.Internal.ChosenFeature)
	}
	return sb.String()
}

func drawRecurrent(g *cgraph.Graph, n *Node, id *int, parent *cgraph.Node) error {
	myID := *id
	*id++

	gn, err := g.CreateNode(fmt.Sprint(myID))
	if err != nil {
		return err
	}
	gn.Set("label", nodeLabel(n, myID))
	if parent != nil {
		if _, err := g.CreateEdge("", parent, gn); err != nil {
			return err
		}
	}
	if n.IsLeaf() {
		gn.Set("shape", "box")
		return nil
	}
	if err := drawRecurrent(g, n.Internal.Left, id, gn); err != nil {
		return err
	}
	return drawRecurrent(g, n.Internal.Right, id, gn)
}

// DrawGraph renders tree's current shape to a graphviz graph, the same
// way the domain stack's OneTree.DrawGraph does. This is a pure,
// read-only debug view: nothing in the core build/predict/remove
// protocol depends on it.
func (t *Tree) DrawGraph() (*graphviz.Graphviz, *cgraph.Graph, error) {
	gv := graphviz.New()
	graph, err := gv.Graph()
	if err != nil {
		return nil, nil, err
	}
	id := 0
	if err := drawRecurrent(graph, t.Root, &id, nil); err != nil {
		return nil, nil, err
	}
	return gv, graph, nil
}

// RenderTree writes tree's current shape to path in the given graphviz
// format (e.g. graphviz.PNG, graphviz.SVG), adapted from the domain
// stack's EBooster.RenderTrees.
func (t *Tree) RenderTree(path string, format graphviz.Format) error {
	gv, graph, err := t.DrawGraph()
	if err != nil {
		return err
	}
	return gv.RenderFilename(graph, format, path)
}
