package acta

import (
	"math"
	"time"

	"github.com/danielpatrickdp/hecatestia/go-controller/internal/protocol"
)

// #region types
// Graph holds the active thought nodes of a session keyed by opaque ID.
// Nodes are looked up by ID and returned as copies.
type Graph struct {
	nodes map[string]ThoughtNode
	order []string
	last  string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]ThoughtNode)}
}

// NodeID returns the stable node ID for a command.
func NodeID(c protocol.Command) string {
	return "nodo-" + c.Tag()
}
// #endregion types

// #region touch
// Touch activates the node for a command, creating it on first use and
// increasing its depth afterwards. The previously touched node and this one
// are connected both ways. Returns a copy of the node.
func (g *Graph) Touch(spec protocol.Spec, now time.Time) ThoughtNode {
	id := NodeID(spec.Command)
	n, ok := g.nodes[id]
	if !ok {
		n = ThoughtNode{
			ID:          id,
			Type:        spec.Command.Tag(),
			Label:       spec.Name,
			Description: spec.Description,
			Coordinates: layout(spec.Number),
			Connections: []string{},
			Timestamp:   now,
			Metadata:    map[string]any{"codigo": spec.Code},
		}
		g.order = append(g.order, id)
	}
	n.Active = true
	n.Depth++
	g.nodes[id] = n

	if g.last != "" && g.last != id {
		g.connect(g.last, id)
		g.connect(id, g.last)
	}
	g.last = id
	return g.nodes[id].Clone()
}

func (g *Graph) connect(from, to string) {
	n := g.nodes[from]
	for _, c := range n.Connections {
		if c == to {
			return
		}
	}
	n.Connections = append(n.Connections, to)
	g.nodes[from] = n
}

// layout spaces the eleven command nodes evenly on a circle of radius 100.
func layout(number int) Coordinates {
	angle := 2 * math.Pi * float64(number-1) / float64(len(protocol.Catalog))
	return Coordinates{
		X: math.Round(100*math.Cos(angle)*100) / 100,
		Y: math.Round(100*math.Sin(angle)*100) / 100,
	}
}
// #endregion touch

// #region lookup
// Get returns a copy of the node with the given ID.
func (g *Graph) Get(id string) (ThoughtNode, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return ThoughtNode{}, false
	}
	return n.Clone(), true
}

// Last returns the ID of the most recently touched node, or "".
func (g *Graph) Last() string { return g.last }

// Len returns the number of active nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Nodes returns copies of all nodes in creation order.
func (g *Graph) Nodes() []ThoughtNode {
	out := make([]ThoughtNode, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id].Clone())
	}
	return out
}

// Reset drops every node.
func (g *Graph) Reset() {
	g.nodes = make(map[string]ThoughtNode)
	g.order = nil
	g.last = ""
}
// #endregion lookup

// #region walk
// Walk performs a BFS from entryID over node connections, up to maxDepth hops
// and maxNodes total. Returns node IDs in visit order, entry first.
func (g *Graph) Walk(entryID string, maxDepth, maxNodes int) []string {
	if _, ok := g.nodes[entryID]; !ok {
		return nil
	}
	if maxDepth <= 0 {
		maxDepth = 5
	}
	if maxNodes <= 0 {
		maxNodes = 10
	}

	type queueItem struct {
		id    string
		depth int
	}
	result := []string{entryID}
	visited := map[string]bool{entryID: true}
	queue := []queueItem{{entryID, 0}}

	for len(queue) > 0 && len(result) < maxNodes {
		current := queue[0]
		queue = queue[1:]
		if current.depth >= maxDepth {
			continue
		}
		for _, next := range g.nodes[current.id].Connections {
			if len(result) >= maxNodes {
				break
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			result = append(result, next)
			queue = append(queue, queueItem{next, current.depth + 1})
		}
	}
	return result
}
// #endregion walk
