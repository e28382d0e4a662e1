package acta

import (
	"testing"

	"github.com/danielpatrickdp/hecatestia/go-controller/internal/protocol"
)

func spec(t *testing.T, c protocol.Command) protocol.Spec {
	t.Helper()
	s, ok := protocol.Lookup(c)
	if !ok {
		t.Fatalf("unknown command %s", c)
	}
	return s
}

// #region test-touch
func TestTouch_CreatesThenDeepens(t *testing.T) {
	g := NewGraph()

	n := g.Touch(spec(t, protocol.HEC), t0)
	if n.ID != "nodo-hec" || n.Type != "hec" || n.Depth != 1 || !n.Active {
		t.Fatalf("unexpected node: %+v", n)
	}
	if n.Coordinates.X != 100 || n.Coordinates.Y != 0 {
		t.Errorf("expected HEC at (100,0), got %+v", n.Coordinates)
	}

	n = g.Touch(spec(t, protocol.HEC), t0)
	if n.Depth != 2 {
		t.Errorf("expected depth 2, got %d", n.Depth)
	}
	if len(n.Connections) != 0 {
		t.Errorf("repeat activation should not self-connect, got %v", n.Connections)
	}
	if g.Len() != 1 {
		t.Errorf("expected 1 node, got %d", g.Len())
	}
}

func TestTouch_ConnectsConsecutiveNodes(t *testing.T) {
	g := NewGraph()
	g.Touch(spec(t, protocol.HEC), t0)
	g.Touch(spec(t, protocol.SOS), t0)
	g.Touch(spec(t, protocol.HEC), t0)

	hec, _ := g.Get("nodo-hec")
	sos, _ := g.Get("nodo-sos")
	if len(hec.Connections) != 1 || hec.Connections[0] != "nodo-sos" {
		t.Errorf("hec connections: %v", hec.Connections)
	}
	if len(sos.Connections) != 1 || sos.Connections[0] != "nodo-hec" {
		t.Errorf("sos connections: %v", sos.Connections)
	}
	if g.Last() != "nodo-hec" {
		t.Errorf("expected last nodo-hec, got %s", g.Last())
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	g := NewGraph()
	g.Touch(spec(t, protocol.HEC), t0)
	g.Touch(spec(t, protocol.ELE), t0)

	n, ok := g.Get("nodo-hec")
	if !ok {
		t.Fatal("expected nodo-hec")
	}
	n.Connections[0] = "tampered"
	again, _ := g.Get("nodo-hec")
	if again.Connections[0] != "nodo-ele" {
		t.Errorf("graph state leaked through copy: %v", again.Connections)
	}
}
// #endregion test-touch

// #region test-walk
func TestWalk(t *testing.T) {
	g := NewGraph()
	// chain hec - hes - ele - aut
	for _, c := range []protocol.Command{protocol.HEC, protocol.HES, protocol.ELE, protocol.AUT} {
		g.Touch(spec(t, c), t0)
	}

	ids := g.Walk("nodo-hec", 5, 100)
	want := []string{"nodo-hec", "nodo-hes", "nodo-ele", "nodo-aut"}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], ids[i])
		}
	}

	if got := g.Walk("nodo-hec", 1, 100); len(got) != 2 {
		t.Errorf("maxDepth=1: expected 2 nodes, got %v", got)
	}
	if got := g.Walk("nodo-hec", 5, 3); len(got) != 3 {
		t.Errorf("maxNodes=3: expected 3 nodes, got %v", got)
	}
	if got := g.Walk("missing", 5, 10); got != nil {
		t.Errorf("expected nil for unknown entry, got %v", got)
	}
}

func TestReset(t *testing.T) {
	g := NewGraph()
	g.Touch(spec(t, protocol.HEC), t0)
	g.Reset()
	if g.Len() != 0 || g.Last() != "" || len(g.Nodes()) != 0 {
		t.Error("expected empty graph after reset")
	}
}
// #endregion test-walk
