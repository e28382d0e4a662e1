package acta

import (
	"errors"
	"fmt"
	"time"

	"github.com/danielpatrickdp/hecatestia/go-controller/internal/protocol"
)

// ErrClosed is returned when mutating a closed record.
var ErrClosed = errors.New("acta is closed")

// #region defaults
// DefaultKeys returns the display strings stored under each protocol key.
func DefaultKeys() map[string]string {
	return map[string]string{
		string(protocol.KeyMenu):   "ACTIVAR_MENU_HUMANO",
		string(protocol.KeyChild):  "GENERAR_ACTA_HIJA",
		string(protocol.KeyHestia): "HESTIA",
		string(protocol.KeyHec):    "HECATE",
		string(protocol.KeyEle):    "ELEUTERIA",
		string(protocol.KeyAut):    protocol.HiddenAuthor,
		string(protocol.KeyArc):    "[1·18·3] + [ARC_ACTUAL]",
		string(protocol.KeyGen):    "[7·5·14]",
	}
}

// DefaultConditions returns the standing conditions of a fresh record.
func DefaultConditions() []string {
	return []string{
		"SI_ENTRADA = [RA] O [18·1] → EJECUTAR [MENU_HUMANO]",
		"SI_ENTRADA = [OM_RE_RA] O [15·13·18·5·18·1] → EJECUTAR [GENERAR_ACTA_HIJA]",
		"REGISTRAR_MODIFICACIONES_EN [2]",
		"HEREDAR [2] EN CADA_ACTA_HIJA",
	}
}
// #endregion defaults

// #region constructor
// NewInitial creates an open root record.
func NewInitial(id string, now time.Time) Acta {
	return Acta{
		Version:        protocol.Version,
		ID:             id,
		Hash:           Checksum(fmt.Sprintf("%s-%d", id, now.UnixMilli())),
		CreatedAt:      now,
		Keys:           DefaultKeys(),
		Conditions:     DefaultConditions(),
		Entries:        []ArcEntry{},
		Nodes:          []ThoughtNode{},
		Contradictions: []Contradiction{},
		Status:         StatusOpen,
		Trace:          []string{},
	}
}
// #endregion constructor

// #region mutation
// Append adds an ARC entry.
func (a *Acta) Append(e ArcEntry) error {
	if a.Status == StatusClosed {
		return ErrClosed
	}
	a.Entries = append(a.Entries, e)
	return nil
}

// PutNode inserts the node or replaces the node with the same ID.
func (a *Acta) PutNode(n ThoughtNode) error {
	if a.Status == StatusClosed {
		return ErrClosed
	}
	for i := range a.Nodes {
		if a.Nodes[i].ID == n.ID {
			a.Nodes[i] = n
			return nil
		}
	}
	a.Nodes = append(a.Nodes, n)
	return nil
}

// Hold records a new contradiction.
func (a *Acta) Hold(c Contradiction) error {
	if a.Status == StatusClosed {
		return ErrClosed
	}
	a.Contradictions = append(a.Contradictions, c)
	return nil
}

// MarkTransmitted moves an open record to transmitted. It reports whether the
// status changed.
func (a *Acta) MarkTransmitted() (bool, error) {
	switch a.Status {
	case StatusClosed:
		return false, ErrClosed
	case StatusTransmitted:
		return false, nil
	}
	a.Status = StatusTransmitted
	return true, nil
}
// #endregion mutation

// #region close
// Close ends the record: active contradictions are closed, the final entry is
// appended, then status and close time are set. Nothing may change afterwards.
func (a *Acta) Close(final ArcEntry, now time.Time) error {
	if a.Status == StatusClosed {
		return ErrClosed
	}
	for i := range a.Contradictions {
		if a.Contradictions[i].Active {
			closedAt := now
			a.Contradictions[i].Active = false
			a.Contradictions[i].ClosedAt = &closedAt
		}
	}
	a.Entries = append(a.Entries, final)
	closedAt := now
	a.ClosedAt = &closedAt
	a.Status = StatusClosed
	return nil
}
// #endregion close

// #region child
// Child builds the open successor of a closed parent. Keys, conditions and the
// ARC archive are inherited, the inheritance entry is appended, and the trace
// gains the parent's hash. Nodes and contradictions start empty.
func Child(parent Acta, id string, inheritance ArcEntry, now time.Time) (Acta, error) {
	if parent.Status != StatusClosed {
		return Acta{}, fmt.Errorf("child of %s: parent status %s", parent.ID, parent.Status)
	}

	child := NewInitial(id, now)
	child.Hash = Checksum(fmt.Sprintf("%s-%d-%s", id, now.UnixMilli(), parent.Hash))
	child.ParentHash = parent.Hash
	child.Keys = copyKeys(parent.Keys)
	child.Conditions = append([]string{}, parent.Conditions...)
	child.Trace = append(append([]string{}, parent.Trace...), parent.Hash)

	child.Entries = make([]ArcEntry, 0, len(parent.Entries)+1)
	for _, e := range parent.Entries {
		child.Entries = append(child.Entries, cloneEntry(e))
	}
	inheritance.ParentHash = parent.Hash
	child.Entries = append(child.Entries, inheritance)
	return child, nil
}
// #endregion child

// #region clone
// Clone returns a deep copy that shares no mutable state with a.
func (a Acta) Clone() Acta {
	out := a
	out.Keys = copyKeys(a.Keys)
	out.Conditions = append([]string{}, a.Conditions...)
	out.Trace = append([]string{}, a.Trace...)
	if a.ClosedAt != nil {
		t := *a.ClosedAt
		out.ClosedAt = &t
	}
	out.Entries = make([]ArcEntry, len(a.Entries))
	for i, e := range a.Entries {
		out.Entries[i] = cloneEntry(e)
	}
	out.Nodes = make([]ThoughtNode, len(a.Nodes))
	for i, n := range a.Nodes {
		out.Nodes[i] = n.Clone()
	}
	out.Contradictions = make([]Contradiction, len(a.Contradictions))
	for i, c := range a.Contradictions {
		out.Contradictions[i] = c.Clone()
	}
	return out
}

// Clone returns a deep copy of the node.
func (n ThoughtNode) Clone() ThoughtNode {
	out := n
	out.Connections = append([]string{}, n.Connections...)
	out.Metadata = copyMeta(n.Metadata)
	return out
}

// Clone returns a deep copy of the contradiction.
func (c Contradiction) Clone() Contradiction {
	out := c
	if c.ClosedAt != nil {
		t := *c.ClosedAt
		out.ClosedAt = &t
	}
	return out
}

func cloneEntry(e ArcEntry) ArcEntry {
	out := e
	out.Metadata = copyMeta(e.Metadata)
	return out
}

func copyKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyMeta(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
// #endregion clone
