package acta

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 2, 13, 12, 0, 0, 0, time.UTC)

func entry(id string, typ EntryType) ArcEntry {
	return ArcEntry{ID: id, Type: typ, Command: "HEC", Timestamp: t0, Metadata: map[string]any{}}
}

// #region checksum-tests
func TestChecksum_KnownValues(t *testing.T) {
	assert.Equal(t, "00000000", Checksum(""))
	assert.Equal(t, "00000061", Checksum("a"))
	assert.Equal(t, "00000c21", Checksum("ab"))
}

func TestChecksum_WrapsAndCountsSurrogates(t *testing.T) {
	// long inputs overflow int32 and keep only the magnitude
	assert.Equal(t, "666e0880", Checksum("zzzzzzzzzzzzzzzzzzzz"))
	// the emoji hashes as two UTF-16 units
	assert.Equal(t, "39295b48", Checksum("hola 😀 mundo"))
}

func TestChecksum_OrderSensitive(t *testing.T) {
	assert.NotEqual(t, Checksum("ab"), Checksum("ba"))
	assert.Len(t, Checksum("acta-1771000000000-1771000000000"), 8)
	assert.Equal(t, Checksum("same input"), Checksum("same input"))
}
// #endregion checksum-tests

// #region lifecycle-tests
func TestNewInitial(t *testing.T) {
	a := NewInitial("acta-1", t0)
	assert.Equal(t, "5.0", a.Version)
	assert.Equal(t, StatusOpen, a.Status)
	assert.Empty(t, a.ParentHash)
	assert.Empty(t, a.Trace)
	assert.Len(t, a.Keys, 8)
	assert.Len(t, a.Conditions, 4)
	assert.Len(t, a.Hash, 8)
	assert.Nil(t, a.ClosedAt)
}

func TestMarkTransmitted(t *testing.T) {
	a := NewInitial("acta-1", t0)
	changed, err := a.MarkTransmitted()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusTransmitted, a.Status)

	changed, err = a.MarkTransmitted()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestClose_FreezesRecord(t *testing.T) {
	a := NewInitial("acta-1", t0)
	require.NoError(t, a.Hold(Contradiction{ID: "c1", Active: true, SynthesisPending: true}))
	require.NoError(t, a.Close(entry("e-final", EntryTransmission), t0.Add(time.Minute)))

	assert.Equal(t, StatusClosed, a.Status)
	require.NotNil(t, a.ClosedAt)
	assert.False(t, a.Contradictions[0].Active)
	require.NotNil(t, a.Contradictions[0].ClosedAt)
	assert.Len(t, a.Entries, 1)

	assert.ErrorIs(t, a.Append(entry("late", EntryActivation)), ErrClosed)
	assert.ErrorIs(t, a.PutNode(ThoughtNode{ID: "n"}), ErrClosed)
	assert.ErrorIs(t, a.Hold(Contradiction{ID: "c2"}), ErrClosed)
	assert.ErrorIs(t, a.Close(entry("again", EntryTransmission), t0), ErrClosed)
	_, err := a.MarkTransmitted()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestChild_TraceAndInheritance(t *testing.T) {
	parent := NewInitial("acta-1", t0)
	require.NoError(t, parent.Append(entry("e1", EntryActivation)))
	require.NoError(t, parent.PutNode(ThoughtNode{ID: "nodo-hec"}))
	require.NoError(t, parent.Close(entry("e2", EntryInheritance), t0.Add(time.Second)))

	child, err := Child(parent, "acta-2", entry("e3", EntryInheritance), t0.Add(2*time.Second))
	require.NoError(t, err)

	assert.Equal(t, StatusOpen, child.Status)
	assert.Equal(t, parent.Hash, child.ParentHash)
	assert.Equal(t, []string{parent.Hash}, child.Trace)
	assert.NotEqual(t, parent.Hash, child.Hash)
	assert.Empty(t, child.Nodes)
	assert.Empty(t, child.Contradictions)
	assert.Equal(t, parent.Keys, child.Keys)
	assert.Equal(t, parent.Conditions, child.Conditions)
	require.Len(t, child.Entries, 3)
	assert.Equal(t, "e3", child.Entries[2].ID)
	assert.Equal(t, parent.Hash, child.Entries[2].ParentHash)

	grand := child
	require.NoError(t, grand.Close(entry("e4", EntryInheritance), t0.Add(3*time.Second)))
	next, err := Child(grand, "acta-3", entry("e5", EntryInheritance), t0.Add(4*time.Second))
	require.NoError(t, err)
	assert.Equal(t, []string{parent.Hash, grand.Hash}, next.Trace)
}

func TestChild_RequiresClosedParent(t *testing.T) {
	_, err := Child(NewInitial("acta-1", t0), "acta-2", entry("e", EntryInheritance), t0)
	assert.Error(t, err)
}

func TestChild_DoesNotAliasParent(t *testing.T) {
	parent := NewInitial("acta-1", t0)
	require.NoError(t, parent.Close(entry("e1", EntryInheritance), t0))
	child, err := Child(parent, "acta-2", entry("e2", EntryInheritance), t0)
	require.NoError(t, err)

	child.Keys["[1]"] = "changed"
	child.Conditions[0] = "changed"
	assert.NotEqual(t, "changed", parent.Keys["[1]"])
	assert.NotEqual(t, "changed", parent.Conditions[0])
}

func TestClone_IsDeep(t *testing.T) {
	a := NewInitial("acta-1", t0)
	require.NoError(t, a.Append(entry("e1", EntryActivation)))
	require.NoError(t, a.PutNode(ThoughtNode{ID: "n", Connections: []string{"x"}, Metadata: map[string]any{"k": 1}}))

	c := a.Clone()
	c.Entries[0].Metadata["mutated"] = true
	c.Nodes[0].Connections[0] = "y"
	c.Trace = append(c.Trace, "h")

	assert.NotContains(t, a.Entries[0].Metadata, "mutated")
	assert.Equal(t, "x", a.Nodes[0].Connections[0])
	assert.Empty(t, a.Trace)
}

func TestPutNode_Replaces(t *testing.T) {
	a := NewInitial("acta-1", t0)
	require.NoError(t, a.PutNode(ThoughtNode{ID: "n", Depth: 1}))
	require.NoError(t, a.PutNode(ThoughtNode{ID: "n", Depth: 2}))
	require.Len(t, a.Nodes, 1)
	assert.Equal(t, 2, a.Nodes[0].Depth)
}
// #endregion lifecycle-tests
