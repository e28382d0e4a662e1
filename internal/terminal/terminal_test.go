package terminal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/hecatestia/go-controller/internal/engine"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/protocol"
)

type echoResponder struct{ err error }

func (r echoResponder) Respond(_ context.Context, q string, level int) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return fmt.Sprintf("nivel %d: %s", level, q), nil
}

func newTestShell(t *testing.T, r engine.Responder) *Shell {
	t.Helper()
	e, err := engine.New()
	require.NoError(t, err)
	q := engine.NewQueue(e, 4)
	t.Cleanup(q.Close)

	seq := 0
	return NewShell(q, r,
		WithShellClock(func() time.Time { return time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC) }),
		WithMessageIDs(func() string {
			seq++
			return fmt.Sprintf("msg-%d", seq)
		}),
	)
}

func TestShellOpensWithWelcome(t *testing.T) {
	s := newTestShell(t, nil)
	msgs := s.Transcript().Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, KindSystem, msgs[0].Kind)
	assert.Contains(t, msgs[0].Content, "HECATESTIAELEUTERIA v"+protocol.Version)
	assert.Contains(t, msgs[0].Content, "Bienvenido a la casa de HES.")
}

func TestShellIgnoresBlankLines(t *testing.T) {
	s := newTestShell(t, nil)
	msgs, err := s.Submit(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, msgs)
	assert.Equal(t, 1, s.Transcript().Len())
}

func TestShellKindsFollowActions(t *testing.T) {
	s := newTestShell(t, echoResponder{})
	ctx := context.Background()

	cases := []struct {
		input string
		kind  Kind
	}{
		{"RA", KindOutput},
		{"HEC", KindOutput},
		{"nada", KindOutput},
		{"OM RE RA", KindActa},
		{"IA hola", KindAI},
	}
	for _, tc := range cases {
		msgs, err := s.Submit(ctx, tc.input)
		require.NoError(t, err, tc.input)
		require.Len(t, msgs, 2, tc.input)
		assert.Equal(t, KindInput, msgs[0].Kind, tc.input)
		assert.Equal(t, tc.input, msgs[0].Content)
		assert.Equal(t, tc.kind, msgs[1].Kind, tc.input)
	}

	all := s.Transcript().Messages()
	require.Len(t, all, 1+2*len(cases))
	for i, m := range all {
		assert.Equal(t, fmt.Sprintf("msg-%d", i+1), m.ID, "arrival order")
	}
	assert.Equal(t, "HEC", all[4].Command)
}

func TestShellAIPrefix(t *testing.T) {
	s := newTestShell(t, echoResponder{})
	ctx := context.Background()

	msgs, err := s.Submit(ctx, "ia   ¿quién eres?")
	require.NoError(t, err)
	assert.Equal(t, KindAI, msgs[1].Kind)
	assert.Equal(t, "nivel 0: ¿quién eres?", msgs[1].Content)

	level, xp, err := s.Progress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, level)
	assert.Equal(t, 25, xp)

	// bare prefix asks for a question
	msgs, err = s.Submit(ctx, "IA")
	require.NoError(t, err)
	assert.Equal(t, KindOutput, msgs[1].Kind)

	// a word that merely starts with IA is ordinary input
	msgs, err = s.Submit(ctx, "IAHEC")
	require.NoError(t, err)
	assert.Equal(t, protocol.GuidanceNotice, msgs[1].Content)
}

func TestShellResponderFailure(t *testing.T) {
	s := newTestShell(t, echoResponder{err: errors.New("sin red")})
	msgs, err := s.Submit(context.Background(), "IA hola")
	require.NoError(t, err)
	assert.Equal(t, KindOutput, msgs[1].Kind)
	assert.Contains(t, msgs[1].Content, "sin red")
}

func TestShellSessionClosed(t *testing.T) {
	e, err := engine.New()
	require.NoError(t, err)
	q := engine.NewQueue(e, 0)
	q.Close()

	s := NewShell(q, nil)
	_, err = s.Submit(context.Background(), "RA")
	require.ErrorIs(t, err, engine.ErrQueueClosed)
	assert.Equal(t, 1, s.Transcript().Len())
}

func TestRendererCoversEveryKind(t *testing.T) {
	r := NewRenderer()
	for _, k := range AllKinds {
		out, err := r.Render(Message{Kind: k, Content: "contenido", Command: "HEC"}, 3)
		require.NoError(t, err, k)
		assert.Contains(t, out, "contenido", k)
	}

	out, err := r.Render(Message{Kind: KindAI, Content: "x"}, 12)
	require.NoError(t, err)
	assert.Contains(t, out, "Testiateria (Nivel 12)")

	_, err = r.Render(Message{Kind: "desconocido"}, 0)
	assert.Error(t, err)
}

func TestRendererStatus(t *testing.T) {
	out := NewRenderer().Status(4, 420)
	assert.True(t, strings.Contains(out, "4 / 9999") && strings.Contains(out, "420"))
}
