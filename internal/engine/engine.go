package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/hecatestia/go-controller/internal/acta"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/protocol"
)

// #region engine-struct
// Engine is the command dispatcher and the sole owner of the session state.
// It is not safe for concurrent use; wrap it in a Queue when inputs can
// arrive from more than one goroutine.
type Engine struct {
	resolver *protocol.Resolver
	store    ProgressStore
	logger   *zap.Logger
	now      func() time.Time
	newID    func(prefix string) string

	current      acta.Acta
	history      []acta.Acta
	graph        *acta.Graph
	transmission bool
	stats        Stats
	xp           int
	level        int
}
// #endregion engine-struct

// #region options
// Option configures an Engine.
type Option func(*Engine)

// WithStore sets the progress store read at start and written on every change.
func WithStore(s ProgressStore) Option {
	return func(e *Engine) { e.store = s }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDs replaces the random ID generator.
func WithIDs(newID func(prefix string) string) Option {
	return func(e *Engine) { e.newID = newID }
}

// WithResolver replaces the default alias tables.
func WithResolver(r *protocol.Resolver) Option {
	return func(e *Engine) { e.resolver = r }
}

// WithRoot starts the session from an existing open record instead of a fresh one.
func WithRoot(a acta.Acta) Option {
	return func(e *Engine) { e.current = a.Clone() }
}

func uuidID(prefix string) string {
	return prefix + "-" + uuid.New().String()
}
// #endregion options

// #region constructor
// New builds an engine and loads level and XP from the store, if any.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		resolver: protocol.DefaultResolver(),
		logger:   zap.NewNop(),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuidID,
		graph:    acta.NewGraph(),
		stats:    newStats(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.current.ID == "" {
		e.current = acta.NewInitial(e.newID("acta"), e.now())
	}
	if e.current.Status == acta.StatusClosed {
		return nil, fmt.Errorf("root acta %s is closed", e.current.ID)
	}

	if e.store != nil {
		level, xp, err := e.store.Load()
		if err != nil {
			return nil, fmt.Errorf("load progress: %w", err)
		}
		e.xp = max(xp, 0)
		e.level = ClampLevel(level)
		if e.xp != xp || e.level != level {
			e.logger.Warn("stored progress out of range, rewriting",
				zap.Int("nivel", level), zap.Int("xp", xp))
			if err := e.store.Save(e.level, e.xp); err != nil {
				e.logger.Warn("rewrite progress failed", zap.Error(err))
			}
		}
	}
	metricLevel.Set(float64(e.level))

	e.logger.Debug("engine ready",
		zap.String("acta", e.current.ID),
		zap.Int("nivel", e.level),
		zap.Int("xp", e.xp),
	)
	return e, nil
}
// #endregion constructor

// #region execute
// Execute resolves input and runs it against the session. It never fails:
// unrecognized input comes back as a response with Success=false and the
// session untouched.
func (e *Engine) Execute(input string) Response {
	tok, ok := e.resolver.Resolve(input)
	if !ok {
		e.logger.Debug("unrecognized input", zap.String("entrada", input))
		return e.observe(Response{
			Success: false,
			Message: protocol.GuidanceNotice,
			Action:  ActionError,
		})
	}

	switch tok.Key {
	case protocol.KeyMenu:
		return e.observe(Response{
			Success: true,
			Command: tok.String(),
			Message: protocol.Menu(),
			Action:  ActionShowMenu,
		})
	case protocol.KeyChild:
		return e.observe(e.generateChild(tok.String()))
	case "":
		return e.observe(e.runCommand(tok.Command))
	}

	// Remaining keys are display only and are never produced by the resolver tables.
	return e.observe(Response{Success: false, Message: protocol.GuidanceNotice, Action: ActionError})
}

func (e *Engine) observe(r Response) Response {
	metricDispatches.WithLabelValues(string(r.Action)).Inc()
	e.logger.Debug("dispatch",
		zap.String("comando", r.Command),
		zap.String("accion", string(r.Action)),
		zap.Bool("exito", r.Success),
	)
	return r
}
// #endregion execute

// #region getters
// Level returns the current level.
func (e *Engine) Level() int { return e.level }

// XP returns the accumulated experience.
func (e *Engine) XP() int { return e.xp }

// Current returns a copy of the open record.
func (e *Engine) Current() acta.Acta { return e.current.Clone() }

// Stats returns a copy of the counters.
func (e *Engine) Stats() Stats { return e.stats.clone() }

// Snapshot returns a deep copy of the whole session.
func (e *Engine) Snapshot() State {
	st := State{
		Current:              e.current.Clone(),
		History:              make([]acta.Acta, len(e.history)),
		ActiveNodes:          make(map[string]acta.ThoughtNode, e.graph.Len()),
		ActiveContradictions: e.activeContradictions(),
		TransmissionMode:     e.transmission,
		Stats:                e.stats.clone(),
		XP:                   e.xp,
		Level:                e.level,
	}
	for i, a := range e.history {
		st.History[i] = a.Clone()
	}
	for _, n := range e.graph.Nodes() {
		st.ActiveNodes[n.ID] = n
	}
	return st
}

func (e *Engine) activeContradictions() []acta.Contradiction {
	out := []acta.Contradiction{}
	for _, c := range e.current.Contradictions {
		if c.Active {
			out = append(out, c.Clone())
		}
	}
	return out
}
// #endregion getters
