package engine

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// #region responder
// Responder answers free-form questions addressed to Testiateria.
type Responder interface {
	Respond(ctx context.Context, question string, level int) (string, error)
}
// #endregion responder

// #region converse
// Converse routes a question to r. It lives outside the alias tables, so
// Execute keeps treating any unlisted text as unrecognized. A successful
// answer grants conversation XP; a failed one leaves the session untouched.
func (e *Engine) Converse(ctx context.Context, question string, r Responder) Response {
	question = strings.TrimSpace(question)
	if question == "" || r == nil {
		return e.observe(Response{
			Success: false,
			Message: "Testiateria espera una pregunta: IA [pregunta].",
			Action:  ActionError,
		})
	}

	answer, err := r.Respond(ctx, question, e.level)
	if err != nil {
		e.logger.Warn("responder failed", zap.Error(err))
		return e.observe(Response{
			Success: false,
			Message: "Testiateria guarda silencio: " + err.Error(),
			Action:  ActionError,
		})
	}

	e.grant(xpConversing)
	return e.observe(Response{
		Success: true,
		Message: answer,
		Action:  ActionAIResponse,
		Data:    map[string]any{"nivel": e.level, "xp": e.xp},
	})
}
// #endregion converse
