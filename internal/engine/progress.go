package engine

import "go.uber.org/zap"

// #region port
// ProgressStore persists the two progress scalars. A store with nothing saved
// loads as zero for both.
type ProgressStore interface {
	Load() (level, xp int, err error)
	Save(level, xp int) error
}
// #endregion port

// #region rules
const (
	MaxLevel     = 9999
	xpPerLevel   = 100
	xpCommand    = 10
	xpChild      = 50
	xpConversing = 25
)

// ClampLevel keeps a level inside [0, MaxLevel].
func ClampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// LevelFor derives the level reached with xp.
func LevelFor(xp int) int {
	if xp <= 0 {
		return 0
	}
	return ClampLevel(xp / xpPerLevel)
}

// NextLevelXP is the XP total at which the next level is reached, or 0 once
// the level cap is hit.
func NextLevelXP(level, xp int) int {
	reached := max(ClampLevel(level), LevelFor(xp))
	if reached >= MaxLevel {
		return 0
	}
	return (LevelFor(xp) + 1) * xpPerLevel
}
// #endregion rules

// #region grant
// grant adds XP, recomputes the level and writes both through the store.
// A failed write is logged; the session keeps the new values.
func (e *Engine) grant(amount int) {
	if amount <= 0 {
		return
	}
	e.xp += amount
	if e.xp < 0 {
		e.xp = 0
	}
	e.level = ClampLevel(max(e.level, LevelFor(e.xp)))
	metricLevel.Set(float64(e.level))

	if e.store == nil {
		return
	}
	if err := e.store.Save(e.level, e.xp); err != nil {
		e.logger.Warn("progress save failed",
			zap.Int("nivel", e.level),
			zap.Int("xp", e.xp),
			zap.Error(err),
		)
	}
}
// #endregion grant
