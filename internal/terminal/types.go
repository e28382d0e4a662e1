package terminal

import "time"

// #region kind
// Kind tags a transcript message.
type Kind string

const (
	KindInput  Kind = "entrada"
	KindOutput Kind = "salida"
	KindSystem Kind = "sistema"
	KindActa   Kind = "acta"
	KindAI     Kind = "ia"
)

// AllKinds lists every kind the renderer must handle.
var AllKinds = []Kind{KindInput, KindOutput, KindSystem, KindActa, KindAI}
// #endregion kind

// #region message
// Message is one displayed transcript entry.
type Message struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"tipo"`
	Content   string    `json:"contenido"`
	Timestamp time.Time `json:"timestamp"`
	Command   string    `json:"comando,omitempty"`
}
// #endregion message
