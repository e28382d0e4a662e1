package acta

import "time"

// #region status
// Status is the lifecycle state of a record.
type Status string

const (
	StatusOpen        Status = "abierta"
	StatusTransmitted Status = "transmitida"
	StatusClosed      Status = "cerrada"
)
// #endregion status

// #region entry-type
// EntryType classifies an ARC entry.
type EntryType string

const (
	EntryModification  EntryType = "modificacion"
	EntryActivation    EntryType = "activacion"
	EntryContradiction EntryType = "contradiccion"
	EntryTransmission  EntryType = "transmision"
	EntryInheritance   EntryType = "herencia"
)
// #endregion entry-type

// #region thought-node
// Coordinates places a node on the thought graph.
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ThoughtNode is a node of the non-linear thought graph. Depth counts activations.
type ThoughtNode struct {
	ID          string         `json:"id"`
	Type        string         `json:"tipo"`
	Label       string         `json:"etiqueta"`
	Description string         `json:"descripcion"`
	Active      bool           `json:"activo"`
	Coordinates Coordinates    `json:"coordenadas"`
	Connections []string       `json:"conexiones"`
	Depth       int            `json:"profundidad"`
	Timestamp   time.Time      `json:"timestamp"`
	Metadata    map[string]any `json:"metadatos"`
}
// #endregion thought-node

// #region contradiction
// Contradiction is a thesis/antithesis pair held open on purpose.
type Contradiction struct {
	ID               string     `json:"id"`
	Thesis           string     `json:"tesis"`
	Antithesis       string     `json:"antitesis"`
	SynthesisPending bool       `json:"sintesisPendiente"`
	SourceNode       string     `json:"nodoOrigen"`
	TargetNode       string     `json:"nodoDestino"`
	OpenedAt         time.Time  `json:"timestampApertura"`
	ClosedAt         *time.Time `json:"timestampCierre,omitempty"`
	Active           bool       `json:"activa"`
}
// #endregion contradiction

// #region arc-entry
// ArcEntry is one append-only row of a record's evolution archive ([2]).
// Command holds either a command mnemonic or a protocol key.
type ArcEntry struct {
	ID          string         `json:"id"`
	Type        EntryType      `json:"tipo"`
	Command     string         `json:"comando"`
	Description string         `json:"descripcion"`
	Timestamp   time.Time      `json:"timestamp"`
	ParentHash  string         `json:"hashPadre,omitempty"`
	Metadata    map[string]any `json:"metadatos"`
}
// #endregion arc-entry

// #region acta
// Acta is the unit of session work. Trace holds ancestor hashes, oldest first.
type Acta struct {
	Version        string            `json:"version"`
	ID             string            `json:"id"`
	Hash           string            `json:"hash"`
	ParentHash     string            `json:"hashPadre,omitempty"`
	CreatedAt      time.Time         `json:"timestampCreacion"`
	ClosedAt       *time.Time        `json:"timestampCierre,omitempty"`
	Keys           map[string]string `json:"claves"`
	Conditions     []string          `json:"condiciones"`
	Entries        []ArcEntry        `json:"entradasArc"`
	Nodes          []ThoughtNode     `json:"nodos"`
	Contradictions []Contradiction   `json:"contradicciones"`
	Status         Status            `json:"estado"`
	Trace          []string          `json:"trazabilidad"`
}
// #endregion acta
