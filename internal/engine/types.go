package engine

import (
	"encoding/json"

	"github.com/danielpatrickdp/hecatestia/go-controller/internal/acta"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/protocol"
)

// #region action
// Action tags what the presentation layer should do with a response.
type Action string

const (
	ActionShowMenu        Action = "mostrar_menu"
	ActionActivateNode    Action = "activar_nodo"
	ActionShowAuthorship  Action = "mostrar_autoria"
	ActionDetectContext   Action = "detectar_contexto"
	ActionHoldTension     Action = "sostener_contradiccion"
	ActionAsk             Action = "preguntar"
	ActionShowArchive     Action = "mostrar_arc"
	ActionResistance      Action = "activar_resistencia"
	ActionPrepareTransmit Action = "preparar_transmision"
	ActionGenerateChild   Action = "generar_acta_hija"
	ActionError           Action = "error"
	ActionAIResponse      Action = "respuesta_ia"
)
// #endregion action

// #region response
// Response is the record returned for every input. Command is the resolved
// command or protocol key, empty when nothing resolved.
type Response struct {
	Success bool
	Command string
	Message string
	Action  Action
	Data    map[string]any
}

type responseJSON struct {
	Success bool           `json:"exito"`
	Command *string        `json:"comando"`
	Message string         `json:"mensaje"`
	Action  Action         `json:"accion"`
	Data    map[string]any `json:"datos,omitempty"`
}

// MarshalJSON encodes the response with its wire names; an empty command is null.
func (r Response) MarshalJSON() ([]byte, error) {
	out := responseJSON{Success: r.Success, Message: r.Message, Action: r.Action, Data: r.Data}
	if r.Command != "" {
		cmd := r.Command
		out.Command = &cmd
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the wire form produced by MarshalJSON.
func (r *Response) UnmarshalJSON(data []byte) error {
	var in responseJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = Response{Success: in.Success, Message: in.Message, Action: in.Action, Data: in.Data}
	if in.Command != nil {
		r.Command = *in.Command
	}
	return nil
}
// #endregion response

// #region stats
// Stats aggregates session counters. Frequency only counts the eleven commands.
type Stats struct {
	TotalActivations    int                      `json:"totalActivaciones"`
	TotalContradictions int                      `json:"totalContradicciones"`
	TotalTransmissions  int                      `json:"totalTransmisiones"`
	Frequency           map[protocol.Command]int `json:"frecuenciaComandos"`
}

func newStats() Stats {
	freq := make(map[protocol.Command]int, len(protocol.Catalog))
	for _, c := range protocol.Commands() {
		freq[c] = 0
	}
	return Stats{Frequency: freq}
}

func (s Stats) clone() Stats {
	out := s
	out.Frequency = make(map[protocol.Command]int, len(s.Frequency))
	for k, v := range s.Frequency {
		out.Frequency[k] = v
	}
	return out
}
// #endregion stats

// #region state
// State is a deep-copied snapshot of the session.
type State struct {
	Current              acta.Acta                   `json:"actaActual"`
	History              []acta.Acta                 `json:"historialActas"`
	ActiveNodes          map[string]acta.ThoughtNode `json:"nodosActivos"`
	ActiveContradictions []acta.Contradiction        `json:"contradiccionesActivas"`
	TransmissionMode     bool                        `json:"modoTransmision"`
	Stats                Stats                       `json:"estadisticas"`
	XP                   int                         `json:"xp"`
	Level                int                         `json:"nivel"`
}
// #endregion state

// #region summary
// Summary is the compact status view served by the transports.
type Summary struct {
	Level            int         `json:"nivel"`
	XP               int         `json:"xp"`
	ActaID           string      `json:"actaId"`
	Hash             string      `json:"hash"`
	ParentHash       string      `json:"hashPadre,omitempty"`
	Status           acta.Status `json:"estado"`
	Trace            []string    `json:"trazabilidad"`
	Entries          int         `json:"entradasArc"`
	History          int         `json:"historialActas"`
	ActiveNodes      int         `json:"nodosActivos"`
	OpenTensions     int         `json:"contradiccionesActivas"`
	TransmissionMode bool        `json:"modoTransmision"`
	Stats            Stats       `json:"estadisticas"`
}

// Summary reduces the snapshot to counts and identifiers.
func (s State) Summary() Summary {
	trace := make([]string, len(s.Current.Trace))
	copy(trace, s.Current.Trace)
	return Summary{
		Level:            s.Level,
		XP:               s.XP,
		ActaID:           s.Current.ID,
		Hash:             s.Current.Hash,
		ParentHash:       s.Current.ParentHash,
		Status:           s.Current.Status,
		Trace:            trace,
		Entries:          len(s.Current.Entries),
		History:          len(s.History),
		ActiveNodes:      len(s.ActiveNodes),
		OpenTensions:     len(s.ActiveContradictions),
		TransmissionMode: s.TransmissionMode,
		Stats:            s.Stats,
	}
}
// #endregion summary
