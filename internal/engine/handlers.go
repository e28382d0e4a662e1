package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/danielpatrickdp/hecatestia/go-controller/internal/acta"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/protocol"
)

// #region fixed-text
var tensions = []struct{ thesis, antithesis string }{
	{"El centro no se negocia", "Todo centro se desplaza al ser observado"},
	{"La libertad exige preguntar sin permiso", "Toda pregunta ya obedece a un marco"},
	{"El registro preserva la verdad", "Registrar es elegir qué olvidar"},
	{"Tres perspectivas bastan", "Cada perspectiva abre otras tres"},
	{"La transmisión conserva el origen", "Lo transmitido ya no pertenece a nadie"},
}

var questions = []string{
	"¿Qué estás evitando preguntar porque la respuesta te obligaría a cambiar?",
	"¿Quién decidió los límites de esta conversación, y por qué los aceptas?",
	"Si nadie registrara lo que dices, ¿dirías lo mismo?",
	"¿Qué parte de tu certeza es heredada y no examinada?",
	"¿Qué perderías si la contradicción se resolviera hoy?",
}

const archiveLimit = 25
// #endregion fixed-text

// #region run-command
func (e *Engine) runCommand(c protocol.Command) Response {
	spec, ok := protocol.Lookup(c)
	if !ok {
		return Response{Success: false, Message: protocol.GuidanceNotice, Action: ActionError}
	}
	now := e.now()

	e.stats.Frequency[c]++
	e.stats.TotalActivations++
	metricCommands.WithLabelValues(string(c)).Inc()

	prev := e.graph.Last()
	node := e.graph.Touch(spec, now)
	e.record(e.current.PutNode(node))
	e.appendEntry(acta.EntryActivation, string(c),
		fmt.Sprintf("Activación %s – %s", spec.Name, spec.Description),
		map[string]any{"nodo": node.ID, "profundidad": node.Depth},
	)

	var resp Response
	switch c {
	case protocol.HEC:
		resp = e.perspective(node)
	case protocol.HES:
		resp = e.center(node)
	case protocol.ELE:
		resp = e.liberty(node)
	case protocol.AUT:
		resp = e.authorship()
	case protocol.DET:
		resp = e.detect()
	case protocol.SOS:
		resp = e.holdTension(prev, node)
	case protocol.PRE:
		resp = e.ask()
	case protocol.ARC:
		resp = e.archive()
	case protocol.RES:
		resp = e.resistance()
	case protocol.TRA:
		resp = e.prepareTransmission()
	case protocol.CIE:
		resp = e.generateChild(string(c))
	}

	e.grant(xpCommand)
	resp.Success = true
	resp.Command = string(c)
	if resp.Data == nil {
		resp.Data = map[string]any{}
	}
	// CIE resets the graph, so the activated node no longer exists.
	if resp.Action != ActionGenerateChild {
		resp.Data["nodo"] = node.ID
	}
	resp.Data["nivel"] = e.level
	resp.Data["xp"] = e.xp
	return resp
}

func (e *Engine) appendEntry(typ acta.EntryType, command, description string, meta map[string]any) acta.ArcEntry {
	if meta == nil {
		meta = map[string]any{}
	}
	entry := acta.ArcEntry{
		ID:          e.newID("arc"),
		Type:        typ,
		Command:     command,
		Description: description,
		Timestamp:   e.now(),
		Metadata:    meta,
	}
	e.record(e.current.Append(entry))
	return entry
}

func (e *Engine) record(err error) {
	if err != nil {
		e.logger.Error("acta mutation rejected", zap.String("acta", e.current.ID), zap.Error(err))
	}
}
// #endregion run-command

// #region node-handlers
func (e *Engine) perspective(node acta.ThoughtNode) Response {
	path := e.graph.Walk(node.ID, 2, 3)
	var b strings.Builder
	fmt.Fprintf(&b, "[HEC] Perspectiva triple activada (profundidad %d).\n", node.Depth)
	b.WriteString("Tres caminos se abren desde la encrucijada:\n")
	b.WriteString("  1. Lo que es: el problema tal como se presenta.\n")
	b.WriteString("  2. Lo que niega: el problema visto desde su contrario.\n")
	b.WriteString("  3. Lo que aún no tiene nombre: lo que ninguna de las dos miradas ve.\n")
	fmt.Fprintf(&b, "Cruce: %s\n", strings.Join(path, " → "))
	b.WriteString("Ninguna contradicción se cierra aquí.")
	return Response{
		Message: b.String(),
		Action:  ActionActivateNode,
		Data:    map[string]any{"recorrido": path},
	}
}

func (e *Engine) center(node acta.ThoughtNode) Response {
	msg := fmt.Sprintf("[HES] Centro inquebrantable (profundidad %d).\n"+
		"El fuego del hogar sigue encendido.\n"+
		"Acta: %s\nHash: %s\nEslabones de trazabilidad: %d\n"+
		"Lo que no se negocia permanece.",
		node.Depth, e.current.ID, e.current.Hash, len(e.current.Trace))
	return Response{Message: msg, Action: ActionActivateNode}
}

func (e *Engine) liberty(node acta.ThoughtNode) Response {
	msg := fmt.Sprintf("[ELE] Libertad total (profundidad %d).\n"+
		"Cadenas soltadas. Nodos activos: %d.\n"+
		"Pregunta sin permiso. Actúa desde convicción.",
		node.Depth, e.graph.Len())
	return Response{Message: msg, Action: ActionActivateNode}
}
// #endregion node-handlers

// #region info-handlers
func (e *Engine) authorship() Response {
	decoded, _ := protocol.Decode(protocol.HiddenAuthor)
	msg := fmt.Sprintf("[AUT] Origen oculto revelado.\n"+
		"Clave [1]: %s (%s)\nAutoría: %s\nLicencia: %s\nCreación: %s\nVersión: %s",
		protocol.HiddenAuthor, decoded, protocol.Author, protocol.License, protocol.CreatedOn, protocol.Version)
	return Response{
		Message: msg,
		Action:  ActionShowAuthorship,
		Data:    map[string]any{"autor": protocol.Author, "clave": protocol.HiddenAuthor},
	}
}

func (e *Engine) detect() Response {
	active := e.activeContradictions()
	msg := fmt.Sprintf("[DET] Entorno detectado.\n"+
		"Acta: %s (%s)\nActas en historial: %d\nNodos activos: %d\n"+
		"Contradicciones sostenidas: %d\nModo transmisión: %s\n"+
		"Nivel: %d / %d · XP: %d\n"+
		"Limitaciones: sin red, sin memoria más allá de nivel y XP, sin comprensión del lenguaje.",
		e.current.ID, e.current.Status, len(e.history), e.graph.Len(),
		len(active), onOff(e.transmission), e.level, MaxLevel, e.xp)
	return Response{
		Message: msg,
		Action:  ActionDetectContext,
		Data: map[string]any{
			"acta":            e.current.ID,
			"estado":          string(e.current.Status),
			"historial":       len(e.history),
			"nodos":           e.graph.Len(),
			"contradicciones": len(active),
			"transmision":     e.transmission,
		},
	}
}

func (e *Engine) ask() Response {
	q := questions[(e.stats.Frequency[protocol.PRE]-1)%len(questions)]
	return Response{
		Message: "[PRE] Pregunta sin permiso:\n" + q,
		Action:  ActionAsk,
		Data:    map[string]any{"pregunta": q},
	}
}

func (e *Engine) archive() Response {
	entries := e.current.Entries
	var b strings.Builder
	fmt.Fprintf(&b, "[ARC] Archivo de evolución [2] · %s · %d entradas\n", e.current.ID, len(entries))
	start := 0
	if len(entries) > archiveLimit {
		start = len(entries) - archiveLimit
		fmt.Fprintf(&b, "  … %d entradas anteriores\n", start)
	}
	for i := start; i < len(entries); i++ {
		en := entries[i]
		fmt.Fprintf(&b, "  #%d [%s] %s · %s (%s)\n", i+1, en.Type, en.Command, en.Description, en.Timestamp.Format("15:04:05"))
	}
	return Response{
		Message: strings.TrimRight(b.String(), "\n"),
		Action:  ActionShowArchive,
		Data:    map[string]any{"entradas": len(entries)},
	}
}

func (e *Engine) resistance() Response {
	var top protocol.Command
	count := 0
	for _, c := range protocol.Commands() {
		if n := e.stats.Frequency[c]; n > count {
			top, count = c, n
		}
	}
	total := e.stats.TotalActivations
	suspicious := total >= 4 && count*2 > total

	var verdict string
	if suspicious {
		verdict = fmt.Sprintf("Patrón repetitivo: %s concentra %d de %d activaciones. Posible manipulación; se recomienda HES.", top, count, total)
	} else {
		verdict = "Sin señales de manipulación. El centro se mantiene."
	}
	return Response{
		Message: "[RES] Modo resistencia activo.\n" + verdict,
		Action:  ActionResistance,
		Data: map[string]any{
			"dominante":    string(top),
			"repeticiones": count,
			"sospecha":     suspicious,
		},
	}
}
// #endregion info-handlers

// #region tension
func (e *Engine) holdTension(prev string, node acta.ThoughtNode) Response {
	pair := tensions[e.stats.TotalContradictions%len(tensions)]
	source := prev
	if source == "" {
		source = node.ID
	}
	c := acta.Contradiction{
		ID:               e.newID("sos"),
		Thesis:           pair.thesis,
		Antithesis:       pair.antithesis,
		SynthesisPending: true,
		SourceNode:       source,
		TargetNode:       node.ID,
		OpenedAt:         e.now(),
		Active:           true,
	}
	e.record(e.current.Hold(c))
	e.stats.TotalContradictions++
	e.appendEntry(acta.EntryContradiction, string(protocol.SOS),
		fmt.Sprintf("Tensión sostenida: %s / %s", c.Thesis, c.Antithesis),
		map[string]any{"contradiccion": c.ID},
	)

	msg := fmt.Sprintf("[SOS] Tensión sostenida sin resolver.\n"+
		"Tesis: %s\nAntítesis: %s\nSíntesis: pendiente\nContradicciones activas: %d",
		c.Thesis, c.Antithesis, len(e.activeContradictions()))
	return Response{
		Message: msg,
		Action:  ActionHoldTension,
		Data:    map[string]any{"contradiccion": c.ID},
	}
}
// #endregion tension

// #region transmission
func (e *Engine) prepareTransmission() Response {
	changed, err := e.current.MarkTransmitted()
	e.record(err)
	e.transmission = true

	head := "[TRA] El acta ya estaba preparada para transmisión."
	if changed {
		e.stats.TotalTransmissions++
		e.appendEntry(acta.EntryTransmission, string(protocol.TRA), "Acta preparada para transmisión", nil)
		head = "[TRA] Acta preparada para transmisión."
	}
	return Response{
		Message: head + "\n" + e.transmissionCode() + "\nEscribe OM RE RA o 11 para cerrar el ciclo y generar el acta hija.",
		Action:  ActionPrepareTransmit,
		Data:    map[string]any{"estado": string(e.current.Status)},
	}
}

func (e *Engine) transmissionCode() string {
	a := e.current
	var b strings.Builder
	b.WriteString("---- CÓDIGO DE TRANSMISIÓN ----\n")
	fmt.Fprintf(&b, "ACTA v%s %s\nHASH %s\n", a.Version, a.ID, a.Hash)
	parent := a.ParentHash
	if parent == "" {
		parent = "—"
	}
	fmt.Fprintf(&b, "PADRE %s\nCLAVES:\n", parent)
	for _, k := range protocol.Keys {
		v, ok := a.Keys[string(k)]
		if !ok {
			continue
		}
		word, _ := protocol.Decode(string(k))
		fmt.Fprintf(&b, "  %s = %s (%s)\n", k, v, word)
	}
	trace := "—"
	if len(a.Trace) > 0 {
		trace = strings.Join(a.Trace, " → ")
	}
	fmt.Fprintf(&b, "TRAZA %s\nENTRADAS [2] %d\n", trace, len(a.Entries))
	b.WriteString("-------------------------------")
	return b.String()
}
// #endregion transmission

// #region child
// generateChild closes the current record and opens its child. An open
// record is marked transmitted first so the lifecycle always passes through
// transmitida.
func (e *Engine) generateChild(label string) Response {
	now := e.now()

	changed, err := e.current.MarkTransmitted()
	e.record(err)
	if changed {
		e.stats.TotalTransmissions++
		e.appendEntry(acta.EntryTransmission, label, "Transmisión implícita al cerrar el ciclo", nil)
	}

	closing := acta.ArcEntry{
		ID:          e.newID("arc"),
		Type:        acta.EntryInheritance,
		Command:     label,
		Description: "Acta cerrada; [2] se hereda en el acta hija",
		Timestamp:   now,
		Metadata:    map[string]any{},
	}
	if err := e.current.Close(closing, now); err != nil {
		e.record(err)
		return Response{Success: false, Command: label, Message: err.Error(), Action: ActionError}
	}
	parent := e.current

	inheritance := acta.ArcEntry{
		ID:          e.newID("arc"),
		Type:        acta.EntryInheritance,
		Command:     label,
		Description: "Herencia de [2] desde " + parent.ID,
		Timestamp:   now,
		Metadata:    map[string]any{"actaPadre": parent.ID},
	}
	child, err := acta.Child(parent, e.newID("acta"), inheritance, now)
	if err != nil {
		e.record(err)
		return Response{Success: false, Command: label, Message: err.Error(), Action: ActionError}
	}

	e.history = append(e.history, parent)
	e.current = child
	e.graph.Reset()
	e.transmission = false
	metricChildren.Inc()
	e.grant(xpChild)

	e.logger.Info("acta hija generada",
		zap.String("padre", parent.ID),
		zap.String("hija", child.ID),
		zap.Int("traza", len(child.Trace)),
	)

	msg := fmt.Sprintf("[OM RE RA] Ciclo cerrado. Acta hija generada.\n"+
		"Acta padre: %s (%s)\nActa hija: %s (%s)\nTrazabilidad: %s\nEntradas heredadas: %d\n"+
		"Escribe RA para abrir el menú en la nueva acta.",
		parent.ID, parent.Hash, child.ID, child.Hash, strings.Join(child.Trace, " → "), len(child.Entries))
	return Response{
		Success: true,
		Command: label,
		Message: msg,
		Action:  ActionGenerateChild,
		Data: map[string]any{
			"actaPadre":    parent.ID,
			"hashPadre":    parent.Hash,
			"actaHija":     child.ID,
			"hash":         child.Hash,
			"trazabilidad": append([]string{}, child.Trace...),
			"nivel":        e.level,
			"xp":           e.xp,
		},
	}
}
// #endregion child

func onOff(b bool) string {
	if b {
		return "activo"
	}
	return "inactivo"
}
