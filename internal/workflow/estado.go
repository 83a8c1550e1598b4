package workflow

import "fmt"

// Estado is the processing state of a trámite. The set of states and the legal
// transitions between them are fixed; everything else in the system treats this
// package as the single authority on which moves are allowed.
type Estado string

const (
	EstadoPendiente        Estado = "PENDIENTE"
	EstadoEnValidacion     Estado = "EN_VALIDACION"
	EstadoValidado         Estado = "VALIDADO"
	EstadoRechazado        Estado = "RECHAZADO"
	EstadoEnDigitalizacion Estado = "EN_DIGITALIZACION"
	EstadoDigitalizado     Estado = "DIGITALIZADO"
	EstadoEnClasificacion  Estado = "EN_CLASIFICACION"
	EstadoClasificado      Estado = "CLASIFICADO"
	EstadoAprobado         Estado = "APROBADO"
	EstadoDenegado         Estado = "DENEGADO"
)

// Inicial is the state assigned to every trámite at creation.
const Inicial = EstadoPendiente

// Estados lists every known state.
var Estados = []Estado{
	EstadoPendiente,
	EstadoEnValidacion,
	EstadoValidado,
	EstadoRechazado,
	EstadoEnDigitalizacion,
	EstadoDigitalizado,
	EstadoEnClasificacion,
	EstadoClasificado,
	EstadoAprobado,
	EstadoDenegado,
}

// transitions holds the legal edges of the state graph. RECHAZADO is a dead end
// re-entered only by manual re-initiation outside this machine; APROBADO and
// DENEGADO are terminal.
var transitions = map[Estado][]Estado{
	EstadoPendiente:        {EstadoEnValidacion},
	EstadoEnValidacion:     {EstadoValidado, EstadoRechazado},
	EstadoValidado:         {EstadoEnDigitalizacion},
	EstadoEnDigitalizacion: {EstadoDigitalizado},
	EstadoDigitalizado:     {EstadoEnClasificacion},
	EstadoEnClasificacion:  {EstadoClasificado},
	EstadoClasificado:      {EstadoAprobado, EstadoDenegado},
}

// Valid reports whether e is a known state name.
func (e Estado) Valid() bool {
	for _, s := range Estados {
		if s == e {
			return true
		}
	}
	return false
}

func (e Estado) String() string { return string(e) }

// Terminal reports whether no transition leaves e. RECHAZADO counts as terminal
// here: this machine never resumes a rejected trámite.
func (e Estado) Terminal() bool {
	return len(transitions[e]) == 0
}

// Parse converts a raw state name into an Estado.
func Parse(s string) (Estado, error) {
	e := Estado(s)
	if !e.Valid() {
		return "", fmt.Errorf("unknown estado %q", s)
	}
	return e, nil
}

// CanTransition reports whether (from, to) is a legal edge.
func CanTransition(from, to Estado) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Next returns the states reachable from e in one transition.
func Next(e Estado) []Estado {
	out := make([]Estado, len(transitions[e]))
	copy(out, transitions[e])
	return out
}

// Descripcion returns the operator-facing description of a state, mirroring the
// estado_tramite catalog.
func (e Estado) Descripcion() string {
	switch e {
	case EstadoPendiente:
		return "Trámite registrado, esperando validación"
	case EstadoEnValidacion:
		return "Documentación en proceso de validación"
	case EstadoValidado:
		return "Documentación validada correctamente"
	case EstadoRechazado:
		return "Documentación rechazada"
	case EstadoEnDigitalizacion:
		return "Documentos en proceso de digitalización"
	case EstadoDigitalizado:
		return "Expediente digitalizado"
	case EstadoEnClasificacion:
		return "En proceso de clasificación socioeconómica"
	case EstadoClasificado:
		return "Clasificación completada"
	case EstadoAprobado:
		return "Beca aprobada"
	case EstadoDenegado:
		return "Beca denegada"
	default:
		return ""
	}
}
