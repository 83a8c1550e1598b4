package model

import (
	"time"

	"dubss/internal/workflow"
)

// Tramite is the administrative case file tracking one postulación through
// review. It is a pure domain model; persistence tags live in the repository
// layer's SQL, not here.
type Tramite struct {
	ID                 int64           `json:"id"`
	IDPostulacion      int64           `json:"id_postulacion"`
	Codigo             string          `json:"codigo"`
	EstadoActual       workflow.Estado `json:"estado_actual"`
	Clasificado        bool            `json:"clasificado"`
	FechaCreacion      time.Time       `json:"fecha_creacion"`
	FechaClasificacion *time.Time      `json:"fecha_clasificacion,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// HistorialEntry is one immutable audit record of a trámite state change.
// EstadoAnterior is nil only on the creation record; RevisadoPor is nil for
// system-initiated transitions. Entries are append-only: no repository exposes
// an update or delete for them.
type HistorialEntry struct {
	ID             int64            `json:"id"`
	IDTramite      int64            `json:"id_tramite"`
	EstadoAnterior *workflow.Estado `json:"estado_anterior,omitempty"`
	EstadoNuevo    workflow.Estado  `json:"estado_nuevo"`
	Observaciones  string           `json:"observaciones"`
	RevisadoPor    *int64           `json:"revisado_por,omitempty"`
	FechaRevision  time.Time        `json:"fecha_revision"`
}
