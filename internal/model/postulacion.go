package model

import "time"

// EstadoPostulado is the applicant-facing outcome of a postulación.
type EstadoPostulado string

const (
	PostuladoPendiente EstadoPostulado = "PENDIENTE"
	PostuladoAprobado  EstadoPostulado = "APROBADO"
	PostuladoDenegado  EstadoPostulado = "DENEGADO"
	PostuladoRechazado EstadoPostulado = "RECHAZADO"
)

// Postulacion is one student's application to one beca within a convocatoria.
// PuntajeFinal is nil until scoring runs; PosicionRanking is nil until the
// ranking for the owning beca has been computed (1-based afterwards).
type Postulacion struct {
	ID               int64           `json:"id"`
	IDEstudiante     int64           `json:"id_estudiante"`
	IDBeca           int64           `json:"id_beca"`
	IDConvocatoria   int64           `json:"id_convocatoria"`
	IDFormulario     int64           `json:"id_formulario"`
	FechaPostulacion time.Time       `json:"fecha_postulacion"`
	EstadoPostulado  EstadoPostulado `json:"estado_postulado"`
	PuntajeFinal     *float64        `json:"puntaje_final,omitempty"`
	PosicionRanking  *int            `json:"posicion_ranking,omitempty"`
	MotivoRechazo    string          `json:"motivo_rechazo,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}
