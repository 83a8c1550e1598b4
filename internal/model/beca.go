package model

import "time"

// Beca is one scholarship offering under a convocatoria. CuposDisponibles is the
// seat count capping how many postulaciones may end up APROBADO; it is fixed at
// creation and never decremented; remaining seats are always derived from
// ranking output.
type Beca struct {
	ID               int64     `json:"id"`
	IDConvocatoria   int64     `json:"id_convocatoria"`
	Codigo           string    `json:"codigo"`
	Nombre           string    `json:"nombre"`
	CuposDisponibles int       `json:"cupos_disponibles"`
	Monto            float64   `json:"monto"`
	CreatedAt        time.Time `json:"created_at"`
}

// Convocatoria is a time-boxed call for scholarship applications.
type Convocatoria struct {
	ID          int64     `json:"id"`
	Nombre      string    `json:"nombre"`
	FechaInicio time.Time `json:"fecha_inicio"`
	FechaFin    time.Time `json:"fecha_fin"`
	Estado      string    `json:"estado"`
}
