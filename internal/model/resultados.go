package model

// ResumenResultados aggregates postulación outcomes, optionally scoped to one
// convocatoria. Every figure is derived at query time; "cupos restantes" style
// numbers are never stored or decremented anywhere.
type ResumenResultados struct {
	TotalPostulaciones   int           `json:"total_postulaciones"`
	Aprobadas            int           `json:"aprobadas"`
	Denegadas            int           `json:"denegadas"`
	EnProceso            int           `json:"en_proceso"`
	TasaAprobacion       float64       `json:"tasa_aprobacion"`
	PromedioPuntaje      float64       `json:"promedio_puntaje"`
	PresupuestoTotal     float64       `json:"presupuesto_total"`
	PresupuestoUtilizado float64       `json:"presupuesto_utilizado"`
	Becas                []BecaResumen `json:"becas"`
}

// BecaResumen is the per-beca slice of ResumenResultados.
type BecaResumen struct {
	ID            int64   `json:"id"`
	Nombre        string  `json:"nombre"`
	Cupos         int     `json:"cupos"`
	Postulaciones int     `json:"postulaciones"`
	Aprobadas     int     `json:"aprobadas"`
	TasaOcupacion float64 `json:"tasa_ocupacion"`
}
