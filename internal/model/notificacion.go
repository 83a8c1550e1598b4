package model

import "time"

// TipoNotificacion classifies a notification sent to a student.
type TipoNotificacion string

const (
	NotifAlerta      TipoNotificacion = "ALERTA"
	NotifInformacion TipoNotificacion = "INFORMACION"
	NotifResultado   TipoNotificacion = "RESULTADO"
)

// Notificacion is a message to a student tied to a trámite. Delivery is best
// effort: a failed write never rolls back the transition that produced it.
type Notificacion struct {
	ID           int64            `json:"id"`
	IDEstudiante int64            `json:"id_estudiante"`
	IDTramite    int64            `json:"id_tramite"`
	Tipo         TipoNotificacion `json:"tipo"`
	Titulo       string           `json:"titulo"`
	Mensaje      string           `json:"mensaje"`
	Leido        bool             `json:"leido"`
	Canal        string           `json:"canal"`
	CreatedAt    time.Time        `json:"created_at"`
}
