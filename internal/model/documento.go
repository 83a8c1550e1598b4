package model

import "time"

// TipoDocumento identifies a document in the fixed catalog a trámite can carry.
type TipoDocumento string

const (
	TipoCI                   TipoDocumento = "CI"
	TipoKardex               TipoDocumento = "KARDEX"
	TipoComprobanteDomicilio TipoDocumento = "COMPROBANTE_DOMICILIO"
	TipoCertificadoIngresos  TipoDocumento = "CERTIFICADO_INGRESOS"
	TipoOtro                 TipoDocumento = "OTRO"
)

// TiposDocumento lists the full catalog.
var TiposDocumento = []TipoDocumento{
	TipoCI,
	TipoKardex,
	TipoComprobanteDomicilio,
	TipoCertificadoIngresos,
	TipoOtro,
}

// TiposObligatorios is the mandatory set for completing digitization.
// CERTIFICADO_INGRESOS and OTRO are optional and never block completion.
var TiposObligatorios = []TipoDocumento{
	TipoCI,
	TipoKardex,
	TipoComprobanteDomicilio,
}

// Valid reports whether t is part of the catalog.
func (t TipoDocumento) Valid() bool {
	for _, k := range TiposDocumento {
		if k == t {
			return true
		}
	}
	return false
}

func (t TipoDocumento) String() string { return string(t) }

// Documento is one digitized document artifact tied to a trámite. At most one
// validated artifact exists per (trámite, tipo): a re-upload supersedes the
// previous one instead of duplicating it.
type Documento struct {
	ID            int64         `json:"id"`
	IDTramite     int64         `json:"id_tramite"`
	TipoDocumento TipoDocumento `json:"tipo_documento"`
	NombreArchivo string        `json:"nombre_archivo"`
	RutaDigital   string        `json:"ruta_digital"`
	TamanhoBytes  int64         `json:"tamanho_bytes"`
	MimeType      string        `json:"mime_type"`
	Validado      bool          `json:"validado"`
	SubidoPor     *int64        `json:"subido_por,omitempty"`
	FechaSubida   time.Time     `json:"fecha_subida"`
}
