package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_convocatoria",
		SQL: `CREATE TABLE IF NOT EXISTS convocatoria (
  id           BIGSERIAL   PRIMARY KEY,
  nombre       TEXT        NOT NULL,
  fecha_inicio TIMESTAMPTZ NOT NULL,
  fecha_fin    TIMESTAMPTZ NOT NULL,
  estado       TEXT        NOT NULL DEFAULT 'ABIERTA'
);`,
	},
	{
		Name: "create_table_beca",
		SQL: `CREATE TABLE IF NOT EXISTS beca (
  id                BIGSERIAL      PRIMARY KEY,
  id_convocatoria   BIGINT         NOT NULL REFERENCES convocatoria (id),
  codigo            TEXT           NOT NULL UNIQUE,
  nombre            TEXT           NOT NULL,
  cupos_disponibles INT            NOT NULL CHECK (cupos_disponibles >= 1),
  monto             NUMERIC(12, 2) NOT NULL CHECK (monto >= 0),
  created_at        TIMESTAMPTZ    NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_postulacion",
		SQL: `CREATE TABLE IF NOT EXISTS postulacion (
  id                BIGSERIAL   PRIMARY KEY,
  id_estudiante     BIGINT      NOT NULL,
  id_beca           BIGINT      NOT NULL REFERENCES beca (id),
  id_convocatoria   BIGINT      NOT NULL REFERENCES convocatoria (id),
  id_formulario     BIGINT,
  fecha_postulacion TIMESTAMPTZ NOT NULL DEFAULT now(),
  estado_postulado  TEXT        NOT NULL DEFAULT 'PENDIENTE'
    CHECK (estado_postulado IN ('PENDIENTE', 'APROBADO', 'DENEGADO', 'RECHAZADO')),
  puntaje_final     NUMERIC(6, 2),
  posicion_ranking  INT,
  motivo_rechazo    TEXT,
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (id_estudiante, id_beca)
);`,
	},
	{
		Name: "create_sequence_tramite_id",
		SQL:  `CREATE SEQUENCE IF NOT EXISTS tramite_id_seq;`,
	},
	{
		Name: "create_table_tramite",
		SQL: `CREATE TABLE IF NOT EXISTS tramite (
  id                  BIGINT      PRIMARY KEY DEFAULT nextval('tramite_id_seq'),
  id_postulacion      BIGINT      NOT NULL UNIQUE REFERENCES postulacion (id),
  codigo              TEXT        NOT NULL UNIQUE,
  estado_actual       TEXT        NOT NULL DEFAULT 'PENDIENTE'
    CHECK (estado_actual IN (
      'PENDIENTE', 'EN_VALIDACION', 'VALIDADO', 'RECHAZADO',
      'EN_DIGITALIZACION', 'DIGITALIZADO', 'EN_CLASIFICACION',
      'CLASIFICADO', 'APROBADO', 'DENEGADO')),
  clasificado         BOOLEAN     NOT NULL DEFAULT FALSE,
  fecha_creacion      TIMESTAMPTZ NOT NULL DEFAULT now(),
  fecha_clasificacion TIMESTAMPTZ,
  created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "alter_sequence_tramite_id_owned",
		SQL:  `ALTER SEQUENCE tramite_id_seq OWNED BY tramite.id;`,
	},
	{
		Name: "create_table_tramite_historial",
		SQL: `CREATE TABLE IF NOT EXISTS tramite_historial (
  id              BIGSERIAL   PRIMARY KEY,
  id_tramite      BIGINT      NOT NULL REFERENCES tramite (id),
  estado_anterior TEXT,
  estado_nuevo    TEXT        NOT NULL,
  observaciones   TEXT        NOT NULL DEFAULT '',
  revisado_por    BIGINT,
  fecha_revision  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_documento",
		SQL: `CREATE TABLE IF NOT EXISTS documento (
  id             BIGSERIAL   PRIMARY KEY,
  id_tramite     BIGINT      NOT NULL REFERENCES tramite (id),
  tipo_documento TEXT        NOT NULL
    CHECK (tipo_documento IN (
      'CI', 'KARDEX', 'COMPROBANTE_DOMICILIO', 'CERTIFICADO_INGRESOS', 'OTRO')),
  nombre_archivo TEXT        NOT NULL,
  ruta_digital   TEXT        NOT NULL,
  tamanho_bytes  BIGINT      NOT NULL CHECK (tamanho_bytes >= 0),
  mime_type      TEXT        NOT NULL,
  validado       BOOLEAN     NOT NULL DEFAULT FALSE,
  subido_por     BIGINT,
  fecha_subida   TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (id_tramite, tipo_documento)
);`,
	},
	{
		Name: "create_table_notificacion",
		SQL: `CREATE TABLE IF NOT EXISTS notificacion (
  id            BIGSERIAL   PRIMARY KEY,
  id_estudiante BIGINT      NOT NULL,
  id_tramite    BIGINT      REFERENCES tramite (id),
  tipo          TEXT        NOT NULL
    CHECK (tipo IN ('ALERTA', 'INFORMACION', 'RESULTADO')),
  titulo        TEXT        NOT NULL,
  mensaje       TEXT        NOT NULL,
  leido         BOOLEAN     NOT NULL DEFAULT FALSE,
  canal         TEXT        NOT NULL DEFAULT 'sistema',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_tramite_estado_actual",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_tramite_estado_actual ON tramite (estado_actual);`,
	},
	{
		Name: "create_index_tramite_historial_id_tramite",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_tramite_historial_id_tramite ON tramite_historial (id_tramite);`,
	},
	{
		Name: "create_index_tramite_historial_revisado_por",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_tramite_historial_revisado_por ON tramite_historial (revisado_por);`,
	},
	{
		Name: "create_index_postulacion_id_beca",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_postulacion_id_beca ON postulacion (id_beca);`,
	},
	{
		Name: "create_index_postulacion_id_estudiante",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_postulacion_id_estudiante ON postulacion (id_estudiante);`,
	},
	{
		Name: "create_index_notificacion_id_estudiante",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notificacion_id_estudiante ON notificacion (id_estudiante);`,
	},
}

// EnsureMigrated checks if the 'tramite' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.tramite') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
