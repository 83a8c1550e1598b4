package postgres

import (
	"context"
	"database/sql"

	"dubss/internal/model"
	"dubss/internal/repository"
)

// NotificacionPostgres is a PostgreSQL implementation of
// repository.NotificacionRepository.
type NotificacionPostgres struct {
	db *sql.DB
}

// NewNotificacionPostgres creates a new NotificacionPostgres repository.
func NewNotificacionPostgres(db *sql.DB) *NotificacionPostgres {
	return &NotificacionPostgres{db: db}
}

var _ repository.NotificacionRepository = (*NotificacionPostgres)(nil)

const notificacionColumns = `id, id_estudiante, id_tramite, tipo, titulo, mensaje, leido, canal, created_at`

// Create inserts a notification row.
func (r *NotificacionPostgres) Create(ctx context.Context, n *model.Notificacion) (*model.Notificacion, error) {
	const q = `
		INSERT INTO notificacion (id_estudiante, id_tramite, tipo, titulo, mensaje, leido, canal)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6)
		RETURNING ` + notificacionColumns
	var (
		out  model.Notificacion
		tipo string
	)
	if err := r.db.QueryRowContext(ctx, q,
		n.IDEstudiante,
		n.IDTramite,
		string(n.Tipo),
		n.Titulo,
		n.Mensaje,
		n.Canal,
	).Scan(
		&out.ID,
		&out.IDEstudiante,
		&out.IDTramite,
		&tipo,
		&out.Titulo,
		&out.Mensaje,
		&out.Leido,
		&out.Canal,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	out.Tipo = model.TipoNotificacion(tipo)
	return &out, nil
}

// ListByEstudiante returns a student's notifications, newest first.
func (r *NotificacionPostgres) ListByEstudiante(ctx context.Context, idEstudiante int64, pq repository.PageQuery) (*repository.PageResult[model.Notificacion], error) {
	const qCount = `SELECT COUNT(*) FROM notificacion WHERE id_estudiante = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, idEstudiante).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + notificacionColumns + `
		FROM notificacion
		WHERE id_estudiante = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, idEstudiante, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Notificacion, 0)
	for rows.Next() {
		var (
			n    model.Notificacion
			tipo string
		)
		if err := rows.Scan(&n.ID, &n.IDEstudiante, &n.IDTramite, &tipo, &n.Titulo, &n.Mensaje, &n.Leido, &n.Canal, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Tipo = model.TipoNotificacion(tipo)
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Notificacion]{Items: items, Total: total}, nil
}

// MarkLeido flags a notification as read. Missing rows are not an error.
func (r *NotificacionPostgres) MarkLeido(ctx context.Context, id int64) error {
	const q = `UPDATE notificacion SET leido = TRUE WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
