package repository

import (
	"context"

	"dubss/internal/model"
)

// NotificacionRepository defines data access for student notifications.
type NotificacionRepository interface {
	// Create inserts a notification row.
	Create(ctx context.Context, n *model.Notificacion) (*model.Notificacion, error)

	// ListByEstudiante returns a student's notifications, newest first.
	ListByEstudiante(ctx context.Context, idEstudiante int64, pq PageQuery) (*PageResult[model.Notificacion], error)

	// MarkLeido flags a notification as read.
	MarkLeido(ctx context.Context, id int64) error
}
