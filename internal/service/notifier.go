package service

import (
	"context"

	"dubss/internal/model"
	"dubss/internal/repository"
)

// Notifier delivers a notification to a student. Delivery is fire-and-forget:
// implementations must never fail the workflow operation that triggered the
// notification; failures are logged and swallowed.
type Notifier interface {
	Notify(ctx context.Context, n model.Notificacion)
}

// repoNotifier persists notifications as rows through the "sistema" channel.
type repoNotifier struct {
	repo repository.NotificacionRepository
}

// NewRepoNotifier constructs a Notifier backed by the notification repository.
func NewRepoNotifier(repo repository.NotificacionRepository) Notifier {
	return &repoNotifier{repo: repo}
}

func (s *repoNotifier) Notify(ctx context.Context, n model.Notificacion) {
	if n.Canal == "" {
		n.Canal = "sistema"
	}
	if _, err := s.repo.Create(ctx, &n); err != nil {
		logEvent(map[string]any{
			"level":         "error",
			"event":         "notification_failed",
			"id_estudiante": n.IDEstudiante,
			"id_tramite":    n.IDTramite,
			"tipo":          string(n.Tipo),
			"error":         err.Error(),
		})
	}
}
