package service

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"dreamscribe/internal/model"
	"dreamscribe/internal/repository"
)

var activityRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dreamscribe_activity_records_total",
		Help: "Activity log writes by type and outcome.",
	},
	[]string{"type", "status"},
)

// ActivityRecorder пишет записи в журнал активности мира.
type ActivityRecorder struct {
	repo   repository.ActivityRepository
	logger *zap.Logger
}

func NewActivityRecorder(repo repository.ActivityRepository, logger *zap.Logger) *ActivityRecorder {
	return &ActivityRecorder{repo: repo, logger: logger.Named("ActivityRecorder")}
}

// Record добавляет запись. Ошибка только логируется: основное изменение не откатывается.
func (r *ActivityRecorder) Record(ctx context.Context, worldID int64, activityType model.ActivityType, entityID *int64, description string) {
	_, err := r.repo.CreateActivityLog(ctx, model.InsertActivityLog{
		WorldID:      worldID,
		ActivityType: activityType,
		EntityID:     entityID,
		Description:  description,
	})
	if err != nil {
		activityRecordedTotal.WithLabelValues(string(activityType), "error").Inc()
		r.logger.Error("Failed to record activity",
			zap.Int64("worldID", worldID),
			zap.String("type", string(activityType)),
			zap.Error(err),
		)
		return
	}
	activityRecordedTotal.WithLabelValues(string(activityType), "success").Inc()
}

func idRef(id int64) *int64 {
	return &id
}
