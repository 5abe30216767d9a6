package jobs

import (
	"context"
	"log/slog"
	"time"

	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// ProductionAlertJob periodically derives attention alerts from the current
// order snapshot and logs them, so overdue and problem orders surface in the
// operational logs even when nobody is watching the dashboard.
type ProductionAlertJob struct {
	handler  queries.GetAlertsQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewProductionAlertJob creates the alert sweep job. schedule is a standard
// five-field cron expression, e.g. "*/5 * * * *" for every five minutes.
func NewProductionAlertJob(
	handler queries.GetAlertsQueryHandler,
	schedule string,
	logger *slog.Logger,
) *ProductionAlertJob {
	return &ProductionAlertJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "production_alert_job"),
	}
}

// Start begins the periodic alert sweep.
func (j *ProductionAlertJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Production alert job started",
		"schedule", j.schedule)
	return nil
}

// Stop stops the alert sweep job.
func (j *ProductionAlertJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Production alert job stopped")
}

func (j *ProductionAlertJob) sweep() {
	ctx := context.Background()

	query := queries.NewGetAlertsQuery(time.Now())

	alerts, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Production alert sweep failed", "error", err)
		return
	}

	for _, alert := range alerts {
		level := slog.LevelInfo
		if alert.Severity == services.AlertSeverityHigh {
			level = slog.LevelWarn
		}

		j.logger.LogAttrs(ctx, level, "Production order needs attention",
			slog.String("orderId", alert.OrderID.String()),
			slog.String("jobTitle", alert.JobTitle),
			slog.String("type", string(alert.Type)),
			slog.String("severity", alert.Severity.String()),
			slog.String("message", alert.Message),
		)
	}
}
