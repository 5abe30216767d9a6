package services

import (
	"fmt"
	"sort"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
)

// AlertType classifies why an order needs attention.
type AlertType string

const (
	// AlertTypeOverdue fires when the estimated delivery date has passed.
	AlertTypeOverdue AlertType = "overdue"

	// AlertTypeDueToday fires on the estimated delivery date itself.
	AlertTypeDueToday AlertType = "due_today"

	// AlertTypeUnresolvedIssue fires while any issue chain on the order is
	// still pending.
	AlertTypeUnresolvedIssue AlertType = "unresolved_issue"
)

// AlertSeverity ranks alerts for display ordering.
type AlertSeverity int

const (
	// AlertSeverityMedium marks alerts that need attention soon.
	AlertSeverityMedium AlertSeverity = iota + 1

	// AlertSeverityHigh marks alerts that need attention now.
	AlertSeverityHigh
)

// String returns the wire name of the severity.
func (s AlertSeverity) String() string {
	if s == AlertSeverityHigh {
		return "high"
	}
	return "medium"
}

// Alert is one attention signal derived from an order's state. An order may
// contribute several alerts at once, e.g. overdue and unresolved_issue.
type Alert struct {
	OrderID           kernel.UUID
	JobID             kernel.UUID
	JobTitle          string
	Type              AlertType
	Severity          AlertSeverity
	Message           string
	EstimatedDelivery *time.Time
}

// AlertDeriver computes attention alerts from a snapshot of orders. It is a
// pure function of its inputs: no clock, no storage, no side effects, so the
// same snapshot and instant always produce the same alerts.
type AlertDeriver interface {
	Derive(orders []*order.ProductionOrder, now time.Time) []Alert
}

var _ AlertDeriver = &alertDeriver{}

type alertDeriver struct{}

// NewAlertDeriver creates the stateless alert deriver.
func NewAlertDeriver() AlertDeriver {
	return &alertDeriver{}
}

// Derive walks the snapshot and emits overdue, due-today and
// unresolved-issue alerts. Completed orders never alert. Date comparison is
// calendar-day only. The result is stably ordered: severity descending,
// then estimated delivery ascending with undated orders last.
func (d *alertDeriver) Derive(orders []*order.ProductionOrder, now time.Time) []Alert {
	alerts := make([]Alert, 0)
	for _, o := range orders {
		if o.Status() == order.StatusCompleted {
			continue
		}

		overdue := o.IsOverdue(now)
		if overdue {
			alerts = append(alerts, Alert{
				OrderID:           o.ID(),
				JobID:             o.JobID(),
				JobTitle:          o.JobTitle(),
				Type:              AlertTypeOverdue,
				Severity:          AlertSeverityHigh,
				Message:           fmt.Sprintf("order for %q is past its estimated delivery date", o.JobTitle()),
				EstimatedDelivery: o.EstimatedDelivery(),
			})
		}
		if o.IsDueToday(now) {
			alerts = append(alerts, Alert{
				OrderID:           o.ID(),
				JobID:             o.JobID(),
				JobTitle:          o.JobTitle(),
				Type:              AlertTypeDueToday,
				Severity:          AlertSeverityMedium,
				Message:           fmt.Sprintf("order for %q is due today", o.JobTitle()),
				EstimatedDelivery: o.EstimatedDelivery(),
			})
		}
		if o.HasPendingIssues() {
			severity := AlertSeverityMedium
			if overdue {
				severity = AlertSeverityHigh
			}
			alerts = append(alerts, Alert{
				OrderID:           o.ID(),
				JobID:             o.JobID(),
				JobTitle:          o.JobTitle(),
				Type:              AlertTypeUnresolvedIssue,
				Severity:          severity,
				Message:           fmt.Sprintf("order for %q has unresolved delivery issues", o.JobTitle()),
				EstimatedDelivery: o.EstimatedDelivery(),
			})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Severity != alerts[j].Severity {
			return alerts[i].Severity > alerts[j].Severity
		}
		left, right := alerts[i].EstimatedDelivery, alerts[j].EstimatedDelivery
		switch {
		case left == nil:
			return false
		case right == nil:
			return true
		default:
			return left.Before(*right)
		}
	})

	return alerts
}
