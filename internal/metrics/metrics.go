package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotificationsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "erp_notifications_emitted_total",
			Help: "Notifications published, by severity",
		},
		[]string{"severity"},
	)

	SalesCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "erp_sales_completed_total",
			Help: "Sales created successfully",
		},
	)

	SalesCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "erp_sales_cancelled_total",
			Help: "Sales cancelled",
		},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "erp_login_attempts_total",
			Help: "Login attempts, by outcome",
		},
		[]string{"outcome"},
	)
)
