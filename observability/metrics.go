package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"

	TriggerValidate  = "validate"
	TriggerSweep     = "sweep"
	TriggerTerminate = "terminate"
)

var (
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messenger_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"result"},
	)

	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "messenger_users_registered_total",
			Help: "Accounts created",
		},
	)

	MessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messenger_messages_sent_total",
			Help: "Messages appended to a chat",
		},
		[]string{"kind"}, // "text" or "image"
	)

	// SessionsClosed counts active->inactive transitions by what observed them.
	SessionsClosed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messenger_sessions_closed_total",
			Help: "Sessions deactivated, by trigger",
		},
		[]string{"trigger"},
	)

	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messenger_notifications_created_total",
			Help: "Notifications created, by type",
		},
		[]string{"type"},
	)

	MediaUploaded = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "messenger_media_upload_bytes",
			Help:    "Size of uploaded media files",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
	)
)

var (
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "messenger_active_sessions",
			Help: "Sessions still active after the last sweep",
		},
	)

	ProcessCPU = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "messenger_process_cpu_percent",
			Help: "CPU usage of the messenger process",
		},
	)

	ProcessMemory = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "messenger_process_memory_percent",
			Help: "Share of system memory used by the messenger process",
		},
	)

	ProcessRSS = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "messenger_process_resident_bytes",
			Help: "Resident set size of the messenger process",
		},
	)
)
