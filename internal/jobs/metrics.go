package jobs

import "github.com/prometheus/client_golang/prometheus"

var (
	jobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vozclient_job_runs_total",
			Help: "Total background job runs",
		},
		[]string{"job"},
	)

	jobErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vozclient_job_errors_total",
			Help: "Total background job errors",
		},
		[]string{"job"},
	)

	jobDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vozclient_job_duration_seconds",
			Help:    "Background job duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"job"},
	)

	rosterChildren = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vozclient_roster_children",
		Help: "Children known to the sync agent",
	})

	rosterAssignments = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vozclient_roster_assignments",
		Help: "Assignments loaded by the last roster refresh",
	})
)

func init() {
	prometheus.MustRegister(jobRuns, jobErrors, jobDuration, rosterChildren, rosterAssignments)
}
