package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the FLUS Prometheus metrics. Services increment through
// it so handlers stay free of metric plumbing.
type Collector struct {
	jobsCreated   prometheus.Counter
	applications  prometheus.Counter
	selections    prometheus.Counter
	jobsCompleted prometheus.Counter
	messagesSent  prometheus.Counter
	httpStatus    *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		jobsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flus_jobs_created_total",
			Help: "Total number of jobs posted.",
		}),
		applications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flus_applications_submitted_total",
			Help: "Total number of job applications submitted.",
		}),
		selections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flus_candidate_selections_total",
			Help: "Total number of successful candidate selections.",
		}),
		jobsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flus_jobs_completed_total",
			Help: "Total number of jobs marked completed.",
		}),
		messagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flus_messages_sent_total",
			Help: "Total number of chat messages sent.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flus_http_status_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.jobsCreated,
		c.applications,
		c.selections,
		c.jobsCompleted,
		c.messagesSent,
		c.httpStatus,
	)

	return c
}

func (c *Collector) RecordJobCreated()   { c.jobsCreated.Inc() }
func (c *Collector) RecordApplication()  { c.applications.Inc() }
func (c *Collector) RecordSelection()    { c.selections.Inc() }
func (c *Collector) RecordJobCompleted() { c.jobsCompleted.Inc() }
func (c *Collector) RecordMessageSent()  { c.messagesSent.Inc() }
func (c *Collector) RecordHTTPStatus(code string) {
	c.httpStatus.WithLabelValues(code).Inc()
}
