package intake

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts intake activity.
type Metrics struct {
	uploads     *prometheus.CounterVec
	submissions *prometheus.CounterVec
}

// NewMetrics registers the intake counters on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "burial_uploads_total",
				Help: "Attachment uploads attempted, by result.",
			},
			[]string{"result"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "burial_submissions_total",
				Help: "Record submissions, by mode and result.",
			},
			[]string{"mode", "result"},
		),
	}

	for _, c := range []prometheus.Collector{m.uploads, m.submissions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) upload(err error) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) submission(mode Mode, outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(string(mode), outcome).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
