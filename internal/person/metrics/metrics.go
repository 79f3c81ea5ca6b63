package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for person mutations.
type Metrics struct {
	PersonsCreated prometheus.Counter
	PersonsUpdated prometheus.Counter
	PersonsDeleted prometheus.Counter
}

// New creates and registers the person metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		PersonsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_persons_created_total",
			Help: "Total number of persons created",
		}),
		PersonsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_persons_updated_total",
			Help: "Total number of persons updated",
		}),
		PersonsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_persons_deleted_total",
			Help: "Total number of persons deleted",
		}),
	}
}
