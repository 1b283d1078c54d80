// Package metrics exports Prometheus metrics about committed lifecycle changes
// and HTTP traffic.
package metrics

import (
	"context"
	"strconv"

	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/delivery"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/waste"
	"donations/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "donations"

// Observer implements ports.CommitObserver. Counters grow by one for every
// committed write of an aggregate in a given status; center gauges follow the
// last committed load and capacity.
type Observer struct {
	donationWrites *prometheus.CounterVec
	deliveryWrites *prometheus.CounterVec
	wasteWrites    *prometheus.CounterVec
	centerLoad     *prometheus.GaugeVec
	centerCapacity *prometheus.GaugeVec
	httpRequests   *prometheus.CounterVec
}

var _ ports.CommitObserver = (*Observer)(nil)

// NewObserver creates the collectors and registers them with reg.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		donationWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "donation_writes_total",
			Help:      "Committed donation writes by resulting status",
		}, []string{"status"}),
		deliveryWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "delivery_writes_total",
			Help:      "Committed delivery writes by resulting status",
		}, []string{"status"}),
		wasteWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "waste_writes_total",
			Help:      "Committed waste writes by resulting status",
		}, []string{"status"}),
		centerLoad: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "center_load",
			Help:      "Current load of a collection center",
		}, []string{"center"}),
		centerCapacity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "center_capacity",
			Help:      "Maximum capacity of a collection center",
		}, []string{"center"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code",
		}, []string{"method", "route", "code"}),
	}

	for _, c := range []prometheus.Collector{
		o.donationWrites, o.deliveryWrites, o.wasteWrites,
		o.centerLoad, o.centerCapacity, o.httpRequests,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Committed counts the aggregates of one transaction by kind and status, and
// refreshes the load gauges of committed centers.
func (o *Observer) Committed(_ context.Context, aggregates []any) {
	for _, aggregate := range aggregates {
		switch a := aggregate.(type) {
		case *donation.Donation:
			o.donationWrites.WithLabelValues(a.Status().String()).Inc()
		case *delivery.Delivery:
			o.deliveryWrites.WithLabelValues(a.Status().String()).Inc()
		case *waste.Waste:
			o.wasteWrites.WithLabelValues(a.Status().String()).Inc()
		case *center.CollectionCenter:
			o.centerLoad.WithLabelValues(a.ID().String()).Set(float64(a.CurrentLoad()))
			o.centerCapacity.WithLabelValues(a.ID().String()).Set(float64(a.MaxCapacity()))
		}
	}
}

// ObserveRequest counts one served HTTP request.
func (o *Observer) ObserveRequest(method, route string, code int) {
	o.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}
