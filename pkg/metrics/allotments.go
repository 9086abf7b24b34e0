package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// AllotmentMetrics records allocation activity and room occupancy.
type AllotmentMetrics struct {
	allocated *prometheus.CounterVec
	vacated   *prometheus.CounterVec
	conflicts *prometheus.CounterVec
	occupancy *prometheus.GaugeVec
}

// NewAllotmentMetrics registers the allotment metrics on the provided registerer.
func NewAllotmentMetrics(reg prometheus.Registerer) *AllotmentMetrics {
	if reg == nil {
		return &AllotmentMetrics{}
	}
	allocated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "allotments_allocated_total",
		Help: "Room allotments successfully created.",
	}, []string{"hostel"})
	vacated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "allotments_vacated_total",
		Help: "Room allotments vacated.",
	}, []string{"hostel"})
	conflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "allotments_conflicts_total",
		Help: "Allocation attempts rejected by a business rule.",
	}, []string{"reason"})
	occupancy := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "hostel_occupancy_percent",
		Help: "Latest reported occupancy percentage per hostel.",
	}, []string{"hostel"})
	reg.MustRegister(allocated, vacated, conflicts, occupancy)
	return &AllotmentMetrics{
		allocated: allocated,
		vacated:   vacated,
		conflicts: conflicts,
		occupancy: occupancy,
	}
}

// IncAllocated increments the allocation counter for the named hostel.
func (a *AllotmentMetrics) IncAllocated(hostel string) {
	if a == nil || a.allocated == nil {
		return
	}
	a.allocated.WithLabelValues(normalizeLabel(hostel)).Inc()
}

// IncVacated increments the vacate counter for the named hostel.
func (a *AllotmentMetrics) IncVacated(hostel string) {
	if a == nil || a.vacated == nil {
		return
	}
	a.vacated.WithLabelValues(normalizeLabel(hostel)).Inc()
}

// IncConflict increments the conflict counter for the given rejection reason.
func (a *AllotmentMetrics) IncConflict(reason string) {
	if a == nil || a.conflicts == nil {
		return
	}
	a.conflicts.WithLabelValues(normalizeLabel(reason)).Inc()
}

// SetOccupancy records the occupancy percentage for the named hostel.
func (a *AllotmentMetrics) SetOccupancy(hostel string, percent float64) {
	if a == nil || a.occupancy == nil {
		return
	}
	a.occupancy.WithLabelValues(normalizeLabel(hostel)).Set(percent)
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
