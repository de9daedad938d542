package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// ImportRecordsTotal counts processed stock import records by outcome.
	ImportRecordsTotal *prometheus.CounterVec
	// DiscountCalcsTotal counts basket discount computations by outcome.
	DiscountCalcsTotal *prometheus.CounterVec
	// StockQuantityAdded accumulates quantities added through imports.
	StockQuantityAdded prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		ImportRecordsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_import_records_total",
			Help:      "Count of stock import records by outcome.",
		}, []string{"result"})
		DiscountCalcsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "basket_discount_calcs_total",
			Help:      "Count of basket discount computations by outcome.",
		}, []string{"result"})
		StockQuantityAdded = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_quantity_added_total",
			Help:      "Total stock quantity added through imports.",
		})

		mustRegisterCollector(reg, ImportRecordsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ImportRecordsTotal = v
			}
		})
		mustRegisterCollector(reg, DiscountCalcsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				DiscountCalcsTotal = v
			}
		})
		mustRegisterCollector(reg, StockQuantityAdded, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				StockQuantityAdded = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
