package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	"github.com/prometheus/client_golang/prometheus"
)

// Métricas de storage. Viven en un paquete aparte para evitar ciclos de import
// entre los adapters de store y el paquete HTTP.

var (
	StoreOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_operations_total",
		Help: "Operaciones de storage por recurso, operación y resultado",
	}, []string{"resource", "op", "result"}) // result: ok|not_found|duplicate|error

	StoreOperationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_operation_duration_seconds",
		Help:    "Latencia de operaciones de storage",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"resource", "op"})
)

// RegisterStore registra las métricas de storage en el registry dado (o el global si es nil).
func RegisterStore(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{StoreOperationsTotal, StoreOperationDuration} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return err
			}
		}
	}
	return nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case repository.IsNotFound(err):
		return "not_found"
	case repository.IsDuplicateID(err):
		return "duplicate"
	default:
		return "error"
	}
}

// instrumented decora un ResourceStore registrando conteo y latencia por operación.
type instrumented[T any] struct {
	resource string
	next     repository.ResourceStore[T]
}

// Instrument envuelve el store con métricas etiquetadas por resource.
func Instrument[T any](resource string, next repository.ResourceStore[T]) repository.ResourceStore[T] {
	return &instrumented[T]{resource: resource, next: next}
}

func (s *instrumented[T]) observe(op string, start time.Time, err error) {
	StoreOperationDuration.WithLabelValues(s.resource, op).Observe(time.Since(start).Seconds())
	StoreOperationsTotal.WithLabelValues(s.resource, op, resultLabel(err)).Inc()
}

func (s *instrumented[T]) Insert(ctx context.Context, rec T) (out T, err error) {
	start := time.Now()
	defer func() { s.observe("insert", start, err) }()
	out, err = s.next.Insert(ctx, rec)
	return out, err
}

func (s *instrumented[T]) List(ctx context.Context, page repository.Page) (out []T, err error) {
	start := time.Now()
	defer func() { s.observe("list", start, err) }()
	out, err = s.next.List(ctx, page)
	return out, err
}

func (s *instrumented[T]) Get(ctx context.Context, id int64) (out T, err error) {
	start := time.Now()
	defer func() { s.observe("get", start, err) }()
	out, err = s.next.Get(ctx, id)
	return out, err
}

func (s *instrumented[T]) Replace(ctx context.Context, id int64, rec T) (out T, err error) {
	start := time.Now()
	defer func() { s.observe("replace", start, err) }()
	out, err = s.next.Replace(ctx, id, rec)
	return out, err
}

func (s *instrumented[T]) Delete(ctx context.Context, id int64) (err error) {
	start := time.Now()
	defer func() { s.observe("delete", start, err) }()
	err = s.next.Delete(ctx, id)
	return err
}

func (s *instrumented[T]) Count(ctx context.Context) (n int, err error) {
	start := time.Now()
	defer func() { s.observe("count", start, err) }()
	n, err = s.next.Count(ctx)
	return n, err
}
