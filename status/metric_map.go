package status

import (
	"sort"
	"sync"
	"sync/atomic"
)

// MetricMap holds named metrics of type T. A key always resolves to the same
// pointer, so hot paths look it up once and keep it.
type MetricMap[T any] struct {
	items sync.Map // string -> *T
	count atomic.Int32
}

func NewMetricMap[T any]() *MetricMap[T] { return &MetricMap[T]{} }

func (m *MetricMap[T]) Get(key string) *T {
	if v, ok := m.items.Load(key); ok {
		return v.(*T)
	}
	v, loaded := m.items.LoadOrStore(key, new(T))
	if !loaded {
		m.count.Add(1)
	}
	return v.(*T)
}

func (m *MetricMap[T]) Has(key string) bool {
	_, ok := m.items.Load(key)
	return ok
}

// Range visits metrics in key order
func (m *MetricMap[T]) Range(fn func(key string, v *T)) {
	var keys []string
	m.items.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	sort.Strings(keys)
	for _, k := range keys {
		v, _ := m.items.Load(k)
		fn(k, v.(*T))
	}
}

func (m *MetricMap[T]) Count() int { return int(m.count.Load()) }
