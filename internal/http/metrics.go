package http

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
)

// metrics tracks request counters exposed at /metrics in plaintext.
type metrics struct {
	mu          sync.Mutex
	byStatus    map[int]int64
	byMethod    map[string]int64
	total       atomic.Int64
	rateLimited atomic.Int64
}

func newMetrics() *metrics {
	return &metrics{
		byStatus: make(map[int]int64),
		byMethod: make(map[string]int64),
	}
}

func (m *metrics) observe(method string, status int) {
	m.total.Add(1)
	m.mu.Lock()
	m.byMethod[method]++
	m.byStatus[status]++
	m.mu.Unlock()
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	m := s.metrics
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	fmt.Fprintf(w, "http_requests_total %d\n", m.total.Load())
	fmt.Fprintf(w, "http_requests_rate_limited_total %d\n", m.rateLimited.Load())

	m.mu.Lock()
	methods := make([]string, 0, len(m.byMethod))
	for method := range m.byMethod {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	statuses := make([]int, 0, len(m.byStatus))
	for status := range m.byStatus {
		statuses = append(statuses, status)
	}
	sort.Ints(statuses)

	for _, method := range methods {
		fmt.Fprintf(w, "http_requests_total{method=%q} %d\n", method, m.byMethod[method])
	}
	for _, status := range statuses {
		fmt.Fprintf(w, "http_requests_total{status=\"%d\"} %d\n", status, m.byStatus[status])
	}
	m.mu.Unlock()
}
