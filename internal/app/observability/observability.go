package observability

import (
	"database/sql"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"quizgym/internal/logging"
)

type key struct {
	Method string
	Path   string
	Status int
}

type stat struct {
	Count     int64
	LatencyMS float64
}

type importStats struct {
	Imports        int64
	QuizzesCreated int64
	RowErrors      int64
	PersistFailed  int64
}

type Collector struct {
	db *sql.DB

	mu           sync.RWMutex
	requestStats map[key]stat
	imports      importStats
	startedAt    time.Time
}

func NewCollector(db *sql.DB) *Collector {
	return &Collector{
		db:           db,
		requestStats: make(map[key]stat),
		startedAt:    time.Now(),
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		latencyMS := float64(time.Since(start).Microseconds()) / 1000.0
		path := normalizedPath(r.URL.Path)

		c.mu.Lock()
		k := key{Method: r.Method, Path: path, Status: rec.status}
		s := c.requestStats[k]
		s.Count++
		s.LatencyMS += latencyMS
		c.requestStats[k] = s
		c.mu.Unlock()

		attrs := []any{
			"method", r.Method,
			"path", path,
			"status", rec.status,
			"latency_ms", latencyMS,
			"remote_ip", strings.TrimSpace(r.RemoteAddr),
		}
		if topicID := extractTopicID(r.URL.Path); topicID > 0 {
			attrs = append(attrs, "topic_id", topicID)
		}
		logging.FromContext(r.Context()).Info("request", attrs...)
	})
}

// RecordImport counts one finished spreadsheet import.
func (c *Collector) RecordImport(created, rowErrors int, persistFailed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.imports.Imports++
	c.imports.QuizzesCreated += int64(created)
	c.imports.RowErrors += int64(rowErrors)
	if persistFailed {
		c.imports.PersistFailed++
	}
}

func (c *Collector) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	c.mu.RLock()
	statsCopy := make(map[key]stat, len(c.requestStats))
	for k, v := range c.requestStats {
		statsCopy[k] = v
	}
	imports := c.imports
	startedAt := c.startedAt
	c.mu.RUnlock()

	keys := make([]key, 0, len(statsCopy))
	for k := range statsCopy {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Method != keys[j].Method {
			return keys[i].Method < keys[j].Method
		}
		if keys[i].Path != keys[j].Path {
			return keys[i].Path < keys[j].Path
		}
		return keys[i].Status < keys[j].Status
	})

	var sb strings.Builder
	sb.WriteString("# quizgym observability metrics\n")
	sb.WriteString("# TYPE quizgym_uptime_seconds gauge\n")
	sb.WriteString(fmt.Sprintf("quizgym_uptime_seconds %.0f\n", time.Since(startedAt).Seconds()))

	sb.WriteString("# TYPE quizgym_http_requests_total counter\n")
	sb.WriteString("# TYPE quizgym_http_request_latency_ms_sum counter\n")
	sb.WriteString("# TYPE quizgym_http_request_latency_ms_avg gauge\n")
	for _, k := range keys {
		s := statsCopy[k]
		labels := fmt.Sprintf("method=\"%s\",path=\"%s\",status=\"%d\"", k.Method, k.Path, k.Status)
		sb.WriteString(fmt.Sprintf("quizgym_http_requests_total{%s} %d\n", labels, s.Count))
		sb.WriteString(fmt.Sprintf("quizgym_http_request_latency_ms_sum{%s} %.3f\n", labels, s.LatencyMS))
		avg := 0.0
		if s.Count > 0 {
			avg = s.LatencyMS / float64(s.Count)
		}
		sb.WriteString(fmt.Sprintf("quizgym_http_request_latency_ms_avg{%s} %.3f\n", labels, avg))
	}

	sb.WriteString("# TYPE quizgym_import_total counter\n")
	sb.WriteString(fmt.Sprintf("quizgym_import_total %d\n", imports.Imports))
	sb.WriteString("# TYPE quizgym_import_quizzes_created_total counter\n")
	sb.WriteString(fmt.Sprintf("quizgym_import_quizzes_created_total %d\n", imports.QuizzesCreated))
	sb.WriteString("# TYPE quizgym_import_row_errors_total counter\n")
	sb.WriteString(fmt.Sprintf("quizgym_import_row_errors_total %d\n", imports.RowErrors))
	sb.WriteString("# TYPE quizgym_import_persist_failures_total counter\n")
	sb.WriteString(fmt.Sprintf("quizgym_import_persist_failures_total %d\n", imports.PersistFailed))

	if c.db != nil {
		dbs := c.db.Stats()
		sb.WriteString("# TYPE quizgym_db_open_connections gauge\n")
		sb.WriteString(fmt.Sprintf("quizgym_db_open_connections %d\n", dbs.OpenConnections))
		sb.WriteString("# TYPE quizgym_db_in_use_connections gauge\n")
		sb.WriteString(fmt.Sprintf("quizgym_db_in_use_connections %d\n", dbs.InUse))
		sb.WriteString("# TYPE quizgym_db_idle_connections gauge\n")
		sb.WriteString(fmt.Sprintf("quizgym_db_idle_connections %d\n", dbs.Idle))
		sb.WriteString("# TYPE quizgym_db_wait_count counter\n")
		sb.WriteString(fmt.Sprintf("quizgym_db_wait_count %d\n", dbs.WaitCount))
		sb.WriteString("# TYPE quizgym_db_wait_duration_ms counter\n")
		sb.WriteString(fmt.Sprintf("quizgym_db_wait_duration_ms %.3f\n", float64(dbs.WaitDuration.Microseconds())/1000.0))
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(sb.String()))
}

func normalizedPath(path string) string {
	if path == "" {
		return "/"
	}
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if _, err := strconv.ParseInt(p, 10, 64); err == nil {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}

// extractTopicID finds the topic id in /api/topics/{id} and
// /api/quizzes/topic/{id}.
func extractTopicID(path string) int64 {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "topics" || parts[i] == "topic" {
			if id, err := strconv.ParseInt(parts[i+1], 10, 64); err == nil {
				return id
			}
		}
	}
	return 0
}
