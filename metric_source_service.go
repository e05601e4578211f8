package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hotabics/pitchtimerai-sub001/dbpool"
	"github.com/hotabics/pitchtimerai-sub001/i18n"
)

// metricQueryTimeout bounds every metric-source query.
const metricQueryTimeout = 15 * time.Second

// MetricSource is a registered read-only SQL source that feeds one scalar
// into a big-number slide. DSN is a file path for SQLite, a driver DSN for
// MySQL and Snowflake.
type MetricSource struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Engine string `json:"engine"` // sqlite, mysql or snowflake
	DSN    string `json:"dsn"`
	Query  string `json:"query"`
}

// MetricSourceService manages the metric-source registry and refreshes
// big-number slides from live queries. The registry is a JSON file under the
// data directory; connections are opened per operation and never held.
type MetricSourceService struct {
	mu      sync.Mutex
	dataDir string
	logger  func(string)
	store   *DeckStoreService
	manager *dbpool.DBManager
	sources []MetricSource
}

// NewMetricSourceService creates the registry bound to a data directory.
func NewMetricSourceService(dataDir string, store *DeckStoreService, logger func(string)) *MetricSourceService {
	return &MetricSourceService{
		dataDir: dataDir,
		logger:  logger,
		store:   store,
		manager: dbpool.New(dbpool.EngineSQLite, logger),
	}
}

// Name returns the service name
func (ms *MetricSourceService) Name() string {
	return "metric_source"
}

// Initialize loads the registry file; a missing file means no sources yet.
func (ms *MetricSourceService) Initialize(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	data, err := os.ReadFile(ms.registryPath())
	if os.IsNotExist(err) {
		ms.sources = []MetricSource{}
		return nil
	}
	if err != nil {
		return WrapError("metric_source", "Initialize", err)
	}
	if err := json.Unmarshal(data, &ms.sources); err != nil {
		return WrapError("metric_source", "Initialize", err)
	}
	ms.logf("[METRIC] Loaded %d metric sources", len(ms.sources))
	return nil
}

// Shutdown releases metric source resources (connections are per-operation)
func (ms *MetricSourceService) Shutdown() error {
	return nil
}

func (ms *MetricSourceService) registryPath() string {
	return filepath.Join(ms.dataDir, "metric_sources.json")
}

// saveLocked persists the registry. Caller holds ms.mu.
func (ms *MetricSourceService) saveLocked() error {
	if err := os.MkdirAll(ms.dataDir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(ms.sources, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(ms.registryPath(), data, 0600)
}

// AddSource registers a new metric source and persists the registry.
func (ms *MetricSourceService) AddSource(name, engine, dsn, query string) (MetricSource, error) {
	if !dbpool.IsValidEngine(engine) {
		return MetricSource{}, errors.New(i18n.T("metric.unsupported_engine", engine))
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(dsn) == "" || strings.TrimSpace(query) == "" {
		return MetricSource{}, WrapError("metric_source", "AddSource", errors.New("name, dsn and query are required"))
	}

	src := MetricSource{
		ID:     uuid.NewString(),
		Name:   strings.TrimSpace(name),
		Engine: engine,
		DSN:    dsn,
		Query:  strings.TrimSpace(query),
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.sources = append(ms.sources, src)
	if err := ms.saveLocked(); err != nil {
		ms.sources = ms.sources[:len(ms.sources)-1]
		return MetricSource{}, WrapError("metric_source", "AddSource", err)
	}
	ms.logf("[METRIC] %s (%s)", i18n.T("metric.added", src.Name), src.Engine)
	return src, nil
}

// ListSources returns the registered sources in insertion order.
func (ms *MetricSourceService) ListSources() []MetricSource {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	out := make([]MetricSource, len(ms.sources))
	copy(out, ms.sources)
	return out
}

// RemoveSource deletes a source from the registry.
func (ms *MetricSourceService) RemoveSource(id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for i, src := range ms.sources {
		if src.ID == id {
			removed := src
			ms.sources = append(ms.sources[:i], ms.sources[i+1:]...)
			if err := ms.saveLocked(); err != nil {
				ms.sources = append(ms.sources[:i], append([]MetricSource{removed}, ms.sources[i:]...)...)
				return WrapError("metric_source", "RemoveSource", err)
			}
			ms.logf("[METRIC] %s (%q)", i18n.T("metric.removed"), removed.Name)
			return nil
		}
	}
	return errors.New(i18n.T("metric.not_found"))
}

// sourceByID returns a copy of the registered source.
func (ms *MetricSourceService) sourceByID(id string) (MetricSource, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for _, src := range ms.sources {
		if src.ID == id {
			return src, true
		}
	}
	return MetricSource{}, false
}

// open connects to the source read-only with a single attempt, so a dead
// source fails fast instead of cycling the retry backoff.
func (ms *MetricSourceService) open(src MetricSource) (*sql.DB, error) {
	db, err := ms.manager.Open(dbpool.OpenOptions{
		Engine:     dbpool.Engine(src.Engine),
		Path:       src.DSN,
		Mode:       dbpool.ModeReadOnly,
		MaxRetries: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("%s", i18n.T("metric.connection_failed", err.Error()))
	}
	return db, nil
}

// TestSource verifies the source is reachable.
func (ms *MetricSourceService) TestSource(id string) error {
	src, ok := ms.sourceByID(id)
	if !ok {
		return errors.New(i18n.T("metric.not_found"))
	}

	db, err := ms.open(src)
	if err != nil {
		return err
	}
	defer db.Close()
	return nil
}

// ListTables lists the user tables visible in the source, for query authoring.
func (ms *MetricSourceService) ListTables(id string) ([]string, error) {
	src, ok := ms.sourceByID(id)
	if !ok {
		return nil, errors.New(i18n.T("metric.not_found"))
	}

	db, err := ms.open(src)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), metricQueryTimeout)
	defer cancel()

	dialect := dbpool.NewDialect(dbpool.Engine(src.Engine))
	rows, err := db.QueryContext(ctx, dialect.ListTablesQuery())
	if err != nil {
		return nil, fmt.Errorf("%s", i18n.T("metric.query_failed", err.Error()))
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%s", i18n.T("metric.query_failed", err.Error()))
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// RefreshSlideMetric runs the source query and writes the scalar result into
// the slide's figure line. Only big-number slides accept a metric refresh;
// the rest of the slide content is preserved.
func (ms *MetricSourceService) RefreshSlideMetric(ctx context.Context, sourceID string, slideID int) error {
	src, ok := ms.sourceByID(sourceID)
	if !ok {
		return errors.New(i18n.T("metric.not_found"))
	}

	slide, found := ms.store.SlideByID(slideID)
	if !found {
		return errors.New(i18n.T("deck.slide_not_found", slideID))
	}
	if slide.Type != SlideTypeBigNumber {
		return errors.New(i18n.T("metric.not_big_number"))
	}

	db, err := ms.open(src)
	if err != nil {
		return err
	}
	defer db.Close()

	qctx, cancel := context.WithTimeout(ctx, metricQueryTimeout)
	defer cancel()

	var value interface{}
	if err := db.QueryRowContext(qctx, src.Query).Scan(&value); err != nil {
		return fmt.Errorf("%s", i18n.T("metric.query_failed", err.Error()))
	}

	figure := formatMetricValue(value)
	content := make([]string, len(slide.Content))
	copy(content, slide.Content)
	if len(content) == 0 {
		content = []string{figure}
	} else {
		content[0] = figure
	}

	if !ms.store.UpdateSlide(slideID, SlidePatch{Content: &content}) {
		return errors.New(i18n.T("deck.slide_not_found", slideID))
	}
	ms.logf("[METRIC] %s: slide %d = %s", i18n.T("metric.refresh_success", src.Name), slideID, figure)
	return nil
}

// formatMetricValue renders a scanned scalar the way it should appear on the
// slide: integers without decimals, floats trimmed, byte slices as text.
func formatMetricValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "—"
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []byte:
		return string(val)
	case string:
		return val
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// logf writes a formatted message through the injected logger
func (ms *MetricSourceService) logf(format string, args ...interface{}) {
	if ms.logger != nil {
		ms.logger(fmt.Sprintf(format, args...))
	}
}
