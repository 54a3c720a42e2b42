package employee

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"hrmadmin/internal/platform/apiclient"
	"hrmadmin/internal/platform/cache"
	"hrmadmin/internal/platform/metrics"
)

const (
	listPath = "/api/users"
	// The register endpoint doubles as employee-create.
	createPath = "/api/auth/register"

	listCacheKey = "employees:list"

	deleteAttempts = 2
)

func detailCacheKey(id int64) string {
	return fmt.Sprintf("employees:detail:%d", id)
}

// Service wraps the remote employee endpoints behind the query cache. Writes
// retry transient failures within a fixed budget; the retry is a blunt
// mitigation for a flaky network and does not deduplicate.
type Service struct {
	client        *apiclient.Client
	cache         *cache.Cache
	collector     *metrics.Collector
	readAttempts  int
	writeAttempts int
}

func NewService(client *apiclient.Client, queryCache *cache.Cache, collector *metrics.Collector, readAttempts, writeAttempts int) *Service {
	return &Service{
		client:        client,
		cache:         queryCache,
		collector:     collector,
		readAttempts:  readAttempts,
		writeAttempts: writeAttempts,
	}
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	if value, freshness := s.cache.Get(listCacheKey); freshness == cache.Fresh {
		return value.([]Employee), nil
	}

	var employees []Employee
	if _, err := s.client.DoRetry(ctx, s.readAttempts, http.MethodGet, listPath, nil, &employees); err != nil {
		if value, freshness := s.cache.Get(listCacheKey); freshness == cache.Stale {
			slog.Warn("employee list refetch failed, serving retained entry", "err", err)
			s.collector.RecordStaleFallback()
			return value.([]Employee), nil
		}
		return nil, err
	}

	s.cache.Set(listCacheKey, employees)
	return employees, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Employee, error) {
	key := detailCacheKey(id)
	if value, freshness := s.cache.Get(key); freshness == cache.Fresh {
		record := value.(Employee)
		return &record, nil
	}

	var record Employee
	if _, err := s.client.DoRetry(ctx, s.readAttempts, http.MethodGet, fmt.Sprintf("%s/%d", listPath, id), nil, &record); err != nil {
		if value, freshness := s.cache.Get(key); freshness == cache.Stale {
			slog.Warn("employee detail refetch failed, serving retained entry", "id", id, "err", err)
			s.collector.RecordStaleFallback()
			retained := value.(Employee)
			return &retained, nil
		}
		return nil, err
	}

	s.cache.Set(key, record)
	return &record, nil
}

// Create posts the merged record to the register endpoint and invalidates
// the list so the next render reflects the new row.
func (s *Service) Create(ctx context.Context, record map[string]any) error {
	if _, err := s.client.DoRetry(ctx, s.writeAttempts, http.MethodPost, createPath, record, nil); err != nil {
		return err
	}
	s.cache.Invalidate(listCacheKey)
	return nil
}

// Update puts the merged record and returns the server's message for the
// success banner.
func (s *Service) Update(ctx context.Context, id int64, record map[string]any) (string, error) {
	record["id"] = id
	message, err := s.client.DoRetry(ctx, s.writeAttempts, http.MethodPut, fmt.Sprintf("%s/%d", listPath, id), record, nil)
	if err != nil {
		return "", err
	}
	s.cache.Invalidate(listCacheKey)
	s.cache.Invalidate(detailCacheKey(id))
	return message, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.client.DoRetry(ctx, deleteAttempts, http.MethodDelete, fmt.Sprintf("%s/%d", listPath, id), nil, nil); err != nil {
		return err
	}
	s.cache.Invalidate(listCacheKey)
	s.cache.Invalidate(detailCacheKey(id))
	return nil
}
