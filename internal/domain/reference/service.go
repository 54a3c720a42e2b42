package reference

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"hrmadmin/internal/platform/apiclient"
	"hrmadmin/internal/platform/cache"
)

// Service is the shared list/get/create/update/delete surface over one
// reference endpoint. Reads go through the query cache; writes invalidate
// the list entry so the next render refetches.
type Service[T any] struct {
	client       *apiclient.Client
	cache        *cache.Cache
	path         string // e.g. /api/departments
	cacheName    string // e.g. departments
	bulkCreate   bool
	readAttempts int
}

const writeAttempts = 1 // reference writes are not retried

func NewService[T any](client *apiclient.Client, queryCache *cache.Cache, path, cacheName string, bulkCreate bool, readAttempts int) *Service[T] {
	return &Service[T]{
		client:       client,
		cache:        queryCache,
		path:         path,
		cacheName:    cacheName,
		bulkCreate:   bulkCreate,
		readAttempts: readAttempts,
	}
}

func (s *Service[T]) listKey() string {
	return s.cacheName + ":list"
}

func (s *Service[T]) List(ctx context.Context) ([]T, error) {
	if value, freshness := s.cache.Get(s.listKey()); freshness == cache.Fresh {
		return value.([]T), nil
	}

	var entities []T
	if _, err := s.client.DoRetry(ctx, s.readAttempts, http.MethodGet, s.path, nil, &entities); err != nil {
		if value, freshness := s.cache.Get(s.listKey()); freshness == cache.Stale {
			slog.Warn("reference list refetch failed, serving retained entry", "entity", s.cacheName, "err", err)
			return value.([]T), nil
		}
		return nil, err
	}

	s.cache.Set(s.listKey(), entities)
	return entities, nil
}

func (s *Service[T]) Get(ctx context.Context, id int64) (*T, error) {
	var entity T
	if _, err := s.client.DoRetry(ctx, s.readAttempts, http.MethodGet, fmt.Sprintf("%s/%d", s.path, id), nil, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (s *Service[T]) Create(ctx context.Context, entity T) error {
	if _, err := s.client.DoRetry(ctx, writeAttempts, http.MethodPost, s.path, entity, nil); err != nil {
		return err
	}
	s.cache.Invalidate(s.listKey())
	return nil
}

// CreateBulk posts several entities at once. Only departments and groups
// expose a bulk endpoint.
func (s *Service[T]) CreateBulk(ctx context.Context, entities []T) error {
	if !s.bulkCreate {
		return &apiclient.Error{Message: s.cacheName + " has no bulk endpoint", Status: http.StatusMethodNotAllowed}
	}
	if _, err := s.client.DoRetry(ctx, writeAttempts, http.MethodPost, s.path+"/bulk", entities, nil); err != nil {
		return err
	}
	s.cache.Invalidate(s.listKey())
	return nil
}

func (s *Service[T]) Update(ctx context.Context, id int64, entity T) error {
	if _, err := s.client.DoRetry(ctx, writeAttempts, http.MethodPut, fmt.Sprintf("%s/%d", s.path, id), entity, nil); err != nil {
		return err
	}
	s.cache.Invalidate(s.listKey())
	return nil
}

func (s *Service[T]) Delete(ctx context.Context, id int64) error {
	if _, err := s.client.DoRetry(ctx, writeAttempts, http.MethodDelete, fmt.Sprintf("%s/%d", s.path, id), nil, nil); err != nil {
		return err
	}
	s.cache.Invalidate(s.listKey())
	return nil
}

// Services bundles one service per reference entity, wired to the remote
// endpoints.
type Services struct {
	Departments *Service[Department]
	Groups      *Service[Group]
	Roles       *Service[Role]
	Banks       *Service[Bank]
}

func NewServices(client *apiclient.Client, queryCache *cache.Cache, readAttempts int) *Services {
	return &Services{
		Departments: NewService[Department](client, queryCache, "/api/departments", "departments", true, readAttempts),
		Groups:      NewService[Group](client, queryCache, "/api/groups", "groups", true, readAttempts),
		Roles:       NewService[Role](client, queryCache, "/api/roles", "roles", false, readAttempts),
		Banks:       NewService[Bank](client, queryCache, "/api/banks", "banks", false, readAttempts),
	}
}
