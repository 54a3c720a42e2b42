package employee

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrmadmin/internal/platform/apiclient"
	"hrmadmin/internal/platform/cache"
	"hrmadmin/internal/platform/metrics"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := apiclient.New(server.URL, apiclient.WithBackoff(time.Millisecond, 2*time.Millisecond))
	return NewService(client, cache.New(5*time.Minute, 30*time.Minute), metrics.New(), 3, 5), server
}

func writeList(w http.ResponseWriter, employees []Employee) {
	payload, _ := json.Marshal(map[string]any{"message": "ok", "data": employees})
	_, _ = w.Write(payload)
}

func TestListServesFreshCacheWithoutRefetch(t *testing.T) {
	var hits int32
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeList(w, []Employee{{ID: 1, Code: "E1"}})
	})

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	second, err := svc.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits), "second list must come from cache")
}

func TestListRetriesThenFails(t *testing.T) {
	var hits int32
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt32(&hits), "list budget is 3 total attempts")

	apiErr, ok := err.(*apiclient.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
}

func TestCreateInvalidatesListCache(t *testing.T) {
	var listHits int32
	var createHits int32
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/auth/register":
			atomic.AddInt32(&createHits, 1)
			_, _ = w.Write([]byte(`{"message":"created"}`))
		default:
			atomic.AddInt32(&listHits, 1)
			writeList(w, []Employee{{ID: 1}})
		}
	})

	_, err := svc.List(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.Create(context.Background(), map[string]any{"username": "new"}))
	assert.EqualValues(t, 1, atomic.LoadInt32(&createHits))

	_, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&listHits), "create must invalidate the list entry")
}

func TestUpdateSetsIDAndInvalidates(t *testing.T) {
	var gotPayload map[string]any
	var listHits int32
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			require.Equal(t, "/api/users/7", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
			_, _ = w.Write([]byte(`{"message":"update ok"}`))
		default:
			atomic.AddInt32(&listHits, 1)
			writeList(w, nil)
		}
	})

	_, err := svc.List(context.Background())
	require.NoError(t, err)

	message, err := svc.Update(context.Background(), 7, map[string]any{"username": "B"})
	require.NoError(t, err)
	assert.Equal(t, "update ok", message)
	assert.EqualValues(t, 7, gotPayload["id"])
	assert.Equal(t, "B", gotPayload["username"])

	_, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&listHits))
}

func TestDeleteRetriesOnceThenSucceeds(t *testing.T) {
	var deleteHits int32
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			if atomic.AddInt32(&deleteHits, 1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"message":"deleted"}`))
			return
		}
		writeList(w, nil)
	})

	require.NoError(t, svc.Delete(context.Background(), 3))
	assert.EqualValues(t, 2, atomic.LoadInt32(&deleteHits))
}

func TestListFallsBackToRetainedEntryWhenRefetchFails(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	queryCache := cache.New(5*time.Minute, 30*time.Minute, cache.WithClock(clock))

	var failing atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeList(w, []Employee{{ID: 1, Code: "E1"}})
	}))
	t.Cleanup(server.Close)

	client := apiclient.New(server.URL, apiclient.WithBackoff(time.Millisecond, 2*time.Millisecond))
	svc := NewService(client, queryCache, metrics.New(), 3, 5)

	_, err := svc.List(context.Background())
	require.NoError(t, err)

	now = now.Add(10 * time.Minute) // stale but retained
	failing.Store(true)

	employees, err := svc.List(context.Background())
	require.NoError(t, err, "stale entry should cover the failed refetch")
	require.Len(t, employees, 1)
	assert.Equal(t, "E1", employees[0].Code)
}
