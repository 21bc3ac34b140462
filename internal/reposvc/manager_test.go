package reposvc

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	docerrors "github.com/aman-cerp/docsearch-mcp/internal/errors"
	"github.com/aman-cerp/docsearch-mcp/internal/fetch"
)

const sampleIndex = "[Widget](/guides/widget): Payment widget\n"

const sampleMarkdown = "# Widget\n\nWidgets are payment components.\n"

func newTestManager(t *testing.T, indexHits *int32) (*Manager, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/llms.txt", func(w http.ResponseWriter, r *http.Request) {
		if indexHits != nil {
			atomic.AddInt32(indexHits, 1)
		}
		_, _ = w.Write([]byte(sampleIndex))
	})
	mux.HandleFunc("/guides/widget", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleMarkdown))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	libs := []Library{{ID: "widgets", IndexURL: srv.URL + "/llms.txt"}}
	m := NewManager(libs, fetch.NewClient(), 4)
	return m, srv
}

func TestGet_UnconfiguredLibrary(t *testing.T) {
	m, _ := newTestManager(t, nil)

	_, err := m.Get(context.Background(), "nope")
	require.Error(t, err)
	kind, ok := docerrors.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, docerrors.KindLibraryNotFound, kind)
}

func TestGet_SuccessfulInitializationIsMemoized(t *testing.T) {
	var hits int32
	m, _ := newTestManager(t, &hits)

	repo1, err := m.Get(context.Background(), "widgets")
	require.NoError(t, err)
	repo2, err := m.Get(context.Background(), "widgets")
	require.NoError(t, err)

	assert.Same(t, repo1, repo2)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestGet_CoalescesConcurrentInitializations(t *testing.T) {
	var hits int32
	m, _ := newTestManager(t, &hits)

	const n = 8
	var wg sync.WaitGroup
	repos := make([]any, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			repo, err := m.Get(context.Background(), "widgets")
			repos[i] = repo
			errs[i] = err
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, repos[0], repos[i])
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestGet_FailedInitializationIsMemoizedAndNotRetried(t *testing.T) {
	var hits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/llms.txt", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	libs := []Library{{ID: "widgets", IndexURL: srv.URL + "/llms.txt"}}
	client := fetch.NewClient()
	client.Retry = fetch.RetryConfig{MaxRetries: 0}
	m := NewManager(libs, client, 4)

	_, err1 := m.Get(context.Background(), "widgets")
	require.Error(t, err1)
	_, err2 := m.Get(context.Background(), "widgets")
	require.Error(t, err2)

	assert.Equal(t, err1.Error(), err2.Error())
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestStatuses(t *testing.T) {
	m, _ := newTestManager(t, nil)

	statuses := m.Statuses()
	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].Available)
	assert.Empty(t, statuses[0].Error)

	_, err := m.Get(context.Background(), "widgets")
	require.NoError(t, err)

	statuses = m.Statuses()
	assert.True(t, statuses[0].Available)
}

func TestClear_ResetsState(t *testing.T) {
	var hits int32
	m, _ := newTestManager(t, &hits)

	_, err := m.Get(context.Background(), "widgets")
	require.NoError(t, err)
	m.Clear()

	_, err = m.Get(context.Background(), "widgets")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestAvailableIDs_IncludedInNotFoundError(t *testing.T) {
	m, _ := newTestManager(t, nil)

	_, err := m.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widgets")
	assert.Contains(t, err.Error(), fmt.Sprintf("%q", "missing"))
}
