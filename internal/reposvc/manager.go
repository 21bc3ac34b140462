// Package reposvc implements the repository manager: lazy, per-library,
// once-only repository construction with error memoization and coalescing
// of concurrent initializations.
//
// golang.org/x/sync/singleflight.Group.Do gives "at most one
// initialization in flight"; it alone forgets completed calls once they
// return, so explicit ready/failed maps layer permanent memoization on
// top of it.
package reposvc

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/aman-cerp/docsearch-mcp/internal/docrepo"
	docerrors "github.com/aman-cerp/docsearch-mcp/internal/errors"
	"github.com/aman-cerp/docsearch-mcp/internal/fetch"
	"github.com/aman-cerp/docsearch-mcp/internal/llmsindex"
)

// Library is one entry of the immutable, load-time library configuration.
type Library struct {
	ID       string
	IndexURL string
}

// Status is the per-library snapshot returned by Statuses.
type Status struct {
	ID        string
	Available bool
	Error     string
}

// Manager owns the process-wide ready/failed/pending state for every
// configured library. It is constructed once at startup and is safe for
// concurrent use; Clear is a test-only hook.
type Manager struct {
	client      *fetch.Client
	concurrency int

	order     []string
	libraries map[string]Library

	mu     sync.Mutex
	ready  map[string]*docrepo.Repository
	failed map[string]error
	group  singleflight.Group
}

// NewManager returns a Manager over the given immutable library list.
func NewManager(libraries []Library, client *fetch.Client, concurrency int) *Manager {
	order := make([]string, 0, len(libraries))
	byID := make(map[string]Library, len(libraries))
	for _, lib := range libraries {
		order = append(order, lib.ID)
		byID[lib.ID] = lib
	}

	if client == nil {
		client = fetch.NewClient()
	}

	return &Manager{
		client:      client,
		concurrency: concurrency,
		order:       order,
		libraries:   byID,
		ready:       make(map[string]*docrepo.Repository),
		failed:      make(map[string]error),
	}
}

// Get resolves id to a ready Repository, initializing it if necessary.
// Callers arriving while an initialization is already in flight for id
// observe that same initialization's outcome; a successful or failed
// initialization is memoized permanently thereafter.
func (m *Manager) Get(ctx context.Context, id string) (*docrepo.Repository, error) {
	lib, ok := m.libraries[id]
	if !ok {
		return nil, docerrors.LibraryNotFound(id, m.availableIDs())
	}

	if repo, err, done := m.cached(id); done {
		return repo, err
	}

	// The ready/failed write happens inside the singleflight-guarded
	// closure, before it returns, so the memoization is visible to every
	// other caller before singleflight forgets this call. Writing it
	// afterward would leave a window, between singleflight dropping its
	// own bookkeeping and a woken goroutine acquiring m.mu, in which a
	// newly arriving caller's cached() check misses and starts a second,
	// redundant createRepository call.
	v, err, _ := m.group.Do(id, func() (any, error) {
		repo, buildErr := m.createRepository(ctx, lib)

		m.mu.Lock()
		defer m.mu.Unlock()

		if buildErr != nil {
			wrapped := docerrors.LibraryInitializationFailed(id, buildErr)
			if _, already := m.failed[id]; !already {
				m.failed[id] = wrapped
			}
			return nil, m.failed[id]
		}

		if _, already := m.ready[id]; !already {
			m.ready[id] = repo
		}
		return m.ready[id], nil
	})

	if err != nil {
		return nil, err
	}
	return v.(*docrepo.Repository), nil
}

// cached returns a memoized ready/failed result for id, if one already
// exists, without touching singleflight.
func (m *Manager) cached(id string) (*docrepo.Repository, error, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if repo, ok := m.ready[id]; ok {
		return repo, nil, true
	}
	if err, ok := m.failed[id]; ok {
		return nil, err, true
	}
	return nil, nil, false
}

// Statuses reports, for every configured library, whether it is available
// (i.e. not permanently failed). Uninitialized libraries report available
// = true, since initialization is lazy and has not yet been attempted.
func (m *Manager) Statuses() []Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Status, 0, len(m.order))
	for _, id := range m.order {
		st := Status{ID: id, Available: true}
		if err, failed := m.failed[id]; failed {
			st.Available = false
			st.Error = err.Error()
		}
		out = append(out, st)
	}
	return out
}

// Clear resets all cached state. Test-only hook.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ready = make(map[string]*docrepo.Repository)
	m.failed = make(map[string]error)
	m.group = singleflight.Group{}
}

func (m *Manager) availableIDs() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	sort.Strings(out)
	return out
}

// createRepository fetches the library's llms.txt index, parses it,
// concurrently loads every referenced markdown document, and builds a
// Repository over the result.
func (m *Manager) createRepository(ctx context.Context, lib Library) (*docrepo.Repository, error) {
	body, err := m.client.Get(ctx, lib.IndexURL)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}

	rawDocs := llmsindex.Parse(body, lib.ID, lib.IndexURL)
	if len(rawDocs) == 0 {
		return nil, fmt.Errorf("index %q contained no recognizable document entries", lib.IndexURL)
	}

	docs := fetch.Load(ctx, rawDocs, m.client, m.concurrency)
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents loaded from %d index entries", len(rawDocs))
	}

	return docrepo.New(docs), nil
}
