package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIndex = "[Widget](/guides/widget): Payment widget\n"

const sampleMarkdown = "# Widget\n\nWidgets are payment components used across the checkout flow.\n"

// newTestConfig starts an httptest server serving one library's llms.txt
// and markdown document, and points --config at a temp file naming it.
func newTestConfig(t *testing.T) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/llms.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleIndex))
	})
	mux.HandleFunc("/guides/widget", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleMarkdown))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	body := "libraries:\n  - id: widgets\n    indexUrl: " + srv.URL + "/llms.txt\n"
	dir := t.TempDir()
	path := filepath.Join(dir, "docsearch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	prev := configPath
	configPath = path
	t.Cleanup(func() { configPath = prev })
}

func TestSearchCmd_FindsMatch(t *testing.T) {
	newTestConfig(t)

	cmd := newSearchCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--library", "widgets", "widget"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Widget")
}

func TestSearchCmd_RequiresLibrary(t *testing.T) {
	newTestConfig(t)

	cmd := newSearchCmd()
	cmd.SetArgs([]string{"widget"})

	err := cmd.Execute()
	require.Error(t, err)
}

func TestStatusCmd_ReportsAvailable(t *testing.T) {
	newTestConfig(t)

	cmd := newStatusCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "widgets")
}

func TestGetCmd_FetchesDocument(t *testing.T) {
	newTestConfig(t)

	cmd := newGetCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--library", "widgets", "0"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Widget")
}

func TestGetCmd_UnknownIDErrors(t *testing.T) {
	newTestConfig(t)

	cmd := newGetCmd()
	cmd.SetArgs([]string{"--library", "widgets", "99999"})

	err := cmd.Execute()
	require.Error(t, err)
}
