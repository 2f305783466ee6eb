//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// fruits is the catalog served by StartItemServer
var fruits = []map[string]any{
	{"id": 1, "text": "apple"},
	{"id": 2, "text": "banana"},
	{"id": 3, "text": "cherry"},
	{"id": 4, "text": "grape"},
	{"id": 5, "text": "lemon"},
}

// ItemServer records the queries it was sent
type ItemServer struct {
	*httptest.Server

	mu      sync.Mutex
	queries []string
}

// Queries returns every q value received so far
func (s *ItemServer) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// CreateTestWorkspace creates a temporary directory the app runs in
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// StartItemServer serves fruits filtered by substring on /items
func (tf *TUITestFramework) StartItemServer() *ItemServer {
	is := &ItemServer{}
	is.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		is.mu.Lock()
		is.queries = append(is.queries, q)
		is.mu.Unlock()

		out := []map[string]any{}
		for _, f := range fruits {
			if strings.Contains(f["text"].(string), strings.ToLower(q)) {
				out = append(out, f)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}))
	tf.t.Cleanup(is.Close)
	return is
}

// WriteConfig writes a TOML config for endpoint into the workspace.
// extra lines are appended to the [ui] table.
func (tf *TUITestFramework) WriteConfig(endpoint string, extra ...string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	content := fmt.Sprintf(`endpoint = %q
key_property = "id"
display_template = "text (id)"
max_visible_count = 10

[fetch]
debounce_ms = 100
timeout_ms = 5000

[ui]
%s
`, endpoint, strings.Join(extra, "\n"))

	path := filepath.Join(tf.workspace, "select.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// StartPicker starts "pick" against a fresh item server
func (tf *TUITestFramework) StartPicker(extra ...string) (*ItemServer, error) {
	if _, err := tf.CreateTestWorkspace(); err != nil {
		return nil, err
	}
	is := tf.StartItemServer()
	cfgPath, err := tf.WriteConfig(is.URL+"/items", extra...)
	if err != nil {
		return nil, err
	}
	return is, tf.StartApp("pick", "--config", cfgPath, "--inline")
}
