package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogem/boardhook/models"
)

func TestConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	empty, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ClientConfig{}, empty)

	want := ClientConfig{Server: "https://boards.example.com", Email: "ana@example.com", Token: "jwt"}
	require.NoError(t, saveConfig(path, want))

	got, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("server = "), 0o600))

	_, err := loadConfig(path)

	assert.Error(t, err)
}

func TestDefaultConfigPath_Env(t *testing.T) {
	t.Setenv("BOARDWATCH_CONFIG", "/tmp/custom.toml")

	path, err := defaultConfigPath()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.toml", path)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "  ", "b", "c"))
	assert.Equal(t, "", firstNonEmpty("", " "))
}

func strPtr(s string) *string { return &s }

func TestPrintEvents(t *testing.T) {
	page := models.EventPage{Version: 12, Events: []models.Event{
		{Timestamp: "2024-01-02T03:04:05.000Z", Type: "updateCard", MemberCreator: "Ana", Card: strPtr("Fix bug"), ListAfter: strPtr("Done")},
		{Timestamp: "2024-01-02T03:00:00.000Z", Type: "commentCard", MemberCreator: "Bob", Card: strPtr("Fix bug")},
	}}

	var out bytes.Buffer
	require.NoError(t, printEvents(&out, page, &EventsOptions{Limit: 1}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "version 12, 2 events retained", lines[0])
	assert.Contains(t, lines[1], "Ana")
	assert.Contains(t, lines[1], "updateCard: Fix bug → Done")
}

func TestPrintEvents_JSON(t *testing.T) {
	page := models.EventPage{Version: 3, Events: []models.Event{{Type: "a"}, {Type: "b"}, {Type: "c"}}}

	var out bytes.Buffer
	require.NoError(t, printEvents(&out, page, &EventsOptions{Limit: 2, JSON: true}))

	var decoded models.EventPage
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, int64(3), decoded.Version)
	assert.Len(t, decoded.Events, 2)
}

func TestSummarizeLists(t *testing.T) {
	raw := json.RawMessage(`[{"name":"Doing","cards":[{},{}]},{"name":"Done","cards":[]}]`)

	assert.Equal(t, "Doing (2), Done (0)", summarizeLists(raw))
	assert.Equal(t, "5 bytes", summarizeLists(json.RawMessage(`{"a"}`)))
}

// fakeBoardClient serves a growing event log
type fakeBoardClient struct {
	mu      sync.Mutex
	version int64
	events  []models.Event
	boards  int
}

func (c *fakeBoardClient) ReadSince(ctx context.Context, lastKnownVersion int64) (models.EventPage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	page := models.EventPage{Version: c.version, Events: append([]models.Event(nil), c.events...)}
	if c.version == 1 {
		// the next poll sees two more events
		card := "Ship it"
		c.events = append([]models.Event{{Type: "updateCard", Card: &card, ListAfter: strPtr("Done")}, {Type: "createCard"}}, c.events...)
		c.version = 3
	}
	return page, nil
}

func (c *fakeBoardClient) Board(ctx context.Context, boardID string) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.boards++
	return json.RawMessage(`[{"name":"Done","cards":[{}]}]`), nil
}

// syncBuffer guards the output written by the poll loop
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunWatch(t *testing.T) {
	client := &fakeBoardClient{version: 1, events: []models.Event{{Type: "createCard"}}}
	var out syncBuffer

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := runWatch(ctx, &out, client, &WatchOptions{Interval: 10 * time.Millisecond, Timeout: time.Second, BoardID: "B1"})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	output := out.String()
	assert.Contains(t, output, "🔔 updateCard: Ship it → Done")
	assert.Contains(t, output, "🔔 createCard")
	assert.Contains(t, output, "version 3")
	assert.Contains(t, output, "board B1: Done (1)")
	assert.Equal(t, 1, strings.Count(output, "version 3"))
}

func TestLoginCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var form models.LoginForm
		require.NoError(t, json.NewDecoder(r.Body).Decode(&form))
		if form.Email != "ana@example.com" || form.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":"Invalid email or password"}`)
			return
		}
		fmt.Fprint(w, `{"token":"jwt-token","user":{"email":"ana@example.com","name":"Ana"}}`)
	}))
	defer server.Close()

	configPath := filepath.Join(t.TempDir(), "config.toml")
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"login", "--config", configPath, "--server", server.URL, "--email", "ana@example.com"})
	cmd.SetIn(strings.NewReader("secret\n"))
	cmd.SetOut(&out)

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "Signed in as Ana")
	cfg, err := loadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, ClientConfig{Server: server.URL, Email: "ana@example.com", Token: "jwt-token"}, cfg)
}

func TestLoginCommand_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	configPath := filepath.Join(t.TempDir(), "config.toml")
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"login", "--config", configPath, "--server", server.URL})
	cmd.SetIn(strings.NewReader("ana@example.com\nwrong\n"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())

	assert.ErrorContains(t, err, "login failed")
	_, statErr := os.Stat(configPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEventsCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer saved-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"version":2,"events":[{"type":"updateCard","card":"Fix bug","memberCreator":"Ana"}]}`)
	}))
	defer server.Close()

	configPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, saveConfig(configPath, ClientConfig{Server: server.URL, Token: "saved-token"}))

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"events", "--config", configPath})
	cmd.SetOut(&out)

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "version 2, 1 events retained")
	assert.Contains(t, out.String(), "updateCard: Fix bug")
}

func TestEventsCommand_NoServer(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"events", "--config", filepath.Join(t.TempDir(), "none.toml")})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())

	assert.ErrorContains(t, err, "no server configured")
}
