// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/parkwatch/internal/auth"
	"github.com/tomtom215/parkwatch/internal/authz"
	"github.com/tomtom215/parkwatch/internal/config"
	"github.com/tomtom215/parkwatch/internal/database"
	"github.com/tomtom215/parkwatch/internal/editor"
	"github.com/tomtom215/parkwatch/internal/logging"
	"github.com/tomtom215/parkwatch/internal/models"
	ws "github.com/tomtom215/parkwatch/internal/websocket"
	"github.com/tomtom215/parkwatch/internal/zonestore"
)

const testOrigin = "http://localhost:3000"

func init() {
	logging.SetLogger(logging.NewTestLogger(io.Discard))
}

// testDBSemaphore serialises DuckDB use across parallel tests.
var testDBSemaphore = make(chan struct{}, 1)

// testEnv is a fully wired API server over in-memory stores.
type testEnv struct {
	t       *testing.T
	server  *httptest.Server
	handler *Handler
	db      *database.DB
	store   *zonestore.Store
	hub     *ws.Hub
	jwt     *auth.JWTManager
}

// envelope decodes an APIResponse while keeping data raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func testConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			JWTSecret:         "test-secret-that-is-long-enough-for-hs256",
			SessionTimeout:    time.Hour,
			RateLimitDisabled: true,
			CORSOrigins:       []string{testOrigin},
		},
		Editor: config.EditorConfig{
			SessionTTL:  time.Hour,
			MaxSessions: 10,
		},
		Cache: config.CacheConfig{TTL: time.Minute, GridCellKm: 1},
	}
}

// cheapHash keeps seeding fast; CheckPassword accepts any bcrypt cost.
func cheapHash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(h), err
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	cfg := testConfig()

	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "512MB"})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.Seed(context.Background(), cheapHash); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	badgerDB, err := zonestore.Open(&config.LayoutsConfig{InMemory: true})
	if err != nil {
		t.Fatalf("zonestore.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = badgerDB.Close() })
	store := zonestore.NewStore(badgerDB)

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	enforcer, err := authz.NewEnforcer()
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	hub := ws.NewHub()
	persister := zonestore.NewPersister(store, hub, &config.LayoutsConfig{QueueSize: 8})

	ctx, cancel := context.WithCancel(context.Background())
	hubDone := make(chan struct{})
	persisterDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		_ = hub.RunWithContext(ctx)
	}()
	go func() {
		defer close(persisterDone)
		_ = persister.Serve(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-hubDone
		<-persisterDone
	})

	h := NewHandler(Dependencies{
		Config:   cfg,
		DB:       db,
		Layouts:  store,
		Saver:    persister,
		Sessions: editor.NewManager(&cfg.Editor),
		Hub:      hub,
		JWT:      jwtManager,
		Enforcer: enforcer,
	})
	server := httptest.NewServer(NewRouter(h, NewChiMiddleware(ChiMiddlewareConfigFromSecurity(&cfg.Security))))
	t.Cleanup(server.Close)

	return &testEnv{
		t:       t,
		server:  server,
		handler: h,
		db:      db,
		store:   store,
		hub:     hub,
		jwt:     jwtManager,
	}
}

// token signs a token for username with role.
func (e *testEnv) token(username, role string) string {
	e.t.Helper()
	tok, _, err := e.jwt.GenerateToken(username, role)
	if err != nil {
		e.t.Fatalf("GenerateToken() error = %v", err)
	}
	return tok
}

func (e *testEnv) viewer() string   { return e.token("viewer", models.RoleViewer) }
func (e *testEnv) operator() string { return e.token("operator", models.RoleOperator) }
func (e *testEnv) admin() string    { return e.token("admin", models.RoleAdmin) }

// do sends a request and decodes the envelope. body may be nil, a string of
// raw JSON, or a value to encode.
func (e *testEnv) do(method, path, token string, body interface{}) (*http.Response, envelope) {
	e.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			e.t.Fatalf("Marshal() error = %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		e.t.Fatalf("NewRequest() error = %v", err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.server.Client().Do(req)
	if err != nil {
		e.t.Fatalf("%s %s error = %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		e.t.Fatalf("ReadAll() error = %v", err)
	}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &env); err != nil {
			e.t.Fatalf("%s %s: invalid envelope %q: %v", method, path, raw, err)
		}
	}
	return resp, env
}

// expect asserts the status code and, for errors, the envelope code.
func (e *testEnv) expect(resp *http.Response, env envelope, status int, code string) {
	e.t.Helper()
	if resp.StatusCode != status {
		e.t.Fatalf("%s %s status = %d, want %d (error %+v)",
			resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, status, env.Error)
	}
	if code == "" {
		if !env.Success {
			e.t.Fatalf("success = false, error %+v", env.Error)
		}
		return
	}
	if env.Success || env.Error == nil || env.Error.Code != code {
		e.t.Fatalf("error = %+v, want code %s", env.Error, code)
	}
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data %q: %v", env.Data, err)
	}
}

// dial opens a websocket on path, authenticated by query token.
func (e *testEnv) dial(path, token string, origin string) (*websocket.Conn, *http.Response, error) {
	e.t.Helper()
	url := "ws" + strings.TrimPrefix(e.server.URL, "http") + path + "?token=" + token
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if conn != nil {
		e.t.Cleanup(func() { _ = conn.Close() })
	}
	return conn, resp, err
}

// wsMessage is a websocket message with raw data.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// readUntil reads messages until one of type want arrives.
func readUntil(t *testing.T, conn *websocket.Conn, want string) wsMessage {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		if err := conn.SetReadDeadline(deadline); err != nil {
			t.Fatal(err)
		}
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %s: %v", want, err)
		}
		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("invalid message %q: %v", raw, err)
		}
		if msg.Type == want {
			return msg
		}
	}
}

// eventually polls cond until it holds or two seconds pass.
func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
