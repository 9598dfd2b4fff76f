package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/sofrahq/sofra/internal/apiserver/database"
	"github.com/sofrahq/sofra/internal/common/cnst"
	"github.com/sofrahq/sofra/internal/common/config"
	"github.com/sofrahq/sofra/pkg/metrics"
)

func newTestDB(t *testing.T) database.Database {
	t.Helper()
	db, err := database.NewSQLite(&config.DatabaseConfig{Type: "sqlite", DBName: ":memory:"})
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestMetrics() *metrics.Metrics {
	return metrics.New(config.MetricsConfig{Namespace: "sofra_test"})
}

// seedUser inserts a user with a real bcrypt hash. MinCost keeps the
// test suite fast.
func seedUser(t *testing.T, db database.Database, username, password string, role database.UserRole) *database.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	u := &database.User{Username: username, Password: string(hashed), Role: role}
	if err := db.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser(%s): %v", username, err)
	}
	return u
}

// asUser stands in for the session middleware, injecting the principal
// the way SessionAuth would.
func asUser(u *database.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(cnst.CtxPrincipal, principalFor(u))
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func jsonRequest(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, w.Body.String())
	}
	return out
}

// lastActivity returns the newest audit entry.
func lastActivity(t *testing.T, db database.Database) *database.ActivityLog {
	t.Helper()
	entries, err := db.ListActivityLogs(context.Background(), 1)
	assert.NoError(t, err)
	if len(entries) == 0 {
		t.Fatal("no activity entries recorded")
	}
	return entries[0]
}
