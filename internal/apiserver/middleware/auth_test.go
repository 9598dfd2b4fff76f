package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sofrahq/sofra/internal/apiserver/database"
	"github.com/sofrahq/sofra/internal/auth/session"
	"github.com/sofrahq/sofra/internal/common/cnst"
	"github.com/sofrahq/sofra/internal/common/config"
)

func newAuthEnv(t *testing.T) (database.Database, session.Store) {
	t.Helper()
	db, err := database.NewSQLite(&config.DatabaseConfig{Type: "sqlite", DBName: ":memory:"})
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, session.NewMemoryStore(time.Hour)
}

func newAuthRouter(db database.Database, store session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", SessionAuth(store, db, zap.NewNop()), func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"username": p.Username, "role": string(p.Role)})
	})
	r.GET("/admin-only",
		SessionAuth(store, db, zap.NewNop()),
		RequireSuperAdmin(zap.NewNop()),
		func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestSessionAuth_MissingOrGarbageToken(t *testing.T) {
	db, store := newAuthEnv(t)
	r := newAuthRouter(db, store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "message")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: cnst.SessionCookie, Value: "garbage"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuth_CookieAndBearer(t *testing.T) {
	db, store := newAuthEnv(t)
	ctx := context.Background()

	user := &database.User{Username: "owner", Password: "h", Role: database.RoleRestaurantAdmin}
	assert.NoError(t, db.CreateUser(ctx, user))
	sess, err := store.Create(ctx, user.ID, user.Username, string(user.Role))
	assert.NoError(t, err)

	r := newAuthRouter(db, store)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: cnst.SessionCookie, Value: sess.Token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"owner"`)
	assert.Contains(t, w.Body.String(), `"role":"restaurant_admin"`)

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionAuth_DeletedUserRevokesSession(t *testing.T) {
	db, store := newAuthEnv(t)
	ctx := context.Background()

	user := &database.User{Username: "ghost", Password: "h", Role: database.RoleRestaurantAdmin}
	assert.NoError(t, db.CreateUser(ctx, user))
	sess, err := store.Create(ctx, user.ID, user.Username, string(user.Role))
	assert.NoError(t, err)
	assert.NoError(t, db.DeleteUser(ctx, user.ID))

	r := newAuthRouter(db, store)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: cnst.SessionCookie, Value: sess.Token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// the orphaned session was dropped from the store
	_, err = store.Get(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestRequireSuperAdmin(t *testing.T) {
	db, store := newAuthEnv(t)
	ctx := context.Background()

	root := &database.User{Username: "root", Password: "h", Role: database.RoleSuperAdmin}
	owner := &database.User{Username: "owner", Password: "h", Role: database.RoleRestaurantAdmin}
	assert.NoError(t, db.CreateUser(ctx, root))
	assert.NoError(t, db.CreateUser(ctx, owner))

	rootSess, _ := store.Create(ctx, root.ID, root.Username, string(root.Role))
	ownerSess, _ := store.Create(ctx, owner.ID, owner.Username, string(owner.Role))

	r := newAuthRouter(db, store)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: cnst.SessionCookie, Value: rootSess.Token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: cnst.SessionCookie, Value: ownerSess.Token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-only", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
