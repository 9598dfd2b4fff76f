package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sofrahq/sofra/internal/apiserver/database"
	"github.com/sofrahq/sofra/internal/common/dto"
	"github.com/sofrahq/sofra/pkg/qr"
)

func (env *menuEnv) qrRouter(u *database.User) *gin.Engine {
	h := NewQRCode(env.db, env.guard, qr.NewMenuQRGenerator("https://menu.example.com", 128), newTestMetrics(), zap.NewNop())
	r := newTestRouter()
	g := r.Group("/", asUser(u))
	g.GET("/restaurants/:id/qr-codes", h.List)
	g.POST("/restaurants/:id/qr-codes", h.Create)
	g.DELETE("/qr-codes/:id", h.Delete)
	g.GET("/qr-codes/:id/image", h.Image)
	return r
}

func TestQRCode_CreateListDelete(t *testing.T) {
	env := newMenuTestEnv(t)
	r := env.qrRouter(env.owner)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/restaurants/1/qr-codes", dto.CreateQRCodeRequest{Label: "Table 4"}))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Table 4", decodeBody(t, w)["qrCode"].(map[string]any)["label"])

	entry := lastActivity(t, env.db)
	assert.Equal(t, "create", entry.Action)
	assert.Equal(t, "qr_code", entry.EntityType)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/restaurants/1/qr-codes", map[string]string{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/restaurants/1/qr-codes", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"].([]any), 1)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/qr-codes/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	_, err := env.db.GetQRCodeByID(context.Background(), 1)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestQRCode_Image(t *testing.T) {
	env := newMenuTestEnv(t)
	code := &database.QRCode{Label: "Table 1", RestaurantID: env.restaurant.ID}
	assert.NoError(t, env.db.CreateQRCode(context.Background(), code))

	w := httptest.NewRecorder()
	env.qrRouter(env.owner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/qr-codes/1/image", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	// PNG signature
	assert.True(t, len(w.Body.Bytes()) > 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, w.Body.Bytes()[:4])

	// the image is as guarded as the label record
	w = httptest.NewRecorder()
	env.qrRouter(env.other).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/qr-codes/1/image", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	env.qrRouter(env.owner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/qr-codes/999/image", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
