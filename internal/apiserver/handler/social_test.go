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
)

func (env *menuEnv) socialRouter(u *database.User) *gin.Engine {
	h := NewSocial(env.db, env.guard, nil, zap.NewNop())
	r := newTestRouter()
	g := r.Group("/", asUser(u))
	g.GET("/restaurants/:id/social-media", h.List)
	g.POST("/restaurants/:id/social-media", h.Create)
	g.PUT("/social-media/:id", h.Update)
	g.DELETE("/social-media/:id", h.Delete)
	return r
}

func TestSocial_CRUD(t *testing.T) {
	env := newMenuTestEnv(t)
	r := env.socialRouter(env.owner)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/restaurants/1/social-media", dto.CreateSocialMediaLinkRequest{
		Platform: "instagram",
		URL:      "https://instagram.com/falafelhouse",
	}))
	assert.Equal(t, http.StatusCreated, w.Code)

	entry := lastActivity(t, env.db)
	assert.Equal(t, "create", entry.Action)
	assert.Equal(t, "social_media_link", entry.EntityType)

	// a bare string is not a URL
	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/restaurants/1/social-media", dto.CreateSocialMediaLinkRequest{
		Platform: "tiktok",
		URL:      "not-a-url",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w), "errors")

	url := "https://instagram.com/falafel.house"
	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPut, "/social-media/1", dto.UpdateSocialMediaLinkRequest{URL: &url}))
	assert.Equal(t, http.StatusOK, w.Code)

	got, err := env.db.GetSocialMediaLinkByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, url, got.URL)
	assert.Equal(t, "instagram", got.Platform)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/restaurants/1/social-media", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"].([]any), 1)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/social-media/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	_, err = env.db.GetSocialMediaLinkByID(context.Background(), 1)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestSocial_Ownership(t *testing.T) {
	env := newMenuTestEnv(t)
	link := &database.SocialMediaLink{Platform: "instagram", URL: "https://instagram.com/falafel", RestaurantID: env.restaurant.ID}
	assert.NoError(t, env.db.CreateSocialMediaLink(context.Background(), link))

	r := env.socialRouter(env.other)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/restaurants/1/social-media", dto.CreateSocialMediaLinkRequest{
		Platform: "x", URL: "https://x.com/intruder",
	}))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/social-media/1", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/social-media/999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
