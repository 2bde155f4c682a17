package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/filmlog/filmlog/internal/middleware"
	"github.com/filmlog/filmlog/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// newSearchRouter wires the search handler behind a stub identity, the way
// the auth middleware would attach it after verifying a token.
func newSearchRouter(identity string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		utils.Error(c, 405, "Method not allowed")
	})
	h := NewSearchHandler(zap.NewNop())
	r.GET("/api/user/:user_id/search", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, identity)
	}, h.Search)
	return r
}

func TestSearch_IdentityMismatch(t *testing.T) {
	r := newSearchRouter("7")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/42/search?tags=landscape", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 403, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}

func TestSearch_EmptyTagsShortCircuit(t *testing.T) {
	// No database pool is initialized in this test; the empty-tag path must
	// return without ever touching one.
	r := newSearchRouter("42")

	for _, target := range []string{
		"/api/user/42/search",
		"/api/user/42/search?tags=",
		"/api/user/42/search?searchTerm=evening&page=3",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code, target)

		var resp SearchResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.Photos, target)
		assert.Equal(t, utils.Pagination{}, resp.Pagination, target)
	}
}

func TestSearch_MethodNotAllowed(t *testing.T) {
	r := newSearchRouter("42")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/user/42/search?tags=landscape", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 405, w.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, w.Body.String())
}

func TestBuildPhotoSearch_PlaceholderAllocation(t *testing.T) {
	countSQL, countArgs, dataSQL, dataArgs := buildPhotoSearch(
		42,
		[]string{"landscape", "night"},
		[]string{"evening", "street"},
		10, 20,
	)

	// Fixed params first, then terms in clause order, then limit/offset.
	assert.Contains(t, dataSQL, "r.user_id = $1")
	assert.Contains(t, dataSQL, "ANY($2)")
	assert.Contains(t, dataSQL, "p.subject ILIKE $3 OR p.subject ILIKE $4")
	assert.Contains(t, dataSQL, "LIMIT $5 OFFSET $6")
	assert.Equal(t, []interface{}{42, []string{"landscape", "night"}, "%evening%", "%street%", 10, 20}, dataArgs)

	// Count shares the filter predicate but carries no paging.
	assert.Contains(t, countSQL, "COUNT(DISTINCT p.id)")
	assert.Contains(t, countSQL, "p.subject ILIKE $3 OR p.subject ILIKE $4")
	assert.NotContains(t, countSQL, "LIMIT")
	assert.Equal(t, []interface{}{42, []string{"landscape", "night"}, "%evening%", "%street%"}, countArgs)
}

func TestBuildPhotoSearch_NoTerms(t *testing.T) {
	_, countArgs, dataSQL, dataArgs := buildPhotoSearch(42, []string{"bw"}, nil, 10, 0)

	assert.NotContains(t, dataSQL, "ILIKE")
	assert.Contains(t, dataSQL, "LIMIT $3 OFFSET $4")
	assert.Equal(t, []interface{}{42, []string{"bw"}}, countArgs)
	assert.Equal(t, []interface{}{42, []string{"bw"}, 10, 0}, dataArgs)
}

func TestBuildPhotoSearch_AggregatesFullTagSet(t *testing.T) {
	// The aggregate joins are independent of the filter predicate, so every
	// returned photo carries all of its tags, not just the matched ones.
	_, _, dataSQL, _ := buildPhotoSearch(42, []string{"landscape"}, nil, 10, 0)
	assert.Contains(t, dataSQL, "LEFT JOIN photo_tags pt ON pt.photo_id = p.id")
	assert.Contains(t, dataSQL, "array_agg(t.name)")
	assert.Contains(t, dataSQL, "ORDER BY p.created_at DESC")
}

func TestSearchRowTransform(t *testing.T) {
	created := time.Date(2026, 5, 14, 18, 30, 0, 0, time.UTC)
	url := "https://example.com/p/1.jpg"

	got := searchRow{
		ID: 3, RollID: 9, Subject: "Evening Street",
		PhotoURL: &url, CreatedAt: created, RollName: "Roll A",
		Tags: []string{"bw", "landscape"},
	}.transform()

	assert.Equal(t, "3", got.ID)
	assert.Equal(t, "9", got.RollID)
	assert.Equal(t, []string{"bw", "landscape"}, got.Tags)
	assert.Equal(t, "2026-05-14T18:30:00Z", got.CreatedAt)

	// Null aggregate is defended into an empty list.
	bare := searchRow{ID: 1, RollID: 2, CreatedAt: created}.transform()
	assert.NotNil(t, bare.Tags)
	assert.Empty(t, bare.Tags)

	// Absent photo_url is omitted from the payload, not serialized as null.
	body, err := json.Marshal(bare)
	assert.NoError(t, err)
	assert.False(t, strings.Contains(string(body), "photo_url"))
}
