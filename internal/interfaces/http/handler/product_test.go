package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/noorfashion/backend/internal/application/catalog"
	"github.com/noorfashion/backend/internal/infrastructure/storage"
)

func newProductEngine(t *testing.T) (*gin.Engine, *fakeProductRepo) {
	t.Helper()
	repo := newFakeProductRepo()
	products := catalogapp.NewProductService(repo, nil, nil)
	images := catalogapp.NewImageService(repo, storage.NewStubImageStorage(), nil)
	h := NewProductHandler(products, images)

	engine := gin.New()
	engine.GET("/products", h.List)
	engine.GET("/products/:id", h.Get)
	engine.POST("/products", h.Create)
	engine.PUT("/products/:id", h.Update)
	engine.DELETE("/products/:id", h.Delete)
	engine.PUT("/products/:id/stock", h.UpdateStock)
	engine.POST("/products/:id/images", h.InitiateImageUpload)
	return engine, repo
}

func TestProductHandler_List(t *testing.T) {
	engine, repo := newProductEngine(t)
	seedProduct(t, repo)

	t.Run("lists products", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/products", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		assert.Equal(t, true, resp["success"])
		data := resp["data"].([]any)
		assert.Len(t, data, 1)
	})

	t.Run("category filter", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/products?category=Casual", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		data, _ := resp["data"].([]any)
		assert.Empty(t, data)
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/products?category=Sportswear", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandler_Get(t *testing.T) {
	engine, repo := newProductEngine(t)
	p := seedProduct(t, repo)

	t.Run("found", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/products/"+p.ID.String(), nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		data := resp["data"].(map[string]any)
		assert.Equal(t, "Embroidered Kaftan", data["name"])
		assert.Equal(t, true, data["in_stock"])
	})

	t.Run("missing", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/products/"+uuid.NewString(), nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", errorCode(t, w))
	})

	t.Run("malformed id", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/products/not-a-uuid", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandler_Create(t *testing.T) {
	engine, _ := newProductEngine(t)

	t.Run("creates a product", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/products", map[string]any{
			"name":     "Linen Abaya",
			"price":    "180",
			"category": "Casual",
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code)

		resp := decodeResponse(t, w)
		data := resp["data"].(map[string]any)
		assert.Equal(t, "Linen Abaya", data["name"])
	})

	t.Run("unknown category", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/products", map[string]any{
			"name":     "Mystery Dress",
			"price":    "90",
			"category": "Sportswear",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_CATEGORY", errorCode(t, w))
	})

	t.Run("missing name rejected by binding", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/products", map[string]any{
			"price":    "90",
			"category": "Casual",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_FAILED", errorCode(t, w))
	})
}

func TestProductHandler_UpdateStock(t *testing.T) {
	engine, repo := newProductEngine(t)
	p := seedProduct(t, repo)

	w := doJSON(t, engine, http.MethodPut, "/products/"+p.ID.String()+"/stock", map[string]any{
		"stock_mode": "by_size",
		"stock": []map[string]any{
			{"size": "S", "quantity": 3},
			{"size": "M", "quantity": 0},
		},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]any)
	assert.Equal(t, "by_size", data["stock_mode"])
}

func TestProductHandler_ImageUpload(t *testing.T) {
	engine, repo := newProductEngine(t)
	p := seedProduct(t, repo)

	t.Run("presigns an upload", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/products/"+p.ID.String()+"/images", map[string]any{
			"file_name":    "front.jpg",
			"content_type": "image/jpeg",
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code)

		resp := decodeResponse(t, w)
		data := resp["data"].(map[string]any)
		assert.Contains(t, data["storage_key"], "products/"+p.ID.String()+"/")
		assert.NotEmpty(t, data["upload_url"])
	})

	t.Run("svg rejected", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/products/"+p.ID.String()+"/images", map[string]any{
			"file_name":    "logo.svg",
			"content_type": "image/svg+xml",
		}, nil)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
		assert.Equal(t, "DISALLOWED_CONTENT_TYPE", errorCode(t, w))
	})
}

func TestProductHandler_Delete(t *testing.T) {
	engine, repo := newProductEngine(t)
	p := seedProduct(t, repo)

	w := doJSON(t, engine, http.MethodDelete, "/products/"+p.ID.String(), nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/products/"+p.ID.String(), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
