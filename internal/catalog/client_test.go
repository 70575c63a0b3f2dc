package catalog

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/suteetoe/catalogadmin/internal/model"
	"github.com/suteetoe/catalogadmin/pkg/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.APIConfig{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	}, zap.NewNop())
}

func TestListProductsOmitsSentinelParams(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"products":[],"pagination":{"page":1,"limit":20,"total":0,"totalPages":0}}}`))
	}))
	defer srv.Close()

	page, err := newTestClient(srv.URL).ListProducts(context.Background(), model.DefaultQuery())
	require.NoError(t, err)
	require.NotNil(t, page.Products)
	assert.Empty(t, page.Products)

	assert.NotContains(t, gotQuery, "search")
	assert.NotContains(t, gotQuery, "isActive")
	assert.NotContains(t, gotQuery, "categoryId")
	assert.Equal(t, []string{"createdAt"}, gotQuery["sortBy"])
	assert.Equal(t, []string{"desc"}, gotQuery["sortOrder"])
}

func TestListProductsSendsActiveFilters(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"products":[{"id":1,"name":"Boot"}]}`))
	}))
	defer srv.Close()

	q := model.Query{Search: "boot", Status: model.StatusActive, CategoryID: "5", SortBy: model.SortByPrice, Order: model.OrderAsc}
	page, err := newTestClient(srv.URL).ListProducts(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, page.Products, 1)

	assert.Equal(t, []string{"boot"}, gotQuery["search"])
	assert.Equal(t, []string{"true"}, gotQuery["isActive"])
	assert.Equal(t, []string{"5"}, gotQuery["categoryId"])
}

func TestListProductsUnrecognizedShapeIsEmptyNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totally":"different"}`))
	}))
	defer srv.Close()

	page, err := newTestClient(srv.URL).ListProducts(context.Background(), model.DefaultQuery())
	require.NoError(t, err)
	require.NotNil(t, page.Products)
	assert.Empty(t, page.Products)
}

func TestServerErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ListProducts(context.Background(), model.DefaultQuery())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindServer))
	assert.Contains(t, err.Error(), "boom")
}

func TestValidationErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"name is required"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateProduct(context.Background(), model.ProductPayload{})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
}

func TestNetworkErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // unreachable on purpose

	_, err := newTestClient(srv.URL).ListProducts(context.Background(), model.DefaultQuery())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNetwork))
}

func TestUpdateProductSendsOnlyPatchedFields(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Write([]byte(`{"id":3,"name":"Boot","isActive":false}`))
	}))
	defer srv.Close()

	active := false
	p, err := newTestClient(srv.URL).UpdateProduct(context.Background(), 3, model.ProductUpdate{IsActive: &active})
	require.NoError(t, err)
	assert.Equal(t, uint(3), p.ID)

	assert.JSONEq(t, `{"isActive":false}`, body)
}

func TestDeleteProduct(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"message":"deleted"}`))
	}))
	defer srv.Close()

	require.NoError(t, newTestClient(srv.URL).DeleteProduct(context.Background(), 12))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/products/12", gotPath)
}

func TestListActiveCategories(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"id":1,"name":"Footwear","isActive":true}]`))
	}))
	defer srv.Close()

	cats, err := newTestClient(srv.URL).ListActiveCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "isActive=true", gotQuery)
}

func TestUploadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "shoe.png", header.Filename)
		w.Write([]byte(`{"url":"/uploads/abc.png"}`))
	}))
	defer srv.Close()

	url, err := newTestClient(srv.URL).UploadImage(context.Background(), "/tmp/shoe.png", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/abc.png", url)
}

func TestRequestCarriesRequestIDAndToken(t *testing.T) {
	var requestID, auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-ID")
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(&config.APIConfig{BaseURL: srv.URL, Token: "sekret", Timeout: time.Second}, zap.NewNop())
	_, err := c.ListProducts(context.Background(), model.DefaultQuery())
	require.NoError(t, err)
	assert.NotEmpty(t, requestID)
	assert.Equal(t, "Bearer sekret", auth)
}
