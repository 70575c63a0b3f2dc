package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeProductPageWrappedEnvelope(t *testing.T) {
	body := []byte(`{"success":true,"data":{"products":[{"id":1,"name":"Boot"},{"id":2,"name":"Sneaker"}],"pagination":{"page":1,"limit":20,"total":2,"totalPages":1}}}`)

	page, ok := decodeProductPage(body)
	require.True(t, ok)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "Boot", page.Products[0].Name)
	assert.Equal(t, int64(2), page.Pagination.Total)
	assert.Equal(t, 1, page.Pagination.TotalPages)
}

func TestDecodeProductPageBareObject(t *testing.T) {
	body := []byte(`{"products":[{"id":7,"name":"Hat"}]}`)

	page, ok := decodeProductPage(body)
	require.True(t, ok)
	require.Len(t, page.Products, 1)
	assert.Equal(t, uint(7), page.Products[0].ID)
}

func TestDecodeProductPageBareArray(t *testing.T) {
	body := []byte(`[{"id":3,"name":"Scarf"}]`)

	page, ok := decodeProductPage(body)
	require.True(t, ok)
	require.Len(t, page.Products, 1)
}

func TestDecodeProductPageEmptyResults(t *testing.T) {
	for name, body := range map[string]string{
		"wrapped": `{"success":true,"data":{"products":[],"pagination":{}}}`,
		"bare":    `{"products":[]}`,
		"array":   `[]`,
	} {
		t.Run(name, func(t *testing.T) {
			page, ok := decodeProductPage([]byte(body))
			require.True(t, ok)
			require.NotNil(t, page.Products)
			assert.Empty(t, page.Products)
		})
	}
}

func TestDecodeProductPageUnrecognizedShape(t *testing.T) {
	for name, body := range map[string]string{
		"object":  `{"foo":"bar"}`,
		"null":    `null`,
		"garbage": `not json at all`,
	} {
		t.Run(name, func(t *testing.T) {
			page, ok := decodeProductPage([]byte(body))
			assert.False(t, ok)
			require.NotNil(t, page.Products)
			assert.Empty(t, page.Products)
		})
	}
}

func TestDecodeCategoriesBareArray(t *testing.T) {
	cats, ok := decodeCategories([]byte(`[{"id":1,"name":"Footwear","icon":"boot","isActive":true}]`))
	require.True(t, ok)
	require.Len(t, cats, 1)
	assert.Equal(t, "Footwear", cats[0].Name)
}

func TestDecodeCategoriesWrapped(t *testing.T) {
	cats, ok := decodeCategories([]byte(`{"data":{"categories":[{"id":2,"name":"Apparel"}]}}`))
	require.True(t, ok)
	require.Len(t, cats, 1)
}

func TestDecodeCategoriesUnrecognized(t *testing.T) {
	cats, ok := decodeCategories([]byte(`{"whatever":1}`))
	assert.False(t, ok)
	require.NotNil(t, cats)
	assert.Empty(t, cats)
}

func TestDecodeProduct(t *testing.T) {
	p, ok := decodeProduct([]byte(`{"id":9,"name":"Belt"}`))
	require.True(t, ok)
	assert.Equal(t, uint(9), p.ID)

	p, ok = decodeProduct([]byte(`{"success":true,"data":{"id":4,"name":"Cap"}}`))
	require.True(t, ok)
	assert.Equal(t, uint(4), p.ID)

	_, ok = decodeProduct([]byte(`{"nope":true}`))
	assert.False(t, ok)
}
