package catalog

import (
	"encoding/json"

	"github.com/suteetoe/catalogadmin/internal/model"
)

// The products endpoint has shipped three envelope shapes over time:
//
//	{"success": true, "data": {"products": [...], "pagination": {...}}}
//	{"products": [...]}
//	[...]
//
// decodeProductPage tries them in that order and reports whether any matched.
// An unmatched body normalizes to an empty page so the listing stays usable
// while the backend evolves.
func decodeProductPage(body []byte) (model.ProductPage, bool) {
	var wrapped struct {
		Data *struct {
			Products   []model.Product  `json:"products"`
			Pagination model.Pagination `json:"pagination"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Data != nil && wrapped.Data.Products != nil {
		return model.ProductPage{Products: wrapped.Data.Products, Pagination: wrapped.Data.Pagination}, true
	}

	var bare struct {
		Products []model.Product `json:"products"`
	}
	if err := json.Unmarshal(body, &bare); err == nil && bare.Products != nil {
		return model.ProductPage{Products: bare.Products}, true
	}

	var list []model.Product
	if err := json.Unmarshal(body, &list); err == nil && list != nil {
		return model.ProductPage{Products: list}, true
	}

	return model.ProductPage{Products: []model.Product{}}, false
}

// decodeCategories normalizes the categories endpoint, which may answer with
// a bare array or the same wrapping as the products endpoint.
func decodeCategories(body []byte) ([]model.Category, bool) {
	var list []model.Category
	if err := json.Unmarshal(body, &list); err == nil && list != nil {
		return list, true
	}

	var wrapped struct {
		Data *struct {
			Categories []model.Category `json:"categories"`
		} `json:"data"`
		Categories []model.Category `json:"categories"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		if wrapped.Data != nil && wrapped.Data.Categories != nil {
			return wrapped.Data.Categories, true
		}
		if wrapped.Categories != nil {
			return wrapped.Categories, true
		}
	}

	return []model.Category{}, false
}

// decodeProduct unwraps a single-product response, with or without the
// {success, data} envelope.
func decodeProduct(body []byte) (model.Product, bool) {
	var wrapped struct {
		Data *model.Product `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Data != nil && wrapped.Data.ID != 0 {
		return *wrapped.Data, true
	}

	var p model.Product
	if err := json.Unmarshal(body, &p); err == nil && p.ID != 0 {
		return p, true
	}

	return model.Product{}, false
}
