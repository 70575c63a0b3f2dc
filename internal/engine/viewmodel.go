package engine

import "github.com/suteetoe/catalogadmin/internal/model"

// ViewModel is the render-ready snapshot of the product listing. Products is
// always a direct reflection of the last applied server response; it is
// replaced wholesale, never edited in place.
type ViewModel struct {
	Products   []model.Product
	Pagination model.Pagination
	Loading    bool
	Generation uint64
}
