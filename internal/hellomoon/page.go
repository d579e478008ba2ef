package hellomoon

// Page is the envelope every endpoint responds with.
type Page[T any] struct {
	Data            []T     `json:"data"`
	PaginationToken *string `json:"paginationToken"`
}

// Next returns the continuation token, if the API sent a non-empty one.
// Walking pages is left to the caller: copy the token into Paging.PaginationToken
// and call the endpoint again.
func (p *Page[T]) Next() (string, bool) {
	if p == nil || p.PaginationToken == nil || *p.PaginationToken == "" {
		return "", false
	}
	return *p.PaginationToken, true
}

// Len returns the number of rows on this page.
func (p *Page[T]) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Data)
}

// Paging holds the pagination fields accepted by every endpoint. Embed it in
// request structs; encoding/json flattens it into the body.
type Paging struct {
	// Limit is the number of results per page. nil omits it; Ptr(0) sends 0.
	Limit *int `json:"limit,omitempty"`
	// Page is the page number to return.
	Page *int `json:"page,omitempty"`
	// PaginationToken continues a previous result set.
	PaginationToken string `json:"paginationToken,omitempty"`
}

// Record is a response row whose wire schema is not fixed by this package.
type Record = map[string]any

// Ptr returns a pointer to v. Use it to set optional numeric request fields.
func Ptr[T any](v T) *T {
	return &v
}
