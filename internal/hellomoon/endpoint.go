package hellomoon

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// Endpoint groups.
const (
	GroupNFT         = "nft"
	GroupDeFi        = "defi"
	GroupNFTSummary  = "nft-summary"
	GroupDeFiSummary = "defi-summary"
)

// Endpoint binds one API path to its request and response row types.
// Bindings carry no behaviour of their own: every call goes through Call.
type Endpoint[Req, Row any] struct {
	Name    string
	Group   string
	Path    string
	Summary string
}

// Call issues the request and decodes the typed page. A nil req sends no body.
func (e Endpoint[Req, Row]) Call(ctx context.Context, c *Client, apiKey string, req *Req) (*Page[Row], error) {
	page, err := Call[Page[Row]](ctx, c, c.URL(e.Path), apiKey, body(req))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Name, err)
	}
	return &page, nil
}

// Raw issues the request and returns the undecoded JSON response.
func (e Endpoint[Req, Row]) Raw(ctx context.Context, c *Client, apiKey string, req *Req) (json.RawMessage, error) {
	raw, err := Call[json.RawMessage](ctx, c, c.URL(e.Path), apiKey, body(req))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Name, err)
	}
	return raw, nil
}

// Descriptor returns the untyped view of the endpoint used by the catalog.
func (e Endpoint[Req, Row]) Descriptor() Descriptor {
	return Descriptor{
		Name:       e.Name,
		Group:      e.Group,
		Path:       e.Path,
		Summary:    e.Summary,
		NewRequest: func() any { return new(Req) },
	}
}

// body turns a typed nil pointer into an untyped nil so Call sends no body.
func body[Req any](req *Req) any {
	if req == nil {
		return nil
	}
	return req
}

// Descriptor is the type-erased form of an Endpoint.
type Descriptor struct {
	Name    string
	Group   string
	Path    string
	Summary string
	// NewRequest returns a pointer to a zero request value for this endpoint.
	NewRequest func() any
}

// Raw issues req (nil, a request struct, or any JSON-encodable value) against
// the endpoint and returns the undecoded response.
func (d Descriptor) Raw(ctx context.Context, c *Client, apiKey string, req any) (json.RawMessage, error) {
	raw, err := Call[json.RawMessage](ctx, c, c.URL(d.Path), apiKey, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}
	return raw, nil
}

// DecodeRequest strictly decodes a JSON object into a fresh request value,
// rejecting fields the endpoint does not declare.
func (d Descriptor) DecodeRequest(b []byte) (any, error) {
	req := d.NewRequest()
	if err := decodeStrict(b, req); err != nil {
		return nil, fmt.Errorf("%s request: %w", d.Name, err)
	}
	return req, nil
}

var (
	catalog []Descriptor
	byName  = map[string]int{}
)

// register adds e to the catalog at package init and returns it unchanged.
func register[Req, Row any](e Endpoint[Req, Row]) Endpoint[Req, Row] {
	if _, dup := byName[e.Name]; dup {
		panic("hellomoon: duplicate endpoint " + e.Name)
	}
	byName[e.Name] = len(catalog)
	catalog = append(catalog, e.Descriptor())
	return e
}

// Catalog returns every endpoint in declaration order.
func Catalog() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds an endpoint by name.
func Lookup(name string) (Descriptor, bool) {
	i, ok := byName[name]
	if !ok {
		return Descriptor{}, false
	}
	return catalog[i], true
}

// Groups returns the distinct endpoint groups, sorted.
func Groups() []string {
	seen := map[string]struct{}{}
	for _, d := range catalog {
		seen[d.Group] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}
