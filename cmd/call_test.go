package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/moon/internal/config"
	"github.com/Mohsinsiddi/moon/internal/hellomoon"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func testServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func lookup(t *testing.T, name string) hellomoon.Descriptor {
	t.Helper()
	d, ok := hellomoon.Lookup(name)
	require.True(t, ok, name)
	return d
}

func encode(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// withConfig installs a default config for commands that read it.
func withConfig(t *testing.T) {
	t.Helper()
	c, err := config.Load(t.TempDir())
	require.NoError(t, err)
	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

// ---------------------------------------------------------------------------
// buildCallRequest
// ---------------------------------------------------------------------------

func TestBuildCallRequestNothingSetIsNil(t *testing.T) {
	req, err := buildCallRequest(lookup(t, "nft-listings"), callInput{})
	require.NoError(t, err)
	assert.Nil(t, req)
}

func TestBuildCallRequestPriority(t *testing.T) {
	limit := 3
	req, err := buildCallRequest(lookup(t, "secondary-sales"), callInput{
		DefaultLimit: 50,
		Body:         `{"nftMint":"body-mint","buyer":"body-buyer","limit":10}`,
		Set:          []string{"nftMint=set-mint"},
		Limit:        &limit,
		Token:        "tok",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"nftMint":"set-mint","buyer":"body-buyer","limit":3,"paginationToken":"tok"}`, encode(t, req))
}

func TestBuildCallRequestDefaultLimit(t *testing.T) {
	req, err := buildCallRequest(lookup(t, "collection-name-mapping"), callInput{DefaultLimit: 25})
	require.NoError(t, err)
	assert.JSONEq(t, `{"limit":25}`, encode(t, req))

	req, err = buildCallRequest(lookup(t, "collection-name-mapping"), callInput{DefaultLimit: 25, Body: `{"limit":2}`})
	require.NoError(t, err)
	assert.JSONEq(t, `{"limit":2}`, encode(t, req), "body overrides the configured default")
}

func TestBuildCallRequestExplicitZero(t *testing.T) {
	zero := 0
	req, err := buildCallRequest(lookup(t, "nft-listings"), callInput{Page: &zero})
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":0}`, encode(t, req))
}

func TestBuildCallRequestRejectsUnknownField(t *testing.T) {
	_, err := buildCallRequest(lookup(t, "nft-listings"), callInput{Body: `{"nftMintt":"x"}`})
	assert.Error(t, err)

	_, err = buildCallRequest(lookup(t, "nft-listings"), callInput{Set: []string{"owner=x"}})
	assert.Error(t, err)
}

func TestBuildCallRequestRejectsBadBody(t *testing.T) {
	_, err := buildCallRequest(lookup(t, "nft-listings"), callInput{Body: `{nope`})
	assert.ErrorContains(t, err, "not valid JSON")

	_, err = buildCallRequest(lookup(t, "nft-listings"), callInput{Body: `[1,2]`})
	assert.Error(t, err)
}

func TestWithToken(t *testing.T) {
	d := lookup(t, "nft-listings")
	req, err := withToken(d, &hellomoon.NFTListingsRequest{NFTMint: "m"}, "next")
	require.NoError(t, err)
	assert.JSONEq(t, `{"nftMint":"m","paginationToken":"next"}`, encode(t, req))

	req, err = withToken(d, nil, "next")
	require.NoError(t, err)
	assert.JSONEq(t, `{"paginationToken":"next"}`, encode(t, req))
}

// ---------------------------------------------------------------------------
// fetchPages
// ---------------------------------------------------------------------------

func TestFetchPagesFollowsTokens(t *testing.T) {
	var calls atomic.Int64
	var tokens []string
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		tok, _ := body["paginationToken"].(string)
		tokens = append(tokens, tok)
		if n < 3 {
			io.WriteString(w, `{"data":[{"n":1}],"paginationToken":"t`+string(rune('0'+n))+`"}`) //nolint:errcheck
			return
		}
		io.WriteString(w, `{"data":[{"n":3}],"paginationToken":null}`) //nolint:errcheck
	})
	c := hellomoon.NewClient(hellomoon.WithBaseURL(srv.URL))
	d := lookup(t, "collection-stats")

	pages, err := fetchPages(context.Background(), c, "k", d, &hellomoon.CollectionSummaryRequest{}, 5)
	require.NoError(t, err)
	assert.Len(t, pages, 3)
	assert.Equal(t, []string{"", "t1", "t2"}, tokens)
}

func TestFetchPagesStopsAtLimit(t *testing.T) {
	var calls atomic.Int64
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		io.WriteString(w, `{"data":[],"paginationToken":"again"}`) //nolint:errcheck
	})
	c := hellomoon.NewClient(hellomoon.WithBaseURL(srv.URL))

	pages, err := fetchPages(context.Background(), c, "k", lookup(t, "program-stats"), nil, 2)
	require.NoError(t, err)
	assert.Len(t, pages, 2)
	assert.EqualValues(t, 2, calls.Load())
}

func TestFetchPagesError(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"Unauthorized"}`) //nolint:errcheck
	})
	c := hellomoon.NewClient(hellomoon.WithBaseURL(srv.URL))

	_, err := fetchPages(context.Background(), c, "bad", lookup(t, "program-stats"), nil, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "program-stats")
	assert.Contains(t, err.Error(), "HTTP 401")
	assert.Contains(t, errLine(err), "moon config list")
}

// ---------------------------------------------------------------------------
// printPages
// ---------------------------------------------------------------------------

func TestPrintPagesTable(t *testing.T) {
	withConfig(t)
	var buf bytes.Buffer
	err := printPages(&buf, []json.RawMessage{
		json.RawMessage(`{"data":[{"name":"Okay Bears","volume":12.5}],"paginationToken":"more"}`),
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Okay Bears")
	assert.Contains(t, out, "12.5")
	assert.Contains(t, out, "1 rows")
	assert.Contains(t, out, "--token more")
}

func TestPrintPagesEmpty(t *testing.T) {
	withConfig(t)
	var buf bytes.Buffer
	require.NoError(t, printPages(&buf, []json.RawMessage{json.RawMessage(`{"data":null,"paginationToken":null}`)}))
	assert.Contains(t, buf.String(), "No results.")
	assert.NotContains(t, buf.String(), "--token")
}

func TestPrintPagesRaw(t *testing.T) {
	withConfig(t)
	callRaw = true
	t.Cleanup(func() { callRaw = false })

	var buf bytes.Buffer
	require.NoError(t, printPages(&buf, []json.RawMessage{json.RawMessage(`{"data":[]}`)}))
	assert.Equal(t, "{\"data\":[]}\n", buf.String())
}

// ---------------------------------------------------------------------------
// endpoints
// ---------------------------------------------------------------------------

func TestFilterEndpoints(t *testing.T) {
	all := hellomoon.Catalog()
	got, err := filterEndpoints(all, "")
	require.NoError(t, err)
	assert.Len(t, got, len(all))

	got, err = filterEndpoints(all, hellomoon.GroupDeFi)
	require.NoError(t, err)
	assert.Len(t, got, 6)
	for _, d := range got {
		assert.Equal(t, hellomoon.GroupDeFi, d.Group)
	}

	_, err = filterEndpoints(all, "nfts")
	assert.ErrorContains(t, err, "unknown group")
}

func TestDescribeEndpoint(t *testing.T) {
	out := describeEndpoint(lookup(t, "nft-listings"))
	assert.Contains(t, out, "/nft/listings")
	assert.Contains(t, out, "helloMoonCollectionId")
	assert.Contains(t, out, "MEv2")
	assert.Contains(t, out, "paginationToken")
}

func TestUnknownEndpointSuggests(t *testing.T) {
	err := unknownEndpoint("listings")
	assert.ErrorContains(t, err, "nft-listings")

	err = unknownEndpoint("zzz")
	assert.ErrorContains(t, err, "moon endpoints")
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "", maskKey(""))
	assert.Equal(t, "•••", maskKey("abc"))
	assert.Equal(t, "••••••••wxyz", maskKey("0123456789wxyz"))
}
