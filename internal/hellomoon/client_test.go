package hellomoon

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

// captured is what the test server saw for the last request.
type captured struct {
	mu      sync.Mutex
	method  string
	path    string
	headers http.Header
	body    []byte
	hasBody bool
}

func (c *captured) record(r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.method = r.Method
	c.path = r.URL.Path
	c.headers = r.Header.Clone()
	c.body = b
	c.hasBody = len(b) > 0
}

func replyJSON(seen *captured, status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			seen.record(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

// ---------------------------------------------------------------------------
// Client construction
// ---------------------------------------------------------------------------

func TestNewClientDefaults(t *testing.T) {
	c := NewClient()
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, 30*time.Second, c.http.Timeout)
}

func TestWithBaseURLTrimsSlash(t *testing.T) {
	c := NewClient(WithBaseURL("http://localhost:8080/v0/"))
	assert.Equal(t, "http://localhost:8080/v0", c.BaseURL())
	assert.Equal(t, "http://localhost:8080/v0/nft/listings", c.URL("/nft/listings"))
	assert.Equal(t, "http://localhost:8080/v0/nft/listings", c.URL("nft/listings"))
}

func TestWithTimeoutIgnoresZero(t *testing.T) {
	c := NewClient(WithTimeout(0))
	assert.Equal(t, 30*time.Second, c.http.Timeout)
	c = NewClient(WithTimeout(5 * time.Second))
	assert.Equal(t, 5*time.Second, c.http.Timeout)
}

func TestWithTimeoutEitherOrder(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	c := NewClient(WithHTTPClient(shared), WithTimeout(5*time.Second))
	assert.Equal(t, 5*time.Second, c.http.Timeout)

	c = NewClient(WithTimeout(5*time.Second), WithHTTPClient(shared))
	assert.Equal(t, 5*time.Second, c.http.Timeout)

	assert.Equal(t, time.Minute, shared.Timeout, "the supplied client is left untouched")
	assert.NotSame(t, shared, c.http)
}

func TestWithTimeoutLeavesDefaultClientAlone(t *testing.T) {
	before := http.DefaultClient.Timeout
	c := NewClient(WithHTTPClient(http.DefaultClient), WithTimeout(5*time.Second))
	assert.Equal(t, 5*time.Second, c.http.Timeout)
	assert.Equal(t, before, http.DefaultClient.Timeout)
}

func TestWithHTTPClientNilIgnored(t *testing.T) {
	c := NewClient(WithHTTPClient(nil))
	require.NotNil(t, c.http)
	assert.Equal(t, 30*time.Second, c.http.Timeout)
}

func TestWithHTTPClientKeptWithoutTimeout(t *testing.T) {
	hc := &http.Client{}
	c := NewClient(WithHTTPClient(hc))
	assert.Same(t, hc, c.http)
}

// ---------------------------------------------------------------------------
// Call: request shape
// ---------------------------------------------------------------------------

func TestCallSendsHeadersAndBody(t *testing.T) {
	var seen captured
	srv := testServer(t, replyJSON(&seen, http.StatusOK, `{"data":[]}`))
	c := newTestClient(srv)

	req := &NFTListingsRequest{HelloMoonCollectionID: "abc", Paging: Paging{Limit: Ptr(5)}}
	_, err := NFTListings.Call(context.Background(), c, "KEY123", req)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, seen.method)
	assert.Equal(t, "/nft/listings", seen.path)
	assert.Equal(t, "application/json", seen.headers.Get("Accept"))
	assert.Equal(t, "application/json", seen.headers.Get("Content-Type"))
	assert.Equal(t, "Bearer KEY123", seen.headers.Get("Authorization"))
	assert.JSONEq(t, `{"helloMoonCollectionId":"abc","limit":5}`, string(seen.body))
}

func TestCallNilRequestSendsNoBody(t *testing.T) {
	var seen captured
	srv := testServer(t, replyJSON(&seen, http.StatusOK, `{"data":[]}`))
	c := newTestClient(srv)

	_, err := NFTListings.Call(context.Background(), c, "k", nil)
	require.NoError(t, err)
	assert.False(t, seen.hasBody)
	assert.Equal(t, "Bearer k", seen.headers.Get("Authorization"))
}

func TestCallTypedNilIsNoBody(t *testing.T) {
	var seen captured
	srv := testServer(t, replyJSON(&seen, http.StatusOK, `{}`))
	c := newTestClient(srv)

	var req *SwapsRequest
	_, err := Call[Record](context.Background(), c, c.URL("/defi/swaps"), "k", req)
	require.NoError(t, err)
	assert.False(t, seen.hasBody)
}

func TestCallEmptyAPIKeyStillSendsBearer(t *testing.T) {
	var seen captured
	srv := testServer(t, replyJSON(&seen, http.StatusOK, `{}`))
	c := newTestClient(srv)

	_, err := Call[Record](context.Background(), c, srv.URL, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer ", seen.headers.Get("Authorization"))
}

func TestCallUnencodableRequest(t *testing.T) {
	c := NewClient(WithBaseURL("http://127.0.0.1:1"))
	_, err := Call[Record](context.Background(), c, c.URL("/x"), "k", map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode request")
}

// ---------------------------------------------------------------------------
// Call: response decoding
// ---------------------------------------------------------------------------

func TestCallDecodesTypedPage(t *testing.T) {
	srv := testServer(t, replyJSON(nil, http.StatusOK, `{
		"data":[{"helloMoonCollectionId":"040de757c0d2b75dcee999ddd47689c4","nftMint":"mint1","price":"1500000000","transactionPosition":3}],
		"paginationToken":"tok-2"
	}`))
	c := newTestClient(srv)

	page, err := NFTListings.Call(context.Background(), c, "k", &NFTListingsRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, page.Len())
	row := page.Data[0]
	require.NotNil(t, row.NFTMint)
	assert.Equal(t, "mint1", *row.NFTMint)
	assert.Equal(t, "1500000000", *row.Price)
	assert.Equal(t, 3, *row.TransactionPosition)
	assert.Nil(t, row.Market, "absent fields stay nil")

	tok, ok := page.Next()
	assert.True(t, ok)
	assert.Equal(t, "tok-2", tok)
}

func TestCallNullDataAndToken(t *testing.T) {
	srv := testServer(t, replyJSON(nil, http.StatusOK, `{"data":null,"paginationToken":null}`))
	c := newTestClient(srv)

	page, err := CollectionNameMapping.Call(context.Background(), c, "k", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Len())
	_, ok := page.Next()
	assert.False(t, ok)
}

func TestCallMissingEnvelopeFields(t *testing.T) {
	srv := testServer(t, replyJSON(nil, http.StatusOK, `{}`))
	c := newTestClient(srv)

	page, err := SecondarySales.Call(context.Background(), c, "k", nil)
	require.NoError(t, err)
	assert.Nil(t, page.Data)
	assert.Nil(t, page.PaginationToken)
}

func TestCallInvalidJSON(t *testing.T) {
	srv := testServer(t, replyJSON(nil, http.StatusOK, `not json`))
	c := newTestClient(srv)

	_, err := NFTListings.Call(context.Background(), c, "k", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode failed")
	assert.Contains(t, err.Error(), "nft-listings")
}

func TestCallTypeMismatchIsDecodeError(t *testing.T) {
	srv := testServer(t, replyJSON(nil, http.StatusOK, `{"data":[{"transactionPosition":"three"}]}`))
	c := newTestClient(srv)

	_, err := NFTListings.Call(context.Background(), c, "k", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode failed")
}

func TestCallRawReturnsBody(t *testing.T) {
	srv := testServer(t, replyJSON(nil, http.StatusOK, `{"data":[{"anything":1}]}`))
	c := newTestClient(srv)

	raw, err := ProgramStats.Raw(context.Background(), c, "k", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[{"anything":1}]}`, string(raw))
}

func TestCallRecordRows(t *testing.T) {
	srv := testServer(t, replyJSON(nil, http.StatusOK, `{"data":[{"volume":12.5,"name":"x"}]}`))
	c := newTestClient(srv)

	page, err := CollectionStats.Call(context.Background(), c, "k", nil)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, 12.5, page.Data[0]["volume"])
	assert.Equal(t, "x", page.Data[0]["name"])
}

// ---------------------------------------------------------------------------
// Call: failures
// ---------------------------------------------------------------------------

func TestCallNon2xxIsError(t *testing.T) {
	srv := testServer(t, replyJSON(nil, http.StatusUnauthorized, `{"message":"Unauthorized"}`))
	c := newTestClient(srv)

	_, err := NFTListings.Call(context.Background(), c, "bad", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 401")
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestCallNon2xxEmptyBody(t *testing.T) {
	srv := testServer(t, replyJSON(nil, http.StatusInternalServerError, ``))
	c := newTestClient(srv)

	_, err := Call[Record](context.Background(), c, srv.URL, "k", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500: empty body")
}

func TestExcerptTruncates(t *testing.T) {
	long := make([]byte, maxErrorBody*2)
	for i := range long {
		long[i] = 'a'
	}
	out := excerpt(long)
	assert.Len(t, []rune(out), maxErrorBody+1)
}

func TestCallTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(WithBaseURL(url))
	_, err := Call[Record](context.Background(), c, c.URL("/nft/listings"), "k", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestCallContextCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)
	c := newTestClient(srv)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := Call[Record](ctx, c, srv.URL, "k", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// ---------------------------------------------------------------------------
// Concurrency
// ---------------------------------------------------------------------------

func TestCallConcurrentIndependent(t *testing.T) {
	var hits atomic.Int64
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		// Echo the requested mint back so each caller can check it got its own answer.
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"nftMint": body["nftMint"], "helloMoonCollectionId": r.Header.Get("Authorization")}},
		})
	})
	c := newTestClient(srv)

	const n = 25
	var wg sync.WaitGroup
	errs := make([]error, n)
	got := make([]string, n)
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mint := string(rune('a'+i%26)) + "-mint"
			page, err := CollectionMintMapping.Call(context.Background(), c, mint+"-key", &CollectionMintRequest{NFTMint: mint})
			errs[i] = err
			if err == nil && page.Len() == 1 {
				got[i] = *page.Data[0].NFTMint
				keys[i] = *page.Data[0].HelloMoonCollectionID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		mint := string(rune('a'+i%26)) + "-mint"
		assert.Equal(t, mint, got[i])
		assert.Equal(t, "Bearer "+mint+"-key", keys[i])
	}
	assert.EqualValues(t, n, hits.Load())
}

func TestIsNil(t *testing.T) {
	var p *NFTListingsRequest
	var m map[string]any
	assert.True(t, isNil(nil))
	assert.True(t, isNil(p))
	assert.True(t, isNil(m))
	assert.False(t, isNil(&NFTListingsRequest{}))
	assert.False(t, isNil(map[string]any{}))
	assert.False(t, isNil(5))
}
