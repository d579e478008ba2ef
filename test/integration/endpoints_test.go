package integration_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/moon/internal/hellomoon"
	"github.com/Mohsinsiddi/moon/internal/solana"
	"github.com/Mohsinsiddi/moon/test/fixtures"
)

const okayBears = "040de757c0d2b75dcee999ddd47689c4"

func mockAPI(t *testing.T) (*hellomoon.Client, <-chan fixtures.Request) {
	t.Helper()
	srv, seen := fixtures.Server(t, map[string]fixtures.Route{
		"/nft/listings":                    {File: "nft_listings.json"},
		"/nft/sales/secondary":             {File: "secondary_sales.json"},
		"/collection/listing/candlesticks": {File: "candlesticks.json"},
		"/defi/lending":                    {File: "defi_lending.json"},
		"/nft/collection/stats":            {File: "collection_stats.json"},
		"/nft/mints-by-owner":              {Status: http.StatusUnauthorized, File: "unauthorized.json"},
	})
	return hellomoon.NewClient(hellomoon.WithBaseURL(srv.URL)), seen
}

func TestNFTListings(t *testing.T) {
	client, seen := mockAPI(t)

	page, err := hellomoon.NFTListings.Call(context.Background(), client, "test-key", &hellomoon.NFTListingsRequest{
		HelloMoonCollectionID: okayBears,
		Market:                hellomoon.MarketMEv2,
		Paging:                hellomoon.Paging{Limit: hellomoon.Ptr(2)},
	})
	require.NoError(t, err)
	require.Equal(t, 2, page.Len())
	assert.Equal(t, "ask", *page.Data[0].InstructionName)
	assert.Equal(t, "74 SOL", solana.FormatSOLPtr(page.Data[0].Price))
	assert.Equal(t, 1148, *page.Data[0].TransactionPosition)

	tok, ok := page.Next()
	assert.True(t, ok)
	assert.Equal(t, "eyJibG9ja0lkIjoxNjA1NDI2NTF9", tok)

	req := <-seen
	assert.Equal(t, "/nft/listings", req.Path)
	assert.Equal(t, "Bearer test-key", req.Authorization)
	assert.Equal(t, map[string]any{
		"helloMoonCollectionId": okayBears,
		"market":                "MEv2",
		"limit":                 float64(2),
	}, req.Body)
}

func TestSecondarySalesLastPage(t *testing.T) {
	client, _ := mockAPI(t)

	page, err := hellomoon.SecondarySales.Call(context.Background(), client, "k", &hellomoon.SecondarySalesRequest{
		HelloMoonCollectionID: okayBears,
	})
	require.NoError(t, err)
	require.Equal(t, 1, page.Len())
	assert.Equal(t, "71.5 SOL", solana.FormatSOLPtr(page.Data[0].Price))
	assert.True(t, solana.IsAddress(*page.Data[0].Buyer))

	_, ok := page.Next()
	assert.False(t, ok, "null paginationToken ends the walk")
}

func TestCandlesticksWithFilter(t *testing.T) {
	client, seen := mockAPI(t)

	page, err := hellomoon.CollectionCandlesticks.Call(context.Background(), client, "k", &hellomoon.CandlesticksRequest{
		HelloMoonCollectionID: okayBears,
		Granularity:           hellomoon.GranularityOneDay,
		StartTime:             hellomoon.Between(1668000000, 1668100000),
	})
	require.NoError(t, err)
	require.Equal(t, 1, page.Len())
	assert.Equal(t, int64(1668038400), *page.Data[0].StartTime)
	assert.Equal(t, int64(160542870), *page.Data[0].LastBlockID)

	req := <-seen
	assert.Equal(t, map[string]any{
		"operator":    "between",
		"greaterThan": float64(1668000000),
		"lessThan":    float64(1668100000),
	}, req.Body["startTime"])
}

func TestDeFiLending(t *testing.T) {
	client, seen := mockAPI(t)

	page, err := hellomoon.DeFiLending.Call(context.Background(), client, "k", &hellomoon.LendingRequest{
		ProgramName: "Solend",
		ActionType:  hellomoon.LendingBorrow,
	})
	require.NoError(t, err)
	require.Equal(t, 1, page.Len())
	assert.Equal(t, int64(2500000), *page.Data[0].Amount)
	assert.Equal(t, "Solend", *page.Data[0].ProgramName)

	req := <-seen
	assert.Equal(t, "borrow", req.Body["actionType"])
}

func TestSummaryEndpointRecords(t *testing.T) {
	client, _ := mockAPI(t)

	page, err := hellomoon.CollectionStats.Call(context.Background(), client, "k", &hellomoon.CollectionSummaryRequest{
		HelloMoonCollectionID: okayBears,
	})
	require.NoError(t, err)
	require.Equal(t, 1, page.Len())
	row := page.Data[0]
	assert.Equal(t, "Okay Bears", row["collectionName"])
	assert.Equal(t, float64(18), row["salesCount"])
}

func TestDescriptorRawByName(t *testing.T) {
	client, _ := mockAPI(t)

	for _, name := range []string{"nft-listings", "secondary-sales", "collection-candlesticks", "defi-lending", "collection-stats"} {
		t.Run(name, func(t *testing.T) {
			d, ok := hellomoon.Lookup(name)
			require.True(t, ok)
			req, err := d.DecodeRequest([]byte(`{"limit":1}`))
			require.NoError(t, err)

			raw, err := d.Raw(context.Background(), client, "k", req)
			require.NoError(t, err)
			var env map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(raw, &env))
			assert.Contains(t, env, "data")
		})
	}
}

func TestUnauthorized(t *testing.T) {
	client, _ := mockAPI(t)

	_, err := hellomoon.MintsByOwner.Call(context.Background(), client, "wrong", &hellomoon.MintsByOwnerRequest{
		OwnerAccount: "GyJtNRGmF2XtvyDu8a2ybnvBKkgMx6X3hoBEbbNXRVVF",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mints-by-owner")
	assert.Contains(t, err.Error(), "HTTP 401")
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestUnknownPath(t *testing.T) {
	client, _ := mockAPI(t)

	_, err := hellomoon.PrimarySales.Call(context.Background(), client, "k", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}
