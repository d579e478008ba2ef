package hellomoon

// Summary endpoints return aggregated time series and leaderboards. Their row
// schemas vary by endpoint and API version, so rows decode as Record.

// CollectionSummaryRequest filters the NFT collection summaries.
// Fields besides paging are unverified against the live schema.
type CollectionSummaryRequest struct {
	HelloMoonCollectionID string      `json:"helloMoonCollectionId,omitempty"`
	Granularity           Granularity `json:"granularity,omitempty"`
	Day                   string      `json:"day,omitempty"`
	Paging
}

// MarketplaceSummaryRequest filters the marketplace summaries.
// Fields besides paging are unverified against the live schema.
type MarketplaceSummaryRequest struct {
	Marketplace Marketplace `json:"marketplace,omitempty"`
	Granularity Granularity `json:"granularity,omitempty"`
	Paging
}

// ProgramSummaryRequest filters the per-program DeFi summaries.
// Fields besides paging are unverified against the live schema.
type ProgramSummaryRequest struct {
	ProgramID   string      `json:"programId,omitempty"`
	ProgramName string      `json:"programName,omitempty"`
	Granularity Granularity `json:"granularity,omitempty"`
	Paging
}

// TokenSummaryRequest filters the per-token summaries.
// Fields besides paging are unverified against the live schema.
type TokenSummaryRequest struct {
	Mint        string      `json:"mint,omitempty"`
	Granularity Granularity `json:"granularity,omitempty"`
	Paging
}

// JupiterRequest filters the Jupiter aggregator and swapping-pair summaries.
// Fields besides paging are unverified against the live schema.
type JupiterRequest struct {
	SourceMint      string      `json:"sourceMint,omitempty"`
	DestinationMint string      `json:"destinationMint,omitempty"`
	Mint            string      `json:"mint,omitempty"`
	Granularity     Granularity `json:"granularity,omitempty"`
	Paging
}

// DeFi summaries.
var (
	JupiterCurrentStats = register(Endpoint[JupiterRequest, Record]{
		Name: "jupiter-current-stats", Group: GroupDeFiSummary, Path: "/defi/jupiter/stats/current",
		Summary: "Current Jupiter volume, users and swap counts",
	})
	JupiterHistoricalStats = register(Endpoint[JupiterRequest, Record]{
		Name: "jupiter-historical-stats", Group: GroupDeFiSummary, Path: "/defi/jupiter/stats/historical",
		Summary: "Jupiter stats over time",
	})
	JupiterPairVolume = register(Endpoint[JupiterRequest, Record]{
		Name: "jupiter-pair-volume", Group: GroupDeFiSummary, Path: "/defi/jupiter/pair-volume",
		Summary: "Jupiter volume per token pair",
	})
	JupiterTokenVolume = register(Endpoint[JupiterRequest, Record]{
		Name: "jupiter-token-volume", Group: GroupDeFiSummary, Path: "/defi/jupiter/token-volume",
		Summary: "Jupiter volume per token",
	})
	ProgramNewUsers = register(Endpoint[ProgramSummaryRequest, Record]{
		Name: "program-new-users", Group: GroupDeFiSummary, Path: "/defi/program/new-users",
		Summary: "First-time users of a program over time",
	})
	ProgramOverlap = register(Endpoint[ProgramSummaryRequest, Record]{
		Name: "program-overlap", Group: GroupDeFiSummary, Path: "/defi/program/overlap",
		Summary: "Users shared between programs",
	})
	ProgramStats = register(Endpoint[ProgramSummaryRequest, Record]{
		Name: "program-stats", Group: GroupDeFiSummary, Path: "/defi/program/stats",
		Summary: "Users, transactions and fees per program",
	})
	TopTokensPerProgram = register(Endpoint[ProgramSummaryRequest, Record]{
		Name: "top-tokens-per-program", Group: GroupDeFiSummary, Path: "/defi/program/top-tokens",
		Summary: "Most used tokens per program",
	})
	SPLTokenStats = register(Endpoint[TokenSummaryRequest, Record]{
		Name: "spl-token-stats", Group: GroupDeFiSummary, Path: "/token/stats",
		Summary: "Supply, holders and transfer stats of SPL tokens",
	})
	TokenNewUsersOverTime = register(Endpoint[TokenSummaryRequest, Record]{
		Name: "token-new-users-over-time", Group: GroupDeFiSummary, Path: "/token/new-users",
		Summary: "First-time holders of a token over time",
	})
	TokenUsersOverTime = register(Endpoint[TokenSummaryRequest, Record]{
		Name: "token-users-over-time", Group: GroupDeFiSummary, Path: "/token/users",
		Summary: "Active users of a token over time",
	})
	SwappingPairsWeekly = register(Endpoint[JupiterRequest, Record]{
		Name: "swapping-pairs-weekly", Group: GroupDeFiSummary, Path: "/defi/swapping-pairs/weekly",
		Summary: "Most swapped token pairs per week",
	})
)

// NFT summaries.
var (
	CollectionCurrentOwners = register(Endpoint[CollectionSummaryRequest, Record]{
		Name: "collection-current-owners", Group: GroupNFTSummary, Path: "/nft/collection/ownership/current",
		Summary: "Current owner of every mint in a collection",
	})
	CollectionDistinctOwners = register(Endpoint[CollectionSummaryRequest, Record]{
		Name: "collection-distinct-owners", Group: GroupNFTSummary, Path: "/nft/collection/distinct-owners",
		Summary: "Distinct owner count per collection",
	})
	CollectionHoldingPeriod = register(Endpoint[CollectionSummaryRequest, Record]{
		Name: "collection-holding-period", Group: GroupNFTSummary, Path: "/nft/collection/holding-period",
		Summary: "How long holders keep a collection's NFTs",
	})
	CollectionListingStats = register(Endpoint[CollectionSummaryRequest, Record]{
		Name: "collection-listing-stats", Group: GroupNFTSummary, Path: "/nft/collection/listing-stats",
		Summary: "Listed supply and floor per collection",
	})
	CollectionMintStats = register(Endpoint[CollectionSummaryRequest, Record]{
		Name: "collection-mint-stats", Group: GroupNFTSummary, Path: "/nft/collection/mint-stats",
		Summary: "Mint count and mint price per collection",
	})
	CollectionOverlap = register(Endpoint[CollectionSummaryRequest, Record]{
		Name: "collection-overlap", Group: GroupNFTSummary, Path: "/nft/collection/overlap",
		Summary: "Holders shared between collections",
	})
	CollectionProgramUsage = register(Endpoint[CollectionSummaryRequest, Record]{
		Name: "collection-program-usage", Group: GroupNFTSummary, Path: "/nft/collection/program-usage",
		Summary: "Programs a collection's holders interact with",
	})
	CollectionStats = register(Endpoint[CollectionSummaryRequest, Record]{
		Name: "collection-stats", Group: GroupNFTSummary, Path: "/nft/collection/stats",
		Summary: "Volume, sales and floor of a collection",
	})
	CollectionTopHolders = register(Endpoint[CollectionSummaryRequest, Record]{
		Name: "collection-top-holders", Group: GroupNFTSummary, Path: "/nft/collection/top-holders",
		Summary: "Largest holders of a collection",
	})
	CollectionWashtradingIndex = register(Endpoint[CollectionSummaryRequest, Record]{
		Name: "collection-washtrading-index", Group: GroupNFTSummary, Path: "/nft/collection/washtrading",
		Summary: "Wash-trading score of a collection",
	})
	CumulativeNFTOwnersOverTime = register(Endpoint[CollectionSummaryRequest, Record]{
		Name: "cumulative-nft-owners-over-time", Group: GroupNFTSummary, Path: "/nft/owners/cumulative",
		Summary: "Cumulative NFT owners over time",
	})
	MarketSalesOverTime = register(Endpoint[MarketplaceSummaryRequest, Record]{
		Name: "market-sales-over-time", Group: GroupNFTSummary, Path: "/nft/marketplace/sales-over-time",
		Summary: "Sales per marketplace over time",
	})
	MarketplaceStats = register(Endpoint[MarketplaceSummaryRequest, Record]{
		Name: "marketplace-stats", Group: GroupNFTSummary, Path: "/nft/marketplace/stats",
		Summary: "Volume and sales per marketplace",
	})
)
