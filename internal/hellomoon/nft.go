package hellomoon

// NFT listings.

// NFTListingsRequest filters /nft/listings. Data goes back 30 days.
type NFTListingsRequest struct {
	HelloMoonCollectionID string          `json:"helloMoonCollectionId,omitempty"`
	InstructionName       InstructionName `json:"instructionName,omitempty"`
	TransactionID         string          `json:"transactionId,omitempty"`
	BlockID               *Filter         `json:"blockId,omitempty"`
	NFTMint               string          `json:"nftMint,omitempty"`
	Market                Market          `json:"market,omitempty"`
	BlockTime             *Filter         `json:"blockTime,omitempty"`
	Paging
}

// NFTListing is one listing action. Price is in lamports and is zero for cancel_ask.
type NFTListing struct {
	HelloMoonCollectionID *string `json:"helloMoonCollectionId"`
	InstructionName       *string `json:"instructionName"`
	NFTMint               *string `json:"nftMint"`
	Market                *string `json:"market"`
	Price                 *string `json:"price"`
	BlockTime             *string `json:"blockTime"`
	BlockID               *string `json:"blockId"`
	TransactionPosition   *int    `json:"transactionPosition"`
	InstructionOrdinal    *int    `json:"instructionOrdinal"`
	TransactionID         *string `json:"transactionId"`
}

// Collection floor-price candlesticks.

// CandlesticksRequest filters /collection/listing/candlesticks.
type CandlesticksRequest struct {
	HelloMoonCollectionID string      `json:"helloMoonCollectionId,omitempty"`
	StartTime             *Filter     `json:"startTime,omitempty"`
	Granularity           Granularity `json:"granularity,omitempty"`
	Paging
}

// Candlestick is one floor-price bucket; prices are lamport strings.
type Candlestick struct {
	HelloMoonCollectionID *string `json:"helloMoonCollectionId"`
	Granularity           *string `json:"granularity"`
	LastBlockID           *int64  `json:"lastblockid"`
	StartTime             *int64  `json:"startTime"`
	High                  *string `json:"high"`
	Low                   *string `json:"low"`
	Open                  *string `json:"open"`
	Close                 *string `json:"close"`
	Volume                *string `json:"volume"`
}

// Collection id mappings. helloMoonCollectionId or the name/mint is required.

type CollectionNameRequest struct {
	HelloMoonCollectionID string `json:"helloMoonCollectionId,omitempty"`
	CollectionName        string `json:"collectionName,omitempty"`
	Paging
}

type CollectionName struct {
	CollectionName        *string `json:"collectionName"`
	HelloMoonCollectionID *string `json:"helloMoonCollectionId"`
	CurrentVolumeSOL      *string `json:"currentVolumeSOL"`
}

type CollectionMintRequest struct {
	HelloMoonCollectionID string `json:"helloMoonCollectionId,omitempty"`
	NFTMint               string `json:"nftMint,omitempty"`
	Paging
}

type CollectionMint struct {
	HelloMoonCollectionID *string `json:"helloMoonCollectionId"`
	NFTMint               *string `json:"nftMint"`
}

// Mint information (Metaplex token standard).

type MetaplexMetadataRequest struct {
	NFTMint           string `json:"nftMint,omitempty"`
	NFTCollectionMint string `json:"nftCollectionMint,omitempty"`
	Paging
}

type MetaplexMetadata struct {
	NFTMint                  *string       `json:"nftMint"`
	NFTMetadataAddress       *string       `json:"nftMetadataAdress"` // sic, as sent by the API
	NFTMetadataJSON          *MetadataJSON `json:"nftMetadataJson"`
	NFTCollectionMint        *string       `json:"nftCollectionMint"`
	NFTVerifiedCreatorsArray []string      `json:"nftVerifiedCreatorsArray"`
}

// MetadataJSON is the on-chain Metaplex metadata of a mint.
type MetadataJSON struct {
	Name                 *string          `json:"name"`
	Symbol               *string          `json:"symbol"`
	URI                  *string          `json:"uri"`
	SellerFeeBasisPoints *int             `json:"sellerFeeBasisPoints"`
	Creators             []Creator        `json:"creators"`
	Collection           *CollectionField `json:"collection"`
}

type Creator struct {
	Address  *string `json:"address"`
	Verified *bool   `json:"verified"`
	Share    *int    `json:"share"`
}

type CollectionField struct {
	Verified *bool   `json:"verified"`
	Key      *string `json:"key"`
}

// Mints held by a wallet.

type MintsByOwnerRequest struct {
	NFTMint               string `json:"nftMint,omitempty"`
	HelloMoonCollectionID string `json:"helloMoonCollectionId,omitempty"`
	OwnerAccount          string `json:"ownerAccount,omitempty"`
	NFTCollectionMint     string `json:"nftCollectionMint,omitempty"`
	Paging
}

type OwnedMint struct {
	NFTMint               *string       `json:"nftMint"`
	TokenAccount          *string       `json:"tokenAccount"`
	OwnerAccount          *string       `json:"ownerAccount"`
	MetadataAddress       *string       `json:"metadataAddress"`
	MetadataJSON          *MetadataJSON `json:"metadataJson"`
	NFTCollectionMint     *string       `json:"nftCollectionMint"`
	VerifiedCreators      []string      `json:"verifiedCreators"`
	HelloMoonCollectionID *string       `json:"helloMoonCollectionId"`
}

// Primary and secondary sales.

type PrimarySalesRequest struct {
	HelloMoonCollectionID string  `json:"helloMoonCollectionId,omitempty"`
	NFTMint               string  `json:"nftMint,omitempty"`
	Buyer                 string  `json:"buyer,omitempty"`
	BlockTime             *Filter `json:"blockTime,omitempty"`
	BlockID               *Filter `json:"blockId,omitempty"`
	Paging
}

type SecondarySalesRequest struct {
	HelloMoonCollectionID string      `json:"helloMoonCollectionId,omitempty"`
	NFTMint               string      `json:"nftMint,omitempty"`
	Buyer                 string      `json:"buyer,omitempty"`
	Seller                string      `json:"seller,omitempty"`
	Marketplace           Marketplace `json:"marketplace,omitempty"`
	Price                 *Filter     `json:"price,omitempty"`
	BlockTime             *Filter     `json:"blockTime,omitempty"`
	BlockID               *Filter     `json:"blockId,omitempty"`
	Paging
}

// Sale is a primary (mint) or secondary sale. Price is in lamports.
type Sale struct {
	BlockID               *string `json:"blockId"`
	Marketplace           *string `json:"marketplace"`
	BlockTime             *string `json:"blockTime"`
	NFTMint               *string `json:"nftMint"`
	Seller                *string `json:"seller"`
	Buyer                 *string `json:"buyer"`
	Price                 *string `json:"price"`
	TransactionID         *string `json:"transactionId"`
	HelloMoonCollectionID *string `json:"helloMoonCollectionId"`
}

// Listing status: whether an NFT can be bought at its asking price.

type ListingStatusRequest struct {
	HelloMoonCollectionID string `json:"helloMoonCollectionId,omitempty"`
	NFTMint               string `json:"nftMint,omitempty"`
	Market                Market `json:"market,omitempty"`
	Paging
}

var (
	NFTListings = register(Endpoint[NFTListingsRequest, NFTListing]{
		Name: "nft-listings", Group: GroupNFT, Path: "/nft/listings",
		Summary: "Listing actions (ask, cancel_ask, put_for_sale, sale_cancel, sale) per market, collection or mint",
	})
	CollectionCandlesticks = register(Endpoint[CandlesticksRequest, Candlestick]{
		Name: "collection-candlesticks", Group: GroupNFT, Path: "/collection/listing/candlesticks",
		Summary: "Floor price OHLC candles per collection",
	})
	CollectionNameMapping = register(Endpoint[CollectionNameRequest, CollectionName]{
		Name: "collection-name-mapping", Group: GroupNFT, Path: "/nft/collection/name",
		Summary: "Map helloMoonCollectionId <-> collection name",
	})
	CollectionMintMapping = register(Endpoint[CollectionMintRequest, CollectionMint]{
		Name: "collection-mint-mapping", Group: GroupNFT, Path: "/nft/collection/mints",
		Summary: "Map helloMoonCollectionId -> on-chain mint addresses",
	})
	MetaplexMetadataInfo = register(Endpoint[MetaplexMetadataRequest, MetaplexMetadata]{
		Name: "metaplex-metadata", Group: GroupNFT, Path: "/nft/mint_information",
		Summary: "On-chain Metaplex metadata of NFT mints",
	})
	MintsByOwner = register(Endpoint[MintsByOwnerRequest, OwnedMint]{
		Name: "mints-by-owner", Group: GroupNFT, Path: "/nft/mints-by-owner",
		Summary: "All NFT mints owned by a wallet",
	})
	PrimarySales = register(Endpoint[PrimarySalesRequest, Sale]{
		Name: "primary-sales", Group: GroupNFT, Path: "/nft/sales/primary",
		Summary: "Mints and the program used to mint them",
	})
	SecondarySales = register(Endpoint[SecondarySalesRequest, Sale]{
		Name: "secondary-sales", Group: GroupNFT, Path: "/nft/sales/secondary",
		Summary: "Sales after mint: buyer, seller, price and marketplace",
	})
	ListingStatus = register(Endpoint[ListingStatusRequest, Record]{
		Name: "listing-status", Group: GroupNFT, Path: "/nft/listing-status",
		Summary: "Whether an NFT is currently listed at an asking price",
	})
)
