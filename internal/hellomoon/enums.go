package hellomoon

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// InstructionName is an NFT listing action.
type InstructionName string

const (
	InstructionAsk        InstructionName = "ask"
	InstructionCancelAsk  InstructionName = "cancel_ask"
	InstructionPutForSale InstructionName = "put_for_sale"
	InstructionSaleCancel InstructionName = "sale_cancel"
	InstructionSale       InstructionName = "sale"
)

// InstructionNames lists every InstructionName.
var InstructionNames = []InstructionName{
	InstructionAsk, InstructionCancelAsk, InstructionPutForSale, InstructionSaleCancel, InstructionSale,
}

// Market is a marketplace as spelled by the listings endpoint.
type Market string

const (
	MarketMEv1     Market = "MEv1"
	MarketMEv2     Market = "MEv2"
	MarketSolanart Market = "Solanart"
	MarketSMB      Market = "SMB"
	MarketYawww    Market = "Yawww"
)

// Markets lists every Market.
var Markets = []Market{MarketMEv1, MarketMEv2, MarketSolanart, MarketSMB, MarketYawww}

// Marketplace is a marketplace as spelled by the sales endpoints.
type Marketplace string

const (
	MarketplaceSMB         Marketplace = "SMB"
	MarketplaceMEv1        Marketplace = "ME_V1"
	MarketplaceMEv2        Marketplace = "ME_V2"
	MarketplaceYawww       Marketplace = "YAWWW"
	MarketplaceElixir      Marketplace = "ELIXIR"
	MarketplaceSolsea      Marketplace = "SOLSEA"
	MarketplaceOpensea     Marketplace = "OPENSEA"
	MarketplaceSolanart    Marketplace = "SOLANART"
	MarketplaceHadeswap    Marketplace = "HADESWAP"
	MarketplaceCoralcube   Marketplace = "CORALCUBE"
	MarketplaceCoralCube   Marketplace = "CORAL_CUBE"
	MarketplaceExchangeArt Marketplace = "Exchange.art"
)

// Marketplaces lists every Marketplace.
var Marketplaces = []Marketplace{
	MarketplaceSMB, MarketplaceMEv1, MarketplaceMEv2, MarketplaceYawww, MarketplaceElixir,
	MarketplaceSolsea, MarketplaceOpensea, MarketplaceSolanart, MarketplaceHadeswap,
	MarketplaceCoralcube, MarketplaceCoralCube, MarketplaceExchangeArt,
}

// Granularity is a candlestick / time-series bucket size.
type Granularity string

const (
	GranularityOneMin  Granularity = "ONE_MIN"
	GranularityFiveMin Granularity = "FIVE_MIN"
	GranularityOneHour Granularity = "ONE_HOUR"
	GranularityOneDay  Granularity = "ONE_DAY"
	GranularityOneWeek Granularity = "ONE_WEEK"
)

// Granularities lists every Granularity.
var Granularities = []Granularity{
	GranularityOneMin, GranularityFiveMin, GranularityOneHour, GranularityOneDay, GranularityOneWeek,
}

// LendingActionType is a DeFi lending action.
type LendingActionType string

const (
	LendingBorrow LendingActionType = "borrow"
	LendingRepay  LendingActionType = "repay"
)

// LendingActionTypes lists every LendingActionType.
var LendingActionTypes = []LendingActionType{LendingBorrow, LendingRepay}

// LiquidityAction is a liquidity-pool deposit or withdrawal.
type LiquidityAction string

const (
	LiquidityAdd    LiquidityAction = "addLiquidity"
	LiquidityRemove LiquidityAction = "removeLiquidity"
)

// LiquidityActions lists every LiquidityAction.
var LiquidityActions = []LiquidityAction{LiquidityAdd, LiquidityRemove}

// Aggregator is a swap aggregator.
type Aggregator string

const (
	AggregatorJupiterV2 Aggregator = "Jupiter v2"
	AggregatorJupiterV3 Aggregator = "Jupiter v3"
	AggregatorJupiterV4 Aggregator = "Jupiter v4"
)

// Aggregators lists every Aggregator.
var Aggregators = []Aggregator{AggregatorJupiterV2, AggregatorJupiterV3, AggregatorJupiterV4}

func (v InstructionName) Valid() bool   { return slices.Contains(InstructionNames, v) }
func (v Market) Valid() bool            { return slices.Contains(Markets, v) }
func (v Marketplace) Valid() bool       { return slices.Contains(Marketplaces, v) }
func (v Granularity) Valid() bool       { return slices.Contains(Granularities, v) }
func (v LendingActionType) Valid() bool { return slices.Contains(LendingActionTypes, v) }
func (v LiquidityAction) Valid() bool   { return slices.Contains(LiquidityActions, v) }
func (v Aggregator) Valid() bool        { return slices.Contains(Aggregators, v) }

func (v *InstructionName) UnmarshalJSON(b []byte) error   { return unmarshalEnum(b, v, InstructionNames) }
func (v *Market) UnmarshalJSON(b []byte) error            { return unmarshalEnum(b, v, Markets) }
func (v *Marketplace) UnmarshalJSON(b []byte) error       { return unmarshalEnum(b, v, Marketplaces) }
func (v *Granularity) UnmarshalJSON(b []byte) error       { return unmarshalEnum(b, v, Granularities) }
func (v *LendingActionType) UnmarshalJSON(b []byte) error { return unmarshalEnum(b, v, LendingActionTypes) }
func (v *LiquidityAction) UnmarshalJSON(b []byte) error   { return unmarshalEnum(b, v, LiquidityActions) }
func (v *Aggregator) UnmarshalJSON(b []byte) error        { return unmarshalEnum(b, v, Aggregators) }

// ParseGranularity accepts a granularity case-insensitively ("one_day", "ONE_DAY").
func ParseGranularity(s string) (Granularity, error) {
	return parseEnum(strings.ToUpper(s), Granularities)
}

// ParseMarketplace accepts a sales marketplace name.
func ParseMarketplace(s string) (Marketplace, error) {
	return parseEnum(s, Marketplaces)
}

func parseEnum[E ~string](s string, all []E) (E, error) {
	e := E(s)
	if s == "" || slices.Contains(all, e) {
		return e, nil
	}
	names := make([]string, len(all))
	for i, v := range all {
		names[i] = string(v)
	}
	return "", fmt.Errorf("%q is not one of: %s", s, strings.Join(names, ", "))
}

func unmarshalEnum[E ~string](b []byte, dst *E, all []E) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	e, err := parseEnum(s, all)
	if err != nil {
		return err
	}
	*dst = e
	return nil
}
