package hellomoon

// LendingRequest filters /defi/lending (borrow and repay on protocols like Solend).
type LendingRequest struct {
	ProgramID     string            `json:"programId,omitempty"`
	ProgramName   string            `json:"programName,omitempty"`
	TransactionID string            `json:"transactionId,omitempty"`
	ActionType    LendingActionType `json:"actionType,omitempty"`
	UserAccount   string            `json:"userAccount,omitempty"`
	Mint          string            `json:"mint,omitempty"`
	Paging
}

// LendingAction is one borrow or repay instruction.
type LendingAction struct {
	ActionType             *string `json:"actionType"`
	Amount                 *int64  `json:"amount"`
	BlockTime              *int64  `json:"blockTime"`
	InstructionID          *string `json:"instructionId"`
	InstructionName        *string `json:"instructionName"`
	InstructionOrdinal     *int    `json:"instructionOrdinal"`
	InstructionPosition    *int    `json:"instructionPosition"`
	Mint                   *string `json:"mint"`
	ProgramID              *string `json:"programId"`
	ProgramName            *string `json:"programName"`
	SubInstructionPosition *int    `json:"subInstructionPosition"`
	TransactionID          *string `json:"transactionId"`
	UserAccount            *string `json:"userAccount"`
}

// SwapsRequest filters /defi/swaps.
type SwapsRequest struct {
	UserAccount       string     `json:"userAccount,omitempty"`
	SourceMint        string     `json:"sourceMint,omitempty"`
	DestinationMint   string     `json:"destinationMint,omitempty"`
	AggregatorName    Aggregator `json:"aggregatorName,omitempty"`
	ProgramID         string     `json:"programId,omitempty"`
	SourceAmount      *Filter    `json:"sourceAmount,omitempty"`
	DestinationAmount *Filter    `json:"destinationAmount,omitempty"`
	BlockID           *Filter    `json:"blockId,omitempty"`
	BlockTime         *Filter    `json:"blockTime,omitempty"`
	Paging
}

// PoolRequest filters the liquidity-pool balance and metadata endpoints.
type PoolRequest struct {
	PoolAddress string `json:"poolAddress,omitempty"`
	ProgramName string `json:"programName,omitempty"`
	PoolName    string `json:"poolName,omitempty"`
	MintTokenA  string `json:"mintTokenA,omitempty"`
	MintTokenB  string `json:"mintTokenB,omitempty"`
	Paging
}

// PoolMetadata names a pool and its two tokens.
type PoolMetadata struct {
	ProgramName   *string `json:"programName"`
	PoolAddress   *string `json:"poolAddress"`
	PoolName      *string `json:"poolName"`
	MintTokenA    *string `json:"mintTokenA"`
	NameTokenA    *string `json:"nameTokenA"`
	MintTokenB    *string `json:"mintTokenB"`
	NameTokenB    *string `json:"nameTokenB"`
	TokenAccountA *string `json:"tokenAccountA"`
	TokenAccountB *string `json:"tokenAccountB"`
}

// PoolBalance is the current balance of a pool. Lamport balances are strings,
// converted balances are floats.
type PoolBalance struct {
	PoolMetadata
	Program               *string  `json:"program"`
	BalanceTokenALamports *string  `json:"balanceTokenALamports"`
	BalanceTokenBLamports *string  `json:"balanceTokenBLamports"`
	BalanceTokenA         *float64 `json:"balanceTokenA"`
	BalanceTokenB         *float64 `json:"balanceTokenB"`
}

// EmissionsRequest filters /defi/liquidity-pools/emissions.
type EmissionsRequest struct {
	PoolAddress string  `json:"poolAddress,omitempty"`
	Mint        string  `json:"mint,omitempty"`
	BlockTime   *Filter `json:"blockTime,omitempty"`
	Paging
}

// PoolEmission is the reward emission of one token for one pool.
type PoolEmission struct {
	BlockTime                *int64   `json:"blockTime"`
	BlockID                  *int64   `json:"blockId"`
	TransactionID            *string  `json:"transactionId"`
	PoolAddress              *string  `json:"poolAddress"`
	Mint                     *string  `json:"mint"`
	EmissionsPerDay          *float64 `json:"emissionsPerDay"`
	EmissionsPerDayConverted *float64 `json:"emissionsPerDayConverted"`
	MintName                 *string  `json:"mintName"`
	RewardVault              *string  `json:"rewardVault"`
}

// LiquidityActionsRequest filters /defi/liquidity-pools/withdrawals-deposits.
type LiquidityActionsRequest struct {
	ProgramID       string          `json:"programId,omitempty"`
	UserAccount     string          `json:"userAccount,omitempty"`
	TransactionID   string          `json:"transactionId,omitempty"`
	InstructionName string          `json:"instructionName,omitempty"`
	ActionType      LiquidityAction `json:"actionType,omitempty"`
	TokenMintA      string          `json:"tokenMintA,omitempty"`
	TokenMintB      string          `json:"tokenMintB,omitempty"`
	Paging
}

var (
	DeFiLending = register(Endpoint[LendingRequest, LendingAction]{
		Name: "defi-lending", Group: GroupDeFi, Path: "/defi/lending",
		Summary: "Borrow and repay activity on lending protocols",
	})
	DeFiSwaps = register(Endpoint[SwapsRequest, Record]{
		Name: "defi-swaps", Group: GroupDeFi, Path: "/defi/swaps",
		Summary: "Swaps with user, program, aggregator and amounts",
	})
	LPBalances = register(Endpoint[PoolRequest, PoolBalance]{
		Name: "lp-balances", Group: GroupDeFi, Path: "/defi/liquidity-pools/balances",
		Summary: "Current balance of liquidity pools",
	})
	LPEmissions = register(Endpoint[EmissionsRequest, PoolEmission]{
		Name: "lp-emissions", Group: GroupDeFi, Path: "/defi/liquidity-pools/emissions",
		Summary: "Reward emissions per token and pool",
	})
	LPMetadata = register(Endpoint[PoolRequest, PoolMetadata]{
		Name: "lp-metadata", Group: GroupDeFi, Path: "/defi/liquidity-pools/metadata",
		Summary: "Pool and token names of liquidity pools",
	})
	LPWithdrawalsDeposits = register(Endpoint[LiquidityActionsRequest, Record]{
		Name: "lp-withdrawals-deposits", Group: GroupDeFi, Path: "/defi/liquidity-pools/withdrawals-deposits",
		Summary: "Token pairs deposited to or withdrawn from pools",
	})
)
