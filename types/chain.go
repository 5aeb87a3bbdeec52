// Package types
package types

// U64Value mirrors the Move `{ value: u64 }` wrapper used by coin reserves.
type U64Value struct {
	Value string `json:"value"`
}

// PoolResource is the raw PoolGold / PoolSilver resource.
type PoolResource struct {
	TokenReserve  U64Value `json:"token_reserve"`
	USDCReserve   U64Value `json:"usdc_reserve"`
	TotalLPShares string   `json:"total_lp_shares"`
}

type PoolReserves struct {
	Token  string  `json:"token"`
	Tokens float64 `json:"tokenReserve"`
	USDC   float64 `json:"usdcReserve"`
	Shares string  `json:"totalLpShares"`
}

// OracleResource is the raw OracleConfig resource, prices are 6-decimal USD per gram.
type OracleResource struct {
	XauUsd6 string `json:"xau_usd_6"`
	XagUsd6 string `json:"xag_usd_6"`
}

type OraclePrices struct {
	GoldUSD   float64 `json:"goldUsdPerGram"`
	SilverUSD float64 `json:"silverUsdPerGram"`
	XauUsd6   string  `json:"xauUsd6"`
	XagUsd6   string  `json:"xagUsd6"`
}

type ProofOfReserveResource struct {
	TotalMintedGold   string `json:"total_minted_ogold"`
	TotalMintedSilver string `json:"total_minted_osilver"`
}

type ProofOfReserve struct {
	MintedGold   float64 `json:"mintedGold"`
	MintedSilver float64 `json:"mintedSilver"`
}

type Balance struct {
	Owner    string  `json:"owner"`
	Symbol   string  `json:"symbol"`
	CoinType string  `json:"coinType"`
	Raw      string  `json:"raw"`
	Amount   float64 `json:"amount"`
}
