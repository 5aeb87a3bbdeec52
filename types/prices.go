// Package types
package types

type MetalPrice struct {
	USDPerGram float64 `json:"usdPerGram"`
	INRPerGram float64 `json:"inrPerGram,omitempty"`
}

// MetalPrices is a snapshot from one of the price feeds.
type MetalPrices struct {
	Gold    MetalPrice `json:"gold"`
	Silver  MetalPrice `json:"silver"`
	Source  string     `json:"source"`
	BlockID string     `json:"blockId,omitempty"`
	Error   string     `json:"error,omitempty"`
	Ts      int64      `json:"ts"`
}
