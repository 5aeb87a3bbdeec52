// Package orion builds call payloads for the Orion contract.
//
// Every method is a pure function of its arguments and the deployment table; nothing
// here touches the network. Amounts passed to Build* are expected to be already
// encoded with EncodeAmount and are forwarded verbatim.
package orion

import (
	"fmt"
	"strings"

	"github.com/mayur-samrutwar/orion/types"
)

type Encoder struct {
	d Deployment
}

func NewEncoder(d Deployment) *Encoder {
	return &Encoder{d: d}
}

func (e *Encoder) Deployment() Deployment {
	return e.d
}

func (e *Encoder) entry(name string) string {
	return e.d.ModuleID() + "::" + name
}

func payload(function string, args ...string) types.CallPayload {
	if args == nil {
		args = []string{}
	}
	return types.CallPayload{
		Function:          function,
		TypeArguments:     []string{},
		FunctionArguments: args,
	}
}

func (e *Encoder) BuildBuyPayload(t Token, usdcAmount6 string) types.CallPayload {
	return payload(e.entry("buy_token_"+e.d.asset(t).EntrySuffix), usdcAmount6)
}

func (e *Encoder) BuildSellPayload(t Token, tokenAmount6 string) types.CallPayload {
	return payload(e.entry("sell_token_"+e.d.asset(t).EntrySuffix), tokenAmount6)
}

// BuildMintPayload passes recipient through untouched, address validation belongs to
// the wallet and the contract.
func (e *Encoder) BuildMintPayload(t Token, recipient, amount6 string) types.CallPayload {
	return payload(e.entry("mint_"+e.d.asset(t).EntrySuffix), recipient, amount6)
}

// BuildRegistrationPayloads returns the stablecoin registration followed by the token
// registration. The order is fixed: registering a token on an account without a
// USDC store may be rejected.
func (e *Encoder) BuildRegistrationPayloads(t Token) []types.CallPayload {
	return []types.CallPayload{
		payload(e.entry("register_usdc")),
		payload(e.entry("register_" + e.d.asset(t).EntrySuffix)),
	}
}

func (e *Encoder) BuildAddLiquidityPayload(t Token, tokenAmount6, usdcAmount6 string) types.CallPayload {
	return payload(e.entry("add_liquidity_"+e.d.asset(t).EntrySuffix), tokenAmount6, usdcAmount6)
}

func (e *Encoder) BuildSetOraclePricesPayload(goldPrice6, silverPrice6 string) types.CallPayload {
	return payload(e.entry("admin_set_oracle_prices"), goldPrice6, silverPrice6)
}

func (e *Encoder) BuildBackUSDCPayload(t Token, amount6 string) types.CallPayload {
	return payload(e.entry("admin_back_usdc_"+e.d.asset(t).BackingPool), amount6)
}

func (e *Encoder) BuildInitUSDCPayload() types.CallPayload {
	return payload(e.d.Address + "::" + e.d.USDCAdminModule + "::init_usdc")
}

func (e *Encoder) BuildMintUSDCPayload(recipient, amount6 string) types.CallPayload {
	return payload(e.d.Address+"::"+e.d.USDCAdminModule+"::mint_usdc", recipient, amount6)
}

// ResolveCoinTypeTag maps USDC and the deployment's metal symbols to their fully
// qualified coin types. Anything else is ErrUnknownSymbol: a guessed tag would query
// the wrong resource.
func (e *Encoder) ResolveCoinTypeTag(symbol string) (string, error) {
	s := strings.TrimSpace(symbol)
	switch {
	case strings.EqualFold(s, USDCSymbol):
		return e.d.ModuleID() + "::" + e.d.USDCStruct, nil
	case strings.EqualFold(s, e.d.Gold.Symbol):
		return e.d.ModuleID() + "::" + e.d.Gold.CoinStruct, nil
	case strings.EqualFold(s, e.d.Silver.Symbol):
		return e.d.ModuleID() + "::" + e.d.Silver.CoinStruct, nil
	}
	return "", fmt.Errorf("%w: %q", types.ErrUnknownSymbol, symbol)
}

// TokenSymbol is the display symbol of t in this deployment.
func (e *Encoder) TokenSymbol(t Token) string {
	return e.d.asset(t).Symbol
}

// PoolResourceType is the fully qualified pool resource of t.
func (e *Encoder) PoolResourceType(t Token) string {
	return e.d.ModuleID() + "::" + e.d.asset(t).PoolResource
}

func (e *Encoder) OracleResourceType() string {
	return e.d.ModuleID() + "::OracleConfig"
}

func (e *Encoder) ProofOfReserveResourceType() string {
	return e.d.ModuleID() + "::ProofOfReserve"
}
