// Package orion
package orion

import (
	"fmt"
	"strings"
)

const (
	DeploymentOrion  = "orion"
	DeploymentXOrion = "xorion"

	DefaultModuleAddress = "0x2aa2969a01ebf3231144c1100d15a0642533c3ec55e889d0e7c168deb071643d"

	USDCSymbol = "USDC"
)

// Asset describes one metal token of a deployment.
type Asset struct {
	Symbol       string // display symbol, e.g. oGOLD
	CoinStruct   string // Move struct name of the coin type
	EntrySuffix  string // suffix of buy_token_/sell_token_/mint_/register_ entry points
	PoolResource string
	BackingPool  string // suffix of admin_back_usdc_
}

// Deployment is the symbol-and-address table of one contract deployment.
type Deployment struct {
	Name            string
	Address         string
	Module          string
	USDCAdminModule string
	USDCStruct      string
	Gold            Asset
	Silver          Asset
}

var deployments = map[string]Deployment{
	DeploymentOrion: {
		Name:            DeploymentOrion,
		Address:         DefaultModuleAddress,
		Module:          "orion",
		USDCAdminModule: "usdc_admin",
		USDCStruct:      "USDC",
		Gold: Asset{
			Symbol:       "oGOLD",
			CoinStruct:   "OGOLD",
			EntrySuffix:  "xgold",
			PoolResource: "PoolGold",
			BackingPool:  "gold",
		},
		Silver: Asset{
			Symbol:       "oSILVER",
			CoinStruct:   "OSILVER",
			EntrySuffix:  "xsilver",
			PoolResource: "PoolSilver",
			BackingPool:  "silver",
		},
	},
	DeploymentXOrion: {
		Name:            DeploymentXOrion,
		Address:         DefaultModuleAddress,
		Module:          "orion",
		USDCAdminModule: "usdc_admin",
		USDCStruct:      "USDC",
		Gold: Asset{
			Symbol:       "xGOLD",
			CoinStruct:   "XGOLD",
			EntrySuffix:  "xgold",
			PoolResource: "PoolGold",
			BackingPool:  "gold",
		},
		Silver: Asset{
			Symbol:       "xSILVER",
			CoinStruct:   "XSILVER",
			EntrySuffix:  "xsilver",
			PoolResource: "PoolSilver",
			BackingPool:  "silver",
		},
	},
}

// LookupDeployment returns the table for name. An empty name selects the orion deployment.
func LookupDeployment(name string) (Deployment, error) {
	if name == "" {
		name = DeploymentOrion
	}
	d, ok := deployments[strings.ToLower(name)]
	if !ok {
		return Deployment{}, fmt.Errorf("unknown deployment %q", name)
	}
	return d, nil
}

// WithAddress returns a copy of d published at addr. An empty addr keeps the default.
func (d Deployment) WithAddress(addr string) Deployment {
	if addr = strings.TrimSpace(addr); addr != "" {
		d.Address = addr
	}
	return d
}

// ModuleID is <address>::<module>.
func (d Deployment) ModuleID() string {
	return d.Address + "::" + d.Module
}

func (d Deployment) asset(t Token) Asset {
	if t == Gold {
		return d.Gold
	}
	return d.Silver
}
