package external

import (
	"context"

	"go.uber.org/zap"

	"github.com/mayur-samrutwar/orion/types"
)

const (
	SourceContractOracle = "contract-oracle"

	fallbackGoldUSD   = 120
	fallbackSilverUSD = 0.8
)

// OracleReader is satisfied by *orion.Reader.
type OracleReader interface {
	Oracle(ctx context.Context) (*types.OraclePrices, error)
}

// ContractFeed serves the prices the contract trades at.
type ContractFeed struct {
	oracle OracleReader
	logger *zap.Logger
}

var _ Feed = (*ContractFeed)(nil)

func NewContractFeed(oracle OracleReader, logger *zap.Logger) *ContractFeed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContractFeed{
		oracle: oracle,
		logger: logger.With(zap.String("feed", FeedContract)),
	}
}

func (f *ContractFeed) Name() string {
	return FeedContract
}

func (f *ContractFeed) Fetch(ctx context.Context) *types.MetalPrices {
	oracle, err := f.oracle.Oracle(ctx)
	if err != nil {
		f.logger.Warn("cannot read oracle, using fallback", zap.Error(err))
		return &types.MetalPrices{
			Gold:   types.MetalPrice{USDPerGram: fallbackGoldUSD},
			Silver: types.MetalPrice{USDPerGram: fallbackSilverUSD},
			Source: SourceFallback,
			Error:  err.Error(),
			Ts:     nowMillis(),
		}
	}
	return &types.MetalPrices{
		Gold:   types.MetalPrice{USDPerGram: oracle.GoldUSD},
		Silver: types.MetalPrice{USDPerGram: oracle.SilverUSD},
		Source: SourceContractOracle,
		Ts:     nowMillis(),
	}
}
