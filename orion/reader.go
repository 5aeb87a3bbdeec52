package orion

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/mayur-samrutwar/orion/types"
)

// ChainReader is the node access the read model needs.
type ChainReader interface {
	Balance(ctx context.Context, owner, coinType string) (string, error)
	Resource(ctx context.Context, account, resourceType string, out interface{}) error
}

// Reader decodes contract resources and balances into display amounts.
type Reader struct {
	enc    *Encoder
	node   ChainReader
	logger *zap.Logger
}

func NewReader(enc *Encoder, node ChainReader, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{
		enc:    enc,
		node:   node,
		logger: logger.With(zap.String("component", "reader")),
	}
}

func (r *Reader) Pool(ctx context.Context, t Token) (*types.PoolReserves, error) {
	var res types.PoolResource
	if err := r.node.Resource(ctx, r.enc.d.Address, r.enc.PoolResourceType(t), &res); err != nil {
		return nil, fmt.Errorf("read %s pool: %w", t, err)
	}
	shares := res.TotalLPShares
	if shares == "" {
		shares = "0"
	}
	return &types.PoolReserves{
		Token:  r.enc.TokenSymbol(t),
		Tokens: DecodeAmount(res.TokenReserve.Value),
		USDC:   DecodeAmount(res.USDCReserve.Value),
		Shares: shares,
	}, nil
}

func (r *Reader) Oracle(ctx context.Context) (*types.OraclePrices, error) {
	var res types.OracleResource
	if err := r.node.Resource(ctx, r.enc.d.Address, r.enc.OracleResourceType(), &res); err != nil {
		return nil, fmt.Errorf("read oracle: %w", err)
	}
	return &types.OraclePrices{
		GoldUSD:   DecodeAmount(res.XauUsd6),
		SilverUSD: DecodeAmount(res.XagUsd6),
		XauUsd6:   res.XauUsd6,
		XagUsd6:   res.XagUsd6,
	}, nil
}

func (r *Reader) ProofOfReserve(ctx context.Context) (*types.ProofOfReserve, error) {
	var res types.ProofOfReserveResource
	if err := r.node.Resource(ctx, r.enc.d.Address, r.enc.ProofOfReserveResourceType(), &res); err != nil {
		return nil, fmt.Errorf("read proof of reserve: %w", err)
	}
	return &types.ProofOfReserve{
		MintedGold:   DecodeAmount(res.TotalMintedGold),
		MintedSilver: DecodeAmount(res.TotalMintedSilver),
	}, nil
}

// Balance reads owner's balance of symbol. Unknown symbols fail before any node call.
func (r *Reader) Balance(ctx context.Context, owner, symbol string) (*types.Balance, error) {
	coinType, err := r.enc.ResolveCoinTypeTag(symbol)
	if err != nil {
		return nil, err
	}
	raw, err := r.node.Balance(ctx, owner, coinType)
	if err != nil {
		return nil, fmt.Errorf("read %s balance: %w", symbol, err)
	}
	return &types.Balance{
		Owner:    owner,
		Symbol:   symbol,
		CoinType: coinType,
		Raw:      raw,
		Amount:   DecodeAmount(raw),
	}, nil
}

// Symbols lists the coins of the deployment in display order.
func (r *Reader) Symbols() []string {
	return []string{USDCSymbol, r.enc.d.Gold.Symbol, r.enc.d.Silver.Symbol}
}

type balanceTask struct {
	idx    int
	symbol string
}

// Balances reads every deployment coin of owner concurrently. Coins that fail to read
// are logged and left out; when none can be read the first error is returned.
func (r *Reader) Balances(ctx context.Context, owner string) ([]*types.Balance, error) {
	symbols := r.Symbols()
	results := make([]*types.Balance, len(symbols))
	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	p, err := ants.NewPoolWithFunc(len(symbols), func(i interface{}) {
		defer wg.Done()
		task := i.(balanceTask)
		b, err := r.Balance(ctx, owner, task.symbol)
		if err != nil {
			r.logger.Warn("cannot read balance", zap.String("owner", owner),
				zap.String("symbol", task.symbol), zap.Error(err))
			errMu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			errMu.Unlock()
			return
		}
		results[task.idx] = b
	}, ants.WithPreAlloc(true))
	if err != nil {
		return nil, err
	}
	defer p.Release()

	for idx, symbol := range symbols {
		wg.Add(1)
		if err := p.Invoke(balanceTask{idx: idx, symbol: symbol}); err != nil {
			wg.Done()
			r.logger.Error("invoke balance read error", zap.Error(err))
			errMu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			errMu.Unlock()
		}
	}
	wg.Wait()

	balances := make([]*types.Balance, 0, len(results))
	for _, b := range results {
		if b != nil {
			balances = append(balances, b)
		}
	}
	// A coin that cannot be read is skipped, but a node that answers nothing is
	// not an account without holdings.
	if len(balances) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return balances, nil
}
