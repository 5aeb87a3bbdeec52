package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mayur-samrutwar/orion/types"
)

const (
	DefaultAugmontURL = "https://goldapi.augmont.com/api/digital-gold/rates"
	DefaultINRPerUSD  = 88.0

	SourceAugmont = "augmont"

	fallbackGoldINR   = 2387.12
	fallbackSilverINR = 28.44
)

type MetalFeedConfig struct {
	URL       string
	APIKey    string
	INRPerUSD float64

	HTTPClient *http.Client
	Logger     *zap.Logger
}

// MetalFeed reads digital gold and silver buy rates in INR per gram and converts them
// to USD at a fixed rate.
type MetalFeed struct {
	url       string
	apiKey    string
	inrPerUSD float64

	client *http.Client
	logger *zap.Logger
}

var _ Feed = (*MetalFeed)(nil)

func NewMetalFeed(cfg MetalFeedConfig) *MetalFeed {
	f := &MetalFeed{
		url:       cfg.URL,
		apiKey:    cfg.APIKey,
		inrPerUSD: cfg.INRPerUSD,
		client:    cfg.HTTPClient,
		logger:    cfg.Logger,
	}
	if f.url == "" {
		f.url = DefaultAugmontURL
	}
	if f.inrPerUSD <= 0 {
		f.inrPerUSD = DefaultINRPerUSD
	}
	if f.client == nil {
		f.client = defaultHTTPClient()
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	f.logger = f.logger.With(zap.String("feed", FeedMetal))
	return f
}

func (f *MetalFeed) Name() string {
	return FeedMetal
}

func (f *MetalFeed) Fetch(ctx context.Context) *types.MetalPrices {
	prices, err := f.rates(ctx)
	if err != nil {
		f.logger.Warn("cannot fetch metal rates, using fallback", zap.Error(err))
		return f.Fallback(err)
	}
	return prices
}

// Fallback is the fixed snapshot served when the upstream is unavailable.
func (f *MetalFeed) Fallback(cause error) *types.MetalPrices {
	prices := &types.MetalPrices{
		Gold:   types.MetalPrice{USDPerGram: fallbackGoldINR / f.inrPerUSD, INRPerGram: fallbackGoldINR},
		Silver: types.MetalPrice{USDPerGram: fallbackSilverINR / f.inrPerUSD, INRPerGram: fallbackSilverINR},
		Source: SourceFallback,
		Ts:     nowMillis(),
	}
	if cause != nil {
		prices.Error = cause.Error()
	}
	return prices
}

func (f *MetalFeed) rates(ctx context.Context) (*types.MetalPrices, error) {
	type augmontRates struct {
		GBuy string `json:"gBuy"`
		GSel string `json:"gSell"`
		SBuy string `json:"sBuy"`
		SSel string `json:"sSell"`
	}
	type augmontResponse struct {
		Message string `json:"message"`
		Rate    struct {
			Rates   augmontRates `json:"rates"`
			BlockID string       `json:"blockId"`
		} `json:"rate"`
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, err
	}
	if f.apiKey != "" {
		req.Header.Set("Authorization", f.apiKey)
	}
	response, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("augmont request failed: %d", response.StatusCode)
	}
	body, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}
	var augmont augmontResponse
	if err := json.Unmarshal(body, &augmont); err != nil {
		return nil, err
	}
	gInr, err := strconv.ParseFloat(augmont.Rate.Rates.GBuy, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid gold rate %q", augmont.Rate.Rates.GBuy)
	}
	sInr, err := strconv.ParseFloat(augmont.Rate.Rates.SBuy, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid silver rate %q", augmont.Rate.Rates.SBuy)
	}
	return &types.MetalPrices{
		Gold:    types.MetalPrice{USDPerGram: gInr / f.inrPerUSD, INRPerGram: gInr},
		Silver:  types.MetalPrice{USDPerGram: sInr / f.inrPerUSD, INRPerGram: sInr},
		Source:  SourceAugmont,
		BlockID: augmont.Rate.BlockID,
		Ts:      nowMillis(),
	}, nil
}
