// Package external fetches metal prices from outside the service.
package external

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/mayur-samrutwar/orion/types"
)

const (
	FeedMetal    = "metal"
	FeedContract = "contract"

	SourceFallback = "fallback"
)

// Feed produces a price snapshot. Fetch never fails: a feed that cannot reach its
// upstream returns its fallback snapshot with Source set to SourceFallback.
type Feed interface {
	Name() string
	Fetch(ctx context.Context) *types.MetalPrices
}

func defaultHTTPClient() *http.Client {
	var netTransport = &http.Transport{
		Dial: (&net.Dialer{
			Timeout: 5 * time.Second,
		}).Dial,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{
		Timeout:   time.Second * 10,
		Transport: netTransport,
	}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
