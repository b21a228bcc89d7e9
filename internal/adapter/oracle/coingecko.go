package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"coin-wallet-service/internal/domain/wallet"
	"coin-wallet-service/pkg/logger"
)

// maxBodyBytes caps how much of an upstream response is decoded
const maxBodyBytes = 1 << 20

// Config holds configuration for the CoinGecko price client.
type Config struct {
	URL        string        // Simple price endpoint, without query string
	CoinID     string        // CoinGecko coin id, e.g. "bitcoin"
	VsCurrency string        // Quote currency, e.g. "usd"
	Timeout    time.Duration // Upper bound for one lookup
}

// CoinGeckoClient fetches spot prices from the CoinGecko simple price API.
type CoinGeckoClient struct {
	cfg        Config
	endpoint   string
	httpClient *http.Client
	log        *zap.Logger
}

// NewCoinGeckoClient creates a new price client.
func NewCoinGeckoClient(cfg Config, httpClient *http.Client, log *zap.Logger) (*CoinGeckoClient, error) {
	base, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid oracle URL: %w", err)
	}

	q := base.Query()
	q.Set("ids", cfg.CoinID)
	q.Set("vs_currencies", cfg.VsCurrency)
	base.RawQuery = q.Encode()

	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &CoinGeckoClient{
		cfg:        cfg,
		endpoint:   base.String(),
		httpClient: httpClient,
		log:        log.Named("oracle"),
	}, nil
}

// FetchPrice performs one lookup. Every failure is logged and reported as an unavailable quote.
func (c *CoinGeckoClient) FetchPrice(ctx context.Context) wallet.Quote {
	start := time.Now()
	log := logger.WithContext(ctx, c.log).With(zap.String("coin", c.cfg.CoinID), zap.String("currency", c.cfg.VsCurrency))

	price, err := c.fetch(ctx)
	if err != nil {
		log.Warn("price unavailable", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return wallet.Unavailable()
	}

	log.Debug("price fetched", zap.Float64("price", price), zap.Duration("elapsed", time.Since(start)))
	return wallet.NewQuote(price)
}

func (c *CoinGeckoClient) fetch(ctx context.Context) (float64, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create price request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to execute price request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("price request failed with status %d", resp.StatusCode)
	}

	// {"bitcoin":{"usd":50000}}. Only the requested coin and currency are decoded.
	var body map[string]json.RawMessage
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode price response: %w", err)
	}

	coin, ok := body[c.cfg.CoinID]
	if !ok {
		return 0, fmt.Errorf("price response missing %s", c.cfg.CoinID)
	}

	var quotes map[string]json.RawMessage
	if err := json.Unmarshal(coin, &quotes); err != nil {
		return 0, fmt.Errorf("failed to decode %s quotes: %w", c.cfg.CoinID, err)
	}

	field, ok := quotes[c.cfg.VsCurrency]
	if !ok {
		return 0, fmt.Errorf("price response missing %s.%s", c.cfg.CoinID, c.cfg.VsCurrency)
	}

	var raw json.Number
	if err := json.Unmarshal(field, &raw); err != nil {
		return 0, fmt.Errorf("invalid %s.%s value: %w", c.cfg.CoinID, c.cfg.VsCurrency, err)
	}

	price, err := raw.Float64()
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, errors.New("price must be a positive finite number")
	}

	return price, nil
}
