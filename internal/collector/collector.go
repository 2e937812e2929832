package collector

import (
	"fmt"
	"log"
	"time"

	"MarketOracle/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData []model.OHLCV
	PriceErr  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ string, days int) ([]model.OHLCV, error) {
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return generateMockBars(m.Price, days), nil
}

func (m *MockFetcher) FetchCurrentPrice(_ string) (float64, error) {
	if m.PriceErr != nil {
		return 0, m.PriceErr
	}
	return m.Price, nil
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector orchestrates fetching the price history a forecast needs.
type Collector struct {
	Fetcher     Fetcher
	Symbol      string
	HistoryDays int
	MinHistory  int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string, historyDays, minHistory int) *Collector {
	return &Collector{
		Fetcher:     fetcher,
		Symbol:      symbol,
		HistoryDays: historyDays,
		MinHistory:  minHistory,
	}
}

// Collect fetches the daily history and current price for the symbol.
// It fails when fewer than MinHistory bars come back; a failed quote
// falls back to the last close.
func (c *Collector) Collect() (*model.PriceSeries, error) {
	dailyBars, err := c.Fetcher.FetchDailyBars(c.Symbol, c.HistoryDays)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	if len(dailyBars) < c.MinHistory {
		return nil, fmt.Errorf("collect %s: got %d bars, need at least %d", c.Symbol, len(dailyBars), c.MinHistory)
	}

	currentPrice, err := c.Fetcher.FetchCurrentPrice(c.Symbol)
	if err != nil {
		currentPrice = dailyBars[len(dailyBars)-1].Close
		log.Printf("[WARN] current price fetch failed: %v, using last close %.2f", err, currentPrice)
	}

	return &model.PriceSeries{
		Symbol:       c.Symbol,
		DailyBars:    dailyBars,
		CurrentPrice: currentPrice,
		FetchedAt:    time.Now(),
	}, nil
}
