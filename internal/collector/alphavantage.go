package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"MarketOracle/internal/model"
)

// AlphaVantageFetcher implements Fetcher using the Alpha Vantage REST API.
type AlphaVantageFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewAlphaVantageFetcher creates a new fetcher with optional proxy support.
// baseURL defaults to the public endpoint when empty.
func NewAlphaVantageFetcher(baseURL, apiKey, proxyURL string) *AlphaVantageFetcher {
	if baseURL == "" {
		baseURL = "https://www.alphavantage.co"
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &AlphaVantageFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

// avDailyResponse is the TIME_SERIES_DAILY JSON shape. Bar values
// arrive as strings keyed by date.
type avDailyResponse struct {
	ErrorMessage string                   `json:"Error Message"`
	Note         string                   `json:"Note"`
	Series       map[string]avDailyValues `json:"Time Series (Daily)"`
}

type avDailyValues struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

type avQuoteResponse struct {
	ErrorMessage string `json:"Error Message"`
	Note         string `json:"Note"`
	Quote        struct {
		Price string `json:"05. price"`
	} `json:"Global Quote"`
}

func (f *AlphaVantageFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	outputSize := "compact" // latest 100 points
	if days > 100 {
		outputSize = "full"
	}
	endpoint := fmt.Sprintf("%s/query?function=TIME_SERIES_DAILY&symbol=%s&outputsize=%s&apikey=%s",
		f.BaseURL, url.QueryEscape(symbol), outputSize, url.QueryEscape(f.APIKey))

	body, err := f.get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}

	var daily avDailyResponse
	if err := json.Unmarshal(body, &daily); err != nil {
		return nil, fmt.Errorf("decode daily bars: %w", err)
	}
	if daily.ErrorMessage != "" {
		return nil, fmt.Errorf("alphavantage api error: %s", daily.ErrorMessage)
	}
	if daily.Note != "" {
		return nil, fmt.Errorf("alphavantage rate limited: %s", daily.Note)
	}
	if len(daily.Series) == 0 {
		return nil, fmt.Errorf("alphavantage: no data returned for %s", symbol)
	}

	bars := make([]model.OHLCV, 0, len(daily.Series))
	for date, v := range daily.Series {
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue // skip malformed keys
		}
		bar, err := v.toBar(t)
		if err != nil {
			return nil, fmt.Errorf("parse bar %s: %w", date, err)
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

func (f *AlphaVantageFetcher) FetchCurrentPrice(symbol string) (float64, error) {
	endpoint := fmt.Sprintf("%s/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		f.BaseURL, url.QueryEscape(symbol), url.QueryEscape(f.APIKey))

	body, err := f.get(endpoint)
	if err != nil {
		return 0, fmt.Errorf("fetch current price: %w", err)
	}

	var quote avQuoteResponse
	if err := json.Unmarshal(body, &quote); err != nil {
		return 0, fmt.Errorf("decode quote: %w", err)
	}
	if quote.ErrorMessage != "" {
		return 0, fmt.Errorf("alphavantage api error: %s", quote.ErrorMessage)
	}
	if quote.Note != "" {
		return 0, fmt.Errorf("alphavantage rate limited: %s", quote.Note)
	}
	if quote.Quote.Price == "" {
		return 0, fmt.Errorf("alphavantage: no quote for %s", symbol)
	}
	price, err := strconv.ParseFloat(quote.Quote.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("parse quote price: %w", err)
	}
	return price, nil
}

func (f *AlphaVantageFetcher) get(endpoint string) ([]byte, error) {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func (v avDailyValues) toBar(t time.Time) (model.OHLCV, error) {
	o, err := strconv.ParseFloat(v.Open, 64)
	if err != nil {
		return model.OHLCV{}, err
	}
	h, err := strconv.ParseFloat(v.High, 64)
	if err != nil {
		return model.OHLCV{}, err
	}
	l, err := strconv.ParseFloat(v.Low, 64)
	if err != nil {
		return model.OHLCV{}, err
	}
	c, err := strconv.ParseFloat(v.Close, 64)
	if err != nil {
		return model.OHLCV{}, err
	}
	vol, err := strconv.ParseFloat(v.Volume, 64)
	if err != nil {
		return model.OHLCV{}, err
	}
	return model.OHLCV{Time: t, Open: o, High: h, Low: l, Close: c, Volume: vol}, nil
}
