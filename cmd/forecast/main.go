// Command forecast runs a single Monte Carlo price forecast from the
// terminal and prints the distribution, without Telegram or SQLite.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"MarketOracle/internal/collector"
	"MarketOracle/internal/forecast"
	"MarketOracle/internal/model"
)

func main() {
	symbol := flag.String("symbol", "SPX500", "ticker symbol to forecast")
	horizon := flag.Int("horizon", 30, "forecast horizon in trading days")
	paths := flag.Int("paths", 15000, "number of simulated paths")
	history := flag.Int("history", 180, "daily bars of history to fit on")
	bins := flag.Int("bins", 20, "histogram bin count")
	lower := flag.Float64("lower", 0.05, "lower percentile fraction")
	upper := flag.Float64("upper", 0.95, "upper percentile fraction")
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	proxy := flag.String("proxy", "", "optional HTTPS proxy URL")
	flag.Parse()

	banner := strings.Repeat("=", 60)
	fmt.Println(banner)
	fmt.Println("MarketOracle - Monte Carlo price forecast")
	fmt.Println(banner)

	fetcher := collector.NewYahooFetcher(*proxy)
	col := collector.NewCollector(fetcher, *symbol, *history, 30)

	fmt.Printf("→ Fetching %d daily bars for %s...\n", *history, *symbol)
	series, err := col.Collect()
	if err != nil {
		log.Fatalf("[FATAL] collect: %v", err)
	}
	fmt.Printf("✓ %d bars, current price %.2f\n\n", len(series.DailyBars), series.CurrentPrice)

	report, err := forecast.Run(series, forecast.Params{
		Sim:             model.SimulationParams{HorizonDays: *horizon, PathCount: *paths},
		LowerPercentile: *lower,
		UpperPercentile: *upper,
		HistogramBins:   *bins,
		Seed:            *seed,
	})
	if err != nil {
		log.Fatalf("[FATAL] forecast: %v", err)
	}

	fmt.Printf("Fitted model:   drift %+.3f%%/day, vol %.3f%%/day\n",
		report.Model.MeanReturn*100, report.Model.Volatility*100)
	fmt.Printf("Simulated:      %d paths × %d days\n\n", *paths, *horizon)

	s := report.Summary
	changePct := (s.ExpectedPrice - report.StartPrice) / report.StartPrice * 100
	fmt.Printf("Expected price: %.2f (%+.1f%%)\n", s.ExpectedPrice, changePct)
	fmt.Printf("%.0f%% band:       %.2f – %.2f\n", (*upper-*lower)*100, s.LowerBound, s.UpperBound)
	fmt.Printf("Target date:    %s\n\n", report.TargetDate.Format("2006-01-02"))

	fmt.Println("Terminal price distribution:")
	printHistogram(report.Bins)
	fmt.Printf("\nRun: %s\n", report.RunID)
}

func printHistogram(bins []model.HistogramBin) {
	maxCount := 0
	for _, b := range bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	if maxCount == 0 {
		return
	}
	for _, b := range bins {
		barLen := b.Count * 40 / maxCount
		if b.Count > 0 && barLen == 0 {
			barLen = 1
		}
		fmt.Printf("%10.2f│%-40s %d\n", b.LowerBound, strings.Repeat("█", barLen), b.Count)
	}
}
