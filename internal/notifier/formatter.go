package notifier

import (
	"fmt"
	"strings"
	"time"

	"MarketOracle/internal/model"
)

const histogramBarWidth = 20

// FormatForecastReport formats a forecast run into a Telegram message
// with an inline monospace histogram.
func FormatForecastReport(report *model.ForecastReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🔮 <b>MarketOracle Forecast</b> | %s | %s\n\n",
		report.Symbol, report.GeneratedAt.Format("2006-01-02")))

	b.WriteString(fmt.Sprintf("Start price: %.2f\n", report.StartPrice))
	b.WriteString(fmt.Sprintf("Horizon: %d days | Paths: %d\n",
		report.Params.HorizonDays, report.Params.PathCount))
	b.WriteString(fmt.Sprintf("Daily drift: %+.3f%% | Daily vol: %.3f%%\n\n",
		report.Model.MeanReturn*100, report.Model.Volatility*100))

	s := report.Summary
	changePct := 0.0
	if report.StartPrice > 0 {
		changePct = (s.ExpectedPrice - report.StartPrice) / report.StartPrice * 100
	}
	bandPct := (s.UpperPercentile - s.LowerPercentile) * 100
	b.WriteString(fmt.Sprintf("Expected price: <b>%.2f</b> (%+.1f%%)\n", s.ExpectedPrice, changePct))
	b.WriteString(fmt.Sprintf("%.0f%% band: %.2f – %.2f\n\n", bandPct, s.LowerBound, s.UpperBound))

	b.WriteString("📊 <b>Terminal price distribution:</b>\n")
	b.WriteString("<pre>")
	b.WriteString(renderHistogram(report.Bins))
	b.WriteString("</pre>\n")

	b.WriteString(fmt.Sprintf("\nTarget date: %s\n", report.TargetDate.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Run: %s\n", report.RunID))
	return b.String()
}

// renderHistogram draws one line per bin: the bin's lower edge, a bar
// scaled to the largest bin, and the raw count.
func renderHistogram(bins []model.HistogramBin) string {
	maxCount := 0
	for _, b := range bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	if maxCount == 0 {
		return ""
	}

	var b strings.Builder
	for _, bin := range bins {
		barLen := bin.Count * histogramBarWidth / maxCount
		if bin.Count > 0 && barLen == 0 {
			barLen = 1
		}
		b.WriteString(fmt.Sprintf("%9.2f│%-*s %d\n",
			bin.LowerBound, histogramBarWidth, strings.Repeat("█", barLen), bin.Count))
	}
	return b.String()
}

// FormatOutcome formats a scored forecast for notification.
func FormatOutcome(outcome *model.ForecastOutcome) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🎯 <b>Forecast Scored</b> | %s\n\n", outcome.Symbol))
	b.WriteString(fmt.Sprintf("Realized price: %.2f\n", outcome.RealizedPrice))
	b.WriteString(fmt.Sprintf("Expected price: %.2f (error %+.1f%%)\n", outcome.ExpectedPrice, outcome.ErrorPct))
	b.WriteString(fmt.Sprintf("Band: %.2f – %.2f\n", outcome.LowerBound, outcome.UpperBound))
	b.WriteString(fmt.Sprintf("Verdict: %s\n", verdictLabel(outcome.Verdict)))
	return b.String()
}

func verdictLabel(v model.BandVerdict) string {
	switch v {
	case model.VerdictWithinBand:
		return "✅ within band"
	case model.VerdictAboveUpper:
		return "⬆️ above upper bound"
	case model.VerdictBelowLower:
		return "⬇️ below lower bound"
	default:
		return string(v)
	}
}

// FormatAccuracyStatus formats the tracker's running accuracy counters.
func FormatAccuracyStatus(state *model.TrackerState) string {
	var b strings.Builder
	b.WriteString("📒 <b>Forecast Accuracy</b>\n\n")
	b.WriteString(fmt.Sprintf("Evaluated: %d\n", state.TotalEvaluated))
	if state.TotalEvaluated > 0 {
		hitPct := float64(state.WithinBand) / float64(state.TotalEvaluated) * 100
		b.WriteString(fmt.Sprintf("Within band: %d (%.1f%%)\n", state.WithinBand, hitPct))
		b.WriteString(fmt.Sprintf("Above upper: %d\n", state.AboveUpper))
		b.WriteString(fmt.Sprintf("Below lower: %d\n", state.BelowLower))
	}
	b.WriteString(fmt.Sprintf("Pending: %d\n", len(state.Pending)))
	if !state.LastOutcomeAt.IsZero() {
		b.WriteString(fmt.Sprintf("Last scored: %s\n", state.LastOutcomeAt.Format("2006-01-02 15:04")))
	}
	return b.String()
}

// FormatMonthlySummary formats the monthly accuracy digest.
func FormatMonthlySummary(state *model.TrackerState) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📅 <b>Monthly Summary</b> | %s\n\n", time.Now().Format("2006-01")))
	b.WriteString(FormatAccuracyStatus(state))
	return b.String()
}

// FormatPendingForecasts lists forecasts still waiting for their target date.
func FormatPendingForecasts(pending []model.PendingForecast) string {
	if len(pending) == 0 {
		return "No pending forecasts."
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("⏳ <b>Pending Forecasts</b> (%d)\n\n", len(pending)))
	for _, p := range pending {
		b.WriteString(fmt.Sprintf("%s | expect %.2f in %.2f–%.2f by %s\n",
			p.Symbol, p.ExpectedPrice, p.LowerBound, p.UpperBound,
			p.TargetDate.Format("2006-01-02")))
	}
	return b.String()
}
