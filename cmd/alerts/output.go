package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReport(w io.Writer, r *models.Report) {
	status := "not matched"
	if r.Matched {
		status = "MATCHED"
	}
	fmt.Fprintf(w, "%s %s: %s\n", r.Ticker, status, r.Explanation)
}

func printResults(w io.Writer, results []models.MatchResult, showStatus bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range results {
		if showStatus {
			mark := "-"
			if r.Matched {
				mark = "*"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, r.Symbol, formatPrice(r.Price), r.Explanation)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Symbol, formatPrice(r.Price), r.Explanation)
	}
	tw.Flush()
}

func printHistory(w io.Writer, records []*models.HistoryRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			rec.Timestamp.Local().Format(time.DateTime), rec.Symbol, formatPrice(rec.Price), rec.Expression, rec.Explanation)
	}
	tw.Flush()
}

func formatPrice(p float64) string {
	if p == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", p)
}

func nonNil(results []models.MatchResult) []models.MatchResult {
	if results == nil {
		return []models.MatchResult{}
	}
	return results
}
