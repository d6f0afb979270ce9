package ingest

import (
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"trendpulse/dataset"
)

// TrendRecord is one row of the raw trend export, long form: one row per
// (keyword, date) pair.
type TrendRecord struct {
	Keyword string `csv:"keyword"`
	Date    string `csv:"date"`
	Traffic string `csv:"traffic"`
	FetchTS string `csv:"fetch_ts"`
}

// TrendsFetcher pulls the Google Trends daily-trends RSS feed.
type TrendsFetcher struct {
	parser  *gofeed.Parser
	feedURL string
}

func NewTrendsFetcher(feedURL string) *TrendsFetcher {
	return &TrendsFetcher{parser: gofeed.NewParser(), feedURL: feedURL}
}

// Fetch parses the feed into trend records. The approximate traffic value
// lives in the feed's "ht" extension namespace.
func (f *TrendsFetcher) Fetch(maxCount int) ([]TrendRecord, error) {
	feed, err := f.parser.ParseURL(f.feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trends feed: %w", err)
	}

	fetchTS := time.Now().UTC().Format(time.RFC3339)
	count := len(feed.Items)
	if maxCount > 0 && count > maxCount {
		count = maxCount
	}

	records := make([]TrendRecord, 0, count)
	for _, item := range feed.Items[:count] {
		date := ""
		if item.PublishedParsed != nil {
			date = item.PublishedParsed.UTC().Format("2006-01-02")
		}
		records = append(records, TrendRecord{
			Keyword: item.Title,
			Date:    date,
			Traffic: approxTraffic(item),
			FetchTS: fetchTS,
		})
	}
	return records, nil
}

// approxTraffic reads the ht:approx_traffic extension, e.g. "200,000+",
// stripped down to a plain integer string for the trend adapter.
func approxTraffic(item *gofeed.Item) string {
	ns, ok := item.Extensions["ht"]
	if !ok {
		return ""
	}
	exts, ok := ns["approx_traffic"]
	if !ok || len(exts) == 0 {
		return ""
	}

	var digits []rune
	for _, r := range exts[0].Value {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	return string(digits)
}

// FetchToCSV fetches and writes the raw trend export.
func (f *TrendsFetcher) FetchToCSV(maxCount int, path string) (int, error) {
	records, err := f.Fetch(maxCount)
	if err != nil {
		return 0, err
	}
	if err := dataset.WriteTable(path, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
