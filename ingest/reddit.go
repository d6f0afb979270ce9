package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"trendpulse/dataset"
)

const redditBaseURL = "https://www.reddit.com"

// RedditRecord is one row of the raw forum export.
type RedditRecord struct {
	ID            string `csv:"id"`
	Subreddit     string `csv:"subreddit"`
	Author        string `csv:"author"`
	CreatedUTC    string `csv:"created_utc"`
	Title         string `csv:"title"`
	Selftext      string `csv:"selftext"`
	Permalink     string `csv:"permalink"`
	Ups           string `csv:"ups"`
	NumComments   string `csv:"num_comments"`
	NumCrossposts string `csv:"num_crossposts"`
	FetchTS       string `csv:"fetch_ts"`
}

// RedditFetcher queries a subreddit's public search.json endpoint. No
// credentials are needed, only a descriptive User-Agent.
type RedditFetcher struct {
	client    *http.Client
	subreddit string
	baseURL   string
}

func NewRedditFetcher(subreddit string) *RedditFetcher {
	return &RedditFetcher{
		client:    &http.Client{Timeout: 30 * time.Second},
		subreddit: subreddit,
		baseURL:   redditBaseURL,
	}
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID            string  `json:"id"`
				Subreddit     string  `json:"subreddit"`
				Author        string  `json:"author"`
				CreatedUTC    float64 `json:"created_utc"`
				Title         string  `json:"title"`
				Selftext      string  `json:"selftext"`
				Permalink     string  `json:"permalink"`
				Ups           int     `json:"ups"`
				NumComments   int     `json:"num_comments"`
				NumCrossposts int     `json:"num_crossposts"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Fetch runs one search request, newest first, capped at limit (Reddit
// caps a page at 100).
func (f *RedditFetcher) Fetch(ctx context.Context, query string, limit int) ([]RedditRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	params := url.Values{
		"q":           {query},
		"restrict_sr": {"1"},
		"limit":       {strconv.Itoa(limit)},
		"sort":        {"new"},
	}

	reqURL := fmt.Sprintf("%s/r/%s/search.json?%s", f.baseURL, f.subreddit, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "trendpulse/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("reddit search failed: status %d: %s", resp.StatusCode, body)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode reddit response: %w", err)
	}

	fetchTS := time.Now().UTC().Format(time.RFC3339)
	records := make([]RedditRecord, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		d := child.Data
		permalink := d.Permalink
		if permalink != "" {
			permalink = redditBaseURL + permalink
		}
		records = append(records, RedditRecord{
			ID:            d.ID,
			Subreddit:     d.Subreddit,
			Author:        d.Author,
			CreatedUTC:    strconv.FormatFloat(d.CreatedUTC, 'f', -1, 64),
			Title:         d.Title,
			Selftext:      d.Selftext,
			Permalink:     permalink,
			Ups:           strconv.Itoa(d.Ups),
			NumComments:   strconv.Itoa(d.NumComments),
			NumCrossposts: strconv.Itoa(d.NumCrossposts),
			FetchTS:       fetchTS,
		})
	}
	return records, nil
}

// FetchToCSV fetches and writes the raw forum export.
func (f *RedditFetcher) FetchToCSV(ctx context.Context, query string, limit int, path string) (int, error) {
	records, err := f.Fetch(ctx, query, limit)
	if err != nil {
		return 0, err
	}
	if err := dataset.WriteTable(path, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
