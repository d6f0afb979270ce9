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

const (
	twitterSearchURL = "https://api.twitter.com/2/tweets/search/recent"
	twitterPageSize  = 100
)

// TweetRecord is one row of the raw microblog export.
type TweetRecord struct {
	TweetID         string `csv:"tweet_id"`
	AuthorID        string `csv:"author_id"`
	AuthorUsername  string `csv:"author_username"`
	AuthorName      string `csv:"author_name"`
	AuthorFollowers string `csv:"author_followers"`
	CreatedAt       string `csv:"created_at"`
	Text            string `csv:"text"`
	Lang            string `csv:"lang"`
	LikeCount       string `csv:"like_count"`
	ReplyCount      string `csv:"reply_count"`
	RetweetCount    string `csv:"retweet_count"`
	QuoteCount      string `csv:"quote_count"`
	FetchTS         string `csv:"fetch_ts"`
}

// TwitterFetcher queries the v2 recent-search endpoint with a bearer
// token, expanding authors so follower counts ride along.
type TwitterFetcher struct {
	client  *http.Client
	token   string
	baseURL string
}

func NewTwitterFetcher(bearerToken string) *TwitterFetcher {
	return &TwitterFetcher{
		client:  &http.Client{Timeout: 30 * time.Second},
		token:   bearerToken,
		baseURL: twitterSearchURL,
	}
}

type searchResponse struct {
	Data []struct {
		ID            string `json:"id"`
		Text          string `json:"text"`
		AuthorID      string `json:"author_id"`
		CreatedAt     string `json:"created_at"`
		Lang          string `json:"lang"`
		PublicMetrics struct {
			LikeCount    int `json:"like_count"`
			ReplyCount   int `json:"reply_count"`
			RetweetCount int `json:"retweet_count"`
			QuoteCount   int `json:"quote_count"`
		} `json:"public_metrics"`
	} `json:"data"`
	Includes struct {
		Users []struct {
			ID            string `json:"id"`
			Name          string `json:"name"`
			Username      string `json:"username"`
			PublicMetrics struct {
				FollowersCount int `json:"followers_count"`
			} `json:"public_metrics"`
		} `json:"users"`
	} `json:"includes"`
	Meta struct {
		NextToken string `json:"next_token"`
	} `json:"meta"`
}

// Fetch pages through recent-search results until totalNeeded tweets are
// collected or the result set ends.
func (f *TwitterFetcher) Fetch(ctx context.Context, query string, totalNeeded int) ([]TweetRecord, error) {
	var records []TweetRecord
	nextToken := ""
	fetchTS := time.Now().UTC().Format(time.RFC3339)

	for len(records) < totalNeeded {
		page, err := f.fetchPage(ctx, query, nextToken)
		if err != nil {
			return records, err
		}

		type author struct {
			username  string
			name      string
			followers int
		}
		authors := make(map[string]author, len(page.Includes.Users))
		for _, u := range page.Includes.Users {
			authors[u.ID] = author{
				username:  u.Username,
				name:      u.Name,
				followers: u.PublicMetrics.FollowersCount,
			}
		}

		before := len(records)
		for _, t := range page.Data {
			a := authors[t.AuthorID]
			records = append(records, TweetRecord{
				TweetID:         t.ID,
				AuthorID:        t.AuthorID,
				AuthorUsername:  a.username,
				AuthorName:      a.name,
				AuthorFollowers: strconv.Itoa(a.followers),
				CreatedAt:       t.CreatedAt,
				Text:            t.Text,
				Lang:            t.Lang,
				LikeCount:       strconv.Itoa(t.PublicMetrics.LikeCount),
				ReplyCount:      strconv.Itoa(t.PublicMetrics.ReplyCount),
				RetweetCount:    strconv.Itoa(t.PublicMetrics.RetweetCount),
				QuoteCount:      strconv.Itoa(t.PublicMetrics.QuoteCount),
				FetchTS:         fetchTS,
			})
			if len(records) >= totalNeeded {
				break
			}
		}

		nextToken = page.Meta.NextToken
		// An empty page with a next_token would otherwise loop forever.
		if nextToken == "" || len(records) == before {
			break
		}
	}
	return records, nil
}

func (f *TwitterFetcher) fetchPage(ctx context.Context, query, nextToken string) (*searchResponse, error) {
	params := url.Values{
		"query":        {query},
		"max_results":  {strconv.Itoa(twitterPageSize)},
		"tweet.fields": {"id,text,author_id,created_at,public_metrics,lang"},
		"user.fields":  {"id,name,username,public_metrics"},
		"expansions":   {"author_id"},
	}
	if nextToken != "" {
		params.Set("next_token", nextToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+f.token)
	req.Header.Set("User-Agent", "trendpulse/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("twitter search failed: status %d: %s", resp.StatusCode, body)
	}

	var page searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode twitter response: %w", err)
	}
	return &page, nil
}

// FetchToCSV fetches and writes the raw microblog export.
func (f *TwitterFetcher) FetchToCSV(ctx context.Context, query string, totalNeeded int, path string) (int, error) {
	records, err := f.Fetch(ctx, query, totalNeeded)
	if err != nil {
		return 0, err
	}
	if err := dataset.WriteTable(path, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
