// Package ingest collects raw per-platform exports for the normalization
// pipeline. Fetchers are best-effort collaborators outside the pipeline
// core: one attempt, caller-provided context, output written as raw CSV in
// the shape the adapters expect.
package ingest

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"trendpulse/dataset"
)

const youtubePageSize = 50

// VideoRecord is one row of the raw video export.
type VideoRecord struct {
	VideoID      string `csv:"video_id"`
	ChannelID    string `csv:"channel_id"`
	Title        string `csv:"title"`
	ChannelTitle string `csv:"channel_title"`
	Description  string `csv:"description"`
	PublishDate  string `csv:"publish_date"`
	ThumbnailURL string `csv:"thumbnail_url"`
	CategoryID   string `csv:"category_id"`
	ViewCount    string `csv:"view_count"`
	LikeCount    string `csv:"like_count"`
	CommentCount string `csv:"comment_count"`
	Tags         string `csv:"tags"`
	FetchTS      string `csv:"fetch_ts"`
}

// YouTubeFetcher searches the Data API v3 and resolves per-video
// statistics.
type YouTubeFetcher struct {
	service *youtube.Service
}

// NewYouTubeFetcher authenticates with an API key, or with a service
// account JSON file when the key is empty.
func NewYouTubeFetcher(ctx context.Context, apiKey, serviceAccountFile string) (*YouTubeFetcher, error) {
	var service *youtube.Service
	var err error

	switch {
	case apiKey != "":
		service, err = youtube.NewService(ctx, option.WithAPIKey(apiKey))
	case serviceAccountFile != "":
		data, readErr := os.ReadFile(serviceAccountFile)
		if readErr != nil {
			return nil, fmt.Errorf("unable to read service account file: %w", readErr)
		}
		config, cfgErr := google.JWTConfigFromJSON(data, youtube.YoutubeReadonlyScope)
		if cfgErr != nil {
			return nil, fmt.Errorf("unable to parse service account: %w", cfgErr)
		}
		service, err = youtube.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	default:
		return nil, fmt.Errorf("youtube fetcher needs an API key or a service account file")
	}
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}
	return &YouTubeFetcher{service: service}, nil
}

// Fetch searches for videos matching query and returns up to totalNeeded
// records with statistics resolved.
func (f *YouTubeFetcher) Fetch(ctx context.Context, query string, totalNeeded int) ([]VideoRecord, error) {
	var records []VideoRecord
	pageToken := ""
	fetchTS := time.Now().UTC().Format(time.RFC3339)

	for len(records) < totalNeeded {
		call := f.service.Search.List([]string{"snippet"}).
			Context(ctx).
			Q(query).
			Type("video").
			MaxResults(youtubePageSize)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return records, fmt.Errorf("youtube search: %w", err)
		}

		ids := make([]string, 0, len(resp.Items))
		for _, item := range resp.Items {
			if item.Id != nil && item.Id.VideoId != "" {
				ids = append(ids, item.Id.VideoId)
			}
		}
		stats, err := f.videoStats(ctx, ids)
		if err != nil {
			return records, err
		}

		for _, item := range resp.Items {
			if item.Id == nil || item.Id.VideoId == "" {
				continue
			}
			rec := VideoRecord{
				VideoID: item.Id.VideoId,
				FetchTS: fetchTS,
			}
			if s := item.Snippet; s != nil {
				rec.Title = s.Title
				rec.ChannelTitle = s.ChannelTitle
				rec.Description = s.Description
				rec.PublishDate = s.PublishedAt
				if s.Thumbnails != nil && s.Thumbnails.High != nil {
					rec.ThumbnailURL = s.Thumbnails.High.Url
				}
			}
			if v, ok := stats[item.Id.VideoId]; ok {
				rec.ChannelID = v.ChannelID
				rec.CategoryID = v.CategoryID
				rec.ViewCount = v.ViewCount
				rec.LikeCount = v.LikeCount
				rec.CommentCount = v.CommentCount
				rec.Tags = v.Tags
			}
			records = append(records, rec)
			if len(records) >= totalNeeded {
				break
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return records, nil
}

type videoStats struct {
	ChannelID    string
	CategoryID   string
	ViewCount    string
	LikeCount    string
	CommentCount string
	Tags         string
}

func (f *YouTubeFetcher) videoStats(ctx context.Context, ids []string) (map[string]videoStats, error) {
	out := make(map[string]videoStats, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	resp, err := f.service.Videos.List([]string{"statistics", "snippet"}).
		Context(ctx).
		Id(ids...).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube video stats: %w", err)
	}

	for _, item := range resp.Items {
		v := videoStats{}
		if s := item.Snippet; s != nil {
			v.ChannelID = s.ChannelId
			v.CategoryID = s.CategoryId
			v.Tags = strings.Join(s.Tags, "|")
		}
		if st := item.Statistics; st != nil {
			v.ViewCount = strconv.FormatUint(st.ViewCount, 10)
			v.LikeCount = strconv.FormatUint(st.LikeCount, 10)
			v.CommentCount = strconv.FormatUint(st.CommentCount, 10)
		}
		out[item.Id] = v
	}
	return out, nil
}

// FetchToCSV fetches and writes the raw video export.
func (f *YouTubeFetcher) FetchToCSV(ctx context.Context, query string, totalNeeded int, path string) (int, error) {
	records, err := f.Fetch(ctx, query, totalNeeded)
	if err != nil {
		return 0, err
	}
	if err := dataset.WriteTable(path, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
