package generation

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// Generator produces one marketing-copy candidate for a topic. Callers
// request variations by calling it repeatedly.
type Generator interface {
	Generate(ctx context.Context, topic, tone string, maxWords int, keywords, hashtags []string) (string, error)
}

// CohereGenerator implements Generator with the Cohere chat API.
type CohereGenerator struct {
	client *cohereclient.Client
	model  string
}

// NewCohereGenerator builds a generator over the Cohere chat API. The HTTP
// client forces HTTP/1.1 to avoid HTTP/2 protocol errors seen against the
// Cohere endpoint.
func NewCohereGenerator(apiKey, model string) *CohereGenerator {
	if model == "" {
		model = "command-r"
	}
	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereGenerator{client: client, model: model}
}

func (g *CohereGenerator) Generate(ctx context.Context, topic, tone string, maxWords int, keywords, hashtags []string) (string, error) {
	prompt := buildPrompt(topic, tone, maxWords, keywords, hashtags)

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := g.client.Chat(ctx, &cohere.ChatRequest{
		Model:   &g.model,
		Message: prompt,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return "", errors.New("cohere chat returned empty response")
	}
	return strings.TrimSpace(resp.Text), nil
}

func buildPrompt(topic, tone string, maxWords int, keywords, hashtags []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a social media post about %q in a %s tone, at most %d words.", topic, tone, maxWords)
	if len(keywords) > 0 {
		fmt.Fprintf(&b, " Naturally include these keywords where relevant: %s.", strings.Join(keywords, ", "))
	}
	if len(hashtags) > 0 {
		fmt.Fprintf(&b, " Pick at most three fitting hashtags from this pool: %s.", strings.Join(hashtags, ", "))
	}
	b.WriteString(" Return only the post text.")
	return b.String()
}
