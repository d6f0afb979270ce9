// Package scoring ranks generated text candidates with a deterministic
// multi-factor quality score. Two score variants exist on purpose: the
// simple score and the feature-weighted bundle feed different downstream
// ranking tables and must stay independently reproducible.
package scoring

import (
	"log"
	"math"
	"regexp"
	"strings"
)

// Scoring bands and weights.
const (
	fullLengthBonus = 2.0
	halfLengthBonus = 1.0

	keywordWeight     = 1.5
	sentimentWeight   = 1.0
	readabilityWeight = 1.0

	// neutralGrade stands in when the readability capability fails;
	// it maps to a bonus of exactly 1.0.
	neutralGrade = 10.0
)

var (
	wordRE    = regexp.MustCompile(`\w+`)
	hashtagRE = regexp.MustCompile(`#\w+`)
	ctaVerbRE = regexp.MustCompile(`(discover|learn|try|join|explore|check)`)
)

// Features is the decomposed sub-score bundle whose terms sum to
// FinalScore.
type Features struct {
	WordCount        int     `json:"word_count"`
	Hashtags         int     `json:"hashtags"`
	Sentiment        float64 `json:"sentiment"`
	KeywordHits      int     `json:"keyword_hits"`
	ReadabilityBonus float64 `json:"readability_bonus"`
	LengthBonus      float64 `json:"length_bonus"`
	HashtagBonus     float64 `json:"hashtag_bonus"`
	FinalScore       float64 `json:"final_score"`
}

// Scorer computes quality scores from text and a keyword list. It is a
// pure function of its inputs: no I/O, no randomness, and capability
// failures degrade to neutral defaults so ranking always yields a total
// order.
type Scorer struct {
	sentiment   SentimentAnalyzer
	readability ReadabilityGrader
}

// NewScorer builds a scorer over the given capabilities. Nil capabilities
// fall back to the in-process defaults.
func NewScorer(sentiment SentimentAnalyzer, readability ReadabilityGrader) *Scorer {
	if sentiment == nil {
		sentiment = LexiconAnalyzer{}
	}
	if readability == nil {
		readability = FleschKincaidGrader{}
	}
	return &Scorer{sentiment: sentiment, readability: readability}
}

// Score computes the simple score, rounded to 2 decimal places: length
// band, hashtag bonus, raw polarity, unweighted keyword hits, readability
// bonus, plus the CTA heuristic (+1 for an engagement verb, +0.5 for a
// trailing question mark).
func (s *Scorer) Score(text string, keywords []string) float64 {
	return s.scoreSimple(text, keywords, -1)
}

// ScoreWithHashtagCount is Score with the hashtag count taken from a side
// table instead of the text itself.
func (s *Scorer) ScoreWithHashtagCount(text string, keywords []string, hashtagCount int) float64 {
	return s.scoreSimple(text, keywords, hashtagCount)
}

func (s *Scorer) scoreSimple(text string, keywords []string, hashtagOverride int) float64 {
	lower := strings.ToLower(text)

	score := lengthBonus(wordCount(lower))
	score += hashtagBonus(hashtagCount(lower, hashtagOverride))
	score += math.Round(s.polarity(lower)*100) / 100
	score += float64(keywordHits(lower, keywords))
	score += math.Max(0, 2-s.grade(lower)/10)

	if ctaVerbRE.MatchString(lower) {
		score += 1
	}
	if strings.HasSuffix(lower, "?") {
		score += 0.5
	}
	return math.Round(score*100) / 100
}

// Optimize computes the feature-weighted sub-score bundle: 1.5× keyword
// hits, 1.0× sentiment, 1.0× readability, plus the length and hashtag
// bonuses, with the final score rounded to 3 decimal places.
func (s *Scorer) Optimize(text string, keywords []string) Features {
	return s.optimize(text, keywords, -1)
}

// OptimizeWithHashtagCount is Optimize with an externally supplied
// hashtag count.
func (s *Scorer) OptimizeWithHashtagCount(text string, keywords []string, hashtagCount int) Features {
	return s.optimize(text, keywords, hashtagCount)
}

func (s *Scorer) optimize(text string, keywords []string, hashtagOverride int) Features {
	lower := strings.ToLower(text)

	wc := wordCount(lower)
	hashtags := hashtagCount(lower, hashtagOverride)
	sentiment := s.polarity(lower)
	kwHits := keywordHits(lower, keywords)
	readBonus := math.Max(0, math.Min(2, 2-s.grade(lower)/10))
	lenBonus := lengthBonus(wc)
	hashBonus := hashtagBonus(hashtags)

	final := keywordWeight*float64(kwHits) +
		sentimentWeight*sentiment +
		readabilityWeight*readBonus +
		lenBonus +
		hashBonus

	return Features{
		WordCount:        wc,
		Hashtags:         hashtags,
		Sentiment:        round3(sentiment),
		KeywordHits:      kwHits,
		ReadabilityBonus: round3(readBonus),
		LengthBonus:      lenBonus,
		HashtagBonus:     hashBonus,
		FinalScore:       round3(final),
	}
}

// polarity shields scoring from a misbehaving sentiment capability.
func (s *Scorer) polarity(text string) float64 {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Warning: sentiment analyzer panicked: %v", r)
		}
	}()
	return s.sentiment.Polarity(text)
}

// grade returns the readability grade or the neutral default on failure.
func (s *Scorer) grade(text string) (grade float64) {
	grade = neutralGrade
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Warning: readability grader panicked: %v", r)
			grade = neutralGrade
		}
	}()
	g, err := s.readability.Grade(text)
	if err != nil {
		return neutralGrade
	}
	return g
}

func wordCount(text string) int {
	return len(wordRE.FindAllString(text, -1))
}

func hashtagCount(text string, override int) int {
	if override >= 0 {
		return override
	}
	return len(hashtagRE.FindAllString(text, -1))
}

// keywordHits counts keywords present as case-insensitive substrings.
// Keyword order never affects the result.
func keywordHits(lowerText string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw == "" {
			continue
		}
		if strings.Contains(lowerText, kw) {
			hits++
		}
	}
	return hits
}

func lengthBonus(wc int) float64 {
	switch {
	case wc >= 20 && wc <= 80:
		return fullLengthBonus
	case (wc >= 10 && wc < 20) || (wc > 80 && wc <= 120):
		return halfLengthBonus
	default:
		return 0
	}
}

func hashtagBonus(hashtags int) float64 {
	if hashtags >= 1 && hashtags <= 3 {
		return 1.0
	}
	return 0
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
