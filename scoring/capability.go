package scoring

import (
	"errors"
	"regexp"
	"strings"
)

// SentimentAnalyzer reports text polarity in [-1, 1]. Implementations may
// be backed by an external service; the scorer substitutes a neutral 0.0
// when analysis fails.
type SentimentAnalyzer interface {
	Polarity(text string) float64
}

// ReadabilityGrader reports a reading grade level for text (lower means
// easier). The scorer substitutes a neutral grade when grading fails.
type ReadabilityGrader interface {
	Grade(text string) (float64, error)
}

// NeutralAnalyzer always reports zero polarity. It is the no-op default
// that keeps scoring runnable without a sentiment dependency.
type NeutralAnalyzer struct{}

func (NeutralAnalyzer) Polarity(string) float64 { return 0.0 }

// NeutralGrader always fails, which makes the scorer fall back to its
// neutral readability bonus.
type NeutralGrader struct{}

func (NeutralGrader) Grade(string) (float64, error) {
	return 0, errors.New("readability grading unavailable")
}

// LexiconAnalyzer is a small valence-lexicon polarity scorer. It is the
// default in-process SentimentAnalyzer implementation.
type LexiconAnalyzer struct{}

var lexicon = map[string]float64{
	"amazing": 0.8, "awesome": 0.9, "best": 0.9, "better": 0.5,
	"boost": 0.5, "brilliant": 0.8, "easy": 0.4, "effective": 0.5,
	"excellent": 0.9, "exciting": 0.7, "fantastic": 0.9, "fast": 0.3,
	"free": 0.4, "fresh": 0.4, "fun": 0.6, "good": 0.6, "great": 0.8,
	"growth": 0.4, "happy": 0.7, "helpful": 0.6, "improve": 0.5,
	"innovative": 0.6, "love": 0.8, "new": 0.2, "perfect": 0.9,
	"powerful": 0.6, "simple": 0.3, "smart": 0.6, "success": 0.7,
	"top": 0.5, "win": 0.7, "wonderful": 0.9,

	"bad": -0.6, "boring": -0.6, "broken": -0.6, "confusing": -0.5,
	"difficult": -0.4, "expensive": -0.4, "fail": -0.7, "failure": -0.8,
	"hard": -0.3, "hate": -0.8, "horrible": -0.9, "impossible": -0.6,
	"poor": -0.6, "problem": -0.4, "sad": -0.6, "slow": -0.4,
	"terrible": -0.9, "ugly": -0.7, "useless": -0.8, "waste": -0.7,
	"worst": -0.9, "wrong": -0.5,
}

var wordTokenRE = regexp.MustCompile(`[a-z']+`)

// Polarity averages the valence of matched lexicon terms, clamped to
// [-1, 1]. Text without any matched term is neutral.
func (LexiconAnalyzer) Polarity(text string) float64 {
	words := wordTokenRE.FindAllString(strings.ToLower(text), -1)
	var sum float64
	var matched int
	for _, w := range words {
		if v, ok := lexicon[w]; ok {
			sum += v
			matched++
		}
	}
	if matched == 0 {
		return 0.0
	}
	p := sum / float64(matched)
	if p > 1 {
		p = 1
	} else if p < -1 {
		p = -1
	}
	return p
}
