package scoring

import (
	"errors"
	"math"
	"testing"
)

type fakeAnalyzer struct {
	polarity float64
}

func (f fakeAnalyzer) Polarity(string) float64 { return f.polarity }

type fakeGrader struct {
	grade float64
	err   error
}

func (f fakeGrader) Grade(string) (float64, error) { return f.grade, f.err }

type panicAnalyzer struct{}

func (panicAnalyzer) Polarity(string) float64 { panic("analyzer down") }

type panicGrader struct{}

func (panicGrader) Grade(string) (float64, error) { panic("grader down") }

func TestScoreScenario(t *testing.T) {
	// 12 words, 3 hashtags, the "discover" verb, two keyword hits.
	text := "Discover how AI tools boost content creation. #AI #marketing #growth"
	s := NewScorer(fakeAnalyzer{polarity: 0}, fakeGrader{grade: 10})

	got := s.Score(text, []string{"AI", "content"})

	// length 1 + hashtags 1 + polarity 0 + keywords 2 + readability 1 + verb 1
	want := 6.0
	if got != want {
		t.Fatalf("Score() = %v, want %v", got, want)
	}
}

func TestScoreEmptyInputs(t *testing.T) {
	s := NewScorer(nil, nil)
	got := s.Score("", nil)
	// Default grader errors on empty text, leaving only the neutral
	// readability bonus.
	if got != 1.0 {
		t.Fatalf("Score(empty) = %v, want 1.0", got)
	}
}

func TestScoreKeywordOrderIndependent(t *testing.T) {
	text := "Try our new analytics platform for growth marketing teams today."
	s := NewScorer(fakeAnalyzer{}, fakeGrader{grade: 8})

	a := s.Score(text, []string{"analytics", "growth", "missing"})
	b := s.Score(text, []string{"missing", "growth", "analytics"})
	if a != b {
		t.Fatalf("keyword order changed score: %v vs %v", a, b)
	}
}

func TestScoreTrailingQuestionMark(t *testing.T) {
	s := NewScorer(fakeAnalyzer{}, fakeGrader{grade: 20})
	base := s.Score("Ready for more insights", nil)
	asked := s.Score("Ready for more insights?", nil)
	if asked != base+0.5 {
		t.Fatalf("question mark bonus: got %v, base %v", asked, base)
	}
}

func TestScoreNeutralOnGraderError(t *testing.T) {
	s := NewScorer(fakeAnalyzer{}, fakeGrader{err: errors.New("boom")})
	got := s.Score("short text here", nil)
	// 11 words would be needed for the length band; 3 words gives 0.
	// Only the neutral readability bonus remains.
	if got != 1.0 {
		t.Fatalf("Score() with failing grader = %v, want 1.0", got)
	}
}

func TestScoreSurvivesPanickingCapabilities(t *testing.T) {
	s := NewScorer(panicAnalyzer{}, panicGrader{})
	got := s.Score("Discover something new today", []string{"discover"})
	// polarity 0, readability neutral 1, keyword 1, verb 1
	if got != 3.0 {
		t.Fatalf("Score() with panicking capabilities = %v, want 3.0", got)
	}
}

func TestLengthBonusBands(t *testing.T) {
	tests := []struct {
		wc   int
		want float64
	}{
		{0, 0},
		{9, 0},
		{10, 1},
		{19, 1},
		{20, 2},
		{80, 2},
		{81, 1},
		{120, 1},
		{121, 0},
	}
	for _, tt := range tests {
		if got := lengthBonus(tt.wc); got != tt.want {
			t.Errorf("lengthBonus(%d) = %v, want %v", tt.wc, got, tt.want)
		}
	}
}

func TestHashtagBonus(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{0, 0},
		{1, 1},
		{3, 1},
		{4, 0},
	}
	for _, tt := range tests {
		if got := hashtagBonus(tt.n); got != tt.want {
			t.Errorf("hashtagBonus(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestOptimizeSubScoresSumToFinal(t *testing.T) {
	text := "Explore how data-driven marketing unlocks growth for small teams. #data #growth"
	s := NewScorer(fakeAnalyzer{polarity: 0.4}, fakeGrader{grade: 6})

	f := s.Optimize(text, []string{"marketing", "growth"})

	sum := 1.5*float64(f.KeywordHits) + f.Sentiment + f.ReadabilityBonus + f.LengthBonus + f.HashtagBonus
	if math.Abs(sum-f.FinalScore) > 0.001 {
		t.Fatalf("sub-scores sum %v does not match final %v", sum, f.FinalScore)
	}
	if f.KeywordHits != 2 {
		t.Errorf("KeywordHits = %d, want 2", f.KeywordHits)
	}
	if f.Hashtags != 2 {
		t.Errorf("Hashtags = %d, want 2", f.Hashtags)
	}
}

func TestOptimizeReadabilityClamp(t *testing.T) {
	s := NewScorer(fakeAnalyzer{}, fakeGrader{grade: -30})
	f := s.Optimize("easy words here now", nil)
	if f.ReadabilityBonus != 2 {
		t.Fatalf("ReadabilityBonus = %v, want clamp at 2", f.ReadabilityBonus)
	}

	s = NewScorer(fakeAnalyzer{}, fakeGrader{grade: 40})
	f = s.Optimize("dense academic prose", nil)
	if f.ReadabilityBonus != 0 {
		t.Fatalf("ReadabilityBonus = %v, want clamp at 0", f.ReadabilityBonus)
	}
}

func TestHashtagCountOverride(t *testing.T) {
	text := "No tags in this text at all"
	s := NewScorer(fakeAnalyzer{}, fakeGrader{grade: 10})

	plain := s.Score(text, nil)
	overridden := s.ScoreWithHashtagCount(text, nil, 2)
	if overridden != plain+1 {
		t.Fatalf("override score %v, plain %v, want +1 hashtag bonus", overridden, plain)
	}

	f := s.OptimizeWithHashtagCount(text, nil, 2)
	if f.Hashtags != 2 || f.HashtagBonus != 1 {
		t.Fatalf("override features: hashtags=%d bonus=%v", f.Hashtags, f.HashtagBonus)
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := NewScorer(nil, nil)
	text := "Join thousands of creators learning to grow with #trendpulse today!"
	kws := []string{"creators", "grow"}

	first := s.Score(text, kws)
	for i := 0; i < 5; i++ {
		if got := s.Score(text, kws); got != first {
			t.Fatalf("run %d: Score() = %v, want %v", i, got, first)
		}
	}
}

func TestFleschKincaidGrader(t *testing.T) {
	g := FleschKincaidGrader{}

	easy, err := g.Grade("The cat sat. The dog ran. It was fun.")
	if err != nil {
		t.Fatalf("Grade(easy) error: %v", err)
	}
	hard, err := g.Grade("Sophisticated organizational methodologies necessitate comprehensive interdepartmental communication infrastructures.")
	if err != nil {
		t.Fatalf("Grade(hard) error: %v", err)
	}
	if easy >= hard {
		t.Fatalf("expected easy grade %v below hard grade %v", easy, hard)
	}

	if _, err := g.Grade("   "); err == nil {
		t.Fatal("expected error for blank text")
	}
}

func TestLexiconAnalyzer(t *testing.T) {
	a := LexiconAnalyzer{}

	if p := a.Polarity("This is an amazing, wonderful product"); p <= 0 {
		t.Errorf("positive text polarity = %v, want > 0", p)
	}
	if p := a.Polarity("A terrible, awful experience"); p >= 0 {
		t.Errorf("negative text polarity = %v, want < 0", p)
	}
	if p := a.Polarity("The quarterly report was filed"); p != 0 {
		t.Errorf("neutral text polarity = %v, want 0", p)
	}
}
