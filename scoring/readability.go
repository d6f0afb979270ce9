package scoring

import (
	"errors"
	"regexp"
	"strings"
)

// FleschKincaidGrader scores readability with the Flesch-Kincaid grade
// level formula. It is the default in-process ReadabilityGrader.
type FleschKincaidGrader struct{}

var (
	sentenceSplitRE = regexp.MustCompile(`[.!?]+`)
	letterWordRE    = regexp.MustCompile(`[a-zA-Z]+`)
)

// Grade returns the Flesch-Kincaid grade level for text. Empty text is
// ungradable.
func (FleschKincaidGrader) Grade(text string) (float64, error) {
	words := letterWordRE.FindAllString(text, -1)
	if len(words) == 0 {
		return 0, errors.New("no gradable words")
	}

	sentences := 0
	for _, seg := range sentenceSplitRE.Split(text, -1) {
		if strings.TrimSpace(seg) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	wordCount := float64(len(words))
	grade := 0.39*(wordCount/float64(sentences)) + 11.8*(float64(syllables)/wordCount) - 15.59
	return grade, nil
}

// countSyllables approximates syllables as vowel groups, with a silent
// trailing "e" discounted. Every word counts at least one.
func countSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}
