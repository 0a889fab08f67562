package fakebackend

import (
	"sort"
	"strings"
	"unicode"
)

var (
	positiveWords = map[string]bool{"good": true, "great": true, "happy": true, "calm": true, "grateful": true, "love": true, "fun": true}
	negativeWords = map[string]bool{"bad": true, "sad": true, "tired": true, "angry": true, "stressed": true, "anxious": true, "lonely": true}
	stopWords     = map[string]bool{"the": true, "and": true, "a": true, "an": true, "to": true, "of": true, "i": true, "was": true, "is": true, "it": true, "at": true, "my": true, "in": true}
)

func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

// analyze returns a sentiment score in [-1, 1] and up to five comma
// separated keywords.
func analyze(text string) (float64, string) {
	ws := words(text)
	var pos, neg int
	var content []string
	for _, w := range ws {
		switch {
		case positiveWords[w]:
			pos++
		case negativeWords[w]:
			neg++
		}
		if !stopWords[w] && len(w) > 2 {
			content = append(content, w)
		}
	}
	score := 0.0
	if pos+neg > 0 {
		score = float64(pos-neg) / float64(pos+neg)
	}
	return score, strings.Join(topWords(content, 5), ", ")
}

func topWords(ws []string, n int) []string {
	counts := map[string]int{}
	for _, w := range ws {
		counts[w]++
	}
	out := make([]string, 0, len(counts))
	for w := range counts {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func splitKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func emotions(score float64) []string {
	switch {
	case score > 0.1:
		return []string{"content"}
	case score < -0.1:
		return []string{"heavy"}
	default:
		return []string{"neutral"}
	}
}

func followupPrompt(e *entry) string {
	if kw := splitKeywords(e.Keywords); len(kw) > 0 {
		return "What does " + kw[0] + " mean to you right now?"
	}
	return "What stood out to you about today?"
}
