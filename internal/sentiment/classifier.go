package sentiment

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Lexicon-backed sentiment scorer. Word lists are the model artifacts,
// loaded once from a model directory; until both load the classifier
// reports not ready and every Classify call fails. After a successful load
// the maps are read-only, so concurrent inference is safe.

// ErrNotReady is returned when the model artifacts have not been loaded.
var ErrNotReady = errors.New("sentiment model not loaded")

const (
	positiveFile = "positive.txt"
	negativeFile = "negative.txt"
)

// negators flip the polarity of the token that follows them.
var negators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "without": {},
	"не": {}, "нет": {},
}

type Classifier struct {
	positive map[string]struct{}
	negative map[string]struct{}
	ready    bool
}

// Load reads the lexicon files from dir. On failure it returns a not-ready
// classifier alongside the error, so callers can keep serving and report
// readiness honestly.
func Load(dir string) (*Classifier, error) {
	pos, err := readLexicon(filepath.Join(dir, positiveFile))
	if err != nil {
		return &Classifier{}, fmt.Errorf("load positive lexicon: %w", err)
	}
	neg, err := readLexicon(filepath.Join(dir, negativeFile))
	if err != nil {
		return &Classifier{}, fmt.Errorf("load negative lexicon: %w", err)
	}
	if len(pos) == 0 || len(neg) == 0 {
		return &Classifier{}, errors.New("empty lexicon")
	}
	return &Classifier{positive: pos, negative: neg, ready: true}, nil
}

func (c *Classifier) Ready() bool { return c != nil && c.ready }

// Classify scores text in [0,1]; above 0.5 reads as positive. A text with
// no lexicon hits scores exactly 0.5.
func (c *Classifier) Classify(text string) (float64, error) {
	if !c.Ready() {
		return 0, ErrNotReady
	}

	tokens := tokenize(text)
	var pos, neg float64
	negated := false
	for _, t := range tokens {
		if _, ok := negators[t]; ok {
			negated = true
			continue
		}
		_, isPos := c.positive[t]
		_, isNeg := c.negative[t]
		switch {
		case isPos && negated:
			neg++
		case isPos:
			pos++
		case isNeg && negated:
			pos++
		case isNeg:
			neg++
		}
		negated = false
	}

	if pos+neg == 0 {
		return 0.5, nil
	}
	score := 0.5 + 0.5*(pos-neg)/(pos+neg)
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// readLexicon reads one token per line; blank lines and # comments are
// skipped.
func readLexicon(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := make(map[string]struct{})
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out[strings.ToLower(line)] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
