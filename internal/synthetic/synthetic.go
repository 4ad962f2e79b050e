package synthetic

import (
	"fmt"
	"math/rand"
	"sync"

	"movie-sentiment-crawler/internal/models"
)

// Template-based backfill used when real extraction cannot reach the target
// count. Output alternates by position: even index positive (rating 7-10),
// odd index negative (rating 1-4). Every generated review carries the
// synthetic flag so callers can tell scraped content from placeholder.

var positiveTemplates = []string{
	"Excellent film '%s'! I really enjoyed the plot and acting. Highly recommend to everyone.",
	"Amazing movie '%s'! The emotions are overwhelming, must watch.",
	"Great film '%s' with an interesting story and good direction. One of the best films of the year.",
	"Wonderful film '%s'! Watched it in one breath, very impressive.",
	"Outstanding work by the director in '%s'. The film is top notch, must see!",
	"Incredibly captivating film '%s'! Highly recommend to everyone.",
	"Excellent drama '%s' with deep meaning. Very impressive.",
	"Amazing acting in '%s'! The film is simply magnificent.",
	"Brilliant movie '%s'! The storytelling is excellent and performances are top notch.",
	"This is a masterpiece! '%s' exceeded all my expectations.",
}

var negativeTemplates = []string{
	"Boring film '%s'. Not recommended, expected more.",
	"Very disappointed with '%s'. Poor acting and weak plot.",
	"Bad movie '%s'. Not worth watching, wasted time.",
	"Weak script in '%s'. The film did not meet expectations.",
	"Very predictable and boring film '%s'. Not recommended.",
	"Disappointment from '%s'. The film is not worth the time.",
	"Boring film '%s' without an interesting story. Poor direction.",
	"This movie '%s' was a complete waste of time. Terrible script.",
	"I was very disappointed with '%s'. Poor storytelling and weak characters.",
}

// Generator produces placeholder reviews. Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns count reviews for the named movie.
func (g *Generator) Generate(name string, count int) []models.Review {
	if count <= 0 {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]models.Review, 0, count)
	for i := 0; i < count; i++ {
		var text string
		var rating int
		if i%2 == 0 {
			text = fmt.Sprintf(positiveTemplates[g.rng.Intn(len(positiveTemplates))], name)
			rating = 7 + g.rng.Intn(4)
		} else {
			text = fmt.Sprintf(negativeTemplates[g.rng.Intn(len(negativeTemplates))], name)
			rating = 1 + g.rng.Intn(4)
		}
		out = append(out, models.Review{
			Text:      text,
			Rating:    models.IntPtr(rating),
			Author:    fmt.Sprintf("User %d", i+1),
			Synthetic: true,
		})
	}
	return out
}
