package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsReviewLikeRejectsShortText(t *testing.T) {
	assert.False(t, IsReviewLike("Too short to be a review."))
	assert.False(t, IsReviewLike(""))
}

func TestIsReviewLikeRejectsNavigationRegardlessOfLength(t *testing.T) {
	nav := "Menu Release Calendar Top 250 Movies Most Popular Movies Browse Movies by Genre " +
		strings.Repeat("lots of trailing filler words here ", 20)
	assert.False(t, IsReviewLike(strings.ToLower(nav)))
	assert.False(t, IsReviewLike(nav))
}

func TestIsReviewLikeRejectsLinkLists(t *testing.T) {
	links := "Check these out: http://a.example http://b.example http://c.example and more " +
		"text about the film to satisfy the minimum length requirement of the filter."
	assert.False(t, IsReviewLike(links))
}

func TestIsReviewLikeAcceptsFilmVocabulary(t *testing.T) {
	text := "The film surprised me with how much the plot trusted its audience from start to finish."
	assert.True(t, IsReviewLike(text))
}

func TestIsReviewLikeAcceptsLocalizedVocabulary(t *testing.T) {
	text := "Этот фильм оставил сильное впечатление, особенно вторая половина и работа оператора."
	assert.True(t, IsReviewLike(text))
}

func TestIsReviewLikeShortWithoutVocabularyRejected(t *testing.T) {
	// Over 50 chars, under 200, nothing review-flavored.
	text := "The weather yesterday was pleasant and I went for a very long walk outside."
	assert.False(t, IsReviewLike(text))
}

func TestIsReviewLikeLongWithoutVocabularyAccepted(t *testing.T) {
	text := strings.Repeat("a thoughtful meditation on grief and what it leaves behind ", 5)
	assert.True(t, IsReviewLike(strings.TrimSpace(text)))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "a b c", normalizeText("  a\n\tb   c  "))
}
