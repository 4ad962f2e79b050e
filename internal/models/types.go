package models

// Review is the unit record of the pipeline. Text is always normalized:
// internal whitespace collapsed, no leading/trailing space, at least 50 chars.
// Sentiment, Confidence and Score stay zero until classification runs.
type Review struct {
	Text       string  `json:"text"`
	Rating     *int    `json:"rating,omitempty"` // 1..10, absent when unparseable
	Author     string  `json:"author"`
	Synthetic  bool    `json:"is_synthetic"`
	Sentiment  string  `json:"sentiment,omitempty"` // positive | negative | unknown
	Confidence float64 `json:"confidence"`          // percent, two decimals
	Score      float64 `json:"score"`               // raw classifier output in [0,1]
}

// RawCandidate is an unvalidated text block pulled out of the reviews page.
type RawCandidate struct {
	Text   string
	Rating *int
	Author string
}

// MovieQuery is one acquisition request.
type MovieQuery struct {
	Name        string
	TargetCount int
}

// DefaultTargetCount is used when a query does not specify a count.
const DefaultTargetCount = 50

// AggregateResult is the classified batch plus its summary statistics.
type AggregateResult struct {
	MovieName       string   `json:"movie_name"`
	TotalReviews    int      `json:"total_reviews"`
	PositiveCount   int      `json:"positive_count"`
	NegativeCount   int      `json:"negative_count"`
	PositivePercent float64  `json:"positive_percent"`
	NegativePercent float64  `json:"negative_percent"`
	Reviews         []Review `json:"reviews"`
}

// IntPtr is a convenience for optional ratings.
func IntPtr(v int) *int { return &v }
