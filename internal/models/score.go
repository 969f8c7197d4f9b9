package models

import (
	"encoding/json"
	"strconv"
)

// UnresolvedLabel is shown in place of a rank when an actor has no match.
const UnresolvedLabel = "NC"

// CategoryScore is the contribution of one category to a participant score.
type CategoryScore struct {
	Category    Category
	Rank        int
	Resolved    bool
	Score       float64
	MatchedName string
}

// RankLabel returns the rank as text, or "NC" when unresolved.
func (s CategoryScore) RankLabel() string {
	if !s.Resolved {
		return UnresolvedLabel
	}
	return strconv.Itoa(s.Rank)
}

// MarshalJSON renders the rank as a number, or "NC" when unresolved.
func (s CategoryScore) MarshalJSON() ([]byte, error) {
	var rank interface{} = UnresolvedLabel
	if s.Resolved {
		rank = s.Rank
	}
	return json.Marshal(struct {
		Category    Category    `json:"category"`
		Rank        interface{} `json:"rank"`
		Score       float64     `json:"score"`
		MatchedName string      `json:"matched_name,omitempty"`
	}{s.Category, rank, s.Score, s.MatchedName})
}

// CordeAdjustment describes the post-position correction.
type CordeAdjustment struct {
	PostPosition int     `json:"post_position"`
	Parsed       bool    `json:"parsed"`
	Bucket       string  `json:"bucket"`
	Advantage    float64 `json:"advantage"`
	Impact       float64 `json:"impact"`
	Delta        float64 `json:"delta"`
	Explanation  string  `json:"explanation"`
}

// WeightAdjustment describes the carried-weight correction.
type WeightAdjustment struct {
	Weight      float64 `json:"weight"`
	FieldAvg    float64 `json:"field_avg"`
	Bucket      string  `json:"bucket"`
	Multiplier  float64 `json:"multiplier"`
	Delta       float64 `json:"delta"`
	Explanation string  `json:"explanation"`
}

// ScoreBreakdown is the full predictive score for one participant.
type ScoreBreakdown struct {
	Number      int                        `json:"number"`
	HorseName   string                     `json:"horse_name"`
	PerCategory map[Category]CategoryScore `json:"per_category"`
	Corde       *CordeAdjustment           `json:"corde,omitempty"`
	Weight      *WeightAdjustment          `json:"weight,omitempty"`
	Total       float64                    `json:"total"`
}

// RankedParticipant is a participant's score with its finishing position in
// the predicted order. Odds are the race card odds, or an estimate from the
// score when the card has none.
type RankedParticipant struct {
	Position      int            `json:"position"`
	Breakdown     ScoreBreakdown `json:"breakdown"`
	Odds          float64        `json:"odds,omitempty"`
	OddsEstimated bool           `json:"odds_estimated,omitempty"`
}
