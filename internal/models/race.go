package models

import "strings"

// Participant is one runner in a course as listed on the race card.
type Participant struct {
	Number        int      `json:"number"`
	HorseName     string   `json:"horse_name" validate:"required"`
	JockeyName    string   `json:"jockey_name"`
	TrainerName   string   `json:"trainer_name"`
	OwnerName     string   `json:"owner_name"`
	BreederNames  []string `json:"breeder_names"`
	WeightCarried float64  `json:"weight_carried"` // kg, 0 when unknown
	PriorForm     string   `json:"prior_form"`
	PostPosition  string   `json:"post_position"` // raw corde text, empty when absent
	Odds          float64  `json:"odds,omitempty"`
}

// RaceContext carries the course attributes used by the adjusters.
type RaceContext struct {
	Hippodrome     string  `json:"hippodrome"`
	DistanceMeters int     `json:"distance_meters"`
	RaceType       string  `json:"race_type"`
	FieldAvgWeight float64 `json:"field_avg_weight,omitempty"`
}

// Course is a single race with its runners.
type Course struct {
	Name         string        `json:"name"`
	Context      RaceContext   `json:"context"`
	Participants []Participant `json:"participants"`
}

// RaceDay groups the courses run at one hippodrome on one date.
type RaceDay struct {
	Date           string   `json:"date"`
	Hippodrome     string   `json:"hippodrome"`
	Courses        []Course `json:"courses"`
	SkippedRunners int      `json:"skipped_runners,omitempty"`
}

// FindCourse looks a course up by name, case-insensitively.
func (d *RaceDay) FindCourse(name string) (*Course, bool) {
	for i := range d.Courses {
		if strings.EqualFold(strings.TrimSpace(d.Courses[i].Name), strings.TrimSpace(name)) {
			return &d.Courses[i], true
		}
	}
	return nil, false
}

// AverageWeight returns the rounded mean carried weight of runners with a
// known weight, or 0 when none is known.
func (c *Course) AverageWeight() float64 {
	var sum float64
	var n int
	for _, p := range c.Participants {
		if p.WeightCarried > 0 {
			sum += p.WeightCarried
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(int(sum/float64(n) + 0.5))
}
