package datasource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/yourusername/hippique/internal/models"
)

// FieldMapping names the source fields holding an actor's name and counts.
type FieldMapping struct {
	Name     string
	Starts   string
	Wins     string
	Placings string
}

// Pre-ranked sources add these fields to every record.
const (
	RankField      = "Rang"
	WinRateField   = "TauxVictoire"
	PlaceRateField = "TauxPlace"
)

var (
	horseFields = FieldMapping{Name: "Nom", Starts: "NbCourses", Wins: "NbVictoires", Placings: "NbPlace"}
	actorFields = FieldMapping{Name: "NomPostal", Starts: "Partants", Wins: "Victoires", Placings: "Place"}
)

// FieldsFor returns the source field mapping for a category.
func FieldsFor(category models.Category) FieldMapping {
	if category == models.CategoryHorse {
		return horseFields
	}
	return actorFields
}

// resultsEnvelope is the object form of a result file.
type resultsEnvelope struct {
	Results []map[string]interface{} `json:"resultats"`
}

// DecodeResults parses a result file, either {"resultats": [...]} or a bare
// array, and maps every row through the category's field mapping.
func DecodeResults(category models.Category, data []byte) ([]models.SourceRecord, error) {
	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}
	fields := FieldsFor(category)
	records := make([]models.SourceRecord, 0, len(rows))
	for _, row := range rows {
		rec, ok := mapRecord(fields, row)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeRows(data []byte) ([]map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidData)
	}
	if trimmed[0] == '[' {
		var rows []map[string]interface{}
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		return rows, nil
	}
	var env resultsEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	if env.Results == nil {
		return nil, fmt.Errorf("%w: missing \"resultats\"", ErrInvalidData)
	}
	return env.Results, nil
}

func mapRecord(fields FieldMapping, row map[string]interface{}) (models.SourceRecord, bool) {
	name := strings.TrimSpace(cast.ToString(row[fields.Name]))
	if name == "" {
		return models.SourceRecord{}, false
	}
	rec := models.SourceRecord{
		Name: name,
		Metrics: models.Metrics{
			Starts:   toInt(row[fields.Starts]),
			Wins:     toInt(row[fields.Wins]),
			Placings: toInt(row[fields.Placings]),
		},
	}
	if rank := toInt(row[RankField]); rank > 0 {
		rec.PreRanked = true
		rec.Rank = rank
		rec.Rates = models.DerivedRates{
			WinRate:   toFloat(row[WinRateField]),
			PlaceRate: toFloat(row[PlaceRateField]),
		}
	}
	return rec, true
}

var numberPattern = regexp.MustCompile(`-?\d+(?:[.,]\d+)?`)

// toFloat coerces JSON numbers and numeric strings ("12", "33,5", "58 kg").
func toFloat(v interface{}) float64 {
	if s, ok := v.(string); ok {
		m := numberPattern.FindString(s)
		if m == "" {
			return 0
		}
		v = strings.Replace(m, ",", ".", 1)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return f
}

func toInt(v interface{}) int {
	return int(toFloat(v))
}

// distanceMeters reads "1600", "1 600m" or 1600.
func distanceMeters(v interface{}) int {
	if s, ok := v.(string); ok {
		v = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "").Replace(s)
	}
	return toInt(v)
}

// Race card field names. Several spellings occur in the scraped files; the
// first non-empty one wins.
var (
	numberKeys   = []string{"n°", "numero", "num"}
	horseKeys    = []string{"cheval", "nom"}
	jockeyKeys   = []string{"jockey"}
	trainerKeys  = []string{"entraineur", "entraîneur"}
	ownerKeys    = []string{"propriétaire", "proprietaire"}
	breederKeys  = []string{"éleveurs", "eleveurs", "eleveur"}
	weightKeys   = []string{"poids"}
	formKeys     = []string{"musique", "forme"}
	postKeys     = []string{"corde"}
	oddsKeys     = []string{"cote", "odds"}
	distanceKeys = []string{"distance"}
)

type raceCardFile struct {
	Hippodrome  string                   `json:"hippodrome"`
	Date        string                   `json:"date"`
	MeetingType string                   `json:"type_reunion"`
	Courses     []map[string]interface{} `json:"courses"`
}

// DecodeRaceDay parses a race card file. It accepts a meeting object with
// "courses", a bare array of courses, or a single course object. Only flat
// races with at least one named runner are kept. Runners without a usable
// number, or repeating one already seen in their course, are dropped and
// counted in SkippedRunners.
func DecodeRaceDay(date, hippodrome string, data []byte) (*models.RaceDay, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidData)
	}

	day := &models.RaceDay{Date: date, Hippodrome: strings.ToUpper(strings.TrimSpace(hippodrome))}
	var courses []map[string]interface{}

	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &courses); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
	} else {
		var file raceCardFile
		if err := json.Unmarshal(trimmed, &file); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		if file.MeetingType != "" && !isFlat(file.MeetingType) {
			return day, nil
		}
		if file.Hippodrome != "" {
			day.Hippodrome = strings.ToUpper(strings.TrimSpace(file.Hippodrome))
		}
		if file.Date != "" {
			day.Date = file.Date
		}
		courses = file.Courses
		if courses == nil {
			var single map[string]interface{}
			if err := json.Unmarshal(trimmed, &single); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
			}
			if _, ok := single["participants"]; ok {
				courses = []map[string]interface{}{single}
			}
		}
	}

	for _, raw := range courses {
		course, skipped, ok := mapCourse(day.Hippodrome, raw)
		day.SkippedRunners += skipped
		if ok {
			day.Courses = append(day.Courses, course)
		}
	}
	return day, nil
}

func warnSkippedRunners(logger logrus.FieldLogger, name string, day *models.RaceDay) {
	if day.SkippedRunners > 0 {
		logger.WithFields(logrus.Fields{"file": name, "skipped": day.SkippedRunners}).
			Warn("Dropped runners without a usable number")
	}
}

func isFlat(raceType string) bool {
	return raceType == "" || strings.EqualFold(strings.TrimSpace(raceType), "plat")
}

func mapCourse(hippodrome string, raw map[string]interface{}) (models.Course, int, bool) {
	raceType := cast.ToString(raw["type"])
	if !isFlat(raceType) {
		return models.Course{}, 0, false
	}

	rows, _ := raw["participants"].([]interface{})
	participants := make([]models.Participant, 0, len(rows))
	seen := make(map[int]bool, len(rows))
	skipped := 0
	for _, r := range rows {
		row, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		p, ok := mapParticipant(row)
		if !ok || seen[p.Number] {
			skipped++
			continue
		}
		seen[p.Number] = true
		participants = append(participants, p)
	}
	if !lo.SomeBy(participants, func(p models.Participant) bool { return p.HorseName != "" || p.JockeyName != "" }) {
		return models.Course{}, skipped, false
	}

	return models.Course{
		Name: strings.TrimSpace(cast.ToString(raw["nom"])),
		Context: models.RaceContext{
			Hippodrome:     hippodrome,
			DistanceMeters: distanceMeters(first(raw, distanceKeys)),
			RaceType:       raceType,
		},
		Participants: participants,
	}, skipped, true
}

func mapParticipant(row map[string]interface{}) (models.Participant, bool) {
	number, ok := runnerNumber(first(row, numberKeys))
	if !ok {
		return models.Participant{}, false
	}
	p := models.Participant{
		Number:        number,
		HorseName:     firstString(row, horseKeys),
		JockeyName:    firstString(row, jockeyKeys),
		TrainerName:   firstString(row, trainerKeys),
		OwnerName:     firstString(row, ownerKeys),
		WeightCarried: toFloat(first(row, weightKeys)),
		PriorForm:     firstString(row, formKeys),
		PostPosition:  firstString(row, postKeys),
		Odds:          toFloat(first(row, oddsKeys)),
	}
	switch v := first(row, breederKeys).(type) {
	case []interface{}:
		p.BreederNames = lo.FilterMap(v, func(item interface{}, _ int) (string, bool) {
			s := strings.TrimSpace(cast.ToString(item))
			return s, s != ""
		})
	case nil:
	default:
		if s := strings.TrimSpace(cast.ToString(v)); s != "" {
			p.BreederNames = []string{s}
		}
	}
	return p, true
}

// runnerNumber reads a saddle-cloth number given as 3, 3.0 or "03".
// Missing, non-numeric and non-positive numbers are rejected.
func runnerNumber(v interface{}) (int, bool) {
	var n int
	if s, ok := v.(string); ok {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, false
		}
		n = i
	} else {
		i, err := cast.ToIntE(v)
		if err != nil {
			return 0, false
		}
		n = i
	}
	return n, n > 0
}

func first(row map[string]interface{}, keys []string) interface{} {
	for _, k := range keys {
		switch v := row[k].(type) {
		case nil:
			continue
		case string:
			if strings.TrimSpace(v) == "" {
				continue
			}
			return v
		default:
			return v
		}
	}
	return nil
}

func firstString(row map[string]interface{}, keys []string) string {
	return strings.TrimSpace(cast.ToString(first(row, keys)))
}
