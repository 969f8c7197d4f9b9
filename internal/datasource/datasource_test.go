package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hippique/internal/config"
	"github.com/yourusername/hippique/internal/models"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func testHTTPClient() *RateLimitedHTTPClient {
	return NewRateLimitedHTTPClient(HTTPClientConfig{
		Timeout:           2 * time.Second,
		MaxRetries:        0,
		RetryWaitMin:      time.Millisecond,
		RetryWaitMax:      time.Millisecond,
		RateLimit:         1000,
		CircuitBreakerMax: 2,
	}, quietLogger())
}

func TestDecodeResultsPreRanked(t *testing.T) {
	data := []byte(`{"resultats": [
		{"NomPostal": "C. SOUMILLON", "Partants": "412", "Victoires": 98, "Place": "121", "Rang": 1, "TauxVictoire": "23,8", "TauxPlace": 29.4}
	]}`)

	records, err := DecodeResults(models.CategoryJockey, data)
	require.NoError(t, err)

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "C. SOUMILLON", rec.Name)
	assert.True(t, rec.PreRanked)
	assert.Equal(t, 1, rec.Rank)
	assert.Equal(t, models.Metrics{Wins: 98, Starts: 412, Placings: 121}, rec.Metrics)
	assert.InDelta(t, 23.8, rec.Rates.WinRate, 1e-9)
	assert.InDelta(t, 29.4, rec.Rates.PlaceRate, 1e-9)
}

func TestDecodeResultsUsesCategoryFields(t *testing.T) {
	data := []byte(`[{"Nom": "ALPHA", "NbCourses": 5, "NbVictoires": "2", "NbPlace": 1, "NomPostal": "IGNORED"}]`)

	records, err := DecodeResults(models.CategoryHorse, data)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "ALPHA", records[0].Name)
	assert.False(t, records[0].PreRanked)
	assert.Equal(t, models.Metrics{Wins: 2, Starts: 5, Placings: 1}, records[0].Metrics)

	// A jockey table reads NomPostal, so a horse-shaped row has no name
	records, err = DecodeResults(models.CategoryJockey, []byte(`[{"Nom": "ALPHA"}]`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeResultsInvalid(t *testing.T) {
	for _, payload := range []string{"", "{}", "not json", `{"resultats": 3}`} {
		_, err := DecodeResults(models.CategoryOwner, []byte(payload))
		assert.ErrorIs(t, err, ErrInvalidData, "payload %q", payload)
	}
}

func TestFileProviderLoadCategoryTable(t *testing.T) {
	p := NewFileProvider("testdata", quietLogger())
	ctx := context.Background()

	t.Run("ponderated file", func(t *testing.T) {
		records, err := p.LoadCategoryTable(ctx, models.CategoryJockey)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "M. GUYON", records[1].Name)
		assert.Equal(t, 2, records[1].Rank)
	})

	t.Run("falls back to plain file", func(t *testing.T) {
		records, err := p.LoadCategoryTable(ctx, models.CategoryHorse)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "BRAVO (GB)", records[1].Name)
		assert.Equal(t, 7, records[1].Metrics.Starts)
	})

	t.Run("missing category", func(t *testing.T) {
		_, err := p.LoadCategoryTable(ctx, models.CategoryBreeder)
		require.Error(t, err)
		assert.Equal(t, ErrCodeNotFound, ErrorCode(err))
		assert.ErrorIs(t, err, models.ErrDataUnavailable)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := p.LoadCategoryTable(ctx, models.Category("camel"))
		assert.ErrorIs(t, err, models.ErrUnknownCategory)
	})
}

func TestFileProviderLoadRaceParticipants(t *testing.T) {
	p := NewFileProvider("testdata", quietLogger())

	day, err := p.LoadRaceParticipants(context.Background(), "2025-05-18", "ParisLongchamp")
	require.NoError(t, err)

	assert.Equal(t, "PARISLONGCHAMP", day.Hippodrome)
	require.Len(t, day.Courses, 1, "hurdles and empty courses are dropped")

	course := day.Courses[0]
	assert.Equal(t, "Prix de Saint-Cloud", course.Name)
	assert.Equal(t, 1600, course.Context.DistanceMeters)
	require.Len(t, course.Participants, 2)

	first := course.Participants[0]
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, "ALPHA H.PS. 4 a.", first.HorseName)
	assert.Equal(t, "ECURIE ALPHA", first.OwnerName)
	assert.Equal(t, []string{"HARAS DU BOIS & EARL ELEVAGE"}, first.BreederNames)
	assert.Equal(t, 58.0, first.WeightCarried)
	assert.Equal(t, "(Corde:03)", first.PostPosition)
	assert.Equal(t, "1p2p3p", first.PriorForm)
	assert.Equal(t, 4.5, first.Odds)

	second := course.Participants[1]
	assert.Equal(t, 2, second.Number)
	assert.Equal(t, "MR JEAN DUPONT", second.OwnerName)
	assert.Equal(t, []string{"EARL ELEVAGE", "G. AUGUSTIN-NORMAND"}, second.BreederNames)
	assert.Equal(t, 56.5, second.WeightCarried)

	_, ok := day.FindCourse("prix de saint-cloud")
	assert.True(t, ok)
}

func TestFileProviderMissingRaceCard(t *testing.T) {
	p := NewFileProvider("testdata", quietLogger())

	_, err := p.LoadRaceParticipants(context.Background(), "2025-05-19", "Chantilly")

	assert.Equal(t, ErrCodeNotFound, ErrorCode(err))
}

func TestDecodeRaceDaySkipsNonFlatMeeting(t *testing.T) {
	data := []byte(`{"hippodrome": "VINCENNES", "type_reunion": "Trot", "courses": [
		{"nom": "Prix d'Amerique", "participants": [{"cheval": "IDAO DE TILLARD"}]}
	]}`)

	day, err := DecodeRaceDay("2025-01-26", "Vincennes", data)
	require.NoError(t, err)
	assert.Empty(t, day.Courses)
}

func TestDecodeRaceDayBareArray(t *testing.T) {
	data := []byte(`[{"nom": "Prix A", "distance": 1200, "participants": [{"n°": "1", "cheval": "ALPHA", "jockey": "X"}]}]`)

	day, err := DecodeRaceDay("2025-05-18", "deauville", data)
	require.NoError(t, err)
	require.Len(t, day.Courses, 1)
	assert.Equal(t, "DEAUVILLE", day.Courses[0].Context.Hippodrome)
	assert.Equal(t, 1200, day.Courses[0].Context.DistanceMeters)
}

func TestDecodeRaceDayDropsRunnersWithoutNumber(t *testing.T) {
	data := []byte(`{"courses": [{"nom": "Prix A", "type": "Plat", "participants": [
		{"n°": "1", "cheval": "ALPHA"},
		{"n°": "NP", "cheval": "BRAVO"},
		{"cheval": "CHARLIE"},
		{"numero": 1, "cheval": "DELTA"},
		{"numero": "02", "cheval": "ECHO"},
		{"num": 0, "cheval": "FOXTROT"}
	]}]}`)

	day, err := DecodeRaceDay("2025-05-18", "Deauville", data)
	require.NoError(t, err)
	require.Len(t, day.Courses, 1)

	participants := day.Courses[0].Participants
	require.Len(t, participants, 2)
	assert.Equal(t, "ALPHA", participants[0].HorseName)
	assert.Equal(t, 1, participants[0].Number)
	assert.Equal(t, "ECHO", participants[1].HorseName)
	assert.Equal(t, 2, participants[1].Number)
	assert.Equal(t, 4, day.SkippedRunners)
}

func TestRaceCardPath(t *testing.T) {
	assert.Equal(t, "courses/2025-05-18_saint_cloud.json", RaceCardPath("2025-05-18", "Saint Cloud"))
}

func TestHTTPProviderLoadsAndFallsBack(t *testing.T) {
	server := httptest.NewServer(http.FileServer(http.Dir("testdata")))
	defer server.Close()

	p := NewHTTPProvider(testHTTPClient(), server.URL+"/", quietLogger())
	ctx := context.Background()

	records, err := p.LoadCategoryTable(ctx, models.CategoryHorse)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	day, err := p.LoadRaceParticipants(ctx, "2025-05-18", "PARISLONGCHAMP")
	require.NoError(t, err)
	assert.Len(t, day.Courses, 1)

	_, err = p.LoadCategoryTable(ctx, models.CategoryOwner)
	assert.Equal(t, ErrCodeNotFound, ErrorCode(err))
}

func TestHTTPProviderServerErrorOpensCircuit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := testHTTPClient()
	p := NewHTTPProvider(client, server.URL, quietLogger())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := p.LoadRaceParticipants(ctx, "2025-05-18", "Chantilly")
		require.Error(t, err)
		assert.Equal(t, ErrCodeNetworkError, ErrorCode(err))
		assert.True(t, errors.Is(err, models.ErrDataUnavailable))
	}
	assert.True(t, client.IsOpen())

	client.Reset()
	assert.False(t, client.IsOpen())
}

func TestFactoryCreate(t *testing.T) {
	fileProvider, err := NewFactory(config.DataConfig{Source: "file", Dir: "testdata"}, quietLogger()).Create()
	require.NoError(t, err)
	assert.Equal(t, "file", fileProvider.Name())

	httpProvider, err := NewFactory(config.DataConfig{Source: "http", BaseURL: "https://example.com"}, quietLogger()).Create()
	require.NoError(t, err)
	assert.Equal(t, "http", httpProvider.Name())

	_, err = NewFactory(config.DataConfig{Source: "ftp"}, quietLogger()).Create()
	assert.Error(t, err)

	_, err = NewFactory(config.DataConfig{Source: "http"}, quietLogger()).Create()
	assert.Error(t, err)
}
