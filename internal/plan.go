package internal

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"
	"time"
)

// PhotoJob is one photo to render, fully decided before any file is written
type PhotoJob struct {
	Index      int // 1-based position in the batch
	Day        int // 1-based trip day, 0 when the set has no itinerary
	Filename   string
	Location   Location
	Taken      time.Time
	Width      int
	Height     int
	Background Gradient
	Labels     []Label

	Make           string
	Model          string
	WriteDateTime  bool
	WriteDigitized bool
}

// Metadata builds the EXIF payload for the job
func (j PhotoJob) Metadata(secondsDen uint32) Metadata {
	return Metadata{
		Latitude:       j.Location.Latitude,
		Longitude:      j.Location.Longitude,
		Taken:          j.Taken,
		Make:           j.Make,
		Model:          j.Model,
		SecondsDen:     secondsDen,
		WriteDateTime:  j.WriteDateTime,
		WriteDigitized: j.WriteDigitized,
	}
}

// PhotoSet is a named fixture batch
type PhotoSet struct {
	Name             string
	Description      string
	DefaultOutputDir string
	SecondsDen       uint32
	Plan             func(now time.Time, rng *rand.Rand) []PhotoJob
}

var photoSets = map[string]PhotoSet{
	"tokyo": {
		Name:             "tokyo",
		Description:      "one labelled photo per checkpoint category around Tokyo, 30 minutes apart",
		DefaultOutputDir: "/tmp/routy_test_photos",
		SecondsDen:       10000,
		Plan:             PlanTokyo,
	},
	"kansai": {
		Name:             "kansai",
		Description:      "three-day Kansai trip (Osaka, Kyoto, Kobe/Nara/Wakayama/Shiga) with random times",
		DefaultOutputDir: "/tmp/kansai_photos",
		SecondsDen:       1000000,
		Plan:             PlanKansai,
	},
}

// LookupPhotoSet finds a set by name
func LookupPhotoSet(name string) (PhotoSet, error) {
	s, ok := photoSets[name]
	if !ok {
		return PhotoSet{}, fmt.Errorf("unknown photo set %q (available: %v)", name, PhotoSetNames())
	}
	return s, nil
}

// PhotoSetNames lists the available sets, sorted
func PhotoSetNames() []string {
	names := make([]string, 0, len(photoSets))
	for n := range photoSets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PlanTokyo lays out the category test photos. The rng is unused; the set
// is fully deterministic apart from the clock.
func PlanTokyo(now time.Time, _ *rand.Rand) []PhotoJob {
	const width, height = 1600, 1200

	jobs := make([]PhotoJob, 0, len(TokyoLocations))
	for i, loc := range TokyoLocations {
		index := i + 1
		jobs = append(jobs, PhotoJob{
			Index:    index,
			Filename: fmt.Sprintf("%02d_%s.jpg", index, loc.Category),
			Location: loc,
			Taken:    now.Add(time.Duration(index) * 30 * time.Minute),
			Width:    width,
			Height:   height,
			Background: LinearGradient{
				Top:    Scale(loc.Color, 0.8),
				Bottom: Scale(loc.Color, 0.4),
			},
			Labels: []Label{
				{Text: loc.Icon, Size: 60, Opacity: 230.0 / 255, Y: height / 4, Centered: true},
				{Text: loc.Name, Size: 60, Opacity: 1, Y: int(height * 0.55), Centered: true},
				{Text: CategoryNames[loc.Category], Size: 40, Opacity: 200.0 / 255, Y: int(height * 0.65), Centered: true},
				{Text: fmt.Sprintf("#%d", index), Size: 30, Opacity: 150.0 / 255, X: width - 120, Y: height - 60},
			},
			WriteDigitized: true,
		})
	}
	return jobs
}

// tripDay is one day of the kansai itinerary
type tripDay struct {
	cities    []string
	max       int
	startHour int
	perHour   int // photos sharing one hour slot
}

var kansaiItinerary = []tripDay{
	{cities: []string{CityOsaka}, max: 7, startHour: 9, perHour: 1},
	{cities: []string{CityKyoto}, max: 8, startHour: 8, perHour: 1},
	{cities: []string{CityKobe, CityNara, CityWakayama, CityShiga}, max: 10, startHour: 9, perHour: 2},
}

// PlanKansai lays out a three-day trip ending today. Spot order, minutes,
// seconds and background colours come from rng.
func PlanKansai(now time.Time, rng *rand.Rand) []PhotoJob {
	const width, height = 1200, 900

	base := now.AddDate(0, 0, -2)
	var jobs []PhotoJob

	for d, day := range kansaiItinerary {
		date := base.AddDate(0, 0, d)
		spots := slices.Clone(LocationsIn(KansaiLocations, day.cities...))
		rng.Shuffle(len(spots), func(i, j int) { spots[i], spots[j] = spots[j], spots[i] })
		if len(spots) > day.max {
			spots = spots[:day.max]
		}

		for i, spot := range spots {
			taken := time.Date(date.Year(), date.Month(), date.Day(),
				day.startHour+i/day.perHour, rng.IntN(60), rng.IntN(60), 0, date.Location())

			jobs = append(jobs, PhotoJob{
				Index:      len(jobs) + 1,
				Day:        d + 1,
				Filename:   fmt.Sprintf("day%d_%02d_%s.jpg", d+1, i+1, spot.Name),
				Location:   spot,
				Taken:      taken,
				Width:      width,
				Height:     height,
				Background: FadeGradient{Base: KansaiPalette[rng.IntN(len(KansaiPalette))], Fade: 0.3},

				Make:          "Apple",
				Model:         "iPhone 15 Pro",
				WriteDateTime: true,
			})
		}
	}
	return jobs
}

// DateRange returns the first and last capture day of a batch
func DateRange(jobs []PhotoJob) (time.Time, time.Time) {
	if len(jobs) == 0 {
		return time.Time{}, time.Time{}
	}
	first, last := jobs[0].Taken, jobs[0].Taken
	for _, j := range jobs[1:] {
		if j.Taken.Before(first) {
			first = j.Taken
		}
		if j.Taken.After(last) {
			last = j.Taken
		}
	}
	return first, last
}

// NewRand returns a seeded generator; seed 0 picks one from the clock
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
