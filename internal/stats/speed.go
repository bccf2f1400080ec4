package stats

import (
	"time"

	"github.com/shelfstats/shelfstats/internal/entities"
)

type SpeedBucket struct {
	Name         string  `json:"name"`
	PagesPerHour float64 `json:"pagesPerHour"`
}

type WeekdayBucket struct {
	Name         string  `json:"name"`
	PagesPerHour float64 `json:"pagesPerHour"`
	TotalPages   int     `json:"totalPages"`
}

// SpeedMetrics reports reading speed (pages per hour) across sessions
// with known page counts and positive duration.
type SpeedMetrics struct {
	AverageSpeed  float64         `json:"averageSpeed"`
	FastestSpeed  float64         `json:"fastestSpeed"`
	SlowestSpeed  float64         `json:"slowestSpeed"`
	BestTimeOfDay string          `json:"bestTimeOfDay"`
	BestDayOfWeek string          `json:"bestDayOfWeek"`
	TimeOfDay     []SpeedBucket   `json:"timeOfDay"`
	Weekly        []WeekdayBucket `json:"weekly"`
}

// Time-of-day buckets, in tie-break order.
var timeOfDayNames = [4]string{"morning", "afternoon", "evening", "night"}

// timeOfDayIndex buckets a start hour: [5,12) morning, [12,17) afternoon,
// [17,21) evening, everything else night.
func timeOfDayIndex(hour int) int {
	switch {
	case hour >= 5 && hour < 12:
		return 0
	case hour >= 12 && hour < 17:
		return 1
	case hour >= 17 && hour < 21:
		return 2
	default:
		return 3
	}
}

type speedAccumulator struct {
	sum   float64
	count int
	pages int
}

func (a *speedAccumulator) add(pph float64, pages int) {
	a.sum += pph
	a.count++
	a.pages += pages
}

func (a *speedAccumulator) mean() float64 {
	if a.count == 0 {
		return 0
	}
	return a.sum / float64(a.count)
}

// computeSpeed derives all speed views from the ledger. Sessions without
// page data or with a zero-minute duration are excluded; an empty input
// yields zero values and empty bucket slices.
func computeSpeed(sessions []entities.ReadingSession) SpeedMetrics {
	metrics := SpeedMetrics{
		TimeOfDay: []SpeedBucket{},
		Weekly:    []WeekdayBucket{},
	}

	var overall speedAccumulator
	var fastest, slowest float64
	var timeOfDay [4]speedAccumulator
	var weekly [7]speedAccumulator

	for i := range sessions {
		session := &sessions[i]
		pages, ok := session.PagesRead()
		if !ok {
			continue
		}
		minutes := session.DurationMinutes()
		if minutes <= 0 {
			continue
		}

		pph := float64(pages) / (float64(minutes) / 60)

		if overall.count == 0 {
			fastest, slowest = pph, pph
		} else {
			if pph > fastest {
				fastest = pph
			}
			if pph < slowest {
				slowest = pph
			}
		}
		overall.add(pph, pages)

		timeOfDay[timeOfDayIndex(session.StartTime.Hour())].add(pph, pages)
		weekly[int(session.StartTime.Weekday())].add(pph, pages)
	}

	if overall.count == 0 {
		return metrics
	}

	metrics.AverageSpeed = round1(overall.mean())
	metrics.FastestSpeed = round1(fastest)
	metrics.SlowestSpeed = round1(slowest)

	bestTime := -1
	for i := range timeOfDay {
		if timeOfDay[i].count == 0 {
			continue
		}
		metrics.TimeOfDay = append(metrics.TimeOfDay, SpeedBucket{
			Name:         timeOfDayNames[i],
			PagesPerHour: round1(timeOfDay[i].mean()),
		})
		// Strictly-greater comparison in enumeration order breaks ties
		// toward the earlier bucket.
		if bestTime < 0 || timeOfDay[i].mean() > timeOfDay[bestTime].mean() {
			bestTime = i
		}
	}
	if bestTime >= 0 {
		metrics.BestTimeOfDay = timeOfDayNames[bestTime]
	}

	bestDay := -1
	for i := range weekly {
		if weekly[i].count == 0 {
			continue
		}
		metrics.Weekly = append(metrics.Weekly, WeekdayBucket{
			Name:         time.Weekday(i).String(),
			PagesPerHour: round1(weekly[i].mean()),
			TotalPages:   weekly[i].pages,
		})
		if bestDay < 0 || weekly[i].mean() > weekly[bestDay].mean() {
			bestDay = i
		}
	}
	if bestDay >= 0 {
		metrics.BestDayOfWeek = time.Weekday(bestDay).String()
	}

	return metrics
}
