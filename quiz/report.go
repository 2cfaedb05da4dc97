package quiz

import (
	"sort"

	"certquiz"
)

// TopicPerformance is the per-topic score breakdown of a session.
type TopicPerformance struct {
	Topic      string
	Total      int
	Correct    int
	Percentage float64
}

// TimeStats summarizes per-question answer times in seconds.
type TimeStats struct {
	Fastest float64
	Slowest float64
	Median  float64
}

// TopicBreakdown computes per-topic performance from a finished
// session, sorted by topic name. Skipped questions count as incorrect.
func TopicBreakdown(session *certquiz.QuizSession) []TopicPerformance {
	byID := make(map[string]*certquiz.Question, len(session.Questions))
	for _, q := range session.Questions {
		byID[q.ID] = q
	}

	totals := make(map[string]*TopicPerformance)
	for _, answer := range session.UserAnswers {
		q, ok := byID[answer.QuestionID]
		if !ok {
			continue
		}
		perf, ok := totals[q.Topic]
		if !ok {
			perf = &TopicPerformance{Topic: q.Topic}
			totals[q.Topic] = perf
		}
		perf.Total++
		if answer.IsCorrect {
			perf.Correct++
		}
	}

	breakdown := make([]TopicPerformance, 0, len(totals))
	for _, perf := range totals {
		if perf.Total > 0 {
			perf.Percentage = float64(perf.Correct) / float64(perf.Total) * 100
		}
		breakdown = append(breakdown, *perf)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Topic < breakdown[j].Topic
	})
	return breakdown
}

// Times computes fastest, slowest, and median answer times over the
// answered (non-skipped) questions. Returns zeros when every question
// was skipped.
func Times(session *certquiz.QuizSession) TimeStats {
	var times []float64
	for _, answer := range session.UserAnswers {
		if answer.SelectedChoice == "" {
			continue
		}
		times = append(times, answer.TimeTaken)
	}
	if len(times) == 0 {
		return TimeStats{}
	}

	sort.Float64s(times)
	stats := TimeStats{
		Fastest: times[0],
		Slowest: times[len(times)-1],
	}
	mid := len(times) / 2
	if len(times)%2 == 1 {
		stats.Median = times[mid]
	} else {
		stats.Median = (times[mid-1] + times[mid]) / 2
	}
	return stats
}
