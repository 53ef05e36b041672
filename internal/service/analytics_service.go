package service

import (
	"context"
	"edutrack_backend/internal/config"
	"edutrack_backend/internal/model"
	"math"
	"sort"
)

// BucketMode selects the score distribution boundaries.
type BucketMode string

const (
	// BucketUniform uses half-open buckets [0,20) [20,40) [40,60) [60,80) and a closed [80,100].
	BucketUniform BucketMode = "uniform"
	// BucketObserved uses the inclusive ranges 0-20, 21-40, 41-60, 61-80, 81-100 on the
	// rounded percentage.
	BucketObserved BucketMode = "observed"
)

type scoreBucket struct {
	label    string
	min, max float64
}

var uniformBuckets = []scoreBucket{
	{"0-20%", 0, 20},
	{"20-40%", 20, 40},
	{"40-60%", 40, 60},
	{"60-80%", 60, 80},
	{"80-100%", 80, 100},
}

var observedBuckets = []scoreBucket{
	{"0-20%", 0, 20},
	{"21-40%", 21, 40},
	{"41-60%", 41, 60},
	{"61-80%", 61, 80},
	{"81-100%", 81, 100},
}

type timeBucket struct {
	label    string
	min, max int // minutes, inclusive; max < 0 means unbounded
}

var timeBuckets = []timeBucket{
	{"0-10min", 0, 10},
	{"11-20min", 11, 20},
	{"21-30min", 21, 30},
	{"31+ min", 31, -1},
}

type AnalyticsService struct {
	Quizzes  QuizStore
	Attempts AttemptStore
	Mode     BucketMode
}

func NewAnalyticsService(quizzes QuizStore, attempts AttemptStore, cfg *config.Config) *AnalyticsService {
	return &AnalyticsService{
		Quizzes:  quizzes,
		Attempts: attempts,
		Mode:     BucketMode(cfg.Analytics.BucketMode),
	}
}

// GetQuizAnalytics aggregates the completed attempts of one quiz.
func (s *AnalyticsService) GetQuizAnalytics(ctx context.Context, quizID string) (*model.QuizAnalytics, error) {
	quiz, err := s.Quizzes.FindQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.Attempts.ListCompletedAttempts(ctx, quizID)
	if err != nil {
		return nil, err
	}

	questions, err := s.Quizzes.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}

	answerAggs, err := s.Attempts.AggregateQuestionAnswers(ctx, quizID)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.AttemptSummary, len(attempts))
	scoredSum, scoredCount := 0, 0
	for i, a := range attempts {
		score := 0
		if a.Score != nil {
			score = *a.Score
			scoredSum += score
			scoredCount++
		}
		summaries[i] = model.AttemptSummary{
			ID:          a.ID,
			StudentName: a.StudentName,
			Score:       score,
			TotalPoints: a.TotalPoints,
			StartedAt:   a.StartedAt,
			SubmittedAt: a.SubmittedAt,
		}
	}

	stats := make([]model.QuestionStat, len(questions))
	for i, q := range questions {
		agg := answerAggs[q.ID]
		stats[i] = model.QuestionStat{
			QuestionID:    q.ID,
			QuestionText:  q.QuestionText,
			CorrectCount:  agg.CorrectCount,
			TotalAttempts: agg.TotalCount,
			Accuracy:      roundPercent(float64(agg.CorrectCount), float64(agg.TotalCount)),
		}
	}

	return &model.QuizAnalytics{
		Quiz: model.QuizWithStats{
			Quiz:           *quiz,
			QuestionsCount: len(questions),
			Submissions:    len(attempts),
			AverageScore:   AverageScorePercent(scoredSum, scoredCount, quiz.TotalPoints),
		},
		Attempts:          summaries,
		QuestionStats:     stats,
		ScoreDistribution: ScoreDistribution(attempts, s.Mode),
		TimeStats:         CompletionTimeStats(attempts),
	}, nil
}

// attemptPercent is score / total_points * 100, 0 when the attempt is worth nothing.
func attemptPercent(a model.QuizAttempt) float64 {
	if a.Score == nil || a.TotalPoints <= 0 {
		return 0
	}
	return float64(*a.Score) / float64(a.TotalPoints) * 100
}

// ScoreDistribution counts attempts per percentage bucket. Every mode returns all five
// buckets, including empty ones.
func ScoreDistribution(attempts []model.QuizAttempt, mode BucketMode) []model.RangeCount {
	buckets := uniformBuckets
	if mode == BucketObserved {
		buckets = observedBuckets
	}

	out := make([]model.RangeCount, len(buckets))
	for i, b := range buckets {
		out[i] = model.RangeCount{Range: b.label}
	}

	for _, a := range attempts {
		pct := attemptPercent(a)
		if mode == BucketObserved {
			pct = math.Round(pct)
		}
		if idx := bucketIndex(buckets, pct, mode); idx >= 0 {
			out[idx].Count++
		}
	}
	return out
}

func bucketIndex(buckets []scoreBucket, pct float64, mode BucketMode) int {
	last := len(buckets) - 1
	for i, b := range buckets {
		if mode == BucketObserved {
			if pct >= b.min && pct <= b.max {
				return i
			}
			continue
		}
		if pct >= b.min && (pct < b.max || (i == last && pct <= b.max)) {
			return i
		}
	}
	return -1
}

// CompletionTimeStats measures started_at to submitted_at in whole minutes.
func CompletionTimeStats(attempts []model.QuizAttempt) model.TimeStats {
	dist := make([]model.RangeCount, len(timeBuckets))
	for i, b := range timeBuckets {
		dist[i] = model.RangeCount{Range: b.label}
	}

	var minutes []int
	for _, a := range attempts {
		if a.SubmittedAt == nil {
			continue
		}
		d := a.SubmittedAt.Sub(a.StartedAt)
		if d < 0 {
			d = 0
		}
		m := int(math.Round(d.Minutes()))
		minutes = append(minutes, m)

		for i, b := range timeBuckets {
			if m >= b.min && (b.max < 0 || m <= b.max) {
				dist[i].Count++
				break
			}
		}
	}

	stats := model.TimeStats{TimeDistribution: dist}
	if len(minutes) == 0 {
		return stats
	}

	sum := 0
	for _, m := range minutes {
		sum += m
	}
	stats.AverageTime = roundDiv(sum, len(minutes))

	sort.Ints(minutes)
	mid := len(minutes) / 2
	if len(minutes)%2 == 1 {
		stats.MedianTime = minutes[mid]
	} else {
		stats.MedianTime = roundDiv(minutes[mid-1]+minutes[mid], 2)
	}
	return stats
}

func roundDiv(a, b int) int {
	return int(math.Round(float64(a) / float64(b)))
}
