package service

import (
	"edutrack_backend/internal/model"
	"edutrack_backend/internal/util"
	"fmt"
	"math"
)

// RemainderPolicy decides what happens to total_points % question_count when a quiz's
// budget is split into per-question points.
type RemainderPolicy string

const (
	// RemainderFloor gives every question floor(total/count) and drops the remainder.
	RemainderFloor RemainderPolicy = "floor"
	// RemainderDistribute gives the first total%count questions one extra point.
	RemainderDistribute RemainderPolicy = "distribute"
	// RemainderExact rejects budgets that do not divide evenly.
	RemainderExact RemainderPolicy = "exact"
)

// ScoreAnswers sums the points of every answer whose selected index matches its key.
// Answers without a key entry score nothing.
func ScoreAnswers(answers []model.AnswerSelection, key map[string]model.AnswerKey) int {
	total := 0
	for _, a := range answers {
		k, ok := key[a.QuestionID]
		if !ok {
			continue
		}
		if a.SelectedIndex == k.CorrectIndex {
			total += k.Points
		}
	}
	return total
}

// PerQuestionPoints splits total across count questions. The result is frozen into the
// question rows at creation time.
func PerQuestionPoints(total, count int, policy RemainderPolicy) ([]int, error) {
	if count <= 0 {
		return nil, util.ErrNoQuestions
	}
	if total < 0 {
		return nil, fmt.Errorf("%w: total points must not be negative", util.ErrInvalidInput)
	}

	base := total / count
	rem := total % count

	points := make([]int, count)
	for i := range points {
		points[i] = base
	}

	switch policy {
	case RemainderFloor, "":
	case RemainderDistribute:
		for i := 0; i < rem; i++ {
			points[i]++
		}
	case RemainderExact:
		if rem != 0 {
			return nil, fmt.Errorf("%w: %d over %d questions", util.ErrPointsNotDivisible, total, count)
		}
	default:
		return nil, fmt.Errorf("unknown remainder policy %q", policy)
	}
	return points, nil
}

// roundPercent returns round(part/whole*100), or 0 when whole is 0.
func roundPercent(part, whole float64) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(part / whole * 100))
}

// AverageScorePercent is the mean raw score of the scored attempts as a rounded percentage
// of totalPoints. It is nil when nothing is scored or the quiz is worth no points.
func AverageScorePercent(scoreSum, scoredCount, totalPoints int) *int {
	if scoredCount == 0 || totalPoints <= 0 {
		return nil
	}
	mean := float64(scoreSum) / float64(scoredCount)
	pct := roundPercent(mean, float64(totalPoints))
	return &pct
}
