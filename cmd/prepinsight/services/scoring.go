// Copyright 2024 PrepInsight Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package services

import (
	"math"
	"time"
)

// Experience awarded per activity.
const (
	XPLessonComplete    = 50
	XPPerCorrectAnswer  = 10
	XPPerTestSection    = 25
	XPPerKnownFlashcard = 2

	xpPerLevel = 500
)

// ScaledScore maps a correct/total ratio onto the 1-36 ACT scale.
func ScaledScore(correct int, total int) int {
	if total <= 0 {
		return 1
	}
	ratio := float64(correct) / float64(total)
	score := int(math.Round(1 + ratio*35))
	if score < 1 {
		score = 1
	}
	if score > 36 {
		score = 36
	}
	return score
}

// CompositeScore is the rounded mean of the per-section scaled scores.
func CompositeScore(sectionScores []int) int {
	if len(sectionScores) == 0 {
		return 1
	}
	sum := 0
	for _, s := range sectionScores {
		sum += s
	}
	return int(math.Round(float64(sum) / float64(len(sectionScores))))
}

// ClampEssayScore bounds a model-reported writing score to the 2-12 scale.
func ClampEssayScore(score float64) int {
	s := int(math.Round(score))
	if s < 2 {
		s = 2
	}
	if s > 12 {
		s = 12
	}
	return s
}

// Level is derived from total experience, starting at level 1.
func Level(xp int) int {
	return xp/xpPerLevel + 1
}

const dayFormat = "2006-01-02"

// NextStreak advances a daily streak given the last activity day
// ("2006-01-02", UTC) and the current time. Activity on the day after the
// last one extends the streak, same-day activity keeps it, anything else
// resets it to 1.
func NextStreak(lastActivityDate string, streak int, now time.Time) int {
	today := now.UTC().Format(dayFormat)
	if lastActivityDate == today {
		if streak < 1 {
			return 1
		}
		return streak
	}
	yesterday := now.UTC().AddDate(0, 0, -1).Format(dayFormat)
	if lastActivityDate == yesterday {
		return streak + 1
	}
	return 1
}
