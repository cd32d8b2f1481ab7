package queststats

import (
	"log"
	"time"

	"questboard/src/core/models"

	"github.com/google/uuid"
)

// platformFee is the share of each payout retained by the platform.
const platformFee = 0.05

// AnswerInput is one selected option; Option is the 1-based position
// within the question's option list.
type AnswerInput struct {
	QuestionID uuid.UUID `json:"questionId" validate:"required"`
	Option     int       `json:"option" validate:"required,gt=0"`
}

// recordSubmission adds the submitter and their selections to the stats.
// Returns false without mutating anything when the submitter has already
// answered this quest. Answers referencing unknown questions or options
// are logged and skipped; sibling counters are untouched.
func recordSubmission(stats *models.QuestStats, username string, answers []AnswerInput) bool {
	if stats.AnsweredBy.Contains(username) {
		return false
	}

	stats.AnsweredBy = append(stats.AnsweredBy, username)
	stats.AnsweredCount++

	for _, answer := range answers {
		questionStat := findQuestionStat(stats, answer.QuestionID)
		if questionStat == nil {
			log.Printf("question %s not found in quest stats for quest %s", answer.QuestionID, stats.QuestID)
			continue
		}

		matched := false
		for i := range questionStat.OptionStats {
			if questionStat.OptionStats[i].Option == answer.Option {
				questionStat.OptionStats[i].SelectedCount++
				matched = true
				break
			}
		}
		if !matched {
			log.Printf("option %d not found for question %s", answer.Option, answer.QuestionID)
		}
	}

	return true
}

func findQuestionStat(stats *models.QuestStats, questionID uuid.UUID) *models.QuestionStat {
	for i := range stats.QuestionStats {
		if stats.QuestionStats[i].QuestionID == questionID {
			return &stats.QuestionStats[i]
		}
	}
	return nil
}

// settle pays the submitter their share of the remaining pool and books
// the mutations on both records. The reward is recomputed from the
// current bounty and attempts on every submission, so earlier payouts
// shrink the basis for later ones. Callers must reject exhausted quests
// before calling; Attempts must be positive here.
func settle(quest *models.Quest, user *models.User, now time.Time) float64 {
	reward := quest.Bounty * (1 - platformFee) / float64(quest.Attempts)

	user.Balance += reward
	user.Earnings += reward
	user.EarningsHistory = append(user.EarningsHistory, models.EarningsEntry{Amount: reward, Time: now})
	user.CompletedQuests = append(user.CompletedQuests, quest.ID.String())

	quest.Bounty -= reward
	quest.Attempts--
	if quest.Attempts == 0 {
		quest.Status = models.QuestStatusClosed
	}

	return reward
}
