package queststats

import (
	"testing"
	"time"

	"questboard/src/core/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQuest(bounty float64, attempts int) *models.Quest {
	return &models.Quest{
		ID:       uuid.New(),
		Title:    "test quest",
		Bounty:   bounty,
		Attempts: attempts,
		Status:   models.QuestStatusOpen,
		Questions: models.QuestionList{
			{ID: uuid.New(), QuestionText: "q1", Options: []string{"a", "b", "c"}},
			{ID: uuid.New(), QuestionText: "q2", Options: []string{"yes", "no"}},
		},
	}
}

func newTestStats(quest *models.Quest) *models.QuestStats {
	stats := &models.QuestStats{
		ID:         uuid.New(),
		QuestID:    quest.ID,
		AnsweredBy: models.StringList{},
	}
	for _, q := range quest.Questions {
		qs := models.QuestionStat{QuestionID: q.ID}
		for i := range q.Options {
			qs.OptionStats = append(qs.OptionStats, models.OptionStat{Option: i + 1})
		}
		stats.QuestionStats = append(stats.QuestionStats, qs)
	}
	return stats
}

func TestSettleSequence(t *testing.T) {
	quest := newTestQuest(100, 2)
	alice := &models.User{ID: uuid.New(), Username: "alice"}
	bob := &models.User{ID: uuid.New(), Username: "bob"}
	now := time.Now()

	// First submission: (100 * 0.95) / 2
	reward := settle(quest, alice, now)
	assert.InDelta(t, 47.5, reward, 1e-9)
	assert.InDelta(t, 52.5, quest.Bounty, 1e-9)
	assert.Equal(t, 1, quest.Attempts)
	assert.Equal(t, models.QuestStatusOpen, quest.Status)

	// Second submission: (52.5 * 0.95) / 1, pool exhausted
	reward = settle(quest, bob, now)
	assert.InDelta(t, 49.875, reward, 1e-9)
	assert.Equal(t, 0, quest.Attempts)
	assert.Equal(t, models.QuestStatusClosed, quest.Status)

	// Recomputing the divisor per submission does not conserve 95% of the
	// initial pool; pin the actual total.
	assert.InDelta(t, 97.375, alice.Earnings+bob.Earnings, 1e-9)
}

func TestSettleCreditsUser(t *testing.T) {
	quest := newTestQuest(100, 4)
	user := &models.User{ID: uuid.New(), Username: "alice"}
	now := time.Now()

	reward := settle(quest, user, now)

	assert.InDelta(t, 23.75, reward, 1e-9)
	assert.Equal(t, reward, user.Balance)
	assert.Equal(t, reward, user.Earnings)
	require.Len(t, user.EarningsHistory, 1)
	assert.Equal(t, reward, user.EarningsHistory[0].Amount)
	assert.Equal(t, now, user.EarningsHistory[0].Time)
	require.Len(t, user.CompletedQuests, 1)
	assert.Equal(t, quest.ID.String(), user.CompletedQuests[0])
}

func TestRecordSubmissionDeduplicates(t *testing.T) {
	quest := newTestQuest(100, 2)
	stats := newTestStats(quest)
	answers := []AnswerInput{{QuestionID: quest.Questions[0].ID, Option: 1}}

	require.True(t, recordSubmission(stats, "alice", answers))
	assert.Equal(t, 1, stats.AnsweredCount)
	assert.Equal(t, 1, stats.QuestionStats[0].OptionStats[0].SelectedCount)

	// Second submission from the same identity changes nothing.
	require.False(t, recordSubmission(stats, "alice", answers))
	assert.Equal(t, 1, stats.AnsweredCount)
	assert.Equal(t, 1, stats.QuestionStats[0].OptionStats[0].SelectedCount)
}

func TestRecordSubmissionCountsPerOption(t *testing.T) {
	quest := newTestQuest(100, 3)
	stats := newTestStats(quest)

	recordSubmission(stats, "alice", []AnswerInput{
		{QuestionID: quest.Questions[0].ID, Option: 2},
		{QuestionID: quest.Questions[1].ID, Option: 1},
	})
	recordSubmission(stats, "bob", []AnswerInput{
		{QuestionID: quest.Questions[0].ID, Option: 2},
		{QuestionID: quest.Questions[1].ID, Option: 2},
	})

	assert.Equal(t, 2, stats.AnsweredCount)
	assert.Equal(t, []string{"alice", "bob"}, []string(stats.AnsweredBy))
	assert.Equal(t, 0, stats.QuestionStats[0].OptionStats[0].SelectedCount)
	assert.Equal(t, 2, stats.QuestionStats[0].OptionStats[1].SelectedCount)
	assert.Equal(t, 1, stats.QuestionStats[1].OptionStats[0].SelectedCount)
	assert.Equal(t, 1, stats.QuestionStats[1].OptionStats[1].SelectedCount)
}

func TestRecordSubmissionSkipsUnknownReferences(t *testing.T) {
	quest := newTestQuest(100, 2)
	stats := newTestStats(quest)

	ok := recordSubmission(stats, "alice", []AnswerInput{
		{QuestionID: uuid.New(), Option: 1},              // unknown question
		{QuestionID: quest.Questions[0].ID, Option: 99},  // unknown option
		{QuestionID: quest.Questions[1].ID, Option: 2},   // valid
	})

	require.True(t, ok)
	assert.Equal(t, 1, stats.AnsweredCount)
	// Only the valid answer moved a counter.
	for _, os := range stats.QuestionStats[0].OptionStats {
		assert.Equal(t, 0, os.SelectedCount)
	}
	assert.Equal(t, 1, stats.QuestionStats[1].OptionStats[1].SelectedCount)
}

func TestSettleNeverReopensClosedQuest(t *testing.T) {
	quest := newTestQuest(100, 1)
	user := &models.User{ID: uuid.New(), Username: "alice"}

	settle(quest, user, time.Now())
	assert.Equal(t, models.QuestStatusClosed, quest.Status)
	assert.Equal(t, 0, quest.Attempts)
}
