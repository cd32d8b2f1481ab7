package quests

import (
	"testing"

	"questboard/src/core/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeQuestStats(t *testing.T) {
	quest := models.Quest{
		ID: uuid.New(),
		Questions: models.QuestionList{
			{ID: uuid.New(), QuestionText: "q1", Options: []string{"a", "b", "c"}},
			{ID: uuid.New(), QuestionText: "q2", Options: []string{"yes", "no"}},
		},
	}

	stats := initializeQuestStats(&quest)

	assert.Equal(t, quest.ID, stats.QuestID)
	assert.Equal(t, 0, stats.AnsweredCount)
	assert.Empty(t, stats.AnsweredBy)
	require.Len(t, stats.QuestionStats, 2)

	require.Len(t, stats.QuestionStats[0].OptionStats, 3)
	require.Len(t, stats.QuestionStats[1].OptionStats, 2)
	for qi, qs := range stats.QuestionStats {
		assert.Equal(t, quest.Questions[qi].ID, qs.QuestionID)
		for oi, os := range qs.OptionStats {
			assert.Equal(t, oi+1, os.Option, "options are addressed by 1-based position")
			assert.Equal(t, 0, os.SelectedCount)
		}
	}
}

func TestIsQuestTag(t *testing.T) {
	assert.True(t, models.IsQuestTag("Technology"))
	assert.True(t, models.IsQuestTag("Stand_Up_Comedy"))
	assert.False(t, models.IsQuestTag("technology"))
	assert.False(t, models.IsQuestTag("NotATag"))
}
