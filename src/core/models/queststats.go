package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
)

// OptionStat counts selections of one answer option. Options are addressed
// by their 1-based position within the question.
type OptionStat struct {
	Option        int `json:"option"`
	SelectedCount int `json:"selectedCount"`
}

type QuestionStat struct {
	QuestionID  uuid.UUID    `json:"questionId"`
	OptionStats []OptionStat `json:"optionStats"`
}

type QuestionStatList []QuestionStat

func (qs *QuestionStatList) Scan(value interface{}) error {
	return json.Unmarshal(value.([]byte), qs)
}

func (qs QuestionStatList) Value() (driver.Value, error) {
	if qs == nil {
		qs = QuestionStatList{}
	}
	return json.Marshal(qs)
}

// QuestStats aggregates answer-option tallies for one quest. answeredBy is
// the at-most-once submitter set backing the duplicate-submission guard.
type QuestStats struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	QuestID       uuid.UUID        `gorm:"column:quest_id;type:uuid;uniqueIndex;not null" json:"questId"`
	AnsweredCount int              `gorm:"column:answered_count;type:int;not null;default:0" json:"answeredCount"`
	AnsweredBy    StringList       `gorm:"column:answered_by;type:jsonb;not null;default:'[]'" json:"answeredBy"`
	QuestionStats QuestionStatList `gorm:"column:question_stats;type:jsonb;not null;default:'[]'" json:"questionStats"`
}

func (QuestStats) TableName() string {
	return "quest_stats"
}
