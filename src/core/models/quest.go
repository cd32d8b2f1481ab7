package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	QuestStatusOpen   = "open"
	QuestStatusClosed = "closed"
	QuestStatusDraft  = "draft"
)

// DefaultThumbnail is used when a quest is created without one.
const DefaultThumbnail = "https://placehold.co/600x400?text=Quest"

// QuestTags is the fixed interest-tag vocabulary; quests must carry 2 to 6 of these.
var QuestTags = []string{
	"Technology", "Science", "Health", "Fitness", "Travel",
	"Food", "Music", "Art", "Photography", "Gaming",
	"Fashion", "Movies", "Books", "Writing", "Sports",
	"Automobiles", "Finance", "Business", "Marketing", "Real_Estate",
	"Parenting", "Education", "Self_Improvement", "Personal_Finance", "Investment",
	"Cryptocurrency", "Space", "Nature", "Wildlife", "Environment",
	"DIY", "Home_Decor", "Gardening", "Pets", "Social_Media",
	"Psychology", "Philosophy", "History", "Politics", "Spirituality",
	"Adventure", "Camping", "Hiking", "Extreme_Sports", "Cooking",
	"Dancing", "Stand_Up_Comedy", "Astrology", "Mythology", "Volunteering",
}

// IsQuestTag reports whether tag belongs to the fixed vocabulary.
func IsQuestTag(tag string) bool {
	for _, t := range QuestTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Question is a single multi-choice question; options are plain text or image URLs.
type Question struct {
	ID           uuid.UUID `json:"id"`
	QuestionText string    `json:"questionText"`
	Options      []string  `json:"options"`
}

type QuestionList []Question

func (ql *QuestionList) Scan(value interface{}) error {
	return json.Unmarshal(value.([]byte), ql)
}

func (ql QuestionList) Value() (driver.Value, error) {
	if ql == nil {
		ql = QuestionList{}
	}
	return json.Marshal(ql)
}

type Quest struct {
	ID          uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	Thumbnail   string       `gorm:"column:thumbnail;type:text;not null" json:"thumbnail"`
	Title       string       `gorm:"column:title;type:text;not null" json:"title"`
	Description string       `gorm:"column:description;type:text;not null;default:''" json:"description"`
	Questions   QuestionList `gorm:"column:questions;type:jsonb;not null;default:'[]'" json:"questions"`
	Bounty      float64      `gorm:"column:bounty;type:float8;not null" json:"bounty"`
	Attempts    int          `gorm:"column:attempts;type:int;not null" json:"attempts"`
	Status      string       `gorm:"column:status;type:text;not null;default:'open'" json:"status"`
	CreatedBy   uuid.UUID    `gorm:"column:created_by;type:uuid;not null" json:"createdBy"`
	Tags        StringList   `gorm:"column:tags;type:jsonb;not null;default:'[]'" json:"tags"`
	CreatedAt   time.Time    `gorm:"column:created_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (Quest) TableName() string {
	return "quests"
}
