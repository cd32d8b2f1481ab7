package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EarningsEntry is one credited reward in the user's history.
type EarningsEntry struct {
	Amount float64   `json:"amount"`
	Time   time.Time `json:"time"`
}

type EarningsHistory []EarningsEntry

func (eh *EarningsHistory) Scan(value interface{}) error {
	return json.Unmarshal(value.([]byte), eh)
}

func (eh EarningsHistory) Value() (driver.Value, error) {
	if eh == nil {
		eh = EarningsHistory{}
	}
	return json.Marshal(eh)
}

type StringList []string

func (sl *StringList) Scan(value interface{}) error {
	return json.Unmarshal(value.([]byte), sl)
}

func (sl StringList) Value() (driver.Value, error) {
	if sl == nil {
		sl = StringList{}
	}
	return json.Marshal(sl)
}

func (sl StringList) Contains(s string) bool {
	for _, v := range sl {
		if v == s {
			return true
		}
	}
	return false
}

type User struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	Username        string          `gorm:"column:username;type:text;unique;not null" json:"username"`
	Email           string          `gorm:"column:email;type:text;unique;not null" json:"email"`
	Password        string          `gorm:"column:password;type:text;not null" json:"-"`
	Balance         float64         `gorm:"column:balance;type:float8;not null;default:0" json:"balance"`
	Earnings        float64         `gorm:"column:earnings;type:float8;not null;default:0" json:"earnings"`
	EarningsHistory EarningsHistory `gorm:"column:earnings_history;type:jsonb;not null;default:'[]'" json:"earningsHistory"`
	CompletedQuests StringList      `gorm:"column:completed_quests;type:jsonb;not null;default:'[]'" json:"completedQuests"`
	JoinAs          string          `gorm:"column:join_as;type:text;not null;default:''" json:"joinAs"`
	AgeGroup        string          `gorm:"column:age_group;type:text;not null;default:''" json:"ageGroup"`
	Country         string          `gorm:"column:country;type:text;not null;default:''" json:"country"`
	Tags            StringList      `gorm:"column:tags;type:jsonb;not null;default:'[]'" json:"tags"`
	Onboarded       bool            `gorm:"column:onboarded;type:boolean;not null;default:false" json:"onboarded"`
	CreatedAt       time.Time       `gorm:"column:created_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
