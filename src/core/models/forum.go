package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ForumStatusOpen   = "open"
	ForumStatusClosed = "closed"
)

type Forum struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null" json:"userId"`
	Username    string    `gorm:"column:username;type:text;not null" json:"username"`
	Title       string    `gorm:"column:title;type:text;not null" json:"title"`
	Description string    `gorm:"column:description;type:text;not null" json:"description"`
	Bounty      float64   `gorm:"column:bounty;type:float8;not null;default:0" json:"bounty"`
	Status      string    `gorm:"column:status;type:text;not null;default:'open'" json:"status"`
	Comments    []Comment `gorm:"foreignKey:ForumID;references:ID" json:"comments"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (Forum) TableName() string {
	return "forums"
}

type Comment struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	ForumID        uuid.UUID `gorm:"column:forum_id;type:uuid;index;not null" json:"forumId"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null" json:"userId"`
	Username       string    `gorm:"column:username;type:text;not null" json:"username"`
	Content        string    `gorm:"column:content;type:text;not null" json:"content"`
	Upvotes        int       `gorm:"column:upvotes;type:int;not null;default:0" json:"upvotes"`
	Downvotes      int       `gorm:"column:downvotes;type:int;not null;default:0" json:"downvotes"`
	ReceivedBounty float64   `gorm:"column:received_bounty;type:float8;not null;default:0" json:"receivedBounty"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (Comment) TableName() string {
	return "comments"
}
