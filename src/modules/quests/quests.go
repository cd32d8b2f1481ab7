package quests

import (
	"errors"
	"fmt"

	"questboard/src/core/helpers"
	"questboard/src/core/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

type questionInput struct {
	QuestionText string   `json:"questionText" validate:"required"`
	Options      []string `json:"options" validate:"required,min=1,dive,required"`
}

type createQuestRequest struct {
	Thumbnail   string          `json:"thumbnail"`
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Questions   []questionInput `json:"questions" validate:"required,min=1,dive"`
	Bounty      float64         `json:"bounty" validate:"required,gt=0"`
	Attempts    int             `json:"attempts" validate:"required,gt=0"`
	Status      string          `json:"status" validate:"omitempty,oneof=open draft"`
	Tags        []string        `json:"tags" validate:"required,min=2,max=6"`
}

// CreateQuest stores the quest and initializes its stats record in the
// same transaction, one zeroed counter per option.
func (h *Handler) CreateQuest(c *fiber.Ctx) error {
	username, ok := c.Locals("username").(string)
	if !ok || username == "" {
		return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or missing username", nil)
	}

	body := new(createQuestRequest)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid quest payload", err)
	}
	for _, tag := range body.Tags {
		if !models.IsQuestTag(tag) {
			return helpers.HandleError(c, fiber.StatusBadRequest, "Unknown tag: "+tag, nil)
		}
	}

	var creator models.User
	if err := h.DB.Where("username = ?", username).First(&creator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, "User not found", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch user", err)
	}

	quest := models.Quest{
		ID:          uuid.New(),
		Thumbnail:   body.Thumbnail,
		Title:       body.Title,
		Description: body.Description,
		Bounty:      body.Bounty,
		Attempts:    body.Attempts,
		Status:      body.Status,
		CreatedBy:   creator.ID,
		Tags:        models.StringList(body.Tags),
	}
	if quest.Thumbnail == "" {
		quest.Thumbnail = models.DefaultThumbnail
	}
	if quest.Status == "" {
		quest.Status = models.QuestStatusOpen
	}
	for _, q := range body.Questions {
		quest.Questions = append(quest.Questions, models.Question{
			ID:           uuid.New(),
			QuestionText: q.QuestionText,
			Options:      q.Options,
		})
	}

	stats := initializeQuestStats(&quest)

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quest).Error; err != nil {
			return fmt.Errorf("failed to create quest: %w", err)
		}
		if err := tx.Create(&stats).Error; err != nil {
			return fmt.Errorf("failed to create quest stats: %w", err)
		}
		return nil
	})
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to create quest", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusCreated, "Quest created successfully", quest)
}

// initializeQuestStats builds the zeroed tally record for a quest, one
// OptionStat per option addressed by its 1-based position.
func initializeQuestStats(quest *models.Quest) models.QuestStats {
	stats := models.QuestStats{
		ID:         uuid.New(),
		QuestID:    quest.ID,
		AnsweredBy: models.StringList{},
	}
	for _, question := range quest.Questions {
		questionStat := models.QuestionStat{QuestionID: question.ID}
		for i := range question.Options {
			questionStat.OptionStats = append(questionStat.OptionStats, models.OptionStat{Option: i + 1})
		}
		stats.QuestionStats = append(stats.QuestionStats, questionStat)
	}
	return stats
}

func (h *Handler) GetQuests(c *fiber.Ctx) error {
	var quests []models.Quest
	if err := h.DB.Where("status = ?", models.QuestStatusOpen).
		Order("created_at DESC").Find(&quests).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch quests", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Quests fetched successfully", quests)
}

func (h *Handler) GetQuestByID(c *fiber.Ctx) error {
	questID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid quest ID format", err)
	}

	var quest models.Quest
	if err := h.DB.First(&quest, "id = ?", questID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, "Quest not found", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch quest", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Quest fetched successfully", quest)
}

type addBountyRequest struct {
	NewBounty float64 `json:"newBounty" validate:"required,gt=0"`
}

// AddBounty lets the quest creator top up the remaining pool.
func (h *Handler) AddBounty(c *fiber.Ctx) error {
	username, ok := c.Locals("username").(string)
	if !ok || username == "" {
		return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or missing username", nil)
	}

	questID, err := uuid.Parse(c.Params("questId"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid quest ID format", err)
	}

	body := new(addBountyRequest)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Bounty top-up must be positive", err)
	}

	var caller models.User
	if err := h.DB.Where("username = ?", username).First(&caller).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusNotFound, "User not found", err)
	}

	var quest models.Quest
	if err := h.DB.First(&quest, "id = ?", questID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, "Quest not found", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch quest", err)
	}
	if quest.CreatedBy != caller.ID {
		return helpers.HandleError(c, fiber.StatusForbidden, "Only the quest creator can add bounty", nil)
	}

	// RETURNING picks up the post-update value even if a settlement
	// lands concurrently.
	if err := h.DB.Model(&quest).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "bounty"}}}).
		Update("bounty", gorm.Expr("bounty + ?", body.NewBounty)).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to add bounty", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Bounty added successfully", fiber.Map{
		"questId":   quest.ID,
		"newBounty": quest.Bounty,
	})
}
