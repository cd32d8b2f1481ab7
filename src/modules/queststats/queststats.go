package queststats

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"questboard/src/core/cache"
	"questboard/src/core/helpers"
	"questboard/src/core/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	errStatsNotFound   = errors.New("quest stats not found")
	errQuestNotFound   = errors.New("quest not found")
	errUserNotFound    = errors.New("user not found")
	errQuestExhausted  = errors.New("quest is closed or has no attempts left")
	errAlreadyAnswered = errors.New("quest already answered by this user")
)

type Handler struct {
	DB          *gorm.DB
	Leaderboard *cache.LeaderboardCache
}

func NewHandler(db *gorm.DB, leaderboard *cache.LeaderboardCache) *Handler {
	return &Handler{DB: db, Leaderboard: leaderboard}
}

func (h *Handler) GetQuestStats(c *fiber.Ctx) error {
	questID, err := uuid.Parse(c.Params("questId"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid quest ID format", err)
	}

	var stats models.QuestStats
	if err := h.DB.Where("quest_id = ?", questID).First(&stats).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, "Quest stats not found", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch quest stats", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Quest stats fetched successfully", stats)
}

type submitAnswersRequest struct {
	Answers []AnswerInput `json:"answers" validate:"required,min=1,dive"`
}

// parseAnswers accepts both wire shapes: the bare JSON array the web
// client posts, and the {"answers":[...]} wrapper.
func parseAnswers(body []byte) ([]AnswerInput, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var answers []AnswerInput
		if err := json.Unmarshal(trimmed, &answers); err != nil {
			return nil, err
		}
		return answers, nil
	}

	req := new(submitAnswersRequest)
	if err := json.Unmarshal(body, req); err != nil {
		return nil, err
	}
	return req.Answers, nil
}

// SubmitAnswers records a submission and pays the submitter a pro-rata
// share of the remaining bounty. Stats, user, and quest are updated in a
// single transaction; the stats row is locked for the duration, so two
// concurrent submissions from the same identity cannot both pass the
// answeredBy guard.
func (h *Handler) SubmitAnswers(c *fiber.Ctx) error {
	username, ok := c.Locals("username").(string)
	if !ok || username == "" {
		return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or missing username", nil)
	}

	questID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid quest ID format", err)
	}

	answers, err := parseAnswers(c.Body())
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(&submitAnswersRequest{Answers: answers}); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid answers payload", err)
	}

	var reward float64
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var stats models.QuestStats
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("quest_id = ?", questID).First(&stats).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errStatsNotFound
			}
			return err
		}

		var quest models.Quest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&quest, "id = ?", questID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errQuestNotFound
			}
			return err
		}
		if quest.Status != models.QuestStatusOpen || quest.Attempts <= 0 {
			return errQuestExhausted
		}

		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("username = ?", username).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUserNotFound
			}
			return err
		}

		if !recordSubmission(&stats, username, answers) {
			return errAlreadyAnswered
		}
		reward = settle(&quest, &user, time.Now())

		if err := tx.Save(&stats).Error; err != nil {
			return fmt.Errorf("failed to save quest stats: %w", err)
		}
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}
		if err := tx.Save(&quest).Error; err != nil {
			return fmt.Errorf("failed to save quest: %w", err)
		}
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, errStatsNotFound), errors.Is(err, errQuestNotFound), errors.Is(err, errUserNotFound):
		return helpers.HandleError(c, fiber.StatusNotFound, err.Error(), err)
	case errors.Is(err, errQuestExhausted), errors.Is(err, errAlreadyAnswered):
		return helpers.HandleError(c, fiber.StatusConflict, err.Error(), err)
	default:
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to submit answers", err)
	}

	// The leaderboard ordering changed; drop the cached copy.
	h.Leaderboard.Invalidate(c.Context())

	return helpers.HandleSuccess(c, fiber.StatusOK, "Answers submitted successfully", fiber.Map{
		"bountyEarned": reward,
	})
}
