package forums

import (
	"errors"

	"questboard/src/core/helpers"
	"questboard/src/core/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

func (h *Handler) caller(c *fiber.Ctx) (*models.User, error) {
	username, ok := c.Locals("username").(string)
	if !ok || username == "" {
		return nil, helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or missing username", nil)
	}
	user := new(models.User)
	if err := h.DB.Where("username = ?", username).First(user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helpers.HandleError(c, fiber.StatusNotFound, "User not found", err)
		}
		return nil, helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch user", err)
	}
	return user, nil
}

type createForumRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Bounty      float64 `json:"bounty" validate:"gte=0"`
}

func (h *Handler) CreateForum(c *fiber.Ctx) error {
	user, err := h.caller(c)
	if user == nil {
		return err
	}

	body := new(createForumRequest)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid forum payload", err)
	}

	forum := models.Forum{
		ID:          uuid.New(),
		UserID:      user.ID,
		Username:    user.Username,
		Title:       body.Title,
		Description: body.Description,
		Bounty:      body.Bounty,
		Status:      models.ForumStatusOpen,
	}
	if err := h.DB.Create(&forum).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to create forum", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusCreated, "Forum created successfully", forum)
}

func (h *Handler) GetForums(c *fiber.Ctx) error {
	var forums []models.Forum
	if err := h.DB.Preload("Comments").Order("created_at DESC").Find(&forums).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch forums", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Forums fetched successfully", forums)
}

func (h *Handler) GetForumByID(c *fiber.Ctx) error {
	forumID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid forum ID format", err)
	}

	var forum models.Forum
	if err := h.DB.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("comments.created_at ASC")
	}).First(&forum, "id = ?", forumID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, "Forum not found", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch forum", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Forum fetched successfully", forum)
}

type createCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *Handler) CreateComment(c *fiber.Ctx) error {
	user, err := h.caller(c)
	if user == nil {
		return err
	}

	forumID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid forum ID format", err)
	}

	body := new(createCommentRequest)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Comment content is required", err)
	}

	var forum models.Forum
	if err := h.DB.First(&forum, "id = ?", forumID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, "Forum not found", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch forum", err)
	}

	comment := models.Comment{
		ID:       uuid.New(),
		ForumID:  forum.ID,
		UserID:   user.ID,
		Username: user.Username,
		Content:  body.Content,
	}
	if err := h.DB.Create(&comment).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to create comment", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusCreated, "Comment created successfully", comment)
}

type voteRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// VoteComment increments the up or down counter; votes are append-only.
func (h *Handler) VoteComment(c *fiber.Ctx) error {
	if user, err := h.caller(c); user == nil {
		return err
	}

	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid comment ID format", err)
	}

	body := new(voteRequest)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Vote direction must be up or down", err)
	}

	column := "upvotes"
	if body.Direction == "down" {
		column = "downvotes"
	}

	result := h.DB.Model(&models.Comment{}).Where("id = ?", commentID).
		Update(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to record vote", result.Error)
	}
	if result.RowsAffected == 0 {
		return helpers.HandleError(c, fiber.StatusNotFound, "Comment not found", nil)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Vote recorded successfully", nil)
}
