package users

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"questboard/src/core/cache"
	"questboard/src/core/helpers"
	"questboard/src/core/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transferrer sends a payout to an address and returns the transaction
// signature. Satisfied by wallet.Client.
type Transferrer interface {
	Transfer(ctx context.Context, amount float64, to string) (string, error)
}

type Handler struct {
	DB          *gorm.DB
	Leaderboard *cache.LeaderboardCache
	Wallet      Transferrer
}

func NewHandler(db *gorm.DB, leaderboard *cache.LeaderboardCache, w Transferrer) *Handler {
	return &Handler{DB: db, Leaderboard: leaderboard, Wallet: w}
}

func (h *Handler) findByUsername(c *fiber.Ctx) (*models.User, error) {
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

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	user, err := h.findByUsername(c)
	if user == nil {
		return err
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "User profile retrieved successfully", user)
}

type onboardingRequest struct {
	JoinAs   string   `json:"joinAs" validate:"required"`
	Tags     []string `json:"tags" validate:"required,min=1,max=6"`
	AgeGroup string   `json:"ageGroup" validate:"required"`
	Country  string   `json:"country" validate:"required"`
}

// Onboarding records the profile attributes collected after signup.
func (h *Handler) Onboarding(c *fiber.Ctx) error {
	user, err := h.findByUsername(c)
	if user == nil {
		return err
	}

	body := new(onboardingRequest)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid onboarding payload", err)
	}

	updates := map[string]interface{}{
		"join_as":   body.JoinAs,
		"age_group": body.AgeGroup,
		"country":   body.Country,
		"tags":      models.StringList(body.Tags),
		"onboarded": true,
	}
	if err := h.DB.Model(user).Updates(updates).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to save onboarding details", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Onboarding completed successfully", nil)
}

// GetUserQuests lists the quests the caller has completed.
func (h *Handler) GetUserQuests(c *fiber.Ctx) error {
	user, err := h.findByUsername(c)
	if user == nil {
		return err
	}

	if len(user.CompletedQuests) == 0 {
		return helpers.HandleSuccess(c, fiber.StatusOK, "Completed quests fetched successfully", []models.Quest{})
	}

	var quests []models.Quest
	if err := h.DB.Where("id IN ?", []string(user.CompletedQuests)).
		Order("created_at DESC").Find(&quests).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch completed quests", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Completed quests fetched successfully", quests)
}

type withdrawRequest struct {
	PubKey string `json:"pubKey" validate:"required"`
}

var errNothingToWithdraw = errors.New("nothing to withdraw")

// sendWithdrawal enforces the positive-balance precondition and hands the
// full balance to the wallet. The check runs before any external call; an
// empty balance never reaches the collaborator.
func sendWithdrawal(ctx context.Context, w Transferrer, user *models.User, pubKey string) (string, float64, error) {
	if user.Balance <= 0 {
		return "", 0, errNothingToWithdraw
	}
	amount := user.Balance

	signature, err := w.Transfer(ctx, amount, pubKey)
	if err != nil {
		return "", 0, err
	}
	return signature, amount, nil
}

// Withdraw zeroes the caller's balance and hands it to the wallet client.
// On wallet failure the balance is left untouched.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	user, err := h.findByUsername(c)
	if user == nil {
		return err
	}

	body := new(withdrawRequest)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Recipient address is required", err)
	}

	signature, amount, err := sendWithdrawal(c.Context(), h.Wallet, user, body.PubKey)
	if errors.Is(err, errNothingToWithdraw) {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Nothing to withdraw", nil)
	}
	if err != nil {
		log.Printf("withdrawal transfer failed for %s: %v", user.Username, err)
		return helpers.HandleError(c, fiber.StatusBadGateway, "Withdrawal failed", nil)
	}

	if err := h.DB.Model(user).Update("balance", 0).Error; err != nil {
		// The transfer went out but the balance write failed; flag loudly.
		log.Printf("balance reset failed after transfer %s for %s: %v", signature, user.Username, err)
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to update balance", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Withdrawal successful", fiber.Map{
		"signature": signature,
		"amount":    amount,
	})
}

// LeaderboardEntry is the public slice of a user shown on the leaderboard.
type LeaderboardEntry struct {
	Username        string  `json:"username"`
	Earnings        float64 `json:"earnings"`
	CompletedQuests int     `json:"completedQuests"`
}

// GetLeaderboard returns users ordered by cumulative earnings, served
// from the Redis cache when fresh.
func (h *Handler) GetLeaderboard(c *fiber.Ctx) error {
	if payload, ok := h.Leaderboard.Get(c.Context()); ok {
		var entries []LeaderboardEntry
		if err := json.Unmarshal(payload, &entries); err == nil {
			return helpers.HandleSuccess(c, fiber.StatusOK, "Leaderboard fetched successfully", entries)
		}
	}

	var leaders []models.User
	if err := h.DB.Order("earnings DESC").Limit(100).Find(&leaders).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch leaderboard", err)
	}

	entries := make([]LeaderboardEntry, 0, len(leaders))
	for _, u := range leaders {
		entries = append(entries, LeaderboardEntry{
			Username:        u.Username,
			Earnings:        u.Earnings,
			CompletedQuests: len(u.CompletedQuests),
		})
	}

	if payload, err := json.Marshal(entries); err == nil {
		h.Leaderboard.Set(c.Context(), payload)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Leaderboard fetched successfully", entries)
}

// GetUserByID returns a public profile.
func (h *Handler) GetUserByID(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid user ID format", err)
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, "User not found", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch user", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "User fetched successfully", user)
}
