package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venividilaundry/veni-vidi-laundry/internal/middleware"
	"github.com/venividilaundry/veni-vidi-laundry/internal/models"
	"github.com/venividilaundry/veni-vidi-laundry/internal/pricing"
	"github.com/venividilaundry/veni-vidi-laundry/internal/utils"
)

// SubscriptionHandler manages recurring plan endpoints.
type SubscriptionHandler struct {
	db    *gorm.DB
	plans *pricing.PlanCatalog
}

// NewSubscriptionHandler constructs SubscriptionHandler.
func NewSubscriptionHandler(db *gorm.DB, plans *pricing.PlanCatalog) *SubscriptionHandler {
	return &SubscriptionHandler{db: db, plans: plans}
}

// ListPricing returns the full subscription plan grid.
func (h *SubscriptionHandler) ListPricing(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.plans.Grid()})
}

type createSubscriptionRequest struct {
	SubscriptionType string `json:"subscription_type"`
	Tier             int    `json:"tier"`
	Frequency        string `json:"frequency"`
	PickupDate       string `json:"pickup_date"`
}

// CreateSubscription starts a new active subscription. The type, tier and
// frequency must resolve in the plan catalog.
func (h *SubscriptionHandler) CreateSubscription(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.SubscriptionType == "" || req.Frequency == "" || req.Tier == 0 || req.PickupDate == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}

	if !utils.IsDate(req.PickupDate) {
		return fiber.NewError(fiber.StatusBadRequest, "pickup_date must be an ISO date (YYYY-MM-DD)")
	}

	plan, err := h.plans.Lookup(req.SubscriptionType, req.Frequency, req.Tier)
	if err != nil {
		if errors.Is(err, pricing.ErrPlanNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	subscription := models.Subscription{
		AccountID:        identity.AccountID,
		SubscriptionType: req.SubscriptionType,
		Tier:             req.Tier,
		Frequency:        req.Frequency,
		Status:           models.SubscriptionStatusActive,
		NextPickupDate:   req.PickupDate,
	}

	if err := h.db.Create(&subscription).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": subscriptionResponse{
			Subscription: subscription,
			Price:        plan.Price,
			Description:  plan.Description,
		},
	})
}

// subscriptionResponse enriches a stored row with the current catalog price.
// Prices are resolved live, not snapshotted at creation time, so catalog
// changes show through on listing.
type subscriptionResponse struct {
	models.Subscription
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// ListSubscriptions returns the caller's subscriptions, newest first, each
// priced against the current catalog.
func (h *SubscriptionHandler) ListSubscriptions(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var subscriptions []models.Subscription
	if err := h.db.Where("account_id = ?", identity.AccountID).
		Order("created_at desc").
		Find(&subscriptions).Error; err != nil {
		return err
	}

	enriched := make([]subscriptionResponse, len(subscriptions))
	for i, sub := range subscriptions {
		// A combination missing from the catalog prices as zero
		// rather than failing the listing.
		plan, _ := h.plans.Lookup(sub.SubscriptionType, sub.Frequency, sub.Tier)
		enriched[i] = subscriptionResponse{
			Subscription: sub,
			Price:        plan.Price,
			Description:  plan.Description,
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": enriched})
}

// CancelSubscription moves a subscription to cancelled. The ownership check
// and the write are one conditional UPDATE, so cancelling an
// already-cancelled subscription succeeds and leaves it cancelled.
func (h *SubscriptionHandler) CancelSubscription(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	result := h.db.Model(&models.Subscription{}).
		Where("id = ? AND account_id = ?", id, identity.AccountID).
		Update("status", models.SubscriptionStatusCancelled)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "subscription not found")
	}

	return c.JSON(fiber.Map{"success": true})
}
