package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venividilaundry/veni-vidi-laundry/internal/models"
	"github.com/venividilaundry/veni-vidi-laundry/internal/pricing"
	"github.com/venividilaundry/veni-vidi-laundry/internal/utils"
)

// AdminHandler manages admin-only endpoints.
type AdminHandler struct {
	db    *gorm.DB
	plans *pricing.PlanCatalog
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB, plans *pricing.PlanCatalog) *AdminHandler {
	return &AdminHandler{db: db, plans: plans}
}

// ListAllOrders returns every order with owner contact details, newest first.
func (h *AdminHandler) ListAllOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Account").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// ListAllSubscriptions returns every subscription with owner contact details,
// newest first, priced against the current catalog.
func (h *AdminHandler) ListAllSubscriptions(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Subscription{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var subscriptions []models.Subscription
	if err := query.Preload("Account").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&subscriptions).Error; err != nil {
		return err
	}

	enriched := make([]subscriptionResponse, len(subscriptions))
	for i, sub := range subscriptions {
		plan, _ := h.plans.Lookup(sub.SubscriptionType, sub.Frequency, sub.Tier)
		enriched[i] = subscriptionResponse{
			Subscription: sub,
			Price:        plan.Price,
			Description:  plan.Description,
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    enriched,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

type adminUpdateOrderRequest struct {
	Status       string `json:"status"`
	DeliveryDate string `json:"delivery_date"`
}

// UpdateOrderStatus sets an order's status, and optionally its delivery date,
// in one conditional UPDATE. Any of the six statuses may be set from any
// state.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req adminUpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if !models.IsValidOrderStatus(req.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid status")
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.DeliveryDate != "" {
		if !utils.IsDate(req.DeliveryDate) {
			return fiber.NewError(fiber.StatusBadRequest, "delivery_date must be an ISO date (YYYY-MM-DD)")
		}
		updates["delivery_date"] = req.DeliveryDate
	}

	result := h.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	}

	return c.JSON(fiber.Map{"success": true})
}

// DashboardStats returns aggregate counts for the admin dashboard. The four
// counts are independent queries, not one atomic snapshot.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	var activeSubscriptions int64
	if err := h.db.Model(&models.Subscription{}).
		Where("status = ?", models.SubscriptionStatusActive).
		Count(&activeSubscriptions).Error; err != nil {
		return err
	}

	var totalCustomers int64
	if err := h.db.Model(&models.Account{}).
		Where("is_admin = ?", false).
		Count(&totalCustomers).Error; err != nil {
		return err
	}

	var pendingOrders int64
	if err := h.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&pendingOrders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_orders":         totalOrders,
			"active_subscriptions": activeSubscriptions,
			"total_customers":      totalCustomers,
			"pending_orders":       pendingOrders,
		},
	})
}

// ListCustomers returns all non-admin accounts, newest first.
func (h *AdminHandler) ListCustomers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Account{}).Where("is_admin = ?", false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var customers []models.Account
	if err := query.Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&customers).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    customers,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}
