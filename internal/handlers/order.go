package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/venividilaundry/veni-vidi-laundry/internal/middleware"
	"github.com/venividilaundry/veni-vidi-laundry/internal/models"
	"github.com/venividilaundry/veni-vidi-laundry/internal/pricing"
	"github.com/venividilaundry/veni-vidi-laundry/internal/utils"
)

// OrderHandler manages a-la-carte order endpoints.
type OrderHandler struct {
	db *gorm.DB
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{db: db}
}

// ListPricing returns the a-la-carte item catalog.
func (h *OrderHandler) ListPricing(c *fiber.Ctx) error {
	items, err := h.catalogItems()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": items})
}

type quoteRequest struct {
	Selections map[string]int `json:"selections"`
}

// Quote prices an item selection without creating an order.
func (h *OrderHandler) Quote(c *fiber.Ctx) error {
	var req quoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	quote, err := h.priceSelection(req.Selections)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": quote})
}

type createOrderRequest struct {
	OrderType           string         `json:"order_type"`
	Selections          map[string]int `json:"selections"`
	PickupDate          string         `json:"pickup_date"`
	SubscriptionID      string         `json:"subscription_id"`
	SpecialInstructions string         `json:"special_instructions"`
}

// CreateOrder places a new order. Line items and the total are computed
// server-side from the catalog; the order starts pending with no delivery
// date.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.OrderType == "" || req.PickupDate == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}

	if !utils.IsDate(req.PickupDate) {
		return fiber.NewError(fiber.StatusBadRequest, "pickup_date must be an ISO date (YYYY-MM-DD)")
	}

	quote, err := h.priceSelection(req.Selections)
	if err != nil {
		return err
	}

	order := models.Order{
		AccountID:           identity.AccountID,
		OrderType:           req.OrderType,
		Items:               datatypes.NewJSONSlice(toOrderLines(quote.Lines)),
		TotalPrice:          quote.Total,
		PickupDate:          req.PickupDate,
		Status:              models.OrderStatusPending,
		SpecialInstructions: req.SpecialInstructions,
	}

	if req.SubscriptionID != "" {
		subID, err := uuid.Parse(req.SubscriptionID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid subscription_id")
		}

		var sub models.Subscription
		if err := h.db.First(&sub, "id = ? AND account_id = ?", subID, identity.AccountID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusBadRequest, "invalid subscription_id")
			}
			return err
		}
		order.SubscriptionID = &sub.ID
	}

	if err := h.db.Create(&order).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": order})
}

// ListOrders returns the caller's orders, newest first.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{}).Where("account_id = ?", identity.AccountID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Order("created_at desc").
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

// GetOrder returns a single order. Orders belonging to other accounts are
// reported as not found, never as forbidden.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.First(&order, "id = ? AND account_id = ?", id, identity.AccountID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus lets the owner set the status of their own order. The check
// and the write are one conditional UPDATE keyed by id and owner.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if !models.IsValidOrderStatus(req.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid status")
	}

	result := h.db.Model(&models.Order{}).
		Where("id = ? AND account_id = ?", id, identity.AccountID).
		Update("status", req.Status)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *OrderHandler) catalogItems() ([]models.PricingItem, error) {
	var items []models.PricingItem
	if err := h.db.Order("category, item_name").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (h *OrderHandler) priceSelection(selections map[string]int) (pricing.Quote, error) {
	items, err := h.catalogItems()
	if err != nil {
		return pricing.Quote{}, err
	}

	catalog := make([]pricing.CatalogItem, len(items))
	for i, item := range items {
		catalog[i] = pricing.CatalogItem{
			ID:        item.ID.String(),
			Name:      item.ItemName,
			UnitPrice: item.Price,
		}
	}

	quote, err := pricing.ComputeOrder(catalog, selections)
	if err != nil {
		if errors.Is(err, pricing.ErrEmptySelection) ||
			errors.Is(err, pricing.ErrUnknownItem) ||
			errors.Is(err, pricing.ErrInvalidQuantity) {
			return pricing.Quote{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return pricing.Quote{}, err
	}

	return quote, nil
}

func toOrderLines(lines []pricing.LineItem) []models.OrderLine {
	out := make([]models.OrderLine, len(lines))
	for i, line := range lines {
		out[i] = models.OrderLine{
			ItemID:    line.ItemID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		}
	}
	return out
}
