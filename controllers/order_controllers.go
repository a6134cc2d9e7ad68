package controllers

import (
	"github.com/cafeforyou/cafe-admin/models"
	"github.com/cafeforyou/cafe-admin/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// OrderStats are the per-page descriptive numbers for the orders view,
// recomputed on every request.
type OrderStats struct {
	Total         int64
	ByStatus      map[string]int64
	Revenue       float64
	AvgOrderValue float64
}

func (oc *OrderController) collectStats() (OrderStats, error) {
	stats := OrderStats{ByStatus: make(map[string]int64)}

	if err := oc.DB.Model(&models.Order{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	rows, err := oc.DB.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Rows()
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return stats, err
		}
		stats.ByStatus[status] = count
	}

	// revenue excludes cancelled orders
	if err := oc.DB.Model(&models.Order{}).
		Where("status <> ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().Scan(&stats.Revenue); err != nil {
		return stats, err
	}

	billed := stats.Total - stats.ByStatus[models.OrderStatusCancelled]
	if billed > 0 {
		stats.AvgOrderValue = stats.Revenue / float64(billed)
	}
	return stats, nil
}

// ListOrders renders the orders page. ?view=<id> pre-loads one order with its
// items into the detail panel.
func (oc *OrderController) ListOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("User").Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to list orders: %v", err)
		flashAndRedirect(c, utils.FlashError, "Failed to load orders", "/admin/dashboard")
		return
	}

	stats, err := oc.collectStats()
	if err != nil {
		utils.ErrorLogger.Errorf("failed to collect order stats: %v", err)
		flashAndRedirect(c, utils.FlashError, "Failed to load orders", "/admin/dashboard")
		return
	}

	data := gin.H{
		"Orders": orders,
		"Stats":  stats,
	}

	if viewID := queryID(c, "view"); viewID != 0 {
		var view models.Order
		if err := oc.DB.Preload("User").
			Preload("OrderItems").
			Preload("OrderItems.MenuItem").
			First(&view, viewID).Error; err == nil {
			data["ViewOrder"] = view
		}
	}

	utils.Render(c, "orders.html", data)
}

// UpdateOrderStatus moves an order to one of the six statuses. Re-applying
// the current status is a no-op that still reports success.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	status := c.PostForm("status")
	if !models.ValidOrderStatus(status) {
		flashAndRedirect(c, utils.FlashError, "Invalid order status", "/admin/orders")
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, paramID(c, "id")).Error; err != nil {
		flashAndRedirect(c, utils.FlashError, "Order not found", "/admin/orders")
		return
	}

	if err := oc.DB.Model(&order).Update("status", status).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to update order %d status: %v", order.ID, err)
		flashAndRedirect(c, utils.FlashError, "Failed to update order status", "/admin/orders")
		return
	}

	flashAndRedirect(c, utils.FlashSuccess, "Order status updated successfully", "/admin/orders")
}
