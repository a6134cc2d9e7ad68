package controllers

import (
	"time"

	"github.com/cafeforyou/cafe-admin/models"
	"github.com/cafeforyou/cafe-admin/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// DashboardStats are the headline numbers across every entity, recomputed on
// each page load.
type DashboardStats struct {
	TotalOrders         int64
	TodayOrders         int64
	TotalRevenue        float64
	AvgOrderValue       float64
	PendingOrders       int64
	PendingReservations int64
	UnreadMessages      int64
	TotalUsers          int64
	TotalCategories     int64
	TotalMenuItems      int64
}

// ShowDashboard renders the admin landing page.
func (dc *DashboardController) ShowDashboard(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var stats DashboardStats
	dc.DB.Model(&models.Order{}).Count(&stats.TotalOrders)
	dc.DB.Model(&models.Order{}).Where("DATE(created_at) = ?", today).Count(&stats.TodayOrders)
	dc.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&stats.PendingOrders)

	dc.DB.Model(&models.Order{}).
		Where("status <> ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().Scan(&stats.TotalRevenue)

	var billed int64
	dc.DB.Model(&models.Order{}).Where("status <> ?", models.OrderStatusCancelled).Count(&billed)
	if billed > 0 {
		stats.AvgOrderValue = stats.TotalRevenue / float64(billed)
	}

	dc.DB.Model(&models.Reservation{}).
		Where("status = ?", models.ReservationStatusPending).
		Count(&stats.PendingReservations)
	dc.DB.Model(&models.ContactMessage{}).
		Where("status = ?", models.ContactStatusUnread).
		Count(&stats.UnreadMessages)
	dc.DB.Model(&models.User{}).Count(&stats.TotalUsers)
	dc.DB.Model(&models.Category{}).Count(&stats.TotalCategories)
	dc.DB.Model(&models.MenuItem{}).Count(&stats.TotalMenuItems)

	var recentOrders []models.Order
	dc.DB.Preload("User").Order("created_at DESC").Limit(5).Find(&recentOrders)

	utils.Render(c, "dashboard.html", gin.H{
		"Stats":        stats,
		"RecentOrders": recentOrders,
	})
}
