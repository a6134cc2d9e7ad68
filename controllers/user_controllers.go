package controllers

import (
	"strings"

	"github.com/cafeforyou/cafe-admin/middlewares"
	"github.com/cafeforyou/cafe-admin/models"
	"github.com/cafeforyou/cafe-admin/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// UserRow is a user plus the derived activity totals shown on the list page.
// The totals are computed per request, never stored.
type UserRow struct {
	models.User
	TotalOrders       int64   `json:"total_orders"`
	TotalSpent        float64 `json:"total_spent"`
	TotalReservations int64   `json:"total_reservations"`
}

// ListUsers renders the user admin page with per-user order/spend/reservation
// totals. ?edit=<id> pre-loads a row into the edit form.
func (uc *UserController) ListUsers(c *gin.Context) {
	var rows []UserRow
	err := uc.DB.Model(&models.User{}).
		Select(`users.*,
			(SELECT COUNT(*) FROM orders WHERE orders.user_id = users.id) AS total_orders,
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE orders.user_id = users.id) AS total_spent,
			(SELECT COUNT(*) FROM reservations WHERE reservations.user_id = users.id) AS total_reservations`).
		Order("users.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		utils.ErrorLogger.Errorf("failed to list users: %v", err)
		flashAndRedirect(c, utils.FlashError, "Failed to load users", "/admin/dashboard")
		return
	}

	var stats struct {
		Total  int64
		Admins int64
	}
	stats.Total = int64(len(rows))
	for _, row := range rows {
		if row.Role == models.RoleAdmin {
			stats.Admins++
		}
	}

	data := gin.H{
		"Users": rows,
		"Stats": stats,
	}

	if editID := queryID(c, "edit"); editID != 0 {
		var edit models.User
		if err := uc.DB.First(&edit, editID).Error; err == nil {
			data["EditUser"] = edit
		}
	}

	utils.Render(c, "users.html", data)
}

// UpdateUser edits a user's profile fields. The CSRF token is checked before
// anything else touches the database; a mismatch is a generic rejection. Role
// changes are refused when self-targeted so an admin can never demote
// themself.
func (uc *UserController) UpdateUser(c *gin.Context) {
	if !utils.CheckCSRF(c, c.PostForm("csrf_token")) {
		flashAndRedirect(c, utils.FlashError, "Invalid request, please try again", "/admin/users")
		return
	}

	var user models.User
	if err := uc.DB.First(&user, paramID(c, "id")).Error; err != nil {
		flashAndRedirect(c, utils.FlashError, "User not found", "/admin/users")
		return
	}

	fullName := strings.TrimSpace(c.PostForm("full_name"))
	email := strings.TrimSpace(c.PostForm("email"))
	if fullName == "" || email == "" {
		flashAndRedirect(c, utils.FlashError, "Full name and email are required", "/admin/users")
		return
	}

	var others []models.User
	if err := uc.DB.Select("id, email").
		Where("email = ? AND id <> ?", email, user.ID).
		Find(&others).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to check email collision: %v", err)
		flashAndRedirect(c, utils.FlashError, "Failed to update user", "/admin/users")
		return
	}
	for _, other := range others {
		// SQL equality is collation dependent (case-insensitive under the
		// MySQL default); the byte comparison keeps the check case-sensitive
		// on every backend.
		if other.Email == email {
			flashAndRedirect(c, utils.FlashError, "Email is already in use by another account", "/admin/users")
			return
		}
	}

	if role := c.PostForm("role"); role != "" && role != user.Role {
		if !models.CanEditUserRole(&user, middlewares.CurrentUserID(c)) {
			flashAndRedirect(c, utils.FlashError, "You cannot change your own role", "/admin/users")
			return
		}
		if !models.ValidRole(role) {
			flashAndRedirect(c, utils.FlashError, "Invalid role", "/admin/users")
			return
		}
		user.Role = role
	}

	user.FullName = fullName
	user.Email = email
	user.Phone = strings.TrimSpace(c.PostForm("phone"))
	user.Address = strings.TrimSpace(c.PostForm("address"))

	if err := uc.DB.Save(&user).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to update user %d: %v", user.ID, err)
		flashAndRedirect(c, utils.FlashError, "Failed to update user", "/admin/users")
		return
	}

	flashAndRedirect(c, utils.FlashSuccess, "User updated successfully", "/admin/users")
}

// DeleteUser removes a user and everything they own. Self-deletion and admin
// targets are refused; the cascade (order items, orders, reservations, then
// the user row) runs in one transaction so a failure leaves nothing half
// deleted.
func (uc *UserController) DeleteUser(c *gin.Context) {
	if !utils.CheckCSRF(c, c.PostForm("csrf_token")) {
		flashAndRedirect(c, utils.FlashError, "Invalid request, please try again", "/admin/users")
		return
	}

	var user models.User
	if err := uc.DB.First(&user, paramID(c, "id")).Error; err != nil {
		flashAndRedirect(c, utils.FlashError, "User not found", "/admin/users")
		return
	}

	currentID := middlewares.CurrentUserID(c)
	if !models.CanDeleteUser(&user, currentID) {
		if user.ID == currentID {
			flashAndRedirect(c, utils.FlashError, "You cannot delete your own account.", "/admin/users")
		} else {
			flashAndRedirect(c, utils.FlashError, "Admin accounts cannot be deleted", "/admin/users")
		}
		return
	}

	err := uc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id IN (?)",
			tx.Model(&models.Order{}).Select("id").Where("user_id = ?", user.ID),
		).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Reservation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		utils.ErrorLogger.Errorf("failed to delete user %d: %v", user.ID, err)
		flashAndRedirect(c, utils.FlashError, "Failed to delete user", "/admin/users")
		return
	}

	flashAndRedirect(c, utils.FlashSuccess, "User deleted successfully", "/admin/users")
}
