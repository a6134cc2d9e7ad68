package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cafeforyou/cafe-admin/models"
	"github.com/cafeforyou/cafe-admin/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MenuItemController struct {
	DB *gorm.DB
}

func NewMenuItemController(db *gorm.DB) *MenuItemController {
	return &MenuItemController{DB: db}
}

type menuItemForm struct {
	Name        string
	Description string
	Price       float64
	CategoryID  uint
	Status      string
}

// parseMenuItemForm validates the shared create/update fields. All checks run
// before any write.
func (mc *MenuItemController) parseMenuItemForm(c *gin.Context, defaultStatus string) (menuItemForm, error) {
	var form menuItemForm

	form.Name = strings.TrimSpace(c.PostForm("name"))
	if form.Name == "" {
		return form, errors.New("Item name is required")
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("price")), 64)
	if err != nil || price <= 0 {
		return form, errors.New("Price must be greater than zero")
	}
	form.Price = price

	categoryID, err := strconv.ParseUint(c.PostForm("category_id"), 10, 32)
	if err != nil || categoryID == 0 {
		return form, errors.New("Please select a category")
	}
	var category models.Category
	if err := mc.DB.First(&category, categoryID).Error; err != nil {
		return form, errors.New("Selected category does not exist")
	}
	form.CategoryID = uint(categoryID)

	form.Status = c.PostForm("status")
	if form.Status == "" {
		form.Status = defaultStatus
	}
	if !models.ValidMenuItemStatus(form.Status) {
		return form, errors.New("Invalid item status")
	}

	form.Description = strings.TrimSpace(c.PostForm("description"))
	return form, nil
}

// ListMenuItems renders the menu admin page with per-status counts and the
// average price, recomputed each request.
func (mc *MenuItemController) ListMenuItems(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.Preload("Category").Order("name").Find(&items).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to list menu items: %v", err)
		flashAndRedirect(c, utils.FlashError, "Failed to load menu items", "/admin/dashboard")
		return
	}

	var stats struct {
		Total       int64
		Available   int64
		Unavailable int64
		AvgPrice    float64
	}
	var priceSum float64
	for _, item := range items {
		stats.Total++
		if item.Status == models.MenuItemStatusAvailable {
			stats.Available++
		} else {
			stats.Unavailable++
		}
		priceSum += item.Price
	}
	if stats.Total > 0 {
		stats.AvgPrice = priceSum / float64(stats.Total)
	}

	var categories []models.Category
	mc.DB.Where("status = ?", models.CategoryStatusActive).Order("name").Find(&categories)

	data := gin.H{
		"Items":      items,
		"Categories": categories,
		"Stats":      stats,
	}

	if editID := queryID(c, "edit"); editID != 0 {
		var edit models.MenuItem
		if err := mc.DB.First(&edit, editID).Error; err == nil {
			data["EditItem"] = edit
		}
	}

	utils.Render(c, "menu_items.html", data)
}

// CreateMenuItem inserts a menu item. A failed image upload is surfaced but
// the item is still created without an image.
func (mc *MenuItemController) CreateMenuItem(c *gin.Context) {
	form, err := mc.parseMenuItemForm(c, models.MenuItemStatusAvailable)
	if err != nil {
		flashAndRedirect(c, utils.FlashError, err.Error(), "/admin/menu")
		return
	}

	image, uploadErr := resolveImage(c, menuUploadDir, "menu", "")

	item := models.MenuItem{
		CategoryID:  form.CategoryID,
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Image:       image,
		Status:      form.Status,
	}
	if err := mc.DB.Create(&item).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to create menu item: %v", err)
		flashAndRedirect(c, utils.FlashError, "Failed to add menu item", "/admin/menu")
		return
	}

	if uploadErr != nil {
		flashAndRedirect(c, utils.FlashError, uploadErr.Error(), "/admin/menu")
		return
	}
	flashAndRedirect(c, utils.FlashSuccess, "Menu item added successfully", "/admin/menu")
}

// UpdateMenuItem edits a menu item in place, applying the image swap policy.
func (mc *MenuItemController) UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.First(&item, paramID(c, "id")).Error; err != nil {
		flashAndRedirect(c, utils.FlashError, "Menu item not found", "/admin/menu")
		return
	}

	form, err := mc.parseMenuItemForm(c, item.Status)
	if err != nil {
		flashAndRedirect(c, utils.FlashError, err.Error(), "/admin/menu")
		return
	}

	image, uploadErr := resolveImage(c, menuUploadDir, "menu", item.Image)

	item.CategoryID = form.CategoryID
	item.Name = form.Name
	item.Description = form.Description
	item.Price = form.Price
	item.Image = image
	item.Status = form.Status

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to update menu item %d: %v", item.ID, err)
		flashAndRedirect(c, utils.FlashError, "Failed to update menu item", "/admin/menu")
		return
	}

	if uploadErr != nil {
		flashAndRedirect(c, utils.FlashError, uploadErr.Error(), "/admin/menu")
		return
	}
	flashAndRedirect(c, utils.FlashSuccess, "Menu item updated successfully", "/admin/menu")
}

// DeleteMenuItem removes an item unconditionally; its locally stored image is
// cleaned up after the row is gone.
func (mc *MenuItemController) DeleteMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.First(&item, paramID(c, "id")).Error; err != nil {
		flashAndRedirect(c, utils.FlashError, "Menu item not found", "/admin/menu")
		return
	}

	if err := mc.DB.Delete(&item).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to delete menu item %d: %v", item.ID, err)
		flashAndRedirect(c, utils.FlashError, "Failed to delete menu item", "/admin/menu")
		return
	}
	utils.RemoveImage(item.Image)

	flashAndRedirect(c, utils.FlashSuccess, "Menu item deleted successfully", "/admin/menu")
}
