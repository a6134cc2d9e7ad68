package controllers

import (
	"strings"

	"github.com/cafeforyou/cafe-admin/models"
	"github.com/cafeforyou/cafe-admin/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

// CategoryRow is a category plus the number of menu items referencing it,
// joined in for the list view.
type CategoryRow struct {
	models.Category
	ItemCount int64 `json:"item_count"`
}

// ListCategories renders the category admin page. ?edit=<id> pre-loads a row
// into the edit form.
func (cc *CategoryController) ListCategories(c *gin.Context) {
	var rows []CategoryRow
	err := cc.DB.Model(&models.Category{}).
		Select("categories.*, COUNT(menu_items.id) AS item_count").
		Joins("LEFT JOIN menu_items ON menu_items.category_id = categories.id").
		Group("categories.id").
		Order("categories.name").
		Scan(&rows).Error
	if err != nil {
		utils.ErrorLogger.Errorf("failed to list categories: %v", err)
		flashAndRedirect(c, utils.FlashError, "Failed to load categories", "/admin/dashboard")
		return
	}

	var stats struct {
		Total      int64
		Active     int64
		Inactive   int64
		TotalItems int64
	}
	stats.Total = int64(len(rows))
	for _, row := range rows {
		if row.Status == models.CategoryStatusActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
		stats.TotalItems += row.ItemCount
	}

	data := gin.H{
		"Categories": rows,
		"Stats":      stats,
	}

	if editID := queryID(c, "edit"); editID != 0 {
		var edit models.Category
		if err := cc.DB.First(&edit, editID).Error; err == nil {
			data["EditCategory"] = edit
		}
	}

	utils.Render(c, "categories.html", data)
}

// CreateCategory inserts a category. An uploaded image wins over image_url;
// an upload failure is surfaced but never blocks the insert.
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		flashAndRedirect(c, utils.FlashError, "Category name is required", "/admin/categories")
		return
	}

	status := c.PostForm("status")
	if status == "" {
		status = models.CategoryStatusActive
	}
	if !models.ValidCategoryStatus(status) {
		flashAndRedirect(c, utils.FlashError, "Invalid category status", "/admin/categories")
		return
	}

	image, uploadErr := resolveImage(c, categoryUploadDir, "category", "")

	category := models.Category{
		Name:        name,
		Description: strings.TrimSpace(c.PostForm("description")),
		Image:       image,
		Status:      status,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to create category: %v", err)
		flashAndRedirect(c, utils.FlashError, "Failed to add category", "/admin/categories")
		return
	}

	if uploadErr != nil {
		flashAndRedirect(c, utils.FlashError, uploadErr.Error(), "/admin/categories")
		return
	}
	flashAndRedirect(c, utils.FlashSuccess, "Category added successfully", "/admin/categories")
}

// UpdateCategory edits a category in place, applying the image swap policy.
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	var category models.Category
	if err := cc.DB.First(&category, paramID(c, "id")).Error; err != nil {
		flashAndRedirect(c, utils.FlashError, "Category not found", "/admin/categories")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		flashAndRedirect(c, utils.FlashError, "Category name is required", "/admin/categories")
		return
	}

	status := c.PostForm("status")
	if status == "" {
		status = category.Status
	}
	if !models.ValidCategoryStatus(status) {
		flashAndRedirect(c, utils.FlashError, "Invalid category status", "/admin/categories")
		return
	}

	image, uploadErr := resolveImage(c, categoryUploadDir, "category", category.Image)

	category.Name = name
	category.Description = strings.TrimSpace(c.PostForm("description"))
	category.Image = image
	category.Status = status

	if err := cc.DB.Save(&category).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to update category %d: %v", category.ID, err)
		flashAndRedirect(c, utils.FlashError, "Failed to update category", "/admin/categories")
		return
	}

	if uploadErr != nil {
		flashAndRedirect(c, utils.FlashError, uploadErr.Error(), "/admin/categories")
		return
	}
	flashAndRedirect(c, utils.FlashSuccess, "Category updated successfully", "/admin/categories")
}

// DeleteCategory removes a category unless menu items still reference it.
// The row goes first; removing a locally stored image is best-effort cleanup.
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	var category models.Category
	if err := cc.DB.First(&category, paramID(c, "id")).Error; err != nil {
		flashAndRedirect(c, utils.FlashError, "Category not found", "/admin/categories")
		return
	}

	var itemCount int64
	if err := cc.DB.Model(&models.MenuItem{}).
		Where("category_id = ?", category.ID).
		Count(&itemCount).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to count items for category %d: %v", category.ID, err)
		flashAndRedirect(c, utils.FlashError, "Failed to delete category", "/admin/categories")
		return
	}
	if itemCount > 0 {
		flashAndRedirect(c, utils.FlashError, "Cannot delete category with existing menu items", "/admin/categories")
		return
	}

	if err := cc.DB.Delete(&category).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to delete category %d: %v", category.ID, err)
		flashAndRedirect(c, utils.FlashError, "Failed to delete category", "/admin/categories")
		return
	}
	utils.RemoveImage(category.Image)

	flashAndRedirect(c, utils.FlashSuccess, "Category deleted successfully", "/admin/categories")
}
