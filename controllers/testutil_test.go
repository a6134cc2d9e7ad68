package controllers_test

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/cafeforyou/cafe-admin/controllers"
	"github.com/cafeforyou/cafe-admin/models"
	"github.com/cafeforyou/cafe-admin/services"
	"github.com/cafeforyou/cafe-admin/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Reservation{},
		&models.ContactMessage{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// testTemplates render just enough of each page to assert on flash messages,
// statistics and the CSRF token.
const testTemplates = `
{{define "login.html"}}login{{end}}
{{define "dashboard.html"}}{{.Stats.TotalOrders}}|{{printf "%.2f" .Stats.TotalRevenue}}|{{printf "%.2f" .Stats.AvgOrderValue}}|{{.Stats.PendingReservations}}|{{.Stats.UnreadMessages}}{{end}}
{{define "categories.html"}}{{if .EditCategory}}edit:{{.EditCategory.Name}}|{{end}}{{if .Flash}}[{{.Flash.Kind}}] {{.Flash.Text}}{{end}}{{end}}
{{define "menu_items.html"}}{{if .Flash}}[{{.Flash.Kind}}] {{.Flash.Text}}{{end}}{{end}}
{{define "orders.html"}}{{if .ViewOrder}}view:{{.ViewOrder.ID}}|{{end}}{{printf "%.2f" .Stats.Revenue}}|{{printf "%.2f" .Stats.AvgOrderValue}}{{end}}
{{define "reservations.html"}}{{.Stats.Total}}|{{.Stats.TotalGuests}}{{end}}
{{define "reservation_form.html"}}{{if .Flash}}[{{.Flash.Kind}}] {{.Flash.Text}}{{end}}{{end}}
{{define "messages.html"}}{{.Stats.Unread}}|{{.Stats.Read}}|{{.Stats.Replied}}{{end}}
{{define "users.html"}}{{.CSRFToken}}{{if .Flash}}|[{{.Flash.Kind}}] {{.Flash.Text}}{{end}}{{end}}
`

// setupRouter wires every controller route behind a stub auth middleware that
// injects the given admin identity, mirroring what RequireAdmin sets.
func setupRouter(db *gorm.DB, currentUserID uint) *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("cafe_session", store))
	r.SetHTMLTemplate(template.Must(template.New("t").Parse(testTemplates)))

	r.Use(func(c *gin.Context) {
		c.Set("userID", currentUserID)
		c.Set("fullName", "Test Admin")
		c.Set("role", models.RoleAdmin)
		c.Next()
	})

	dashboardCtrl := controllers.NewDashboardController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	menuCtrl := controllers.NewMenuItemController(db)
	orderCtrl := controllers.NewOrderController(db)
	reservationCtrl := controllers.NewReservationController(db)
	contactCtrl := controllers.NewContactController(db, services.NewMailerFromEnv())
	userCtrl := controllers.NewUserController(db)

	r.GET("/admin/dashboard", dashboardCtrl.ShowDashboard)

	r.GET("/admin/categories", categoryCtrl.ListCategories)
	r.POST("/admin/categories", categoryCtrl.CreateCategory)
	r.POST("/admin/categories/:id", categoryCtrl.UpdateCategory)
	r.POST("/admin/categories/:id/delete", categoryCtrl.DeleteCategory)

	r.GET("/admin/menu", menuCtrl.ListMenuItems)
	r.POST("/admin/menu", menuCtrl.CreateMenuItem)
	r.POST("/admin/menu/:id", menuCtrl.UpdateMenuItem)
	r.POST("/admin/menu/:id/delete", menuCtrl.DeleteMenuItem)

	r.GET("/admin/orders", orderCtrl.ListOrders)
	r.POST("/admin/orders/:id/status", orderCtrl.UpdateOrderStatus)

	r.GET("/admin/reservations", reservationCtrl.ListReservations)
	r.POST("/admin/reservations/:id/status", reservationCtrl.UpdateReservationStatus)
	r.GET("/reservations", reservationCtrl.ShowReservationForm)
	r.POST("/reservations", reservationCtrl.CreateReservation)

	r.GET("/admin/messages", contactCtrl.ListMessages)
	r.POST("/admin/messages/:id/read", contactCtrl.MarkRead)
	r.POST("/admin/messages/:id/reply", contactCtrl.Reply)
	r.POST("/admin/messages/:id/delete", contactCtrl.DeleteMessage)

	r.GET("/admin/users", userCtrl.ListUsers)
	r.POST("/admin/users/:id", userCtrl.UpdateUser)
	r.POST("/admin/users/:id/delete", userCtrl.DeleteUser)

	return r
}

// postForm submits a form-encoded POST, carrying any session cookies from a
// previous response.
func postForm(r *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// flashAfter follows up a mutating request with a GET and returns the page
// body, which the test templates reduce to the rendered flash message.
func flashAfter(r *gin.Engine, w *httptest.ResponseRecorder, page string) string {
	return get(r, page, w.Result().Cookies()).Body.String()
}

func seedAdmin(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	admin := models.User{
		FullName: "Admin One",
		Username: "admin1",
		Email:    "admin1@cafeforyou.local",
		Password: "x",
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	return admin
}

func seedCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name, Status: models.CategoryStatusActive}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return category
}
