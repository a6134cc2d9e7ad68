package router

import (
	"net/http"
	"os"
	"strings"

	"github.com/cafeforyou/cafe-admin/controllers"
	"github.com/cafeforyou/cafe-admin/middlewares"
	"github.com/cafeforyou/cafe-admin/services"
	"github.com/cafeforyou/cafe-admin/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func sessionSecret() []byte {
	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("CafeForYouSessionSecret")
}

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	store := cookie.NewStore(sessionSecret())
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   24 * 60 * 60,
	})
	r.Use(sessions.Sessions("cafe_session", store))

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.RequestLogger())

	r.LoadHTMLGlob("templates/*.html")

	// uploaded images only; anything else under /uploads is refused
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			path := strings.ToLower(c.Request.URL.Path)
			if !strings.HasSuffix(path, ".jpg") &&
				!strings.HasSuffix(path, ".jpeg") &&
				!strings.HasSuffix(path, ".png") &&
				!strings.HasSuffix(path, ".gif") &&
				!strings.HasSuffix(path, ".webp") {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}
		c.Next()
	})
	r.Static("/uploads", "./uploads")

	mailer := services.NewMailerFromEnv()

	authCtrl := controllers.NewAuthController(db)
	dashboardCtrl := controllers.NewDashboardController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	menuCtrl := controllers.NewMenuItemController(db)
	orderCtrl := controllers.NewOrderController(db)
	reservationCtrl := controllers.NewReservationController(db)
	contactCtrl := controllers.NewContactController(db, mailer)
	userCtrl := controllers.NewUserController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	})
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.GET("/login", authCtrl.ShowLogin)
	r.POST("/login", middlewares.NewStrictRateLimiter(), authCtrl.Login)
	r.GET("/logout", authCtrl.Logout)

	r.GET("/reservations", reservationCtrl.ShowReservationForm)
	r.POST("/reservations", reservationCtrl.CreateReservation)

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.RequireAdmin())
	{
		admin.GET("/dashboard", dashboardCtrl.ShowDashboard)

		admin.GET("/categories", categoryCtrl.ListCategories)
		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.POST("/categories/:id", categoryCtrl.UpdateCategory)
		admin.POST("/categories/:id/delete", categoryCtrl.DeleteCategory)

		admin.GET("/menu", menuCtrl.ListMenuItems)
		admin.POST("/menu", menuCtrl.CreateMenuItem)
		admin.POST("/menu/:id", menuCtrl.UpdateMenuItem)
		admin.POST("/menu/:id/delete", menuCtrl.DeleteMenuItem)

		admin.GET("/orders", orderCtrl.ListOrders)
		admin.POST("/orders/:id/status", orderCtrl.UpdateOrderStatus)

		admin.GET("/reservations", reservationCtrl.ListReservations)
		admin.POST("/reservations/:id/status", reservationCtrl.UpdateReservationStatus)

		admin.GET("/messages", contactCtrl.ListMessages)
		admin.POST("/messages/:id/read", contactCtrl.MarkRead)
		admin.POST("/messages/:id/reply", contactCtrl.Reply)
		admin.POST("/messages/:id/delete", contactCtrl.DeleteMessage)

		admin.GET("/users", userCtrl.ListUsers)
		admin.POST("/users/:id", userCtrl.UpdateUser)
		admin.POST("/users/:id/delete", userCtrl.DeleteUser)
	}

	utils.InfoLogger.Println("Router configured")
	return r
}
