package controllers

import (
	"net/http"
	"strings"

	"github.com/cafeforyou/cafe-admin/middlewares"
	"github.com/cafeforyou/cafe-admin/models"
	"github.com/cafeforyou/cafe-admin/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// ShowLogin renders the login form.
func (ac *AuthController) ShowLogin(c *gin.Context) {
	if token, err := c.Cookie(middlewares.AuthCookieName); err == nil && token != "" {
		if claims, err := utils.ParseToken(token); err == nil && claims.Role == models.RoleAdmin {
			c.Redirect(http.StatusSeeOther, "/admin/dashboard")
			return
		}
	}
	utils.Render(c, "login.html", nil)
}

// Login verifies credentials and sets the auth cookie. Only admins may enter
// the back-office; everyone else gets the same generic rejection.
func (ac *AuthController) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if email == "" || password == "" {
		utils.SetFlash(c, utils.FlashError, "Email and password are required")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", email).First(&user).Error; err != nil {
		utils.SetFlash(c, utils.FlashError, "Invalid email or password")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		utils.SetFlash(c, utils.FlashError, "Invalid email or password")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	if user.Role != models.RoleAdmin {
		utils.SetFlash(c, utils.FlashError, "Invalid email or password")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.FullName, user.Role)
	if err != nil {
		utils.ErrorLogger.Errorf("failed to generate token for %s: %v", user.Email, err)
		utils.SetFlash(c, utils.FlashError, "Something went wrong, please try again")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	// 24h, HttpOnly; matches token lifetime
	c.SetCookie(middlewares.AuthCookieName, token, 24*60*60, "/", "", false, true)

	utils.InfoLogger.Printf("Admin login: %s", user.Email)
	utils.SetFlash(c, utils.FlashSuccess, "Welcome back, "+user.FullName)
	c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

// Logout clears the auth cookie.
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie(middlewares.AuthCookieName, "", -1, "/", "", false, true)
	utils.SetFlash(c, utils.FlashSuccess, "You have been logged out")
	c.Redirect(http.StatusSeeOther, "/login")
}
