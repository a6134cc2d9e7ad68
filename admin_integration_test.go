package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/cafeforyou/cafe-admin/database"
	"github.com/cafeforyou/cafe-admin/models"
	"github.com/cafeforyou/cafe-admin/router"
	"github.com/cafeforyou/cafe-admin/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// browser keeps cookies across requests like a real client would, so the
// auth cookie and the flash session survive the redirect dance.
type browser struct {
	t       *testing.T
	r       *gin.Engine
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, r *gin.Engine) *browser {
	return &browser{t: t, r: r, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	b.r.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil)
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	return b.do(http.MethodPost, path, form)
}

func setupApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedAdmin(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return router.SetupRouter(db), db
}

func TestAdminFlow(t *testing.T) {
	r, db := setupApp(t)
	b := newBrowser(t, r)

	// unauthenticated access bounces to the login page
	w := b.get("/admin/dashboard")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// wrong password is rejected with the generic message
	w = b.post("/login", url.Values{
		"email":    {"admin@cafeforyou.local"},
		"password": {"definitely-wrong"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Empty(t, b.cookies["auth_token"])

	// correct credentials land on the dashboard
	w = b.post("/login", url.Values{
		"email":    {"admin@cafeforyou.local"},
		"password": {"admin123"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
	require.NotNil(t, b.cookies["auth_token"])

	w = b.get("/admin/dashboard")
	assert.Equal(t, http.StatusOK, w.Code)

	// create a category through the form
	w = b.post("/admin/categories", url.Values{
		"name":        {"Desserts"},
		"description": {"Cakes and sweets"},
		"status":      {"active"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	var category models.Category
	require.NoError(t, db.Where("name = ?", "Desserts").First(&category).Error)
	assert.Equal(t, models.CategoryStatusActive, category.Status)

	// the category cannot be deleted while a menu item references it
	item := models.MenuItem{
		CategoryID: category.ID,
		Name:       "Tiramisu",
		Price:      6.5,
		Status:     models.MenuItemStatusAvailable,
	}
	require.NoError(t, db.Create(&item).Error)

	b.post("/admin/categories/"+itoa(category.ID)+"/delete", url.Values{})
	var count int64
	db.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	// once the item is gone the delete goes through
	require.NoError(t, db.Delete(&item).Error)
	b.post("/admin/categories/"+itoa(category.ID)+"/delete", url.Values{})
	db.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count)
	assert.Zero(t, count)

	// logout clears the auth cookie and locks the back-office again
	w = b.get("/logout")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Nil(t, b.cookies["auth_token"])

	w = b.get("/admin/categories")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestPublicReservationFlow(t *testing.T) {
	r, db := setupApp(t)
	b := newBrowser(t, r)

	// no login needed for the public reservation form
	w := b.get("/reservations")
	assert.Equal(t, http.StatusOK, w.Code)

	w = b.post("/reservations", url.Values{
		"name":   {"Walk-in Guest"},
		"email":  {"guest@example.com"},
		"phone":  {"555-0199"},
		"date":   {"2026-09-20"},
		"time":   {"18:30"},
		"guests": {"4"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	var reservation models.Reservation
	require.NoError(t, db.Where("email = ?", "guest@example.com").First(&reservation).Error)
	assert.Equal(t, models.ReservationStatusPending, reservation.Status)
	assert.Nil(t, reservation.UserID)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
