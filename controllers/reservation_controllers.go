package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/cafeforyou/cafe-admin/models"
	"github.com/cafeforyou/cafe-admin/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReservationController struct {
	DB *gorm.DB
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{DB: db}
}

// ListReservations renders the reservation admin page. Reservations are never
// hard-deleted here; the only admin mutation is a status change.
func (rc *ReservationController) ListReservations(c *gin.Context) {
	var reservations []models.Reservation
	if err := rc.DB.Order("date DESC, time DESC").Find(&reservations).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to list reservations: %v", err)
		flashAndRedirect(c, utils.FlashError, "Failed to load reservations", "/admin/dashboard")
		return
	}

	var stats struct {
		Total       int64
		ByStatus    map[string]int64
		TotalGuests int64
	}
	stats.ByStatus = make(map[string]int64)
	for _, r := range reservations {
		stats.Total++
		stats.ByStatus[r.Status]++
		if r.Status != models.ReservationStatusCancelled {
			stats.TotalGuests += int64(r.Guests)
		}
	}

	data := gin.H{
		"Reservations": reservations,
		"Stats":        stats,
	}

	if viewID := queryID(c, "view"); viewID != 0 {
		var view models.Reservation
		if err := rc.DB.First(&view, viewID).Error; err == nil {
			data["ViewReservation"] = view
		}
	}

	utils.Render(c, "reservations.html", data)
}

// UpdateReservationStatus is the only admin mutation on a reservation. It is
// idempotent: re-submitting the current status leaves the row unchanged.
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	status := c.PostForm("status")
	if !models.ValidReservationStatus(status) {
		flashAndRedirect(c, utils.FlashError, "Invalid reservation status", "/admin/reservations")
		return
	}

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, paramID(c, "id")).Error; err != nil {
		flashAndRedirect(c, utils.FlashError, "Reservation not found", "/admin/reservations")
		return
	}

	if err := rc.DB.Model(&reservation).Update("status", status).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to update reservation %d status: %v", reservation.ID, err)
		flashAndRedirect(c, utils.FlashError, "Failed to update reservation status", "/admin/reservations")
		return
	}

	flashAndRedirect(c, utils.FlashSuccess, "Reservation status updated successfully", "/admin/reservations")
}

// ShowReservationForm renders the public booking form.
func (rc *ReservationController) ShowReservationForm(c *gin.Context) {
	utils.Render(c, "reservation_form.html", nil)
}

// CreateReservation accepts a public booking. Guests may book without an
// account, so UserID stays nil.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	phone := strings.TrimSpace(c.PostForm("phone"))
	date := strings.TrimSpace(c.PostForm("date"))
	timeOfDay := strings.TrimSpace(c.PostForm("time"))

	if name == "" || email == "" || phone == "" || date == "" || timeOfDay == "" {
		flashAndRedirect(c, utils.FlashError, "Please fill in all required fields", "/reservations")
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		flashAndRedirect(c, utils.FlashError, "Invalid reservation date", "/reservations")
		return
	}

	guests, err := strconv.Atoi(c.PostForm("guests"))
	if err != nil || guests <= 0 {
		flashAndRedirect(c, utils.FlashError, "Number of guests must be greater than zero", "/reservations")
		return
	}

	reservation := models.Reservation{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Date:    date,
		Time:    timeOfDay,
		Guests:  guests,
		Message: strings.TrimSpace(c.PostForm("message")),
		Status:  models.ReservationStatusPending,
	}
	if err := rc.DB.Create(&reservation).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to create reservation: %v", err)
		flashAndRedirect(c, utils.FlashError, "Failed to submit reservation, please try again", "/reservations")
		return
	}

	flashAndRedirect(c, utils.FlashSuccess, "Your reservation has been submitted", "/reservations")
}
