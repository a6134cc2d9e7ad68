package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/cafeforyou/cafe-admin/models"
	"github.com/stretchr/testify/assert"
)

func TestUpdateReservationStatus(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, 1)
	db.Create(&models.Reservation{
		Name: "Dana", Email: "dana@example.com", Phone: "555-0100",
		Date: "2026-09-01", Time: "19:00", Guests: 4,
		Status: models.ReservationStatusPending,
	})

	w := postForm(r, "/admin/reservations/1/status", url.Values{
		"status": {models.ReservationStatusConfirmed},
	}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	var reservation models.Reservation
	db.First(&reservation, 1)
	assert.Equal(t, models.ReservationStatusConfirmed, reservation.Status)
	// customer-supplied fields are untouched
	assert.Equal(t, "Dana", reservation.Name)
	assert.Equal(t, "2026-09-01", reservation.Date)
	assert.Equal(t, 4, reservation.Guests)
}

func TestUpdateReservationStatusIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, 1)
	db.Create(&models.Reservation{
		Name: "Eli", Email: "eli@example.com", Phone: "555-0101",
		Date: "2026-09-02", Time: "18:30", Guests: 2,
		Status: models.ReservationStatusPending,
	})

	form := url.Values{"status": {models.ReservationStatusConfirmed}}
	postForm(r, "/admin/reservations/1/status", form, nil)

	var first models.Reservation
	db.First(&first, 1)

	postForm(r, "/admin/reservations/1/status", form, nil)

	var second models.Reservation
	db.First(&second, 1)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.Date, second.Date)
	assert.Equal(t, first.Time, second.Time)
	assert.Equal(t, first.Guests, second.Guests)
	assert.Equal(t, first.Message, second.Message)
}

func TestUpdateReservationStatusRejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, 1)
	db.Create(&models.Reservation{
		Name: "Fay", Email: "fay@example.com", Phone: "555-0102",
		Date: "2026-09-03", Time: "20:00", Guests: 6,
		Status: models.ReservationStatusPending,
	})

	postForm(r, "/admin/reservations/1/status", url.Values{"status": {"arrived"}}, nil)

	var reservation models.Reservation
	db.First(&reservation, 1)
	assert.Equal(t, models.ReservationStatusPending, reservation.Status)
}

func TestCreateReservation(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, 1)

	w := postForm(r, "/reservations", url.Values{
		"name":   {"Walk-in Guest"},
		"email":  {"guest@example.com"},
		"phone":  {"555-0103"},
		"date":   {"2026-09-10"},
		"time":   {"19:30"},
		"guests": {"3"},
	}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	var reservation models.Reservation
	assert.NoError(t, db.Where("email = ?", "guest@example.com").First(&reservation).Error)
	assert.Equal(t, models.ReservationStatusPending, reservation.Status)
	assert.Nil(t, reservation.UserID)
}

func TestCreateReservationRejectsNonPositiveGuests(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, 1)

	for _, guests := range []string{"0", "-2", ""} {
		w := postForm(r, "/reservations", url.Values{
			"name":   {"Guest"},
			"email":  {"g@example.com"},
			"phone":  {"555-0104"},
			"date":   {"2026-09-11"},
			"time":   {"18:00"},
			"guests": {guests},
		}, nil)
		assert.Contains(t, flashAfter(r, w, "/reservations"),
			"[error] Number of guests must be greater than zero")
	}

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateReservationRejectsBadDate(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, 1)

	w := postForm(r, "/reservations", url.Values{
		"name":   {"Guest"},
		"email":  {"g@example.com"},
		"phone":  {"555-0105"},
		"date":   {"next friday"},
		"time":   {"18:00"},
		"guests": {"2"},
	}, nil)
	assert.Contains(t, flashAfter(r, w, "/reservations"), "[error] Invalid reservation date")
}
