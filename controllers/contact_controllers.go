package controllers

import (
	"strings"

	"github.com/cafeforyou/cafe-admin/models"
	"github.com/cafeforyou/cafe-admin/services"
	"github.com/cafeforyou/cafe-admin/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContactController struct {
	DB     *gorm.DB
	Mailer *services.Mailer
}

func NewContactController(db *gorm.DB, mailer *services.Mailer) *ContactController {
	return &ContactController{DB: db, Mailer: mailer}
}

// ListMessages renders the contact-message inbox. ?view=<id> opens a message
// in the detail panel.
func (cc *ContactController) ListMessages(c *gin.Context) {
	var messages []models.ContactMessage
	if err := cc.DB.Order("created_at DESC").Find(&messages).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to list contact messages: %v", err)
		flashAndRedirect(c, utils.FlashError, "Failed to load messages", "/admin/dashboard")
		return
	}

	var stats struct {
		Total   int64
		Unread  int64
		Read    int64
		Replied int64
	}
	for _, m := range messages {
		stats.Total++
		switch m.Status {
		case models.ContactStatusUnread:
			stats.Unread++
		case models.ContactStatusRead:
			stats.Read++
		case models.ContactStatusReplied:
			stats.Replied++
		}
	}

	data := gin.H{
		"Messages": messages,
		"Stats":    stats,
	}

	if viewID := queryID(c, "view"); viewID != 0 {
		var view models.ContactMessage
		if err := cc.DB.First(&view, viewID).Error; err == nil {
			data["ViewMessage"] = view
		}
	}

	utils.Render(c, "messages.html", data)
}

// MarkRead flips a message to read. Transitions are not forward-guarded; a
// replied message marked read goes back to read, matching the historical
// behavior of the admin surface.
func (cc *ContactController) MarkRead(c *gin.Context) {
	cc.setStatus(c, models.ContactStatusRead, "Message marked as read")
}

// Reply marks a message replied and, when SMTP is configured and a reply text
// was typed, emails it to the sender. A failed send is surfaced but the
// status still flips.
func (cc *ContactController) Reply(c *gin.Context) {
	var message models.ContactMessage
	if err := cc.DB.First(&message, paramID(c, "id")).Error; err != nil {
		flashAndRedirect(c, utils.FlashError, "Message not found", "/admin/messages")
		return
	}

	if err := cc.DB.Model(&message).Update("status", models.ContactStatusReplied).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to mark message %d replied: %v", message.ID, err)
		flashAndRedirect(c, utils.FlashError, "Failed to update message", "/admin/messages")
		return
	}

	replyText := strings.TrimSpace(c.PostForm("reply_text"))
	if replyText != "" && cc.Mailer.Enabled() {
		subject := "Re: " + message.Subject
		if message.Subject == "" {
			subject = "Re: your message to Cafe For You"
		}
		if err := cc.Mailer.Send(message.Email, subject, replyText); err != nil {
			utils.ErrorLogger.Errorf("failed to send reply to %s: %v", message.Email, err)
			flashAndRedirect(c, utils.FlashError, "Message marked as replied, but sending the email failed", "/admin/messages")
			return
		}
	}

	flashAndRedirect(c, utils.FlashSuccess, "Message marked as replied", "/admin/messages")
}

// DeleteMessage removes a message unconditionally.
func (cc *ContactController) DeleteMessage(c *gin.Context) {
	var message models.ContactMessage
	if err := cc.DB.First(&message, paramID(c, "id")).Error; err != nil {
		flashAndRedirect(c, utils.FlashError, "Message not found", "/admin/messages")
		return
	}

	if err := cc.DB.Delete(&message).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to delete message %d: %v", message.ID, err)
		flashAndRedirect(c, utils.FlashError, "Failed to delete message", "/admin/messages")
		return
	}

	flashAndRedirect(c, utils.FlashSuccess, "Message deleted successfully", "/admin/messages")
}

func (cc *ContactController) setStatus(c *gin.Context, status, successText string) {
	var message models.ContactMessage
	if err := cc.DB.First(&message, paramID(c, "id")).Error; err != nil {
		flashAndRedirect(c, utils.FlashError, "Message not found", "/admin/messages")
		return
	}

	if err := cc.DB.Model(&message).Update("status", status).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to update message %d status: %v", message.ID, err)
		flashAndRedirect(c, utils.FlashError, "Failed to update message", "/admin/messages")
		return
	}

	flashAndRedirect(c, utils.FlashSuccess, successText, "/admin/messages")
}
