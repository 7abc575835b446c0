package handler

import (
	"net/http"
	"regexp"

	"herald/internal/middleware"
	"herald/internal/repository"

	"github.com/gin-gonic/gin"
)

type PreferenceHandler struct {
	repo *repository.PreferenceRepository
}

func NewPreferenceHandler(repo *repository.PreferenceRepository) *PreferenceHandler {
	return &PreferenceHandler{repo: repo}
}

// Get handles GET /me/preferences. The row is created with defaults on first
// read.
func (h *PreferenceHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	p, err := h.repo.GetOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}
	c.JSON(http.StatusOK, p)
}

var hhmmRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Update handles PUT /me/preferences. Only fields present in the request
// body are changed.
func (h *PreferenceHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		InAppEnabled          *bool   `json:"in_app_enabled"`
		EmailEnabled          *bool   `json:"email_enabled"`
		SMSEnabled            *bool   `json:"sms_enabled"`
		SystemEnabled         *bool   `json:"system_enabled"`
		ContentEnabled        *bool   `json:"content_enabled"`
		RecommendationEnabled *bool   `json:"recommendation_enabled"`
		SubscriptionEnabled   *bool   `json:"subscription_enabled"`
		PromotionEnabled      *bool   `json:"promotion_enabled"`
		ReminderEnabled       *bool   `json:"reminder_enabled"`
		QuietHoursEnabled     *bool   `json:"quiet_hours_enabled"`
		QuietHoursStart       *string `json:"quiet_hours_start"`
		QuietHoursEnd         *string `json:"quiet_hours_end"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	setBool := func(col string, v *bool) {
		if v != nil {
			updates[col] = *v
		}
	}
	setBool("in_app_enabled", req.InAppEnabled)
	setBool("email_enabled", req.EmailEnabled)
	setBool("sms_enabled", req.SMSEnabled)
	setBool("system_enabled", req.SystemEnabled)
	setBool("content_enabled", req.ContentEnabled)
	setBool("recommendation_enabled", req.RecommendationEnabled)
	setBool("subscription_enabled", req.SubscriptionEnabled)
	setBool("promotion_enabled", req.PromotionEnabled)
	setBool("reminder_enabled", req.ReminderEnabled)
	setBool("quiet_hours_enabled", req.QuietHoursEnabled)
	for col, v := range map[string]*string{
		"quiet_hours_start": req.QuietHoursStart,
		"quiet_hours_end":   req.QuietHoursEnd,
	} {
		if v == nil {
			continue
		}
		if !hhmmRe.MatchString(*v) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quiet hours must be HH:MM"})
			return
		}
		updates[col] = *v
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	p, err := h.repo.Update(userID, updates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, p)
}
