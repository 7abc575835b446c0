package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"herald/internal/domain"
	"herald/internal/repository"
	"herald/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	notifRepo *repository.NotificationRepository
	userRepo  *repository.UserRepository
	dispatch  *service.DispatchService
}

func NewAdminHandler(
	notifRepo *repository.NotificationRepository,
	userRepo *repository.UserRepository,
	dispatch *service.DispatchService,
) *AdminHandler {
	return &AdminHandler{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		dispatch:  dispatch,
	}
}

// Send handles POST /admin/notifications — fan-out create plus asynchronous
// delivery. Responds as soon as the rows are persisted.
func (h *AdminHandler) Send(c *gin.Context) {
	var req service.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.dispatch.Send(&req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNoTargets):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "send failed"})
		}
		return
	}
	c.JSON(http.StatusAccepted, result)
}

// List handles GET /admin/notifications with optional user_id / type /
// unread filters.
func (h *AdminHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	f := repository.ListFilter{
		UserID:      uint(userID),
		Type:        c.Query("type"),
		UnreadOnly:  c.Query("unread") == "true",
		DisplayType: c.Query("display_type"),
		Page:        page,
		Limit:       limit,
	}
	list, total, _, err := h.notifRepo.List(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// Stats handles GET /admin/notifications/stats?days=N — delivery aggregates
// over a trailing window (default 7 days).
func (h *AdminHandler) Stats(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	if days < 1 || days > 365 {
		days = 7
	}
	stats, err := h.notifRepo.Stats(time.Now().AddDate(0, 0, -days))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "stats": stats})
}

// Delete handles DELETE /admin/notifications/:id — deletes any user's row.
func (h *AdminHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.notifRepo.Delete(uint(id), 0); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListUsers handles GET /admin/users — recipient lookup for send tooling.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := parsePagination(c)
	users, total, err := h.userRepo.ListUsers(c.Query("search"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "total": total, "page": page, "limit": limit})
}
