package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"herald/internal/domain"
	"herald/internal/models"
	"herald/internal/repository"
	"herald/internal/sender"

	"github.com/google/uuid"
)

// SendRequest is one admin send: targeting plus the content copied onto every
// fanned-out row.
type SendRequest struct {
	Target

	Title       string                 `json:"title" binding:"required"`
	Body        string                 `json:"body"`
	Type        string                 `json:"type"`
	Priority    string                 `json:"priority"`
	Channels    []string               `json:"channels"`
	DisplayType string                 `json:"display_type"`
	ImageURL    string                 `json:"image_url"`
	ActionURL   string                 `json:"action_url"`
	ActionLabel string                 `json:"action_label"`
	Data        map[string]interface{} `json:"data"`
	AutoHideMs  int                    `json:"auto_hide_ms"`
	ScheduledAt *time.Time             `json:"scheduled_at"`
	ExpiresAt   *time.Time             `json:"expires_at"`
}

// SendResult reports the synchronous outcome of a send; delivery continues in
// the background.
type SendResult struct {
	BatchID   string `json:"batch_id"`
	Created   int    `json:"created"`
	Scheduled bool   `json:"scheduled"`
}

// DispatchService owns fan-out creation and multi-channel delivery. It is the
// sole writer of status, sent_at and delivered_at.
type DispatchService struct {
	repo      *repository.NotificationRepository
	users     *repository.UserRepository
	targeting *TargetingService
	queue     *DispatchQueue

	senders     map[string]sender.Sender
	sendTimeout time.Duration
	now         func() time.Time
}

func NewDispatchService(
	repo *repository.NotificationRepository,
	users *repository.UserRepository,
	targeting *TargetingService,
	queue *DispatchQueue,
	senders []sender.Sender,
	sendTimeout time.Duration,
) *DispatchService {
	byChannel := make(map[string]sender.Sender, len(senders))
	for _, s := range senders {
		byChannel[s.Channel()] = s
	}
	if sendTimeout <= 0 {
		sendTimeout = 30 * time.Second
	}
	return &DispatchService{
		repo:        repo,
		users:       users,
		targeting:   targeting,
		queue:       queue,
		senders:     byChannel,
		sendTimeout: sendTimeout,
		now:         time.Now,
	}
}

// Send validates the request, fans out one PENDING row per recipient in a
// single transaction, and (unless scheduled for later) hands every row to the
// background delivery queue. Creation failures leave zero rows behind.
func (s *DispatchService) Send(req *SendRequest) (*SendResult, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	recipients, err := s.targeting.Resolve(req.Target)
	if err != nil {
		return nil, err
	}

	batchID := uuid.New().String()
	rows := make([]*models.Notification, 0, len(recipients))
	for _, userID := range recipients {
		n, err := s.buildRow(req, userID, batchID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, n)
	}
	if err := s.repo.CreateBatch(rows); err != nil {
		return nil, err
	}

	scheduled := req.ScheduledAt != nil && req.ScheduledAt.After(s.now())
	if !scheduled {
		for _, n := range rows {
			id := n.ID
			s.queue.Submit(func() { s.deliver(id) })
		}
	}
	return &SendResult{BatchID: batchID, Created: len(rows), Scheduled: scheduled}, nil
}

func (s *DispatchService) validate(req *SendRequest) error {
	if req.Title == "" || len(req.Title) > 200 {
		return fmt.Errorf("%w: title must be 1-200 characters", domain.ErrValidation)
	}
	if len(req.Body) > 1000 {
		return fmt.Errorf("%w: body must be at most 1000 characters", domain.ErrValidation)
	}
	if req.Type == "" {
		req.Type = domain.TypeInfo
	}
	if !domain.ValidNotificationType(req.Type) {
		return fmt.Errorf("%w: unknown notification type %q", domain.ErrValidation, req.Type)
	}
	if req.Priority == "" {
		req.Priority = domain.PriorityNormal
	}
	if !domain.ValidPriority(req.Priority) {
		return fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, req.Priority)
	}
	if req.DisplayType == "" {
		req.DisplayType = domain.DisplayPopup
	}
	if !domain.ValidDisplayType(req.DisplayType) {
		return fmt.Errorf("%w: unknown display type %q", domain.ErrValidation, req.DisplayType)
	}
	if len(req.Channels) == 0 {
		return fmt.Errorf("%w: at least one channel is required", domain.ErrValidation)
	}
	seen := make(map[string]bool, len(req.Channels))
	deduped := req.Channels[:0]
	for _, ch := range req.Channels {
		if !domain.ValidChannel(ch) {
			return fmt.Errorf("%w: unknown channel %q", domain.ErrValidation, ch)
		}
		if !seen[ch] {
			seen[ch] = true
			deduped = append(deduped, ch)
		}
	}
	req.Channels = deduped
	if req.AutoHideMs <= 0 {
		req.AutoHideMs = domain.DefaultAutoHideMs
	}
	return nil
}

func (s *DispatchService) buildRow(req *SendRequest, userID uint, batchID string) (*models.Notification, error) {
	n := &models.Notification{
		BatchID:     batchID,
		UserID:      userID,
		Title:       req.Title,
		Body:        req.Body,
		Type:        req.Type,
		Priority:    req.Priority,
		DisplayType: req.DisplayType,
		ImageURL:    req.ImageURL,
		ActionURL:   req.ActionURL,
		ActionLabel: req.ActionLabel,
		Status:      domain.StatusPending,
		AutoHideMs:  req.AutoHideMs,
		ScheduledAt: req.ScheduledAt,
		ExpiresAt:   req.ExpiresAt,
	}
	n.SetChannels(req.Channels)
	if req.Data != nil {
		b, err := json.Marshal(req.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: data payload not serializable", domain.ErrValidation)
		}
		n.Data = string(b)
	}
	return n, nil
}

// deliver runs the delivery phase for one notification: attempt every
// requested channel, fold with inclusive-OR, stamp the final status. Errors
// stay here; delivery is fire-and-forget from the caller's perspective.
func (s *DispatchService) deliver(id uint) {
	n, err := s.repo.GetByID(id)
	if err != nil {
		log.Printf("[DISPATCH] load notification %d: %v", id, err)
		s.finish(id, false)
		return
	}
	user, err := s.users.GetByID(n.UserID)
	if err != nil {
		log.Printf("[DISPATCH] load recipient %d for notification %d: %v", n.UserID, id, err)
		s.finish(id, false)
		return
	}

	delivered := false
	for _, ch := range n.ChannelList() {
		snd, ok := s.senders[ch]
		if !ok {
			log.Printf("[DISPATCH] no sender for channel %q (notification %d)", ch, id)
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
		err := snd.Send(ctx, user, n)
		cancel()
		if err != nil {
			log.Printf("[DISPATCH] channel %s failed for notification %d: %v", ch, id, err)
			continue
		}
		delivered = true
	}
	s.finish(id, delivered)
}

func (s *DispatchService) finish(id uint, delivered bool) {
	if err := s.repo.SetDeliveryResult(id, delivered, s.now()); err != nil {
		log.Printf("[DISPATCH] record delivery result for notification %d: %v", id, err)
	}
}
