package repository

import (
	"fmt"
	"testing"
	"time"

	"herald/internal/domain"
	"herald/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotification(userID uint, mutate func(*models.Notification)) *models.Notification {
	n := &models.Notification{
		UserID:      userID,
		Title:       "hello",
		Body:        "world",
		Type:        domain.TypeInfo,
		Priority:    domain.PriorityNormal,
		Channels:    domain.ChannelInApp,
		DisplayType: domain.DisplayPopup,
		Status:      domain.StatusPending,
		AutoHideMs:  domain.DefaultAutoHideMs,
	}
	if mutate != nil {
		mutate(n)
	}
	return n
}

func TestCreateBatch_AllOrNothing(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	u := seedUser(t, db, &models.User{Username: "a", Email: "a@x.io", Active: true})

	existing := newNotification(u.ID, nil)
	require.NoError(t, repo.Create(existing))

	good := newNotification(u.ID, nil)
	dup := newNotification(u.ID, nil)
	dup.ID = existing.ID // forces a primary key conflict mid-batch

	err := repo.CreateBatch([]*models.Notification{good, dup})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(1), count, "failed batch leaves no partial rows")
}

func TestCreateBatch_CreatesOnePerRecipient(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	u := seedUser(t, db, &models.User{Username: "a", Email: "a@x.io", Active: true})

	var rows []*models.Notification
	for i := 0; i < 3; i++ {
		rows = append(rows, newNotification(u.ID, nil))
	}
	require.NoError(t, repo.CreateBatch(rows))

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(3), count)
	for _, n := range rows {
		assert.NotZero(t, n.ID)
	}
}

func TestList_FiltersAndUnreadCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	u := seedUser(t, db, &models.User{Username: "a", Email: "a@x.io", Active: true})
	other := seedUser(t, db, &models.User{Username: "b", Email: "b@x.io", Active: true})

	now := time.Now()
	require.NoError(t, repo.Create(newNotification(u.ID, func(n *models.Notification) {
		n.Type = domain.TypeAlert
	})))
	require.NoError(t, repo.Create(newNotification(u.ID, func(n *models.Notification) {
		n.IsRead = true
		n.ReadAt = &now
		n.Status = domain.StatusRead
	})))
	// Expired rows still show in the general list.
	past := now.Add(-time.Hour)
	require.NoError(t, repo.Create(newNotification(u.ID, func(n *models.Notification) {
		n.ExpiresAt = &past
	})))
	require.NoError(t, repo.Create(newNotification(other.ID, nil)))

	list, total, unread, err := repo.List(ListFilter{UserID: u.ID, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, int64(2), unread)

	// Type filter narrows the page but not the unread count.
	list, total, unread, err = repo.List(ListFilter{UserID: u.ID, Type: domain.TypeAlert, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, int64(2), unread)

	list, _, _, err = repo.List(ListFilter{UserID: u.ID, UnreadOnly: true, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestPendingPopups_CapAndExpiry(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	u := seedUser(t, db, &models.User{Username: "a", Email: "a@x.io", Active: true})

	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	for i := 0; i < 7; i++ {
		require.NoError(t, repo.Create(newNotification(u.ID, func(n *models.Notification) {
			n.Title = fmt.Sprintf("popup %d", i)
		})))
	}
	// Expired, screen-only and read rows never qualify.
	require.NoError(t, repo.Create(newNotification(u.ID, func(n *models.Notification) {
		n.ExpiresAt = &past
	})))
	require.NoError(t, repo.Create(newNotification(u.ID, func(n *models.Notification) {
		n.DisplayType = domain.DisplayScreen
	})))
	require.NoError(t, repo.Create(newNotification(u.ID, func(n *models.Notification) {
		n.IsRead = true
		n.ReadAt = &now
	})))
	// An unexpired row with a future expiry qualifies.
	require.NoError(t, repo.Create(newNotification(u.ID, func(n *models.Notification) {
		n.ExpiresAt = &future
		n.DisplayType = domain.DisplayBoth
	})))

	list, err := repo.PendingPopups(u.ID, now)
	require.NoError(t, err)
	assert.Len(t, list, domain.PopupViewLimit, "popup view is capped")
	for _, n := range list {
		assert.False(t, n.IsRead)
		assert.Contains(t, []string{domain.DisplayPopup, domain.DisplayBoth}, n.DisplayType)
	}
}

func TestPendingScreen_PriorityOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	u := seedUser(t, db, &models.User{Username: "a", Email: "a@x.io", Active: true})

	older := time.Now().Add(-time.Hour)
	newer := time.Now().Add(-time.Minute)
	mk := func(priority string, created time.Time) {
		n := newNotification(u.ID, func(n *models.Notification) {
			n.Priority = priority
			n.DisplayType = domain.DisplayScreen
		})
		require.NoError(t, repo.Create(n))
		require.NoError(t, db.Model(n).Update("created_at", created).Error)
	}
	mk(domain.PriorityLow, newer)
	mk(domain.PriorityUrgent, older)
	mk(domain.PriorityHigh, newer)
	mk(domain.PriorityUrgent, newer)
	mk(domain.PriorityNormal, older)

	list, err := repo.PendingScreen(u.ID, time.Now())
	require.NoError(t, err)
	require.Len(t, list, 5)

	got := make([]string, len(list))
	for i, n := range list {
		got[i] = n.Priority
	}
	assert.Equal(t, []string{
		domain.PriorityUrgent, domain.PriorityUrgent,
		domain.PriorityHigh, domain.PriorityNormal, domain.PriorityLow,
	}, got)
	// Newest-first tie-break between the two urgent rows.
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
}

func TestMarkRead(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	u := seedUser(t, db, &models.User{Username: "a", Email: "a@x.io", Active: true})
	stranger := seedUser(t, db, &models.User{Username: "b", Email: "b@x.io", Active: true})

	n := newNotification(u.ID, nil)
	require.NoError(t, repo.Create(n))

	now := time.Now()
	require.NoError(t, repo.MarkRead(n.ID, u.ID, now))

	got, err := repo.GetByID(n.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRead)
	require.NotNil(t, got.ReadAt)
	assert.Equal(t, domain.StatusRead, got.Status)

	// Idempotent on a second call.
	require.NoError(t, repo.MarkRead(n.ID, u.ID, now.Add(time.Minute)))
	again, err := repo.GetByID(n.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, *got.ReadAt, *again.ReadAt, time.Second)

	// Foreign owner and missing id are both not-found.
	assert.ErrorIs(t, repo.MarkRead(n.ID, stranger.ID, now), domain.ErrNotFound)
	assert.ErrorIs(t, repo.MarkRead(99999, u.ID, now), domain.ErrNotFound)
}

func TestMarkAllRead(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	u := seedUser(t, db, &models.User{Username: "a", Email: "a@x.io", Active: true})

	for i := 0; i < 4; i++ {
		require.NoError(t, repo.Create(newNotification(u.ID, nil)))
	}

	count, err := repo.MarkAllRead(u.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	var unread int64
	db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", u.ID, false).Count(&unread)
	assert.Zero(t, unread)

	// Second call is a no-op.
	count, err = repo.MarkAllRead(u.ID, time.Now())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSetDeliveryResult(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	u := seedUser(t, db, &models.User{Username: "a", Email: "a@x.io", Active: true})

	t.Run("delivered stamps both timestamps", func(t *testing.T) {
		n := newNotification(u.ID, nil)
		require.NoError(t, repo.Create(n))
		require.NoError(t, repo.SetDeliveryResult(n.ID, true, time.Now()))
		got, err := repo.GetByID(n.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDelivered, got.Status)
		assert.NotNil(t, got.SentAt)
		assert.NotNil(t, got.DeliveredAt)
	})

	t.Run("failed stamps sent_at only", func(t *testing.T) {
		n := newNotification(u.ID, nil)
		require.NoError(t, repo.Create(n))
		require.NoError(t, repo.SetDeliveryResult(n.ID, false, time.Now()))
		got, err := repo.GetByID(n.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusFailed, got.Status)
		assert.NotNil(t, got.SentAt)
		assert.Nil(t, got.DeliveredAt)
	})

	t.Run("never downgrades a READ row but still stamps timestamps", func(t *testing.T) {
		n := newNotification(u.ID, nil)
		require.NoError(t, repo.Create(n))
		require.NoError(t, repo.MarkRead(n.ID, u.ID, time.Now()))
		require.NoError(t, repo.SetDeliveryResult(n.ID, true, time.Now()))
		got, err := repo.GetByID(n.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRead, got.Status)
		assert.NotNil(t, got.SentAt, "a read before delivery finishes must not lose the send timestamp")
		assert.NotNil(t, got.DeliveredAt)
	})

	t.Run("READ row on failed delivery keeps status, sent_at only", func(t *testing.T) {
		n := newNotification(u.ID, nil)
		require.NoError(t, repo.Create(n))
		require.NoError(t, repo.MarkRead(n.ID, u.ID, time.Now()))
		require.NoError(t, repo.SetDeliveryResult(n.ID, false, time.Now()))
		got, err := repo.GetByID(n.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRead, got.Status)
		assert.NotNil(t, got.SentAt)
		assert.Nil(t, got.DeliveredAt)
	})
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	u := seedUser(t, db, &models.User{Username: "a", Email: "a@x.io", Active: true})
	stranger := seedUser(t, db, &models.User{Username: "b", Email: "b@x.io", Active: true})

	n := newNotification(u.ID, nil)
	require.NoError(t, repo.Create(n))

	assert.ErrorIs(t, repo.Delete(n.ID, stranger.ID), domain.ErrNotFound)
	require.NoError(t, repo.Delete(n.ID, u.ID))
	assert.ErrorIs(t, repo.Delete(n.ID, u.ID), domain.ErrNotFound)

	// Admin path (no owner filter).
	n2 := newNotification(u.ID, nil)
	require.NoError(t, repo.Create(n2))
	require.NoError(t, repo.Delete(n2.ID, 0))
}

func TestStats(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	u := seedUser(t, db, &models.User{Username: "a", Email: "a@x.io", Active: true})

	now := time.Now()
	require.NoError(t, repo.Create(newNotification(u.ID, func(n *models.Notification) {
		n.Status = domain.StatusDelivered
	})))
	require.NoError(t, repo.Create(newNotification(u.ID, func(n *models.Notification) {
		n.Status = domain.StatusFailed
	})))
	require.NoError(t, repo.Create(newNotification(u.ID, func(n *models.Notification) {
		n.Status = domain.StatusRead
		n.IsRead = true
		n.ReadAt = &now
	})))
	require.NoError(t, repo.Create(newNotification(u.ID, nil)))

	stats, err := repo.Stats(now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(1), stats.Delivered)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(1), stats.Read)
	assert.Equal(t, int64(3), stats.Unread)

	// Window excludes everything when it starts in the future.
	stats, err = repo.Stats(now.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
}
