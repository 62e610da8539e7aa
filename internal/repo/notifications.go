package repo

import (
	"context"

	"github.com/binaahub/binaa-core/internal/model"
)

// Notifications is the repository for in-portal messages.
type Notifications struct {
	c *Collection[model.Notification, *model.Notification]
}

func newNotifications(deps Deps) *Notifications {
	return &Notifications{
		c: NewCollection[model.Notification](deps, model.KeyNotifications, "ntf", model.EntityNotification, false),
	}
}

func (r *Notifications) GetAll(ctx context.Context) []model.Notification { return r.c.GetAll(ctx) }

// GetByRecipient returns every notification addressed to the user.
func (r *Notifications) GetByRecipient(ctx context.Context, recipientID string) []model.Notification {
	return r.c.Filter(ctx, func(n model.Notification) bool { return n.RecipientID == recipientID })
}

// GetUnread returns the user's unread notifications.
func (r *Notifications) GetUnread(ctx context.Context, recipientID string) []model.Notification {
	return r.c.Filter(ctx, func(n model.Notification) bool {
		return n.RecipientID == recipientID && !n.Read
	})
}

func (r *Notifications) Create(ctx context.Context, n model.Notification) (model.Notification, error) {
	return r.c.Create(ctx, n)
}

// MarkRead marks a notification read, stamping ReadAt once.
func (r *Notifications) MarkRead(ctx context.Context, id string) (model.Notification, bool) {
	return r.c.Update(ctx, id, func(n *model.Notification) {
		if !n.Read {
			n.Read = true
			now := r.c.deps.Clock.Now()
			n.ReadAt = &now
		}
	})
}

func (r *Notifications) Delete(ctx context.Context, id string) bool { return r.c.Delete(ctx, id) }
