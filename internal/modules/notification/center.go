package notification

import (
	"context"
	"sync"

	"gumeo/internal/domain"
)

// Center is the owned, synchronized view of one user's notification feed.
// Remote mutations go through the service first and the local list is
// updated only when the write succeeded, so the list never claims a state
// the store refused. The unread count is always a reduction over the rows
// held here, never a separate query.
type Center struct {
	svc    *Service
	userID string

	mu   sync.Mutex
	list []domain.Notification
}

func NewCenter(svc *Service, userID string) *Center {
	return &Center{svc: svc, userID: userID}
}

// Load fetches the newest MaxFeedSize rows. On failure the previously
// held list stays untouched.
func (c *Center) Load(ctx context.Context) error {
	list, _, err := c.svc.List(ctx, c.userID, MaxFeedSize)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.list = list
	c.mu.Unlock()
	return nil
}

// Notifications returns a copy of the held rows, newest first.
func (c *Center) Notifications() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Notification, len(c.list))
	copy(out, c.list)
	return out
}

// UnreadCount reduces over the held rows only.
func (c *Center) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for i := range c.list {
		if !c.list[i].Read {
			count++
		}
	}
	return count
}

func (c *Center) MarkRead(ctx context.Context, id string) error {
	if err := c.svc.MarkRead(ctx, id, c.userID); err != nil {
		return err
	}
	c.ApplyRead(id)
	return nil
}

func (c *Center) MarkAllRead(ctx context.Context) error {
	if err := c.svc.MarkAllRead(ctx, c.userID); err != nil {
		return err
	}
	c.ApplyAllRead()
	return nil
}

func (c *Center) Delete(ctx context.Context, id string) error {
	if err := c.svc.Delete(ctx, id, c.userID); err != nil {
		return err
	}
	c.ApplyDelete(id)
	return nil
}

// Apply prepends a row pushed from the store, trimming to MaxFeedSize.
func (c *Center) Apply(n domain.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.list = append([]domain.Notification{n}, c.list...)
	if len(c.list) > MaxFeedSize {
		c.list = c.list[:MaxFeedSize]
	}
}

// ApplyRead marks a held row read without a remote call. Rows only ever
// move false -> true, so a repeat apply is a no-op.
func (c *Center) ApplyRead(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.list {
		if c.list[i].ID == id {
			c.list[i].Read = true
			return
		}
	}
}

func (c *Center) ApplyAllRead() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.list {
		c.list[i].Read = true
	}
}

func (c *Center) ApplyDelete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.list {
		if c.list[i].ID == id {
			c.list = append(c.list[:i], c.list[i+1:]...)
			return
		}
	}
}
