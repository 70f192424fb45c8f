package notifyclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cusceda/pkg/logger"
)

const (
	DefaultInterval = 30 * time.Second

	// placeholderID marks the synthetic empty-feed entry.
	placeholderID = "placeholder"
)

// Feed is the part of Client the poller needs.
type Feed interface {
	List(ctx context.Context) ([]Notification, error)
	MarkRead(ctx context.Context, id string) (*Notification, error)
}

type State int

const (
	StateLoading State = iota
	StateReady
)

// SeenSet holds the identifiers observed in the previous fetch.
type SeenSet map[string]struct{}

// Diff returns the identifier set of items and how many of them were not
// in prev. The placeholder entry is never counted.
func Diff(prev SeenSet, items []Notification) (SeenSet, int) {
	next := make(SeenSet, len(items))
	newCount := 0
	for _, n := range items {
		if n.ID == "" || n.ID == placeholderID {
			continue
		}
		if _, dup := next[n.ID]; dup {
			continue
		}
		next[n.ID] = struct{}{}
		if _, ok := prev[n.ID]; !ok {
			newCount++
		}
	}
	return next, newCount
}

func AlertMessage(count int) string {
	return fmt.Sprintf("You have %d new notification(s)!", count)
}

// Route is the admin page a notification opens, or "" for types with no
// destination.
func Route(n Notification) string {
	switch n.Type {
	case "order":
		return "/admin/orders/" + n.RelatedID
	case "stock":
		return "/admin/products/" + n.RelatedID
	case "user":
		return "/admin/users/" + n.RelatedID
	case "review":
		return "/admin/reviews/" + n.RelatedID
	case "message", "mail":
		return "/admin/messages"
	}
	return ""
}

// Poller keeps the latest feed and raises one alert per fetch that
// surfaces unseen items.
type Poller struct {
	feed     Feed
	interval time.Duration
	alert    func(message string)
	logger   *logger.Logger

	mu    sync.Mutex
	state State
	items []Notification
	seen  SeenSet
}

// NewPoller uses DefaultInterval when interval is not positive. alert may
// be nil.
func NewPoller(feed Feed, interval time.Duration, alert func(message string), logger *logger.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if alert == nil {
		alert = func(string) {}
	}
	return &Poller{
		feed:     feed,
		interval: interval,
		alert:    alert,
		logger:   logger,
		state:    StateLoading,
		seen:     SeenSet{},
	}
}

// Run fetches once without alerting, then refetches every interval until
// ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	_ = p.Refresh(ctx, false)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_ = p.Refresh(ctx, true)
		}
	}
}

// Refresh replaces the held feed with a fresh fetch. A failed fetch is
// logged and leaves the previous feed in place.
func (p *Poller) Refresh(ctx context.Context, notify bool) error {
	items, err := p.feed.List(ctx)

	p.mu.Lock()
	p.state = StateReady
	if err != nil {
		p.mu.Unlock()
		p.logger.Error("Failed to fetch notifications: %v", err)
		return err
	}

	next, newCount := Diff(p.seen, items)
	p.seen = next
	p.items = items
	p.mu.Unlock()

	if notify && newCount > 0 {
		p.alert(AlertMessage(newCount))
	}
	return nil
}

func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Poller) Items() []Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Notification, len(p.items))
	copy(out, p.items)
	return out
}

func (p *Poller) Unread() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	count := 0
	for _, n := range p.items {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// Open marks the notification read locally, asks the server to do the
// same and returns where it leads. A failed server update is logged and
// the local state is kept.
func (p *Poller) Open(ctx context.Context, id string) string {
	var target Notification
	found := false

	p.mu.Lock()
	for i := range p.items {
		if p.items[i].ID == id {
			p.items[i].IsRead = true
			target = p.items[i]
			found = true
			break
		}
	}
	p.mu.Unlock()

	if !found || id == placeholderID {
		return ""
	}

	if _, err := p.feed.MarkRead(ctx, id); err != nil {
		p.logger.Error("Failed to mark notification %s as read: %v", id, err)
	}
	return Route(target)
}
