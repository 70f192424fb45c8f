package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"cusceda/pkg/logger"
	"cusceda/services/notification/internal/entity"
	"cusceda/services/notification/internal/repo/persistent"

	"golang.org/x/sync/errgroup"
)

type NotificationUseCase interface {
	// AggregateAndList records any new business events as notifications for
	// userID and returns that user's full feed, newest first.
	AggregateAndList(ctx context.Context, userID string) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id string) (*entity.Notification, error)
}

// Publisher pushes freshly inserted notifications to live listeners.
type Publisher interface {
	Publish(ctx context.Context, n entity.Notification) error
}

type Options struct {
	RecentOrders      int
	RecentSignups     int
	LowStockThreshold int
	// UpsertConcurrency bounds in-flight inserts within one pass.
	UpsertConcurrency int
}

func DefaultOptions() Options {
	return Options{
		RecentOrders:      10,
		RecentSignups:     5,
		LowStockThreshold: 5,
		UpsertConcurrency: 16,
	}
}

type notificationUseCase struct {
	sources          persistent.EventSourceRepository
	notificationRepo persistent.NotificationRepository
	publisher        Publisher
	opts             Options
	logger           *logger.Logger
	now              func() time.Time
}

func NewNotificationUseCase(sources persistent.EventSourceRepository, notificationRepo persistent.NotificationRepository, publisher Publisher, opts Options, logger *logger.Logger) NotificationUseCase {
	if opts.UpsertConcurrency <= 0 {
		opts.UpsertConcurrency = DefaultOptions().UpsertConcurrency
	}
	return &notificationUseCase{
		sources:          sources,
		notificationRepo: notificationRepo,
		publisher:        publisher,
		opts:             opts,
		logger:           logger,
		now:              time.Now,
	}
}

func (uc *notificationUseCase) AggregateAndList(ctx context.Context, userID string) ([]entity.Notification, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, entity.ErrInvalidInput
	}

	events, err := uc.readEvents(ctx)
	if err != nil {
		uc.logger.Error("[AGGREGATOR] event read failed user=%s: %v", userID, err)
		return nil, err
	}

	candidates := BuildCandidates(events)
	if err := uc.upsertAll(ctx, userID, candidates); err != nil {
		return nil, err
	}

	notifications, err := uc.notificationRepo.ListByUser(ctx, userID)
	if err != nil {
		uc.logger.Error("[AGGREGATOR] read back failed user=%s: %v", userID, err)
		return nil, err
	}

	if len(notifications) == 0 {
		return []entity.Notification{entity.Placeholder(uc.now())}, nil
	}
	return notifications, nil
}

// readEvents queries all sources concurrently; the first failure cancels the rest.
func (uc *notificationUseCase) readEvents(ctx context.Context) (entity.Events, error) {
	var events entity.Events
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		orders, err := uc.sources.RecentOrders(gctx, uc.opts.RecentOrders)
		events.Orders = orders
		return err
	})
	g.Go(func() error {
		stock, err := uc.sources.LowStockProducts(gctx, uc.opts.LowStockThreshold)
		events.Stock = stock
		return err
	})
	g.Go(func() error {
		reviews, err := uc.sources.PendingReviews(gctx)
		events.Reviews = reviews
		return err
	})
	g.Go(func() error {
		signups, err := uc.sources.RecentSignups(gctx, uc.opts.RecentSignups)
		events.Signups = signups
		return err
	})
	g.Go(func() error {
		contacts, err := uc.sources.OpenContacts(gctx)
		events.Contacts = contacts
		return err
	})

	if err := g.Wait(); err != nil {
		return entity.Events{}, err
	}
	return events, nil
}

// upsertAll lets every insert settle before reporting; one failing insert
// does not stop its siblings.
func (uc *notificationUseCase) upsertAll(ctx context.Context, userID string, candidates []entity.Candidate) error {
	var (
		mu       sync.Mutex
		failures []error
		inserted []entity.Notification
	)

	var g errgroup.Group
	g.SetLimit(uc.opts.UpsertConcurrency)

	for _, c := range candidates {
		g.Go(func() error {
			n := c.ForUser(userID)
			created, err := uc.notificationRepo.InsertIfAbsent(ctx, &n)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				uc.logger.Error("[AGGREGATOR] upsert failed type=%s message=%q: %v", c.Type, c.Message, err)
				failures = append(failures, fmt.Errorf("upsert %s %q: %w", c.Type, c.Message, err))
				return nil
			}
			if created {
				inserted = append(inserted, n)
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(inserted) > 0 {
		uc.logger.Info("[AGGREGATOR] %d new notification(s) for user %s", len(inserted), userID)
		uc.publish(ctx, inserted)
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d notification upserts failed: %w", len(failures), len(candidates), errors.Join(failures...))
	}
	return nil
}

func (uc *notificationUseCase) publish(ctx context.Context, notifications []entity.Notification) {
	if uc.publisher == nil {
		return
	}
	for _, n := range notifications {
		if err := uc.publisher.Publish(ctx, n); err != nil {
			uc.logger.Warn("[AGGREGATOR] publish failed id=%s: %v", n.ID, err)
		}
	}
}

func (uc *notificationUseCase) MarkRead(ctx context.Context, id string) (*entity.Notification, error) {
	if strings.TrimSpace(id) == "" {
		return nil, entity.ErrInvalidInput
	}

	notification, err := uc.notificationRepo.MarkRead(ctx, id)
	if err != nil {
		if !errors.Is(err, entity.ErrNotFound) {
			uc.logger.Error("Failed to mark notification %s as read: %v", id, err)
		}
		return nil, err
	}
	return notification, nil
}
