package notification

import (
	"context"
	"time"

	"Expiry-Reminder/domain"
	"Expiry-Reminder/internal/metrics"
	"Expiry-Reminder/pkg/push"

	"github.com/rs/zerolog"
)

type (
	// NotificationService runs the expiry reminder sweep.
	NotificationService interface {
		Sweep(ctx context.Context) (domain.SweepReport, error)
	}

	notificationService struct {
		notificationRepository NotificationRepository
		transport              push.Transport
		sendTimeout            time.Duration
		logger                 zerolog.Logger
		now                    func() time.Time
	}
)

func NewNotificationService(
	notificationRepository NotificationRepository,
	transport push.Transport,
	sendTimeout time.Duration,
	logger zerolog.Logger,
	now func() time.Time,
) NotificationService {
	if now == nil {
		now = time.Now
	}
	return &notificationService{
		notificationRepository: notificationRepository,
		transport:              transport,
		sendTimeout:            sendTimeout,
		logger:                 logger,
		now:                    now,
	}
}

// Sweep sends one reminder per unnotified item expiring tomorrow. Each
// delivered item is committed as notified before the next one is tried;
// failed or tokenless items stay eligible for the next run.
func (s *notificationService) Sweep(ctx context.Context) (domain.SweepReport, error) {
	start := time.Now()
	defer metrics.ObserveSweep(start)

	tomorrow := domain.DateOf(s.now()).AddDate(0, 0, 1)
	items, err := s.notificationRepository.GetUnnotifiedItemsExpiringOn(ctx, tomorrow)
	if err != nil {
		return domain.SweepReport{}, err
	}

	report := domain.SweepReport{Selected: len(items)}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			s.logSummary(tomorrow, report).Err(err).Msg("notification sweep interrupted")
			return report, err
		}

		log := s.logger.With().Str("item_id", item.ID.String()).Str("item", item.Name).Logger()

		if item.Receipt == nil || item.Receipt.User == nil || !item.Receipt.User.HasPushToken() {
			report.Skipped++
			metrics.NotificationsSkipped.Inc()
			log.Debug().Msg("owner has no push token, skipping reminder")
			continue
		}

		if err := s.send(ctx, *item.Receipt.User.PushToken, domain.ExpiryReminderBody(item.Name)); err != nil {
			report.Failed++
			metrics.NotificationsFailed.Inc()
			log.Warn().Err(err).Msg("expiry reminder not delivered")
			continue
		}

		report.Sent++
		metrics.NotificationsSent.Inc()
		// a delivered reminder is recorded even if the sweep is being cancelled
		if err := s.notificationRepository.MarkNotified(context.WithoutCancel(ctx), item.ID.String()); err != nil {
			log.Error().Err(err).Msg("reminder delivered but notified flag not saved")
		}
	}

	s.logSummary(tomorrow, report).Msg("notification sweep finished")
	return report, nil
}

func (s *notificationService) logSummary(day time.Time, report domain.SweepReport) *zerolog.Event {
	event := s.logger.Info()
	if report.Sent+report.Failed+report.Skipped < report.Selected {
		event = s.logger.Warn()
	}
	return event.
		Str("day", day.Format(domain.DateLayout)).
		Int("selected", report.Selected).
		Int("sent", report.Sent).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped)
}

func (s *notificationService) send(ctx context.Context, token, body string) error {
	if s.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.sendTimeout)
		defer cancel()
	}
	return s.transport.Send(ctx, token, domain.ExpiryReminderTitle, body)
}
