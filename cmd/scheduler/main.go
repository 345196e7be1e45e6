package main

import (
	"Expiry-Reminder/cmd/config"
	"Expiry-Reminder/domain"
	"Expiry-Reminder/internal/utils"
	"Expiry-Reminder/internal/utils/mailing"
	"Expiry-Reminder/pkg/notification"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

func main() {
	once := flag.Bool("once", false, "run a single sweep and exit")
	flag.Parse()

	utils.LoadConfig()
	log := utils.NewLogger(utils.GetConfig("APP_ENV")).With().Str("component", "scheduler").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatal().Err(err).Msg("connecting database")
	}

	sweeper, err := config.NewProviders(log).NotificationService(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("building notification service")
	}

	runSweep(ctx, sweeper, log)
	if *once {
		return
	}

	ticker := time.NewTicker(utils.SweepInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("scheduler stopped")
			return
		case <-ticker.C:
			runSweep(ctx, sweeper, log)
		}
	}
}

func runSweep(ctx context.Context, sweeper notification.NotificationService, log zerolog.Logger) {
	report, err := sweeper.Sweep(ctx)
	if err != nil {
		log.Error().Err(err).Msg("sweep failed")
		return
	}
	log.Info().
		Int("selected", report.Selected).
		Int("sent", report.Sent).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Msg("sweep finished")

	to := utils.GetConfig("SWEEP_REPORT_EMAIL")
	if to == "" || !mailing.LoadMailConfig().Enabled() {
		return
	}
	if err := mailing.SendSweepReport(to, domain.DateOf(time.Now()), report); err != nil {
		log.Warn().Err(err).Str("to", to).Msg("sending sweep report")
	}
}
