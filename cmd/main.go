package main

import (
	"Expiry-Reminder/cmd/config"
	migration "Expiry-Reminder/cmd/database/migrate"
	"Expiry-Reminder/internal/utils"
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	utils.LoadConfig()
	log := utils.NewLogger(utils.GetConfig("APP_ENV"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatal().Err(err).Msg("connecting database")
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrating database")
	}

	app, cleanup, err := config.NewApp(ctx, db, log)
	if err != nil {
		log.Fatal().Err(err).Msg("building app")
	}
	defer cleanup()

	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutting down server")
		}
	}()

	port := utils.GetConfig("PORT")
	log.Info().Str("port", port).Msg("server starting")
	if err := app.Listen(":" + port); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}
