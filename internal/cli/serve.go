package cli

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"household-hub/internal/api"
	"household-hub/internal/bot"
	"household-hub/internal/notify"
	"household-hub/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API, the scheduler and the Telegram bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var notifiers []service.Notifier
		var telegramBot *bot.Bot
		if cfg.Telegram.Token != "" {
			b, err := bot.New(cfg.Telegram.Token, userRepo, reminderSvc)
			if err != nil {
				return err
			}
			telegramBot = b
			notifiers = append(notifiers, b)
		} else {
			log.Println("[info] telegram token not set, bot disabled")
		}
		if cfg.Email.SendGridAPIKey != "" && len(cfg.EmailRecipients()) > 0 {
			notifiers = append(notifiers, notify.NewEmailNotifier(
				cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName, cfg.EmailRecipients()))
		}
		digests := service.NewDigestService(reminderSvc, notifiers...)

		if cfg.Scheduler.Enabled {
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			scheduler := service.NewSchedulerService(loc)
			if _, err := scheduler.ScheduleDaily("sync", cfg.Scheduler.SyncAt, func(ctx context.Context) error {
				_, err := reminderSvc.Sync(ctx)
				return err
			}); err != nil {
				return err
			}
			if cfg.Scheduler.DigestAt != "" && len(notifiers) > 0 {
				if _, err := scheduler.ScheduleDaily("digest", cfg.Scheduler.DigestAt, digests.Send); err != nil {
					return err
				}
			}
			scheduler.Start()
			defer scheduler.Stop()
		}

		server := api.NewServer(api.Services{
			Reminders:   reminderSvc,
			Assets:      assetSvc,
			Preferences: prefsSvc,
		}, cfg.CORSOrigins())

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return server.Run(ctx, cfg.HTTP.Addr)
		})
		if telegramBot != nil {
			g.Go(func() error {
				return telegramBot.Start(ctx)
			})
		}

		log.Println("[info] household hub started")
		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		log.Println("[info] shutdown complete")
		return nil
	},
}
