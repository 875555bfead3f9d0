package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DalPra0/MetodoCanvas/internal/study"
)

// runCmd keeps the notification scheduler running until interrupted.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the notification scheduler until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		scheduler := study.NewScheduler(a.state, a.cfg.Notifications.Interval.Duration(), a.logger.Named("scheduler"))
		fmt.Printf("Notification scheduler running every %s, Ctrl-C to stop\n", a.cfg.Notifications.Interval.Duration())
		scheduler.Run(ctx)
		return nil
	},
}
