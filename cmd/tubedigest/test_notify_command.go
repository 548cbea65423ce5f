package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tubedigest/internal/services/postmark"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test email through the configured Postmark sender",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			sender := postmark.NewSender(postmark.Config{
				ServerToken:    cfg.Postmark.ServerToken,
				FromEmail:      cfg.Postmark.FromEmail,
				ToEmail:        cfg.Postmark.ToEmail,
				RequestTimeout: cfg.Postmark.RequestTimeout,
			})

			subject := fmt.Sprintf("tubedigest test - %s", time.Now().Format("January 2, 2006 15:04"))
			body := "This is a test notification from tubedigest. Delivery is working."
			if err := sender.Send(cmd.Context(), subject, body, ""); err != nil {
				return fmt.Errorf("send test email: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Test email sent")
			return nil
		},
	}
}
