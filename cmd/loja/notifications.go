package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tonguers/loja/internal/domain"
	"github.com/tonguers/loja/internal/fixtures"
)

func notificationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "Manage the signed-in user's notification feed",
	}

	cmd.AddCommand(
		notificationsListCmd(a),
		notificationsAddCmd(a),
		notificationsSeedCmd(a),
		notificationsReadCmd(a),
		notificationsReadAllCmd(a),
		notificationsClearCmd(a),
	)
	return cmd
}

func notificationsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items := a.notifications.Items()
			if len(items) == 0 {
				fmt.Println("No notifications")
				return nil
			}
			for _, item := range items {
				marker := "•"
				if item.Read {
					marker = " "
				}
				fmt.Printf("%s [%-9s] %s — %s (%s) [%s]\n",
					marker, item.Type, item.Title, item.Message, item.TimeAgo, item.ID)
			}
			fmt.Printf("%d unread\n", a.notifications.UnreadCount())
			return nil
		},
	}
}

func notificationsAddCmd(a *app) *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "add <title> <message>",
		Short: "Add a notification",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := a.notifications.Add(cmd.Context(), domain.NotificationDraft{
				Type:    domain.NotificationType(typ),
				Title:   args[0],
				Message: args[1],
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added notification %s\n", note.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&typ, "type", string(domain.NotificationSystem), "order | promotion | system | security")
	return cmd
}

func notificationsSeedCmd(a *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add random demo notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, draft := range fixtures.NotificationDrafts(count) {
				if _, err := a.notifications.Add(cmd.Context(), draft); err != nil {
					return err
				}
			}
			fmt.Printf("Seeded %d notification(s)\n", count)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 5, "number of notifications to seed")
	return cmd
}

func notificationsReadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.notifications.MarkRead(cmd.Context(), args[0])
		},
	}
}

func notificationsReadAllCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.notifications.MarkAllRead(cmd.Context())
		},
	}
}

func notificationsClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the visible feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.notifications.Clear(cmd.Context())
		},
	}
}
