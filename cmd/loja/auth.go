package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tonguers/loja/internal/domain"
)

func registerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "register <email> <password> <name>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.session.Register(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Printf("Registered and signed in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}

func loginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Sign in with an existing account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.session.Authenticate(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.EndSession(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Signed out")
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user := a.session.Current()
			if user == nil {
				fmt.Println("Not signed in")
				return nil
			}
			verified := "unverified"
			if user.Verified {
				verified = "verified"
			}
			fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, verified)
			return nil
		},
	}
}

func otpCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "otp",
		Short: "Issue and verify one-time codes",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "send <email>",
			Short: "Issue a one-time code for an email",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				code, err := a.session.IssueCode(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				// Mock delivery: a real client would email this.
				fmt.Printf("One-time code for %s: %s\n", args[0], code)
				return nil
			},
		},
		&cobra.Command{
			Use:   "verify <email> <code>",
			Short: "Verify a one-time code and sign in",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				user, err := a.session.VerifyCode(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Printf("Code accepted, signed in as %s <%s>\n", user.Name, user.Email)
				return nil
			},
		},
	)

	return cmd
}

func profileCmd(a *app) *cobra.Command {
	var (
		name     string
		email    string
		verified bool
	)

	update := &cobra.Command{
		Use:   "update",
		Short: "Update the signed-in user's profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.UserPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("email") {
				patch.Email = &email
			}
			if cmd.Flags().Changed("verified") {
				patch.Verified = &verified
			}

			user, err := a.session.UpdateCurrentUser(cmd.Context(), patch)
			if err != nil {
				return err
			}
			fmt.Printf("Profile updated: %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
	update.Flags().StringVar(&name, "name", "", "new display name")
	update.Flags().StringVar(&email, "email", "", "new email (rekeys the account)")
	update.Flags().BoolVar(&verified, "verified", false, "set the verified flag")

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile operations",
	}
	cmd.AddCommand(update)
	return cmd
}
