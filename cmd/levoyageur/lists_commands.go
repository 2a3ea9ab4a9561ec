package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gitxyzlabs/levoyageur/internal/store"
)

func newFavoriteCommand(ctx *commandContext) *cobra.Command {
	return newPersonalListCommand(ctx, personalList{
		use:    "favorite",
		short:  "Manage the acting user's favorites",
		add:    func(s *store.Store, cmd *cobra.Command, userID, locationID string) error { return s.AddFavorite(cmd.Context(), userID, locationID) },
		remove: func(s *store.Store, cmd *cobra.Command, userID, locationID string) error { return s.RemoveFavorite(cmd.Context(), userID, locationID) },
	})
}

func newWantToGoCommand(ctx *commandContext) *cobra.Command {
	return newPersonalListCommand(ctx, personalList{
		use:    "wanttogo",
		short:  "Manage the acting user's want-to-go list",
		add:    func(s *store.Store, cmd *cobra.Command, userID, locationID string) error { return s.AddWantToGo(cmd.Context(), userID, locationID) },
		remove: func(s *store.Store, cmd *cobra.Command, userID, locationID string) error { return s.RemoveWantToGo(cmd.Context(), userID, locationID) },
	})
}

type personalList struct {
	use    string
	short  string
	add    func(*store.Store, *cobra.Command, string, string) error
	remove func(*store.Store, *cobra.Command, string, string) error
}

func newPersonalListCommand(ctx *commandContext, list personalList) *cobra.Command {
	parent := &cobra.Command{
		Use:   list.use,
		Short: list.short,
	}

	makeSub := func(verb string, mutate func(*store.Store, *cobra.Command, string, string) error) *cobra.Command {
		return &cobra.Command{
			Use:   verb + " <location-id>",
			Short: verb + " a location",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return ctx.withStore(func(s *store.Store) error {
					userID, err := ctx.resolveUserID(cmd.Context(), s)
					if err != nil {
						return err
					}
					if userID == "" {
						return errors.New("a signed-in user is required; pass --user")
					}
					if err := mutate(s, cmd, userID, args[0]); err != nil {
						return err
					}
					loc, err := s.GetLocation(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d favorites, %d want-to-go\n",
						loc.Name, loc.FavoritesCount, loc.WantToGoCount)
					return nil
				})
			},
		}
	}

	parent.AddCommand(makeSub("add", list.add))
	parent.AddCommand(makeSub("remove", list.remove))
	return parent
}

func newRateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <location-id> <score>",
		Short: "Set the editor rating for a location (editors only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("parse score %q: %w", args[1], err)
			}
			return ctx.withStore(func(s *store.Store) error {
				userID, err := ctx.resolveUserID(cmd.Context(), s)
				if err != nil {
					return err
				}
				if userID == "" {
					return errors.New("a signed-in editor is required; pass --user")
				}
				if err := s.SetEditorScore(cmd.Context(), userID, args[0], &value); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rated %s at %s\n", args[0], args[1])
				return nil
			})
		},
	}
}

func newUserCommand(ctx *commandContext) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	var roleFlag string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a user if it does not exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(s *store.Store) error {
				role := store.RoleViewer
				if roleFlag == string(store.RoleEditor) {
					role = store.RoleEditor
				}
				user, err := s.EnsureUser(cmd.Context(), args[0], role)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) id=%s\n", user.Name, user.Role, user.ID)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&roleFlag, "role", string(store.RoleViewer), "viewer or editor")

	roleCmd := &cobra.Command{
		Use:   "role <name> <viewer|editor>",
		Short: "Change a user's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(s *store.Store) error {
				user, err := s.GetUserByName(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				role := store.Role(args[1])
				if role != store.RoleViewer && role != store.RoleEditor {
					return fmt.Errorf("unknown role %q", args[1])
				}
				if err := s.SetRole(cmd.Context(), user.ID, role); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", user.Name, role)
				return nil
			})
		},
	}

	userCmd.AddCommand(addCmd)
	userCmd.AddCommand(roleCmd)
	return userCmd
}
