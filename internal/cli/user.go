package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sakif/health-planner/internal/auth"
	sqliteRepo "github.com/sakif/health-planner/internal/repository/sqlite"
	"github.com/sakif/health-planner/internal/service"
)

func newUserCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	var username, password, fullName string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Register an account directly in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			hasher, err := auth.NewHasher(opts.cfg.PasswordScheme)
			if err != nil {
				return err
			}
			db, err := openDB(opts.cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			accounts := service.NewAccountService(db.Users(), db.Profiles(), hasher, opts.logger)
			user, err := accounts.Register(cmd.Context(), username, password, fullName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %d (%s)\n", user.ID, user.Username)
			return nil
		},
	}
	createCmd.Flags().StringVar(&username, "username", "", "Username")
	createCmd.Flags().StringVar(&password, "password", "", "Password")
	createCmd.Flags().StringVar(&fullName, "full-name", "", "Full name")
	_ = createCmd.MarkFlagRequired("username")
	_ = createCmd.MarkFlagRequired("password")

	cmd.AddCommand(createCmd)
	return cmd
}

func openDB(path string) (*sqliteRepo.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	return sqliteRepo.New(path)
}
