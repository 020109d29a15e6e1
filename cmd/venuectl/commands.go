package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"venue-booking/internal/app"
	"venue-booking/internal/etl"
	"venue-booking/internal/migrate"
	"venue-booking/internal/user"

	_ "github.com/lib/pq"
)

type options struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "venuectl",
		Short:         "Operator tools for the venue booking service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "config/config.yaml", "path to config")

	root.AddCommand(newMigrateCmd(opts))
	root.AddCommand(newPromoteCmd(opts))
	root.AddCommand(newReindexCmd(opts))

	return root
}

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply embedded schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), opts, func(ctx context.Context, db *sql.DB, logger *zap.SugaredLogger) error {
				n, err := migrate.Up(ctx, db, logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", n)
				return nil
			})
		},
	}
}

func newPromoteCmd(opts *options) *cobra.Command {
	var email, role string

	c := &cobra.Command{
		Use:   "promote",
		Short: "Change the role of a user (admin by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != user.RoleAdmin && role != user.RoleUser {
				return fmt.Errorf("unknown role %q, expected %s or %s", role, user.RoleAdmin, user.RoleUser)
			}

			return withDB(cmd.Context(), opts, func(ctx context.Context, db *sql.DB, logger *zap.SugaredLogger) error {
				if err := user.NewUserDBRepository(db, logger).SetRole(ctx, email, role); err != nil {
					return fmt.Errorf("set role of %s: %w", email, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "user %s is now %s\n", email, role)
				return nil
			})
		},
	}

	c.Flags().StringVar(&email, "email", "", "user email")
	c.Flags().StringVar(&role, "role", user.RoleAdmin, "role to set (admin|user)")
	_ = c.MarkFlagRequired("email")
	return c
}

func newReindexCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Mark every venue for the next search ETL pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), opts, func(ctx context.Context, db *sql.DB, logger *zap.SugaredLogger) error {
				n, err := etl.NewPostgresExtractor(db, logger).ResetAll(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d venue(s) queued for reindex\n", n)
				return nil
			})
		},
	}
}

func withDB(ctx context.Context, opts *options, fn func(context.Context, *sql.DB, *zap.SugaredLogger) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer func() { _ = zapLogger.Sync() }()
	logger := zapLogger.Sugar()

	c, err := app.NewConfig(opts.configPath)
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", c.CfgDB.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err = db.PingContext(ctx); err != nil {
		return fmt.Errorf("database is unreachable: %w", err)
	}

	return fn(ctx, db, logger)
}
