package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/user"
	userrepo "github.com/ovaphlow/pitchfork/service-idea-studio/internal/user/repo"
	"github.com/ovaphlow/pitchfork/service-idea-studio/pkg/database"
	"github.com/ovaphlow/pitchfork/service-idea-studio/pkg/utilities"
)

var (
	adminPassword string
	temporary     bool
	bcryptCost    int
)

var rootCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the admin account if it does not exist",
	Long: `Create the "admin" account in the users table.

An existing admin row is left untouched; run it as often as you like.

Examples:
  create-admin
  create-admin --password 's3cret-pass' --temporary`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCreateAdmin,
}

func init() {
	rootCmd.Flags().StringVar(&adminPassword, "password", "", "admin password (default $ADMIN_PASSWORD or admin123)")
	rootCmd.Flags().BoolVar(&temporary, "temporary", false, "force a password change on first login")
	rootCmd.Flags().IntVar(&bcryptCost, "bcrypt-cost", 10, "bcrypt cost for the stored hash")
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer lg.Sync()
	return createAdmin(cmd.Context(), lg.Sugar())
}

func createAdmin(ctx context.Context, sugar *zap.SugaredLogger) error {
	password := adminPassword
	if password == "" {
		password = os.Getenv("ADMIN_PASSWORD")
	}
	if password == "" {
		password = "admin123"
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, database.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer db.Close()

	repo := userrepo.NewUserRepo(db)
	if err := repo.EnsureTable(ctx); err != nil {
		return fmt.Errorf("ensure users table: %w", err)
	}
	svc, err := user.NewUserService(repo, user.BcryptHasher{Cost: bcryptCost}, sugar)
	if err != nil {
		return err
	}

	created, err := svc.EnsureAdmin(ctx, password, temporary)
	if err != nil {
		return err
	}
	if created {
		sugar.Infow("admin user created", "username", "admin", "temporary", temporary)
	} else {
		sugar.Info("admin user already exists")
	}
	return nil
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
