package main

import (
	"fmt"

	"github.com/fekuna/kitmed-catalog-service/internal/auth"
	userRepoPkg "github.com/fekuna/kitmed-catalog-service/internal/user/repository"
	userUCPkg "github.com/fekuna/kitmed-catalog-service/internal/user/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	adminEmail    string
	adminName     string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the super admin account, or reset its password",
	Args:  cobra.NoArgs,
	RunE:  runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email (required)")
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "display name, defaults to the email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "initial password (required)")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	db, err := openDB(cfg, appLogger)
	if err != nil {
		return err
	}
	defer db.Close()

	tokens := auth.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.TTL)
	uc := userUCPkg.NewUserUseCase(userRepoPkg.NewPGRepository(db), tokens, appLogger)

	u, created, err := uc.BootstrapAdmin(cmd.Context(), adminEmail, adminName, adminPassword)
	if err != nil {
		return err
	}
	appLogger.Info("Super admin ready", zap.String("email", u.Email), zap.Bool("created", created))
	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", u.Email)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "reset %s\n", u.Email)
	}
	return nil
}
