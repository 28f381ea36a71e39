package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"erp-backend/internal/app"
	"erp-backend/internal/models"
	"erp-backend/internal/services"
	"erp-backend/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

const passwordEnv = "FLEET_USER_PASSWORD"

var newUser services.CreateUserRequest

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	Long:  "Create a user account. The password is read from " + passwordEnv + " when --password is not given.",
	RunE:  runUserCreate,
}

func init() {
	f := userCreateCmd.Flags()
	f.StringVar(&newUser.Email, "email", "", "login email")
	f.StringVar(&newUser.FirstName, "first-name", "", "first name")
	f.StringVar(&newUser.LastName, "last-name", "", "last name")
	f.StringVar(&newUser.Role, "role", models.RoleViewer, "admin, fleet_manager, site_manager or viewer")
	f.StringVar(&newUser.Password, "password", "", "password (min 8 characters)")
	_ = userCreateCmd.MarkFlagRequired("email")

	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	if newUser.Password == "" {
		newUser.Password = os.Getenv(passwordEnv)
	}
	if err := validator.New().Struct(&newUser); err != nil {
		return fmt.Errorf("invalid user: %s", strings.Join(utils.ValidationMessages(err), "; "))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	svc, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	user, err := svc.Users.CreateUser(ctx, &newUser)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created %s user %s (%s)\n", user.Role, user.Email, user.ID.Hex())
	return nil
}
