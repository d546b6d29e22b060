package cmd

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"task-manager/internal/auth"
	"task-manager/internal/config"
	"task-manager/internal/database"
	"task-manager/internal/models"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Provision the initial Manager account",
	Long:  "Creates a Manager account from SEED_EMAIL, SEED_NAME and SEED_PASSWORD if it does not exist yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database.InitDB(cfg.DatabaseDSN)

		email := getenvDefault("SEED_EMAIL", "admin@example.com")
		name := getenvDefault("SEED_NAME", "Administrator")
		password := getenvDefault("SEED_PASSWORD", "changeme")

		db := database.GetDB()

		var existing int64
		if err := db.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			log.Printf("Manager account %s already exists, nothing to do", email)
			return nil
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		user := models.User{
			Email:        email,
			Name:         name,
			PasswordHash: hash,
			Role:         models.RoleManager,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}

		log.Printf("Created Manager account %s (id %d)", email, user.ID)
		return nil
	},
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
