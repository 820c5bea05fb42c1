package main

import (
	"context"
	"flag"
	"log"

	"umkm-kembar-barokah/internal/config"
	"umkm-kembar-barokah/internal/model"
	"umkm-kembar-barokah/internal/repository"
	"umkm-kembar-barokah/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	username := flag.String("username", "admin", "account to reset")
	password := flag.String("password", "", "new password (min 6 characters)")
	flag.Parse()

	if len(*password) < 6 {
		log.Fatal("❌ -password must be at least 6 characters")
	}

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.ConnectionString())
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	userRepo := repository.NewUserRepo(db)
	ctx := context.Background()

	// 3. Find user
	user, err := userRepo.FindByUsername(ctx, *username)
	if err != nil {
		log.Fatalf("❌ User %s not found in database: %v", *username, err)
	}

	// 4. Hash new password
	var hashed model.User
	if err := hashed.SetPassword(*password); err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// 5. Update
	if err := userRepo.UpdatePassword(ctx, user.ID, hashed.Password); err != nil {
		log.Fatalf("❌ Failed to update password in DB: %v", err)
	}

	log.Printf("✅ Password for %s has been reset", user.Username)
}
