// Seeds the initial ADMIN account. Run once against a fresh database:
//
//	go run scripts/seedAdmin.go -username admin -password <secret> -name "Duty Officer"
package main

import (
	"flag"
	"log"

	"slotbook/config"
	"slotbook/database"
	"slotbook/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (required)")
	fullName := flag.String("name", "Administrator", "full name")
	flag.Parse()

	if *password == "" {
		log.Fatal("password is required")
	}

	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	var existing models.AdminUser
	if err := db.Where("username = ?", *username).First(&existing).Error; err == nil {
		log.Fatalf("admin user %q already exists", *username)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := models.AdminUser{
		Username: *username,
		Password: string(hashed),
		FullName: *fullName,
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Created admin user %q (id %d)", admin.Username, admin.ID)
}
