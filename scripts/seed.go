package main

import (
	"flag"
	"log"
	"os"

	"obe/config"
	"obe/database"
	"obe/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin login email")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password (min 8 characters)")
	name := flag.String("name", "Administrator", "admin display name")
	overwrite := flag.Bool("overwrite-config", false, "replace an existing GlobalConfig row")
	flag.Parse()

	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	if *email != "" {
		if len(*password) < 8 {
			log.Fatal("Admin password must be at least 8 characters")
		}
		if err := seedAdmin(db, *name, *email, *password); err != nil {
			log.Fatalf("Failed to seed admin: %v", err)
		}
	} else {
		log.Println("No admin email given, skipping admin user")
	}

	defaults, err := config.LoadAttainmentDefaults(config.AppConfig.AttainmentDefaultsFile)
	if err != nil {
		log.Fatalf("Failed to load attainment defaults: %v", err)
	}
	if err := seedGlobalConfig(db, defaults.ToGlobalConfig(), *overwrite); err != nil {
		log.Fatalf("Failed to seed global config: %v", err)
	}

	log.Println("Seeding completed successfully.")
}

func seedAdmin(db *gorm.DB, name, email, password string) error {
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("Admin %s already exists, skipping", email)
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		return err
	}

	admin := models.User{Name: name, Email: email, Role: models.RoleAdmin, Password: string(hashed)}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Admin %s created with id %d", email, admin.ID)
	return nil
}

func seedGlobalConfig(db *gorm.DB, gc models.GlobalConfig, overwrite bool) error {
	if !overwrite {
		result := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).Create(&gc)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			log.Println("GlobalConfig already set, skipping (use -overwrite-config to replace)")
		} else {
			log.Println("GlobalConfig created from defaults")
		}
		return nil
	}

	if err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).Create(&gc).Error; err != nil {
		return err
	}
	log.Println("GlobalConfig replaced from defaults")
	return nil
}
