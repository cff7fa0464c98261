package main

import (
	"log"

	"gorm.io/gorm/clause"

	"lifemate-backend/internal/config"
	"lifemate-backend/internal/database"
	"lifemate-backend/internal/models"
)

// Runs the schema migration and seeds the curated wellness catalog. Safe to
// run repeatedly: remedy names conflict-update instead of duplicating.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations applied")

	db := database.GetDB()
	for _, remedy := range seedRemedies {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "preparation", "is_verified"}),
		}).Create(&remedy).Error
		if err != nil {
			log.Fatalf("Failed to seed remedy %q: %v", remedy.Name, err)
		}
	}
	log.Printf("Seeded %d wellness remedies", len(seedRemedies))
}

var seedRemedies = []models.WellnessRemedy{
	{
		ID:                 1,
		Name:               "Turmeric Milk",
		WellnessFocus:      "immunity",
		Description:        "Warm milk with turmeric, taken before sleep.",
		Ingredients:        []string{"milk", "turmeric", "black pepper"},
		Preparation:        "Heat a cup of milk, stir in half a teaspoon of turmeric and a pinch of black pepper.",
		Suggestion:         "Drink warm, 30 minutes before bed.",
		Precautions:        "Avoid with dairy intolerance.",
		Region:             "South Asia",
		EffectivenessLevel: "moderate",
		Tags:               []string{"sleep", "immunity"},
		Language:           "en",
		IsVerified:         true,
	},
	{
		ID:                 2,
		Name:               "Ginger Tea",
		WellnessFocus:      "digestion",
		Description:        "Fresh ginger steeped in hot water.",
		Ingredients:        []string{"ginger", "water", "honey"},
		Preparation:        "Slice fresh ginger, steep in boiling water for 5 minutes, sweeten with honey.",
		Suggestion:         "Take after heavy meals.",
		Precautions:        "Limit during pregnancy.",
		Region:             "East Asia",
		EffectivenessLevel: "high",
		Tags:               []string{"digestion", "nausea"},
		Language:           "en",
		IsVerified:         true,
	},
	{
		ID:                 3,
		Name:               "Breathing Exercise",
		WellnessFocus:      "stress",
		Description:        "Slow diaphragmatic breathing for stress relief.",
		Ingredients:        []string{},
		Preparation:        "Sit upright, inhale for 4 counts, hold for 4, exhale for 8. Repeat for 5 minutes.",
		Suggestion:         "Practice twice daily.",
		Precautions:        "Stop if dizzy.",
		Region:             "Global",
		EffectivenessLevel: "high",
		Tags:               []string{"stress", "sleep", "anxiety"},
		Language:           "en",
		IsVerified:         true,
	},
}
