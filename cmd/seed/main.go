package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/journalkeeper/api/config"
	"github.com/journalkeeper/api/pkg/helpers"
	"github.com/journalkeeper/api/pkg/timecodec"
)

// Seeds a demo account with a couple of entries for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "jd"
	name := "John Doe"
	email := "john.doe@example.com"
	password := "123"

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (username, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, username, name, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d username=%s email=%s password=%s\n", id, username, email, password)

	entries := []struct {
		local   string
		zone    string
		content string
	}{
		{"2021-01-01 02:00:17", "+02:00", "Happy New Year!"},
		{"2021-02-14 09:30", "-05:00", "Pancakes for breakfast."},
	}
	for _, e := range entries {
		ts, err := timecodec.ToUTC(e.local, e.zone)
		if err != nil {
			log.Fatalf("failed to convert seed timestamp: %v", err)
		}
		var entryID int64
		if err := db.QueryRow(`
			INSERT INTO entries (timestamp_in_utc, utc_zone, content, user_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, ts.UTC(), e.zone, e.content, id).Scan(&entryID); err != nil {
			log.Fatalf("failed to seed entry: %v", err)
		}
		fmt.Printf("seeded entry: id=%d at %s %s\n", entryID, e.local, e.zone)
	}
}
