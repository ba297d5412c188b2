package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-social-api/config"
	"github.com/oksasatya/go-social-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	aliceID := seedUser(db, "alice@example.com", hash, "alice", "Alice Cooper")
	bobID := seedUser(db, "bob@example.com", hash, "bob", "Bob Martin")

	postID := seedPost(db, aliceID, "first post", "")
	if _, err := db.Exec(`
		UPDATE users SET post_ids = ARRAY[$1]::text[] WHERE id = $2
	`, postID, aliceID); err != nil {
		log.Fatalf("failed to attach post: %v", err)
	}

	// bob follows alice
	if _, err := db.Exec(`
		UPDATE users
		SET followers = ARRAY[$1]::text[]
		WHERE id = $2 AND NOT ($1 = ANY(followers))
	`, bobID, aliceID); err != nil {
		log.Fatalf("failed to seed followers: %v", err)
	}
	if _, err := db.Exec(`
		UPDATE users
		SET following = ARRAY[$1]::text[]
		WHERE id = $2 AND NOT ($1 = ANY(following))
	`, aliceID, bobID); err != nil {
		log.Fatalf("failed to seed following: %v", err)
	}

	fmt.Printf("seeded users: alice=%s bob=%s (password=%s)\n", aliceID, bobID, password)
}

func seedUser(db *sql.DB, email, hash, username, fullName string) string {
	var id string
	err := db.QueryRow(`
		INSERT INTO users (email, password_hash, username, full_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, email, hash, username, fullName).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	return id
}

func seedPost(db *sql.DB, authorID, caption, imageURL string) string {
	var id string
	err := db.QueryRow(`
		INSERT INTO posts (author_id, caption, image_url)
		VALUES ($1, $2, $3)
		RETURNING id
	`, authorID, caption, imageURL).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed post: %v", err)
	}
	return id
}
