package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/astrocat-app/astrocat/config"
	"github.com/astrocat-app/astrocat/internal/domain/entity"
	"github.com/astrocat-app/astrocat/pkg/helpers"
)

// Planets of the home system, seeded once so the catalog is never empty.
var planets = []struct {
	Name       string
	SpaceType  string
	Radius     float64
	Period     float64
	Satellites int
	About      string
}{
	{"Mercury", "planet", 2439.7, 87.97, 0, "The smallest planet, closest to the Sun."},
	{"Venus", "planet", 6051.8, 224.7, 0, "A rocky planet with a dense CO2 atmosphere."},
	{"Earth", "planet", 6371.0, 365.26, 1, "The only known planet with life."},
	{"Mars", "planet", 3389.5, 686.98, 2, "The red planet."},
	{"Jupiter", "planet", 69911, 4332.59, 95, "The largest planet of the system."},
	{"Saturn", "planet", 58232, 10759.22, 146, "Known for its ring system."},
	{"Uranus", "planet", 25362, 30688.5, 28, "An ice giant tilted on its side."},
	{"Neptune", "planet", 24622, 60182, 16, "The outermost ice giant."},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@astrocat.local"
	username := "astrocat"
	password := "astrocat"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, name, surname)
		VALUES ($1, $2, $3, 'Astro', 'Cat')
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, username, email, hash).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed super-user: %v", err)
	}
	fmt.Printf("seeded super-user: id=%s email=%s password=%s\n", adminID, email, password)
	fmt.Printf("set SUPERUSER_ID=%s in the environment\n", adminID)

	var systemID string
	err = db.QueryRow(`
		INSERT INTO space_systems (name, galaxy, about, creator_id)
		VALUES ($1, 'Milky Way', 'Our home planetary system.', $2)
		ON CONFLICT (name) DO UPDATE SET updated_at = now()
		RETURNING id
	`, entity.SolarSystemName, adminID).Scan(&systemID)
	if err != nil {
		log.Fatalf("failed to seed home system: %v", err)
	}
	fmt.Printf("seeded system: id=%s name=%s\n", systemID, entity.SolarSystemName)

	for _, p := range planets {
		if _, err := db.Exec(`
			INSERT INTO space_objects (name, space_type, radius, period, satellites, about, system_id, creator_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (name) DO NOTHING
		`, p.Name, p.SpaceType, p.Radius, p.Period, p.Satellites, p.About, systemID, adminID); err != nil {
			log.Fatalf("failed to seed %s: %v", p.Name, err)
		}
	}
	fmt.Printf("seeded %d planets\n", len(planets))
}
