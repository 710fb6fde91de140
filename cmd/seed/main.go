package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/Amrsono/Store-2090/config"
	"github.com/Amrsono/Store-2090/pkg/helpers"
)

type seedProduct struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Gradient    string
	Size        string
	Stock       int
	ImageURL    string
}

var products = []seedProduct{
	{"Neon Streetwear Jacket", "Holographic tech-fabric with reactive LED strips and quantum insulation", 499.00, "Clothes", "from-[#00d4ff] to-[#b300ff]", "large", 50, "/images/neon-jacket.jpg"},
	{"Cyber Running Shoes", "Anti-gravity soles with neural sync technology", 349.00, "Shoes", "from-[#ff00ff] to-[#00fff5]", "medium", 75, "/images/cyber-shoes.jpg"},
	{"Quantum Tech Backpack", "Dimensional storage with biometric security", 599.00, "Bags", "from-[#00ff88] to-[#00d4ff]", "medium", 40, "/images/quantum-backpack.jpg"},
	{"Holographic Sneakers", "Color-shifting nano-material with smart cushioning", 279.00, "Shoes", "from-[#ffeb3b] to-[#ff00ff]", "small", 100, "/images/holo-sneakers.jpg"},
	{"Plasma Shoulder Bag", "Lightweight carbon-fiber with neon accent strips", 399.00, "Bags", "from-[#b300ff] to-[#00fff5]", "small", 60, "/images/plasma-bag.jpg"},
	{"Cyberpunk Hoodie Set", "Temperature-adaptive fabric with integrated AR display", 699.00, "Clothes", "from-[#00d4ff] to-[#00ff88]", "large", 30, "/images/cyberpunk-hoodie.jpg"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	var count int
	if err := db.QueryRow(`SELECT count(*) FROM products`).Scan(&count); err != nil {
		log.Fatalf("failed to count products: %v", err)
	}
	if count == 0 {
		for _, p := range products {
			if _, err := db.Exec(`
				INSERT INTO products (title, description, price, category, gradient, size, stock, image_url)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`, p.Title, p.Description, p.Price, p.Category, p.Gradient, p.Size, p.Stock, p.ImageURL); err != nil {
				log.Fatalf("failed to seed product %q: %v", p.Title, err)
			}
		}
		fmt.Printf("seeded %d products\n", len(products))
	} else {
		fmt.Printf("products already present (%d), skipping catalog seed\n", count)
	}

	adminEmail := "admin@cyber.com"
	hash, err := helpers.HashPassword("admin123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (email, username, hashed_password, full_name, is_active, is_admin, email_verified)
		VALUES ($1, 'admin', $2, 'System Administrator', TRUE, TRUE, TRUE)
		ON CONFLICT (email) DO UPDATE SET is_admin = TRUE
		RETURNING id
	`, adminEmail, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	fmt.Printf("admin user ensured: id=%d email=%s\n", id, adminEmail)
}
