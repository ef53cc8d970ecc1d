package seeds

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

const (
	userCount        = 5
	itemCount        = 80
	interactionCount = 200
)

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	log.Println("[seed] truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE interactions, catalog_items, users RESTART IDENTITY CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Println("[seed] inserting users")
	if err := seedUsers(ctx, pool); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	log.Println("[seed] inserting catalog items")
	if err := seedCatalog(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	log.Println("[seed] inserting interactions")
	if err := seedInteractions(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed interactions: %w", err)
	}

	log.Println("[seed] seeding complete")
	return nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool) error {
	names := []string{"Alice", "Bob", "Carol", "Dave", "Eve"}
	ages := []int{20, 25, 30, 22, 28}
	interests := []string{"action,sci-fi", "romance,comedy", "action,thriller", "comedy", "sci-fi,doc"}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	rows := []string{}
	args := []any{}

	for i := range userCount {
		createdAt := time.Now().AddDate(0, 0, -(userCount-i)*30)

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args,
			fmt.Sprintf("u_%d", i+1),
			names[i],
			fmt.Sprintf("%s@example.com", strings.ToLower(names[i])),
			string(hash),
			ages[i],
			interests[i],
			createdAt,
		)
	}

	query := "INSERT INTO users (user_id, name, email, password_hash, age, interests, created_at) VALUES " +
		strings.Join(rows, ", ")

	_, err = pool.Exec(ctx, query, args...)
	return err
}

// Genre assignment follows the catalog's id layout: each numeric range of
// item ids belongs to one genre.
type genreRange struct {
	lo, hi int
	genre  string
}

var genreRanges = []genreRange{
	{1, 10, "action"},
	{11, 18, "romance"},
	{19, 26, "comedy"},
	{27, 34, "sci-fi"},
	{35, 37, "doc"},
	{38, 40, "thriller"},
	{41, 45, "fantasy"},
	{46, 50, "horror"},
	{51, 55, "mystery"},
	{56, 60, "drama"},
	{61, 65, "adventure"},
	{66, 70, "animation"},
	{71, 75, "musical"},
	{76, 80, "crime"},
}

var knownTitles = map[int]string{
	1: "The Avengers", 5: "Gladiator", 10: "Inception",
	11: "The Notebook", 15: "Before Sunrise",
	19: "The Hangover", 22: "Step Brothers", 25: "Deadpool",
	27: "Interstellar", 30: "The Martian", 32: "Dune",
	35: "Planet Earth II", 36: "Blue Planet",
	38: "Gone Girl", 40: "Shutter Island",
	46: "The Conjuring", 48: "Get Out",
	51: "Knives Out", 53: "Zodiac",
	56: "The Shawshank Redemption", 58: "The Godfather",
	66: "Toy Story", 68: "Inside Out", 70: "WALL-E",
	71: "The Greatest Showman", 73: "Les Miserables",
}

func genreForItem(num int) string {
	for _, r := range genreRanges {
		if num >= r.lo && num <= r.hi {
			return r.genre
		}
	}
	return "unknown"
}

func seedCatalog(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	rows := []string{}
	args := []any{}

	for num := 1; num <= itemCount; num++ {
		title, ok := knownTitles[num]
		if !ok {
			title = fmt.Sprintf("Movie %d", num)
		}

		duration := rng.Intn(160) + 20
		popularity := powerLawScore(rng)
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(730))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6))
		args = append(args,
			fmt.Sprintf("i_%d", num),
			title,
			genreForItem(num),
			duration,
			popularity,
			createdAt,
		)
	}

	query := "INSERT INTO catalog_items (item_id, title, category, duration_minutes, popularity, created_at) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedInteractions(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	seen := make(map[[2]int]bool)

	rows := []string{}
	args := []any{}

	for range interactionCount {
		userNum := int(math.Ceil(math.Pow(rng.Float64(), 1.5) * userCount))
		userNum = max(1, min(userNum, userCount))

		itemNum := int(math.Ceil(math.Pow(rng.Float64(), 1.3) * itemCount))
		itemNum = max(1, min(itemNum, itemCount))

		key := [2]int{userNum, itemNum}
		if seen[key] {
			continue
		}
		seen[key] = true

		watchedAt := time.Now().AddDate(0, 0, -rng.Intn(90))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
		args = append(args, fmt.Sprintf("u_%d", userNum), fmt.Sprintf("i_%d", itemNum), watchedAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO interactions (user_id, item_id, watched_at) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func powerLawScore(rng *rand.Rand) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.001
	}
	raw := math.Pow(u, 2.0)
	if raw < 0.01 {
		raw = 0.01
	}
	return math.Round(raw*100) / 100
}
