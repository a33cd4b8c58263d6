package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/Flogerbe/HelloCSEFlorian/internal/auth"
	"github.com/Flogerbe/HelloCSEFlorian/internal/config"
	"github.com/Flogerbe/HelloCSEFlorian/internal/migrations"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/database"
)

func main() {
	_ = godotenv.Load()

	var (
		dsn       = flag.String("dsn", "", "Database connection string (defaults to the service configuration)")
		all       = flag.Bool("all", false, "Run all seeders")
		users     = flag.Bool("users", false, "Seed the administrator")
		profilesF = flag.Bool("profiles", false, "Seed profiles")
		file      = flag.String("file", "", "External profile seed file (overrides embedded)")
		list      = flag.Bool("list", false, "List available seeders")
		migrate   = flag.Bool("migrate", true, "Apply migrations before seeding")
		name      = flag.String("admin-name", "Admin HelloCSE", "Administrator name")
		email     = flag.String("admin-email", "admin@hellocse.fr", "Administrator email")
		password  = flag.String("admin-password", "password", "Administrator password")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	profileSeeder := &ProfileSeeder{}
	if *file != "" {
		profileSeeder.SetFile(*file)
	}
	reg := newRegistry(
		NewUserSeeder(auth.CreateUserCommand{Name: *name, Email: *email, Password: *password}, cfg.Auth.BcryptCost),
		profileSeeder,
	)

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range reg.list() {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	var names []string
	switch {
	case *all:
	case *users || *profilesF:
		if *users {
			names = append(names, "users")
		}
		if *profilesF {
			names = append(names, "profiles")
		}
	default:
		fmt.Println("usage: seed [-dsn <connection-string>] [-all|-users|-profiles] [-file <path>] [-list]")
		flag.PrintDefaults()
		return
	}

	if *dsn == "" {
		*dsn = cfg.Database.Dsn()
	}

	if *migrate {
		version, err := database.Migrate(*dsn, migrations.FS)
		if err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		fmt.Printf("schema at version %d\n", version)
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := reg.run(ctx, db, names...); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	fmt.Println("seeding completed successfully")
}
