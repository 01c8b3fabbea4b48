package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"goestoque/internal/pkg/database"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Warning: .env file not found or failed to read. Loading configs from system environment only: %v", err)
	}

	var dsn string
	var timeout time.Duration
	flag.StringVar(&dsn, "dsn", os.Getenv("DATABASE_URL"), "postgres connection string (default: $DATABASE_URL)")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "connection timeout")
	flag.Parse()

	if dsn == "" {
		log.Fatal("goose: DATABASE_URL not set and -dsn not given")
	}

	db, err := database.NewPostgresDB(dsn, timeout)
	if err != nil {
		log.Fatalf("goose: failed to connect to DB: %v\n", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("goose: failed to close DB: %v\n", err)
		}
	}()

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"} // Default to 'up' if no command is provided
	}

	command := arguments[0]
	if err := database.Migrate(db, command, arguments[1:]...); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("goose %s success\n", command)
}
