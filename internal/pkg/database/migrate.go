package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// MigrationsDir é o diretório (dentro de Migrations) com os arquivos do goose.
const MigrationsDir = "migrations"

// Migrations contém as migrações SQL embutidas no binário.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// Migrate executa um comando do goose ("up", "down", "status", ...) usando as migrações embutidas.
func Migrate(db *sql.DB, command string, args ...string) error {
	goose.SetBaseFS(Migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose: dialeto inválido: %w", err)
	}
	goose.SetLogger(goose.NopLogger())

	if err := goose.Run(command, db, MigrationsDir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
