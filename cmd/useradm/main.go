// Command useradm creates an account directly against the database. It is an
// operator tool for bootstrapping the first accounts of an installation.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/avmarques/accounts/internal/admincli"
	"github.com/avmarques/accounts/internal/server/config"
	"github.com/avmarques/accounts/internal/server/repositories/repomanager"
	"github.com/avmarques/accounts/internal/server/services"
)

func main() {
	if err := run(); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}

func run() error {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	us := services.NewUserService(db, rm)

	reader := bufio.NewReader(os.Stdin)

	name, err := admincli.PromptText(reader, "Name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := admincli.PromptText(reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	cellPhone, err := admincli.PromptText(reader, "Cell phone (optional)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := admincli.PromptPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := us.Create(ctx, services.CreateUserParams{
		Name:      name,
		Email:     email,
		Password:  string(password),
		CellPhone: cellPhone,
	})
	if err != nil {
		return err
	}

	fmt.Printf("created user %s (%s)\n", user.ID, user.Email)
	return nil
}
