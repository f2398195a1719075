package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/folio/internal/auth"
	"github.com/mrlokans/folio/internal/config"
	"github.com/mrlokans/folio/internal/database"
	"github.com/mrlokans/folio/internal/database/users"
)

// CreateUserCommand registers a user account. Accounts are only created from
// the command line.
type CreateUserCommand struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	DatabasePath string
	BcryptCost   int

	Out io.Writer
}

func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{Out: os.Stdout}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)

	fs.StringVar(&cmd.Email, "email", "", "Email address used to log in (required)")
	fs.StringVar(&cmd.Password, "password", os.Getenv("FOLIO_PASSWORD"), "Password, at least 12 characters (or FOLIO_PASSWORD)")
	fs.StringVar(&cmd.FirstName, "first-name", "", "First name, shown as the author name on books")
	fs.StringVar(&cmd.LastName, "last-name", "", "Last name")
	fs.StringVar(&cmd.DatabasePath, "db", envOr("DATABASE_PATH", config.DefaultDatabasePath), "Path to the database file")
	fs.IntVar(&cmd.BcryptCost, "bcrypt-cost", 12, "bcrypt cost factor")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -email <email> -password <password> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user account.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Email == "" {
		return fmt.Errorf("required flag -email not provided")
	}
	if cmd.Password == "" {
		return fmt.Errorf("required flag -password not provided")
	}
	return nil
}

func (cmd *CreateUserCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	service := auth.NewService(users.NewRepository(db.DB), config.Auth{BcryptCost: cmd.BcryptCost})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := service.CreateUser(ctx, auth.NewUser{
		Email:     cmd.Email,
		Password:  cmd.Password,
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Out, "Created user %d (%s)\n", user.ID, user.Email)
	return nil
}

// IssueTokenCommand verifies a user's password and prints a fresh API token.
// Issuing a token revokes the previous one.
type IssueTokenCommand struct {
	Email        string
	Password     string
	DatabasePath string

	Out io.Writer
}

func NewIssueTokenCommand() *IssueTokenCommand {
	return &IssueTokenCommand{Out: os.Stdout}
}

func (cmd *IssueTokenCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("issue-token", flag.ContinueOnError)

	fs.StringVar(&cmd.Email, "email", "", "Email address of the account (required)")
	fs.StringVar(&cmd.Password, "password", os.Getenv("FOLIO_PASSWORD"), "Account password (or FOLIO_PASSWORD)")
	fs.StringVar(&cmd.DatabasePath, "db", envOr("DATABASE_PATH", config.DefaultDatabasePath), "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s issue-token -email <email> -password <password> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print a new API token. Use it as 'Authorization: Bearer <token>'.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Email == "" {
		return fmt.Errorf("required flag -email not provided")
	}
	if cmd.Password == "" {
		return fmt.Errorf("required flag -password not provided")
	}
	return nil
}

func (cmd *IssueTokenCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	service := auth.NewService(users.NewRepository(db.DB), config.Auth{})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	token, err := service.IssueToken(ctx, cmd.Email, cmd.Password)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Out, token)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
