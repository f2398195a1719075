// Command generate_demo creates a demo database with authors, public domain
// books, chapters and some reader activity.
// Usage: go run ./cmd/generate_demo [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mrlokans/folio/internal/auth"
	"github.com/mrlokans/folio/internal/config"
	"github.com/mrlokans/folio/internal/content"
	"github.com/mrlokans/folio/internal/database"
	"github.com/mrlokans/folio/internal/database/books"
	"github.com/mrlokans/folio/internal/database/chapters"
	"github.com/mrlokans/folio/internal/database/favourites"
	"github.com/mrlokans/folio/internal/database/follows"
	"github.com/mrlokans/folio/internal/database/users"
	"github.com/mrlokans/folio/internal/database/viewmarkers"
	"github.com/mrlokans/folio/internal/engagement"
	"github.com/mrlokans/folio/internal/entities"
	"github.com/mrlokans/folio/internal/logging"
	"github.com/mrlokans/folio/internal/views"
)

const (
	defaultDemoDatabasePath = "./demo/demo.db"
	demoPassword            = "demo-password-123"
)

type demoBook struct {
	Title       string
	Description string
	Genres      []string
	Chapters    []string
	Readers     int
}

type demoAuthor struct {
	Email     string
	FirstName string
	LastName  string
	Books     []demoBook
}

func demoAuthors() []demoAuthor {
	return []demoAuthor{
		{
			Email: "mary@example.com", FirstName: "Mary", LastName: "Shelley",
			Books: []demoBook{{
				Title:       "Frankenstein",
				Description: "A young scientist creates a sapient creature in an unorthodox experiment.",
				Genres:      []string{"horror", "sci-fi", "gothic"},
				Chapters:    []string{"Letter 1", "Letter 2", "Chapter 1"},
				Readers:     12,
			}},
		},
		{
			Email: "jules@example.com", FirstName: "Jules", LastName: "Verne",
			Books: []demoBook{
				{
					Title:       "Twenty Thousand Leagues Under the Seas",
					Description: "Captain Nemo and the Nautilus roam the oceans.",
					Genres:      []string{"adventure", "sci-fi"},
					Chapters:    []string{"A Shifting Reef", "Pro and Con"},
					Readers:     9,
				},
				{
					Title:       "Around the World in Eighty Days",
					Description: "Phileas Fogg wagers he can circle the globe in eighty days.",
					Genres:      []string{"adventure"},
					Chapters:    []string{"In Which Phileas Fogg and Passepartout Accept Each Other"},
					Readers:     5,
				},
			},
		},
		{
			Email: "lewis@example.com", FirstName: "Lewis", LastName: "Carroll",
			Books: []demoBook{{
				Title:       "Alice's Adventures in Wonderland",
				Description: "A girl falls down a rabbit hole into a fantasy world.",
				Genres:      []string{"fantasy", "fairy-tale"},
				Chapters:    []string{"Down the Rabbit-Hole", "The Pool of Tears"},
				Readers:     7,
			}},
		},
	}
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	logging.Init(logging.Config{Format: "console"})
	if err := generate(context.Background(), *dbPath); err != nil {
		logging.Fatal().Err(err).Msg("failed to generate demo database")
	}
	logging.Info().Str("path", *dbPath).Msg("demo database generated")
}

func generate(ctx context.Context, dbPath string) error {
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing demo database: %w", err)
	}

	db, err := database.NewDatabase(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	usersRepo := users.NewRepository(db.DB)
	booksRepo := books.NewRepository(db.DB)
	counter := views.NewCounter(viewmarkers.NewRepository(db.DB), 24*time.Hour)
	accounts := auth.NewService(usersRepo, config.Auth{BcryptCost: 10})
	writer := content.NewService(booksRepo, chapters.NewRepository(db.DB), usersRepo, counter)
	ledger := engagement.NewLedger(booksRepo, usersRepo, favourites.NewRepository(db.DB), follows.NewRepository(db.DB))

	reader, err := accounts.CreateUser(ctx, auth.NewUser{Email: "reader@example.com", Password: demoPassword, FirstName: "Rita", LastName: "Reader"})
	if err != nil {
		return err
	}

	for _, a := range demoAuthors() {
		author, err := accounts.CreateUser(ctx, auth.NewUser{Email: a.Email, Password: demoPassword, FirstName: a.FirstName, LastName: a.LastName})
		if err != nil {
			return err
		}
		if _, err := ledger.Follow(ctx, reader.ID, author.ID); err != nil {
			return err
		}

		for _, b := range a.Books {
			book, err := seedBook(ctx, writer, counter, author, b)
			if err != nil {
				return fmt.Errorf("seed %q: %w", b.Title, err)
			}
			if _, err := ledger.AddFavourite(ctx, reader.ID, book.ID); err != nil {
				return err
			}
			logging.Info().Str("title", book.Title).Str("author", a.FirstName).Msg("seeded book")
		}
	}
	return nil
}

// seedBook publishes a book with its chapters and simulates distinct reader
// sessions opening the first chapter.
func seedBook(ctx context.Context, writer *content.Service, counter *views.Counter, author *entities.User, b demoBook) (*entities.Book, error) {
	book, err := writer.CreateBook(ctx, author.ID, content.BookInput{
		Title:       b.Title,
		Description: b.Description,
		Genres:      b.Genres,
		Language:    "English",
		Status:      entities.BookStatusPublic,
	})
	if err != nil {
		return nil, err
	}

	// The book starts with a draft "Chapter 1"; publish it and append the rest.
	list, err := writer.ListChapters(ctx, author.ID, book.ID)
	if err != nil {
		return nil, err
	}
	first, err := writer.UpdateChapterStatus(ctx, author.ID, book.ID, list[0].ID, entities.ChapterStatusPublished)
	if err != nil {
		return nil, err
	}
	for _, title := range b.Chapters {
		title := title
		if _, err := writer.CreateChapter(ctx, author.ID, book.ID, content.ChapterInput{
			Title:   &title,
			Content: "Public domain text of " + title + ".",
			Status:  entities.ChapterStatusPublished,
		}); err != nil {
			return nil, err
		}
	}

	for i := 0; i < b.Readers; i++ {
		if _, err := counter.RecordView(ctx, fmt.Sprintf("demo-session-%d", i), book.ID, first); err != nil {
			return nil, err
		}
	}
	return book, nil
}
