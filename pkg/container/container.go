package container

import (
	"context"
	"fmt"
	"time"

	"bookshelf-api/internal/config"
	"bookshelf-api/internal/infrastructure/database"
	"bookshelf-api/pkg/logger"

	"bookshelf-api/internal/domains/author"
	authorHandler "bookshelf-api/internal/domains/author/handler"
	authorRepo "bookshelf-api/internal/domains/author/repository"
	authorService "bookshelf-api/internal/domains/author/service"

	"bookshelf-api/internal/domains/book"
	bookHandler "bookshelf-api/internal/domains/book/handler"
	bookRepo "bookshelf-api/internal/domains/book/repository"
	bookService "bookshelf-api/internal/domains/book/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton wired once at startup, in dependency order: config, then
// infrastructure, then repositories, services and handlers.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB

	AuthorRepo author.Repository
	BookRepo   book.Repository

	AuthorService author.Service
	BookService   book.Service

	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.BookHandler
}

// NewContainer builds and initializes the whole dependency graph. An
// error here means the application must not start.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	c.DB = db

	c.AuthorRepo = authorRepo.NewPostgresRepository(db)
	c.BookRepo = bookRepo.NewPostgresRepository(db)

	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.BookService = bookService.NewBookService(c.BookRepo)

	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService, c.BookService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return c, nil
}

// Cleanup releases resources in reverse initialization order.
func (c *Container) Cleanup() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("failed to close database", err)
		}
	}
}
