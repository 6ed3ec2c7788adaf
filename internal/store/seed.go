package store

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	"github.com/dropDatabas3/hellocrud/internal/security/password"
	"github.com/dropDatabas3/hellocrud/internal/validation"
)

// SeedFile es el formato YAML de datos iniciales.
//
//	books:
//	  - {id: 1, title: Dune, author: Frank Herbert, published_year: 1965}
//	users:
//	  - {id: 1, username: ana, email: ana@example.com, password: secret123}
type SeedFile struct {
	Books []SeedBook `yaml:"books"`
	Items []SeedItem `yaml:"items"`
	Users []SeedUser `yaml:"users"`
}

type SeedBook struct {
	ID            int64   `yaml:"id"`
	Title         string  `yaml:"title"`
	Author        string  `yaml:"author"`
	PublishedYear int     `yaml:"published_year"`
	Description   *string `yaml:"description"`
}

type SeedItem struct {
	ID          int64   `yaml:"id"`
	Name        string  `yaml:"name"`
	Price       float64 `yaml:"price"`
	Quantity    int     `yaml:"quantity"`
	Description *string `yaml:"description"`
}

type SeedUser struct {
	ID       int64  `yaml:"id"`
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	IsActive *bool  `yaml:"is_active"`
}

// SeedResult cuenta registros insertados y omitidos (id ya existente).
type SeedResult struct {
	Inserted int
	Skipped  int
}

// LoadSeed lee un archivo de seed.
func LoadSeed(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("seed: parse %s: %w", path, err)
	}
	return &f, nil
}

// HashFunc convierte un password plano en su hash almacenable.
type HashFunc func(plain string) (string, error)

// SeedOptions agrupa lo que Apply necesita para tratar usuarios igual que la API.
// Policy vacía usa password.DefaultPolicy; Blacklist puede ser nil.
type SeedOptions struct {
	Hash      HashFunc
	Policy    password.Policy
	Blacklist *password.Blacklist
}

// Validate aplica las mismas reglas que los bodies HTTP. Si algún registro
// no las cumple el seed completo se rechaza antes de insertar nada.
func (f *SeedFile) Validate(opts SeedOptions) error {
	policy := opts.Policy
	if policy.MinLength == 0 {
		policy = password.DefaultPolicy
	}

	for _, b := range f.Books {
		if strings.TrimSpace(b.Title) == "" || strings.TrimSpace(b.Author) == "" {
			return seedInvalid("book", b.ID, "title and author are required")
		}
	}
	for _, i := range f.Items {
		if i.Name == "" {
			return seedInvalid("item", i.ID, "name is required")
		}
		if i.Price < 0 || math.IsInf(i.Price, 0) || math.IsNaN(i.Price) {
			return seedInvalid("item", i.ID, "price must be >= 0")
		}
		if i.Quantity < 0 {
			return seedInvalid("item", i.ID, "quantity must be >= 0")
		}
	}
	for _, u := range f.Users {
		if !validation.ValidUsername(u.Username) {
			return seedInvalid("user", u.ID, "username must be 3..50 characters")
		}
		if !validation.ValidEmail(u.Email) {
			return seedInvalid("user", u.ID, "invalid email")
		}
		if ok, reasons := policy.Validate(u.Password); !ok {
			return seedInvalid("user", u.ID, "password: "+strings.Join(reasons, ", "))
		}
		if opts.Blacklist.Contains(u.Password) {
			return seedInvalid("user", u.ID, "password: blacklisted")
		}
	}
	return nil
}

func seedInvalid(kind string, id int64, reason string) error {
	return fmt.Errorf("seed: %s %d: %s: %w", kind, id, reason, repository.ErrInvalidInput)
}

// Apply valida e inserta los registros del seed. Los ids ya presentes se omiten,
// de modo que aplicar el mismo seed dos veces no falla.
func (f *SeedFile) Apply(ctx context.Context, conn AdapterConnection, opts SeedOptions) (SeedResult, error) {
	var res SeedResult

	if err := f.Validate(opts); err != nil {
		return res, err
	}

	for _, b := range f.Books {
		rec := repository.Book{ID: b.ID, Title: b.Title, Author: b.Author, PublishedYear: b.PublishedYear, Description: b.Description}
		if err := seedOne(ctx, conn.Books(), rec, &res); err != nil {
			return res, fmt.Errorf("seed: book %d: %w", b.ID, err)
		}
	}

	for _, i := range f.Items {
		rec := repository.Item{ID: i.ID, Name: i.Name, Price: i.Price, Quantity: i.Quantity, Description: i.Description}
		if err := seedOne(ctx, conn.Items(), rec, &res); err != nil {
			return res, fmt.Errorf("seed: item %d: %w", i.ID, err)
		}
	}

	for _, u := range f.Users {
		hashed, err := opts.Hash(u.Password)
		if err != nil {
			return res, fmt.Errorf("seed: user %d: hash: %w", u.ID, err)
		}
		active := true
		if u.IsActive != nil {
			active = *u.IsActive
		}
		rec := repository.User{ID: u.ID, Username: u.Username, Email: u.Email, HashedPassword: hashed, IsActive: active}
		if err := seedOne(ctx, conn.Users(), rec, &res); err != nil {
			return res, fmt.Errorf("seed: user %d: %w", u.ID, err)
		}
	}

	return res, nil
}

func seedOne[T any](ctx context.Context, repo repository.ResourceStore[T], rec T, res *SeedResult) error {
	_, err := repo.Insert(ctx, rec)
	switch {
	case err == nil:
		res.Inserted++
	case repository.IsDuplicateID(err):
		res.Skipped++
	default:
		return err
	}
	return nil
}
