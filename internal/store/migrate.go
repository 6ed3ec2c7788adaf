package store

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Las migraciones SQL se embeben en el binario (ver migrations/).
// Formato de archivo: {version}_{name}.sql (ej: 0001_init.sql)

// Migrator aplica migraciones SQL a una base de datos.
type Migrator struct {
	migrationsFS  fs.FS
	migrationsDir string
	driver        string
}

// NewMigrator crea un nuevo Migrator para el driver indicado
// ("postgres", "mysql" o "sqlite").
func NewMigrator(migrationsFS fs.FS, migrationsDir, driver string) *Migrator {
	return &Migrator{
		migrationsFS:  migrationsFS,
		migrationsDir: migrationsDir,
		driver:        driver,
	}
}

// Migration representa una migración individual.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// MigrationResult resultado de aplicar migraciones.
type MigrationResult struct {
	Applied  []int
	Skipped  []int
	Failed   *int
	Error    error
	Duration time.Duration
}

// migrationFilePattern patrón para nombres de archivo de migración.
var migrationFilePattern = regexp.MustCompile(`^(\d+)_(.+)\.sql$`)

// ParseMigrations lee y parsea las migraciones del FS embebido.
func (m *Migrator) ParseMigrations() ([]Migration, error) {
	var migrations []Migration

	err := fs.WalkDir(m.migrationsFS, m.migrationsDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		matches := migrationFilePattern.FindStringSubmatch(path.Base(p))
		if matches == nil {
			return nil // Ignorar archivos que no coinciden
		}

		version, _ := strconv.Atoi(matches[1])
		content, err := fs.ReadFile(m.migrationsFS, p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    matches[2],
			SQL:     string(content),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}

	return migrations, nil
}

// SQLExecutor interfaz para ejecutar SQL (*sql.DB, *sql.Conn, *sql.Tx).
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Run aplica migraciones pendientes a una base de datos.
func (m *Migrator) Run(ctx context.Context, exec SQLExecutor) (*MigrationResult, error) {
	start := time.Now()
	result := &MigrationResult{}

	fail := func(err error) (*MigrationResult, error) {
		result.Error = err
		result.Duration = time.Since(start)
		return result, err
	}

	// 1. Asegurar que existe la tabla de migraciones
	if err := m.ensureMigrationsTable(ctx, exec); err != nil {
		return fail(fmt.Errorf("creating migrations table: %w", err))
	}

	// 2. Obtener migraciones aplicadas
	applied, err := m.appliedVersions(ctx, exec)
	if err != nil {
		return fail(fmt.Errorf("getting applied migrations: %w", err))
	}

	// 3. Parsear migraciones disponibles
	migrations, err := m.ParseMigrations()
	if err != nil {
		return fail(fmt.Errorf("parsing migrations: %w", err))
	}

	// 4. Aplicar pendientes
	for _, mig := range migrations {
		if applied[mig.Version] {
			result.Skipped = append(result.Skipped, mig.Version)
			continue
		}

		if err := m.applyMigration(ctx, exec, mig); err != nil {
			v := mig.Version
			result.Failed = &v
			return fail(fmt.Errorf("applying migration %d_%s: %w", mig.Version, mig.Name, err))
		}
		result.Applied = append(result.Applied, mig.Version)
	}

	result.Duration = time.Since(start)
	return result, nil
}

// HasPending verifica si hay migraciones pendientes.
func (m *Migrator) HasPending(ctx context.Context, exec SQLExecutor) (bool, error) {
	if err := m.ensureMigrationsTable(ctx, exec); err != nil {
		return false, err
	}

	applied, err := m.appliedVersions(ctx, exec)
	if err != nil {
		return false, err
	}

	migrations, err := m.ParseMigrations()
	if err != nil {
		return false, err
	}

	for _, mig := range migrations {
		if !applied[mig.Version] {
			return true, nil
		}
	}
	return false, nil
}

// ensureMigrationsTable crea la tabla de tracking de migraciones.
func (m *Migrator) ensureMigrationsTable(ctx context.Context, exec SQLExecutor) error {
	var createSQL string
	switch m.driver {
	case "postgres":
		createSQL = `
			CREATE TABLE IF NOT EXISTS _migrations (
				version INT PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				applied_at TIMESTAMPTZ DEFAULT NOW()
			)`
	case "mysql":
		createSQL = `
			CREATE TABLE IF NOT EXISTS _migrations (
				version INT PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`
	default:
		createSQL = `
			CREATE TABLE IF NOT EXISTS _migrations (
				version INT PRIMARY KEY,
				name TEXT NOT NULL,
				applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`
	}

	_, err := exec.ExecContext(ctx, createSQL)
	return err
}

// appliedVersions obtiene las versiones ya aplicadas.
func (m *Migrator) appliedVersions(ctx context.Context, exec SQLExecutor) (map[int]bool, error) {
	rows, err := exec.QueryContext(ctx, "SELECT version FROM _migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// applyMigration ejecuta una migración sentencia por sentencia y la registra.
func (m *Migrator) applyMigration(ctx context.Context, exec SQLExecutor, mig Migration) error {
	for _, stmt := range SplitStatements(mig.SQL) {
		if _, err := exec.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	insert := "INSERT INTO _migrations (version, name) VALUES (?, ?)"
	if m.driver == "postgres" {
		insert = "INSERT INTO _migrations (version, name) VALUES ($1, $2)"
	}
	_, err := exec.ExecContext(ctx, insert, mig.Version, mig.Name)
	return err
}

// SplitStatements separa un script en sentencias terminadas en ';'.
// Descarta fragmentos vacíos o que sólo contienen comentarios "--".
// No entiende ';' dentro de literales; las migraciones no los usan.
func SplitStatements(script string) []string {
	var out []string
	for _, chunk := range strings.Split(script, ";") {
		if hasCode(chunk) {
			out = append(out, strings.TrimSpace(chunk))
		}
	}
	return out
}

func hasCode(chunk string) bool {
	for _, line := range strings.Split(chunk, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "--") {
			return true
		}
	}
	return false
}
