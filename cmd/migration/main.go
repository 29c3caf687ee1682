// Command migration manages the dynasty tracker schema with
// golang-migrate. Migrations live in db/migrations; the target database
// comes from DB_URL.
package main

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	m, sourceURL, err := newMigrator()
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Printf("close migration source: %v", srcErr)
		}
		if dbErr != nil {
			log.Printf("close migration db: %v", dbErr)
		}
	}()

	if err := run(m, sourceURL, strings.ToLower(strings.TrimSpace(os.Args[1])), os.Args[2:]); err != nil {
		log.Fatal(err)
	}
}

func run(m *migrate.Migrate, sourceURL, cmd string, args []string) error {
	switch cmd {
	case "up":
		if err := applyResult(m.Up()); err != nil {
			return err
		}
		log.Printf("migrations applied (source=%s)", sourceURL)
		return nil
	case "down":
		steps := 1
		if len(args) > 0 {
			parsed, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil || parsed <= 0 {
				return fmt.Errorf("down wants a positive step count, got %q", args[0])
			}
			steps = parsed
		}
		if err := applyResult(m.Steps(-steps)); err != nil {
			return err
		}
		log.Printf("rolled back %d migration(s)", steps)
		return nil
	case "version":
		return reportVersion(m)
	case "force":
		if len(args) < 1 {
			return errors.New("force wants a version argument")
		}
		version, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil || version < 0 {
			return fmt.Errorf("force wants a non-negative version, got %q", args[0])
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		log.Printf("forced version to %d", version)
		return nil
	case "goto", "migrate":
		if len(args) < 1 {
			return errors.New("goto wants a target version argument")
		}
		target, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 64)
		if err != nil {
			return fmt.Errorf("goto wants a numeric target version, got %q", args[0])
		}
		if err := applyResult(m.Migrate(uint(target))); err != nil {
			return err
		}
		log.Printf("migrated to version %d", target)
		return nil
	default:
		usage()
		os.Exit(2)
		return nil
	}
}

func newMigrator() (*migrate.Migrate, string, error) {
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return nil, "", errors.New("DB_URL is required")
	}
	if envBool("DB_DISABLE_PREPARED_BINARY_RESULT") {
		dbURL = withPreparedBinaryDisabled(dbURL)
	}

	dir, err := migrationsDir()
	if err != nil {
		return nil, "", err
	}
	sourceURL := "file://" + filepath.ToSlash(dir)

	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return nil, "", fmt.Errorf("create migrator: %w", err)
	}
	return m, sourceURL, nil
}

func applyResult(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		log.Printf("no migration changes")
		return nil
	}
	return err
}

func reportVersion(m *migrate.Migrate) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Println("version: none")
		fmt.Println("dirty: false")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	fmt.Printf("version: %d\n", version)
	fmt.Printf("dirty: %t\n", dirty)
	return nil
}

// migrationsDir prefers an explicit MIGRATIONS_DIR (or the legacy
// MIGRATIONS_PATH), then the repo-relative default, then the container
// image path.
func migrationsDir() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		strings.TrimSpace(os.Getenv("MIGRATIONS_PATH")),
		"./db/migrations",
		"/app/db/migrations",
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", errors.New("migration directory not found (checked MIGRATIONS_DIR, MIGRATIONS_PATH, ./db/migrations, /app/db/migrations)")
}

func withPreparedBinaryDisabled(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	query := parsed.Query()
	if query.Has("disable_prepared_binary_result") {
		return raw
	}
	query.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func envBool(key string) bool {
	switch strings.TrimSpace(strings.ToLower(os.Getenv(key))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	}
	return false
}

func usage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down|version|force|goto> [args]\n", prog)
	fmt.Fprintln(os.Stderr, "manages the dynasty tracker database schema, for example:")
	fmt.Fprintf(os.Stderr, "  %s up              apply all pending migrations\n", prog)
	fmt.Fprintf(os.Stderr, "  %s down 1          roll back the latest migration\n", prog)
	fmt.Fprintf(os.Stderr, "  %s version         print the current schema version\n", prog)
	fmt.Fprintf(os.Stderr, "  %s force 1         mark the schema as version 1\n", prog)
	fmt.Fprintf(os.Stderr, "  %s goto 1          migrate to an exact version\n", prog)
}
