package main

import (
	"embed"
	"flag"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
)

//go:embed migrations/*.sql
var migrations embed.FS

const envDSN = "ADSCREEN_DB_DSN"

// dsnParts are read when neither -dsn nor ADSCREEN_DB_DSN is set. They
// share names with the server's database section.
var dsnParts = []struct {
	env, fallback string
}{
	{"ADSCREEN_DB_USER", "adscreen"},
	{"ADSCREEN_DB_PASSWORD", "adscreen"},
	{"ADSCREEN_DB_HOST", "localhost"},
	{"ADSCREEN_DB_PORT", "5432"},
	{"ADSCREEN_DB_NAME", "adscreen"},
	{"ADSCREEN_DB_SSL_MODE", "disable"},
}

func buildDSN() string {
	v := make([]string, len(dsnParts))
	for i, p := range dsnParts {
		v[i] = p.fallback
		if env := os.Getenv(p.env); env != "" {
			v[i] = env
		}
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(v[0], v[1]),
		Host:     net.JoinHostPort(v[2], v[3]),
		Path:     "/" + v[4],
		RawQuery: url.Values{"sslmode": {v[5]}}.Encode(),
	}
	return u.String()
}

func main() {
	var (
		dsn     = flag.String("dsn", "", "Database connection string")
		up      = flag.Bool("up", false, "Run all up migrations")
		down    = flag.Bool("down", false, "Run all down migrations")
		steps   = flag.Int("steps", 0, "Number of migrations (positive=up, negative=down)")
		version = flag.Bool("version", false, "Print current migration version")
		force   = flag.Int("force", -1, "Force set version (use with caution)")
	)
	flag.Parse()

	forceSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "force" {
			forceSet = true
		}
	})

	if *dsn == "" {
		*dsn = os.Getenv(envDSN)
	}
	if *dsn == "" {
		*dsn = buildDSN()
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		log.Fatalf("failed to create migration source: %v", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, *dsn)
	if err != nil {
		log.Fatalf("failed to create migrator: %v", err)
	}
	defer m.Close()

	switch {
	case *version:
		v, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("failed to get version: %v", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", v, dirty)
	case forceSet:
		if err := m.Force(*force); err != nil {
			log.Fatalf("failed to force version: %v", err)
		}
		fmt.Printf("forced to version %d\n", *force)
	case *up:
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("failed to run up migrations: %v", err)
		}
		fmt.Println("migrations applied successfully")
	case *down:
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("failed to run down migrations: %v", err)
		}
		fmt.Println("migrations reverted successfully")
	case *steps != 0:
		if err := m.Steps(*steps); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("failed to run migrations: %v", err)
		}
		fmt.Printf("applied %d migration steps\n", *steps)
	default:
		fmt.Println("usage: migrate -dsn <connection-string> [-up|-down|-steps N|-version|-force N]")
		flag.PrintDefaults()
	}
}
