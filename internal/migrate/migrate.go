package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"go.uber.org/zap"
)

//go:embed *.sql
var files embed.FS

// Up применяет еще не примененные *.sql по порядку имен. Каждый файл
// и его запись в schema_migrations идут одной транзакцией.
func Up(ctx context.Context, db *sql.DB, logger *zap.SugaredLogger) (int, error) {
	return up(ctx, db, files, logger)
}

func up(ctx context.Context, db *sql.DB, src fs.FS, logger *zap.SugaredLogger) (int, error) {
	entries, err := fs.ReadDir(src, ".")
	if err != nil {
		return 0, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	if _, err = db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)`); err != nil {
		return 0, err
	}

	applied := 0
	for _, name := range names {
		var done bool
		err = db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, name).Scan(&done)
		if err != nil {
			return applied, err
		}
		if done {
			continue
		}

		body, err := fs.ReadFile(src, name)
		if err != nil {
			return applied, err
		}

		if err = apply(ctx, db, name, string(body)); err != nil {
			return applied, fmt.Errorf("apply %s: %w", name, err)
		}

		logger.Infof("migration %s applied", name)
		applied++
	}

	return applied, nil
}

func apply(ctx context.Context, db *sql.DB, name, body string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // nolint:errcheck

	if _, err = tx.ExecContext(ctx, body); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, name); err != nil {
		return err
	}

	return tx.Commit()
}
