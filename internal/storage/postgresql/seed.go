package postgresql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/studio-portfolio/internal/models"
)

// SeedFixtures заполняет пустые таблицы проектов и услуг начальными данными,
// сохраняя их идентификаторы, и сдвигает последовательности на max(id)+1.
// Непустые таблицы не трогает.
func (s *Storage) SeedFixtures(ctx context.Context, projects []models.Project, services []models.Service) error {
	const op = "storage.postgresql.SeedFixtures"
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	empty, err := tableEmpty(ctx, tx, "projects")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if empty {
		for _, p := range projects {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO projects (id, title, description, image_url, technologies, category, link, github_link, featured)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				p.ID, p.Title, p.Description, p.ImageURL, p.Technologies, p.Category, p.Link, p.GithubLink, p.Featured)
			if err != nil {
				return fmt.Errorf("%s: insert project %d: %w", op, p.ID, err)
			}
		}
		if err = syncSequence(ctx, tx, "projects"); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	empty, err = tableEmpty(ctx, tx, "services")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if empty {
		for _, svc := range services {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO services (id, title, description, icon, features) VALUES ($1, $2, $3, $4, $5)`,
				svc.ID, svc.Title, svc.Description, svc.Icon, svc.Features)
			if err != nil {
				return fmt.Errorf("%s: insert service %d: %w", op, svc.ID, err)
			}
		}
		if err = syncSequence(ctx, tx, "services"); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// table подставляется только из констант этого файла.
func tableEmpty(ctx context.Context, tx *sql.Tx, table string) (bool, error) {
	var exists bool
	err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+`)`).Scan(&exists)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func syncSequence(ctx context.Context, tx *sql.Tx, table string) error {
	_, err := tx.ExecContext(ctx, `
		SELECT setval(pg_get_serial_sequence('`+table+`', 'id'),
		              COALESCE((SELECT MAX(id) FROM `+table+`), 0) + 1, false)`)
	return err
}
