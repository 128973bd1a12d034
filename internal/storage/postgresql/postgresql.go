// Package postgresql реализует хранилище записей сайта на PostgreSQL.
// Набор методов совпадает с хранилищем в памяти, поэтому приложение может работать с любым из них.
package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/studio-portfolio/internal/models"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New открывает соединение с PostgreSQL и проверяет его доступность.
func New(ctx context.Context, connectionString string) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := sql.Open("pgx", connectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Storage{DB: db}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// ===== USERS =====

// GetUser возвращает пользователя по идентификатору.
func (s *Storage) GetUser(ctx context.Context, id int) (models.User, bool, error) {
	const op = "storage.postgresql.GetUser"
	var u models.User
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return u, true, nil
}

// GetUserByUsername возвращает пользователя по имени.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (models.User, bool, error) {
	const op = "storage.postgresql.GetUserByUsername"
	var u models.User
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM users WHERE username = $1 ORDER BY id LIMIT 1`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return u, true, nil
}

// CreateUser добавляет пользователя. Повтор имени отклоняется ограничением UNIQUE таблицы.
func (s *Storage) CreateUser(ctx context.Context, in models.UserInput) (models.User, error) {
	const op = "storage.postgresql.CreateUser"
	u := models.User{Username: in.Username, PasswordHash: in.PasswordHash}
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id`,
		in.Username, in.PasswordHash).Scan(&u.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ===== PROJECTS =====

const projectColumns = `id, title, description, image_url, technologies, category, link, github_link, featured`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner, m *pgtype.Map) (models.Project, error) {
	var (
		p          models.Project
		link       sql.NullString
		githubLink sql.NullString
	)
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL,
		m.SQLScanner(&p.Technologies), &p.Category, &link, &githubLink, &p.Featured)
	if err != nil {
		return models.Project{}, err
	}
	if link.Valid {
		p.Link = &link.String
	}
	if githubLink.Valid {
		p.GithubLink = &githubLink.String
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	return p, nil
}

// GetProjects возвращает все проекты, упорядоченные по идентификатору.
func (s *Storage) GetProjects(ctx context.Context) ([]models.Project, error) {
	const op = "storage.postgresql.GetProjects"
	rows, err := s.DB.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	m := pgtype.NewMap()
	res := make([]models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows, m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		res = append(res, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// CreateProject добавляет проект, идентификатор выдаёт последовательность таблицы.
func (s *Storage) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	const op = "storage.postgresql.CreateProject"
	technologies := p.Technologies
	if technologies == nil {
		technologies = []string{}
	}
	row := s.DB.QueryRowContext(ctx, `
		INSERT INTO projects (title, description, image_url, technologies, category, link, github_link, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+projectColumns,
		p.Title, p.Description, p.ImageURL, technologies, p.Category, p.Link, p.GithubLink, p.Featured)
	created, err := scanProject(row, pgtype.NewMap())
	if err != nil {
		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// UpdateProject накладывает патч на проект внутри транзакции.
// Если проекта нет, возвращает found=false.
func (s *Storage) UpdateProject(ctx context.Context, id int, patch models.ProjectPatch) (models.Project, bool, error) {
	const op = "storage.postgresql.UpdateProject"
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Project{}, false, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	m := pgtype.NewMap()
	existing, err := scanProject(tx.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 FOR UPDATE`, id), m)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, false, nil
	}
	if err != nil {
		return models.Project{}, false, fmt.Errorf("%s: %w", op, err)
	}

	p := patch.Apply(existing)
	_, err = tx.ExecContext(ctx, `
		UPDATE projects
		SET title = $1, description = $2, image_url = $3, technologies = $4,
		    category = $5, link = $6, github_link = $7, featured = $8
		WHERE id = $9`,
		p.Title, p.Description, p.ImageURL, p.Technologies, p.Category, p.Link, p.GithubLink, p.Featured, id)
	if err != nil {
		return models.Project{}, false, fmt.Errorf("%s: %w", op, err)
	}
	if err = tx.Commit(); err != nil {
		return models.Project{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return p, true, nil
}

// DeleteProject удаляет проект и сообщает, была ли удалена строка.
func (s *Storage) DeleteProject(ctx context.Context, id int) (bool, error) {
	const op = "storage.postgresql.DeleteProject"
	res, err := s.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}

// ===== SERVICES =====

// GetServices возвращает список услуг.
func (s *Storage) GetServices(ctx context.Context) ([]models.Service, error) {
	const op = "storage.postgresql.GetServices"
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, title, description, icon, features FROM services ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	m := pgtype.NewMap()
	res := make([]models.Service, 0)
	for rows.Next() {
		var svc models.Service
		if err := rows.Scan(&svc.ID, &svc.Title, &svc.Description, &svc.Icon, m.SQLScanner(&svc.Features)); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		res = append(res, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// ===== CONTACTS =====

// CreateContact сохраняет заявку с переданным временем создания.
func (s *Storage) CreateContact(ctx context.Context, in models.ContactInput, createdAt string) (models.Contact, error) {
	const op = "storage.postgresql.CreateContact"
	c := models.Contact{Name: in.Name, Email: in.Email, Message: in.Message, CreatedAt: createdAt}
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO contacts (name, email, message, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		in.Name, in.Email, in.Message, createdAt).Scan(&c.ID)
	if err != nil {
		return models.Contact{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}
