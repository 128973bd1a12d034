// Package memory реализует хранилище записей сайта в памяти процесса:
// пользователи, проекты, услуги и заявки с контактной формы.
//
// Каждая коллекция имеет собственный счётчик идентификаторов. Счётчик проектов
// при создании хранилища выставляется в max(id начальных проектов)+1,
// поэтому новые идентификаторы не пересекаются с начальными.
// Все операции синхронные и защищены мьютексом, данные живут до остановки процесса.
package memory

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/magabrotheeeer/studio-portfolio/internal/models"
	"github.com/magabrotheeeer/studio-portfolio/internal/storage"
)

// Store - хранилище записей в памяти.
type Store struct {
	mu sync.RWMutex

	users     map[int]models.User
	projects  map[int]models.Project
	order     []int // порядок вставки проектов
	services  []models.Service
	contacts  map[int]models.Contact
	userID    int
	projectID int
	contactID int
}

// New создаёт хранилище и загружает в него начальные проекты и услуги.
// Переданные срезы копируются.
func New(projects []models.Project, services []models.Service) *Store {
	s := &Store{
		users:     make(map[int]models.User),
		projects:  make(map[int]models.Project, len(projects)),
		contacts:  make(map[int]models.Contact),
		services:  make([]models.Service, 0, len(services)),
		userID:    1,
		projectID: 1,
		contactID: 1,
	}
	for _, p := range projects {
		if _, exists := s.projects[p.ID]; !exists {
			s.order = append(s.order, p.ID)
		}
		s.projects[p.ID] = p.Clone()
		if p.ID >= s.projectID {
			s.projectID = p.ID + 1
		}
	}
	for _, svc := range services {
		s.services = append(s.services, svc.Clone())
	}
	return s
}

// next выдаёт очередной идентификатор и сдвигает счётчик. Вызывать под s.mu.
func next(counter *int) (int, error) {
	if *counter == math.MaxInt {
		return 0, storage.ErrIDExhausted
	}
	id := *counter
	*counter++
	return id, nil
}

// GetUser возвращает пользователя по идентификатору.
func (s *Store) GetUser(_ context.Context, id int) (models.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok, nil
}

// GetUserByUsername ищет первого пользователя с данным именем.
// Уникальность имён здесь не проверяется.
func (s *Store) GetUserByUsername(_ context.Context, username string) (models.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id := 1; id < s.userID; id++ {
		if u, ok := s.users[id]; ok && u.Username == username {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

// CreateUser сохраняет пользователя с новым идентификатором.
func (s *Store) CreateUser(_ context.Context, in models.UserInput) (models.User, error) {
	const op = "storage.memory.CreateUser"
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := next(&s.userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	u := models.User{ID: id, Username: in.Username, PasswordHash: in.PasswordHash}
	s.users[id] = u
	return u, nil
}

// GetProjects возвращает копии всех проектов в порядке вставки.
func (s *Store) GetProjects(_ context.Context) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]models.Project, 0, len(s.order))
	for _, id := range s.order {
		if p, ok := s.projects[id]; ok {
			res = append(res, p.Clone())
		}
	}
	return res, nil
}

// CreateProject сохраняет проект с новым идентификатором и возвращает его.
// Идентификатор, если он задан в p, игнорируется.
func (s *Store) CreateProject(_ context.Context, p models.Project) (models.Project, error) {
	const op = "storage.memory.CreateProject"
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := next(&s.projectID)
	if err != nil {
		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}
	p = p.Clone()
	p.ID = id
	s.projects[id] = p
	s.order = append(s.order, id)
	return p.Clone(), nil
}

// UpdateProject накладывает патч на проект. Если проекта нет, возвращает found=false
// и ничего не меняет.
func (s *Store) UpdateProject(_ context.Context, id int, patch models.ProjectPatch) (models.Project, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.projects[id]
	if !ok {
		return models.Project{}, false, nil
	}
	updated := patch.Apply(existing)
	updated.ID = id
	s.projects[id] = updated
	return updated.Clone(), true, nil
}

// DeleteProject удаляет проект и сообщает, было ли что удалять.
func (s *Store) DeleteProject(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return false, nil
	}
	delete(s.projects, id)
	filtered := s.order[:0]
	for _, item := range s.order {
		if item != id {
			filtered = append(filtered, item)
		}
	}
	s.order = filtered
	return true, nil
}

// GetServices возвращает копию фиксированного списка услуг.
func (s *Store) GetServices(_ context.Context) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]models.Service, 0, len(s.services))
	for _, svc := range s.services {
		res = append(res, svc.Clone())
	}
	return res, nil
}

// CreateContact сохраняет заявку. Время создания передаёт вызывающая сторона.
func (s *Store) CreateContact(_ context.Context, in models.ContactInput, createdAt string) (models.Contact, error) {
	const op = "storage.memory.CreateContact"
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := next(&s.contactID)
	if err != nil {
		return models.Contact{}, fmt.Errorf("%s: %w", op, err)
	}
	c := models.Contact{
		ID:        id,
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: createdAt,
	}
	s.contacts[id] = c
	return c, nil
}

// Close ничего не освобождает и нужен для единообразия с SQL-хранилищем.
func (s *Store) Close() error {
	return nil
}
