package models

// Project - проект из портфолио студии.
//
// Link и GithubLink необязательны и сериализуются как null, если не заданы.
// Featured по умолчанию false: отсутствующее поле и явный false не различаются.
type Project struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"imageUrl"`
	Technologies []string `json:"technologies"`
	Category     string   `json:"category"`
	Link         *string  `json:"link"`
	GithubLink   *string  `json:"githubLink"`
	Featured     bool     `json:"featured"`
}

// Clone возвращает копию проекта, не разделяющую с оригиналом срезы и указатели.
func (p Project) Clone() Project {
	p.Technologies = append([]string(nil), p.Technologies...)
	p.Link = cloneString(p.Link)
	p.GithubLink = cloneString(p.GithubLink)
	return p
}

// ProjectInput используется для приёма нового проекта из JSON-запроса.
type ProjectInput struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	ImageURL     string   `json:"imageUrl" validate:"required"`
	Technologies []string `json:"technologies" validate:"required,min=1,dive,required"`
	Category     string   `json:"category" validate:"required"`
	Link         *string  `json:"link,omitempty" validate:"omitempty,link"`
	GithubLink   *string  `json:"githubLink,omitempty" validate:"omitempty,link"`
	Featured     bool     `json:"featured,omitempty"`
}

// ToProject собирает запись проекта без идентификатора.
// Пустые ссылки приводятся к nil.
func (in ProjectInput) ToProject() Project {
	return Project{
		Title:        in.Title,
		Description:  in.Description,
		ImageURL:     in.ImageURL,
		Technologies: append([]string(nil), in.Technologies...),
		Category:     in.Category,
		Link:         nonEmpty(in.Link),
		GithubLink:   nonEmpty(in.GithubLink),
		Featured:     in.Featured,
	}
}

// ProjectPatch - частичное обновление проекта. Поле со значением nil сохраняет прежнее значение.
// Для Link и GithubLink пустая строка сбрасывает ссылку в null.
type ProjectPatch struct {
	Title        *string   `json:"title,omitempty" validate:"omitempty,min=1"`
	Description  *string   `json:"description,omitempty" validate:"omitempty,min=1"`
	ImageURL     *string   `json:"imageUrl,omitempty" validate:"omitempty,min=1"`
	Technologies *[]string `json:"technologies,omitempty" validate:"omitempty,min=1,dive,required"`
	Category     *string   `json:"category,omitempty" validate:"omitempty,min=1"`
	Link         *string   `json:"link,omitempty" validate:"omitempty,link"`
	GithubLink   *string   `json:"githubLink,omitempty" validate:"omitempty,link"`
	Featured     *bool     `json:"featured,omitempty"`
}

// Apply накладывает заданные поля патча на копию проекта. Идентификатор не меняется.
func (pt ProjectPatch) Apply(p Project) Project {
	p = p.Clone()
	if pt.Title != nil {
		p.Title = *pt.Title
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	if pt.ImageURL != nil {
		p.ImageURL = *pt.ImageURL
	}
	if pt.Technologies != nil {
		p.Technologies = append([]string(nil), (*pt.Technologies)...)
	}
	if pt.Category != nil {
		p.Category = *pt.Category
	}
	if pt.Link != nil {
		p.Link = nonEmpty(pt.Link)
	}
	if pt.GithubLink != nil {
		p.GithubLink = nonEmpty(pt.GithubLink)
	}
	if pt.Featured != nil {
		p.Featured = *pt.Featured
	}
	return p
}

// IsEmpty сообщает, что в патче не задано ни одного поля.
func (pt ProjectPatch) IsEmpty() bool {
	return pt == ProjectPatch{}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
