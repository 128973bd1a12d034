// Package models содержит доменные структуры сайта студии: пользователей админ-панели,
// проекты портфолио, услуги и заявки с контактной формы.
package models

// User представляет пользователя админ-панели.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // bcrypt-хэш, пароль в открытом виде не хранится
}

// UserInput - данные для создания пользователя. Хэширование пароля выполняет вызывающая сторона.
type UserInput struct {
	Username     string
	PasswordHash string
}
