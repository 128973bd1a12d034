// Package password реализует функции для хеширования и проверки паролей.
//
// GetHash создает bcrypt-хеш пароля для хранения.
// CompareHash сравнивает bcrypt-хеш с введённым паролем.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch возвращается, если пароль не соответствует хэшу.
var ErrMismatch = errors.New("password does not match")

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, ErrMismatch при несовпадении
// и обёрнутую ошибку bcrypt, если сам хэш некорректен.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ValidateHash проверяет, что строка является bcrypt-хэшем.
func ValidateHash(hash string) error {
	const op = "password.ValidateHash"
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
