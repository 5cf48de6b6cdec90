// Package password реализует хеширование паролей и проверку парольной политики.
//
// GetHash создает bcrypt-хеш пароля для безопасного хранения.
// CompareHash сравнивает сохранённый bcrypt-хеш с введённым паролем.
// Validate проверяет пароль на соответствие политике сложности.
package password

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/magabrotheeeer/realty-platform/internal/models"
)

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
// Возвращает nil, если пароль соответствует хэшу, иначе — ошибку.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Validate проверяет пароль на соответствие политике:
// минимум 8 символов, хотя бы одна заглавная и строчная буквы и одна цифра.
// Политика применяется при регистрации, сбросе и смене пароля.
func Validate(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", models.ErrValidation)
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return fmt.Errorf("%w: password must contain at least one uppercase letter", models.ErrValidation)
	}
	if !hasLower {
		return fmt.Errorf("%w: password must contain at least one lowercase letter", models.ErrValidation)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one number", models.ErrValidation)
	}
	return nil
}
