// Package token генерирует непрозрачные bearer-токены для сессий и сброса пароля.
//
// Токен — это 32 байта криптографической случайности в URL-safe base64 без
// дополнения, пригодные для передачи в заголовке Authorization.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Bytes — количество байт энтропии в токене.
const Bytes = 32

// New возвращает новый случайный URL-safe токен.
func New() (string, error) {
	const op = "token.New"
	buf := make([]byte, Bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
