package usecase

import "context"

// Presence — кеш онлайн-статуса (Redis в проде).
type Presence interface {
	SetOnline(ctx context.Context, userID uint) error
	Online(ctx context.Context, userIDs []uint) (map[uint]bool, error)
}

// Translator — внешний сервис перевода. Ошибки и таймауты перевода
// не должны ронять отправку сообщения.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
