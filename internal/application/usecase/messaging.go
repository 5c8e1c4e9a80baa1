package usecase

import (
	"context"
	"fmt"
	"time"

	"langconnect/internal/domain"
	"langconnect/internal/infrastructure/repository"

	"go.uber.org/zap"
)

type MessagingUseCase struct {
	chats            *repository.ChatRepository
	users            *repository.UserRepository
	achievements     *repository.AchievementRepository
	translator       Translator
	translateTimeout time.Duration
	log              *zap.Logger
}

func NewMessagingUseCase(
	cr *repository.ChatRepository,
	ur *repository.UserRepository,
	ar *repository.AchievementRepository,
	tr Translator,
	translateTimeout time.Duration,
	log *zap.Logger,
) *MessagingUseCase {
	if translateTimeout <= 0 {
		translateTimeout = 5 * time.Second
	}
	return &MessagingUseCase{
		chats:            cr,
		users:            ur,
		achievements:     ar,
		translator:       tr,
		translateTimeout: translateTimeout,
		log:              log,
	}
}

// CreateChat идемпотентен: для уже существующей пары возвращает её чат.
func (uc *MessagingUseCase) CreateChat(ctx context.Context, user1ID, user2ID uint) (uint, error) {
	if user1ID == user2ID {
		return 0, fmt.Errorf("%w: cannot open a chat with yourself", domain.ErrValidation)
	}
	for _, id := range []uint{user1ID, user2ID} {
		if _, err := uc.users.GetByID(ctx, id); err != nil {
			return 0, err
		}
	}
	chat, err := uc.chats.GetOrCreate(ctx, user1ID, user2ID)
	if err != nil {
		return 0, err
	}
	return chat.ID, nil
}

func (uc *MessagingUseCase) ListChats(ctx context.Context, userID uint) ([]repository.ChatPreview, error) {
	return uc.chats.ListForUser(ctx, userID)
}

type SendMessageInput struct {
	ChatID            uint
	SenderID          uint
	Body              string
	TranslatedMessage string
	IsVoice           bool
}

// SendMessage сохраняет сообщение с переводом на родной язык получателя,
// когда родные языки различаются. Перевод ограничен таймаутом; его ошибка
// не отменяет отправку — сообщение уходит без перевода.
func (uc *MessagingUseCase) SendMessage(ctx context.Context, in SendMessageInput) (*domain.Message, error) {
	if in.Body == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrValidation)
	}

	chat, err := uc.chats.GetByID(ctx, in.ChatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(in.SenderID) {
		return nil, domain.ErrNotParticipant
	}

	sender, err := uc.users.GetByID(ctx, in.SenderID)
	if err != nil {
		return nil, err
	}
	recipient, err := uc.users.GetByID(ctx, chat.PartnerOf(in.SenderID))
	if err != nil {
		return nil, err
	}

	translated := in.TranslatedMessage
	if translated == "" && recipient.NativeLanguage != sender.NativeLanguage {
		tctx, cancel := context.WithTimeout(ctx, uc.translateTimeout)
		out, terr := uc.translator.Translate(tctx, in.Body, sender.NativeLanguage, recipient.NativeLanguage)
		cancel()
		if terr != nil {
			uc.log.Warn("translation failed, delivering untranslated",
				zap.Uint("chat_id", in.ChatID), zap.Error(terr))
		} else if out != in.Body {
			translated = out
		}
	}

	msg := &domain.Message{
		ChatID:   in.ChatID,
		SenderID: in.SenderID,
		Message:  in.Body,
		IsVoice:  in.IsVoice,
	}
	if translated != "" {
		msg.TranslatedMessage = &translated
	}

	if err := uc.chats.Append(ctx, msg); err != nil {
		return nil, err
	}

	if _, err := uc.achievements.Evaluate(ctx, in.SenderID); err != nil {
		uc.log.Warn("achievement evaluation failed", zap.Uint("user_id", in.SenderID), zap.Error(err))
	}
	return msg, nil
}

func (uc *MessagingUseCase) ListMessages(ctx context.Context, chatID uint, limit int) ([]repository.MessageView, error) {
	if _, err := uc.chats.GetByID(ctx, chatID); err != nil {
		return nil, err
	}
	return uc.chats.ListWindow(ctx, chatID, limit)
}

func (uc *MessagingUseCase) MarkRead(ctx context.Context, chatID, userID uint) error {
	return uc.chats.MarkRead(ctx, chatID, userID)
}
