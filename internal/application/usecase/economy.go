package usecase

import (
	"context"
	"fmt"

	"langconnect/internal/domain"
	"langconnect/internal/infrastructure/repository"

	"go.uber.org/zap"
)

type EconomyUseCase struct {
	economy      *repository.EconomyRepository
	users        *repository.UserRepository
	chats        *repository.ChatRepository
	achievements *repository.AchievementRepository
	log          *zap.Logger
}

func NewEconomyUseCase(
	er *repository.EconomyRepository,
	ur *repository.UserRepository,
	cr *repository.ChatRepository,
	ar *repository.AchievementRepository,
	log *zap.Logger,
) *EconomyUseCase {
	return &EconomyUseCase{
		economy:      er,
		users:        ur,
		chats:        cr,
		achievements: ar,
		log:          log,
	}
}

func (uc *EconomyUseCase) ListGifts(ctx context.Context) ([]domain.Gift, error) {
	return uc.economy.ListGifts(ctx)
}

func (uc *EconomyUseCase) ListVipPlans(ctx context.Context) ([]domain.VipPlan, error) {
	return uc.economy.ListVipPlans(ctx)
}

// SendGift: списание и зачисление атомарны в леджере. Уведомление в чат —
// обычное сообщение с гифт-маркером, его сбой не откатывает подарок.
func (uc *EconomyUseCase) SendGift(ctx context.Context, senderID, receiverID, giftID uint, chatID *uint) error {
	if senderID == receiverID {
		return fmt.Errorf("%w: cannot send a gift to yourself", domain.ErrValidation)
	}

	gift, err := uc.economy.SendGift(ctx, senderID, receiverID, giftID, chatID)
	if err != nil {
		return err
	}

	if chatID != nil {
		msg := &domain.Message{
			ChatID:   *chatID,
			SenderID: senderID,
			Message:  fmt.Sprintf("%s Подарок: %s", gift.Icon, gift.Name),
			IsGift:   true,
		}
		if err := uc.chats.Append(ctx, msg); err != nil {
			uc.log.Warn("failed to append gift message",
				zap.Uint("chat_id", *chatID), zap.Error(err))
		}
	}

	if _, err := uc.achievements.Evaluate(ctx, receiverID); err != nil {
		uc.log.Warn("achievement evaluation failed", zap.Uint("user_id", receiverID), zap.Error(err))
	}
	return nil
}

// PurchaseVip выставляет тариф; расчёт оплаты — забота внешнего
// платёжного сервиса. Повторная покупка того же тарифа безвредна.
func (uc *EconomyUseCase) PurchaseVip(ctx context.Context, userID uint, tierName string) (*domain.User, error) {
	tier, ok := domain.ParseVipTier(tierName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown vip tier %q", domain.ErrValidation, tierName)
	}
	if _, err := uc.economy.GetVipPlan(ctx, tier); err != nil {
		return nil, err
	}
	if err := uc.economy.ApplyVip(ctx, userID, tier); err != nil {
		return nil, err
	}
	return uc.users.GetByID(ctx, userID)
}
