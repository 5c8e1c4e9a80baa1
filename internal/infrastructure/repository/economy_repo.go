package repository

import (
	"context"
	"errors"
	"time"

	"langconnect/internal/domain"

	"gorm.io/gorm"
)

type EconomyRepository struct {
	db *gorm.DB
}

func NewEconomyRepository(db *gorm.DB) *EconomyRepository {
	return &EconomyRepository{db: db}
}

func (r *EconomyRepository) ListGifts(ctx context.Context) ([]domain.Gift, error) {
	var gifts []domain.Gift
	err := r.db.WithContext(ctx).Order("price").Find(&gifts).Error
	return gifts, err
}

func (r *EconomyRepository) ListVipPlans(ctx context.Context) ([]domain.VipPlan, error) {
	var plans []domain.VipPlan
	err := r.db.WithContext(ctx).Order("price").Find(&plans).Error
	return plans, err
}

func (r *EconomyRepository) GetVipPlan(ctx context.Context, tier domain.VipTier) (*domain.VipPlan, error) {
	var plan domain.VipPlan
	err := r.db.WithContext(ctx).Where("tier = ?", tier).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return &plan, err
}

// SendGift — всё или ничего: проверка баланса и списание одним условным
// UPDATE, инкремент получателя и запись леджера в той же транзакции.
// При нехватке монет ни одна из сторон не меняется.
func (r *EconomyRepository) SendGift(ctx context.Context, senderID, receiverID, giftID uint, chatID *uint) (*domain.Gift, error) {
	var gift domain.Gift

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&gift, giftID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		res := tx.Model(&domain.User{}).
			Where("id = ? AND coins >= ?", senderID, gift.Price).
			Update("coins", gorm.Expr("coins - ?", gift.Price))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&domain.User{}).Where("id = ?", senderID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrNotFound
			}
			return domain.ErrInsufficientCoins
		}

		res = tx.Model(&domain.User{}).
			Where("id = ?", receiverID).
			Update("gifts_received", gorm.Expr("gifts_received + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		return tx.Create(&domain.GiftTransaction{
			SenderID:   senderID,
			ReceiverID: receiverID,
			GiftID:     giftID,
			ChatID:     chatID,
			CreatedAt:  time.Now().UTC(),
		}).Error
	})

	if err != nil {
		return nil, err
	}
	return &gift, nil
}

// ApplyVip выставляет тариф. Это set, а не инкремент: повторная покупка
// того же тарифа не портит состояние.
func (r *EconomyRepository) ApplyVip(ctx context.Context, userID uint, tier domain.VipTier) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"is_vip":    true,
			"vip_badge": tier,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
