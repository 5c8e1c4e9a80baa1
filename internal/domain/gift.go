package domain

import "time"

type Gift struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Icon  string `json:"icon"`
	Price int    `gorm:"not null" json:"price"`
}

// Запись леджера: списание монет отправителя и инкремент счётчика
// получателя происходят в одной транзакции с этой записью.
type GiftTransaction struct {
	ID         uint  `gorm:"primaryKey"`
	SenderID   uint  `gorm:"not null;index"`
	ReceiverID uint  `gorm:"not null;index"`
	GiftID     uint  `gorm:"not null"`
	ChatID     *uint `gorm:"index"`
	CreatedAt  time.Time
}

type VipPlan struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Tier         VipTier `gorm:"uniqueIndex;not null" json:"tier"`
	Price        int     `gorm:"not null" json:"price"`
	XPMultiplier int     `gorm:"not null" json:"xp_multiplier"`
	Description  string  `json:"description"`
}
