package domain

import (
	"time"
)

type VipTier string

const (
	VipTierNone    VipTier = ""
	VipTierSilver  VipTier = "silver"
	VipTierGold    VipTier = "gold"
	VipTierDiamond VipTier = "diamond"
)

// Множитель XP для тарифа. Обычный аккаунт — x1.
func (t VipTier) XPMultiplier() int {
	switch t {
	case VipTierSilver:
		return 2
	case VipTierGold:
		return 3
	case VipTierDiamond:
		return 5
	default:
		return 1
	}
}

func ParseVipTier(s string) (VipTier, bool) {
	switch VipTier(s) {
	case VipTierSilver, VipTierGold, VipTierDiamond:
		return VipTier(s), true
	default:
		return VipTierNone, false
	}
}

type User struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	Email            string  `gorm:"uniqueIndex;not null" json:"email"`
	Name             string  `gorm:"not null" json:"name"`
	Avatar           string  `gorm:"default:'🚀'" json:"avatar"`
	NativeLanguage   string  `gorm:"not null" json:"native_language"`
	LearningLanguage string  `gorm:"not null" json:"learning_language"`
	Country          string  `json:"country"`
	Region           string  `json:"region"`
	City             string  `json:"city"`
	Level            int     `gorm:"not null;default:1" json:"level"`
	XP               int     `gorm:"column:xp;not null;default:0" json:"xp"`
	Coins            int     `gorm:"not null;default:100" json:"coins"`
	IsVip            bool    `gorm:"not null;default:false" json:"is_vip"`
	VipBadge         VipTier `gorm:"default:''" json:"vip_badge"`
	AvatarFrame      string  `json:"avatar_frame"`

	StreakDays   int       `gorm:"not null;default:0" json:"streak_days"`
	LastStreakAt time.Time `json:"-"`

	TotalMessages int `gorm:"not null;default:0" json:"total_messages"`
	WordsLearned  int `gorm:"not null;default:0" json:"words_learned"`
	GiftsReceived int `gorm:"not null;default:0" json:"gifts_received"`

	LastSeen time.Time `json:"last_seen"`
	IsOnline bool      `gorm:"-" json:"is_online"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Ёмкость текущего уровня: level * 100 XP.
func LevelCapacity(level int) int {
	return level * 100
}

// AddXP начисляет очки и прокручивает уровни, пока XP хватает на ёмкость.
// Один крупный урок может поднять сразу несколько уровней.
func (u *User) AddXP(points int) {
	if points <= 0 {
		return
	}
	u.XP += points
	for u.XP >= LevelCapacity(u.Level) {
		u.XP -= LevelCapacity(u.Level)
		u.Level++
	}
}

type Friendship struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	FriendID  uint      `gorm:"primaryKey" json:"friend_id"`
	Status    string    `gorm:"default:'accepted'" json:"status"`
	CreatedAt time.Time `json:"-"`
}
