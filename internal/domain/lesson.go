package domain

import (
	"math"
	"time"
)

type Lesson struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Language      string `gorm:"not null;index" json:"language"`
	Title         string `gorm:"not null" json:"title"`
	Description   string `json:"description"`
	XPReward      int    `gorm:"not null" json:"xp_reward"`
	LevelRequired int    `gorm:"not null;default:1" json:"level_required"`
}

// Прохождение урока создаётся не более одного раза на пару (user, lesson).
type UserLesson struct {
	UserID      uint `gorm:"primaryKey"`
	LessonID    uint `gorm:"primaryKey"`
	Score       int  `gorm:"not null"`
	CompletedAt time.Time
}

// XPAward: награда урока, умноженная на VIP-множитель и долю результата,
// с округлением до целого.
func XPAward(reward int, tier VipTier, score int) int {
	return int(math.Round(float64(reward) * float64(tier.XPMultiplier()) * float64(score) / 100.0))
}

// Результат прохождения урока в формате клиента.
type LessonResult struct {
	XPAwarded int `json:"xp"`
	Level     int `json:"level"`
	TotalXP   int `json:"totalXp"`
}
