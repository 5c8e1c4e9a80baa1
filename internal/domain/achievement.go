package domain

import "time"

// Счётчики, по которым считается прогресс достижений. Закрытый набор,
// чтобы условия оставались данными, а не кодом.
type CounterKind string

const (
	CounterTotalMessages    CounterKind = "total_messages"
	CounterWordsLearned     CounterKind = "words_learned"
	CounterGiftsReceived    CounterKind = "gifts_received"
	CounterStreakDays       CounterKind = "streak_days"
	CounterLevel            CounterKind = "level"
	CounterLessonsCompleted CounterKind = "lessons_completed"
)

// Шаблон достижения: условие = счётчик >= target.
type Achievement struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"not null" json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Counter     CounterKind `gorm:"not null" json:"-"`
	Target      int         `gorm:"not null" json:"-"`
}

type UserAchievement struct {
	UserID        uint `gorm:"primaryKey"`
	AchievementID uint `gorm:"primaryKey"`
	Progress      int  `gorm:"not null;default:0"`
	Unlocked      bool `gorm:"not null;default:false"`
	UnlockedAt    *time.Time
}

// ProgressPercent: 0-100 с клампом сверху.
func (a *Achievement) ProgressPercent(value int) int {
	if a.Target <= 0 {
		return 0
	}
	pct := value * 100 / a.Target
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}
