package repository

import (
	"context"
	"errors"
	"time"

	"langconnect/internal/domain"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// SeedForUser заводит нулевой прогресс по всем шаблонам при регистрации.
func (r *AchievementRepository) SeedForUser(ctx context.Context, userID uint) error {
	var templates []domain.Achievement
	if err := r.db.WithContext(ctx).Find(&templates).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range templates {
			row := domain.UserAchievement{UserID: userID, AchievementID: t.ID}
			if err := tx.Where(domain.UserAchievement{UserID: userID, AchievementID: t.ID}).
				FirstOrCreate(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

type AchievementStatus struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
	Progress    int    `json:"progress"`
}

// Evaluate пересчитывает прогресс всех шаблонов по текущим счётчикам
// пользователя и сохраняет его. Unlocked взводится один раз и больше
// не сбрасывается, прогресс вниз не пишем.
func (r *AchievementRepository) Evaluate(ctx context.Context, userID uint) ([]AchievementStatus, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var lessonsCompleted int64
	if err := r.db.WithContext(ctx).Model(&domain.UserLesson{}).
		Where("user_id = ?", userID).
		Count(&lessonsCompleted).Error; err != nil {
		return nil, err
	}

	var templates []domain.Achievement
	if err := r.db.WithContext(ctx).Order("id").Find(&templates).Error; err != nil {
		return nil, err
	}

	statuses := make([]AchievementStatus, 0, len(templates))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range templates {
			row := domain.UserAchievement{UserID: userID, AchievementID: t.ID}
			if err := tx.Where(domain.UserAchievement{UserID: userID, AchievementID: t.ID}).
				FirstOrCreate(&row).Error; err != nil {
				return err
			}

			pct := t.ProgressPercent(counterValue(t.Counter, &user, lessonsCompleted))
			if pct < row.Progress {
				pct = row.Progress
			}

			unlocked := row.Unlocked
			var unlockedAt *time.Time
			if !unlocked && pct >= 100 {
				unlocked = true
				now := time.Now().UTC()
				unlockedAt = &now
			}

			if pct != row.Progress || unlocked != row.Unlocked {
				updates := map[string]interface{}{"progress": pct, "unlocked": unlocked}
				if unlockedAt != nil {
					updates["unlocked_at"] = unlockedAt
				}
				if err := tx.Model(&domain.UserAchievement{}).
					Where("user_id = ? AND achievement_id = ?", userID, t.ID).
					Updates(updates).Error; err != nil {
					return err
				}
			}

			statuses = append(statuses, AchievementStatus{
				ID:          t.ID,
				Name:        t.Name,
				Description: t.Description,
				Icon:        t.Icon,
				Unlocked:    unlocked,
				Progress:    pct,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return statuses, nil
}

func counterValue(kind domain.CounterKind, u *domain.User, lessonsCompleted int64) int {
	switch kind {
	case domain.CounterTotalMessages:
		return u.TotalMessages
	case domain.CounterWordsLearned:
		return u.WordsLearned
	case domain.CounterGiftsReceived:
		return u.GiftsReceived
	case domain.CounterStreakDays:
		return u.StreakDays
	case domain.CounterLevel:
		return u.Level
	case domain.CounterLessonsCompleted:
		return int(lessonsCompleted)
	default:
		return 0
	}
}
