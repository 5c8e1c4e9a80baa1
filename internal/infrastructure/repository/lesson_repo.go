package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"langconnect/internal/domain"

	"gorm.io/gorm"
)

type LessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

type LessonStatus struct {
	domain.Lesson
	Completed bool `json:"completed"`
}

func (r *LessonRepository) ListForUser(ctx context.Context, language string, userID uint) ([]LessonStatus, error) {
	var lessons []domain.Lesson
	err := r.db.WithContext(ctx).
		Where("language = ?", language).
		Order("level_required, id").
		Find(&lessons).Error
	if err != nil {
		return nil, err
	}

	completed := map[uint]bool{}
	if userID != 0 {
		var rows []domain.UserLesson
		if err := r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, ul := range rows {
			completed[ul.LessonID] = true
		}
	}

	out := make([]LessonStatus, len(lessons))
	for i, l := range lessons {
		out[i] = LessonStatus{Lesson: l, Completed: completed[l.ID]}
	}
	return out, nil
}

func (r *LessonRepository) CountCompleted(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.UserLesson{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// Complete проводит прохождение урока одной короткой транзакцией:
// гейт по уровню, запрет повторного прохождения, начисление XP с
// прокруткой уровней, words_learned и серия дней.
func (r *LessonRepository) Complete(ctx context.Context, userID, lessonID uint, score int) (*domain.LessonResult, error) {
	var result domain.LessonResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lesson domain.Lesson
		if err := tx.First(&lesson, lessonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		var user domain.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		if user.Level < lesson.LevelRequired {
			return domain.ErrLevelGate
		}

		var count int64
		if err := tx.Model(&domain.UserLesson{}).
			Where("user_id = ? AND lesson_id = ?", userID, lessonID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrAlreadyCompleted
		}

		completion := domain.UserLesson{
			UserID:      userID,
			LessonID:    lessonID,
			Score:       score,
			CompletedAt: time.Now().UTC(),
		}
		if err := tx.Create(&completion).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Гонка двух одновременных прохождений
				return domain.ErrAlreadyCompleted
			}
			return err
		}

		award := domain.XPAward(lesson.XPReward, user.VipBadge, score)

		// Оптимистичное обновление: защищаемся от параллельных начислений
		// тому же пользователю без долгих блокировок.
		for attempt := 0; attempt < 3; attempt++ {
			next := user
			next.AddXP(award)
			streak, streakAt := nextStreak(user.StreakDays, user.LastStreakAt)

			res := tx.Model(&domain.User{}).
				Where("id = ? AND level = ? AND xp = ?", userID, user.Level, user.XP).
				Updates(map[string]interface{}{
					"level":          next.Level,
					"xp":             next.XP,
					"words_learned":  gorm.Expr("words_learned + 10"),
					"streak_days":    streak,
					"last_streak_at": streakAt,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 1 {
				result = domain.LessonResult{
					XPAwarded: award,
					Level:     next.Level,
					TotalXP:   next.XP,
				}
				return nil
			}
			if err := tx.First(&user, userID).Error; err != nil {
				return err
			}
		}
		return fmt.Errorf("concurrent xp update for user %d did not settle", userID)
	})

	if err != nil {
		return nil, err
	}
	return &result, nil
}

// nextStreak: активность сегодня не меняет серию, вчера — продлевает,
// разрыв — начинает заново.
func nextStreak(current int, lastAt time.Time) (int, time.Time) {
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)
	last := lastAt.UTC().Truncate(24 * time.Hour)

	switch {
	case lastAt.IsZero():
		return 1, now
	case last.Equal(today):
		if current < 1 {
			current = 1
		}
		return current, now
	case today.Sub(last) == 24*time.Hour:
		return current + 1, now
	default:
		return 1, now
	}
}
