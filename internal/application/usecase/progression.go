package usecase

import (
	"context"
	"fmt"

	"langconnect/internal/domain"
	"langconnect/internal/infrastructure/repository"

	"go.uber.org/zap"
)

type ProgressionUseCase struct {
	lessons      *repository.LessonRepository
	achievements *repository.AchievementRepository
	log          *zap.Logger
}

func NewProgressionUseCase(
	lr *repository.LessonRepository,
	ar *repository.AchievementRepository,
	log *zap.Logger,
) *ProgressionUseCase {
	return &ProgressionUseCase{lessons: lr, achievements: ar, log: log}
}

func (uc *ProgressionUseCase) ListLessons(ctx context.Context, language string, userID uint) ([]repository.LessonStatus, error) {
	if language == "" {
		language = "English"
	}
	return uc.lessons.ListForUser(ctx, language, userID)
}

// CompleteLesson: гейт по уровню и запрет повторного прохождения
// отдаются вызывающему как ошибки, без ретраев.
func (uc *ProgressionUseCase) CompleteLesson(ctx context.Context, userID, lessonID uint, score int) (*domain.LessonResult, error) {
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("%w: score must be between 0 and 100", domain.ErrValidation)
	}

	result, err := uc.lessons.Complete(ctx, userID, lessonID, score)
	if err != nil {
		return nil, err
	}

	if _, err := uc.achievements.Evaluate(ctx, userID); err != nil {
		uc.log.Warn("achievement evaluation failed", zap.Uint("user_id", userID), zap.Error(err))
	}
	return result, nil
}

func (uc *ProgressionUseCase) Achievements(ctx context.Context, userID uint) ([]repository.AchievementStatus, error) {
	return uc.achievements.Evaluate(ctx, userID)
}
