package repository

import (
	"context"
	"testing"

	"langconnect/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestLesson(t *testing.T, db *gorm.DB, reward, levelRequired int) *domain.Lesson {
	t.Helper()
	lesson := &domain.Lesson{
		Language:      "English",
		Title:         "Урок",
		XPReward:      reward,
		LevelRequired: levelRequired,
	}
	require.NoError(t, db.Create(lesson).Error)
	return lesson
}

func TestCompleteAwardsXPWithRollover(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "a@example.com")
	require.NoError(t, db.Model(user).Update("xp", 80).Error)
	lesson := createTestLesson(t, db, 50, 1)

	result, err := repo.Complete(ctx, user.ID, lesson.ID, 100)
	require.NoError(t, err)

	// 80 + 50 = 130, перелив через ёмкость 100 -> уровень 2, остаток 30
	assert.Equal(t, 50, result.XPAwarded)
	assert.Equal(t, 2, result.Level)
	assert.Equal(t, 30, result.TotalXP)

	var reloaded domain.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, 2, reloaded.Level)
	assert.Equal(t, 30, reloaded.XP)
	assert.Equal(t, 10, reloaded.WordsLearned)
	assert.Equal(t, 1, reloaded.StreakDays)
}

func TestCompleteMultiLevelJump(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "a@example.com")
	require.NoError(t, db.Model(user).Update("vip_badge", "diamond").Error)
	lesson := createTestLesson(t, db, 70, 1)

	// 70 * 5 (diamond) = 350: уровень 1 -> 3, остаток 50
	result, err := repo.Complete(ctx, user.ID, lesson.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 350, result.XPAwarded)
	assert.Equal(t, 3, result.Level)
	assert.Equal(t, 50, result.TotalXP)
}

func TestCompleteScalesByScore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "a@example.com")
	lesson := createTestLesson(t, db, 50, 1)

	result, err := repo.Complete(ctx, user.ID, lesson.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 25, result.XPAwarded)
}

func TestCompleteRejectsDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "a@example.com")
	lesson := createTestLesson(t, db, 50, 1)

	_, err := repo.Complete(ctx, user.ID, lesson.ID, 100)
	require.NoError(t, err)

	// Повторное прохождение не начисляет XP второй раз
	_, err = repo.Complete(ctx, user.ID, lesson.ID, 100)
	assert.ErrorIs(t, err, domain.ErrAlreadyCompleted)

	var reloaded domain.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, 50, reloaded.XP)
	assert.Equal(t, 1, reloaded.Level)
}

func TestCompleteEnforcesLevelGate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "a@example.com")
	lesson := createTestLesson(t, db, 120, 3)

	_, err := repo.Complete(ctx, user.ID, lesson.ID, 100)
	assert.ErrorIs(t, err, domain.ErrLevelGate)

	var count int64
	require.NoError(t, db.Model(&domain.UserLesson{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCompleteUnknownLessonOrUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "a@example.com")
	lesson := createTestLesson(t, db, 50, 1)

	_, err := repo.Complete(ctx, user.ID, 9999, 100)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.Complete(ctx, 9999, lesson.ID, 100)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListForUserMarksCompleted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "a@example.com")
	done := createTestLesson(t, db, 50, 1)
	pending := createTestLesson(t, db, 60, 1)

	_, err := repo.Complete(ctx, user.ID, done.ID, 100)
	require.NoError(t, err)

	lessons, err := repo.ListForUser(ctx, "English", user.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 2)

	byID := map[uint]bool{}
	for _, l := range lessons {
		byID[l.ID] = l.Completed
	}
	assert.True(t, byID[done.ID])
	assert.False(t, byID[pending.ID])
}
