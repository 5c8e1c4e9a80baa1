package usecase

import (
	"context"
	"testing"

	"langconnect/internal/domain"
	"langconnect/internal/infrastructure/repository"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakePresence struct {
	online   map[uint]bool
	setCalls int
}

func newFakePresence() *fakePresence {
	return &fakePresence{online: map[uint]bool{}}
}

func (f *fakePresence) SetOnline(_ context.Context, userID uint) error {
	f.online[userID] = true
	f.setCalls++
	return nil
}

func (f *fakePresence) Online(_ context.Context, userIDs []uint) (map[uint]bool, error) {
	result := map[uint]bool{}
	for _, id := range userIDs {
		result[id] = f.online[id]
	}
	return result, nil
}

type fakeTranslator struct {
	out   string
	err   error
	calls int
}

func (f *fakeTranslator) Translate(_ context.Context, text, _, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.out == "" {
		return text, nil
	}
	return f.out, nil
}

type testEnv struct {
	db           *gorm.DB
	users        *repository.UserRepository
	chats        *repository.ChatRepository
	lessons      *repository.LessonRepository
	achievements *repository.AchievementRepository
	economy      *repository.EconomyRepository
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Friendship{},
		&domain.Chat{},
		&domain.Message{},
		&domain.Achievement{},
		&domain.UserAchievement{},
		&domain.Lesson{},
		&domain.UserLesson{},
		&domain.Gift{},
		&domain.GiftTransaction{},
		&domain.VipPlan{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}
	})

	return &testEnv{
		db:           db,
		users:        repository.NewUserRepository(db),
		chats:        repository.NewChatRepository(db),
		lessons:      repository.NewLessonRepository(db),
		achievements: repository.NewAchievementRepository(db),
		economy:      repository.NewEconomyRepository(db),
	}
}

func (e *testEnv) createUser(t *testing.T, email, nativeLang string) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:            email,
		Name:             "Тест",
		NativeLanguage:   nativeLang,
		LearningLanguage: "English",
		Level:            1,
		Coins:            100,
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func noplog() *zap.Logger { return zap.NewNop() }
