package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"langconnect/internal/domain"
	"langconnect/internal/infrastructure/repository"
	"langconnect/internal/infrastructure/security"

	"go.uber.org/zap"
)

type IdentityUseCase struct {
	users        *repository.UserRepository
	achievements *repository.AchievementRepository
	presence     Presence
	tokens       *security.TokenManager
	log          *zap.Logger
}

func NewIdentityUseCase(
	ur *repository.UserRepository,
	ar *repository.AchievementRepository,
	p Presence,
	tm *security.TokenManager,
	log *zap.Logger,
) *IdentityUseCase {
	return &IdentityUseCase{
		users:        ur,
		achievements: ar,
		presence:     p,
		tokens:       tm,
		log:          log,
	}
}

type RegisterInput struct {
	Email            string
	Name             string
	Avatar           string
	NativeLanguage   string
	LearningLanguage string
	Country          string
}

func (uc *IdentityUseCase) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Name == "" || in.NativeLanguage == "" || in.LearningLanguage == "" {
		return nil, "", fmt.Errorf("%w: email, name and languages are required", domain.ErrValidation)
	}

	user := &domain.User{
		Email:            in.Email,
		Name:             in.Name,
		NativeLanguage:   in.NativeLanguage,
		LearningLanguage: in.LearningLanguage,
		Country:          in.Country,
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := uc.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	if err := uc.achievements.SeedForUser(ctx, user.ID); err != nil {
		uc.log.Warn("failed to seed achievements", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	token, err := uc.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	if err := uc.presence.SetOnline(ctx, user.ID); err != nil {
		uc.log.Warn("failed to set presence", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	user.IsOnline = true

	return user, token, nil
}

// Login — упрощённый вход по email, как в клиенте. Обновляет last_seen
// и онлайн-статус, выпускает сессионный токен.
func (uc *IdentityUseCase) Login(ctx context.Context, email string) (*domain.User, string, error) {
	if strings.TrimSpace(email) == "" {
		return nil, "", fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	if err := uc.users.TouchLastSeen(ctx, user.ID); err != nil {
		uc.log.Warn("failed to touch last_seen", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	if err := uc.presence.SetOnline(ctx, user.ID); err != nil {
		uc.log.Warn("failed to set presence", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	user.IsOnline = true

	token, err := uc.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (uc *IdentityUseCase) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	online, err := uc.presence.Online(ctx, []uint{id})
	if err == nil {
		user.IsOnline = online[id]
	}
	return user, nil
}

// Косметические поля профиля, доступные для прямого изменения.
// level/xp/coins/vip принадлежат прогрессии и леджеру.
var profileFields = map[string]string{
	"name":             "name",
	"avatar":           "avatar",
	"avatarFrame":      "avatar_frame",
	"country":          "country",
	"region":           "region",
	"city":             "city",
	"nativeLanguage":   "native_language",
	"learningLanguage": "learning_language",
}

func (uc *IdentityUseCase) UpdateProfile(ctx context.Context, id uint, fields map[string]interface{}) (*domain.User, error) {
	updates := map[string]interface{}{}
	for key, value := range fields {
		col, ok := profileFields[key]
		if !ok {
			return nil, fmt.Errorf("%w: field %q is not updatable", domain.ErrValidation, key)
		}
		updates[col] = value
	}
	return uc.users.UpdateProfile(ctx, id, updates)
}

type ListUsersInput struct {
	Search     string
	Region     string
	Country    string
	OnlineOnly bool
	Limit      int
}

// ListUsers: выборка из стора + декорирование онлайн-статусом из presence.
// Онлайн выводим первыми, как делал прежний бэкенд.
func (uc *IdentityUseCase) ListUsers(ctx context.Context, in ListUsersInput) ([]domain.User, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = 20
	}

	fetch := limit
	if in.OnlineOnly {
		// Фильтруем после декорирования, поэтому берём с запасом
		fetch = limit * 5
	}

	users, err := uc.users.Search(ctx, repository.SearchParams{
		Search:  in.Search,
		Region:  in.Region,
		Country: in.Country,
		Limit:   fetch,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	online, err := uc.presence.Online(ctx, ids)
	if err != nil {
		uc.log.Warn("failed to read presence", zap.Error(err))
		online = map[uint]bool{}
	}
	for i := range users {
		users[i].IsOnline = online[users[i].ID]
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].IsOnline && !users[j].IsOnline
	})

	if in.OnlineOnly {
		filtered := users[:0]
		for _, u := range users {
			if u.IsOnline {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (uc *IdentityUseCase) AddFriend(ctx context.Context, userID, friendID uint) error {
	if userID == friendID {
		return fmt.Errorf("%w: cannot befriend yourself", domain.ErrValidation)
	}
	if _, err := uc.users.GetByID(ctx, friendID); err != nil {
		return err
	}
	return uc.users.AddFriend(ctx, userID, friendID)
}
