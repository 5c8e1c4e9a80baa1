package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"langconnect/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	// Email сравниваем без учёта регистра
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("LOWER(email) = LOWER(?)", user.Email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrDuplicateEmail
	}

	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Гонка двух одновременных регистраций
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return &user, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return &user, err
}

// UpdateProfile обновляет только переданные косметические поля.
// Владение level/xp/coins/vip лежит на других компонентах, сюда они не попадают.
func (r *UserRepository) UpdateProfile(ctx context.Context, id uint, fields map[string]interface{}) (*domain.User, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&domain.User{}).
			Where("id = ?", id).
			Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) TouchLastSeen(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("last_seen", time.Now().UTC()).Error
}

type SearchParams struct {
	Search  string
	Region  string
	Country string
	Limit   int
}

// Search возвращает кандидатов, отсортированных по last_seen. Онлайн-статус
// живёт в presence-кеше и навешивается слоем выше.
func (r *UserRepository) Search(ctx context.Context, p SearchParams) ([]domain.User, error) {
	q := r.db.WithContext(ctx).Model(&domain.User{})

	if p.Search != "" {
		like := "%" + strings.ToLower(p.Search) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(native_language) LIKE ? OR LOWER(learning_language) LIKE ? OR LOWER(country) LIKE ?",
			like, like, like, like,
		)
	}
	if p.Region != "" {
		q = q.Where("LOWER(region) LIKE ?", "%"+strings.ToLower(p.Region)+"%")
	}
	if p.Country != "" {
		q = q.Where("LOWER(country) LIKE ?", "%"+strings.ToLower(p.Country)+"%")
	}

	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	var users []domain.User
	err := q.Order("last_seen DESC").Limit(limit).Find(&users).Error
	return users, err
}

// AddFriend пишет связь в обе стороны; повторный вызов — no-op.
func (r *UserRepository) AddFriend(ctx context.Context, userID, friendID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, pair := range [][2]uint{{userID, friendID}, {friendID, userID}} {
			f := domain.Friendship{UserID: pair[0], FriendID: pair[1]}
			if err := tx.Where(domain.Friendship{UserID: pair[0], FriendID: pair[1]}).
				Attrs(domain.Friendship{Status: "accepted", CreatedAt: time.Now().UTC()}).
				FirstOrCreate(&f).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
