package repository

import (
	"context"
	"errors"
	"time"

	"langconnect/internal/domain"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// GetOrCreate идемпотентно находит или создаёт чат для неупорядоченной пары.
// Уникальный индекс на (user1_id, user2_id) закрывает гонку одновременных
// запросов от обоих участников: проигравший просто перечитывает строку.
func (r *ChatRepository) GetOrCreate(ctx context.Context, a, b uint) (*domain.Chat, error) {
	lo, hi := domain.NormalizePair(a, b)

	chat := domain.Chat{User1ID: lo, User2ID: hi}
	err := r.db.WithContext(ctx).
		Where(domain.Chat{User1ID: lo, User2ID: hi}).
		Attrs(domain.Chat{
			LastMessage:     "Начните общение!",
			LastMessageTime: time.Now().UTC(),
			CreatedAt:       time.Now().UTC(),
		}).
		FirstOrCreate(&chat).Error

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = r.db.WithContext(ctx).
			Where("user1_id = ? AND user2_id = ?", lo, hi).
			First(&chat).Error
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *ChatRepository) GetByID(ctx context.Context, id uint) (*domain.Chat, error) {
	var chat domain.Chat
	err := r.db.WithContext(ctx).First(&chat, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return &chat, err
}

// Превью чата для списка: непрочитанное глазами запрашивающего
// плюс денормализованный собеседник.
type ChatPreview struct {
	ID              uint           `json:"id"`
	LastMessage     string         `json:"last_message"`
	LastMessageTime time.Time      `json:"last_message_time"`
	UnreadCount     int            `json:"unread_count"`
	PartnerID       uint           `json:"partner_id"`
	PartnerName     string         `json:"partner_name"`
	PartnerAvatar   string         `json:"partner_avatar"`
	PartnerVip      bool           `json:"partner_vip"`
	PartnerBadge    domain.VipTier `json:"partner_badge"`
}

func (r *ChatRepository) ListForUser(ctx context.Context, userID uint) ([]ChatPreview, error) {
	var chats []domain.Chat
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("last_message_time DESC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}

	partnerIDs := make([]uint, 0, len(chats))
	for _, c := range chats {
		partnerIDs = append(partnerIDs, c.PartnerOf(userID))
	}

	partners := map[uint]domain.User{}
	if len(partnerIDs) > 0 {
		var users []domain.User
		if err := r.db.WithContext(ctx).Find(&users, partnerIDs).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			partners[u.ID] = u
		}
	}

	previews := make([]ChatPreview, 0, len(chats))
	for _, c := range chats {
		p := partners[c.PartnerOf(userID)]
		previews = append(previews, ChatPreview{
			ID:              c.ID,
			LastMessage:     c.LastMessage,
			LastMessageTime: c.LastMessageTime,
			UnreadCount:     c.UnreadFor(userID),
			PartnerID:       p.ID,
			PartnerName:     p.Name,
			PartnerAvatar:   p.Avatar,
			PartnerVip:      p.IsVip,
			PartnerBadge:    p.VipBadge,
		})
	}
	return previews, nil
}

// Append пишет сообщение и в той же транзакции обновляет денормализацию
// чата и счётчик отправителя. Читатель не увидит сообщение без
// соответствующего инкремента непрочитанного.
func (r *ChatRepository) Append(ctx context.Context, msg *domain.Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var chat domain.Chat
		if err := tx.First(&chat, msg.ChatID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if !chat.HasParticipant(msg.SenderID) {
			return domain.ErrNotParticipant
		}

		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"last_message":      msg.Message,
			"last_message_time": msg.CreatedAt,
		}
		if chat.User1ID == msg.SenderID {
			updates["unread_count_user2"] = gorm.Expr("unread_count_user2 + 1")
		} else {
			updates["unread_count_user1"] = gorm.Expr("unread_count_user1 + 1")
		}
		if err := tx.Model(&domain.Chat{}).Where("id = ?", chat.ID).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Model(&domain.User{}).
			Where("id = ?", msg.SenderID).
			Update("total_messages", gorm.Expr("total_messages + 1")).Error
	})
}

type MessageView struct {
	domain.Message
	SenderName   string `json:"sender_name"`
	SenderAvatar string `json:"sender_avatar"`
}

// ListWindow возвращает последние limit сообщений чата в хронологическом
// порядке (старейшее окна — первым). При равных created_at порядок решает id.
func (r *ChatRepository) ListWindow(ctx context.Context, chatID uint, limit int) ([]MessageView, error) {
	if limit <= 0 {
		limit = 50
	}

	var msgs []domain.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}

	senders := map[uint]domain.User{}
	senderIDs := make([]uint, 0, len(msgs))
	for _, m := range msgs {
		if _, ok := senders[m.SenderID]; !ok {
			senders[m.SenderID] = domain.User{}
			senderIDs = append(senderIDs, m.SenderID)
		}
	}
	if len(senderIDs) > 0 {
		var users []domain.User
		if err := r.db.WithContext(ctx).Find(&users, senderIDs).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			senders[u.ID] = u
		}
	}

	// Окно выбиралось с конца, разворачиваем в возрастающий порядок
	views := make([]MessageView, len(msgs))
	for i, m := range msgs {
		s := senders[m.SenderID]
		views[len(msgs)-1-i] = MessageView{
			Message:      m,
			SenderName:   s.Name,
			SenderAvatar: s.Avatar,
		}
	}
	return views, nil
}

// MarkRead сбрасывает непрочитанное запрашивающего в ноль.
func (r *ChatRepository) MarkRead(ctx context.Context, chatID, userID uint) error {
	chat, err := r.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !chat.HasParticipant(userID) {
		return domain.ErrNotParticipant
	}

	col := "unread_count_user2"
	if chat.User1ID == userID {
		col = "unread_count_user1"
	}
	return r.db.WithContext(ctx).Model(&domain.Chat{}).
		Where("id = ?", chatID).
		Update(col, 0).Error
}
