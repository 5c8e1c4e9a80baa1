package domain

import "time"

// Чат — неупорядоченная пара пользователей. Храним нормализованно
// (user1_id < user2_id), уникальный индекс исключает дубль пары.
type Chat struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	User1ID          uint      `gorm:"not null;uniqueIndex:idx_chat_pair" json:"user1_id"`
	User2ID          uint      `gorm:"not null;uniqueIndex:idx_chat_pair" json:"user2_id"`
	LastMessage      string    `json:"last_message"`
	LastMessageTime  time.Time `json:"last_message_time"`
	UnreadCountUser1 int       `gorm:"not null;default:0" json:"-"`
	UnreadCountUser2 int       `gorm:"not null;default:0" json:"-"`
	CreatedAt        time.Time `json:"-"`
}

// NormalizePair приводит пару к каноническому порядку.
func NormalizePair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

func (c *Chat) HasParticipant(userID uint) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// PartnerOf возвращает второго участника.
func (c *Chat) PartnerOf(userID uint) uint {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

func (c *Chat) UnreadFor(userID uint) int {
	if c.User1ID == userID {
		return c.UnreadCountUser1
	}
	return c.UnreadCountUser2
}

// Сообщение неизменяемо после создания. Порядок в чате —
// (created_at, id) по возрастанию; id сервера монотонный.
type Message struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ChatID             uint      `gorm:"not null;index:idx_chat_created" json:"chat_id"`
	SenderID           uint      `gorm:"not null" json:"sender_id"`
	Message            string    `gorm:"column:message;not null" json:"message"`
	TranslatedMessage  *string   `json:"translated_message"`
	IsVoice            bool      `gorm:"not null;default:false" json:"is_voice"`
	VoiceTranscription *string   `json:"voice_transcription"`
	IsGift             bool      `gorm:"not null;default:false" json:"is_gift"`
	CreatedAt          time.Time `gorm:"index:idx_chat_created" json:"created_at"`
}
