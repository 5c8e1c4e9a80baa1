package repository

import (
	"context"
	"testing"

	"langconnect/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendGiftDebitsAndCredits(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEconomyRepository(db)
	ctx := context.Background()

	sender := createTestUser(t, db, "sender@example.com")
	receiver := createTestUser(t, db, "receiver@example.com")

	gift := &domain.Gift{Name: "Роза", Icon: "🌹", Price: 10}
	require.NoError(t, db.Create(gift).Error)

	got, err := repo.SendGift(ctx, sender.ID, receiver.ID, gift.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, gift.ID, got.ID)

	var s, r domain.User
	require.NoError(t, db.First(&s, sender.ID).Error)
	require.NoError(t, db.First(&r, receiver.ID).Error)
	assert.Equal(t, 90, s.Coins)
	assert.Equal(t, 1, r.GiftsReceived)

	var ledger int64
	require.NoError(t, db.Model(&domain.GiftTransaction{}).Count(&ledger).Error)
	assert.Equal(t, int64(1), ledger)
}

func TestSendGiftInsufficientCoinsIsAtomic(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEconomyRepository(db)
	ctx := context.Background()

	sender := createTestUser(t, db, "sender@example.com")
	require.NoError(t, db.Model(sender).Update("coins", 40).Error)
	receiver := createTestUser(t, db, "receiver@example.com")

	gift := &domain.Gift{Name: "Букет", Icon: "💐", Price: 50}
	require.NoError(t, db.Create(gift).Error)

	_, err := repo.SendGift(ctx, sender.ID, receiver.ID, gift.ID, nil)
	assert.ErrorIs(t, err, domain.ErrInsufficientCoins)

	// Ни одна из сторон не изменилась, записи в леджере нет
	var s, r domain.User
	require.NoError(t, db.First(&s, sender.ID).Error)
	require.NoError(t, db.First(&r, receiver.ID).Error)
	assert.Equal(t, 40, s.Coins)
	assert.Equal(t, 0, r.GiftsReceived)

	var ledger int64
	require.NoError(t, db.Model(&domain.GiftTransaction{}).Count(&ledger).Error)
	assert.Zero(t, ledger)
}

func TestSendGiftUnknownReceiverRollsBackDebit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEconomyRepository(db)
	ctx := context.Background()

	sender := createTestUser(t, db, "sender@example.com")
	gift := &domain.Gift{Name: "Кофе", Icon: "☕", Price: 15}
	require.NoError(t, db.Create(gift).Error)

	_, err := repo.SendGift(ctx, sender.ID, 9999, gift.ID, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var s domain.User
	require.NoError(t, db.First(&s, sender.ID).Error)
	assert.Equal(t, 100, s.Coins)
}

func TestSendGiftUnknownGift(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEconomyRepository(db)

	sender := createTestUser(t, db, "sender@example.com")
	receiver := createTestUser(t, db, "receiver@example.com")

	_, err := repo.SendGift(context.Background(), sender.ID, receiver.ID, 9999, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyVipIsIdempotentSet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEconomyRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "vip@example.com")

	require.NoError(t, repo.ApplyVip(ctx, user.ID, domain.VipTierGold))
	require.NoError(t, repo.ApplyVip(ctx, user.ID, domain.VipTierGold))

	var reloaded domain.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.True(t, reloaded.IsVip)
	assert.Equal(t, domain.VipTierGold, reloaded.VipBadge)

	assert.ErrorIs(t, repo.ApplyVip(ctx, 9999, domain.VipTierGold), domain.ErrNotFound)
}
