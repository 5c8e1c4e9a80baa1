package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"langconnect/internal/application/usecase"
	"langconnect/internal/domain"
	"langconnect/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	identity    *usecase.IdentityUseCase
	progression *usecase.ProgressionUseCase
	messaging   *usecase.MessagingUseCase
	economy     *usecase.EconomyUseCase
	translator  usecase.Translator
	limiter     *middleware.RateLimiter
	log         *zap.Logger
}

func NewHandler(
	identity *usecase.IdentityUseCase,
	progression *usecase.ProgressionUseCase,
	messaging *usecase.MessagingUseCase,
	economy *usecase.EconomyUseCase,
	translator usecase.Translator,
	limiter *middleware.RateLimiter,
	log *zap.Logger,
) *Handler {
	return &Handler{
		identity:    identity,
		progression: progression,
		messaging:   messaging,
		economy:     economy,
		translator:  translator,
		limiter:     limiter,
		log:         log,
	}
}

// Клиент ходит одним endpoint-ом с дискриминатором ?action=.
func (h *Handler) DispatchGET(c *gin.Context) {
	switch c.Query("action") {
	case "users":
		h.ListUsers(c)
	case "user":
		h.GetUser(c)
	case "chats":
		h.ListChats(c)
	case "messages":
		h.ListMessages(c)
	case "achievements":
		h.Achievements(c)
	case "lessons":
		h.ListLessons(c)
	case "gifts":
		h.ListGifts(c)
	case "vip_plans":
		h.ListVipPlans(c)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Action not found"})
	}
}

func (h *Handler) DispatchPOST(c *gin.Context) {
	switch c.Query("action") {
	case "register":
		h.Register(c)
	case "login":
		h.Login(c)
	case "chats":
		h.CreateChat(c)
	case "messages":
		h.SendMessage(c)
	case "mark_read":
		h.MarkRead(c)
	case "add_friend":
		h.AddFriend(c)
	case "complete_lesson":
		h.CompleteLesson(c)
	case "send_gift":
		h.SendGift(c)
	case "purchase_vip":
		h.PurchaseVip(c)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Action not found"})
	}
}

func (h *Handler) DispatchPUT(c *gin.Context) {
	switch c.Query("action") {
	case "update_user":
		h.UpdateUser(c)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Action not found"})
	}
}

// Ошибки домена отдаём синхронно; клиент показывает текст как есть.
func (h *Handler) respondError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateEmail), errors.Is(err, domain.ErrAlreadyCompleted):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNotParticipant):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrInsufficientCoins), errors.Is(err, domain.ErrLevelGate):
		status = http.StatusBadRequest
	default:
		h.log.Error("internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func queryUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}
