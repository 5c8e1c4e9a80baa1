package handlers

import (
	"net/http"
	"strconv"

	"langconnect/internal/application/usecase"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListChats(c *gin.Context) {
	userID, ok := queryUint(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	chats, err := h.messaging.ListChats(c, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chats)
}

type createChatReq struct {
	User1ID uint `json:"user1Id" binding:"required"`
	User2ID uint `json:"user2Id" binding:"required"`
}

func (h *Handler) CreateChat(c *gin.Context) {
	var req createChatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chatID, err := h.messaging.CreateChat(c, req.User1ID, req.User2ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"chatId": chatID})
}

func (h *Handler) ListMessages(c *gin.Context) {
	chatID, ok := queryUint(c, "chatId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chatId is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	messages, err := h.messaging.ListMessages(c, chatID, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

type sendMessageReq struct {
	ChatID            uint   `json:"chatId" binding:"required"`
	SenderID          uint   `json:"senderId" binding:"required"`
	Message           string `json:"message" binding:"required"`
	TranslatedMessage string `json:"translatedMessage"`
	IsVoice           bool   `json:"isVoice"`
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.messaging.SendMessage(c, usecase.SendMessageInput{
		ChatID:            req.ChatID,
		SenderID:          req.SenderID,
		Body:              req.Message,
		TranslatedMessage: req.TranslatedMessage,
		IsVoice:           req.IsVoice,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

type markReadReq struct {
	ChatID uint `json:"chatId" binding:"required"`
	UserID uint `json:"userId" binding:"required"`
}

func (h *Handler) MarkRead(c *gin.Context) {
	var req markReadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.messaging.MarkRead(c, req.ChatID, req.UserID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
