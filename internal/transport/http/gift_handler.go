package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListGifts(c *gin.Context) {
	gifts, err := h.economy.ListGifts(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gifts)
}

func (h *Handler) ListVipPlans(c *gin.Context) {
	plans, err := h.economy.ListVipPlans(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

type sendGiftReq struct {
	SenderID   uint  `json:"senderId" binding:"required"`
	ReceiverID uint  `json:"receiverId" binding:"required"`
	GiftID     uint  `json:"giftId" binding:"required"`
	ChatID     *uint `json:"chatId"`
}

func (h *Handler) SendGift(c *gin.Context) {
	var req sendGiftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.economy.SendGift(c, req.SenderID, req.ReceiverID, req.GiftID, req.ChatID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

type purchaseVipReq struct {
	UserID uint   `json:"userId" binding:"required"`
	Tier   string `json:"tier" binding:"required"`
}

func (h *Handler) PurchaseVip(c *gin.Context) {
	var req purchaseVipReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.economy.PurchaseVip(c, req.UserID, req.Tier)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
