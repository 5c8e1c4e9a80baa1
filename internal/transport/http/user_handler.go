package handlers

import (
	"net/http"
	"strconv"
	"time"

	"langconnect/internal/application/usecase"
	"langconnect/internal/domain"

	"github.com/gin-gonic/gin"
)

type registerReq struct {
	Email            string `json:"email" binding:"required,email"`
	Name             string `json:"name" binding:"required"`
	Avatar           string `json:"avatar"`
	NativeLanguage   string `json:"nativeLanguage" binding:"required"`
	LearningLanguage string `json:"learningLanguage" binding:"required"`
	Country          string `json:"country"`
}

type loginReq struct {
	Email string `json:"email" binding:"required,email"`
}

// Пользователь плюс сессионный токен (дополнительное поле, клиенту
// старого формата оно не мешает).
type authResponse struct {
	domain.User
	Token string `json:"token"`
}

func (h *Handler) Register(c *gin.Context) {
	if !h.limiter.Allow(c, "register:"+c.ClientIP(), 5, time.Minute) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
		return
	}

	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.identity.Register(c, usecase.RegisterInput{
		Email:            req.Email,
		Name:             req.Name,
		Avatar:           req.Avatar,
		NativeLanguage:   req.NativeLanguage,
		LearningLanguage: req.LearningLanguage,
		Country:          req.Country,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{User: *user, Token: token})
}

func (h *Handler) Login(c *gin.Context) {
	if !h.limiter.Allow(c, "login:"+c.ClientIP(), 10, time.Minute) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
		return
	}

	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.identity.Login(c, req.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{User: *user, Token: token})
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := queryUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	user, err := h.identity.GetUser(c, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, err := h.identity.ListUsers(c, usecase.ListUsersInput{
		Search:     c.Query("search"),
		Region:     c.Query("region"),
		Country:    c.Query("country"),
		OnlineOnly: c.Query("onlineOnly") == "true",
		Limit:      limit,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := queryUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	// При наличии валидного токена менять можно только свой профиль
	if ctxID, exists := c.Get("userId"); exists && ctxID.(uint) != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot update another user"})
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.identity.UpdateProfile(c, id, fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type addFriendReq struct {
	UserID   uint `json:"userId" binding:"required"`
	FriendID uint `json:"friendId" binding:"required"`
}

func (h *Handler) AddFriend(c *gin.Context) {
	var req addFriendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.identity.AddFriend(c, req.UserID, req.FriendID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}
