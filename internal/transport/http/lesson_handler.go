package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListLessons(c *gin.Context) {
	userID, _ := queryUint(c, "userId")

	lessons, err := h.progression.ListLessons(c, c.Query("language"), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

type completeLessonReq struct {
	UserID   uint `json:"userId" binding:"required"`
	LessonID uint `json:"lessonId" binding:"required"`
	Score    *int `json:"score"`
}

func (h *Handler) CompleteLesson(c *gin.Context) {
	var req completeLessonReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Клиент может не прислать score — считаем урок пройденным на 100%
	score := 100
	if req.Score != nil {
		score = *req.Score
	}

	result, err := h.progression.CompleteLesson(c, req.UserID, req.LessonID, score)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) Achievements(c *gin.Context) {
	userID, ok := queryUint(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	achievements, err := h.progression.Achievements(c, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, achievements)
}
