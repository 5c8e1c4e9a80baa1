package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type translateReq struct {
	Text       string `json:"text" binding:"required"`
	TargetLang string `json:"targetLang"`
	SourceLang string `json:"sourceLang"`
}

// Отдельный endpoint перевода. При ошибке внешнего сервиса возвращаем
// исходный текст — клиент показывает оригинал.
func (h *Handler) Translate(c *gin.Context) {
	var req translateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}

	if req.TargetLang == "" {
		req.TargetLang = "en"
	}
	if req.SourceLang == "" {
		req.SourceLang = "auto"
	}

	translated, err := h.translator.Translate(c, req.Text, req.SourceLang, req.TargetLang)
	if err != nil {
		h.log.Warn("translate endpoint fallback", zap.Error(err))
		translated = req.Text
	}

	c.JSON(http.StatusOK, gin.H{
		"original":   req.Text,
		"translated": translated,
		"sourceLang": req.SourceLang,
		"targetLang": req.TargetLang,
	})
}
