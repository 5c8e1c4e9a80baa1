package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Клиент Google Cloud Translation v2. Без API-ключа работает как заглушка
// и возвращает исходный текст — так же вёл себя прежний бэкенд.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	log        *zap.Logger
}

func NewClient(endpoint, apiKey string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		apiKey:     apiKey,
		log:        log,
	}
}

type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if c.apiKey == "" {
		return text, nil
	}

	form := url.Values{}
	form.Set("key", c.apiKey)
	form.Set("q", text)
	form.Set("target", targetLang)
	if sourceLang != "" && sourceLang != "auto" {
		form.Set("source", sourceLang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate: unexpected status %d", resp.StatusCode)
	}

	var parsed googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Data.Translations) == 0 {
		return "", fmt.Errorf("translate: empty response")
	}
	return parsed.Data.Translations[0].TranslatedText, nil
}
