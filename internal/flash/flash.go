// Package flash carries one-shot notifications from the handler that
// queued them to the next page that renders.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

const (
	CookieName   = "messages"
	pendingKey   = "flash.pending"
	cookieMaxAge = 300
)

// Add queues a message for the next rendered page. Queuing never fails the
// request; an undecodable cookie is simply replaced.
func Add(c *gin.Context, level Level, text string) {
	msgs := append(pending(c), Message{Level: level, Text: text})
	c.Set(pendingKey, msgs)

	raw, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	setCookie(c, base64.RawURLEncoding.EncodeToString(raw), cookieMaxAge)
}

// Pop returns all queued messages and clears the queue.
func Pop(c *gin.Context) []Message {
	msgs := pending(c)
	if len(msgs) == 0 {
		return nil
	}
	c.Set(pendingKey, []Message(nil))
	setCookie(c, "", -1)
	return msgs
}

// pending merges messages from the incoming cookie with the ones queued
// during this request. The cookie is only read once per request.
func pending(c *gin.Context) []Message {
	if v, ok := c.Get(pendingKey); ok {
		msgs, _ := v.([]Message)
		return msgs
	}

	var msgs []Message
	if raw, err := c.Cookie(CookieName); err == nil && raw != "" {
		if data, err := base64.RawURLEncoding.DecodeString(raw); err == nil {
			_ = json.Unmarshal(data, &msgs)
		}
	}
	c.Set(pendingKey, msgs)
	return msgs
}

func setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, maxAge, "/", "", false, true)
}
