package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cedrix49/portfolio/internal/chat"
	"github.com/Cedrix49/portfolio/internal/faq"
)

const chatCookie = "chat_session"

// completionLimit caps the typeahead list under the chat input.
const completionLimit = 3

// chatData is what the chat templates render.
type chatData struct {
	chat.View
	TypingDelayMS int64
	Notice        string
}

// chatSession returns the visitor's widget session, creating one and
// refreshing the cookie as needed.
func (a *app) chatSession(c *gin.Context) *chat.Session {
	id, _ := c.Cookie(chatCookie)
	s, created := a.chats.GetOrCreate(id)
	if created {
		log.Printf("Chat: new session for %s", a.hashIP(c.ClientIP()))
	}
	c.SetCookie(chatCookie, s.ID, int(a.cfg.SessionTTL.Seconds()), "/", "", a.cfg.CookieSecure, true)
	return s
}

func (a *app) chatData(s *chat.Session, notice string) chatData {
	return chatData{
		View:          s.View(),
		TypingDelayMS: a.cfg.TypingDelay.Milliseconds(),
		Notice:        notice,
	}
}

// recordAnswer counts the answer in the background, like visitor tracking.
func (a *app) recordAnswer(res faq.Result) {
	go func() {
		if err := recordFAQHit(a.db, res); err != nil {
			log.Printf("Error recording FAQ hit: %v", err)
		}
	}()
}

func submitNotice(err error) string {
	switch {
	case errors.Is(err, chat.ErrRateLimited):
		return "You're sending messages a little fast. Give me a second to catch up."
	case err != nil:
		return "Sorry, something went wrong. Please try again."
	}
	return ""
}

func (a *app) setupChatRoutes(r *gin.Engine) {
	// Open or close the widget
	r.POST("/chat/toggle", func(c *gin.Context) {
		s := a.chatSession(c)
		s.Toggle()
		c.HTML(http.StatusOK, "chat-widget.html", a.chatData(s, ""))
	})

	// Message send, from the input box or a suggestion chip
	r.POST("/chat/send", func(c *gin.Context) {
		s := a.chatSession(c)
		err := s.Submit(c.PostForm("message"))
		if errors.Is(err, chat.ErrEmptyMessage) {
			c.Status(http.StatusNoContent)
			return
		}
		c.HTML(http.StatusOK, "chat-body.html", a.chatData(s, submitNotice(err)))
	})

	// Polled by the typing indicator after the typing delay
	r.GET("/chat/reply", func(c *gin.Context) {
		s := a.chatSession(c)
		if res, ok := s.Reply(a.matcher); ok {
			a.recordAnswer(res)
		}
		c.HTML(http.StatusOK, "chat-body.html", a.chatData(s, ""))
	})

	r.GET("/chat/complete", func(c *gin.Context) {
		questions := a.kb.Complete(c.Query("message"), completionLimit)
		prompts := make([]string, len(questions))
		for i, q := range questions {
			prompts[i] = faq.Prompt(q)
		}
		c.HTML(http.StatusOK, "chat-complete.html", gin.H{
			"prompts": prompts,
		})
	})

	// JSON API for clients without HTMX; answers immediately
	r.POST("/api/chat", func(c *gin.Context) {
		var req struct {
			Message string `json:"message"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		s := a.chatSession(c)
		res, earlier, err := s.Ask(req.Message, a.matcher)
		switch {
		case errors.Is(err, chat.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		case errors.Is(err, chat.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// HTMX replies still owed on this session were answered first
		for _, prev := range earlier {
			a.recordAnswer(prev)
		}
		a.recordAnswer(res)

		view := s.View()
		c.JSON(http.StatusOK, gin.H{
			"answer":      res.Answer,
			"suggestions": view.Suggestions,
			"session":     view.ID,
		})
	})
}
