package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Josh-codes/AgriDroneX/internal/service/chat"
)

// fakeChatService implements chat.Service for handler tests.
type fakeChatService struct {
	reply string
	err   error

	lastMessage  string
	lastLocation string
}

func (s *fakeChatService) Ask(_ context.Context, message, location string) (string, error) {
	s.lastMessage = message
	s.lastLocation = location
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newChatRouter(svc chat.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewChatHandler(svc, nil)

	r := gin.New()
	r.POST("/api/chat", h.Ask)
	return r
}

func TestChatAsk(t *testing.T) {
	svc := &fakeChatService{reply: "Plant maize after the first rains."}
	r := newChatRouter(svc)

	body := `{"message": "When should I plant maize?", "location": "Thiès"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Plant maize after the first rains.")
	assert.Equal(t, "When should I plant maize?", svc.lastMessage)
	assert.Equal(t, "Thiès", svc.lastLocation)
}

func TestChatAskRejectsEmptyMessage(t *testing.T) {
	r := newChatRouter(&fakeChatService{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"location": "Thiès"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatAskAdvisorDisabled(t *testing.T) {
	r := newChatRouter(&fakeChatService{err: chat.ErrDisabled})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message": "hello"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "not available")
}

func TestChatAskUpstreamFailure(t *testing.T) {
	r := newChatRouter(&fakeChatService{err: assert.AnError})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message": "hello"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
