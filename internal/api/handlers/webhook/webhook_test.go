package webhook

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"chef-virtual/internal/infrastructure/config"
	"chef-virtual/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verifyRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{config: &config.Config{
		WhatsApp: config.WhatsAppConfig{VerifyToken: "secreto"},
	}}
	router := gin.New()
	router.GET("/webhook", h.HandleVerify)
	return router
}

func TestHandleVerify(t *testing.T) {
	router := verifyRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=secreto&hub.challenge=12345", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "12345", w.Body.String())
}

func TestHandleVerifyRejectsBadToken(t *testing.T) {
	router := verifyRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=otro&hub.challenge=12345", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=unsubscribe&hub.verify_token=secreto", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestExtractMessageText(t *testing.T) {
	var p payload
	err := common.ParseJSON(`{
		"entry": [{
			"changes": [{
				"value": {
					"contacts": [{"profile": {"name": "Ana"}}],
					"messages": [{"from": "59899123456", "type": "text", "text": {"body": "torta de chocolate"}}]
				}
			}]
		}]
	}`, &p)
	require.NoError(t, err)

	from, name, text, buttonID, ok := extractMessage(&p)
	require.True(t, ok)
	assert.Equal(t, "59899123456", from)
	assert.Equal(t, "Ana", name)
	assert.Equal(t, "torta de chocolate", text)
	assert.Empty(t, buttonID)
}

func TestExtractMessageButtonReply(t *testing.T) {
	var p payload
	err := common.ParseJSON(`{
		"entry": [{
			"changes": [{
				"value": {
					"messages": [{"from": "59899123456", "type": "interactive",
						"interactive": {"button_reply": {"id": "tienda_inglesa", "title": "🛍 Tienda Inglesa"}}}]
				}
			}]
		}]
	}`, &p)
	require.NoError(t, err)

	from, _, _, buttonID, ok := extractMessage(&p)
	require.True(t, ok)
	assert.Equal(t, "59899123456", from)
	assert.Equal(t, "tienda_inglesa", buttonID)
}

func TestExtractMessageStatusUpdatesIgnored(t *testing.T) {
	// Delivery receipts arrive with no messages array.
	var p payload
	err := common.ParseJSON(`{
		"entry": [{"changes": [{"value": {}}]}]
	}`, &p)
	require.NoError(t, err)

	_, _, _, _, ok := extractMessage(&p)
	assert.False(t, ok)
}
