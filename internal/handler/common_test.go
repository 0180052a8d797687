package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"go-gin-comedy-tickets/internal/handler"
	"go-gin-comedy-tickets/internal/middleware"
	"go-gin-comedy-tickets/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

var (
	InvalidJSON = `{"invalid": json}`
)

// setupTestRouter 與正式環境相同：OptionalAuth 之後掛上各 handler
func setupTestRouter(register ...func(r *gin.Engine)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler.RegisterValidators()

	router := gin.New()
	router.Use(middleware.OptionalAuth(testSecret))
	for _, fn := range register {
		fn(router)
	}
	return router
}

// create JSON request body
func createJSONRequest(data interface{}) *bytes.Buffer {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

// create HTTP request with JSON body
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	req, err := http.NewRequest(method, url, createJSONRequest(data))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withToken 帶上指定身分的 Bearer token
func withToken(t *testing.T, req *http.Request, userID int, role model.Role) *http.Request {
	t.Helper()
	token, err := middleware.NewAccessToken(testSecret, userID, role, time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// actorWith 比對 handler 傳給 service 的身分
func actorWith(userID int, role model.Role) interface{} {
	return mock.MatchedBy(func(a *model.Actor) bool {
		return a != nil && a.UserID == userID && a.Role == role
	})
}

// noActor 訪客請求傳給 service 的是 nil
func noActor() interface{} {
	return mock.MatchedBy(func(a *model.Actor) bool { return a == nil })
}

func decodeBody(t *testing.T, body *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body.Bytes(), &out))
	return out
}
