package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"go-gin-comedy-tickets/internal/cache"
	"go-gin-comedy-tickets/internal/database"
	"go-gin-comedy-tickets/internal/handler"
	"go-gin-comedy-tickets/internal/middleware"
	"go-gin-comedy-tickets/internal/model"
	"go-gin-comedy-tickets/internal/queue"
	"go-gin-comedy-tickets/internal/repository"
	"go-gin-comedy-tickets/internal/service"
	"go-gin-comedy-tickets/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtSecret = "integration-secret"

// failingQueue 發送一律失敗；訂位仍應成功，快取改由讀取時回源
type failingQueue struct{}

func (failingQueue) PublishInventory(ctx context.Context, event *model.InventoryEvent) error {
	return errors.New("queue publish failed")
}

func (failingQueue) SubscribeInventory(ctx context.Context) (<-chan queue.Delivery, error) {
	out := make(chan queue.Delivery)
	close(out)
	return out, nil
}

func setupRouter(t *testing.T, q queue.InventoryQueue) *gin.Engine {
	t.Helper()
	testutil.RequireIntegration(t)
	ctx := context.Background()
	require.NoError(t, testutil.TruncateAll(ctx, testDB))
	require.NoError(t, testRdb.FlushDB(ctx).Err())

	tx := database.NewTransactor(testDB)
	showRepo := repository.NewShowRepository(testDB)
	inventoryRepo := repository.NewInventoryRepository(testDB)
	bookingRepo := repository.NewBookingRepository(testDB)
	comedianRepo := repository.NewComedianRepository(testDB)
	settingsRepo := repository.NewSettingsRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	availability := cache.NewRedisAvailabilityCache(testRdb)

	showService := service.NewShowService(tx, showRepo, inventoryRepo, bookingRepo, comedianRepo, availability, q)
	bookingService := service.NewBookingService(tx, bookingRepo, showRepo, inventoryRepo, settingsRepo, availability, q, false)
	userService := service.NewUserService(tx, userRepo, comedianRepo)
	feeService := service.NewFeeService(tx, settingsRepo, showRepo, inventoryRepo, bookingRepo)

	gin.SetMode(gin.TestMode)
	handler.RegisterValidators()
	router := gin.New()
	router.Use(middleware.OptionalAuth(jwtSecret))
	handler.NewShowHandler(showService).RegisterRoutes(router)
	handler.NewBookingHandler(bookingService).RegisterRoutes(router)
	handler.NewUserHandler(userService).RegisterRoutes(router)
	handler.NewAdminHandler(userService, feeService).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, actor *model.Actor) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		token, err := middleware.NewAccessToken(jwtSecret, actor.UserID, actor.Role, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w.Code, out
}

func TestHTTPFlow_CreatePublishBookCancel(t *testing.T) {
	router := setupRouter(t, queue.NewMemoryInventoryQueue(100))

	organizer := &model.Actor{UserID: createUsers(t, "org", 1, model.RoleOrganizerVerified)[0], Role: model.RoleOrganizerVerified}
	fan := &model.Actor{UserID: createUsers(t, "fan", 1, model.RoleAudience)[0], Role: model.RoleAudience}

	// 1. 建立草稿節目
	code, body := doJSON(t, router, http.MethodPost, "/api/v1/shows", map[string]interface{}{
		"title":         "Friday Roast",
		"date":          time.Now().Add(96 * time.Hour).Format(time.RFC3339),
		"venue":         "Cellar Bar",
		"ticket_price":  400,
		"total_tickets": 5,
	}, organizer)
	require.Equal(t, http.StatusCreated, code, body)
	showUUID := body["show_id"].(string)

	// 2. 草稿對觀眾不可見
	code, _ = doJSON(t, router, http.MethodGet, "/api/v1/shows/"+showUUID, nil, fan)
	assert.Equal(t, http.StatusNotFound, code)

	// 3. 發佈
	code, body = doJSON(t, router, http.MethodPost, "/api/v1/shows/"+showUUID+"/publish", nil, organizer)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, true, body["is_published"])

	// 4. 訂 3 張，再訂 3 張會超賣
	code, body = doJSON(t, router, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"show_id": showUUID, "quantity": 3,
	}, fan)
	require.Equal(t, http.StatusCreated, code, body)
	bookingID := int(body["id"].(float64))
	assert.Equal(t, string(model.BookingStatusConfirmedUnpaid), body["status"])

	code, _ = doJSON(t, router, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"show_id": showUUID, "quantity": 3,
	}, fan)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = doJSON(t, router, http.MethodGet, "/api/v1/shows/"+showUUID+"/availability", nil, fan)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["available"])

	// 5. 已發佈且有訂位：不能刪除、不能改價
	code, body = doJSON(t, router, http.MethodDelete, "/api/v1/shows/"+showUUID, nil, organizer)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["error"], "1 booking(s)")

	code, _ = doJSON(t, router, http.MethodPut, "/api/v1/shows/"+showUUID, map[string]interface{}{
		"ticket_price": 900,
	}, organizer)
	assert.Equal(t, http.StatusBadRequest, code)

	// 6. 取消後票數回到庫存
	code, body = doJSON(t, router, http.MethodPut, "/api/v1/bookings/"+strconv.Itoa(bookingID)+"/cancel", nil, fan)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, string(model.BookingStatusCancelled), body["status"])

	var available int
	require.NoError(t, testDB.QueryRow(context.Background(),
		`SELECT i.available FROM ticket_inventory i JOIN shows s ON s.id = i.show_id WHERE s.show_id = $1`, showUUID,
	).Scan(&available))
	assert.Equal(t, 5, available)
}

func TestHTTPFlow_QueueFailureDoesNotFailBooking(t *testing.T) {
	router := setupRouter(t, failingQueue{})

	organizer := &model.Actor{UserID: createUsers(t, "org", 1, model.RoleOrganizerVerified)[0], Role: model.RoleOrganizerVerified}
	fan := &model.Actor{UserID: createUsers(t, "fan", 1, model.RoleAudience)[0], Role: model.RoleAudience}

	code, body := doJSON(t, router, http.MethodPost, "/api/v1/shows", map[string]interface{}{
		"title":         "Queue Down Comedy",
		"date":          time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"venue":         "Back Room",
		"ticket_price":  300,
		"total_tickets": 4,
	}, organizer)
	require.Equal(t, http.StatusCreated, code, body)
	showUUID := body["show_id"].(string)

	code, _ = doJSON(t, router, http.MethodPost, "/api/v1/shows/"+showUUID+"/publish", nil, organizer)
	require.Equal(t, http.StatusOK, code)

	code, body = doJSON(t, router, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"show_id": showUUID, "quantity": 1,
	}, fan)
	require.Equal(t, http.StatusCreated, code, body)

	code, body = doJSON(t, router, http.MethodGet, "/api/v1/shows/"+showUUID+"/availability", nil, fan)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(3), body["available"])
}
