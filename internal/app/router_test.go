package app

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant_backend/internal/cache"
	"restaurant_backend/internal/config"
	"restaurant_backend/internal/email"
	"restaurant_backend/internal/storage"
	"restaurant_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*httptest.Server
	app    *Server
	mailer *email.MockProvider
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = time.Hour
	cfg.Redis.TTL = time.Minute
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = t.TempDir()
	cfg.Storage.BaseURL = "/uploads"
	cfg.Upload.MaxSize = 1 << 20
	cfg.Upload.AllowedTypes = []string{"image/jpeg", "image/png"}
	cfg.Upload.ImageMaxWidth = 800
	cfg.Upload.ImageQuality = 80

	store, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	require.NoError(t, err)

	mailer := email.NewMockProvider()
	ctx, cancel := context.WithCancel(context.Background())
	server := SetupRouter(ctx, cfg, db, Dependencies{
		Cache:   cache.NewNoop(),
		Storage: store,
		Mailer:  mailer,
	})

	ts := &testServer{Server: httptest.NewServer(server.Router), app: server, mailer: mailer}
	t.Cleanup(func() {
		ts.Close()
		cancel()
		server.Services.Notifier.Wait()
	})
	return ts
}

func (ts *testServer) send(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return ts.do(t, req)
}

func (ts *testServer) do(t *testing.T, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return res.StatusCode, decoded
}

func (ts *testServer) register(t *testing.T, name, mail string) string {
	t.Helper()
	status, body := ts.send(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": mail, "password": "password123", "name": name,
	})
	require.Equal(t, http.StatusCreated, status, body)
	return body["token"].(string)
}

func (ts *testServer) createRestaurant(t *testing.T, token, name string) string {
	t.Helper()
	status, body := ts.send(t, http.MethodPost, "/api/restaurants", token, map[string]interface{}{
		"name": name, "address": "1 place Bellecour", "city": "Lyon", "cuisines": []string{"french"},
	})
	require.Equal(t, http.StatusCreated, status, body)
	return body["id"].(string)
}

func reservationBody(restaurantID string) map[string]interface{} {
	return map[string]interface{}{
		"restaurantId":    restaurantID,
		"dateReservation": time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		"time":            "20:00",
		"numberOfGuests":  4,
		"customerName":    "Guest",
		"phoneNumber":     "0600000000",
	}
}

func TestHealthAndAuthGate(t *testing.T) {
	ts := newTestServer(t)

	status, body := ts.send(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, _ = ts.send(t, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = ts.send(t, http.MethodGet, "/api/profile", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	token := ts.register(t, "Ana", "ana@example.com")
	status, body = ts.send(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ana@example.com", body["email"])

	status, body = ts.send(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "ana@example.com", "password": "password123", "name": "Ana",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email is already registered", body["message"])
}

func TestValidationErrorShape(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "Ana", "ana@example.com")

	status, body := ts.send(t, http.MethodPost, "/api/reservations", token, map[string]interface{}{
		"restaurantId":    "nope",
		"dateReservation": "tomorrow",
		"time":            "8pm",
		"numberOfGuests":  0,
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", body["message"])

	fieldErrors, ok := body["errors"].([]interface{})
	require.True(t, ok)
	fields := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		fields = append(fields, fe.(map[string]interface{})["field"].(string))
	}
	assert.Contains(t, fields, "time")
	assert.Contains(t, fields, "dateReservation")
	assert.Contains(t, fields, "numberOfGuests")
}

func TestReservationFlow(t *testing.T) {
	ts := newTestServer(t)
	ownerToken := ts.register(t, "Owner", "owner@example.com")
	guestToken := ts.register(t, "Guest", "guest@example.com")
	restaurantID := ts.createRestaurant(t, ownerToken, "Le Bouchon")

	status, body := ts.send(t, http.MethodPost, "/api/reservations", guestToken, reservationBody(restaurantID))
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "pending", body["state"])
	reservationID := body["id"].(string)

	status, _ = ts.send(t, http.MethodPatch, "/api/reservations/"+reservationID+"/confirm", guestToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = ts.send(t, http.MethodPatch, "/api/reservations/"+reservationID+"/confirm", ownerToken, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "confirmed", body["state"])

	status, _ = ts.send(t, http.MethodPatch, "/api/reservations/"+reservationID+"/confirm", ownerToken, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = ts.send(t, http.MethodPatch, "/api/reservations/00000000-0000-0000-0000-000000000000/confirm", ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = ts.send(t, http.MethodPost, "/api/reservations", ownerToken, reservationBody(restaurantID))
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "confirmed", body["state"])

	status, body = ts.send(t, http.MethodGet, "/api/restaurants/"+restaurantID+"/reservations", ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["total"])

	status, _ = ts.send(t, http.MethodGet, "/api/restaurants/"+restaurantID+"/reservations", guestToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = ts.send(t, http.MethodGet, "/api/profile/reservations", guestToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total"])
}

func TestReviewFlow(t *testing.T) {
	ts := newTestServer(t)
	ownerToken := ts.register(t, "Owner", "owner@example.com")
	restaurantID := ts.createRestaurant(t, ownerToken, "Le Bouchon")

	ratings := []int{5, 5, 4}
	var last map[string]interface{}
	for i, rating := range ratings {
		token := ts.register(t, "Critic", "critic"+string(rune('a'+i))+"@example.com")
		status, body := ts.send(t, http.MethodPost, "/api/restaurants/"+restaurantID+"/reviews", token,
			map[string]interface{}{"rating": rating, "comment": "fine"})
		require.Equal(t, http.StatusCreated, status, body)
		last = body

		if i == 0 {
			status, _ = ts.send(t, http.MethodPost, "/api/restaurants/"+restaurantID+"/reviews", token,
				map[string]interface{}{"rating": 1})
			assert.Equal(t, http.StatusConflict, status)
		}
	}

	rating := last["rating"].(map[string]interface{})
	assert.Equal(t, 4.7, rating["averageRating"])
	assert.Equal(t, float64(3), rating["numReviews"])

	status, body := ts.send(t, http.MethodGet, "/api/restaurants/"+restaurantID, "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 4.7, body["averageRating"])
}

func TestUploadServesStoredFile(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "Ana", "ana@example.com")

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var pngData bytes.Buffer
	require.NoError(t, png.Encode(&pngData, img))

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("file", "dish.png")
	require.NoError(t, err)
	_, err = part.Write(pngData.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/uploads?category=menu", &form)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	status, body := ts.do(t, req)
	require.Equal(t, http.StatusCreated, status, body)
	url := body["url"].(string)
	assert.Regexp(t, `^/uploads/menu/.+\.png$`, url)

	res, err := http.Get(ts.URL + url)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	req, err = http.NewRequest(http.MethodPost, ts.URL+"/api/uploads?category=secrets", bytes.NewReader(nil))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	status, _ = ts.do(t, req)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	ts := newTestServer(t)
	ownerToken := ts.register(t, "Owner", "owner@example.com")
	restaurantID := ts.createRestaurant(t, ownerToken, "Le Bouchon")

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/restaurants/abc"},
		{http.MethodPut, "/api/restaurants/abc"},
		{http.MethodGet, "/api/restaurants/abc/menu"},
		{http.MethodDelete, "/api/restaurants/" + restaurantID + "/menu/abc"},
		{http.MethodDelete, "/api/restaurants/" + restaurantID + "/reviews/abc"},
		{http.MethodGet, "/api/reservations/abc"},
		{http.MethodPatch, "/api/reservations/abc/confirm"},
		{http.MethodPatch, "/api/reservations/abc/cancel"},
		{http.MethodGet, "/api/posts/abc"},
		{http.MethodPatch, "/api/posts/abc/accept"},
		{http.MethodPatch, "/api/notifications/abc/read"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			status, body := ts.send(t, tc.method, tc.path, ownerToken, map[string]interface{}{"name": "x"})
			assert.Equal(t, http.StatusNotFound, status, body)
			assert.Equal(t, "NOT_FOUND", body["code"])
		})
	}
}
