//go:build api

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "http://localhost:8080"

// Requires a running stack (make docker-up) with ADMIN_EMAIL=admin@local and
// ADMIN_PASSWORD=admin-secret seeded.
func TestAPI_FullFlow(t *testing.T) {
	waitForService(t)

	var ownerToken, clientToken, adminToken string
	var roomID, bookingID float64

	start := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	end := start.Add(2 * time.Hour)

	t.Run("Step1_RegisterAccounts", func(t *testing.T) {
		resp := post(t, "", baseURL+"/api/v1/auth/register", map[string]any{
			"first_name": "Olivia",
			"last_name":  "Martin",
			"email":      "owner@flow.test",
			"password":   "owner-secret",
			"role":       "owner",
		})
		assert.Equal(t, 201, resp.StatusCode)
		drain(resp)

		resp = post(t, "", baseURL+"/api/v1/auth/register", map[string]any{
			"first_name": "Camille",
			"last_name":  "Perrin",
			"email":      "client@flow.test",
			"password":   "client-secret",
		})
		assert.Equal(t, 201, resp.StatusCode)
		drain(resp)

		// admins cannot self-register
		resp = post(t, "", baseURL+"/api/v1/auth/register", map[string]any{
			"first_name": "Eve",
			"last_name":  "Intruder",
			"email":      "eve@flow.test",
			"password":   "eve-secret",
			"role":       "admin",
		})
		assert.Equal(t, 400, resp.StatusCode)
		drain(resp)
	})

	t.Run("Step2_Login", func(t *testing.T) {
		ownerToken = login(t, "owner@flow.test", "owner-secret")
		clientToken = login(t, "client@flow.test", "client-secret")
		adminToken = login(t, "admin@local", "admin-secret")
	})

	t.Run("Step3_CreateRoom", func(t *testing.T) {
		resp := post(t, ownerToken, baseURL+"/api/v1/rooms", map[string]any{
			"title":       "Salle Lumière",
			"description": "Bright meeting room near the station",
			"capacity":    10,
			"rate_amount": 20,
			"rate_unit":   "hour",
			"city":        "Lyon",
		})
		require.Equal(t, 201, resp.StatusCode)

		var room map[string]any
		decodeJSON(t, resp, &room)
		roomID = room["id"].(float64)
		assert.Equal(t, "pending", room["status"], "new room waits for moderation")
	})

	t.Run("Step4_BookingBlockedUntilApproval", func(t *testing.T) {
		resp := post(t, clientToken, baseURL+"/api/v1/bookings", map[string]any{
			"room_id":    roomID,
			"start_at":   start.Format(time.RFC3339),
			"end_at":     end.Format(time.RFC3339),
			"party_size": 4,
		})
		assert.Equal(t, 400, resp.StatusCode, "pending room is not bookable")
		drain(resp)
	})

	t.Run("Step5_AdminApprovesRoom", func(t *testing.T) {
		resp := put(t, adminToken, fmt.Sprintf("%s/api/v1/rooms/%.0f/approve", baseURL, roomID), nil)
		require.Equal(t, 200, resp.StatusCode)

		var room map[string]any
		decodeJSON(t, resp, &room)
		assert.Equal(t, "approved", room["status"])
	})

	t.Run("Step6_AvailabilityBeforeBooking", func(t *testing.T) {
		resp := get(t, "", availabilityURL(roomID, start, end))
		require.Equal(t, 200, resp.StatusCode)

		var avail map[string]any
		decodeJSON(t, resp, &avail)
		assert.Equal(t, true, avail["available"])
	})

	t.Run("Step7_CreateBooking", func(t *testing.T) {
		resp := post(t, clientToken, baseURL+"/api/v1/bookings", map[string]any{
			"room_id":    roomID,
			"start_at":   start.Format(time.RFC3339),
			"end_at":     end.Format(time.RFC3339),
			"party_size": 4,
		})
		require.Equal(t, 201, resp.StatusCode)

		var booking map[string]any
		decodeJSON(t, resp, &booking)
		bookingID = booking["id"].(float64)
		assert.Equal(t, "pending", booking["status"])
		assert.Equal(t, float64(40), booking["total_price"], "2 hours at 20/hour")
	})

	t.Run("Step8_OverlapRejected", func(t *testing.T) {
		resp := post(t, clientToken, baseURL+"/api/v1/bookings", map[string]any{
			"room_id":    roomID,
			"start_at":   start.Add(time.Hour).Format(time.RFC3339),
			"end_at":     end.Add(time.Hour).Format(time.RFC3339),
			"party_size": 2,
		})
		assert.Equal(t, 409, resp.StatusCode)
		drain(resp)

		resp = get(t, "", availabilityURL(roomID, start, end))
		var avail map[string]any
		decodeJSON(t, resp, &avail)
		assert.Equal(t, false, avail["available"])
	})

	t.Run("Step9_OwnerConfirms", func(t *testing.T) {
		resp := put(t, ownerToken, fmt.Sprintf("%s/api/v1/bookings/%.0f/status", baseURL, bookingID),
			map[string]any{"status": "confirmed"})
		require.Equal(t, 200, resp.StatusCode)

		var booking map[string]any
		decodeJSON(t, resp, &booking)
		assert.Equal(t, "confirmed", booking["status"])
	})

	t.Run("Step10_ClientCancels", func(t *testing.T) {
		resp := put(t, clientToken, fmt.Sprintf("%s/api/v1/bookings/%.0f/cancel", baseURL, bookingID), nil)
		require.Equal(t, 200, resp.StatusCode)

		var booking map[string]any
		decodeJSON(t, resp, &booking)
		assert.Equal(t, "cancelled", booking["status"])

		// slot is free again
		resp = get(t, "", availabilityURL(roomID, start, end))
		var avail map[string]any
		decodeJSON(t, resp, &avail)
		assert.Equal(t, true, avail["available"])
	})

	t.Run("Step11_BackToBackAccepted", func(t *testing.T) {
		resp := post(t, clientToken, baseURL+"/api/v1/bookings", map[string]any{
			"room_id":    roomID,
			"start_at":   start.Format(time.RFC3339),
			"end_at":     end.Format(time.RFC3339),
			"party_size": 2,
		})
		require.Equal(t, 201, resp.StatusCode)
		drain(resp)

		resp = post(t, clientToken, baseURL+"/api/v1/bookings", map[string]any{
			"room_id":    roomID,
			"start_at":   end.Format(time.RFC3339),
			"end_at":     end.Add(time.Hour).Format(time.RFC3339),
			"party_size": 2,
		})
		assert.Equal(t, 201, resp.StatusCode, "adjacent ranges do not conflict")
		drain(resp)
	})
}

// Helper functions

func availabilityURL(roomID float64, start, end time.Time) string {
	return fmt.Sprintf("%s/api/v1/rooms/%.0f/availability?start=%s&end=%s",
		baseURL, roomID, start.Format(time.RFC3339), end.Format(time.RFC3339))
}

func login(t *testing.T, email, password string) string {
	resp := post(t, "", baseURL+"/api/v1/auth/login", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Equal(t, 200, resp.StatusCode, "login failed for %s", email)

	var auth map[string]any
	decodeJSON(t, resp, &auth)
	token, _ := auth["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func waitForService(t *testing.T) {
	maxRetries := 30
	for i := 0; i < maxRetries; i++ {
		resp, err := http.Get(baseURL + "/health")
		if err == nil && resp.StatusCode == 200 {
			resp.Body.Close()
			return
		}
		time.Sleep(1 * time.Second)
	}
	t.Fatal("service did not become ready in time")
}

func get(t *testing.T, token, url string) *http.Response {
	return do(t, http.MethodGet, token, url, nil)
}

func post(t *testing.T, token, url string, body any) *http.Response {
	return do(t, http.MethodPost, token, url, body)
}

func put(t *testing.T, token, url string, body any) *http.Response {
	return do(t, http.MethodPut, token, url, body)
}

func do(t *testing.T, method, token, url string, body any) *http.Response {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, target any) {
	defer resp.Body.Close()
	err := json.NewDecoder(resp.Body).Decode(target)
	if err != nil && resp.StatusCode >= 400 {
		// error bodies may not be JSON
		return
	}
	require.NoError(t, err)
}

func drain(resp *http.Response) {
	resp.Body.Close()
}

func TestMain(m *testing.M) {
	fmt.Println("API tests need a running stack: make docker-up")
	os.Exit(m.Run())
}
