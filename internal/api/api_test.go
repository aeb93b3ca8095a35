package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/refurbtrack/refurbtrack/internal/auth"
	"github.com/refurbtrack/refurbtrack/internal/db"
	"github.com/refurbtrack/refurbtrack/internal/model"
	"github.com/refurbtrack/refurbtrack/internal/store"
)

const testJWTSecret = "test-secret"

func setupTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	database := db.NewTestDB(t)
	router := NewRouter(database, RouterConfig{
		JWTSecret:      testJWTSecret,
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 1 << 20,
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	// Create admin user.
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	store.CreateUser(ctx, database, "admin", string(hash), model.RoleAdmin)

	// Get token.
	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "password"})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp map[string]string
	json.NewDecoder(resp.Body).Decode(&loginResp)
	token := loginResp["token"]
	if token == "" {
		t.Fatal("empty token from login")
	}

	return server, token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func TestLoginEndpoint(t *testing.T) {
	server, _ := setupTestServer(t)

	// Test invalid credentials.
	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "wrong"})
	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestItemsAPIFlow(t *testing.T) {
	server, token := setupTestServer(t)

	// Create item.
	req, _ := authRequest("POST", server.URL+"/api/items", token, map[string]any{
		"sku":   "RT-001",
		"brand": "Dell",
		"model": "XPS 13",
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created model.ItemWithPhotos
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()
	if created.Status != model.StatusIntake {
		t.Errorf("expected new item in intake, got %q", created.Status)
	}

	// Duplicate SKU conflicts.
	req, _ = authRequest("POST", server.URL+"/api/items", token, map[string]any{"sku": "RT-001"})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate sku, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Missing SKU rejected.
	req, _ = authRequest("POST", server.URL+"/api/items", token, map[string]any{"brand": "HP"})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing sku, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Partial update.
	req, _ = authRequest("PUT", server.URL+"/api/items/1", token, map[string]any{
		"cpu":       "i7",
		"listPrice": "599.00",
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for update, got %d", resp.StatusCode)
	}
	var updated model.ItemWithPhotos
	json.NewDecoder(resp.Body).Decode(&updated)
	resp.Body.Close()
	if updated.CPU != "i7" || updated.Brand != "Dell" {
		t.Errorf("partial update wrong: %+v", updated.Item)
	}

	// Unknown field rejected.
	req, _ = authRequest("PUT", server.URL+"/api/items/1", token, map[string]any{"bogus": 1})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown field, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// List items.
	req, _ = authRequest("GET", server.URL+"/api/items", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var items []model.ItemWithPhotos
	json.NewDecoder(resp.Body).Decode(&items)
	resp.Body.Close()
	if len(items) != 1 {
		t.Errorf("expected 1 item, got %d", len(items))
	}

	// Delete.
	req, _ = authRequest("DELETE", server.URL+"/api/items/1", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = authRequest("GET", server.URL+"/api/items/1", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAdvanceEndpoint(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/items", token, map[string]any{"sku": "RT-001"})
	resp, _ := http.DefaultClient.Do(req)
	resp.Body.Close()

	// intake → processing.
	req, _ = authRequest("POST", server.URL+"/api/items/1/advance", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var item model.ItemWithPhotos
	json.NewDecoder(resp.Body).Decode(&item)
	resp.Body.Close()
	if item.Status != model.StatusProcessing {
		t.Errorf("expected processing, got %q", item.Status)
	}

	// Walk to the terminal status.
	for item.Status != model.StatusSold {
		req, _ = authRequest("POST", server.URL+"/api/items/1/advance", token, nil)
		resp, _ = http.DefaultClient.Do(req)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("advance from %q: expected 200, got %d", item.Status, resp.StatusCode)
		}
		json.NewDecoder(resp.Body).Decode(&item)
		resp.Body.Close()
	}

	// Sold is terminal.
	req, _ = authRequest("POST", server.URL+"/api/items/1/advance", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 advancing sold item, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestProfileExportFlow(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/items", token, map[string]any{
		"sku": "RT-001", "brand": "Dell",
	})
	resp, _ := http.DefaultClient.Do(req)
	resp.Body.Close()

	// Invalid profile rejected at creation.
	req, _ = authRequest("POST", server.URL+"/api/export-profiles", token, map[string]any{
		"name":     "bad",
		"mappings": []map[string]string{{"csvHeader": "X", "type": "field", "value": "notAField"}},
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid mappings, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Valid profile.
	req, _ = authRequest("POST", server.URL+"/api/export-profiles", token, map[string]any{
		"name": "basic",
		"mappings": []map[string]string{
			{"csvHeader": "SKU", "type": "field", "value": "sku"},
			{"csvHeader": "Site", "type": "static", "value": "ebay"},
		},
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var profile model.ExportProfile
	json.NewDecoder(resp.Body).Decode(&profile)
	resp.Body.Close()

	// Generate against the profile.
	req, _ = authRequest("POST", server.URL+"/api/csv/generate", token, map[string]any{
		"profileId": profile.ID,
		"itemIds":   []int64{1},
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("expected text/csv, got %q", ct)
	}
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	resp.Body.Close()
	if !strings.HasPrefix(buf.String(), "SKU,Site\n") {
		t.Errorf("unexpected CSV output: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "RT-001,ebay") {
		t.Errorf("expected item row, got %q", buf.String())
	}

	// Missing profile.
	req, _ = authRequest("POST", server.URL+"/api/csv/generate", token, map[string]any{
		"profileId": 999,
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for missing profile, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestDraftExportFlow(t *testing.T) {
	server, token := setupTestServer(t)

	// One eligible, one not.
	req, _ := authRequest("POST", server.URL+"/api/items", token, map[string]any{
		"sku": "RT-001", "brand": "Dell", "model": "XPS 13",
		"ebayCategoryId": "177", "ebayConditionId": "3000",
	})
	resp, _ := http.DefaultClient.Do(req)
	resp.Body.Close()
	req, _ = authRequest("POST", server.URL+"/api/items", token, map[string]any{"sku": "RT-002"})
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()

	req, _ = authRequest("POST", server.URL+"/api/ebay/draft-csv", token, map[string]any{
		"itemIds": []int64{1, 2},
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Exported-Count"); got != "1" {
		t.Errorf("expected X-Exported-Count 1, got %q", got)
	}
	if got := resp.Header.Get("X-Skipped-Count"); got != "1" {
		t.Errorf("expected X-Skipped-Count 1, got %q", got)
	}
	if got := resp.Header.Get("X-Skipped-Skus"); got != "RT-002" {
		t.Errorf("expected X-Skipped-Skus RT-002, got %q", got)
	}
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	resp.Body.Close()
	if !strings.HasPrefix(buf.String(), "#INFO") {
		t.Errorf("expected #INFO preamble, got %q", buf.String())
	}

	// Only ineligible items → 409 with skip headers.
	req, _ = authRequest("POST", server.URL+"/api/ebay/draft-csv", token, map[string]any{
		"itemIds": []int64{2},
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for no eligible items, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Skipped-Skus"); got != "RT-002" {
		t.Errorf("expected skip header on 409, got %q", got)
	}
	resp.Body.Close()
}

func TestPhotoEndpoints(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/items", token, map[string]any{"sku": "RT-001"})
	resp, _ := http.DefaultClient.Do(req)
	resp.Body.Close()

	// Add two photos.
	for _, url := range []string{"/uploads/a.jpg", "/uploads/b.jpg"} {
		req, _ = authRequest("POST", server.URL+"/api/items/1/photos", token, map[string]any{
			"type": model.PhotoTypeIntake,
			"url":  url,
		})
		resp, _ = http.DefaultClient.Do(req)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201 adding photo, got %d", resp.StatusCode)
		}
		resp.Body.Close()
	}

	// Reorder.
	req, _ = authRequest("PATCH", server.URL+"/api/items/1/photos/reorder", token, map[string]any{
		"photoIds": []int64{2, 1},
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 reordering, got %d", resp.StatusCode)
	}
	var photos []model.Photo
	json.NewDecoder(resp.Body).Decode(&photos)
	resp.Body.Close()
	if len(photos) != 2 || photos[0].URL != "/uploads/b.jpg" {
		t.Errorf("unexpected order after reorder: %+v", photos)
	}

	// Delete one.
	req, _ = authRequest("DELETE", server.URL+"/api/photos/1", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204 deleting photo, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCategoriesEndpoint(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("GET", server.URL+"/api/ebay/categories", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var categories []map[string]any
	json.NewDecoder(resp.Body).Decode(&categories)
	resp.Body.Close()
	if len(categories) == 0 {
		t.Error("expected non-empty category list")
	}

	req, _ = authRequest("GET", server.URL+"/api/ebay/conditions", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUnauthenticatedAccess(t *testing.T) {
	database := db.NewTestDB(t)
	router := NewRouter(database, RouterConfig{JWTSecret: testJWTSecret})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	resp, _ := http.Get(server.URL + "/api/items")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for unauthenticated request, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRoleBasedAccess(t *testing.T) {
	database := db.NewTestDB(t)
	router := NewRouter(database, RouterConfig{JWTSecret: testJWTSecret})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	// Create a regular user.
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("pass"), bcrypt.DefaultCost)
	store.CreateUser(ctx, database, "user1", string(hash), model.RoleUser)

	userToken, _ := auth.GenerateToken(testJWTSecret, 1, "user1", model.RoleUser)

	// Regular user should not be able to create items (manager+ required).
	req, _ := authRequest("POST", server.URL+"/api/items", userToken, map[string]string{
		"sku": "RT-001",
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for user creating item, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Regular user should not access the audit trail (admin only).
	req, _ = authRequest("GET", server.URL+"/api/audit", userToken, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for user accessing audit, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// But they can read items.
	req, _ = authRequest("GET", server.URL+"/api/items", userToken, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for user listing items, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAuditTrailRecordsItemActions(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/items", token, map[string]any{"sku": "RT-001"})
	resp, _ := http.DefaultClient.Do(req)
	resp.Body.Close()

	req, _ = authRequest("GET", server.URL+"/api/audit", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var entries []store.AuditEntry
	json.NewDecoder(resp.Body).Decode(&entries)
	resp.Body.Close()

	if len(entries) == 0 {
		t.Fatal("expected audit entries after item creation")
	}
	if entries[0].Action != "item.create" {
		t.Errorf("expected item.create entry, got %q", entries[0].Action)
	}
	if entries[0].ActorID == nil {
		t.Error("expected audit entry to record the acting user")
	}
}
