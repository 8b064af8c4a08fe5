package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lunchroom/lunchbox/internal/models"
)

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestOrderHandler_Create(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name           string
		body           any
		expectedStatus int
	}{
		{
			name: "successful order",
			body: models.NewOrderLine{
				Person: "Alice", Category: models.CategoryFood,
				ItemName: "Chicken Rice", UnitPrice: 80, Quantity: 1, Customization: "Spicy",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "zero price rejected",
			body: models.NewOrderLine{
				Person: "Bob", Category: models.CategoryDrink,
				ItemName: "Milk Tea", UnitPrice: 0, Quantity: 1, Customization: "L/Normal ice/Half sugar",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown person rejected",
			body: models.NewOrderLine{
				Person: "Mallory", Category: models.CategoryFood,
				ItemName: "Rice", UnitPrice: 80, Quantity: 1,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid body",
			body:           "not an order",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, router, "/api/order", tt.body)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}

			if tt.expectedStatus == http.StatusCreated {
				var resp map[string]int64
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if resp["id"] < 1 {
					t.Errorf("expected a positive id, got %d", resp["id"])
				}
			}
		})
	}

	// Only the successful request landed in the store.
	rec := get(t, router, "/api/order")
	var lines []models.OrderLine
	if err := json.Unmarshal(rec.Body.Bytes(), &lines); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(lines) != 1 {
		t.Errorf("expected 1 stored line, got %d", len(lines))
	}
}

func TestOrderHandler_Delete(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/api/order", models.NewOrderLine{
		Person: "Alice", Category: models.CategoryFood,
		ItemName: "Rice", UnitPrice: 80, Quantity: 1,
	})
	var created map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	del := func() int {
		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/order/%d", created["id"]), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := del(); code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", code)
	}
	// The losing session of a delete race gets the same answer.
	if code := del(); code != http.StatusNoContent {
		t.Fatalf("expected 204 on double delete, got %d", code)
	}

	rec = get(t, router, "/api/order")
	var lines []models.OrderLine
	if err := json.Unmarshal(rec.Body.Bytes(), &lines); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected empty store, got %d lines", len(lines))
	}
}

func TestOrderHandler_ListByPerson(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, body := range []models.NewOrderLine{
		{Person: "Alice", Category: models.CategoryFood, ItemName: "Rice", UnitPrice: 80, Quantity: 1},
		{Person: "Bob", Category: models.CategoryFood, ItemName: "Noodles", UnitPrice: 70, Quantity: 1},
	} {
		if rec := postJSON(t, router, "/api/order", body); rec.Code != http.StatusCreated {
			t.Fatalf("create failed: %d", rec.Code)
		}
	}

	rec := get(t, router, "/api/order?person=Alice")
	var lines []models.OrderLine
	if err := json.Unmarshal(rec.Body.Bytes(), &lines); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(lines) != 1 || lines[0].Person != "Alice" {
		t.Errorf("expected only Alice's line, got %+v", lines)
	}
}

func TestOrderHandler_Reset(t *testing.T) {
	router, _ := newTestRouter(t)

	if rec := postJSON(t, router, "/api/order", models.NewOrderLine{
		Person: "Alice", Category: models.CategoryFood, ItemName: "Rice", UnitPrice: 80, Quantity: 1,
	}); rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/reset", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = get(t, router, "/api/order")
	var lines []models.OrderLine
	if err := json.Unmarshal(rec.Body.Bytes(), &lines); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected empty store after reset, got %d lines", len(lines))
	}

	// Progress on the emptied store reads as zero, not as an error.
	rec = get(t, router, "/api/payment/progress")
	var progress models.Progress
	if err := json.Unmarshal(rec.Body.Bytes(), &progress); err != nil {
		t.Fatalf("decode progress: %v", err)
	}
	if progress.Ratio != 0 || progress.Collected {
		t.Errorf("expected zero progress, got %+v", progress)
	}
}
