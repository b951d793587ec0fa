package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/folio/backend/internal/model/message"
)

type failingStore struct {
	*message.MemoryStore
}

func (failingStore) Save(context.Context, message.Message) error {
	return errors.New("connection refused")
}

func setupRouter(store message.Store) *chi.Mux {
	r := chi.NewRouter()
	New(store).RegisterRoutes(r)
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestSubmitSavesMessage(t *testing.T) {
	store := message.NewMemoryStore()
	before := time.Now().UTC()

	resp := post(setupRouter(store), `{"name":"Alice","email":"a@x.com","phone":"123","message":"hi"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Message != "Message saved!" {
		t.Fatalf("unexpected body %+v", body)
	}

	if store.Len() != 1 {
		t.Fatalf("expected exactly one record, got %d", store.Len())
	}
	items, _ := store.List(context.Background())
	got := items[0]
	if got.Name != "Alice" || got.Email != "a@x.com" || got.Phone != "123" || got.Message != "hi" {
		t.Fatalf("unexpected record %+v", got)
	}
	if got.CreatedAt.Before(before) {
		t.Fatalf("createdAt %v before submission %v", got.CreatedAt, before)
	}
}

func TestSubmitPhoneOptional(t *testing.T) {
	store := message.NewMemoryStore()

	resp := post(setupRouter(store), `{"name":"Bob","email":"b@x.com","message":"hello"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if store.Len() != 1 {
		t.Fatalf("expected one record, got %d", store.Len())
	}
}

func TestSubmitNumericPhoneStoredAsText(t *testing.T) {
	store := message.NewMemoryStore()

	resp := post(setupRouter(store), `{"name":"A","email":"e","message":"m","phone":5551234}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	items, _ := store.List(context.Background())
	if len(items) != 1 || items[0].Phone != "5551234" {
		t.Fatalf("expected phone kept as text, got %+v", items)
	}
}

func TestSubmitKeepsValuesAsSubmitted(t *testing.T) {
	store := message.NewMemoryStore()

	resp := post(setupRouter(store), `{"name":" Alice ","email":"a@x.com","message":"hi\n","phone":null}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	items, _ := store.List(context.Background())
	if items[0].Name != " Alice " || items[0].Message != "hi\n" || items[0].Phone != "" {
		t.Fatalf("unexpected record %+v", items[0])
	}
}

func TestSubmitMissingFields(t *testing.T) {
	bodies := []string{
		`{"email":"a@x.com","message":"hi"}`,
		`{"name":"Alice","message":"hi"}`,
		`{"name":"Alice","email":"a@x.com"}`,
		`{"name":"Alice","email":"a@x.com","message":"  "}`,
		`{}`,
		`garbage`,
		`{"name":"A","email":"e","message":"m","phone":{"n":1}}`,
	}

	for _, body := range bodies {
		store := message.NewMemoryStore()
		resp := post(setupRouter(store), body)

		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, resp.Code)
		}
		if !strings.Contains(resp.Body.String(), "Please fill all required fields") {
			t.Fatalf("body %s: unexpected response %s", body, resp.Body.String())
		}
		if store.Len() != 0 {
			t.Fatalf("body %s: nothing should be persisted", body)
		}
	}
}

func TestSubmitStoreFailure(t *testing.T) {
	store := failingStore{MemoryStore: message.NewMemoryStore()}

	resp := post(setupRouter(store), `{"name":"Alice","email":"a@x.com","message":"hi"}`)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, "Failed to save message") || strings.Contains(body, "connection refused") {
		t.Fatalf("unexpected body %s", body)
	}
}
