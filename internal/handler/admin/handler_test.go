package admin

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

type countingStore struct {
	*message.MemoryStore
	lists   int
	listErr error
}

func (s *countingStore) List(ctx context.Context) ([]message.Message, error) {
	s.lists++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.MemoryStore.List(ctx)
}

func seededStore(t *testing.T) *countingStore {
	t.Helper()
	store := &countingStore{MemoryStore: message.NewMemoryStore()}
	base := time.Now()
	for i, name := range []string{"Carol", "Alice", "Bob"} {
		msg, err := message.New(name, "x@x.com", "", "hi", base.Add(time.Duration([]int{1, 3, 2}[i])*time.Minute))
		if err != nil {
			t.Fatalf("New err: %v", err)
		}
		if err := store.Save(context.Background(), msg); err != nil {
			t.Fatalf("Save err: %v", err)
		}
	}
	return store
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestListRequiresPassword(t *testing.T) {
	for _, body := range []string{`{"password":"wrong"}`, `{"password":""}`, `{}`, `{"password":"s3cret "}`, `nope`} {
		store := seededStore(t)
		resp := post(New(store, "s3cret"), body)

		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("body %s: expected 401, got %d", body, resp.Code)
		}
		if strings.Contains(resp.Body.String(), "Alice") {
			t.Fatalf("body %s: message data leaked", body)
		}
		if store.lists != 0 {
			t.Fatalf("body %s: store must not be read", body)
		}
	}
}

func TestListEmptyConfiguredPasswordNeverMatches(t *testing.T) {
	store := seededStore(t)
	resp := post(New(store, ""), `{"password":""}`)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestListPasswordComparedExactly(t *testing.T) {
	store := seededStore(t)
	h := New(store, " s3cret ")

	if resp := post(h, `{"password":"s3cret"}`); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for trimmed password, got %d", resp.Code)
	}
	if resp := post(h, `{"password":" s3cret "}`); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for exact password, got %d", resp.Code)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := seededStore(t)
	resp := post(New(store, "s3cret"), `{"password":"s3cret"}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var items []message.Message
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	names := []string{"Alice", "Bob", "Carol"}
	if len(items) != len(names) {
		t.Fatalf("expected %d items, got %d", len(names), len(items))
	}
	for i, name := range names {
		if items[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, items[i].Name)
		}
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].CreatedAt.Before(items[i].CreatedAt) {
			t.Fatalf("not descending at %d", i)
		}
	}
}

func TestListEmptyReturnsArray(t *testing.T) {
	store := &countingStore{MemoryStore: message.NewMemoryStore()}
	resp := post(New(store, "s3cret"), `{"password":"s3cret"}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := strings.TrimSpace(resp.Body.String()); got != "[]" {
		t.Fatalf("expected [], got %s", got)
	}
}

func TestListStoreFailure(t *testing.T) {
	store := seededStore(t)
	store.listErr = errors.New("socket closed")
	resp := post(New(store, "s3cret"), `{"password":"s3cret"}`)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "socket closed") {
		t.Fatalf("store detail leaked: %s", resp.Body.String())
	}
}
