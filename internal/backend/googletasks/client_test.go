package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/api/option"

	"todo/internal/service"
)

// fakeAPI serves the subset of the Tasks REST API the client uses.
type fakeAPI struct {
	created []string
	status  int
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.status != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": f.status, "message": "nope"},
		})
		return
	}

	write := func(v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/tasks/v1/users/@me/lists/@default":
		write(map[string]any{"id": "real-default", "title": "My Tasks"})
	case r.Method == http.MethodGet && r.URL.Path == "/tasks/v1/users/@me/lists":
		write(map[string]any{"items": []map[string]any{
			{"id": "real-default", "title": "My Tasks"},
			{"id": "w1", "title": "Work"},
			{"id": "w2", "title": " work "},
			{"id": "s1", "title": "Shopping"},
		}})
	case r.Method == http.MethodGet && r.URL.Path == "/tasks/v1/lists/@default/tasks":
		if r.URL.Query().Get("pageToken") == "" {
			write(map[string]any{
				"items":         []map[string]any{{"id": "t1", "title": "Buy milk", "status": "needsAction"}},
				"nextPageToken": "p2",
			})
			return
		}
		write(map[string]any{"items": []map[string]any{{"id": "t2", "title": "Walk dog", "status": "needsAction"}}})
	case r.Method == http.MethodPost && r.URL.Path == "/tasks/v1/lists/@default/tasks":
		var body struct {
			Title string `json:"title"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.created = append(f.created, body.Title)
		write(map[string]any{"id": "new", "title": body.Title})
	default:
		http.NotFound(w, r)
	}
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	c, err := NewWithHTTPClient(context.Background(), srv.Client(), option.WithEndpoint(srv.URL+"/"))
	if err != nil {
		t.Fatalf("NewWithHTTPClient: %v", err)
	}
	return c
}

func TestClient_DefaultList(t *testing.T) {
	c := newTestClient(t, &fakeAPI{})

	list, err := c.DefaultList(context.Background())
	if err != nil {
		t.Fatalf("DefaultList: %v", err)
	}
	want := service.TaskList{ID: DefaultListID, Title: "My Tasks", IsDefault: true}
	if list != want {
		t.Errorf("got %+v, want %+v", list, want)
	}
}

func TestClient_ListLists(t *testing.T) {
	c := newTestClient(t, &fakeAPI{})

	lists, err := c.ListLists(context.Background())
	if err != nil {
		t.Fatalf("ListLists: %v", err)
	}
	if len(lists) != 4 {
		t.Fatalf("expected 4 lists, got %d", len(lists))
	}
	if !lists[0].IsDefault || lists[0].ID != DefaultListID {
		t.Errorf("default list not normalized: %+v", lists[0])
	}
	if lists[1].IsDefault {
		t.Errorf("non-default list flagged default: %+v", lists[1])
	}
}

func TestClient_ResolveList(t *testing.T) {
	c := newTestClient(t, &fakeAPI{})
	ctx := context.Background()

	list, err := c.ResolveList(ctx, "  SHOPPING ")
	if err != nil {
		t.Fatalf("ResolveList: %v", err)
	}
	if list.ID != "s1" {
		t.Errorf("expected s1, got %s", list.ID)
	}

	if _, err := c.ResolveList(ctx, "work"); !errors.Is(err, service.ErrAmbiguousList) {
		t.Errorf("expected ErrAmbiguousList, got %v", err)
	}
	if _, err := c.ResolveList(ctx, "home"); !errors.Is(err, service.ErrListNotFound) {
		t.Errorf("expected ErrListNotFound, got %v", err)
	}
}

func TestClient_ListOpenTasks_FollowsPages(t *testing.T) {
	c := newTestClient(t, &fakeAPI{})

	got, err := c.ListOpenTasks(context.Background(), DefaultListID)
	if err != nil {
		t.Fatalf("ListOpenTasks: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Buy milk" || got[1].Title != "Walk dog" {
		t.Errorf("unexpected tasks: %+v", got)
	}
}

func TestClient_CreateTask(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api)

	if err := c.CreateTask(context.Background(), DefaultListID, "Buy milk"); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if len(api.created) != 1 || api.created[0] != "Buy milk" {
		t.Errorf("unexpected created titles: %v", api.created)
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, service.ErrAuth},
		{http.StatusForbidden, service.ErrAuth},
		{http.StatusNotFound, service.ErrListNotFound},
	}

	for _, tt := range tests {
		c := newTestClient(t, &fakeAPI{status: tt.status})
		_, err := c.DefaultList(context.Background())
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: expected %v, got %v", tt.status, tt.want, err)
		}
	}
}

func TestWrapError_Deadline(t *testing.T) {
	err := wrapError(context.DeadlineExceeded)
	if !errors.Is(err, service.ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
	if wrapError(nil) != nil {
		t.Error("wrapError(nil) should be nil")
	}
}
