package logic

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/hy4ri/tasklist/internal/api"
)

// fakeServer is an in-memory task service speaking the REST API.
type fakeServer struct {
	mu       sync.Mutex
	tasks    []api.Task
	nextID   int
	requests []string // "METHOD /path"

	failList    bool
	failCreate  bool
	failUpdate  bool
	failDelete  map[api.TaskID]bool
	ignoreTitle bool // respond to updates with the stored title
	bareWrites  bool // apply creates and updates but reply without a body
}

func newFakeServer(t *testing.T, tasks ...api.Task) (*fakeServer, *api.Client) {
	t.Helper()
	f := &fakeServer{tasks: tasks, nextID: len(tasks) + 1, failDelete: map[api.TaskID]bool{}}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, api.NewClient(srv.URL + "/api")
}

// with runs fn under the server lock, for changing failure switches.
func (f *fakeServer) with(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn()
}

func (f *fakeServer) snapshot() []api.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.Task(nil), f.tasks...)
}

func (f *fakeServer) requestLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	w.Header().Set("Content-Type", "application/json")

	id := api.TaskID(strings.TrimPrefix(r.URL.Path, "/api/tasks/"))
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/tasks":
		if f.failList {
			f.error(w, http.StatusInternalServerError, "database unavailable")
			return
		}
		json.NewEncoder(w).Encode(f.tasks)

	case r.Method == http.MethodPost && r.URL.Path == "/api/tasks":
		if f.failCreate {
			f.error(w, http.StatusInternalServerError, "insert failed")
			return
		}
		var req api.CreateTaskRequest
		json.NewDecoder(r.Body).Decode(&req)
		task := api.Task{ID: api.TaskID(strconv.Itoa(f.nextID)), Title: req.Title, Completed: req.Completed}
		f.nextID++
		f.tasks = append(f.tasks, task)
		w.WriteHeader(http.StatusCreated)
		if f.bareWrites {
			return
		}
		json.NewEncoder(w).Encode(task)

	case r.Method == http.MethodPut:
		if f.failUpdate {
			f.error(w, http.StatusInternalServerError, "update failed")
			return
		}
		i := f.index(id)
		if i < 0 {
			f.error(w, http.StatusNotFound, "task not found")
			return
		}
		var req api.UpdateTaskRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Title != nil && !f.ignoreTitle {
			f.tasks[i].Title = *req.Title
		}
		if req.Completed != nil {
			f.tasks[i].Completed = *req.Completed
		}
		if f.bareWrites {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		json.NewEncoder(w).Encode(f.tasks[i])

	case r.Method == http.MethodDelete:
		if f.failDelete[id] {
			f.error(w, http.StatusInternalServerError, "delete failed")
			return
		}
		i := f.index(id)
		if i < 0 {
			f.error(w, http.StatusNotFound, "task not found")
			return
		}
		f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
		json.NewEncoder(w).Encode(api.DeleteResponse{Message: "Task deleted successfully", ID: id})

	default:
		f.error(w, http.StatusNotFound, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
	}
}

func (f *fakeServer) index(id api.TaskID) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeServer) error(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
