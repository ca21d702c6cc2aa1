package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func addProject(t *testing.T, h *ProjectHandler, name string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"name": name})
	req := httptest.NewRequest("POST", "/projects", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.AddProject(rr, req)
	return rr
}

func TestAddProject(t *testing.T) {
	st := newTestStore(t, nil, []string{"A", "B"}, nil)
	h := &ProjectHandler{Store: st}

	// Duplicate is a silent no-op.
	rr := addProject(t, h, "A")
	if rr.Code != http.StatusOK {
		t.Fatalf("add duplicate: got %d, want 200", rr.Code)
	}
	projects, err := st.LoadProjects()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(projects, []string{"A", "B"}) {
		t.Errorf("after duplicate add: got %v, want [A B]", projects)
	}

	// Empty name is a silent no-op too.
	addProject(t, h, "")
	projects, _ = st.LoadProjects()
	if !reflect.DeepEqual(projects, []string{"A", "B"}) {
		t.Errorf("after empty add: got %v, want [A B]", projects)
	}

	// New name appends at the end.
	addProject(t, h, "C")
	projects, _ = st.LoadProjects()
	if !reflect.DeepEqual(projects, []string{"A", "B", "C"}) {
		t.Errorf("after add C: got %v, want [A B C]", projects)
	}
}

func TestClearProjects(t *testing.T) {
	st := newTestStore(t, nil, []string{"A", "B", "C"}, nil)
	h := &ProjectHandler{Store: st}

	req := httptest.NewRequest("DELETE", "/projects", nil)
	rr := httptest.NewRecorder()
	h.ClearProjects(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("clear: got %d, want 200", rr.Code)
	}
	projects, err := st.LoadProjects()
	if err != nil {
		t.Fatal(err)
	}
	if len(projects) != 0 {
		t.Errorf("after clear: got %v, want empty", projects)
	}
}

func TestListProjects(t *testing.T) {
	st := newTestStore(t, nil, []string{"Apollo"}, nil)
	h := &ProjectHandler{Store: st}

	req := httptest.NewRequest("GET", "/projects", nil)
	rr := httptest.NewRecorder()
	h.ListProjects(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("list: got %d, want 200", rr.Code)
	}
	var projects []string
	if err := json.NewDecoder(rr.Body).Decode(&projects); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(projects, []string{"Apollo"}) {
		t.Errorf("got %v, want [Apollo]", projects)
	}
}
