package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/yigit/studentsvc/internal/app/controllers"
	"github.com/yigit/studentsvc/internal/app/models"
	"github.com/yigit/studentsvc/internal/app/models/dto"
	"github.com/yigit/studentsvc/internal/app/routes"
	"github.com/yigit/studentsvc/internal/app/services"
	"github.com/yigit/studentsvc/internal/app/services/studenttest"
	"github.com/yigit/studentsvc/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.RegisterJSONFieldNames()
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(ctx context.Context) error {
	return p.err
}

type testEnv struct {
	router *gin.Engine
	store  *studenttest.Store
}

func newTestEnv(t *testing.T, pingErr error) *testEnv {
	t.Helper()

	store := studenttest.NewStore()
	service := services.NewStudentService(store, zerolog.Nop())

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.RequestLogger(zerolog.Nop()))
	routes.SetupRouter(router,
		controllers.NewStudentController(service),
		controllers.NewSystemController(fakePinger{err: pingErr}),
	)
	return &testEnv{router: router, store: store}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("Invalid JSON body %q: %v", w.Body.String(), err)
	}
}

func alice() *models.Student {
	return &models.Student{
		Name:           "Alice",
		Age:            20,
		Semester1Grade: 85.5,
		Semester2Grade: 90,
		TeacherName:    "Mr. Smith",
		RoomNumber:     "101",
	}
}

func (e *testEnv) create(t *testing.T, s *models.Student) int64 {
	t.Helper()

	w := e.do(t, http.MethodPost, "/student", dto.NewStudentRequest(s))
	if w.Code != http.StatusOK {
		t.Fatalf("Create failed: %d %s", w.Code, w.Body.String())
	}
	var created dto.StudentCreatedResponse
	decode(t, w, &created)
	if created.Message != dto.MessageStudentAdded {
		t.Fatalf("Unexpected create message: %q", created.Message)
	}
	return created.ID
}

func TestCreateThenGet(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.create(t, alice())

	w := env.do(t, http.MethodGet, fmt.Sprintf("/student/%d", id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Invalid status: %d", w.Code)
	}

	var got models.Student
	decode(t, w, &got)
	want := alice()
	want.ID = id
	if diff := cmp.Diff(*want, got); diff != "" {
		t.Fatalf("Unexpected student (-want +got):\n%s", diff)
	}
}

func TestCreateAcceptsZeroValues(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.create(t, &models.Student{})

	w := env.do(t, http.MethodGet, fmt.Sprintf("/student/%d", id), nil)
	var got models.Student
	decode(t, w, &got)
	if diff := cmp.Diff(models.Student{ID: id}, got); diff != "" {
		t.Fatalf("Unexpected student (-want +got):\n%s", diff)
	}
}

func TestGetMissingStudent(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/student/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Invalid status: %d", w.Code)
	}
	if body := w.Body.String(); body != `{"message":"Student not found"}` {
		t.Fatalf("Unexpected body: %s", body)
	}
}

func TestUpdateThenGet(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.create(t, alice())

	updated := alice()
	updated.Age = 21
	updated.RoomNumber = "202"
	// a mismatched id in the body must not win over the path
	body := map[string]interface{}{
		"id":              id + 100,
		"name":            updated.Name,
		"age":             updated.Age,
		"semester1_grade": updated.Semester1Grade,
		"semester2_grade": updated.Semester2Grade,
		"teacher_name":    updated.TeacherName,
		"room_number":     updated.RoomNumber,
	}

	w := env.do(t, http.MethodPut, fmt.Sprintf("/student/%d", id), body)
	if w.Code != http.StatusOK {
		t.Fatalf("Update failed: %d %s", w.Code, w.Body.String())
	}
	var msg dto.MessageResponse
	decode(t, w, &msg)
	if msg.Message != dto.MessageStudentUpdated {
		t.Fatalf("Unexpected message: %q", msg.Message)
	}

	w = env.do(t, http.MethodGet, fmt.Sprintf("/student/%d", id), nil)
	var got models.Student
	decode(t, w, &got)
	updated.ID = id
	if diff := cmp.Diff(*updated, got); diff != "" {
		t.Fatalf("Unexpected student (-want +got):\n%s", diff)
	}
	if env.store.Len() != 1 {
		t.Fatalf("Update must not create records, store has %d", env.store.Len())
	}
}

func TestUpdateAndDeleteMissingStillSucceed(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPut, "/student/42", dto.NewStudentRequest(alice()))
	if w.Code != http.StatusOK {
		t.Fatalf("Update of a missing id: %d %s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodDelete, "/student/42", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Delete of a missing id: %d %s", w.Code, w.Body.String())
	}
	var msg dto.MessageResponse
	decode(t, w, &msg)
	if msg.Message != dto.MessageStudentDeleted {
		t.Fatalf("Unexpected message: %q", msg.Message)
	}

	if env.store.Len() != 0 {
		t.Fatalf("Store should stay empty, has %d", env.store.Len())
	}
}

func TestDeleteThenGet(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.create(t, alice())

	path := fmt.Sprintf("/student/%d", id)
	if w := env.do(t, http.MethodDelete, path, nil); w.Code != http.StatusOK {
		t.Fatalf("Delete failed: %d", w.Code)
	}
	if w := env.do(t, http.MethodGet, path, nil); w.Code != http.StatusNotFound {
		t.Fatalf("Deleted student still readable: %d", w.Code)
	}
}

func TestListStudents(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/students", nil)
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("Empty list must be an empty array, got %d %s", w.Code, w.Body.String())
	}

	bob := alice()
	bob.Name = "Bob"
	first := env.create(t, alice())
	second := env.create(t, bob)
	env.do(t, http.MethodDelete, fmt.Sprintf("/student/%d", first), nil)
	third := env.create(t, alice())

	w = env.do(t, http.MethodGet, "/students", nil)
	var got []models.Student
	decode(t, w, &got)

	ids := make([]int64, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if diff := cmp.Diff([]int64{second, third}, ids); diff != "" {
		t.Fatalf("Each live student must appear exactly once (-want +got):\n%s", diff)
	}
}

func TestInvalidRequests(t *testing.T) {
	cases := []struct {
		name   string
		method string
		path   string
		body   interface{}
		code   dto.ErrorCode
	}{
		{"missing fields", http.MethodPost, "/student", `{"name":"Alice"}`, dto.ErrorCodeValidationFailed},
		{"malformed body", http.MethodPost, "/student", `{"name":`, dto.ErrorCodeMalformedBody},
		{"empty body", http.MethodPost, "/student", nil, dto.ErrorCodeMalformedBody},
		{"wrong type", http.MethodPost, "/student", `{"name":"A","age":"old","semester1_grade":1,"semester2_grade":1,"teacher_name":"T","room_number":"1"}`, dto.ErrorCodeMalformedBody},
		{"non-numeric get", http.MethodGet, "/student/abc", nil, dto.ErrorCodeInvalidPathParam},
		{"non-numeric put", http.MethodPut, "/student/abc", dto.NewStudentRequest(alice()), dto.ErrorCodeInvalidPathParam},
		{"non-numeric delete", http.MethodDelete, "/student/abc", nil, dto.ErrorCodeInvalidPathParam},
		{"update missing fields", http.MethodPut, "/student/1", `{}`, dto.ErrorCodeValidationFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			w := env.do(t, tc.method, tc.path, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("Invalid status: %d %s", w.Code, w.Body.String())
			}

			var resp dto.ErrorResponse
			decode(t, w, &resp)
			if resp.Success || resp.Error == nil || resp.Error.Code != tc.code {
				t.Fatalf("Unexpected error envelope: %s", w.Body.String())
			}
			if env.store.Len() != 0 {
				t.Fatalf("Rejected request changed the store")
			}
		})
	}
}

func TestStoreFailureIsInternalError(t *testing.T) {
	env := newTestEnv(t, nil)
	env.store.Err = errors.New("connection refused")

	for _, path := range []string{"/students", "/student/1"} {
		w := env.do(t, http.MethodGet, path, nil)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("%s: invalid status %d", path, w.Code)
		}
		if bytes.Contains(w.Body.Bytes(), []byte("connection refused")) {
			t.Fatalf("%s: cause leaked to client: %s", path, w.Body.String())
		}
	}
}

func TestNegativeIDNeverMatches(t *testing.T) {
	env := newTestEnv(t, nil)
	env.create(t, alice())

	if w := env.do(t, http.MethodGet, "/student/-1", nil); w.Code != http.StatusNotFound {
		t.Fatalf("GET: invalid status %d", w.Code)
	}
	if w := env.do(t, http.MethodDelete, "/student/-1", nil); w.Code != http.StatusOK {
		t.Fatalf("DELETE: invalid status %d", w.Code)
	}
	if env.store.Len() != 1 {
		t.Fatalf("Negative id touched the store, has %d", env.store.Len())
	}
}
