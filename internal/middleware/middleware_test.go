package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/yigit/studentsvc/internal/app/models/dto"
	"github.com/yigit/studentsvc/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterJSONFieldNames()
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    dto.ErrorCode    `json:"code"`
		Message string           `json:"message"`
		Field   string           `json:"field"`
		Details []dto.FieldError `json:"details"`
	} `json:"error"`
}

func perform(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestIDGeneratedAndPropagated(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(zerolog.Nop()))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	w := perform(r, http.MethodGet, "/", nil)
	generated := w.Header().Get(RequestIDHeader)
	if generated == "" || generated != w.Body.String() {
		t.Fatalf("Expected generated request id in header and context, got %q / %q", generated, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("Incoming request id not reused: %q", got)
	}
}

type bindTarget struct {
	Name *string `json:"name" binding:"required"`
	Age  *int    `json:"age" binding:"required"`
}

func bindRouter() *gin.Engine {
	r := gin.New()
	r.POST("/bind", func(c *gin.Context) {
		var target bindTarget
		if !BindJSON(c, &target, "Invalid data") {
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": *target.Name, "age": *target.Age})
	})
	return r
}

func TestBindJSONMissingFields(t *testing.T) {
	w := perform(bindRouter(), http.MethodPost, "/bind", []byte(`{"name":"x"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Invalid status: %d", w.Code)
	}

	var body errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	want := []dto.FieldError{{Field: "age", Message: "age is required"}}
	if diff := cmp.Diff(want, body.Error.Details); diff != "" {
		t.Fatalf("Unexpected field errors (-want +got):\n%s", diff)
	}
	if body.Success || body.Error.Code != dto.ErrorCodeValidationFailed {
		t.Fatalf("Unexpected envelope: %+v", body)
	}
}

func TestBindJSONAcceptsZeroValues(t *testing.T) {
	w := perform(bindRouter(), http.MethodPost, "/bind", []byte(`{"name":"","age":0}`))
	if w.Code != http.StatusOK {
		t.Fatalf("Zero values must be accepted, got %d: %s", w.Code, w.Body.String())
	}
}

func TestBindJSONMalformed(t *testing.T) {
	cases := map[string][]byte{
		"empty":  nil,
		"syntax": []byte(`{"name":`),
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			w := perform(bindRouter(), http.MethodPost, "/bind", payload)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("Invalid status: %d", w.Code)
			}
			if !bytes.Contains(w.Body.Bytes(), []byte(dto.ErrorCodeMalformedBody)) {
				t.Fatalf("Expected malformed body code: %s", w.Body.String())
			}
		})
	}
}

func TestBindJSONWrongType(t *testing.T) {
	w := perform(bindRouter(), http.MethodPost, "/bind", []byte(`{"name":"x","age":"twenty"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Invalid status: %d", w.Code)
	}

	var body errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Field != "age" || body.Error.Code != dto.ErrorCodeMalformedBody {
		t.Fatalf("Expected age to be reported, got %+v", body.Error)
	}
}

func TestBindJSONNonObjectBody(t *testing.T) {
	for _, payload := range []string{`[1,2]`, `"text"`, `42`} {
		w := perform(bindRouter(), http.MethodPost, "/bind", []byte(payload))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: invalid status %d", payload, w.Code)
		}

		var body struct {
			Error struct {
				Code    dto.ErrorCode `json:"code"`
				Field   string        `json:"field"`
				Details string        `json:"details"`
			} `json:"error"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: %v", payload, err)
		}
		if body.Error.Code != dto.ErrorCodeMalformedBody || body.Error.Field != "" {
			t.Fatalf("%s: unexpected error %+v", payload, body.Error)
		}
		if body.Error.Details != "request body must be a JSON object" {
			t.Fatalf("%s: unexpected details %q", payload, body.Error.Details)
		}
	}
}

func TestParseIDParam(t *testing.T) {
	r := gin.New()
	r.GET("/student/:id", func(c *gin.Context) {
		id, ok := ParseIDParam(c, "id")
		if !ok {
			return
		}
		c.String(http.StatusOK, fmt.Sprint(id))
	})

	if w := perform(r, http.MethodGet, "/student/42", nil); w.Code != http.StatusOK || w.Body.String() != "42" {
		t.Fatalf("Unexpected response: %d %s", w.Code, w.Body.String())
	}
	if w := perform(r, http.MethodGet, "/student/abc", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}

func TestHandleAPIError(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{apperrors.ErrStudentNotFound, http.StatusNotFound, `{"message":"Student not found"}`},
		{fmt.Errorf("wrapped: %w", apperrors.ErrStudentNotFound), http.StatusNotFound, `{"message":"Student not found"}`},
		{apperrors.NewValidationError("student is nil"), http.StatusBadRequest, ""},
		{errors.New("db down"), http.StatusInternalServerError, ""},
		{fmt.Errorf("%w: db down", apperrors.ErrDatabaseUnavailable), http.StatusInternalServerError, ""},
	}

	for _, tc := range cases {
		r := gin.New()
		r.GET("/", func(c *gin.Context) { HandleAPIError(c, tc.err) })

		w := perform(r, http.MethodGet, "/", nil)
		if w.Code != tc.status {
			t.Errorf("%v: status %d, expected %d", tc.err, w.Code, tc.status)
		}
		if tc.message != "" && w.Body.String() != tc.message {
			t.Errorf("%v: body %s, expected %s", tc.err, w.Body.String(), tc.message)
		}
		if tc.status == http.StatusInternalServerError && bytes.Contains(w.Body.Bytes(), []byte("db down")) {
			t.Errorf("Internal error details leaked: %s", w.Body.String())
		}
		if errors.Is(tc.err, apperrors.ErrDatabaseUnavailable) && !bytes.Contains(w.Body.Bytes(), []byte(dto.ErrorCodeDatabaseError)) {
			t.Errorf("Expected database error code: %s", w.Body.String())
		}
	}
}
