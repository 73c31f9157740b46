package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/deptworks/consultancy-api/internal/core/domain"
	"github.com/deptworks/consultancy-api/internal/core/ports"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, in ports.SignupInput) (*domain.User, string, error)
	loginFn  func(ctx context.Context, in ports.LoginInput) (*domain.User, string, error)
	getFn    func(ctx context.Context, caller domain.Identity, id string) (*domain.User, error)
	deleteFn func(ctx context.Context, caller domain.Identity, id string) (*domain.User, error)
	listFn   func(ctx context.Context) ([]*domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, string, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (*domain.User, string, error) {
	return s.loginFn(ctx, in)
}

func (s *stubAuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubAuthService) GetUser(ctx context.Context, caller domain.Identity, id string) (*domain.User, error) {
	return s.getFn(ctx, caller, id)
}

func (s *stubAuthService) DeleteUser(ctx context.Context, caller domain.Identity, id string) (*domain.User, error) {
	return s.deleteFn(ctx, caller, id)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signupFn: func(_ context.Context, in ports.SignupInput) (*domain.User, string, error) {
			if in.Role != domain.RoleStudent || in.MatNo != "CSC/2021/044" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{
				ID:         "u1",
				Name:       in.Name,
				Email:      "ngozi@example.edu",
				Role:       in.Role,
				Department: in.Department,
				Student:    &domain.StudentDetails{MatNo: in.MatNo, Level: in.Level},
			}, "signed-token", nil
		},
	}
	h := NewAuthHandler(stub)

	body := `{"name":"Ngozi Okafor","email":"ngozi@example.edu","password":"pass123","role":"student","department":"Computer Science","mat_no":"CSC/2021/044","level":"300L"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/signup", body), rec)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("token missing from response: %v", resp)
	}
	user, _ := resp["user"].(map[string]any)
	if user["mat_no"] != "CSC/2021/044" || user["level"] != "300L" {
		t.Fatalf("student fields not flattened: %v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password leaked in response")
	}
}

func TestAuthHandler_Signup_SchemaValidation(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{
		signupFn: func(context.Context, ports.SignupInput) (*domain.User, string, error) {
			t.Fatalf("service should not be called on invalid payload")
			return nil, "", nil
		},
	})

	cases := []string{
		`{"email":"a@b.edu","password":"pass123","role":"student","department":"CS"}`,              // no name
		`{"name":"A","email":"a@b.edu","password":"pass123","role":"admin","department":"CS"}`,     // bad role
		`{"name":"A","email":"not-an-email","password":"pass123","role":"student","department":"CS"}`, // bad email
		`{"name":"A","email":"a@b.edu","password":"abc","role":"student","department":"CS"}`,       // short password
	}
	for _, body := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/signup", body), rec)

		err := h.Signup(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %v", body, err)
		}
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(_ context.Context, in ports.LoginInput) (*domain.User, string, error) {
			if in.Portal != domain.RoleLecturer {
				t.Fatalf("portal not forwarded: %+v", in)
			}
			return &domain.User{ID: "u1", Email: in.Email, Role: domain.RoleLecturer}, "signed-token", nil
		},
	})

	body := `{"email":"ada@example.edu","password":"s3cret99","role":"lecturer"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", body), rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_ErrorsPropagate(t *testing.T) {
	e := newTestEcho()

	// The handler surfaces domain errors untouched so the central error
	// handler owns the status mapping.
	for _, want := range []error{domain.ErrUserNotFound, domain.ErrWrongPortal, domain.ErrInvalidCredentials} {
		h := NewAuthHandler(&stubAuthService{
			loginFn: func(context.Context, ports.LoginInput) (*domain.User, string, error) {
				return nil, "", want
			},
		})

		body := `{"email":"ada@example.edu","password":"pass123"}`
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", body), rec)

		if err := h.Login(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{
		getFn: func(_ context.Context, caller domain.Identity, id string) (*domain.User, error) {
			if id != caller.UserID {
				t.Fatalf("Me must look up the caller's own id, got %s", id)
			}
			return &domain.User{ID: id, Role: caller.Role, Email: caller.Email}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setIdentity(c, domain.Identity{UserID: "u1", Role: domain.RoleStudent, Email: "ngozi@example.edu"})

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Me_NoIdentity(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_DeleteUser(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{
		deleteFn: func(_ context.Context, caller domain.Identity, id string) (*domain.User, error) {
			if caller.Role != domain.RoleLecturer || id != "u2" {
				t.Fatalf("unexpected delete args: %+v %s", caller, id)
			}
			return &domain.User{ID: id, Role: domain.RoleStudent, Name: "Ngozi Okafor"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/auth/u2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("u2")
	setIdentity(c, domain.Identity{UserID: "u1", Role: domain.RoleLecturer})

	if err := h.DeleteUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "User deleted successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

// setIdentity mirrors what the auth middleware does for a verified request.
func setIdentity(c echo.Context, identity domain.Identity) {
	c.Set("caller_identity", identity)
}
