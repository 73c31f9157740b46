package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/deptworks/consultancy-api/internal/core/domain"
	"github.com/deptworks/consultancy-api/internal/core/ports"
	"github.com/deptworks/consultancy-api/internal/core/token"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by email
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.Student != nil {
		s := *u.Student
		clone.Student = &s
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	created := cloneUser(user)
	r.nextID++
	created.ID = string(rune('a' + r.nextID - 1))
	r.users[created.Email] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	for email, u := range r.users {
		if u.ID == id {
			delete(r.users, email)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func newTestAuthService(repo ports.UserRepository) *AuthService {
	issuer := token.NewIssuer(token.Config{Secret: "secret", TTL: time.Hour})
	return NewAuthService(repo, issuer)
}

func studentSignup() ports.SignupInput {
	return ports.SignupInput{
		Name:       "Ngozi Okafor",
		Email:      "Ngozi@Example.edu",
		Password:   "pass123",
		Role:       domain.RoleStudent,
		Department: "Computer Science",
		MatNo:      "CSC/2021/044",
		Level:      "300L",
	}
}

func lecturerSignup() ports.SignupInput {
	return ports.SignupInput{
		Name:       "Ada Bello",
		Email:      "ada@example.edu",
		Password:   "s3cret99",
		Role:       domain.RoleLecturer,
		Department: "Computer Science",
	}
}

func TestAuthService_Signup_Student(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	user, tkn, err := svc.Signup(context.Background(), studentSignup())
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if tkn == "" {
		t.Fatalf("expected a token")
	}
	if user.Email != "ngozi@example.edu" {
		t.Fatalf("email not normalized: %s", user.Email)
	}
	if user.Student == nil || user.Student.MatNo != "CSC/2021/044" || user.Student.Level != "300L" {
		t.Fatalf("student details not stored: %+v", user.Student)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Signup_Lecturer(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	user, _, err := svc.Signup(context.Background(), lecturerSignup())
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.Student != nil {
		t.Fatalf("lecturer must not carry student details")
	}
}

func TestAuthService_Signup_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	cases := []struct {
		name   string
		mutate func(*ports.SignupInput)
	}{
		{"bad role", func(in *ports.SignupInput) { in.Role = "admin" }},
		{"student missing mat_no", func(in *ports.SignupInput) { in.MatNo = "" }},
		{"student missing level", func(in *ports.SignupInput) { in.Level = "" }},
		{"student bad level", func(in *ports.SignupInput) { in.Level = "700L" }},
		{"short password", func(in *ports.SignupInput) { in.Password = "abc" }},
		{"missing department", func(in *ports.SignupInput) { in.Department = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := studentSignup()
			tc.mutate(&in)
			if _, _, err := svc.Signup(context.Background(), in); !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAuthService_Signup_LecturerWithStudentFields(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	in := lecturerSignup()
	in.MatNo = "CSC/2021/001"
	if _, _, err := svc.Signup(context.Background(), in); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, _, err := svc.Signup(context.Background(), studentSignup()); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	// Same email, different case and role: still taken.
	in := lecturerSignup()
	in.Email = "NGOZI@example.edu"
	if _, _, err := svc.Signup(context.Background(), in); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, _, err := svc.Signup(context.Background(), lecturerSignup()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	user, tkn, err := svc.Login(context.Background(), ports.LoginInput{
		Email:    "ada@example.edu",
		Password: "s3cret99",
		Portal:   domain.RoleLecturer,
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tkn == "" {
		t.Fatalf("expected token")
	}
	if user.Role != domain.RoleLecturer {
		t.Fatalf("role mismatch after login: %s", user.Role)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	_, _, err := svc.Login(context.Background(), ports.LoginInput{Email: "ghost@example.edu", Password: "pass"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_WrongPortal(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, _, err := svc.Signup(context.Background(), studentSignup()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	// The portal hint wins regardless of password correctness.
	for _, password := range []string{"pass123", "wrong"} {
		_, _, err := svc.Login(context.Background(), ports.LoginInput{
			Email:    "ngozi@example.edu",
			Password: password,
			Portal:   domain.RoleLecturer,
		})
		if !errors.Is(err, domain.ErrWrongPortal) {
			t.Fatalf("expected ErrWrongPortal with password %q, got %v", password, err)
		}
	}
}

func TestAuthService_Login_BadPassword(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, _, err := svc.Signup(context.Background(), studentSignup()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	_, _, err := svc.Login(context.Background(), ports.LoginInput{
		Email:    "ngozi@example.edu",
		Password: "wrong",
		Portal:   domain.RoleStudent,
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_GetUser_Ownership(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	student, _, err := svc.Signup(context.Background(), studentSignup())
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	lecturer, _, err := svc.Signup(context.Background(), lecturerSignup())
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	// A student may read their own record.
	self := domain.Identity{UserID: student.ID, Role: domain.RoleStudent}
	if _, err := svc.GetUser(context.Background(), self, student.ID); err != nil {
		t.Fatalf("self read failed: %v", err)
	}

	// A student may not read someone else's.
	if _, err := svc.GetUser(context.Background(), self, lecturer.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// A lecturer may read anyone's.
	boss := domain.Identity{UserID: lecturer.ID, Role: domain.RoleLecturer}
	if _, err := svc.GetUser(context.Background(), boss, student.ID); err != nil {
		t.Fatalf("lecturer read failed: %v", err)
	}
}

func TestAuthService_DeleteUser_Rules(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	student, _, err := svc.Signup(context.Background(), studentSignup())
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	lecturer, _, err := svc.Signup(context.Background(), lecturerSignup())
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	other := lecturerSignup()
	other.Email = "second@example.edu"
	secondLecturer, _, err := svc.Signup(context.Background(), other)
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	studentID := domain.Identity{UserID: student.ID, Role: domain.RoleStudent}
	lecturerID := domain.Identity{UserID: lecturer.ID, Role: domain.RoleLecturer}

	// A student may not delete anyone, not even themself.
	if _, err := svc.DeleteUser(context.Background(), studentID, student.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for student caller, got %v", err)
	}

	// A lecturer may not delete another lecturer.
	if _, err := svc.DeleteUser(context.Background(), lecturerID, secondLecturer.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for lecturer-on-lecturer delete, got %v", err)
	}

	// A lecturer may delete a student.
	deleted, err := svc.DeleteUser(context.Background(), lecturerID, student.ID)
	if err != nil {
		t.Fatalf("lecturer deleting student failed: %v", err)
	}
	if deleted.ID != student.ID {
		t.Fatalf("unexpected deleted record: %+v", deleted)
	}

	// A lecturer may delete themself.
	if _, err := svc.DeleteUser(context.Background(), lecturerID, lecturer.ID); err != nil {
		t.Fatalf("self delete failed: %v", err)
	}

	// Deleting a missing user reports not found.
	boss := domain.Identity{UserID: secondLecturer.ID, Role: domain.RoleLecturer}
	if _, err := svc.DeleteUser(context.Background(), boss, student.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
