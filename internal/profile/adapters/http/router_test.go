package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "devprofile/internal/profile/adapters/http"
	"devprofile/internal/profile/adapters/http/middleware"
	"devprofile/internal/profile/app"
	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/domain/services"
	"devprofile/pkg/logger"
)

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

type fakeAuth struct {
	loginErr      error
	refreshErr    error
	logoutErr     error
	loggedOutUser string
}

func (f *fakeAuth) LoginWithGoogle(_ context.Context, idToken string) (*services.TokenPair, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &services.TokenPair{
		UserID:       "user-1",
		AccessToken:  "access-" + idToken,
		RefreshToken: "refresh-" + idToken,
		ExpiresAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

func (f *fakeAuth) RefreshTokens(_ context.Context, refreshToken string) (*services.TokenPair, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return &services.TokenPair{UserID: "user-1", AccessToken: "a2", RefreshToken: refreshToken + "-next"}, nil
}

func (f *fakeAuth) Logout(_ context.Context, _ string) error {
	return f.logoutErr
}

func (f *fakeAuth) LogoutAll(_ context.Context, userID string) error {
	f.loggedOutUser = userID
	return nil
}

func (f *fakeAuth) Authenticate(_ context.Context, accessToken string) (*services.JWTClaims, error) {
	switch accessToken {
	case userToken:
		return &services.JWTClaims{UserID: "user-1", Role: entities.RoleUser}, nil
	case adminToken:
		return &services.JWTClaims{UserID: "admin-1", Role: entities.RoleAdmin}, nil
	default:
		return nil, services.ErrInvalidJWTToken
	}
}

type testServer struct {
	app  *fiber.App
	auth *fakeAuth
}

func newTestServer(t *testing.T, d *app.Dispatcher, mediaRoot string) *testServer {
	t.Helper()

	log, err := logger.NewLogger(logger.Development, "error")
	require.NoError(t, err)

	auth := &fakeAuth{}
	server := fiber.New()
	httpadapter.SetupRouter(server, httpadapter.Dependencies{
		Auth:            auth,
		Dispatcher:      d,
		Logger:          log,
		BaseURL:         "https://cdn.example.com",
		MediaRoot:       mediaRoot,
		MediaPublicPath: "media",
	})
	return &testServer{app: server, auth: auth}
}

func (s *testServer) do(t *testing.T, method, target, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func okProfile(id string) app.Result[app.ProfileDTO] {
	return app.Ok(app.ProfileDTO{ID: id, FirstName: "Ada", LastName: "Lovelace"})
}

func TestHealthAndRequestID(t *testing.T) {
	s := newTestServer(t, app.NewDispatcher(), "")

	resp := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-42")
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "req-42", resp.Header.Get(middleware.HeaderRequestID))
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, app.NewDispatcher(), "")

	resp := s.do(t, http.MethodGet, "/api/v1/nowhere", "", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetPublicProfile(t *testing.T) {
	d := app.NewDispatcher()
	app.Register(d, func(_ context.Context, q app.GetProfileQuery) (app.Result[app.ProfileDTO], error) {
		if q.ID == "missing" {
			return app.Fail[app.ProfileDTO](app.NotFound(app.CodeProfileNotFound, "profile not found")), nil
		}
		return okProfile(q.ID), nil
	})
	s := newTestServer(t, d, "")

	resp := s.do(t, http.MethodGet, "/api/v1/profiles/user-7", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user-7", decode[app.ProfileDTO](t, resp).ID)

	resp = s.do(t, http.MethodGet, "/api/v1/profiles/missing", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, app.CodeProfileNotFound, body["code"])
}

func TestMeRequiresBearerToken(t *testing.T) {
	d := app.NewDispatcher()
	app.Register(d, func(_ context.Context, q app.GetProfileQuery) (app.Result[app.ProfileDTO], error) {
		return okProfile(q.ID), nil
	})
	s := newTestServer(t, d, "")

	resp := s.do(t, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	basic, err := s.app.Test(req)
	require.NoError(t, err)
	defer basic.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, basic.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/v1/me", "forged", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/v1/me", userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user-1", decode[app.ProfileDTO](t, resp).ID)
}

func TestCreateProfileUsesTokenSubject(t *testing.T) {
	d := app.NewDispatcher()
	var got app.CreateProfileCommand
	app.Register(d, func(_ context.Context, cmd app.CreateProfileCommand) (app.Result[app.ProfileDTO], error) {
		got = cmd
		return okProfile(cmd.UserID), nil
	})
	s := newTestServer(t, d, "")

	resp := s.do(t, http.MethodPost, "/api/v1/me", userToken, map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"skills":    []string{"Go", "SQL"},
		"contact":   map[string]any{"email": "ada@example.com"},
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "Ada", got.Profile.FirstName)
	assert.Equal(t, []string{"Go", "SQL"}, got.Profile.Skills)
	assert.Equal(t, "ada@example.com", got.Profile.Contact.Email)
}

func TestResultKindsMapToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    *app.Error
		status int
	}{
		{"validation", app.ValidationFailed(app.FieldViolation{Field: "firstName", Message: "required"}), http.StatusBadRequest},
		{"not found", app.NotFound(app.CodeProfileNotFound, "profile not found"), http.StatusNotFound},
		{"conflict", app.Conflict(app.CodeProfileExists, "profile already exists"), http.StatusConflict},
		{"failure", app.Failure(app.CodeProfileUpdate, "update failed"), http.StatusInternalServerError},
		{"forbidden", app.Forbidden(app.CodeForbidden, "nope"), http.StatusForbidden},
		{"unauthorized", app.Unauthorized(app.CodeInvalidToken, "nope"), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := app.NewDispatcher()
			app.Register(d, func(_ context.Context, _ app.UpdateSummaryCommand) (app.Result[app.ProfileDTO], error) {
				return app.Fail[app.ProfileDTO](tt.err), nil
			})
			s := newTestServer(t, d, "")

			resp := s.do(t, http.MethodPatch, "/api/v1/me/summary", userToken, map[string]any{"summary": "x"})

			require.Equal(t, tt.status, resp.StatusCode)
			body := decode[app.Error](t, resp)
			assert.Equal(t, tt.err.Code, body.Code)
			assert.Equal(t, tt.err.Details, body.Details)
		})
	}
}

func TestHandlerErrors(t *testing.T) {
	d := app.NewDispatcher()
	app.Register(d, func(_ context.Context, cmd app.RemoveProjectCommand) (app.Result[app.ProfileDTO], error) {
		if cmd.ProjectID == "boom" {
			return app.Result[app.ProfileDTO]{}, errors.New("connection reset")
		}
		return app.Result[app.ProfileDTO]{}, fmt.Errorf("removing project: %w", entities.ErrProjectNotFound)
	})
	s := newTestServer(t, d, "")

	resp := s.do(t, http.MethodDelete, "/api/v1/me/projects/missing", userToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, http.MethodDelete, "/api/v1/me/projects/boom", userToken, nil)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decode[app.Error](t, resp)
	assert.Equal(t, app.CodeFailure, body.Code)
	assert.NotContains(t, body.Message, "connection reset")
}

func TestMalformedBody(t *testing.T) {
	d := app.NewDispatcher()
	app.Register(d, func(_ context.Context, cmd app.ReplaceSkillsCommand) (app.Result[app.ProfileDTO], error) {
		return okProfile(cmd.UserID), nil
	})
	s := newTestServer(t, d, "")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/me/skills", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecoveryFromPanic(t *testing.T) {
	d := app.NewDispatcher()
	app.Register(d, func(_ context.Context, _ app.GetProfileQuery) (app.Result[app.ProfileDTO], error) {
		panic("unexpected")
	})
	s := newTestServer(t, d, "")

	resp := s.do(t, http.MethodGet, "/api/v1/profiles/p-1", "", nil)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestSetVerificationRequiresAdmin(t *testing.T) {
	d := app.NewDispatcher()
	var got app.SetVerificationCommand
	app.Register(d, func(_ context.Context, cmd app.SetVerificationCommand) (app.Result[app.ProfileDTO], error) {
		got = cmd
		return okProfile(cmd.ProfileID), nil
	})
	s := newTestServer(t, d, "")

	resp := s.do(t, http.MethodPut, "/api/v1/profiles/user-9/verification", "", map[string]string{"status": "Verified"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, http.MethodPut, "/api/v1/profiles/user-9/verification", userToken, map[string]string{"status": "Verified"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, got.ProfileID)

	resp = s.do(t, http.MethodPut, "/api/v1/profiles/user-9/verification", adminToken, map[string]string{"status": "Verified"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user-9", got.ProfileID)
	assert.Equal(t, "Verified", got.Status)
}

func TestSearchCatalogQueryParams(t *testing.T) {
	d := app.NewDispatcher()
	var got app.CatalogSearchQuery
	app.Register(d, func(_ context.Context, q app.CatalogSearchQuery) (app.Result[app.PagedResult[app.ProfileCardDTO]], error) {
		got = q
		return app.Ok(app.PagedResult[app.ProfileCardDTO]{
			Items:      []app.ProfileCardDTO{{ID: "user-1"}},
			TotalCount: 41,
			Page:       2,
			PageSize:   20,
			TotalPages: 3,
		}), nil
	})
	s := newTestServer(t, d, "")

	resp := s.do(t, http.MethodGet,
		"/api/v1/profiles?q=ada&skills=go,%20sql,&openToWork=true&verification=Verified&sort=name&order=asc&page=2&pageSize=20", "", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[app.PagedResult[app.ProfileCardDTO]](t, resp)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, "ada", got.Search)
	assert.Equal(t, []string{"go", "sql"}, got.Skills)
	require.NotNil(t, got.OpenToWork)
	assert.True(t, *got.OpenToWork)
	assert.Equal(t, "Verified", got.Verification)
	assert.Equal(t, "name", got.SortField)
	assert.Equal(t, "asc", got.SortOrder)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 20, got.PageSize)

	resp = s.do(t, http.MethodGet, "/api/v1/profiles?openToWork=maybe", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/v1/profiles?page=two", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFilterCatalog(t *testing.T) {
	d := app.NewDispatcher()
	var got app.CatalogQuery
	app.Register(d, func(_ context.Context, q app.CatalogQuery) (app.Result[[]app.ProfileCardDTO], error) {
		got = q
		return app.Ok([]app.ProfileCardDTO{{ID: "a"}, {ID: "b"}}), nil
	})
	s := newTestServer(t, d, "")

	resp := s.do(t, http.MethodGet, "/api/v1/profiles/filter?skills=Rust", "", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]app.ProfileCardDTO](t, resp), 2)
	assert.Equal(t, []string{"Rust"}, got.Skills)
	assert.Nil(t, got.OpenToWork)
}

func TestGetResume(t *testing.T) {
	d := app.NewDispatcher()
	app.Register(d, func(_ context.Context, q app.GetResumeQuery) (app.Result[[]byte], error) {
		return app.Ok([]byte("%PDF-" + q.ProfileID)), nil
	})
	s := newTestServer(t, d, "")

	resp := s.do(t, http.MethodGet, "/api/v1/profiles/user-1/resume.pdf", "", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, app.PDFContentType, resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-user-1", string(raw))
}

func TestResumeUnavailable(t *testing.T) {
	s := newTestServer(t, app.NewDispatcher(), "")

	resp := s.do(t, http.MethodGet, "/api/v1/profiles/user-1/resume.pdf", "", nil)

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal.not_implemented", decode[app.Error](t, resp).Code)
}

func multipartUpload(t *testing.T, target, contentType string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="avatar.png"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+userToken)
	return req
}

func TestUploadAvatar(t *testing.T) {
	d := app.NewDispatcher()
	var got app.UploadAvatarCommand
	var content []byte
	app.Register(d, func(_ context.Context, cmd app.UploadAvatarCommand) (app.Result[app.ProfileDTO], error) {
		got = cmd
		raw, err := io.ReadAll(cmd.Content)
		if err != nil {
			return app.Result[app.ProfileDTO]{}, err
		}
		content = raw
		return okProfile(cmd.UserID), nil
	})
	s := newTestServer(t, d, "")

	resp, err := s.app.Test(multipartUpload(t, "/api/v1/me/avatar", "image/png", []byte("png-bytes")))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "image/png", got.ContentType)
	assert.Equal(t, int64(len("png-bytes")), got.Size)
	assert.Equal(t, "https://cdn.example.com", got.BaseURL)
	assert.Equal(t, "png-bytes", string(content))
}

func TestUploadProjectImageWithoutFile(t *testing.T) {
	d := app.NewDispatcher()
	called := false
	app.Register(d, func(_ context.Context, _ app.UploadProjectImageCommand) (app.Result[app.ProfileDTO], error) {
		called = true
		return okProfile("user-1"), nil
	})
	s := newTestServer(t, d, "")

	resp := s.do(t, http.MethodPost, "/api/v1/me/projects/p-1/image", userToken, map[string]string{"x": "y"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, called)
}

func TestLocalMediaIsServed(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "avatars", "user-1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "avatars", "user-1", "a.png"), []byte("img"), 0o600))
	s := newTestServer(t, app.NewDispatcher(), root)

	resp := s.do(t, http.MethodGet, "/media/avatars/user-1/a.png", "", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "img", string(raw))
}

func TestAuthRoutes(t *testing.T) {
	t.Run("google login", func(t *testing.T) {
		s := newTestServer(t, app.NewDispatcher(), "")

		resp := s.do(t, http.MethodPost, "/api/v1/auth/google", "", map[string]string{"idToken": "g"})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode[map[string]any](t, resp)
		assert.Equal(t, "access-g", body["accessToken"])
		assert.Equal(t, "refresh-g", body["refreshToken"])
		assert.Equal(t, "user-1", body["userId"])
	})

	t.Run("google login rejected", func(t *testing.T) {
		s := newTestServer(t, app.NewDispatcher(), "")
		s.auth.loginErr = fmt.Errorf("verifying google token: %w", services.ErrInvalidGoogleToken)

		resp := s.do(t, http.MethodPost, "/api/v1/auth/google", "", map[string]string{"idToken": "g"})

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("google login infrastructure failure", func(t *testing.T) {
		s := newTestServer(t, app.NewDispatcher(), "")
		s.auth.loginErr = errors.New("db down")

		resp := s.do(t, http.MethodPost, "/api/v1/auth/google", "", map[string]string{"idToken": "g"})

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("missing id token", func(t *testing.T) {
		s := newTestServer(t, app.NewDispatcher(), "")

		resp := s.do(t, http.MethodPost, "/api/v1/auth/google", "", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("refresh revoked", func(t *testing.T) {
		s := newTestServer(t, app.NewDispatcher(), "")
		s.auth.refreshErr = fmt.Errorf("token revoked: %w", services.ErrRevokedRefreshToken)

		resp := s.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refreshToken": "r"})

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("refresh rotates", func(t *testing.T) {
		s := newTestServer(t, app.NewDispatcher(), "")

		resp := s.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refreshToken": "r"})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "r-next", decode[map[string]any](t, resp)["refreshToken"])
	})

	t.Run("logout", func(t *testing.T) {
		s := newTestServer(t, app.NewDispatcher(), "")

		resp := s.do(t, http.MethodPost, "/api/v1/auth/logout", "", map[string]string{"refreshToken": "r"})
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		s.auth.logoutErr = services.ErrInvalidRefreshToken
		resp = s.do(t, http.MethodPost, "/api/v1/auth/logout", "", map[string]string{"refreshToken": "r"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("logout all requires auth", func(t *testing.T) {
		s := newTestServer(t, app.NewDispatcher(), "")

		resp := s.do(t, http.MethodPost, "/api/v1/auth/logout-all", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp = s.do(t, http.MethodPost, "/api/v1/auth/logout-all", userToken, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, "user-1", s.auth.loggedOutUser)
	})
}
