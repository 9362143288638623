package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/filedrop/internal/api/http/context"
	"github.com/dtroode/filedrop/internal/api/http/session"
	"github.com/dtroode/filedrop/internal/api/http/view"
	"github.com/dtroode/filedrop/internal/mocks"
	"github.com/dtroode/filedrop/internal/model"
	"github.com/dtroode/filedrop/internal/testutil"
	"github.com/dtroode/filedrop/internal/token"
)

const cookieName = "sid"

type fixture struct {
	authService   *mocks.AuthService
	uploadService *mocks.UploadService
	sessions      *session.Manager
	cm            *httpcontext.Manager
	auth          *Auth
	upload        *Upload
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	renderer, err := view.New(testutil.MakeNoopLogger())
	require.NoError(t, err)

	f := &fixture{
		authService:   mocks.NewAuthService(t),
		uploadService: mocks.NewUploadService(t),
		sessions: session.NewManager(
			token.NewJWT("secret", time.Hour),
			session.NewMemoryRevoker(),
			session.Options{CookieName: cookieName},
			testutil.MakeNoopLogger(),
		),
		cm: httpcontext.NewManager(),
	}
	f.auth = NewAuth(f.authService, f.sessions, f.cm, renderer, testutil.MakeNoopLogger())
	f.upload = NewUpload(f.uploadService, f.sessions, f.cm, renderer, testutil.MakeNoopLogger())
	return f
}

func (f *fixture) authed(req *http.Request, userID uuid.UUID) *http.Request {
	ctx := f.cm.SetSessionToContext(req.Context(), model.Session{
		UserID:   userID,
		Username: "alice",
		TokenID:  uuid.NewString(),
	})
	return req.WithContext(ctx)
}

// flashOf returns the flash message set on rec, if any.
func (f *fixture) flashOf(rec *httptest.ResponseRecorder) string {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	msg, _ := f.sessions.PopFlash(httptest.NewRecorder(), req)
	return msg
}

func cookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("comment", "no file here"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
