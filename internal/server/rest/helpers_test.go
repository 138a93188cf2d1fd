package rest

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/dmitrijs2005/lifelog/internal/logging"
	"github.com/dmitrijs2005/lifelog/internal/server/auth"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/memory"
	"github.com/dmitrijs2005/lifelog/internal/server/services"
	"github.com/dmitrijs2005/lifelog/internal/server/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

type testAPI struct {
	handler http.Handler
	repos   *memory.Manager
	files   *storage.DiskStore
	tokens  *auth.TokenIssuer
}

func newTestAPI(t *testing.T, tweak ...func(*Deps)) *testAPI {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	files, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	tokens, err := auth.NewTokenIssuer("test-secret", 24*time.Hour)
	require.NoError(t, err)

	repos := memory.NewManager()
	log := logging.Nop()

	d := Deps{
		Users:          services.NewUserService(db, repos, tokens, files, log),
		Categories:     services.NewCategoryService(db, repos, log),
		Records:        services.NewRecordService(db, repos, files, log),
		Stats:          services.NewStatsService(db, repos),
		Verifier:       tokens,
		Files:          files,
		Metrics:        NewMetrics(prometheus.NewRegistry()),
		Logger:         log,
		MaxUploadBytes: 1 << 20,
		AllowedOrigins: []string{"*"},
	}
	for _, fn := range tweak {
		fn(&d)
	}
	return &testAPI{handler: NewRouter(d), repos: repos, files: files, tokens: tokens}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func (a *testAPI) json(t *testing.T, method, path, token string, v any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if v != nil {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	return a.do(t, method, path, token, body, "application/json")
}

type filePart struct {
	field, filename, contentType string
	data                         []byte
}

func (a *testAPI) multipart(t *testing.T, method, path, token string, fields map[string]string, files ...filePart) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		hdr.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return a.do(t, method, path, token, &buf, mw.FormDataContentType())
}

// login signs up email and returns a bearer token and the user id.
func (a *testAPI) login(t *testing.T, email string) (string, string) {
	t.Helper()
	w := a.json(t, http.MethodPost, "/api/auth/signup", "", map[string]string{"email": email, "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.json(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res loginResponse
	decode(t, w, &res)
	return res.Token, res.User.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var m messageResponse
	decode(t, w, &m)
	return m.Message
}
