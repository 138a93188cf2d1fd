package services

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/lifelog/internal/common"
	"github.com/dmitrijs2005/lifelog/internal/dbx"
	"github.com/dmitrijs2005/lifelog/internal/logging"
	"github.com/dmitrijs2005/lifelog/internal/server/auth"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/avatars"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/memory"
	"github.com/dmitrijs2005/lifelog/internal/server/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	u, err := e.users.Signup(ctx, SignupInput{Email: " a@x.com ", UserName: "Ann", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "a@x.com", u.Email)

	hash, ok := e.repos.PasswordHash("a@x.com")
	require.True(t, ok)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"))

	_, err = e.users.Signup(ctx, SignupInput{Email: "a@x.com", Password: "other"})
	assert.ErrorIs(t, err, common.ErrorConflict)
}

func TestSignup_Validation(t *testing.T) {
	e := newEnv(t)
	tests := []struct {
		name string
		in   SignupInput
	}{
		{"no email", SignupInput{Password: "p"}},
		{"blank email", SignupInput{Email: "  ", Password: "p"}},
		{"no password", SignupInput{Email: "a@x.com"}},
		{"long password", SignupInput{Email: "a@x.com", Password: strings.Repeat("x", 73)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.users.Signup(context.Background(), tt.in)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.signup(t, "a@x.com")

	res, err := e.users.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)

	uid, err := e.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)

	_, wrongPassword := e.users.Login(ctx, "a@x.com", "wrong")
	_, unknownEmail := e.users.Login(ctx, "nobody@x.com", "secret1")
	assert.ErrorIs(t, wrongPassword, common.ErrorUnauthorized)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestLogin_UnknownEmailStillChecksPassword(t *testing.T) {
	e := newEnv(t)
	e.signup(t, "a@x.com")
	stored, ok := e.repos.PasswordHash("a@x.com")
	require.True(t, ok)

	var digests []string
	orig := checkPassword
	t.Cleanup(func() { checkPassword = orig })
	checkPassword = func(password, digest string) bool {
		digests = append(digests, digest)
		return orig(password, digest)
	}

	_, err := e.users.Login(context.Background(), "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	_, err = e.users.Login(context.Background(), "a@x.com", "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	assert.Equal(t, []string{auth.DummyDigest(), stored}, digests)
}

func TestLogin_EmailIsCaseSensitive(t *testing.T) {
	e := newEnv(t)
	e.signup(t, "a@x.com")

	_, err := e.users.Login(context.Background(), "A@X.COM", "secret1")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestMe(t *testing.T) {
	e := newEnv(t)
	u := e.signup(t, "a@x.com")

	p, err := e.users.Me(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", p.Email)
	assert.Nil(t, p.AvatarURL)

	_, err = e.users.Me(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func png(body string) *Upload {
	return &Upload{Filename: "me.png", ContentType: "image/png", Size: int64(len(body)), Body: strings.NewReader(body)}
}

func storedFile(t *testing.T, e *env, path string) string {
	t.Helper()
	name, ok := storage.NameFromPath(path)
	require.True(t, ok, path)
	rc, err := e.files.Open(context.Background(), name)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

func TestUpdateProfile_ReplacesAvatar(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.signup(t, "a@x.com")
	name := "Ann"

	p, err := e.users.UpdateProfile(ctx, u.ID, ProfileUpdate{UserName: &name, Avatar: png("first")})
	require.NoError(t, err)
	assert.Equal(t, "Ann", p.UserName)
	require.NotNil(t, p.AvatarURL)
	first := *p.AvatarURL
	assert.Regexp(t, `^uploads/avatar-\d+-[0-9a-f]+\.png$`, first)
	assert.Equal(t, "first", storedFile(t, e, first))

	p, err = e.users.UpdateProfile(ctx, u.ID, ProfileUpdate{Avatar: png("second")})
	require.NoError(t, err)
	assert.Equal(t, "Ann", p.UserName)
	require.NotNil(t, p.AvatarURL)
	assert.NotEqual(t, first, *p.AvatarURL)
	assert.Equal(t, "second", storedFile(t, e, *p.AvatarURL))

	oldName, _ := storage.NameFromPath(first)
	_, err = os.Stat(filepath.Join(e.files.Root(), oldName))
	assert.True(t, os.IsNotExist(err))
}

func TestUpdateProfile_BlankNameKeepsCurrent(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.signup(t, "a@x.com")
	name, blank := "Ann", "  "

	_, err := e.users.UpdateProfile(ctx, u.ID, ProfileUpdate{UserName: &name})
	require.NoError(t, err)
	p, err := e.users.UpdateProfile(ctx, u.ID, ProfileUpdate{UserName: &blank})
	require.NoError(t, err)
	assert.Equal(t, "Ann", p.UserName)
}

func TestUpdateProfile_RejectsNonImage(t *testing.T) {
	e := newEnv(t)
	u := e.signup(t, "a@x.com")

	_, err := e.users.UpdateProfile(context.Background(), u.ID, ProfileUpdate{
		Avatar: &Upload{Filename: "x.txt", ContentType: "text/plain", Body: strings.NewReader("x")},
	})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

type failingAvatars struct{ avatars.Repository }

func (failingAvatars) Upsert(context.Context, string, string) error { return errors.New("db down") }

type failingAvatarManager struct{ *memory.Manager }

func (m failingAvatarManager) Avatars(db dbx.DBTX) avatars.Repository {
	return failingAvatars{m.Manager.Avatars(db)}
}

func TestUpdateProfile_FailedUpsertDiscardsUpload(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.signup(t, "a@x.com")

	svc := NewUserService(e.db, failingAvatarManager{e.repos}, e.tokens, e.files, logging.Nop())
	_, err := svc.UpdateProfile(ctx, u.ID, ProfileUpdate{Avatar: png("x")})
	require.ErrorContains(t, err, "db down")

	entries, err := os.ReadDir(e.files.Root())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
