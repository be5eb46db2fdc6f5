package app

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mymemory/internal/client/auth"
	"github.com/dmitrijs2005/mymemory/internal/client/config"
	"github.com/dmitrijs2005/mymemory/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/mymemory/internal/client/session"
	"github.com/dmitrijs2005/mymemory/internal/logging"
)

func newTestApp(t *testing.T) (*App, *preferences.MemoryRepository, *bytes.Buffer) {
	t.Helper()
	repo := preferences.NewMemoryRepository()
	var out bytes.Buffer
	a := &App{
		config: &config.Config{},
		store:  session.NewStore(repo, auth.NewDefaultAuthenticator()),
		prefs:  repo,
		log:    logging.NewNopLogger(),
		reader: bufio.NewReader(strings.NewReader("")),
		out:    &out,
	}
	return a, repo, &out
}

func stubInputs(t *testing.T, account string, password []byte) {
	t.Helper()
	origAccount, origPassword := readAccount, readPassword
	readAccount = func(_ *bufio.Reader, _ io.Writer) (string, error) { return account, nil }
	readPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		readAccount = origAccount
		readPassword = origPassword
	})
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	path := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, session.SaveImageFile(path, img))
	return path
}

func TestLogin_SuccessWipesPassword(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()
	pw := []byte("1234")
	stubInputs(t, "jihyea@naver.com", pw)

	require.NoError(t, a.Login(ctx))

	assert.True(t, a.isLoggedIn(ctx))
	assert.Contains(t, out.String(), "Welcome, 지헤!")
	assert.Equal(t, []byte{0, 0, 0, 0}, pw)
	assert.Equal(t, "(jihyea@naver.com)", a.getStatus(ctx))
}

func TestLogin_WrongPassword(t *testing.T) {
	a, repo, out := newTestApp(t)
	ctx := context.Background()
	stubInputs(t, "jihyea@naver.com", []byte("0000"))

	require.NoError(t, a.Login(ctx))

	assert.False(t, a.isLoggedIn(ctx))
	assert.Contains(t, out.String(), "Login unsuccessful")
	assert.Equal(t, "(logged out)", a.getStatus(ctx))
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLogin_AlreadyLoggedIn(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()
	stubInputs(t, "jihyea@naver.com", []byte("1234"))
	require.NoError(t, a.Login(ctx))

	require.ErrorIs(t, a.Login(ctx), errAlreadyLoggedIn)
}

func TestLogin_InputErrorsPropagate(t *testing.T) {
	a, _, _ := newTestApp(t)
	boom := errors.New("tty gone")

	origPassword := readPassword
	readPassword = func(_ io.Writer) ([]byte, error) { return nil, boom }
	t.Cleanup(func() { readPassword = origPassword })
	origAccount := readAccount
	readAccount = func(_ *bufio.Reader, _ io.Writer) (string, error) { return "x", nil }
	t.Cleanup(func() { readAccount = origAccount })

	require.ErrorIs(t, a.Login(context.Background()), boom)
}

func TestLogout(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()
	stubInputs(t, "jihyea@naver.com", []byte("1234"))
	require.NoError(t, a.Login(ctx))

	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isLoggedIn(ctx))
	assert.Contains(t, out.String(), "Logged out")

	// logging out twice is fine
	require.NoError(t, a.Logout(ctx))
}

func TestLogout_ErrorPropagates(t *testing.T) {
	a, repo, _ := newTestApp(t)
	repo.FailOn = map[string]error{"delete": errors.New("clean-fail")}

	require.Error(t, a.Logout(context.Background()))
}

func TestWhoAmI(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.WhoAmI(ctx))
	assert.Contains(t, out.String(), "Not logged in")

	stubInputs(t, "jihyea@naver.com", []byte("1234"))
	require.NoError(t, a.Login(ctx))
	out.Reset()

	require.NoError(t, a.WhoAmI(ctx))
	s := out.String()
	assert.Contains(t, s, "id:      100")
	assert.Contains(t, s, "account: jihyea@naver.com")
	assert.Contains(t, s, "name:    지헤")
	assert.Contains(t, s, "profile: default")
}

func TestName(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()

	require.ErrorIs(t, a.Name(ctx, []string{"x"}), errNotLoggedIn)

	stubInputs(t, "jihyea@naver.com", []byte("1234"))
	require.NoError(t, a.Login(ctx))

	require.NoError(t, a.Name(ctx, []string{"Kim", "Jihye"}))
	name, ok := a.store.Name(ctx)
	require.True(t, ok)
	assert.Equal(t, "Kim Jihye", name)

	require.NoError(t, a.Name(ctx, nil))
	_, ok = a.store.Name(ctx)
	assert.False(t, ok)
	assert.True(t, a.isLoggedIn(ctx), "clearing the name must not log out")
}

func TestProfile_SetExportClear(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()
	stubInputs(t, "jihyea@naver.com", []byte("1234"))
	require.NoError(t, a.Login(ctx))

	in := writePNG(t, 6, 4)
	require.NoError(t, a.Profile(ctx, []string{"set", in}))
	assert.True(t, a.store.Snapshot(ctx).HasProfile)

	exported := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, a.Profile(ctx, []string{"export", exported}))
	want, err := session.LoadImageFile(in)
	require.NoError(t, err)
	got, err := session.LoadImageFile(exported)
	require.NoError(t, err)
	assert.Equal(t, want.Bounds(), got.Bounds())
	assert.Equal(t, color.RGBAModel.Convert(want.At(2, 1)), color.RGBAModel.Convert(got.At(2, 1)))

	require.NoError(t, a.Profile(ctx, []string{"clear"}))
	assert.False(t, a.store.Snapshot(ctx).HasProfile)
}

func TestProfile_Usage(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()

	require.ErrorIs(t, a.Profile(ctx, []string{"clear"}), errNotLoggedIn)

	stubInputs(t, "jihyea@naver.com", []byte("1234"))
	require.NoError(t, a.Login(ctx))

	require.Error(t, a.Profile(ctx, nil))
	require.Error(t, a.Profile(ctx, []string{"set"}))
	require.Error(t, a.Profile(ctx, []string{"export"}))
	require.Error(t, a.Profile(ctx, []string{"rotate"}))
	require.Error(t, a.Profile(ctx, []string{"set", filepath.Join(t.TempDir(), "missing.png")}))
}

func TestTutorialKeysReset(t *testing.T) {
	a, repo, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.Tutorial(ctx))
	assert.Contains(t, out.String(), "MyMemory keeps your account")
	assert.True(t, a.store.TutorialSeen(ctx))

	stubInputs(t, "jihyea@naver.com", []byte("1234"))
	require.NoError(t, a.Login(ctx))
	out.Reset()

	require.NoError(t, a.Keys(ctx))
	s := out.String()
	for _, k := range []string{"ACCOUNT", "LOGINID", "NAME", "TUTORIAL"} {
		assert.Contains(t, s, k)
	}
	assert.Less(t, strings.Index(s, "ACCOUNT"), strings.Index(s, "TUTORIAL"), "keys are sorted")

	require.NoError(t, a.Reset(ctx))
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.False(t, a.store.TutorialSeen(ctx))
}

func TestNewApp_RunAgainstTempDatabase(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "data", "mm.db")
	cfg.FallbackImage = filepath.Join(t.TempDir(), "missing.jpg")

	a, err := NewApp(ctx, cfg, logging.NewNopLogger())
	require.NoError(t, err)

	var out bytes.Buffer
	a.out = &out
	a.reader = bufio.NewReader(strings.NewReader("whoami\nexit\n"))
	capturePrintln(t)

	a.Run(ctx)

	s := out.String()
	assert.Contains(t, s, "Welcome to MyMemory")
	assert.Contains(t, s, "MyMemory keeps your account")
	assert.Contains(t, s, "Not logged in")
}
