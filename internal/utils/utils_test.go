package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func captureLogs(t *testing.T, level LogLevel) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	prevLevel, prevColor := CurrentLogLevel, ColorEnabled
	SetLogOutput(&stdout, &stderr)
	SetLogLevel(level)
	ColorEnabled = false
	t.Cleanup(func() {
		SetLogLevel(prevLevel)
		SetLogOutput(os.Stdout, os.Stderr)
		ColorEnabled = prevColor
	})
	return &stdout, &stderr
}

func TestLogLevelFromString(t *testing.T) {
	tests := map[string]LogLevel{
		"quiet":   LevelQuiet,
		"Q":       LevelQuiet,
		"normal":  LevelNormal,
		"verbose": LevelVerbose,
		"d":       LevelDebug,
		"bogus":   LevelNormal,
	}
	for in, want := range tests {
		assert.Equal(t, want, LogLevelFromString(in), in)
	}
}

func TestLogging_RespectsLevel(t *testing.T) {
	stdout, stderr := captureLogs(t, LevelNormal)

	LogInfo("info %d", 1)
	LogWarning("warn")
	LogVerbose("hidden verbose")
	LogDebug("hidden debug")
	LogError("boom")

	assert.Equal(t, "info 1\nwarn\n", stdout.String())
	assert.Equal(t, "boom\n", stderr.String())
}

func TestLogging_QuietKeepsErrors(t *testing.T) {
	stdout, stderr := captureLogs(t, LevelQuiet)

	LogInfo("info")
	LogSuccess("done")
	LogError("boom")

	assert.Empty(t, stdout.String())
	assert.Equal(t, "boom\n", stderr.String())
}

func TestColoredText(t *testing.T) {
	prev := ColorEnabled
	defer func() { ColorEnabled = prev }()

	ColorEnabled = true
	assert.Equal(t, RedColor+"x"+ResetColor, Error("x"))
	ColorEnabled = false
	assert.Equal(t, "x", Error("x"))
}

func TestPromptLine(t *testing.T) {
	var out bytes.Buffer

	got, err := PromptLine(strings.NewReader("  robotics  \nignored\n"), &out, "Query: ")
	require.NoError(t, err)
	assert.Equal(t, "robotics", got)
	assert.Equal(t, "Query: ", out.String())

	got, err = PromptLine(strings.NewReader("no newline"), &out, "")
	require.NoError(t, err)
	assert.Equal(t, "no newline", got)

	_, err = PromptLine(strings.NewReader(""), &out, "")
	assert.Error(t, err)
}

func TestExpandHomeDir(t *testing.T) {
	got, err := ExpandHomeDir("relative/path")
	require.NoError(t, err)
	assert.Equal(t, "relative/path", got)

	got, err = ExpandHomeDir("~")
	require.NoError(t, err)
	assert.Equal(t, "~", got)

	t.Setenv("HOME", "/home/tester")
	got, err = ExpandHomeDir("~/tokens")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", "tokens"), got)
}

func TestValidateOutputFile(t *testing.T) {
	allowed := []string{".csv", ".xlsx"}
	assert.NoError(t, ValidateOutputFile("out.csv", allowed))
	assert.NoError(t, ValidateOutputFile("dir/OUT.XLSX", allowed))

	for _, bad := range []string{"", "out.txt", "dir/"} {
		err := ValidateOutputFile(bad, allowed)
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr), bad)
		assert.Equal(t, "outputPath", vErr.Field)
	}
}

func TestTokenStorage(t *testing.T) {
	storage, err := NewTokenStorage(filepath.Join(t.TempDir(), "tokens"))
	require.NoError(t, err)

	token, err := storage.LoadToken("youtube")
	require.NoError(t, err)
	assert.Nil(t, token)

	want := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", Expiry: time.Now().Add(time.Hour).UTC().Truncate(time.Second)}
	require.NoError(t, storage.SaveToken("youtube", want))

	got, err := storage.LoadToken("youtube")
	require.NoError(t, err)
	assert.Equal(t, want.AccessToken, got.AccessToken)
	assert.Equal(t, want.RefreshToken, got.RefreshToken)
	assert.True(t, want.Expiry.Equal(got.Expiry))

	removed, err := storage.DeleteToken("youtube")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = storage.DeleteToken("youtube")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestOAuthCallbackServer(t *testing.T) {
	server := NewOAuthCallbackServer()
	require.NoError(t, server.Start("127.0.0.1:0"))
	defer func() {
		assert.NoError(t, server.Stop())
	}()

	resp, err := http.Get(server.RedirectURL() + "/")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(fmt.Sprintf("%s/?code=abc&state=state-token", server.RedirectURL()))
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	code, err := server.WaitForCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", code)
}

func TestOAuthCallbackServer_WaitHonorsContext(t *testing.T) {
	server := NewOAuthCallbackServer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := server.WaitForCode(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
