package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/testutil"
)

func authEnv(t *testing.T, auth *testutil.FakeAuth) *commands.Env {
	t.Helper()
	env := &commands.Env{Config: &config.Config{Dir: t.TempDir()}}
	if auth != nil {
		env.Auth = auth
	}
	return env
}

func writeOAuthClient(t *testing.T, cfg *config.Config) {
	t.Helper()
	oauthClient := `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`
	if err := os.WriteFile(cfg.OAuthClientPath(), []byte(oauthClient), 0600); err != nil {
		t.Fatalf("failed to write oauth_client.json: %v", err)
	}
}

// TestLoginCommand_NoOAuthClient verifies login fails without oauth_client.json
func TestLoginCommand_NoOAuthClient(t *testing.T) {
	auth := &testutil.FakeAuth{}
	env := authEnv(t, auth)

	var outBuf, errBuf bytes.Buffer
	code := (&commands.LoginCmd{}).Run(context.Background(), env, nil, &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if outBuf.String() != "" {
		t.Errorf("expected no stdout, got %q", outBuf.String())
	}
	if !bytes.Contains(errBuf.Bytes(), []byte("error: oauth_client.json not found")) {
		t.Errorf("expected setup instructions, got %q", errBuf.String())
	}
	if auth.Logins != 0 {
		t.Error("login flow should not start without an OAuth client")
	}
}

func TestLoginCommand_Success(t *testing.T) {
	auth := &testutil.FakeAuth{}
	env := authEnv(t, auth)
	writeOAuthClient(t, env.Config)

	var outBuf, errBuf bytes.Buffer
	code := (&commands.LoginCmd{}).Run(context.Background(), env, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, errBuf.String())
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("expected ok, got %q", outBuf.String())
	}
	if !bytes.Contains(errBuf.Bytes(), []byte("Open this URL in your browser:")) {
		t.Errorf("expected the auth URL prompt on stderr, got %q", errBuf.String())
	}
	if !env.Config.HasToken() {
		t.Error("expected token.json to be written")
	}
}

func TestLoginCommand_AlreadyLoggedIn(t *testing.T) {
	auth := &testutil.FakeAuth{Valid: true}
	env := authEnv(t, auth)
	writeOAuthClient(t, env.Config)
	if err := os.WriteFile(env.Config.TokenPath(), []byte(`{"refresh_token":"r"}`), 0600); err != nil {
		t.Fatal(err)
	}

	var outBuf, errBuf bytes.Buffer
	code := (&commands.LoginCmd{}).Run(context.Background(), env, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "already logged in\n" {
		t.Errorf("expected 'already logged in', got %q", outBuf.String())
	}
	if auth.Logins != 0 {
		t.Error("valid token should not start the login flow")
	}
}

// TestLoginCommand_InvalidToken verifies login proceeds when the stored token
// no longer works.
func TestLoginCommand_InvalidToken(t *testing.T) {
	auth := &testutil.FakeAuth{Valid: false}
	env := authEnv(t, auth)
	writeOAuthClient(t, env.Config)
	if err := os.WriteFile(env.Config.TokenPath(), []byte(`{"access_token":"expired"}`), 0600); err != nil {
		t.Fatal(err)
	}

	var outBuf, errBuf bytes.Buffer
	_ = (&commands.LoginCmd{}).Run(context.Background(), env, nil, &outBuf, &errBuf)

	if outBuf.String() == "already logged in\n" {
		t.Error("should not say 'already logged in' with invalid token")
	}
	if auth.Logins != 1 {
		t.Errorf("expected one login attempt, got %d", auth.Logins)
	}
}

func TestLoginCommand_FlowFails(t *testing.T) {
	auth := &testutil.FakeAuth{LoginErr: errors.New("oauth callback timed out")}
	env := authEnv(t, auth)
	writeOAuthClient(t, env.Config)

	var outBuf, errBuf bytes.Buffer
	code := (&commands.LoginCmd{}).Run(context.Background(), env, nil, &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if errBuf.String() != "error: oauth callback timed out\n" {
		t.Errorf("unexpected stderr %q", errBuf.String())
	}
}

// TestLogoutCommand_OnlyRemovesToken verifies logout keeps the OAuth client
// and the task data.
func TestLogoutCommand_OnlyRemovesToken(t *testing.T) {
	env := authEnv(t, nil)
	cfg := env.Config
	writeOAuthClient(t, cfg)
	if err := os.WriteFile(cfg.TokenPath(), []byte(`{"refresh_token":"r"}`), 0600); err != nil {
		t.Fatal(err)
	}
	dataFile := filepath.Join(cfg.DataDir(), "todos.json")
	if err := os.MkdirAll(cfg.DataDir(), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dataFile, []byte("[]"), 0600); err != nil {
		t.Fatal(err)
	}

	var outBuf, errBuf bytes.Buffer
	code := (&commands.LogoutCmd{}).Run(context.Background(), env, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("expected ok, got %q", outBuf.String())
	}
	if cfg.HasToken() {
		t.Error("token.json should be deleted")
	}
	if !cfg.HasOAuthClient() {
		t.Error("oauth_client.json should be kept")
	}
	if _, err := os.Stat(dataFile); err != nil {
		t.Errorf("task data should be kept: %v", err)
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	env := authEnv(t, nil)

	var outBuf, errBuf bytes.Buffer
	code := (&commands.LogoutCmd{}).Run(context.Background(), env, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "not logged in\n" {
		t.Errorf("expected 'not logged in', got %q", outBuf.String())
	}
}

func TestLogoutCommand_NotLoggedInQuiet(t *testing.T) {
	env := authEnv(t, nil)
	env.Config.Quiet = true

	var outBuf, errBuf bytes.Buffer
	code := (&commands.LogoutCmd{}).Run(context.Background(), env, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "" {
		t.Errorf("expected no output in quiet mode, got %q", outBuf.String())
	}
}
