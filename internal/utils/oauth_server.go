package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/oauth2"
)

// DefaultTokenDir is where OAuth tokens are cached when no directory is configured
const DefaultTokenDir = "~/.ytdatascraper"

// TokenStorage handles storing and retrieving OAuth tokens
type TokenStorage struct {
	configDir string
}

// NewTokenStorage creates a token storage rooted at dir, creating it if needed
func NewTokenStorage(dir string) (*TokenStorage, error) {
	if dir == "" {
		dir = DefaultTokenDir
	}
	configDir, err := ExpandHomeDir(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create token directory: %w", err)
	}

	return &TokenStorage{configDir: configDir}, nil
}

func (s *TokenStorage) tokenPath(service string) string {
	return filepath.Join(s.configDir, fmt.Sprintf("%s_token.json", service))
}

// TokenPath returns where the token of service is stored
func (s *TokenStorage) TokenPath(service string) string {
	return s.tokenPath(service)
}

// DeleteToken removes a cached token. It reports false when there was none.
func (s *TokenStorage) DeleteToken(service string) (bool, error) {
	err := os.Remove(s.tokenPath(service))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to remove token file: %w", err)
	}
	return true, nil
}

// SaveToken saves the OAuth token to disk
func (s *TokenStorage) SaveToken(service string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(s.tokenPath(service), data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// LoadToken loads the OAuth token from disk. A missing token yields (nil, nil).
func (s *TokenStorage) LoadToken(service string) (*oauth2.Token, error) {
	data, err := os.ReadFile(s.tokenPath(service))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}

	return &token, nil
}

// OAuthCallbackServer receives the browser redirect and hands over the authorization code
type OAuthCallbackServer struct {
	codeChan chan string
	server   *http.Server
	listener net.Listener
	wg       sync.WaitGroup
}

// NewOAuthCallbackServer creates a new OAuth callback server
func NewOAuthCallbackServer() *OAuthCallbackServer {
	return &OAuthCallbackServer{
		codeChan: make(chan string, 1),
	}
}

// Start listens on addr (for example "localhost:8080"). Port 0 picks a free port.
func (s *OAuthCallbackServer) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = ln

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleCallback)
	s.server = &http.Server{Handler: mux}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			LogError("Callback server error: %v", err)
		}
	}()

	return nil
}

// RedirectURL is the URL the OAuth provider should redirect back to
func (s *OAuthCallbackServer) RedirectURL() string {
	return "http://" + s.listener.Addr().String()
}

func (s *OAuthCallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "No authorization code received", http.StatusBadRequest)
		return
	}

	select {
	case s.codeChan <- code:
	default:
		// a code is already pending
	}

	w.Header().Set("Content-Type", "text/html")
	if _, err := fmt.Fprint(w, `<html><head><title>Authorization Successful</title></head>
<body><h1>Authorization Successful</h1>
<p>You can close this window and return to ytdatascraper.</p></body></html>`); err != nil {
		LogWarning("Failed to write response: %v", err)
	}
}

// WaitForCode blocks until a code arrives or ctx is done
func (s *OAuthCallbackServer) WaitForCode(ctx context.Context) (string, error) {
	select {
	case code := <-s.codeChan:
		return code, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Stop stops the callback server
func (s *OAuthCallbackServer) Stop() error {
	if s.server != nil {
		if err := s.server.Close(); err != nil {
			return fmt.Errorf("failed to stop callback server: %w", err)
		}
		s.wg.Wait()
	}
	return nil
}

// OpenURL opens the specified URL in the default browser
func OpenURL(url string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		return exec.Command("open", url).Start()
	default:
		return fmt.Errorf("cannot open URL %s on this platform", url)
	}
}
