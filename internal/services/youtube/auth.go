package youtube

import (
	"context"
	"fmt"
	"os"

	"github.com/gnzdotmx/ytdatascraper/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// captions.download only answers requests authorized by a channel-scoped OAuth token
var requiredScopes = []string{
	"https://www.googleapis.com/auth/youtube.force-ssl",
}

const (
	// TokenName is the key the OAuth token is cached under
	TokenName    = "youtube"
	callbackAddr = "localhost:8080"
)

// NewOAuthClient creates a client authorized with an installed-app OAuth flow.
// A cached token in tokenDir is reused; otherwise the browser consent flow runs once.
func NewOAuthClient(ctx context.Context, credentialsPath, tokenDir string, opts ...option.ClientOption) (*Client, error) {
	credentialsPath, err := utils.ExpandHomeDir(credentialsPath)
	if err != nil {
		return nil, err
	}

	credentials, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(credentials, requiredScopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OAuth config: %w", err)
	}

	tokenStorage, err := utils.NewTokenStorage(tokenDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token storage: %w", err)
	}

	token, err := tokenStorage.LoadToken(TokenName)
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	// An expired access token with a refresh token is refreshed by the token source.
	if token == nil || (!token.Valid() && token.RefreshToken == "") {
		token, err = authorize(ctx, config)
		if err != nil {
			return nil, err
		}
		if err := tokenStorage.SaveToken(TokenName, token); err != nil {
			utils.LogWarning("Failed to save token: %v", err)
		}
	} else {
		utils.LogVerbose("Using existing authorization token")
	}

	opts = append([]option.ClientOption{option.WithTokenSource(config.TokenSource(ctx, token))}, opts...)
	return NewClient(ctx, opts...)
}

// authorize runs the browser consent flow against a local callback server
func authorize(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	callbackServer := utils.NewOAuthCallbackServer()
	if err := callbackServer.Start(callbackAddr); err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}
	defer func() {
		if err := callbackServer.Stop(); err != nil {
			utils.LogWarning("Failed to stop callback server: %v", err)
		}
	}()

	config.RedirectURL = callbackServer.RedirectURL()
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	utils.LogInfo("Authorize access in your browser: %s", authURL)
	if err := utils.OpenURL(authURL); err != nil {
		utils.LogWarning("Failed to open browser, open the URL above manually: %v", err)
	}

	code, err := callbackServer.WaitForCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("authorization aborted: %w", err)
	}

	token, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}
