package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	defaultBaseURL   = "https://www.googleapis.com/drive/v3"
	defaultUploadURL = "https://www.googleapis.com/upload/drive/v3"
	defaultRevokeURL = "https://oauth2.googleapis.com/revoke"

	folderMimeType = "application/vnd.google-apps.folder"

	maxAttempts   = 3
	retryBaseWait = 500 * time.Millisecond
)

// Google is a Drive v3 REST client. This is the only component with real
// network latency, so it carries the only timeout/retry logic in the
// system.
type Google struct {
	conf       *oauth2.Config
	refresh    string
	ts         oauth2.TokenSource
	httpClient *http.Client

	baseURL   string
	uploadURL string
	revokeURL string
}

// NewGoogle creates a Drive client from OAuth client credentials and a
// refresh token obtained out of band.
func NewGoogle(clientID, clientSecret, refreshToken string, timeout time.Duration) *Google {
	return &Google{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://accounts.google.com/o/oauth2/auth",
				TokenURL: "https://oauth2.googleapis.com/token",
			},
			Scopes: []string{"https://www.googleapis.com/auth/drive.file"},
		},
		refresh:    refreshToken,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		uploadURL:  defaultUploadURL,
		revokeURL:  defaultRevokeURL,
	}
}

// Authenticate exchanges the refresh token for an access token.
func (g *Google) Authenticate(ctx context.Context) error {
	if g.refresh == "" {
		return ErrNotAuthenticated
	}
	ts := g.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: g.refresh})
	if _, err := ts.Token(); err != nil {
		return fmt.Errorf("drive: obtain token: %w", err)
	}
	g.ts = oauth2.ReuseTokenSource(nil, ts)
	return nil
}

// IsAuthenticated reports whether a token source is held.
func (g *Google) IsAuthenticated() bool {
	return g.ts != nil
}

// EnsureFolder walks the slash-separated path from the drive root,
// looking each segment up by name under its parent and creating it when
// missing. Returns the final folder id.
func (g *Google) EnsureFolder(ctx context.Context, path string) (string, error) {
	if !g.IsAuthenticated() {
		return "", ErrNotAuthenticated
	}

	parent := "root"
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		id, err := g.findFolder(ctx, segment, parent)
		if err != nil {
			return "", err
		}
		if id == "" {
			id, err = g.createFolder(ctx, segment, parent)
			if err != nil {
				return "", err
			}
		}
		parent = id
	}
	return parent, nil
}

// Upload stores data via a multipart/related create call.
func (g *Google) Upload(ctx context.Context, data []byte, name, folderID string) (string, error) {
	if !g.IsAuthenticated() {
		return "", ErrNotAuthenticated
	}

	meta, err := json.Marshal(map[string]interface{}{
		"name":    name,
		"parents": []string{folderID},
	})
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	part, err := mw.CreatePart(metaHeader)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(meta); err != nil {
		return "", err
	}

	mediaHeader := textproto.MIMEHeader{}
	mediaHeader.Set("Content-Type", "image/png")
	part, err = mw.CreatePart(mediaHeader)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	uploadURL := g.uploadURL + "/files?uploadType=multipart"
	contentType := "multipart/related; boundary=" + mw.Boundary()

	var file struct {
		ID string `json:"id"`
	}
	err = g.doJSON(ctx, http.MethodPost, uploadURL, contentType, body.Bytes(), &file)
	if err != nil {
		return "", err
	}
	return file.ID, nil
}

// SignOut revokes the current token and drops the token source.
func (g *Google) SignOut(ctx context.Context) error {
	if !g.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	tok, err := g.ts.Token()
	g.ts = nil
	if err != nil {
		return nil // Nothing usable to revoke.
	}

	form := url.Values{"token": {tok.AccessToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.revokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

func (g *Google) findFolder(ctx context.Context, name, parent string) (string, error) {
	query := fmt.Sprintf("name = '%s' and '%s' in parents and mimeType = '%s' and trashed = false",
		strings.ReplaceAll(name, "'", `\'`), parent, folderMimeType)

	listURL := g.baseURL + "/files?fields=files(id,name)&q=" + url.QueryEscape(query)

	var list struct {
		Files []struct {
			ID string `json:"id"`
		} `json:"files"`
	}
	if err := g.doJSON(ctx, http.MethodGet, listURL, "", nil, &list); err != nil {
		return "", err
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].ID, nil
}

func (g *Google) createFolder(ctx context.Context, name, parent string) (string, error) {
	meta, err := json.Marshal(map[string]interface{}{
		"name":     name,
		"mimeType": folderMimeType,
		"parents":  []string{parent},
	})
	if err != nil {
		return "", err
	}

	var folder struct {
		ID string `json:"id"`
	}
	err = g.doJSON(ctx, http.MethodPost, g.baseURL+"/files", "application/json", meta, &folder)
	if err != nil {
		return "", err
	}
	return folder.ID, nil
}

// doJSON performs an authenticated request with bounded retry on
// transport errors and 5xx responses, decoding the JSON response into out.
func (g *Google) doJSON(ctx context.Context, method, rawURL, contentType string, body []byte, out interface{}) error {
	tok, err := g.ts.Token()
	if err != nil {
		return fmt.Errorf("drive: token: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt-1) * retryBaseWait):
			}
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := g.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("drive: provider error: status %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode >= 400 {
			data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return fmt.Errorf("drive: provider error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("drive: decode response: %w", err)
		}
		return nil
	}
	return lastErr
}
