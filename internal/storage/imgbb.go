// Package storage integrates the external blob store that hosts user
// photos. The store is opaque to the rest of the app: it receives bytes
// and returns a retrievable URL, which is persisted verbatim in the
// foto column.
package storage

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/xid"
)

// Uploader sends a blob to the external store and returns its public
// URL. Handlers depend on this interface; tests inject a fake.
type Uploader interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

const imgbbEndpoint = "https://api.imgbb.com/1/upload"

// ImgBB uploads images to the ImgBB hosting API using the configured
// public key.
type ImgBB struct {
	key      string
	endpoint string
	client   *http.Client
}

// NewImgBB creates an ImgBB client. The key comes from configuration
// (IMGBB_API_KEY); an empty key disables uploads at the server wiring
// level, not here.
func NewImgBB(key string) *ImgBB {
	return &ImgBB{
		key:      key,
		endpoint: imgbbEndpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// newImgBBForTest points the client at a test server.
func newImgBBForTest(key, endpoint string) *ImgBB {
	return &ImgBB{key: key, endpoint: endpoint, client: http.DefaultClient}
}

// imgbbResponse is the subset of the API response we consume.
type imgbbResponse struct {
	Success bool `json:"success"`
	Data    struct {
		DisplayURL string `json:"display_url"`
	} `json:"data"`
}

// Upload posts the image base64-encoded and returns the display URL.
// When name is empty a fresh xid keeps upload names unique.
func (i *ImgBB) Upload(ctx context.Context, name string, data []byte) (string, error) {
	if name == "" {
		name = xid.New().String()
	}

	form := url.Values{}
	form.Set("key", i.key)
	form.Set("name", name)
	form.Set("image", base64.StdEncoding.EncodeToString(data))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("storage: montando upload: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := i.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage: enviando imagem: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage: blob store retornou status %d", resp.StatusCode)
	}

	var body imgbbResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("storage: decodificando resposta do blob store: %w", err)
	}
	if !body.Success || body.Data.DisplayURL == "" {
		return "", fmt.Errorf("storage: blob store não retornou URL")
	}

	return body.Data.DisplayURL, nil
}
