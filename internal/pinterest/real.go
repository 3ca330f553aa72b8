package pinterest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pinspire/pkg/apierror"
)

// RealClient talks to the Pinterest v5 REST API.
type RealClient struct {
	creds      Credentials
	httpClient *http.Client
	apiBaseURL string
	authURL    string
	tokenURL   string
}

func NewClient(creds Credentials) *RealClient {
	return &RealClient{
		creds: creds,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiBaseURL: defaultAPIBaseURL,
		authURL:    defaultAuthURL,
		tokenURL:   defaultTokenURL,
	}
}

func (c *RealClient) IsMock() bool { return false }

func (c *RealClient) AuthorizationURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.creds.AppID)
	params.Set("redirect_uri", c.creds.RedirectURI)
	params.Set("response_type", "code")
	params.Set("scope", oauthScope)
	params.Set("state", state)
	return c.authURL + "?" + params.Encode()
}

func (c *RealClient) ExchangeCode(ctx context.Context, code string) (TokenBundle, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.creds.RedirectURI)
	return c.requestToken(ctx, form)
}

func (c *RealClient) RefreshToken(ctx context.Context, refreshToken string) (TokenBundle, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	return c.requestToken(ctx, form)
}

func (c *RealClient) requestToken(ctx context.Context, form url.Values) (TokenBundle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return TokenBundle{}, fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(c.creds.AppID, c.creds.AppSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return TokenBundle{}, fmt.Errorf("send token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return TokenBundle{}, upstreamError("pinterest token request failed", resp)
	}

	var bundle TokenBundle
	if err := json.NewDecoder(resp.Body).Decode(&bundle); err != nil {
		return TokenBundle{}, fmt.Errorf("decode token response: %w", err)
	}
	return bundle, nil
}

type boardsEnvelope struct {
	Items []Board `json:"items"`
}

// ListBoards consumes only the first page of the paginated envelope.
func (c *RealClient) ListBoards(ctx context.Context, accessToken string) ([]Board, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+"/boards", nil)
	if err != nil {
		return nil, fmt.Errorf("build boards request: %w", err)
	}
	setBearer(req, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send boards request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, upstreamError("pinterest boards request failed", resp)
	}

	var envelope boardsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode boards response: %w", err)
	}
	return envelope.Items, nil
}

type mediaSource struct {
	SourceType string `json:"source_type"`
	URL        string `json:"url"`
}

type createPinPayload struct {
	BoardID     string      `json:"board_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Link        string      `json:"link,omitempty"`
	MediaSource mediaSource `json:"media_source"`
}

type createPinResponse struct {
	ID          string `json:"id"`
	BoardID     string `json:"board_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

func (c *RealClient) CreatePin(ctx context.Context, accessToken string, pin PinRequest) (Pin, error) {
	payload := createPinPayload{
		BoardID:     pin.BoardID,
		Title:       pin.Title,
		Description: pin.Description,
		Link:        pin.Link,
		MediaSource: mediaSource{SourceType: "image_url", URL: pin.ImageURL},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Pin{}, fmt.Errorf("marshal pin payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBaseURL+"/pins", bytes.NewReader(body))
	if err != nil {
		return Pin{}, fmt.Errorf("build pin request: %w", err)
	}
	setBearer(req, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Pin{}, fmt.Errorf("send pin request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return Pin{}, upstreamError("pinterest pin creation failed", resp)
	}

	var created createPinResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return Pin{}, fmt.Errorf("decode pin response: %w", err)
	}
	return Pin{
		ID:          created.ID,
		BoardID:     created.BoardID,
		Title:       created.Title,
		Description: created.Description,
		Link:        created.Link,
		ImageURL:    pin.ImageURL,
	}, nil
}

func (c *RealClient) AccountInfo(ctx context.Context, accessToken string) (AccountInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+"/user_account", nil)
	if err != nil {
		return AccountInfo{}, fmt.Errorf("build account request: %w", err)
	}
	setBearer(req, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return AccountInfo{}, fmt.Errorf("send account request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return AccountInfo{}, upstreamError("pinterest account request failed", resp)
	}

	var info AccountInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return AccountInfo{}, fmt.Errorf("decode account response: %w", err)
	}
	return info, nil
}

func setBearer(req *http.Request, accessToken string) {
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
}

func upstreamError(message string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
	return apierror.Upstream(fmt.Sprintf("%s: status %d", message, resp.StatusCode), string(body))
}
