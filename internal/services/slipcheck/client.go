package slipcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"
)

type httpClient struct {
	baseURL   string
	partnerID string
	clientID  string
	clientKey string
	hmacKey   string

	// accessToken authenticates calls to the verification backend.
	accessToken string

	// mu guards accessToken.
	mu sync.Mutex

	// toggleTokenRefresher wakes the refresh loop after a 401.
	toggleTokenRefresher chan struct{}

	hc *http.Client
}

func newHTTPClient(c *Config) *httpClient {
	return &httpClient{
		baseURL:   c.BaseURL,
		partnerID: c.PartnerID,
		clientID:  c.ClientID,
		clientKey: c.ClientKey,
		hmacKey:   c.HMACKey,

		// make a buffered channel to avoid blocking.
		toggleTokenRefresher: make(chan struct{}, 1),

		hc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// notifyAccessTokenExpired renews the token periodically and on demand,
// reconnecting with exponential backoff.
func (c *httpClient) notifyAccessTokenExpired(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Minute)
	for {
		select {
		case <-ctx.Done():
			ticker.Stop()
			return

		case <-ticker.C:

		case <-c.toggleTokenRefresher:
			log.Println("slipcheck: token refresh requested")
		}

		backOff := time.Second

	Retry:
		for {
			token, err := c.connect(ctx)
			switch err {
			case nil:
				c.setAccessToken(token)

				break Retry

			default:
				log.Printf("slipcheck: reconnect: %v", err)
				select {
				case <-ctx.Done():
					return

				case <-time.After(backOff):
					backOff *= 2
				}
			}
		}
	}
}

func (c *httpClient) setAccessToken(accessToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = accessToken
}

func (c *httpClient) getAccessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

// connect authenticates with the verification backend.
func (c *httpClient) connect(ctx context.Context) (string, error) {
	number, err := randomNumber()
	if err != nil {
		return "", fmt.Errorf("slipcheck connect: randomNumber: %v", err)
	}

	body := fmt.Sprintf(`{"requestId":%q,"partnerId":%q,"clientId":%q,"clientSecret":%q}`,
		number, c.partnerID, c.clientID, c.clientKey)
	bodyReader := bytes.NewReader([]byte(body))

	base, _ := url.Parse(c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", base.String(), "/api/v1/authenticate"), bodyReader)
	if err != nil {
		return "", fmt.Errorf("slipcheck connect: http.NewReq: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("SignedHash", Hmac256([]byte(body), []byte(c.hmacKey)))

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("slipcheck connect: http.Do: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.toggleTokenRefresher <- struct{}{}
		return "", errors.New("slipcheck connect: 401 Unauthorized")
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("slipcheck connect: unexpected status %d", resp.StatusCode)
	}

	var reply struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Data    struct {
			AccessToken string `json:"accessToken"`
			TokenType   string `json:"tokenType"`
		} `json:"data"`
	}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&reply); err != nil {
		return "", fmt.Errorf("slipcheck connect: json.Decode: %v", err)
	}
	if reply.Status != "OK" {
		return "", fmt.Errorf("slipcheck connect: reply.Status: %v, reply.Message: %v", reply.Status, reply.Message)
	}

	return fmt.Sprintf("%s %s", reply.Data.TokenType, reply.Data.AccessToken), nil
}

// verifySlip submits one slip for verification.
func (c *httpClient) verifySlip(ctx context.Context, f *FormVerify) (string, error) {
	number, err := randomNumber()
	if err != nil {
		return "", fmt.Errorf("verifySlip: randomNumber: %v", err)
	}

	body := fmt.Sprintf(`{"requestId":%q,"partnerId":%q,"slipUrl":%q,"txnAmount":%s,"referenceLabel":%q}`,
		number, c.partnerID, f.SlipURL, f.Amount, f.ReferenceLabel)
	bodyReader := bytes.NewReader([]byte(body))

	base, _ := url.Parse(c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", base.String(), "/api/v1/verifySlip"), bodyReader)
	if err != nil {
		return "", fmt.Errorf("verifySlip: http.NewReq: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("SignedHash", Hmac256([]byte(body), []byte(c.hmacKey)))
	req.Header.Set("Authorization", c.getAccessToken())

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("verifySlip: http.Do: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.toggleTokenRefresher <- struct{}{}
		return "", errors.New("verifySlip: 401 Unauthorized")
	}

	var reply struct {
		Message string `json:"message"`
		Status  string `json:"status"`
		Data    struct {
			Reference string `json:"reference"`
		} `json:"data"`
	}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&reply); err != nil {
		return "", fmt.Errorf("verifySlip: json.Decode: %w", err)
	}
	if reply.Status != "OK" {
		return "", fmt.Errorf("verifySlip: reply.Status: %v, reply.Message: %v", reply.Status, reply.Message)
	}

	return reply.Data.Reference, nil
}
