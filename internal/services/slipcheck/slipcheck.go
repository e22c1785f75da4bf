// Package slipcheck integrates with an external payment-slip
// verification API. The reservation flow submits uploaded slips here;
// confirmations come back asynchronously over PubNub and admins still
// review every slip manually, so all calls are best effort.
package slipcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	pubnub "github.com/pubnub/go/v7"
	"github.com/shopspring/decimal"
)

type Config struct {
	Enabled   bool   `json:"enabled" mapstructure:"enabled"`
	BaseURL   string `json:"baseUrl" mapstructure:"base_url"`
	PartnerID string `json:"partnerId" mapstructure:"partner_id"`
	ClientID  string `json:"clientId" mapstructure:"client_id"`
	ClientKey string `json:"clientKey" mapstructure:"client_key"`
	HMACKey   string `json:"hmacKey" mapstructure:"hmac_key"`

	PNSubKey  string `json:"pn_subkey" mapstructure:"pn_subkey"`
	PNUUID    string `json:"pn_uuid" mapstructure:"pn_uuid"`
	PNChannel string `json:"pn_channel" mapstructure:"pn_channel"`

	// bcrypt hash of the shared webhook secret.
	WebhookSecretHash string `json:"webhookSecretHash" mapstructure:"webhook_secret_hash"`
}

// FormVerify is one verification request.
type FormVerify struct {
	SlipURL        string
	Amount         decimal.Decimal
	ReferenceLabel string
}

// Confirmation is the asynchronous result pushed by the provider.
type Confirmation struct {
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	Payer     string          `json:"payer"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

type Client struct {
	cfg  Config
	http *httpClient

	pn  *pubnub.PubNub
	lis *pubnub.Listener
	ch  chan *Confirmation
}

// New connects to the verification backend and, when a PubNub channel
// is configured, subscribes for confirmation events. A disabled config
// returns a client whose Enabled() is false and whose Verify is a
// no-op error.
func New(ctx context.Context, cfg Config) (*Client, error) {
	c := &Client{cfg: cfg}
	if !cfg.Enabled {
		return c, nil
	}

	c.http = newHTTPClient(&cfg)

	token, err := c.http.connect(ctx)
	if err != nil {
		return nil, err
	}
	c.http.setAccessToken(token)

	go c.http.notifyAccessTokenExpired(ctx)

	if cfg.PNSubKey != "" && cfg.PNChannel != "" {
		pnCfg := pubnub.NewConfigWithUserId(pubnub.UserId(cfg.PNUUID))
		pnCfg.SubscribeKey = cfg.PNSubKey

		c.pn = pubnub.NewPubNub(pnCfg)
		c.lis = pubnub.NewListener()
		c.pn.AddListener(c.lis)
		c.pn.Subscribe().Channels([]string{cfg.PNChannel}).Execute()

		go c.processSubscription(ctx)
	}

	return c, nil
}

func (c *Client) Enabled() bool {
	return c != nil && c.cfg.Enabled
}

// SetConfirmationChannel registers the channel asynchronous
// confirmations are delivered on.
func (c *Client) SetConfirmationChannel(ch chan *Confirmation) {
	c.ch = ch
}

// Verify submits a slip and returns the provider's reference id.
func (c *Client) Verify(ctx context.Context, f *FormVerify) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("slipcheck: disabled")
	}
	return c.http.verifySlip(ctx, f)
}

func (c *Client) processSubscription(ctx context.Context) {
	for {
		select {
		case st := <-c.lis.Status:
			switch st.Category {
			case pubnub.PNConnectedCategory:
				log.Println("slipcheck: connected to pubnub")
			case pubnub.PNReconnectedCategory:
				log.Println("slipcheck: reconnected to pubnub")
			case pubnub.PNDisconnectedCategory:
				log.Println("slipcheck: disconnected from pubnub")
			default:
				log.Printf("slipcheck: pubnub status %v", st.Category)
			}

		case message := <-c.lis.Message:
			raw, ok := message.Message.(string)
			if !ok {
				continue
			}

			var conf Confirmation
			dec := json.NewDecoder(strings.NewReader(raw))
			if err := dec.Decode(&conf); err != nil {
				log.Printf("slipcheck: decode confirmation: %v", err)
				continue
			}

			if c.ch != nil {
				c.ch <- &conf
			}

		case <-ctx.Done():
			log.Println("slipcheck: close subscribe")
			return
		}
	}
}

// VerifyWebhookSecret checks a webhook caller's shared secret against
// the configured bcrypt hash.
func (c *Client) VerifyWebhookSecret(secret string) bool {
	if c.cfg.WebhookSecretHash == "" {
		return false
	}
	return CompareHash([]byte(c.cfg.WebhookSecretHash), []byte(secret))
}

// VerifyCallbackSignature checks a callback's SignedHash header against
// the shared HMAC key, mirroring how outbound requests are signed.
func (c *Client) VerifyCallbackSignature(body []byte, signature string) bool {
	if c.cfg.HMACKey == "" {
		return false
	}
	return VerifySignature(body, []byte(c.cfg.HMACKey), signature)
}
