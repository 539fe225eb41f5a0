package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SMSGatewayMessenger delivers texts through an HTTP SMS gateway. The `to`
// address is a phone number in whatever format the gateway accepts.
type SMSGatewayMessenger struct {
	APIKey    string
	SecretKey string
	URL       string
	HTTP      *http.Client
}

type smsGatewayResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func NewSMSGatewayMessenger(apiKey, secretKey, url string) *SMSGatewayMessenger {
	return &SMSGatewayMessenger{
		APIKey:    apiKey,
		SecretKey: secretKey,
		URL:       url,
		HTTP:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *SMSGatewayMessenger) Send(ctx context.Context, to, message string) error {
	payload := map[string]interface{}{
		"phone":   to,
		"message": message,
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.URL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api_key", m.APIKey)
	req.Header.Set("secret_key", m.SecretKey)

	resp, err := m.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway failed with status %d", resp.StatusCode)
	}

	var gwResp smsGatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&gwResp); err != nil {
		return err
	}
	if gwResp.Code != "000" {
		return fmt.Errorf("sms gateway error: %s", gwResp.Detail)
	}
	return nil
}
