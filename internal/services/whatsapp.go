package services

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
)

// WhatsAppService pushes operator alerts through the Twilio Messages API.
type WhatsAppService struct {
	accountSID string
	authToken  string
	from       string
	to         string
}

// NewWhatsAppService creates a new WhatsAppService.
func NewWhatsAppService(accountSID, authToken, from, to string) *WhatsAppService {
	return &WhatsAppService{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		to:         to,
	}
}

// Send delivers a message to the configured operator number.
func (s *WhatsAppService) Send(text string) error {
	if s.accountSID == "" || s.authToken == "" {
		log.Println("[WhatsApp] Twilio credentials not configured")
		return nil
	}
	if s.to == "" {
		log.Println("[WhatsApp] Operator number not configured")
		return nil
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.accountSID)

	form := url.Values{}
	form.Set("From", s.from)
	form.Set("To", s.to)
	form.Set("Body", text)

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("[WhatsApp] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("[WhatsApp] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("twilio returned status %d", resp.StatusCode)
	}

	return nil
}
