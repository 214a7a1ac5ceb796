package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/mail"
	"strings"

	"github.com/sendgrid/sendgrid-go"
)

const sendgridHost = "https://api.sendgrid.com"

// isValidEmailSyntax does RFC 5322 syntax only, no DNS.
func isValidEmailSyntax(e string) bool {
	addr, err := mail.ParseAddress(e)
	return err == nil && addr.Address == e
}

func hasMX(ctx context.Context, domain string) bool {
	mx, err := net.DefaultResolver.LookupMX(ctx, domain)
	return err == nil && len(mx) > 0
}

// ValidateEmail reports whether email is worth sending to:
//
//   - the string parses as a bare address, AND
//   - its domain has an MX record, AND
//   - when validateWithSendGrid is set, SendGrid's verdict is "Valid" or "Risky".
//
// SendGrid and network errors are returned so the caller can decide.
func ValidateEmail(ctx context.Context, apiKey string, email string, validateWithSendGrid bool) (bool, error) {
	if !isValidEmailSyntax(email) {
		return false, nil
	}

	parts := strings.SplitN(email, "@", 2)
	if len(parts) != 2 || !hasMX(ctx, parts[1]) {
		return false, nil
	}
	if !validateWithSendGrid {
		return true, nil
	}

	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return false, err
	}
	req := sendgrid.GetRequest(apiKey, "/v3/validations/email", sendgridHost)
	req.Method = "POST"
	req.Body = body

	resp, err := sendgrid.API(req)
	if err != nil {
		return false, err
	}

	switch resp.StatusCode {
	case 200:
		var sg struct {
			Result struct {
				Verdict string `json:"verdict"`
			} `json:"result"`
		}
		if err := json.Unmarshal([]byte(resp.Body), &sg); err != nil {
			return false, fmt.Errorf("sendgrid JSON decode: %w", err)
		}
		verdict := strings.ToLower(sg.Result.Verdict)
		return verdict == "valid" || verdict == "risky", nil
	case 400:
		return false, nil
	default:
		return false, fmt.Errorf("sendgrid validation failed: status %d: %s", resp.StatusCode, resp.Body)
	}
}
