package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/harvey-allen/credit-risk-app/internal/config"
	"github.com/harvey-allen/credit-risk-app/internal/creditform"
	"github.com/harvey-allen/credit-risk-app/internal/utils"
)

const receiptEmailHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Your credit score</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif; line-height: 1.6; color: #333; background-color: #f8f9fa; margin: 0; padding: 20px; }
  .container { max-width: 500px; margin: auto; background: #ffffff; border: 1px solid #e9ecef; border-radius: 8px; overflow: hidden; }
  .header { background-color: #1f4e79; color: white; padding: 20px; text-align: center; }
  .score { font-size: 32px; font-weight: bold; text-align: center; margin: 20px 0; }
  .content { padding: 30px; }
  .footer { background-color: #f8f9fa; padding: 20px; text-align: center; font-size: 12px; color: #6c757d; }
</style>
</head>
<body>
  <div class="container">
    <div class="header"><h1>Credit Parameters Form</h1></div>
    <div class="content">
      <p>Hello %s,</p>
      <p>Your application was scored. Your credit score is:</p>
      <div class="score">%s</div>
    </div>
    <div class="footer">Sent %s</div>
  </div>
</body>
</html>`

var ErrInvalidRecipient = errors.New("invalid_recipient")

// ReceiptService emails the applicant after a successful submission.
type ReceiptService interface {
	SendScoreReceipt(ctx context.Context, app creditform.Application, score *creditform.ScoreResult) error
	Enabled() bool
}

type sendgridReceiptService struct {
	cfg            *config.Config
	sendgridClient *sendgrid.Client
}

type noopReceiptService struct{}

// NewReceiptService returns a SendGrid-backed service when the
// send_score_receipt flag is on, and a no-op one otherwise.
func NewReceiptService(cfg *config.Config) ReceiptService {
	if !cfg.LDFlag_SendScoreReceipt {
		return noopReceiptService{}
	}
	return &sendgridReceiptService{
		cfg:            cfg,
		sendgridClient: sendgrid.NewSendClient(cfg.SendgridAPIKey),
	}
}

func (noopReceiptService) SendScoreReceipt(context.Context, creditform.Application, *creditform.ScoreResult) error {
	return nil
}

func (noopReceiptService) Enabled() bool { return false }

func (s *sendgridReceiptService) Enabled() bool { return true }

func (s *sendgridReceiptService) SendScoreReceipt(
	ctx context.Context,
	app creditform.Application,
	score *creditform.ScoreResult,
) error {
	ok, err := utils.ValidateEmail(ctx, s.cfg.SendgridAPIKey, app.User, s.cfg.LDFlag_ValidateEmailWithSG)
	if err != nil {
		return fmt.Errorf("validate recipient: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidRecipient, app.User)
	}

	from := mail.NewEmail(s.cfg.AppName, s.cfg.SendgridFromEmail)
	to := mail.NewEmail(app.Name, app.User)

	subject := "Your credit score: " + score.Display()
	plainTextContent := fmt.Sprintf("Hello %s,\n\nYour credit score is %s.\n", app.Name, score.Display())
	htmlContent := fmt.Sprintf(
		receiptEmailHTML,
		html.EscapeString(app.Name),
		html.EscapeString(score.Display()),
		time.Now().UTC().Format(time.RFC1123Z),
	)

	msg := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	resp, err := s.sendgridClient.Send(msg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid responded %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
