package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harvey-allen/credit-risk-app/internal/config"
	"github.com/harvey-allen/credit-risk-app/internal/creditform"
)

func TestNewReceiptServiceHonoursFlag(t *testing.T) {
	off := NewReceiptService(&config.Config{})
	require.False(t, off.Enabled())
	require.NoError(t, off.SendScoreReceipt(context.Background(), sampleApplication(), nil))

	on := NewReceiptService(&config.Config{
		LDFlag_SendScoreReceipt: true,
		SendgridAPIKey:          "SG.test",
		SendgridFromEmail:       "no-reply@example.com",
	})
	require.True(t, on.Enabled())
}

func TestReceiptRejectsBadRecipient(t *testing.T) {
	svc := NewReceiptService(&config.Config{
		LDFlag_SendScoreReceipt: true,
		SendgridAPIKey:          "SG.test",
		SendgridFromEmail:       "no-reply@example.com",
	})

	app := sampleApplication()
	app.User = "not-an-address"
	err := svc.SendScoreReceipt(context.Background(), app, &creditform.ScoreResult{CreditScore: "700"})
	require.ErrorIs(t, err, ErrInvalidRecipient)
}
