package mailer

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	SenderName          = "Apula"
	VerificationSubject = "Your Apula Verification Code"
	codeExpiresIn       = "10 minutes"
)

// NewVerificationMessage composes the verification email for to. The sender
// address always comes from configuration, never from the request.
func NewVerificationMessage(from, to, code string) (Message, error) {
	body, err := RenderVerification(VerificationParams{
		BrandingName: SenderName,
		Code:         code,
		ExpiresIn:    codeExpiresIn,
	})
	if err != nil {
		return Message{}, fmt.Errorf("render verification email: %w", err)
	}

	return Message{
		ID:       uuid.NewString(),
		From:     from,
		FromName: SenderName,
		To:       to,
		Subject:  VerificationSubject,
		HTMLBody: body,
	}, nil
}
