package mailer

import (
	"bytes"
	_ "embed"
	"html/template"
)

type VerificationParams struct {
	BrandingName string
	Code         string
	ExpiresIn    string // e.g. "10 minutes"
}

var (
	verificationTemplate = template.New("verification")

	//go:embed templates/verification.html
	verificationTemplateRaw string
)

func init() {
	if _, err := verificationTemplate.Parse(verificationTemplateRaw); err != nil {
		panic(err)
	}
}

// RenderVerification renders the verification email body. Values are
// contextually escaped, so a code carrying markup arrives as inert text.
func RenderVerification(p VerificationParams) (string, error) {
	var b bytes.Buffer
	err := verificationTemplate.Execute(&b, p)
	return b.String(), err
}
