package email

import (
	"context"
	"strings"
)

// SendWelcomeEmail greets a newly registered supervisor.
func (c *Client) SendWelcomeEmail(ctx context.Context, to string) error {
	data := map[string]string{
		"SupervisorEmail": to,
		"SupervisorName":  displayName(to),
	}

	return c.SendEmail(ctx, to, "Welcome to Social Scores!", TemplateWelcome, data)
}

// displayName uses the local part of an address as a greeting name.
func displayName(addr string) string {
	if at := strings.IndexByte(addr, '@'); at > 0 {
		return addr[:at]
	}
	return addr
}
