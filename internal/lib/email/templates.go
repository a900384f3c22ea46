// Package email renders and sends transactional emails through Resend.
package email

type Template string

const (
	TemplateWelcome Template = "welcome"
)
