package main

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/go-mail/mail/v2"
)

const resetPasswordTemplate = `{{define "subject"}}Reset your password{{end}}

{{define "plainBody"}}Hi,

A password reset was requested for your account. Use the link below within
one hour to choose a new password:

{{.ResetURL}}

If you did not request this, you can ignore this email.
{{end}}

{{define "htmlBody"}}<html>
<body>
<p>Hi,</p>
<p>A password reset was requested for your account. Use the link below within
one hour to choose a new password:</p>
<p><a href="{{.ResetURL}}">{{.ResetURL}}</a></p>
<p>If you did not request this, you can ignore this email.</p>
</body>
</html>{{end}}`

var resetPasswordTmpl = template.Must(template.New("reset-password").Parse(resetPasswordTemplate))

// emailSender is what handlers depend on; tests substitute a stub so the
// delivery-failure fallback is exercisable without an SMTP server.
type emailSender interface {
	sendPasswordReset(to string, token string) error
}

type mailer struct {
	dialer  *mail.Dialer
	sender  string
	baseURL string
}

func newMailer(host string, port int, username string, password string, sender string, baseURL string) *mailer {
	dialer := mail.NewDialer(host, port, username, password)
	return &mailer{
		dialer:  dialer,
		sender:  sender,
		baseURL: baseURL,
	}
}

func (m *mailer) sendPasswordReset(to string, token string) error {
	data := struct {
		Token    string
		ResetURL string
	}{
		Token:    token,
		ResetURL: fmt.Sprintf("%s/reset-password?token=%s", m.baseURL, token),
	}
	return m.send(to, resetPasswordTmpl, data)
}

func (m *mailer) send(to string, tmpl *template.Template, data any) error {
	var subject bytes.Buffer
	err := tmpl.ExecuteTemplate(&subject, "subject", data)
	if err != nil {
		return err
	}
	var plainBody bytes.Buffer
	err = tmpl.ExecuteTemplate(&plainBody, "plainBody", data)
	if err != nil {
		return err
	}
	var htmlBody bytes.Buffer
	err = tmpl.ExecuteTemplate(&htmlBody, "htmlBody", data)
	if err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", to)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	for i := 0; i < 3; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			break
		}
	}
	return err
}
