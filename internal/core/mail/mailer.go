package mail

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer 外发邮件。非关键路径的发送失败由调用方决定是否吞掉。
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewSMTP(host string, port int, username, password, from string) *SMTP {
	if from == "" {
		from = username
	}
	return &SMTP{Host: host, Port: port, Username: username, Password: password, From: from}
}

func (m *SMTP) Send(to, subject, body string) error {
	if m.Host == "" {
		return fmt.Errorf("smtp host not configured")
	}
	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")
	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	return smtp.SendMail(addr, auth, m.From, []string{to}, []byte(msg))
}
