package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"capturehub/config"

	"gopkg.in/gomail.v2"
)

// Embedded email templates
var emailTemplates = map[string]string{
	"reminder": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.LeadTitle}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #2c3e50; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        .content { margin: 20px 0; }
        .due { font-size: 18px; font-weight: bold; color: #3498db; margin: 20px 0; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h2>Upcoming Activity Reminder</h2>
    </div>

    <div class="content">
        <p>Hello,</p>
        <p>Your <strong>{{.ActivityType}}</strong> for <strong>{{.LeadTitle}}</strong> is coming up.</p>
        <div class="due">Due {{.DueDate.Format "Jan 2, 2006 at 3:04 PM"}}</div>
        {{if .Note}}<p>Note: {{.Note}}</p>{{end}}
    </div>

    <div class="footer">
        <p>© {{.Year}} CaptureHub. All rights reserved.</p>
    </div>
</body>
</html>`,

	"urgent": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.LeadTitle}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #2c3e50; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        .content { margin: 20px 0; }
        .due { font-size: 18px; font-weight: bold; color: #e74c3c; margin: 20px 0; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h2>⏰ Activity Due Within the Hour</h2>
    </div>

    <div class="content">
        <p>Hello,</p>
        <p>Your <strong>{{.ActivityType}}</strong> for <strong>{{.LeadTitle}}</strong> is due within the next hour.</p>
        <div class="due">Due {{.DueDate.Format "Jan 2, 2006 at 3:04 PM"}}</div>
        {{if .Note}}<p>Note: {{.Note}}</p>{{end}}
    </div>

    <div class="footer">
        <p>© {{.Year}} CaptureHub. All rights reserved.</p>
    </div>
</body>
</html>`,

	"digest": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Daily Agenda</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { color: #2c3e50; border-bottom: 1px solid #eee; padding-bottom: 10px; }
        .content { margin: 20px 0; }
        .item { padding: 8px 0; border-bottom: 1px solid #f0f0f0; }
        .kind { display: inline-block; min-width: 90px; font-weight: bold; color: #3498db; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h2>Your Agenda for {{.Date}}</h2>
    </div>

    <div class="content">
        {{range .Items}}
        <div class="item">
            <span class="kind">{{.Kind}}</span>
            {{.Title}} — {{.When.Format "Jan 2, 3:04 PM"}}
        </div>
        {{end}}
    </div>

    <div class="footer">
        <p>© {{.Year}} CaptureHub. All rights reserved.</p>
    </div>
</body>
</html>`,
}

// ReminderEmailData fills the reminder and urgent templates
type ReminderEmailData struct {
	LeadTitle    string
	ActivityType string
	Note         string
	DueDate      time.Time
	Year         int
}

// DigestItem is one line of the daily agenda email
type DigestItem struct {
	Kind  string // Activity, RFP Date, Award Date, Close Date, Event
	Title string
	When  time.Time
}

// DigestEmailData fills the digest template
type DigestEmailData struct {
	Date  string
	Items []DigestItem
	Year  int
}

// Mailer sends transactional mail over SMTP
type Mailer struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
	fromName  string
}

func NewMailer(cfg config.Config) *Mailer {
	return &Mailer{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

func (m *Mailer) SendActivityReminder(to string, data ReminderEmailData) error {
	data.Year = time.Now().Year()
	subject := fmt.Sprintf("Reminder: %s for %s due soon", data.ActivityType, data.LeadTitle)
	return m.send(to, subject, "reminder", data)
}

func (m *Mailer) SendUrgentReminder(to string, data ReminderEmailData) error {
	data.Year = time.Now().Year()
	subject := fmt.Sprintf("Urgent: %s for %s due within 1 hour", data.ActivityType, data.LeadTitle)
	return m.send(to, subject, "urgent", data)
}

func (m *Mailer) SendDailyDigest(to string, data DigestEmailData) error {
	data.Year = time.Now().Year()
	subject := fmt.Sprintf("Your CaptureHub agenda for %s", data.Date)
	return m.send(to, subject, "digest", data)
}

func (m *Mailer) send(to, subject, templateName string, data interface{}) error {
	tmplContent, ok := emailTemplates[templateName]
	if !ok {
		return fmt.Errorf("template '%s' not found", templateName)
	}

	tmpl, err := template.New("email").Parse(tmplContent)
	if err != nil {
		return fmt.Errorf("error parsing template: %v", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("error executing template: %v", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}

	return nil
}
