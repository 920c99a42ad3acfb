package templates

import (
	"bytes"
	"html/template"
)

type NotificationType string

const (
	NotificationTypeApproval NotificationType = "approval"
	NotificationTypeHandover NotificationType = "handover"
	NotificationTypeSupport  NotificationType = "support"
)

type NotificationEmailData struct {
	RecipientName    string
	NotificationType NotificationType
	Heading          string
	Lines            []string
	ActionLink       string
	ActionLabel      string
}

const notificationHTML = `
<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8"/>
  <title>YardSync Notification</title>
  <style>
    body {
      margin: 0;
      padding: 0;
      font-family: Arial, sans-serif;
      background-color: #f5f5f5;
      color: #333;
    }
    .email-container {
      width: 100%;
      max-width: 600px;
      margin: 0 auto;
      background-color: #ffffff;
      border-radius: 6px;
      overflow: hidden;
      box-shadow: 0 2px 5px rgba(0,0,0,0.1);
    }
    .header {
      background-color: #333;
      padding: 20px;
      text-align: center;
      color: #fff;
    }
    .header h1 {
      margin: 10px 0 0;
      font-size: 24px;
    }
    .content {
      padding: 20px;
      text-align: left;
    }
    .button-container {
      text-align: center;
      margin: 20px 0;
    }
    .cta-button {
      display: inline-block;
      padding: 12px 24px;
      background-color: #333;
      color: #ffffff;
      text-decoration: none;
      border-radius: 4px;
      font-weight: bold;
    }
    .footer {
      font-size: 12px;
      color: #999;
      text-align: center;
      padding: 10px 20px;
    }
    .highlight {
      font-weight: bold;
      color: #333;
    }
  </style>
</head>
<body>
  <table class="email-container" role="presentation" cellspacing="0" cellpadding="0">
    <tr>
      <td>
        <!-- HEADER SECTION -->
        <div class="header">
          <h1>{{.Heading}}</h1>
        </div>

        <!-- BODY CONTENT -->
        <div class="content">
          {{if .RecipientName}}
            <p>Hi <span class="highlight">{{.RecipientName}}</span>,</p>
          {{else}}
            <p>Hello,</p>
          {{end}}

          {{range .Lines}}
            <p>{{.}}</p>
          {{end}}

          {{if .ActionLink}}
            <div class="button-container">
              <a class="cta-button" href="{{.ActionLink}}">{{.ActionLabel}}</a>
            </div>
          {{end}}
        </div>

        <!-- FOOTER SECTION -->
        <div class="footer">
          <p>&copy; 2026 YardSync Inc. All rights reserved.</p>
        </div>
      </td>
    </tr>
  </table>
</body>
</html>
`

func RenderNotificationHTML(data NotificationEmailData) (string, error) {
	tmpl, err := template.New("notification").Parse(notificationHTML)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
