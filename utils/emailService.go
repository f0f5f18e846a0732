package utils

import (
	"context"
	"ecommerce/models"
	"fmt"
	"html"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// OrderMailer e-mails the buyer an HTML confirmation for every placed order. An empty sender
// turns it into a no-op.
type OrderMailer struct {
	db       *gorm.DB
	log      *zap.Logger
	from     string
	password string
	host     string
	port     string
	send     sendMailFunc
}

func NewOrderMailer(db *gorm.DB, log *zap.Logger, from, password, host, port string) *OrderMailer {
	return &OrderMailer{
		db:       db,
		log:      log.Named("orderMailer"),
		from:     from,
		password: password,
		host:     host,
		port:     port,
		send:     smtp.SendMail,
	}
}

func (m *OrderMailer) OrderPlaced(ctx context.Context, order *models.Order) error {
	if m.from == "" {
		return nil
	}

	var buyer models.User
	if err := m.db.WithContext(ctx).First(&buyer, order.UserID).Error; err != nil {
		return fmt.Errorf("load buyer %d: %w", order.UserID, err)
	}

	subject := fmt.Sprintf("Order %s confirmed", order.Number)
	return m.SendEmail([]string{buyer.Email}, subject, orderConfirmationBody(buyer.Name, order))
}

// SendEmail sends an HTML message through the configured SMTP relay.
func (m *OrderMailer) SendEmail(to []string, subject string, htmlBody string) error {
	msg := "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	msg += fmt.Sprintf("From: E-commerce <%s>\r\n", m.from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	if err := m.send(m.host+":"+m.port, auth, m.from, to, []byte(msg)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Debug("Email sent", zap.Strings("to", to), zap.String("subject", subject))
	return nil
}

func orderConfirmationBody(name string, order *models.Order) string {
	var rows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows, "<tr><td>#%d</td><td>%d</td><td>%.2f</td><td>%.2f</td></tr>",
			item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice)
	}

	content := fmt.Sprintf(`
		<h2>Thanks for your order, %s!</h2>
		<p>Order <strong>%s</strong> has been received and is %s.</p>
		<table>
			<tr><th>Product</th><th>Qty</th><th>Unit price</th><th>Total</th></tr>
			%s
		</table>
		<div class="info-box"><strong>Order total:</strong> %.2f</div>`,
		html.EscapeString(name), order.Number, order.Status, rows.String(), order.TotalAmount)
	return getEmailTemplate("Order confirmation", content)
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; }
			.header { background-color: #1F2937; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; }
			.content { padding: 40px 30px; color: #1F2937; line-height: 1.6; }
			.info-box { background: #EEF2FF; padding: 15px; border-radius: 4px; margin: 20px 0; }
			table { width: 100%%; border-collapse: collapse; }
			td, th { padding: 6px; border-bottom: 1px solid #E5E7EB; text-align: left; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}
