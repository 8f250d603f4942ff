package mail

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"
)

type Notifier interface {
	PaymentConfirmation(ctx context.Context, to, transactionID string) error
}

type MailgunNotifier struct {
	mg   *mailgun.MailgunImpl
	from string
}

func NewMailgunNotifier(domain, apiKey, from string) *MailgunNotifier {
	return &MailgunNotifier{
		mg:   mailgun.NewMailgun(domain, apiKey),
		from: from,
	}
}

func (n *MailgunNotifier) PaymentConfirmation(ctx context.Context, to, transactionID string) error {
	subject := "Bistro Boss Confirmation"
	text := fmt.Sprintf("Thank you for your order. Your transaction id: %s", transactionID)
	html := fmt.Sprintf(`
	<div>
	  <h2>Thank you for your order</h2>
	  <h4>Your Trans. Id: <strong>%s</strong></h4>
	  <p>We would like to get your feedback about the food</p>
	</div>
	`, transactionID)

	m := n.mg.NewMessage(n.from, subject, text, to)
	m.SetHtml(html)

	_, _, err := n.mg.Send(ctx, m)
	return err
}
