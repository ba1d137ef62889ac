package notify

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var ErrNoRecipient = errors.New("no email address for user")

// EmailClient is the subset of *sendgrid.Client the sink uses.
type EmailClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type Recipients interface {
	Email(ctx context.Context, userID string) (string, error)
}

// SQLRecipients resolves addresses from the users table.
type SQLRecipients struct {
	db *sql.DB
}

func NewSQLRecipients(db *sql.DB) *SQLRecipients {
	return &SQLRecipients{db: db}
}

func (r *SQLRecipients) Email(ctx context.Context, userID string) (string, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return "", ErrNoRecipient
	}
	var email string
	err = r.db.QueryRowContext(ctx, `SELECT email FROM users WHERE id = $1`, id).Scan(&email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoRecipient
	}
	if err != nil {
		return "", err
	}
	return email, nil
}

type SendGridSink struct {
	client     EmailClient
	recipients Recipients
	from       string
}

func NewSendGridSink(apiKey, from string, recipients Recipients) *SendGridSink {
	return &SendGridSink{
		client:     sendgrid.NewSendClient(apiKey),
		recipients: recipients,
		from:       from,
	}
}

func (s *SendGridSink) Name() string { return "sendgrid" }

func (s *SendGridSink) Deliver(ctx context.Context, ev Event) error {
	if s.from == "" {
		return errors.New("from address is empty")
	}
	to, err := s.recipients.Email(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("resolve recipient: %w", err)
	}

	subject, body := render(ev)
	message := mail.NewSingleEmail(
		mail.NewEmail("Storefront", s.from),
		subject,
		mail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", body),
	)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", resp.StatusCode, resp.Body)
	}
	return nil
}

func render(ev Event) (subject, body string) {
	switch ev.Kind {
	case KindOrderPlaced:
		return fmt.Sprintf("Order %s received", ev.OrderID),
			fmt.Sprintf("Thanks for your order.\n\nOrder: %s\nTotal: %d %s\n", ev.OrderID, ev.TotalAmount, ev.Currency)
	default:
		return fmt.Sprintf("Order %s is now %s", ev.OrderID, ev.Status),
			fmt.Sprintf("Your order %s changed status to %s.\n", ev.OrderID, ev.Status)
	}
}
