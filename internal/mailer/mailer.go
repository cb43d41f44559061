// Package mailer sends budget alert mail through an SMTP relay. Each Send
// makes exactly one delivery attempt and classifies failures as transient or
// permanent; retry policy belongs to the caller.
package mailer

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/wneessen/go-mail"
)

// DispatchError wraps a failed delivery attempt with its retry
// classification. Transient failures (connection refused, timeouts, 4xx SMTP
// replies) may succeed if the same message is attempted again later;
// permanent failures (malformed recipient, 5xx rejections) will not.
type DispatchError struct {
	Transient bool
	Err       error
}

func (e *DispatchError) Error() string {
	kind := "permanent"
	if e.Transient {
		kind = "transient"
	}
	return fmt.Sprintf("%s dispatch failure: %v", kind, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// IsTransient reports whether err is a dispatch failure worth retrying.
func IsTransient(err error) bool {
	var de *DispatchError
	return errors.As(err, &de) && de.Transient
}

// SMTPDispatcher delivers mail via a single SMTP relay.
type SMTPDispatcher struct {
	client *mail.Client
	sender string
}

// NewSMTPDispatcher creates a dispatcher for the given relay. Credentials may
// be empty for relays that accept unauthenticated local delivery.
func NewSMTPDispatcher(host, port, username, password, sender string) (*SMTPDispatcher, error) {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port %q: %w", port, err)
	}

	opts := []mail.Option{
		mail.WithPort(portNum),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPDispatcher{client: client, sender: sender}, nil
}

// Send makes one delivery attempt. It returns nil on confirmed handoff to the
// relay, or a *DispatchError carrying the retry classification.
func (d *SMTPDispatcher) Send(to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(d.sender); err != nil {
		return &DispatchError{Transient: false, Err: err}
	}
	if err := msg.To(to); err != nil {
		return &DispatchError{Transient: false, Err: err}
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := d.client.DialAndSend(msg); err != nil {
		return &DispatchError{Transient: isTemporary(err), Err: err}
	}
	return nil
}

// isTemporary decides the retry classification for an SMTP delivery error.
func isTemporary(err error) bool {
	var sendErr *mail.SendError
	if errors.As(err, &sendErr) {
		return sendErr.IsTemp()
	}

	// Connection-level failures never reached the relay; retrying can help.
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
