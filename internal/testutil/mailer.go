package testutil

import "sync"

// SentMail records one delivery made through a RecordingMailer.
type SentMail struct {
	To      string
	Subject string
	Body    string
}

// RecordingMailer is a Mailer double that records every send. SetErr makes
// subsequent sends fail with that error until it is cleared, which is how
// dispatcher failure paths are scripted in tests.
type RecordingMailer struct {
	mu   sync.Mutex
	sent []SentMail
	err  error
}

// Send records the message, or fails with the scripted error.
func (m *RecordingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}

// Sent returns a copy of the recorded deliveries.
func (m *RecordingMailer) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]SentMail, len(m.sent))
	copy(out, m.sent)
	return out
}

// SetErr scripts the error returned by subsequent sends; nil restores
// successful delivery.
func (m *RecordingMailer) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
