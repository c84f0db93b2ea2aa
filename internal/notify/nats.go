// Package notify publishes link check results to a message broker.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	ferrors "git.home.luguber.info/inful/mdlinkcheck/internal/foundation/errors"
	"git.home.luguber.info/inful/mdlinkcheck/internal/linkcheck"
	"git.home.luguber.info/inful/mdlinkcheck/internal/logfields"
	"git.home.luguber.info/inful/mdlinkcheck/internal/retry"
)

const publishTimeout = 5 * time.Second

// Publisher delivers a report to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, report *linkcheck.Report) error
	Close() error
}

// sendFunc publishes one message.
type sendFunc func(ctx context.Context, subject string, data []byte) error

// NATSPublisher publishes reports as JSON events.
type NATSPublisher struct {
	conn    *nats.Conn
	send    sendFunc
	subject string
	now     func() time.Time
	retry   retry.Policy
}

// NATSOptions configures NewNATSPublisher.
type NATSOptions struct {
	URL     string
	Subject string
	// JetStream publishes with acknowledgement through a stream bound to the subjects.
	JetStream bool
}

// NewNATSPublisher connects to the NATS server at opts.URL.
func NewNATSPublisher(opts NATSOptions) (*NATSPublisher, error) {
	conn, err := nats.Connect(opts.URL, nats.Name("mdlinkcheck"), nats.Timeout(publishTimeout))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryMessaging, "failed to connect to NATS").
			WithContext("url", opts.URL).
			Build()
	}

	p := &NATSPublisher{conn: conn, subject: opts.Subject, now: time.Now, retry: retry.DefaultPolicy()}
	if opts.JetStream {
		js, err := jetstream.New(conn)
		if err != nil {
			conn.Close()
			return nil, ferrors.WrapError(err, ferrors.CategoryMessaging, "failed to create JetStream context").Build()
		}
		p.send = func(ctx context.Context, subject string, data []byte) error {
			_, err := js.Publish(ctx, subject, data)
			return err
		}
	} else {
		p.send = func(_ context.Context, subject string, data []byte) error {
			return conn.Publish(subject, data)
		}
	}

	slog.Info("NATS publisher connected", "url", opts.URL, logfields.Subject(opts.Subject), "jetstream", opts.JetStream)
	return p, nil
}

// Publish sends the run summary followed by one event per broken link.
func (p *NATSPublisher) Publish(ctx context.Context, report *linkcheck.Report) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	now := p.now()
	if err := p.publishJSON(ctx, p.subject+".run", NewRunEvent(report, now)); err != nil {
		return err
	}
	for _, event := range NewBrokenLinkEvents(report, now) {
		if err := p.publishJSON(ctx, p.subject+".broken", event); err != nil {
			return err
		}
	}

	if p.conn != nil {
		if err := p.conn.FlushWithContext(ctx); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryMessaging, "failed to flush NATS connection").Build()
		}
	}

	slog.Debug("Published link check events",
		logfields.RunID(report.RunID),
		logfields.Subject(p.subject),
		logfields.Broken(len(report.Broken)))
	return nil
}

func (p *NATSPublisher) publishJSON(ctx context.Context, subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal event").Build()
	}
	return p.retry.Do(ctx, func(ctx context.Context) error {
		if err := p.send(ctx, subject, data); err != nil {
			slog.Debug("NATS publish failed", logfields.Subject(subject), logfields.Error(err))
			return ferrors.WrapError(err, ferrors.CategoryMessaging, "failed to publish event").
				WithContext("subject", subject).
				Retryable().
				Build()
		}
		return nil
	})
}

// Close drains and closes the connection.
func (p *NATSPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}
