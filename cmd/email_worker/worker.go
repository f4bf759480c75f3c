package main

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-roster/pkg/helpers"
	"github.com/oksasatya/classroom-roster/pkg/mailer"
	mailtpl "github.com/oksasatya/classroom-roster/pkg/mailer/templates"
)

type sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

var _ sender = (*mailer.Mailgun)(nil)

type outcome int

const (
	outcomeAck outcome = iota
	outcomeRetry
	outcomeDrop
)

// maxAttempts bounds how many times a failed send is retried before the
// job is dropped.
const maxAttempts = 5

// settle turns a retry into a drop once the job has used its attempts. It
// returns the final outcome and the attempt count to record on requeue.
func settle(o outcome, headers amqp.Table) (outcome, int) {
	if o != outcomeRetry {
		return o, 0
	}
	next := helpers.Attempts(headers) + 1
	if next >= maxAttempts {
		return outcomeDrop, next
	}
	return outcomeRetry, next
}

type worker struct {
	Sender sender
	Logger *logrus.Logger
}

// handle renders and sends one queued job. Malformed jobs are dropped;
// failed sends go back on the queue.
func (w *worker) handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.Logger.WithError(err).Warn("bad message")
		return outcomeDrop
	}
	if job.To == "" {
		w.Logger.Warn("job without recipient")
		return outcomeDrop
	}
	helpers.EnsureRecipientAndEmail(&job)

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			w.Logger.WithError(err).WithField("template", job.Template).Warn("render failed")
			return outcomeDrop
		}
		subject, text, html = s, t, h
	}
	if subject == "" {
		subject = helpers.SubjectFallback(job)
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		w.Logger.WithError(err).WithField("to", job.To).Warn("send failed")
		return outcomeRetry
	}
	w.Logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
	return outcomeAck
}
