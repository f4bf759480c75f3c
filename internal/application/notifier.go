package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-roster/config"
	"github.com/oksasatya/classroom-roster/internal/domain/entity"
	"github.com/oksasatya/classroom-roster/pkg/mailer"
	tpl "github.com/oksasatya/classroom-roster/pkg/mailer/templates"
)

// JobPublisher is satisfied by *helpers.RabbitPublisher.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Notifier enqueues roster emails. Delivery is best effort: failures are
// logged and never fail the operation that triggered them.
type Notifier struct {
	Pub    JobPublisher
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewNotifier(pub JobPublisher, cfg *config.Config, logger *logrus.Logger) *Notifier {
	return &Notifier{Pub: pub, Cfg: cfg, Logger: logger}
}

func (n *Notifier) enabled() bool {
	return n != nil && n.Pub != nil && n.Cfg != nil && n.Cfg.MailSendEnabled
}

// AccountCreated tells a user to sign in and pick their password. It
// reports whether the job was enqueued.
func (n *Notifier) AccountCreated(ctx context.Context, u *entity.User) bool {
	if !n.enabled() {
		return false
	}
	data := tpl.NewAccountInviteData(n.Cfg, u.Name, u.Email, u.Role.String(), tpl.WithTime(time.Now()))
	return n.publish(ctx, mailer.EmailJob{To: u.Email, Template: tpl.AccountInvite, Data: data})
}

// Enrolled tells u they were added to c.
func (n *Notifier) Enrolled(ctx context.Context, u *entity.User, c *entity.Class, e *entity.Enrollment) bool {
	if !n.enabled() {
		return false
	}
	data := tpl.NewClassEnrollmentData(n.Cfg, u.Name, u.Email, c.Name, e.Title, tpl.WithTime(time.Now()))
	return n.publish(ctx, mailer.EmailJob{To: u.Email, Template: tpl.ClassEnrollment, Data: data})
}

func (n *Notifier) publish(ctx context.Context, job mailer.EmailJob) bool {
	if err := n.Pub.PublishJSON(ctx, job); err != nil {
		if n.Logger != nil {
			n.Logger.WithError(err).WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Warn("failed to publish email job")
		}
		return false
	}
	return true
}
