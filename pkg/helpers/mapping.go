package helpers

import (
	"fmt"

	"github.com/oksasatya/classroom-roster/pkg/mailer"
	mailtpl "github.com/oksasatya/classroom-roster/pkg/mailer/templates"
)

// SubjectFallback is used when a job carries neither a subject nor a known template.
func SubjectFallback(job mailer.EmailJob) string {
	switch job.Template {
	case mailtpl.AccountInvite:
		return "Your classroom account is ready"
	case mailtpl.ClassEnrollment:
		return "You were added to a class"
	default:
		return "Notification"
	}
}

// EnsureRecipientAndEmail fills the recipient fields templates rely on.
func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}
