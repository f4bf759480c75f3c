package templates

import (
	"time"

	"github.com/oksasatya/classroom-roster/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithRole(role string) Option { return func(d *EmailData) { d.Role = role } }

func WithClass(name, title string) Option {
	return func(d *EmailData) {
		d.ClassName = name
		d.ClassTitle = title
	}
}

// NewBaseEmailData fills the common fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ string, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,

		CompanyName: cfg.CompanyName,
		AppName:     cfg.AppName,

		LoginURL:   cfg.LoginURL,
		SupportURL: cfg.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewAccountInviteData(cfg *config.Config, name, email, role string, opts ...Option) map[string]any {
	opts = append([]Option{WithRole(role)}, opts...)
	return ToMap(NewBaseEmailData(cfg, AccountInvite, name, email, opts...))
}

func NewClassEnrollmentData(cfg *config.Config, name, email, className, title string, opts ...Option) map[string]any {
	opts = append([]Option{WithClass(className, title)}, opts...)
	return ToMap(NewBaseEmailData(cfg, ClassEnrollment, name, email, opts...))
}
