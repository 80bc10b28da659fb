package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/go-marketplace-ddd/pkg/mailer"
	mailtpl "github.com/oksasatya/go-marketplace-ddd/pkg/mailer/templates"
)

// SubjectForUniversal picks the subject line from the universal template's
// Type field.
func SubjectForUniversal(data map[string]any) string {
	switch strings.ToLower(fmt.Sprintf("%v", data["Type"])) {
	case mailtpl.LoginNotification:
		return "New login to your account"
	case mailtpl.VerifyEmail:
		return "Verify your email address"
	case mailtpl.ForgotPassword:
		return "Reset your password"
	case mailtpl.ProfileUpdated:
		return "Your profile was updated successfully"
	case mailtpl.LoginOTP:
		return "Your login verification code"
	default:
		return "Notification"
	}
}

// EnsureRecipientAndEmail backfills Email and RecipientEmail from the job's
// To address so templates never render an empty recipient.
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

// MapLegacyToUniversal rewrites per-type template names onto the universal
// layout, carrying the original name in Data["Type"].
func MapLegacyToUniversal(job *mailer.EmailJob) {
	switch strings.ToLower(job.Template) {
	case mailtpl.LoginNotification, mailtpl.VerifyEmail, mailtpl.ForgotPassword, mailtpl.ProfileUpdated, mailtpl.LoginOTP:
		if job.Data == nil {
			job.Data = map[string]any{}
		}
		if _, ok := job.Data["Type"]; !ok || fmt.Sprintf("%v", job.Data["Type"]) == "" {
			job.Data["Type"] = job.Template
		}
		job.Template = "universal"
	}
}
