package notify

import (
	"fmt"
	"strings"

	"github.com/shadowine/contact-intake/internal/core"
)

// subjectFor builds the notification subject line. Work-view requests carry
// the requested work name; everything else is a plain contact submission.
func subjectFor(sub *core.Submission) string {
	if sub.WorkName != "" {
		return fmt.Sprintf("Private Work View Request - %s from %s", sub.WorkName, sub.Name)
	}
	return fmt.Sprintf("New Contact Form Submission from %s", sub.Name)
}

// textBody builds the plain-text notification body
func textBody(sub *core.Submission) string {
	displaySubject := sub.Phone
	if displaySubject == "" {
		displaySubject = "N/A"
	}

	var b strings.Builder
	if sub.WorkName != "" {
		b.WriteString("Private Viewing Access Request\n\n")
		b.WriteString("Hello Team,\n\n")
		b.WriteString("Someone has requested access to view restricted work.\n\n")
		fmt.Fprintf(&b, "WORK: %s\n", sub.WorkName)
	} else {
		b.WriteString("New Contact Form Submission\n\n")
		b.WriteString("Hello Team,\n\n")
		b.WriteString("You have received a new message from the website contact form.\n\n")
	}
	fmt.Fprintf(&b, "NAME: %s\n", sub.Name)
	fmt.Fprintf(&b, "EMAIL: %s\n", sub.Email)
	fmt.Fprintf(&b, "SUBJECT: %s\n", displaySubject)
	fmt.Fprintf(&b, "MESSAGE:\n%s\n", sub.Message)

	return b.String()
}
