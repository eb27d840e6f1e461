package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ApplicationStatus is the pipeline stage of a job application
type ApplicationStatus string

// Application statuses
const (
	StatusSaved        ApplicationStatus = "saved"
	StatusApplied      ApplicationStatus = "applied"
	StatusInterviewing ApplicationStatus = "interviewing"
	StatusOffer        ApplicationStatus = "offer"
	StatusRejected     ApplicationStatus = "rejected"
	StatusWithdrawn    ApplicationStatus = "withdrawn"
)

// ApplicationStatuses lists every status in pipeline order.
func ApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{StatusSaved, StatusApplied, StatusInterviewing, StatusOffer, StatusRejected, StatusWithdrawn}
}

// IsActive reports whether an application in this status still expects a follow-up.
func (s ApplicationStatus) IsActive() bool {
	return s == StatusApplied || s == StatusInterviewing
}

// Application is a tracked job application.
// AppliedDate and FollowUpDate use the YYYY-MM-DD form.
type Application struct {
	ID           string            `json:"id"`
	Company      string            `json:"company" validate:"required"`
	Position     string            `json:"position" validate:"required"`
	URL          string            `json:"url,omitempty" validate:"omitempty,url"`
	Status       ApplicationStatus `json:"status" validate:"required,oneof=saved applied interviewing offer rejected withdrawn"`
	AppliedDate  string            `json:"appliedDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	FollowUpDate string            `json:"followUpDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes        string            `json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

var applicationValidator = validator.New()

// Validate checks required fields, status and date formats.
func (a *Application) Validate() error {
	if err := applicationValidator.Struct(a); err != nil {
		var msgs []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid application: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid application: %w", err)
	}
	return nil
}

// FollowUp parses the follow-up date. The second result is false when unset or malformed.
func (a *Application) FollowUp() (time.Time, bool) {
	if a.FollowUpDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, a.FollowUpDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
