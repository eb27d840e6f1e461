package types

import "time"

// CoverLetter is a generated cover letter kept alongside the resume
type CoverLetter struct {
	ID             string    `json:"id"`
	CompanyName    string    `json:"companyName"`
	JobTitle       string    `json:"jobTitle"`
	Content        string    `json:"content"`
	JobDescription string    `json:"jobDescription"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
