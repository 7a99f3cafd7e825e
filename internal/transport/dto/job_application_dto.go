package dto

type ApplyToJobRequest struct {
	JobID              string `json:"-"`                  // From path
	ApplicantProfileID string `json:"applicantProfileId"` // Optional profile reference
	ApplicantUID       string `json:"-"`                  // Set from user context
}
