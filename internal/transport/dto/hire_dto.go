package dto

// ProposeHireRequest is the employer's offer of a job to a worker.
type ProposeHireRequest struct {
	JobID         string `json:"-"` // From path
	EmployerID    string `json:"-"` // Set from user context
	WorkerID      string `json:"workerUid" validate:"required"`
	ApplicationID string `json:"applicationId,omitempty"`
}

// HireActionRequest is used by accept, reject and complete.
type HireActionRequest struct {
	HireID string `json:"-"` // From path
	UserID string `json:"-"` // Set from user context
}

type GetHireRequest struct {
	HireID string `json:"-"`
	UserID string `json:"-"`
}
