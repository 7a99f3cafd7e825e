// internal/transport/dto/job_dto.go
package dto

// --- Job Request DTOs ---

// CreateJobRequest defines the structure for creating a new job posting.
type CreateJobRequest struct {
	Title        string  `json:"title" validate:"required"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	LocationText string  `json:"locationText"`
	HourlyPay    float64 `json:"hourlyPay" validate:"gte=0"`
	EmployerID   string  `json:"-"` // Set internally by handler from auth context
}

// GetJobByIDRequest defines the structure for getting a job by ID.
type GetJobByIDRequest struct {
	ID string `json:"-"`
}
