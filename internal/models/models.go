package models

import (
	"strings"
	"time"
)

// --- Job Hire Status Enum ---
type JobHireStatus string

const (
	JobHireStatusOpen      JobHireStatus = "open"
	JobHireStatusProposed  JobHireStatus = "proposed"
	JobHireStatusConfirmed JobHireStatus = "confirmed"
	JobHireStatusCompleted JobHireStatus = "completed"
)

// IsValid reports whether s is one of the known job hire states.
func (s JobHireStatus) IsValid() bool {
	switch s {
	case JobHireStatusOpen, JobHireStatusProposed, JobHireStatusConfirmed, JobHireStatusCompleted:
		return true
	default:
		return false
	}
}

// --- Hire Status Enum ---
type HireStatus string

const (
	HireStatusProposed  HireStatus = "proposed"
	HireStatusConfirmed HireStatus = "confirmed"
	HireStatusRejected  HireStatus = "rejected"
	HireStatusCompleted HireStatus = "completed"
	// HireStatusCancelled is part of the stored vocabulary but no flow produces it.
	HireStatusCancelled HireStatus = "cancelled"
)

// IsActive reports whether the hire still occupies its job.
func (s HireStatus) IsActive() bool {
	return s == HireStatusProposed || s == HireStatusConfirmed
}

// CanTransitionTo encodes the two lifecycle paths:
// proposed -> confirmed -> completed and proposed -> rejected.
func (s HireStatus) CanTransitionTo(next HireStatus) bool {
	switch s {
	case HireStatusProposed:
		return next == HireStatusConfirmed || next == HireStatusRejected
	case HireStatusConfirmed:
		return next == HireStatusCompleted
	default:
		return false
	}
}

// JobHireStatus is the job-side mirror of a hire status.
func (s HireStatus) JobHireStatus() JobHireStatus {
	switch s {
	case HireStatusProposed:
		return JobHireStatusProposed
	case HireStatusConfirmed:
		return JobHireStatusConfirmed
	case HireStatusCompleted:
		return JobHireStatusCompleted
	default:
		return JobHireStatusOpen
	}
}

// --- Application Status Enum ---
type ApplicationStatus string

const (
	ApplicationStatusApplied        ApplicationStatus = "applied"
	ApplicationStatusHiredProposed  ApplicationStatus = "hiredProposed"
	ApplicationStatusHiredConfirmed ApplicationStatus = "hiredConfirmed"
	ApplicationStatusRejected       ApplicationStatus = "rejected"

	// applicationStatusLegacyPending was written by an older client for the initial state.
	applicationStatusLegacyPending ApplicationStatus = "pending"
)

// Normalize maps legacy literals onto the canonical vocabulary.
func (s ApplicationStatus) Normalize() ApplicationStatus {
	if s == applicationStatusLegacyPending || s == "" {
		return ApplicationStatusApplied
	}
	return s
}

// ApplicationStatusFor returns the application mirror of a hire status.
func ApplicationStatusFor(s HireStatus) ApplicationStatus {
	switch s {
	case HireStatusProposed:
		return ApplicationStatusHiredProposed
	case HireStatusConfirmed, HireStatusCompleted:
		return ApplicationStatusHiredConfirmed
	case HireStatusRejected:
		return ApplicationStatusRejected
	default:
		return ApplicationStatusApplied
	}
}

// --- Conversation Roles ---
type Role string

const (
	RoleEmployer Role = "employer"
	RoleWorker   Role = "worker"
)

// IsValid reports whether r is a known participant role.
func (r Role) IsValid() bool {
	return r == RoleEmployer || r == RoleWorker
}

// Job is a posted work opportunity. Owner identity may live under several
// historical field names; see the ownership package for resolution.
type Job struct {
	ID string `json:"id"`

	OwnerUID     string `json:"ownerUid,omitempty"`
	EmployerUID  string `json:"employerUid,omitempty"`
	EmployerID   string `json:"employerId,omitempty"`
	CreatedByUID string `json:"createdByUid,omitempty"`
	CreatedBy    string `json:"createdBy,omitempty"`
	PostedBy     string `json:"postedBy,omitempty"`

	HireStatus   JobHireStatus `json:"hireStatus,omitempty"`
	ActiveHireID *string       `json:"activeHireId"`

	Title        string  `json:"title"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	LocationText string  `json:"locationText"`
	HourlyPay    float64 `json:"hourlyPay"`

	Applicants []string `json:"applicants"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EffectiveHireStatus treats records written before hire tracking existed as open.
func (j *Job) EffectiveHireStatus() JobHireStatus {
	if j.HireStatus == "" {
		return JobHireStatusOpen
	}
	return j.HireStatus
}

// HasApplicant reports whether uid already applied.
func (j *Job) HasApplicant(uid string) bool {
	for _, a := range j.Applicants {
		if a == uid {
			return true
		}
	}
	return false
}

// ActiveHireIs reports whether the job currently points at hireID.
func (j *Job) ActiveHireIs(hireID string) bool {
	return j.ActiveHireID != nil && *j.ActiveHireID == hireID
}

// JobSnapshot is the copy of job display fields frozen into a hire at proposal time.
type JobSnapshot struct {
	Title        string  `json:"title"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	LocationText string  `json:"locationText"`
	HourlyPay    float64 `json:"hourlyPay"`
}

// SnapshotOf captures the display fields of job.
func SnapshotOf(job *Job) JobSnapshot {
	return JobSnapshot{
		Title:        job.Title,
		Date:         job.Date,
		StartTime:    job.StartTime,
		EndTime:      job.EndTime,
		LocationText: job.LocationText,
		HourlyPay:    job.HourlyPay,
	}
}

// Application is a worker's interest in a job. Its status mirrors the hire lifecycle.
type Application struct {
	ID                 string            `json:"id"`
	JobID              string            `json:"jobId"`
	ApplicantProfileID string            `json:"applicantProfileId,omitempty"`
	ApplicantUID       string            `json:"applicantUid"`
	Status             ApplicationStatus `json:"status"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// Hire governs whether a specific worker is engaged for a specific job.
type Hire struct {
	ID            string      `json:"id"`
	JobID         string      `json:"jobId"`
	ApplicationID string      `json:"applicationId,omitempty"`
	EmployerUID   string      `json:"employerUid"`
	WorkerUID     string      `json:"workerUid"`
	ChatID        string      `json:"chatId,omitempty"`
	Status        HireStatus  `json:"status"`
	JobSnapshot   JobSnapshot `json:"jobSnapshot"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// Conversation is the single messaging thread between an employer and a worker.
type Conversation struct {
	ID          string `json:"id"`
	EmployerUID string `json:"employerUid"`
	WorkerUID   string `json:"workerUid"`
	// JobID is only set on threads created by the old per-job flow.
	JobID string `json:"jobId,omitempty"`

	LastMessage   string     `json:"lastMessage,omitempty"`
	LastSenderID  string     `json:"lastSenderId,omitempty"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty"`

	EmployerLastOpenedAt *time.Time `json:"employerLastOpenedAt,omitempty"`
	WorkerLastOpenedAt   *time.Time `json:"workerLastOpenedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// RoleOf returns the role uid plays in the conversation.
func (c *Conversation) RoleOf(uid string) (Role, bool) {
	switch {
	case uid == "":
		return "", false
	case uid == c.EmployerUID:
		return RoleEmployer, true
	case uid == c.WorkerUID:
		return RoleWorker, true
	default:
		return "", false
	}
}

// Counterpart returns the other participant from viewer's point of view.
func (c *Conversation) Counterpart(viewer string) string {
	if viewer == c.EmployerUID {
		return c.WorkerUID
	}
	return c.EmployerUID
}

// LastOpenedAt returns the per-role "last opened" stamp.
func (c *Conversation) LastOpenedAt(role Role) *time.Time {
	if role == RoleEmployer {
		return c.EmployerLastOpenedAt
	}
	return c.WorkerLastOpenedAt
}

// LastOpenedField is the document field holding role's "last opened" stamp.
func LastOpenedField(role Role) string {
	if role == RoleEmployer {
		return "employerLastOpenedAt"
	}
	return "workerLastOpenedAt"
}

// Message is one append-only entry in a conversation.
type Message struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chatId"`
	SenderID  string    `json:"senderId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsBlank reports whether text carries no visible content.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
