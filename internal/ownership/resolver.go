// Package ownership resolves which identity owns a job. Jobs written by older
// clients record the owner under one of several historical field names.
package ownership

import "gig-coordinator/internal/models"

// CanonicalField is where new writes record the owner.
const CanonicalField = "ownerUid"

// Alias is one place an owner identity may be recorded.
type Alias struct {
	Field string
	Get   func(*models.Job) string
}

// DefaultAliases is the resolution order: canonical field first, then legacy names.
var DefaultAliases = []Alias{
	{Field: CanonicalField, Get: func(j *models.Job) string { return j.OwnerUID }},
	{Field: "employerUid", Get: func(j *models.Job) string { return j.EmployerUID }},
	{Field: "employerId", Get: func(j *models.Job) string { return j.EmployerID }},
	{Field: "createdByUid", Get: func(j *models.Job) string { return j.CreatedByUID }},
	{Field: "createdBy", Get: func(j *models.Job) string { return j.CreatedBy }},
	{Field: "postedBy", Get: func(j *models.Job) string { return j.PostedBy }},
}

// Resolver picks the first non-empty alias.
type Resolver struct {
	aliases []Alias
}

func NewResolver() *Resolver {
	return &Resolver{aliases: DefaultAliases}
}

// NewResolverWithAliases uses a custom priority list.
func NewResolverWithAliases(aliases []Alias) *Resolver {
	return &Resolver{aliases: aliases}
}

// Owner returns the owning identity, or false when no alias is set.
func (r *Resolver) Owner(job *models.Job) (string, bool) {
	owner, _, ok := r.Resolve(job)
	return owner, ok
}

// Resolve also reports which field supplied the owner.
func (r *Resolver) Resolve(job *models.Job) (owner, field string, ok bool) {
	if job == nil {
		return "", "", false
	}
	for _, a := range r.aliases {
		if v := a.Get(job); v != "" {
			return v, a.Field, true
		}
	}
	return "", "", false
}

// IsOwner reports whether uid owns job.
func (r *Resolver) IsOwner(job *models.Job, uid string) bool {
	owner, ok := r.Owner(job)
	return ok && uid != "" && owner == uid
}

// LegacyFields lists the non-canonical alias fields in priority order.
func (r *Resolver) LegacyFields() []string {
	fields := make([]string, 0, len(r.aliases))
	for _, a := range r.aliases {
		if a.Field != CanonicalField {
			fields = append(fields, a.Field)
		}
	}
	return fields
}
