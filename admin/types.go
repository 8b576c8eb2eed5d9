package admin

import (
	"time"

	"github.com/google/uuid"
)

// NewUser is the payload for AddUser.
type NewUser struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// User is an account as seen by the admin API.
type User struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"fullName"`
	ShortName    string    `json:"shortName,omitempty"`
	Email        string    `json:"email"`
	ProjectLimit int       `json:"projectLimit"`
	PaidTier     bool      `json:"paidTier"`
}

// UserInfo is the response of GetUser.
type UserInfo struct {
	User     User      `json:"user"`
	Projects []Project `json:"projects"`
}

// UpdatedUser is a partial account update. Empty fields are left unchanged.
type UpdatedUser struct {
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	FullName     string `json:"fullName,omitempty"`
	ShortName    string `json:"shortName,omitempty"`
	ProjectLimit int    `json:"projectLimit,omitempty" validate:"min=0"`
}

// NewProject is the payload for AddProject.
type NewProject struct {
	OwnerID     uuid.UUID `json:"ownerId" validate:"required"`
	ProjectName string    `json:"projectName" validate:"required"`
}

// CreatedProject is the response of AddProject.
type CreatedProject struct {
	ProjectID uuid.UUID `json:"projectId"`
}

// Project is a project record.
type Project struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"ownerId"`
}

// RenamedProject is the payload for RenameProject.
type RenamedProject struct {
	ProjectName string `json:"projectName" validate:"required"`
	Description string `json:"description"`
}

// LimitValue is one limit, as a raw amount and a human readable size.
type LimitValue struct {
	Amount int64  `json:"amount"`
	Bytes  string `json:"bytes,omitempty"`
}

// RateLimit is a request rate limit.
type RateLimit struct {
	RPS int `json:"rps"`
}

// ProjectLimits is the response of GetProjectLimit.
type ProjectLimits struct {
	Usage      LimitValue `json:"usage"`
	Bandwidth  LimitValue `json:"bandwidth"`
	Rate       RateLimit  `json:"rate"`
	MaxBuckets int        `json:"maxBuckets"`
}

// ProjectLimitUpdate changes project limits. Nil fields are left unchanged.
type ProjectLimitUpdate struct {
	Usage     *int64
	Bandwidth *int64
	Rate      *int
	Buckets   *int
}

// ProjectUsage is the response of ProjectUsage.
type ProjectUsage struct {
	Result string `json:"result"`
}

// NewAPIKey is the payload for AddAPIKey.
type NewAPIKey struct {
	Name string `json:"name" validate:"required"`
}

// CreatedAPIKey holds the serialized key returned once by AddAPIKey.
type CreatedAPIKey struct {
	APIKey string `json:"apikey"`
}

// APIKey is an API key record. The secret is never returned.
type APIKey struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"projectId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Bucket is a bucket record, as returned by the geofence operations.
type Bucket struct {
	Name      string    `json:"name"`
	ProjectID uuid.UUID `json:"projectId"`
	Placement string    `json:"placement"`
	CreatedAt time.Time `json:"createdAt"`
}

// Regions accepted by CreateGeofence.
var Regions = []string{"EU", "EEA", "US", "DE"}
