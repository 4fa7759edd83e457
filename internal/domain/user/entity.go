package user

import "time"

// User represents a user account record.
// It is a value type: changes produce a new User through Apply.
type User struct {
	ID        int64     `json:"id"`        // ID is assigned by storage and never reassigned
	FirstName string    `json:"firstName"` // FirstName is the given name of the user
	LastName  string    `json:"lastName"`  // LastName is the family name of the user
	Email     string    `json:"email"`     // Email is unique by convention only
	IsActive  bool      `json:"isActive"`  // IsActive defaults to true on creation
	CreatedAt time.Time `json:"createdAt"` // CreatedAt is set once at creation
	UpdatedAt time.Time `json:"updatedAt"` // UpdatedAt is refreshed on every update
}

// New builds a freshly created user stamped with the given time.
func New(id int64, data FormData, at time.Time) User {
	return User{
		ID:        id,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		IsActive:  data.IsActive,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

// FullName returns the first and last name joined by a space.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Apply returns a copy of u with the present fields of p replaced and UpdatedAt set to at.
// UpdatedAt never moves before CreatedAt.
func (u User) Apply(p Patch, at time.Time) User {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if at.Before(u.CreatedAt) {
		at = u.CreatedAt
	}
	u.UpdatedAt = at
	return u
}
