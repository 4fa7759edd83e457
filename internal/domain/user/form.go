package user

// FormData is the input shape for creating a user.
// ID is carried for symmetry with User and ignored on create.
type FormData struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	IsActive  bool
}

// Patch holds the fields of a partial update.
// A nil field is left unchanged; a non-nil field, including a pointer to false, is written.
type Patch struct {
	FirstName *string
	LastName  *string
	Email     *string
	IsActive  *bool
}

// PatchFromForm builds a patch that replaces every field of the form.
func PatchFromForm(data FormData) Patch {
	return Patch{
		FirstName: &data.FirstName,
		LastName:  &data.LastName,
		Email:     &data.Email,
		IsActive:  &data.IsActive,
	}
}

// IsEmpty reports whether the patch changes no field.
func (p Patch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.IsActive == nil
}
