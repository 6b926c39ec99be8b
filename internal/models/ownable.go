package models

// Ownable is implemented by records that belong to a single user. Handlers
// use it to keep ownership checks uniform across resource types.
type Ownable interface {
	GetUserID() uint
}
