package domain

// Active flag values stored in the ativo column.
const (
	UserInactive = 0
	UserActive   = 1
)

// ActiveAny selects both active and inactive users when listing.
const ActiveAny = -1

// User is the domain model for a usuario record.
type User struct {
	ID     int64
	Name   string
	Email  string
	Active int
}

// UserFilter captures the optional list filters. Active defaults to ActiveAny
// via NewUserFilter; OrderBy is resolved against a whitelist by the repository.
type UserFilter struct {
	ID      *int64
	Active  int
	Name    string
	OrderBy string
}

// NewUserFilter returns a filter matching every user ordered by id.
func NewUserFilter() UserFilter {
	return UserFilter{Active: ActiveAny}
}

// UserPatch holds the fields a caller explicitly set on update.
type UserPatch struct {
	Name   *string
	Email  *string
	Active *int
}

// Empty reports whether no field was set.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Active == nil
}
