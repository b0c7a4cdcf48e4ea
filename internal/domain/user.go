package domain

// User represents one row in the users table. The password column holds the
// raw credential value; the schema predates any hashing scheme.
type User struct {
	ID           int64
	Username     string
	Password     string
	Role         string
	AssignedCity string
}

// Profile is the public projection returned to clients after a successful
// login. Field order matches the wire contract: id, username, role,
// assignedCity.
type Profile struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	AssignedCity string `json:"assignedCity"`
}

// Profile projects the public fields of u.
func (u User) Profile() Profile {
	return Profile{
		ID:           u.ID,
		Username:     u.Username,
		Role:         u.Role,
		AssignedCity: u.AssignedCity,
	}
}
