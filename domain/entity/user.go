package entity

// User is an employee account. The password hash and the refresh-token slot
// never leave the server; both are excluded from JSON.
type User struct {
	EmpNumber    int64   `json:"empNumber"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`
	Password     string  `json:"-"`
	EmpRole      string  `json:"empRole"`
	IsAdmin      bool    `json:"isAdmin"`
	RefreshToken *string `json:"-"`
}

// HasRefreshToken reports whether the single refresh-token slot is occupied.
func (u *User) HasRefreshToken() bool {
	return u.RefreshToken != nil && *u.RefreshToken != ""
}
