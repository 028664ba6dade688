package authservice

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	AboutMe  string `json:"about_me"`
}

// AdminProfileRequest is the superset only ADMINISTER holders may apply.
type AdminProfileRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Confirmed bool   `json:"confirmed"`
	RoleID    int64  `json:"role_id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	AboutMe   string `json:"about_me"`
}
