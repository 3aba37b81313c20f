package models

// School represents a school a user is affiliated with. Only the fields the
// mobile client reads are carried; the server keeps more.
type School struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	Type         string `json:"type,omitempty"`
	Status       string `json:"status,omitempty"`
	Image        string `json:"image,omitempty"`
	Address      string `json:"address,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	TeacherCount int    `json:"teacherCount,omitempty"`
	ClassCount   int    `json:"classCount,omitempty"`
	StudentCount int    `json:"studentCount,omitempty"`
	CanteenCount int    `json:"canteenCount,omitempty"`
}

// User is the authenticated identity record. It is created on login, mutated
// by partial updates and cleared on logout.
type User struct {
	ID               int64    `json:"id"`
	UserID           string   `json:"userId,omitempty"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	Email            string   `json:"email"`
	PhoneNumber      string   `json:"phoneNumber,omitempty"`
	ProfileImage     string   `json:"profileImage,omitempty"`
	Status           string   `json:"status,omitempty"`
	Role             Role     `json:"role"`
	Permissions      []string `json:"permissions,omitempty"`
	CurrentSchool    *School  `json:"currentSchool,omitempty"`
	AvailableSchools []School `json:"availableSchools,omitempty"`
}

// UserPatch carries a partial user update. Nil fields are left untouched.
type UserPatch struct {
	FirstName        *string
	LastName         *string
	Email            *string
	PhoneNumber      *string
	ProfileImage     *string
	Status           *string
	Role             *Role
	Permissions      []string
	CurrentSchool    *School
	AvailableSchools []School
}

// Apply merges the patch into the user in place.
func (u *User) Apply(p UserPatch) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PhoneNumber != nil {
		u.PhoneNumber = *p.PhoneNumber
	}
	if p.ProfileImage != nil {
		u.ProfileImage = *p.ProfileImage
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Permissions != nil {
		u.Permissions = p.Permissions
	}
	if p.CurrentSchool != nil {
		cs := *p.CurrentSchool
		u.CurrentSchool = &cs
	}
	if p.AvailableSchools != nil {
		u.AvailableSchools = p.AvailableSchools
	}
}

// LoginRequest is the POST /auth/login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the POST /auth/login response.
type LoginResponse struct {
	Success          bool     `json:"success,omitempty"`
	Message          string   `json:"message,omitempty"`
	Token            string   `json:"token,omitempty"`
	RefreshToken     string   `json:"refreshToken,omitempty"`
	ID               int64    `json:"id"`
	UserID           string   `json:"userId,omitempty"`
	Email            string   `json:"email,omitempty"`
	FirstName        string   `json:"firstName,omitempty"`
	LastName         string   `json:"lastName,omitempty"`
	Role             Role     `json:"role,omitempty"`
	Permissions      []string `json:"permissions,omitempty"`
	AvailableSchools []School `json:"availableSchools,omitempty"`
	CurrentSchool    *School  `json:"currentSchool,omitempty"`
}

// User builds the identity record the session keeps from the login payload.
func (r *LoginResponse) User() *User {
	return &User{
		ID:               r.ID,
		UserID:           r.UserID,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		Role:             r.Role,
		Permissions:      r.Permissions,
		CurrentSchool:    r.CurrentSchool,
		AvailableSchools: r.AvailableSchools,
	}
}
