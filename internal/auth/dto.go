package auth

// LoginDTO is the transport shape for login requests.
type LoginDTO struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

// RegisterAdminDTO bootstraps the single main-admin account.
type RegisterAdminDTO struct {
	Password string `json:"password"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d LoginDTO) Validate() error {
	if d.LoginID == "" {
		return ValidationError{Msg: "login_id is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d RegisterAdminDTO) Validate() error {
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	if len(d.Password) < 8 {
		return ValidationError{Msg: "password must be at least 8 characters"}
	}
	return nil
}

func (d ChangePasswordDTO) Validate() error {
	if d.OldPassword == "" {
		return ValidationError{Msg: "old_password is required"}
	}
	if d.NewPassword == "" {
		return ValidationError{Msg: "new_password is required"}
	}
	if len(d.NewPassword) < 8 {
		return ValidationError{Msg: "new_password must be at least 8 characters"}
	}
	return nil
}
