package dto

// Request DTOs

type UpdatePatientProfileRequest struct {
	FirstName   string `json:"first_name" validate:"omitempty,max=100"`
	LastName    string `json:"last_name" validate:"omitempty,max=100"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender      string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Address     string `json:"address" validate:"omitempty,max=200"`
}

// Response DTOs

type PatientProfileResponse struct {
	User        UserResponse `json:"user"`
	PhoneNumber string       `json:"phone_number,omitempty"`
	DateOfBirth string       `json:"date_of_birth,omitempty"`
	Gender      string       `json:"gender,omitempty"`
	Address     string       `json:"address,omitempty"`
}
