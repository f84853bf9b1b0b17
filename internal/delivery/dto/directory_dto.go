package dto

import "github.com/google/uuid"

// Response DTOs for the public doctor/clinic directory.

type DoctorResponse struct {
	ID            uuid.UUID              `json:"id"`
	FirstName     string                 `json:"first_name"`
	LastName      string                 `json:"last_name"`
	StartYear     int                    `json:"start_year,omitempty"`
	Biography     string                 `json:"biography,omitempty"`
	Department    *DepartmentResponse    `json:"department,omitempty"`
	MedicalCenter *MedicalCenterResponse `json:"medical_center,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type DepartmentResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	Total       int                  `json:"total"`
}

type MedicalCenterResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

type MedicalCenterListResponse struct {
	MedicalCenters []MedicalCenterResponse `json:"medical_centers"`
	Total          int                     `json:"total"`
}
