package entity

// DoctorFilter is a domain-level filter for the doctor directory search.
// Used by the repository layer to avoid coupling with delivery DTOs.
type DoctorFilter struct {
	Query           string // Matches doctor name or department name (ILIKE)
	DepartmentID    int
	MedicalCenterID int
}
