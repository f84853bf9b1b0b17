package converter

import (
	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:        profile.UserID,
		FirstName: profile.User.FirstName,
		LastName:  profile.User.LastName,
		StartYear: profile.StartYear,
		Biography: profile.Biography,
	}

	if profile.Department.ID != 0 {
		response.Department = DepartmentToResponse(&profile.Department)
	}
	if profile.MedicalCenter.ID != 0 {
		response.MedicalCenter = MedicalCenterToResponse(&profile.MedicalCenter)
	}

	return response
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i, profile := range profiles {
		resp := DoctorProfileToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

func DepartmentToResponse(department *entity.Department) *dto.DepartmentResponse {
	if department == nil {
		return nil
	}
	return &dto.DepartmentResponse{
		ID:          department.ID,
		Name:        department.Name,
		Description: department.Description,
	}
}

func DepartmentsToResponses(departments []entity.Department) []dto.DepartmentResponse {
	responses := make([]dto.DepartmentResponse, len(departments))
	for i, department := range departments {
		responses[i] = *DepartmentToResponse(&department)
	}
	return responses
}

func MedicalCenterToResponse(center *entity.MedicalCenter) *dto.MedicalCenterResponse {
	if center == nil {
		return nil
	}
	return &dto.MedicalCenterResponse{
		ID:          center.ID,
		Name:        center.Name,
		Address:     center.Address,
		Phone:       center.Phone,
		Description: center.Description,
		Image:       center.Image,
	}
}

func MedicalCentersToResponses(centers []entity.MedicalCenter) []dto.MedicalCenterResponse {
	responses := make([]dto.MedicalCenterResponse, len(centers))
	for i, center := range centers {
		responses[i] = *MedicalCenterToResponse(&center)
	}
	return responses
}
