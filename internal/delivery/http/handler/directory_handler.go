package handler

import (
	"net/http"
	"strconv"

	"medibook/internal/domain/entity"
	"medibook/internal/usecase"
	"medibook/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// DirectoryHandler serves the public browse endpoints. No authentication;
// patients window-shop here before they log in to book.
type DirectoryHandler struct {
	directoryUsecase usecase.DirectoryUsecase
}

func NewDirectoryHandler(directoryUsecase usecase.DirectoryUsecase) *DirectoryHandler {
	return &DirectoryHandler{directoryUsecase: directoryUsecase}
}

// SearchDoctors lists doctors filtered by name, department or center
// @Summary Search doctors
// @Tags Directory
// @Produce json
// @Param q query string false "Name or department text"
// @Param department_id query int false "Department filter"
// @Param medical_center_id query int false "Medical center filter"
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DirectoryHandler) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := &entity.DoctorFilter{Query: query.Get("q")}
	if v := query.Get("department_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "Invalid department_id")
			return
		}
		filter.DepartmentID = id
	}
	if v := query.Get("medical_center_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "Invalid medical_center_id")
			return
		}
		filter.MedicalCenterID = id
	}

	doctors, err := h.directoryUsecase.SearchDoctors(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to search doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// GetDoctor returns one doctor's public profile
// @Summary Get a doctor
// @Tags Directory
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [get]
func (h *DirectoryHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor id")
		return
	}

	doctor, err := h.directoryUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// ListDepartments lists all departments
// @Summary List departments
// @Tags Directory
// @Produce json
// @Success 200 {object} response.Response
// @Router /departments [get]
func (h *DirectoryHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.directoryUsecase.ListDepartments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list departments")
		return
	}

	response.Success(w, http.StatusOK, "Departments retrieved successfully", departments)
}

// ListMedicalCenters lists or searches medical centers
// @Summary List medical centers
// @Tags Directory
// @Produce json
// @Param q query string false "Name text"
// @Success 200 {object} response.Response
// @Router /medical-centers [get]
func (h *DirectoryHandler) ListMedicalCenters(w http.ResponseWriter, r *http.Request) {
	centers, err := h.directoryUsecase.ListMedicalCenters(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		response.InternalServerError(w, "Failed to list medical centers")
		return
	}

	response.Success(w, http.StatusOK, "Medical centers retrieved successfully", centers)
}
