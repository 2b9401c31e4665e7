package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/agate-ltd/agency-crm/internal/api/dto"
	"github.com/agate-ltd/agency-crm/internal/service"
)

// StaffHandler exposes staff administration endpoints.
type StaffHandler struct {
	staffService *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// List handles GET /api/user/getusers.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	page, err := h.staffService.List(requestContext(c), service.StaffListParams{
		StartIndex: c.QueryInt("startIndex", 0),
		Limit:      c.QueryInt("limit", 0),
		Ascending:  c.Query("sort") == "asc",
	})
	if err != nil {
		return err
	}
	users := make([]dto.StaffResponse, 0, len(page.Staff))
	for i := range page.Staff {
		users = append(users, dto.NewStaffResponse(&page.Staff[i]))
	}
	return respond(c, http.StatusOK, dto.StaffListResponse{
		Users:          users,
		TotalUsers:     page.TotalUsers,
		LastMonthUsers: page.LastMonthUsers,
	})
}

// Avatars handles GET /api/user/getUsersPP.
func (h *StaffHandler) Avatars(c *fiber.Ctx) error {
	staff, err := h.staffService.Avatars(requestContext(c))
	if err != nil {
		return err
	}
	out := make([]dto.StaffAvatar, 0, len(staff))
	for _, s := range staff {
		out = append(out, dto.StaffAvatar{
			ID:             s.ID,
			StaffID:        s.StaffID,
			FirstName:      s.FirstName,
			LastName:       s.LastName,
			ProfilePicture: s.ProfilePicture,
			RoleFlags:      s.Roles.Flags(),
		})
	}
	return respond(c, http.StatusOK, fiber.Map{"users": out})
}

// UpdatePermissions handles PUT /api/user/update-permissions/:id.
func (h *StaffHandler) UpdatePermissions(c *fiber.Ctx) error {
	var req dto.UpdatePermissionsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	staff, err := h.staffService.UpdatePermissions(requestContext(c), c.Params("id"), req.RoleFlags.Roles())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewStaffResponse(staff))
}

// Update handles PUT /api/user/update/:id.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateStaffRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	in := service.StaffUpdateInput{
		StaffID:        req.StaffID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Password:       req.Password,
		ProfilePicture: req.ProfilePicture,
	}
	if req.HasRoleFlags() {
		roles := req.RoleFlags.Roles()
		in.Roles = &roles
	}
	staff, err := h.staffService.UpdateInfo(requestContext(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewStaffResponse(staff))
}

// Delete handles DELETE /api/user/delete/:id.
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	if err := h.staffService.Delete(requestContext(c), c.Params("id")); err != nil {
		return err
	}
	return respondMessage(c, "Staff deleted successfully")
}

// GetByStaffID handles GET /api/user/staff/:staffId.
func (h *StaffHandler) GetByStaffID(c *fiber.Ctx) error {
	staff, err := h.staffService.GetByStaffID(requestContext(c), c.Params("staffId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewStaffResponse(staff))
}

// GetByID handles GET /api/user/:id.
func (h *StaffHandler) GetByID(c *fiber.Ctx) error {
	staff, err := h.staffService.GetByID(requestContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewStaffResponse(staff))
}
