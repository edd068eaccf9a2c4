package handler

import (
	"github.com/gin-gonic/gin"

	"userhub/internal/app"
	"userhub/internal/transport/http/response"
	"userhub/internal/validation"
)

type UserHandler struct {
	userService *app.UserService
}

func NewUserHandler(userService *app.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *gin.Context) {
	result, err := h.userService.List(c.Request.Context(), app.ListInput{
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Users fetched successfully", result)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "User fetched successfully", user)
}

func (h *UserHandler) Create(c *gin.Context) {
	var input validation.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, 400, "Invalid request payload")
		return
	}

	user, err := h.userService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "User created successfully", user)
}

func (h *UserHandler) Update(c *gin.Context) {
	var input validation.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, 400, "Invalid request payload")
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "User updated successfully", user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "User deleted successfully", nil)
}

func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.userService.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "User statistics fetched successfully", stats)
}
