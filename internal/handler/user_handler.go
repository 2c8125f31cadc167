package handler

import (
	"net/http"
	"strconv"

	"social-service/internal/models"
	"social-service/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
	geoService  service.GeoService
}

func NewUserHandler(userService service.UserService, geoService service.GeoService) *UserHandler {
	return &UserHandler{userService: userService, geoService: geoService}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AuthResponse{Token: token})
}

func (h *UserHandler) GetPublicByUsername(c *gin.Context) {
	params, ok := requireQuery(c, "username")
	if !ok {
		return
	}

	user, err := h.userService.GetPublicByUsername(c.Request.Context(), params[0])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetPrivateByUsername(c *gin.Context) {
	params, ok := requireQuery(c, "username")
	if !ok {
		return
	}

	user, err := h.userService.GetPrivateByUsername(c.Request.Context(), params[0])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetByEmail(c *gin.Context) {
	params, ok := requireQuery(c, "email")
	if !ok {
		return
	}

	user, err := h.userService.GetByEmail(c.Request.Context(), params[0])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) SaveProfilePicture(c *gin.Context) {
	params, ok := requireQuery(c, "username")
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}

	payload, err := h.userService.SaveProfilePicture(c.Request.Context(), params[0], file)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *UserHandler) SaveCoverImage(c *gin.Context) {
	params, ok := requireQuery(c, "username")
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}

	payload, err := h.userService.SaveCoverImage(c.Request.Context(), params[0], file)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *UserHandler) GetProfilePictureLink(c *gin.Context) {
	params, ok := requireQuery(c, "username")
	if !ok {
		return
	}

	link, err := h.userService.GetProfilePictureLink(c.Request.Context(), params[0])
	if err != nil {
		writeError(c, err)
		return
	}
	c.String(http.StatusOK, link)
}

func (h *UserHandler) GetCoverImageLink(c *gin.Context) {
	params, ok := requireQuery(c, "username")
	if !ok {
		return
	}

	link, err := h.userService.GetCoverImageLink(c.Request.Context(), params[0])
	if err != nil {
		writeError(c, err)
		return
	}
	c.String(http.StatusOK, link)
}

func (h *UserHandler) RemoveProfilePicture(c *gin.Context) {
	params, ok := requireQuery(c, "username")
	if !ok {
		return
	}

	payload, err := h.userService.RemoveProfilePicture(c.Request.Context(), params[0])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *UserHandler) RemoveCoverImage(c *gin.Context) {
	params, ok := requireQuery(c, "username")
	if !ok {
		return
	}

	payload, err := h.userService.RemoveCoverImage(c.Request.Context(), params[0])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// ---------------------- countries and regions

func (h *UserHandler) GetCountry(c *gin.Context) {
	params, ok := requireQuery(c, "username")
	if !ok {
		return
	}

	country, err := h.geoService.GetCountryOfUser(c.Request.Context(), params[0])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, country)
}

func (h *UserHandler) SetCountry(c *gin.Context) {
	params, ok := requireQuery(c, "username", "countryId")
	if !ok {
		return
	}
	countryID, err := strconv.ParseUint(params[1], 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "countryId must be a number"})
		return
	}

	payload, err := h.geoService.SetCountryForUser(c.Request.Context(), params[0], uint(countryID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *UserHandler) GetAvailableRegions(c *gin.Context) {
	params, ok := requireQuery(c, "username")
	if !ok {
		return
	}

	regions, err := h.geoService.GetAvailableRegions(c.Request.Context(), params[0])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, regions)
}

func (h *UserHandler) GetPrimaryRegion(c *gin.Context) {
	params, ok := requireQuery(c, "username")
	if !ok {
		return
	}

	region, err := h.geoService.GetPrimaryRegionOfUser(c.Request.Context(), params[0])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, region)
}

func (h *UserHandler) GetSecondaryRegions(c *gin.Context) {
	params, ok := requireQuery(c, "username")
	if !ok {
		return
	}

	regions, err := h.geoService.GetSecondaryRegionsOfUser(c.Request.Context(), params[0])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, regions)
}

func (h *UserHandler) SetRegion(c *gin.Context) {
	params, ok := requireQuery(c, "username", "regionId")
	if !ok {
		return
	}
	regionID, err := strconv.ParseUint(params[1], 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "regionId must be a number"})
		return
	}
	primary := c.Query("primary") == "true"

	payload, err := h.geoService.SetRegionForUser(c.Request.Context(), params[0], uint(regionID), primary)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// RegisterRoutes wires the public auth endpoints and the protected user
// endpoints.
func (h *UserHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	auth := public.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	user := protected.Group("/user")
	{
		user.GET("/getPublicByUsername", h.GetPublicByUsername)
		user.GET("/getPrivateByUsername", h.GetPrivateByUsername)
		user.GET("/getByEmail", h.GetByEmail)
		user.PUT("/saveProfilePicture", h.SaveProfilePicture)
		user.GET("/getProfilePictureLink", h.GetProfilePictureLink)
		user.DELETE("/removeProfilePicture", h.RemoveProfilePicture)
		user.PUT("/saveCoverImage", h.SaveCoverImage)
		user.GET("/getCoverImageLink", h.GetCoverImageLink)
		user.DELETE("/removeCoverImage", h.RemoveCoverImage)
		user.GET("/getCountry", h.GetCountry)
		user.PUT("/setCountry", h.SetCountry)
		user.GET("/getAvailableRegions", h.GetAvailableRegions)
		user.GET("/getPrimaryRegion", h.GetPrimaryRegion)
		user.GET("/getSecondaryRegions", h.GetSecondaryRegions)
		user.PUT("/setRegion", h.SetRegion)
	}
}
