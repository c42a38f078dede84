package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pinmap/internal/auth"
	"pinmap/internal/domain"
	"pinmap/internal/export"
	"pinmap/internal/filter"
	"pinmap/internal/service"
)

const claimsKey = "authClaims"

// Handler wires HTTP routes to domain services.
type Handler struct {
	pins     service.PinService
	visits   service.VisitService
	settings service.SettingsService
	users    service.UserService
	tokens   *auth.TokenManager
	logger   *logrus.Logger
}

func NewHandler(
	pins service.PinService,
	visits service.VisitService,
	settings service.SettingsService,
	users service.UserService,
	tokens *auth.TokenManager,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		pins:     pins,
		visits:   visits,
		settings: settings,
		users:    users,
		tokens:   tokens,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": true})
		})
		api.GET("/config", h.getSettings)
		api.GET("/pins", h.listPins)
		api.POST("/pins", h.createPin)
		api.POST("/visits", h.recordVisit)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", h.login)
			// bootstrap-sensitive: open while no admin exists,
			// so only optional auth here; the service enforces the gate
			authGroup.POST("/register", h.optionalAuth(), h.register)
		}

		admin := api.Group("/admin", h.requireAdmin())
		{
			admin.PUT("/config", h.updateSettings)
			admin.GET("/export/pins.xlsx", h.exportPins)
			admin.GET("/export/visits.xlsx", h.exportVisits)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requireAdmin is the access gate for privileged routes: a verified bearer
// token with the admin role, checked before any handler runs.
func (h *Handler) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := h.claimsFromRequest(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// optionalAuth attaches claims when a valid token is presented but never
// rejects the request itself.
func (h *Handler) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := h.claimsFromRequest(c); err == nil {
			c.Set(claimsKey, claims)
		}
		c.Next()
	}
}

func (h *Handler) claimsFromRequest(c *gin.Context) (*auth.Claims, error) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return nil, auth.ErrTokenInvalid
	}
	return h.tokens.Verify(strings.TrimSpace(token))
}

func claimsFromContext(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

type createPinRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Longitude   *float64 `json:"lng" binding:"required"`
	Latitude    *float64 `json:"lat" binding:"required"`
}

type recordVisitRequest struct {
	VisitorHash string `json:"user_hash" binding:"required"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Date        string `json:"date"`
	DeviceHint  string `json:"device_hint"`
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateSettingsRequest struct {
	CenterLongitude *float64 `json:"center_lng" binding:"required"`
	CenterLatitude  *float64 `json:"center_lat" binding:"required"`
	Zoom            *int     `json:"zoom" binding:"required"`
}

type PinResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Longitude   float64 `json:"lng"`
	Latitude    float64 `json:"lat"`
	CreatedAt   string  `json:"created_at"`
}

type SettingsResponse struct {
	CenterLongitude float64 `json:"center_lng"`
	CenterLatitude  float64 `json:"center_lat"`
	Zoom            int     `json:"zoom"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *Handler) createPin(c *gin.Context) {
	var req createPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pin, err := h.pins.CreatePin(c.Request.Context(), req.Title, req.Description, *req.Longitude, *req.Latitude)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pinToResponse(*pin))
}

func (h *Handler) listPins(c *gin.Context) {
	f, err := filter.Parse(filterParams(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	pins, err := h.pins.ListPins(c.Request.Context(), f)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]PinResponse, len(pins))
	for i := range pins {
		resp[i] = pinToResponse(pins[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) recordVisit(c *gin.Context) {
	var req recordVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	visit, err := h.visits.RecordVisit(c.Request.Context(), req.VisitorHash, req.Name, req.Age, req.Date, req.DeviceHint)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": visit.ID})
}

func (h *Handler) getSettings(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settingsToResponse(settings))
}

func (h *Handler) updateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.settings.Update(c.Request.Context(), *req.CenterLongitude, *req.CenterLatitude, *req.Zoom)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settingsToResponse(settings))
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RoleAdmin
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password, role, claimsFromContext(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, UserResponse{ID: user.ID, Username: user.Username, Role: string(user.Role)})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int64(h.tokens.TTL().Seconds()),
		"user":       UserResponse{ID: user.ID, Username: user.Username, Role: string(user.Role)},
	})
}

func (h *Handler) exportPins(c *gin.Context) {
	f, err := filter.Parse(filterParams(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	pins, err := h.pins.ExportPins(c.Request.Context(), f)
	if err != nil {
		h.respondError(c, err)
		return
	}

	data, err := export.Pins("pins", pins)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.sendAttachment(c, export.Filename("pins", f.Qualifier(), time.Now()), data)
}

func (h *Handler) exportVisits(c *gin.Context) {
	visits, err := h.visits.ExportVisits(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	data, err := export.Visits("visits", visits)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.sendAttachment(c, export.Filename("visits", "todo", time.Now()), data)
}

func (h *Handler) sendAttachment(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, export.ContentType, data)
}

func filterParams(c *gin.Context) filter.Params {
	return filter.Params{
		Date:  c.Query("date"),
		Month: c.Query("month"),
		Year:  c.Query("year"),
		Start: c.Query("start"),
		End:   c.Query("end"),
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, auth.ErrTokenInvalid),
		errors.Is(err, auth.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
	case errors.Is(err, domain.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pinToResponse(pin domain.Pin) PinResponse {
	return PinResponse{
		ID:          pin.ID,
		Title:       pin.Title,
		Description: pin.Description,
		Longitude:   pin.Longitude,
		Latitude:    pin.Latitude,
		CreatedAt:   pin.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func settingsToResponse(s *domain.Settings) SettingsResponse {
	return SettingsResponse{
		CenterLongitude: s.CenterLongitude,
		CenterLatitude:  s.CenterLatitude,
		Zoom:            s.Zoom,
	}
}
