package handlers

import (
	"net/http"
	"strconv"
	"time"

	"safarexpress/middleware"
	"safarexpress/models"
	"safarexpress/services/admin"
	"safarexpress/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	Service admin.AdminService
}

func NewAdminHandler(svc admin.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) HealthSummaryHandler(c *gin.Context) {
	summary, err := h.Service.HealthSummary(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, summary)
}

// queryInt returns 0 for a missing or non-numeric value so the service
// falls back to its defaults.
func queryInt(c *gin.Context, name string) int64 {
	n, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func (h *AdminHandler) AuditLogsHandler(c *gin.Context) {
	page, err := h.Service.ListAuditLogs(c.Request.Context(), queryInt(c, "page"), queryInt(c, "pageSize"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SuccessWithMeta(c, http.StatusOK, gin.H{"logs": page.Logs}, gin.H{
		"page":     page.Page,
		"pageSize": page.PageSize,
		"total":    page.Total,
	})
}

func (h *AdminHandler) ListRoutesHandler(c *gin.Context) {
	routes, err := h.Service.ListRoutes(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"routes": routes})
}

func (h *AdminHandler) CreateRouteHandler(c *gin.Context) {
	var input models.RouteInput
	if !bindJSON(c, &input) {
		return
	}
	actor, _ := middleware.ActorFrom(c)
	route, err := h.Service.CreateRoute(c.Request.Context(), input, actor, utils.RequestID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, gin.H{"route": route})
}

func (h *AdminHandler) ListCabsHandler(c *gin.Context) {
	cabs, err := h.Service.ListCabs(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"cabs": cabs})
}

func (h *AdminHandler) CreateCabHandler(c *gin.Context) {
	var input models.CabInput
	if !bindJSON(c, &input) {
		return
	}
	actor, _ := middleware.ActorFrom(c)
	cab, err := h.Service.CreateCab(c.Request.Context(), input, actor, utils.RequestID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, gin.H{"cab": cab})
}

func (h *AdminHandler) BookingAlertsHandler(c *gin.Context) {
	var since time.Time
	if raw := c.Query("since"); raw != "" {
		t, err := utils.ParseDate(raw)
		if err != nil {
			utils.RespondError(c, utils.ValidationError([]utils.FieldError{
				{Path: "since", Message: "must be a valid date"},
			}))
			return
		}
		since = t
	}
	alerts, err := h.Service.BookingAlerts(c.Request.Context(), since)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, alerts)
}
