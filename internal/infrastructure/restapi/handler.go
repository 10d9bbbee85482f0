// Package restapi is the thin HTTP front-end: the single
// POST /checkRolesOfMembers endpoint, plus liveness and metrics.
package restapi

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"rolegate/internal/app/evaluator"
	"rolegate/internal/app/port"
	"rolegate/internal/domain/entity"
)

// Handler wires the evaluator into the HTTP surface.
type Handler struct {
	registry port.Registry
	log      port.Logger
}

// NewHandler builds a Handler backed by registry.
func NewHandler(registry port.Registry, log port.Logger) *Handler {
	return &Handler{registry: registry, log: log}
}

// CheckRolesOfMembers handles POST /checkRolesOfMembers: evaluates every
// role concurrently against the same user set and replies with one
// CheckRolesOfMembersResult per role, in input-role order.
func (h *Handler) CheckRolesOfMembers(c *gin.Context) {
	var req entity.CheckRolesOfMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sendDetails := false
	if req.SendDetails != nil {
		sendDetails = *req.SendDetails
	}

	results := make([]entity.CheckRolesOfMembersResult, len(req.Roles))

	var wg sync.WaitGroup
	for i, role := range req.Roles {
		wg.Add(1)
		go func(i int, role entity.Role) {
			defer wg.Done()
			result := evaluator.CheckAccess(c.Request.Context(), req.Users, role.Requirements, role.Logic, sendDetails, h.registry)
			roleID := uint64(0)
			if role.ID != nil {
				roleID = *role.ID
			}
			results[i] = entity.CheckRolesOfMembersResult{
				RoleID: roleID,
				Users:  result.Accesses,
				Errors: result.Errors,
			}
		}(i, role)
	}
	wg.Wait()

	c.JSON(http.StatusOK, results)
}

// Healthz reports process liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
