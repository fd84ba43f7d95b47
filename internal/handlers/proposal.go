package handlers

import (
	"net/http"

	"cargolink/internal/models"
	"cargolink/internal/services"
	"cargolink/internal/utils"

	"github.com/gin-gonic/gin"
)

type ProposalHandler struct{}

func NewProposalHandler() *ProposalHandler {
	return &ProposalHandler{}
}

type createProposalRequest struct {
	SubjectKind models.SubjectKind `json:"subject_kind" binding:"required,oneof=post transit"`
	SubjectID   uint               `json:"subject_id" binding:"required"`
}

// Create opens a proposal from the logged-in user on a post or transit
// offer. The fan-out to the owner happens inside the service.
func (h *ProposalHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req createProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	proposal, err := services.CreateProposal(req.SubjectKind, req.SubjectID, user.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, proposal)
}

// Accept transitions a pending proposal to accepted. Re-accepting an
// already accepted proposal returns it unchanged.
func (h *ProposalHandler) Accept(c *gin.Context) {
	h.setStatus(c, models.StatusAccepted)
}

// Refuse transitions a pending proposal to refused.
func (h *ProposalHandler) Refuse(c *gin.Context) {
	h.setStatus(c, models.StatusRefused)
}

func (h *ProposalHandler) setStatus(c *gin.Context, status models.ProposalStatus) {
	user := CurrentUser(c)

	proposal, err := services.SetStatus(utils.StringToUint(c.Param("id")), status, user.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, proposal)
}

// ListSent returns proposals the user sent; ?status= narrows by status.
func (h *ProposalHandler) ListSent(c *gin.Context) {
	h.list(c, services.RoleSender)
}

// ListReceived returns proposals on the user's own subjects.
func (h *ProposalHandler) ListReceived(c *gin.Context) {
	h.list(c, services.RoleOwner)
}

func (h *ProposalHandler) list(c *gin.Context, role string) {
	user := CurrentUser(c)

	proposals, err := services.ListProposals(user.ID, role, models.ProposalStatus(c.Query("status")))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, proposals)
}

// Active resolves which side of a subject the user stands on, for the
// detail views: tried as sender first, then as owner, mirroring the
// client's role probing.
func (h *ProposalHandler) Active(c *gin.Context) {
	user := CurrentUser(c)
	kind := models.SubjectKind(c.Param("kind"))
	subjectID := utils.StringToUint(c.Param("subject_id"))

	if !kind.Valid() {
		RespondError(c, http.StatusBadRequest, "unknown subject kind")
		return
	}

	proposal, err := services.ActiveProposalFor(user.ID, services.RoleSender, kind, subjectID)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"role": services.RoleSender, "proposal": proposal})
		return
	}

	proposal, err = services.ActiveProposalFor(user.ID, services.RoleOwner, kind, subjectID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": services.RoleOwner, "proposal": proposal})
}
