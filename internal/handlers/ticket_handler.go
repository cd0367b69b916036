package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/lottery-results-backend/internal/models"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/ticket"
)

// ValidateTicket handles POST /tickets/validate. A malformed ticket is not
// an HTTP error; the verdict is in the body.
func ValidateTicket(c *gin.Context) {
	var req models.CheckTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ticket.Validate(req.Ticket))
}
