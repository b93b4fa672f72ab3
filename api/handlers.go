package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wanderergaurav/Varuna-marine/models"
)

// balanceResponse is returned by every endpoint that reports a single balance
type balanceResponse struct {
	ShipID  string          `json:"shipId"`
	Year    int             `json:"year"`
	Balance decimal.Decimal `json:"cb"`
}

func (s *Server) listRoutes(c *gin.Context) {
	routes, err := s.services.Routes.ListRoutes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

func (s *Server) setBaseline(c *gin.Context) {
	if err := s.services.Routes.SetBaseline(c.Request.Context(), c.Param("routeId")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) comparison(c *gin.Context) {
	comparisons, err := s.services.Routes.Comparison(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comparisons)
}

func (s *Server) listCompliance(c *gin.Context) {
	records, err := s.services.Compliance.ListCompliance(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) getComplianceBalance(c *gin.Context) {
	s.balanceFromQuery(c, s.services.Compliance.GetComplianceBalance)
}

func (s *Server) getAdjustedComplianceBalance(c *gin.Context) {
	s.balanceFromQuery(c, s.services.Compliance.GetAdjustedComplianceBalance)
}

func (s *Server) listBankEntries(c *gin.Context) {
	entries, err := s.services.Banking.ListBankEntries(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) bankHistory(c *gin.Context) {
	shipID := c.Query("shipId")
	if shipID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shipId is required"})
		return
	}

	entries, err := s.services.Banking.ListBankEntriesByShip(c.Request.Context(), shipID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) bankSurplus(c *gin.Context) {
	s.balanceFromBody(c, s.services.Banking.BankSurplus)
}

func (s *Server) applyBankedSurplus(c *gin.Context) {
	s.balanceFromBody(c, s.services.Banking.ApplyBankedSurplus)
}

func (s *Server) listPools(c *gin.Context) {
	pools, err := s.services.Pools.ListPools(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pools)
}

func (s *Server) createPool(c *gin.Context) {
	var req createPoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	pool, err := s.services.Pools.CreatePool(c.Request.Context(), int(*req.Year), req.ShipIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pool)
}

type balanceFunc func(ctx context.Context, shipID string, year int) (*models.ComplianceBalance, error)

func (s *Server) balanceFromQuery(c *gin.Context, fn balanceFunc) {
	var query shipYearQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}
	year, err := parseYear(query.Year)
	if err != nil {
		badRequest(c, err)
		return
	}
	s.respondBalance(c, fn, query.ShipID, year)
}

func (s *Server) balanceFromBody(c *gin.Context, fn balanceFunc) {
	var req shipYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.respondBalance(c, fn, req.ShipID, int(*req.Year))
}

func (s *Server) respondBalance(c *gin.Context, fn balanceFunc, shipID string, year int) {
	cb, err := fn(c.Request.Context(), shipID, year)
	if err != nil {
		writeError(c, err)
		return
	}
	if cb == nil {
		notFound(c, "no compliance data for ship")
		return
	}
	c.JSON(http.StatusOK, balanceResponse{ShipID: shipID, Year: year, Balance: cb.Balance})
}
