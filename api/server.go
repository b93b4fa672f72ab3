package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanderergaurav/Varuna-marine/service"
)

// Services are the ledger operations exposed over HTTP
type Services struct {
	Routes     service.RouteService
	Compliance service.ComplianceService
	Banking    service.BankingService
	Pools      service.PoolService
}

// Server holds the handlers of the ledger HTTP surface
type Server struct {
	services Services
}

// NewRouter builds the gin engine serving the ledger. recorder may be nil.
func NewRouter(services Services, recorder RequestRecorder) *gin.Engine {
	s := &Server{services: services}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(recorder))

	routes := router.Group("/routes")
	routes.GET("", s.listRoutes)
	routes.GET("/comparison", s.comparison)
	routes.POST("/:routeId/baseline", s.setBaseline)

	compliance := router.Group("/compliance")
	compliance.GET("", s.listCompliance)
	compliance.GET("/cb", s.getComplianceBalance)
	compliance.GET("/adjusted-cb", s.getAdjustedComplianceBalance)

	banking := router.Group("/banking")
	banking.GET("", s.listBankEntries)
	banking.GET("/history", s.bankHistory)
	banking.POST("/bank", s.bankSurplus)
	banking.POST("/apply", s.applyBankedSurplus)

	pools := router.Group("/pools")
	pools.GET("", s.listPools)
	pools.POST("", s.createPool)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
