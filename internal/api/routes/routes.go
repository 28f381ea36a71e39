package routes

import (
	"erp-backend/internal/api/handlers"
	"erp-backend/internal/api/middleware"
	"erp-backend/pkg/jwt"
	"erp-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies carries everything the router wires into handlers.
// RateLimiter and Gatherer are optional.
type Dependencies struct {
	JWT         *jwt.JWTUtil
	RateLimiter ratelimit.RateLimiter
	Gatherer    prometheus.Gatherer

	Auth         handlers.AuthService
	Vehicles     handlers.VehicleService
	Trips        handlers.TripService
	Maintenance  handlers.MaintenanceService
	Fuel         handlers.FuelService
	Assignments  handlers.AssignmentService
	Reports      handlers.ReportService
	FleetReports handlers.FleetReportService
	Exports      handlers.TableBuilder
	Health       *handlers.HealthHandler
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Auth)
	vehicleHandler := handlers.NewVehicleHandler(deps.Vehicles)
	tripHandler := handlers.NewTripHandler(deps.Trips)
	maintenanceHandler := handlers.NewMaintenanceHandler(deps.Maintenance)
	fuelHandler := handlers.NewFuelHandler(deps.Fuel)
	assignmentHandler := handlers.NewAssignmentHandler(deps.Assignments)
	reportHandler := handlers.NewReportHandler(deps.Reports, deps.Exports)
	fleetReportHandler := handlers.NewFleetReportHandler(deps.FleetReports)

	// Protected routes are limited after auth so buckets are per user.
	var limit []gin.HandlerFunc
	if deps.RateLimiter != nil {
		limit = append(limit, middleware.RateLimitMiddleware(deps.RateLimiter))
	}

	api := router.Group("/api/v1")

	if deps.Gatherer != nil {
		api.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Public routes
	public := api.Group("", limit...)
	if deps.Health != nil {
		public.GET("/health", deps.Health.HealthCheck)
	}
	auth := public.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWT))
	protected.Use(limit...)
	{
		protected.GET("/auth/profile", authHandler.GetProfile)

		fleet := protected.Group("/fleet")

		vehicles := fleet.Group("/vehicles")
		{
			vehicles.GET("", vehicleHandler.GetVehicles)
			vehicles.POST("", vehicleHandler.CreateVehicle)
			vehicles.GET("/summary", vehicleHandler.GetSummary)
			vehicles.GET("/dropdown", vehicleHandler.GetDropdown)
			vehicles.GET("/compliance", reportHandler.GetComplianceAlerts)
			vehicles.GET("/maintenance-predictions", reportHandler.GetMaintenancePredictions)
			vehicles.GET("/:id", vehicleHandler.GetVehicle)
			vehicles.PUT("/:id", vehicleHandler.UpdateVehicle)
			vehicles.PATCH("/:id", vehicleHandler.UpdateVehicle)
			vehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)
		}

		trips := fleet.Group("/trips")
		{
			trips.GET("", tripHandler.GetTrips)
			trips.POST("", tripHandler.CreateTrip)
			trips.GET("/:id", tripHandler.GetTrip)
			trips.PUT("/:id", tripHandler.UpdateTrip)
			trips.PATCH("/:id", tripHandler.UpdateTrip)
			trips.DELETE("/:id", tripHandler.DeleteTrip)
		}

		maintenance := fleet.Group("/maintenance")
		{
			maintenance.GET("", maintenanceHandler.GetRecords)
			maintenance.POST("", maintenanceHandler.CreateRecord)
			maintenance.GET("/:id", maintenanceHandler.GetRecord)
			maintenance.PUT("/:id", maintenanceHandler.UpdateRecord)
			maintenance.PATCH("/:id", maintenanceHandler.UpdateRecord)
			maintenance.DELETE("/:id", maintenanceHandler.DeleteRecord)
		}

		fuel := fleet.Group("/fuel")
		{
			fuel.GET("", fuelHandler.GetFuelLogs)
			fuel.POST("", fuelHandler.CreateFuelLog)
			fuel.GET("/stats", fuelHandler.GetFuelStats)
		}

		assignments := fleet.Group("/assignments")
		{
			assignments.GET("", assignmentHandler.GetAssignments)
			assignments.POST("", assignmentHandler.CreateAssignment)
			assignments.GET("/:id", assignmentHandler.GetAssignment)
			assignments.PUT("/:id", assignmentHandler.UpdateAssignment)
			assignments.PATCH("/:id", assignmentHandler.UpdateAssignment)
			assignments.DELETE("/:id", assignmentHandler.DeleteAssignment)
		}

		reports := fleet.Group("/reports")
		{
			reports.GET("/utilization", fleetReportHandler.GetUtilization)
			reports.GET("/fuel-consumption", fleetReportHandler.GetFuelConsumption)
			reports.GET("/maintenance-costs", fleetReportHandler.GetMaintenanceCosts)
		}

		fleet.GET("/stats", vehicleHandler.GetStats)
		fleet.GET("/export/:type", reportHandler.Export)
	}
}
