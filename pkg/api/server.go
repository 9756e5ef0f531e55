package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/railplan/railplan/pkg/api/routes"
	"github.com/railplan/railplan/pkg/planner"
)

func SetupServer(listen string, journeyPlanner *planner.Planner) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.StationsRouter(group.Group("/stations"), journeyPlanner)

	routes.PlannerRouter(group.Group("/planner"), journeyPlanner)

	routes.StatsRouter(group.Group("/stats"), journeyPlanner)

	return webApp.Listen(listen)
}
