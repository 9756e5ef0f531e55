package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/railplan/railplan/pkg/planner"
)

func StatsRouter(router fiber.Router, journeyPlanner *planner.Planner) {
	router.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(journeyPlanner.Stats())
	})
}
