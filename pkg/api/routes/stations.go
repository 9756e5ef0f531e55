package routes

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/railplan/railplan/pkg/planner"
)

func StationsRouter(router fiber.Router, journeyPlanner *planner.Planner) {
	router.Get("/search", func(c *fiber.Ctx) error {
		return searchStations(c, journeyPlanner)
	})
}

func searchStations(c *fiber.Ctx, journeyPlanner *planner.Planner) error {
	query := c.Query("query")
	if query == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter query must be provided",
		})
	}

	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter limit should be an integer",
		})
	}

	return c.JSON(fiber.Map{
		"stations": journeyPlanner.SearchStations(query, limit),
	})
}
