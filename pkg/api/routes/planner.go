package routes

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"

	"github.com/railplan/railplan/pkg/planner"
)

func PlannerRouter(router fiber.Router, journeyPlanner *planner.Planner) {
	router.Get("/:origin/:destination", func(c *fiber.Ctx) error {
		return getPlanBetweenStations(c, journeyPlanner)
	})
}

func getPlanBetweenStations(c *fiber.Ctx, journeyPlanner *planner.Planner) error {
	origin := c.Params("origin")
	destination := c.Params("destination")

	maxChanges, err := strconv.Atoi(c.Query("max_changes", "0"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter max_changes should be an integer",
		})
	}

	avoidWalking := c.QueryBool("avoid_walking")

	route := journeyPlanner.CalculateRoute(origin, destination, planner.Preferences{
		AvoidWalking: avoidWalking,
		MaxChanges:   maxChanges,
		Optimize:     planner.Strategy(c.Query("optimize", "time")),
	})
	if route == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "No route could be planned between the two stations",
		})
	}

	groups := []string{"basic"}
	if c.QueryBool("detailed") {
		groups = append(groups, "detailed")
	}

	routeReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, route)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce route",
		})
	}

	return c.JSON(routeReduced)
}
