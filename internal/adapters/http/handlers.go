package http

import (
	"github.com/gofiber/fiber/v2"
)

// ListVenuesHandler returns every venue of the solution, normalized against
// the current app config.
func ListVenuesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		venues, err := deps.Venues.GetVenues(c.UserContext())
		if err != nil {
			return errFromDomain(c, err)
		}

		offset, limit := pageParams(c)
		page, pg := paginate(venues, offset, limit)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// GetVenueHandler returns a single venue as stored.
func GetVenueHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "venue id is required")
		}

		venue, err := deps.Venues.GetVenueByID(c.UserContext(), id)
		if err != nil {
			return errFromDomain(c, err)
		}
		if venue == nil {
			return newError(c, 404, "not_found", "venue not found")
		}
		return c.JSON(venue)
	}
}

// ActivateVenueHandler makes a venue current. With ?async=true the request is
// queued for the activator and 202 is returned; ?reload=true additionally
// refreshes the app config before the queued activation runs.
func ActivateVenueHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "venue id is required")
		}

		if c.QueryBool("async", false) {
			if deps.Activations == nil {
				return newError(c, 503, "unavailable", "activation queue not available")
			}
			if err := deps.Activations.RequestActivation(c.UserContext(), id, c.QueryBool("reload", false)); err != nil {
				return errInternal(c, err.Error())
			}
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "queued", "venue_id": id})
		}

		venue, err := deps.Venues.ActivateByID(c.UserContext(), id)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(venue)
	}
}

// CurrentVenueHandler returns the activation state and current venue.
func CurrentVenueHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "no-cache")
		return c.JSON(deps.Venues.Snapshot())
	}
}

// InitVenueHandler returns the venue the application was started with.
func InitVenueHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		venue, ok := deps.Configs.InitVenue().Last()
		if !ok || venue == nil {
			return newError(c, 404, "not_found", "no initial venue set")
		}
		return c.JSON(venue)
	}
}

// GetBuildingHandler returns a single building.
func GetBuildingHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "building id is required")
		}

		building, err := deps.Venues.GetBuildingByID(c.UserContext(), id)
		if err != nil {
			return errFromDomain(c, err)
		}
		if building == nil {
			return newError(c, 404, "not_found", "building not found")
		}
		return c.JSON(building)
	}
}

// AppConfigHandler returns the last loaded app config.
func AppConfigHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cfg := deps.Configs.Current()
		if cfg == nil {
			return newError(c, 503, "unavailable", "app config not loaded")
		}
		return c.JSON(cfg)
	}
}

// ReloadAppConfigHandler refetches the app config and publishes it.
func ReloadAppConfigHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Configs.SetAppConfig(c.UserContext()); err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(deps.Configs.Current())
	}
}
