package http

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/venuehub/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to the venue services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	pointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Point",
		Fields: graphql.Fields{
			"type":        &graphql.Field{Type: graphql.String},
			"coordinates": &graphql.Field{Type: graphql.NewList(graphql.Float)},
		},
	})

	boundsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "BoundingBox",
		Fields: graphql.Fields{
			"east":  &graphql.Field{Type: graphql.Float},
			"west":  &graphql.Field{Type: graphql.Float},
			"north": &graphql.Field{Type: graphql.Float},
			"south": &graphql.Field{Type: graphql.Float},
		},
	})

	venueType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Venue",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.String},
			"name":         &graphql.Field{Type: graphql.String},
			"anchor":       &graphql.Field{Type: pointType},
			"center":       &graphql.Field{Type: graphql.NewList(graphql.Float), Description: "[lat, lon]"},
			"image":        &graphql.Field{Type: graphql.String},
			"bounding_box": &graphql.Field{Type: boundsType},
			"only_venue":   &graphql.Field{Type: graphql.Boolean},
		},
	})

	buildingType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Building",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.String},
			"venue_id": &graphql.Field{Type: graphql.String},
			"name":     &graphql.Field{Type: graphql.String},
			"anchor":   &graphql.Field{Type: pointType},
		},
	})

	venueStateType := graphql.NewObject(graphql.ObjectConfig{
		Name: "VenueState",
		Fields: graphql.Fields{
			"state":                &graphql.Field{Type: graphql.String},
			"venue":                &graphql.Field{Type: venueType},
			"return_button_active": &graphql.Field{Type: graphql.Boolean},
			"favoured_venue":       &graphql.Field{Type: graphql.Boolean},
			"fit_venues":           &graphql.Field{Type: graphql.Boolean},
		},
	})

	venueImageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "VenueImage",
		Fields: graphql.Fields{
			"name": &graphql.Field{Type: graphql.String},
			"url":  &graphql.Field{Type: graphql.String},
		},
	})

	appConfigType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AppConfig",
		Fields: graphql.Fields{
			"title": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.AppConfig).AppSettings.Title, nil
				},
			},
			"display_aliases": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.AppConfig).AppSettings.DisplayAliases, nil
				},
			},
			"venue_images": &graphql.Field{
				Type: graphql.NewList(venueImageType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					images := p.Source.(*domain.AppConfig).VenueImages
					names := make([]string, 0, len(images))
					for name := range images {
						names = append(names, name)
					}
					sort.Strings(names)
					out := make([]map[string]interface{}, 0, len(names))
					for _, name := range names {
						out = append(out, map[string]interface{}{"name": name, "url": images[name]})
					}
					return out, nil
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"venues": &graphql.Field{
				Type:        graphql.NewList(venueType),
				Description: "List all venues of the solution",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Venues.GetVenues(p.Context)
				},
			},
			"venue": &graphql.Field{
				Type:        venueType,
				Description: "Get a venue by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Venues.GetVenueByID(p.Context, p.Args["id"].(string))
				},
			},
			"building": &graphql.Field{
				Type:        buildingType,
				Description: "Get a building by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Venues.GetBuildingByID(p.Context, p.Args["id"].(string))
				},
			},
			"currentVenue": &graphql.Field{
				Type:        venueStateType,
				Description: "Activation state and current venue",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Venues.Snapshot(), nil
				},
			},
			"appConfig": &graphql.Field{
				Type:        appConfigType,
				Description: "Last loaded application config",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if cfg := deps.Configs.Current(); cfg != nil {
						return cfg, nil
					}
					return nil, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"activateVenue": &graphql.Field{
				Type:        venueType,
				Description: "Make a venue the current one",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Venues.ActivateByID(p.Context, p.Args["id"].(string))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
