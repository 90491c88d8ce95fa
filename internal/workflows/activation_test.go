package workflows_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/samirrijal/venuehub/internal/core/domain"
	"github.com/samirrijal/venuehub/internal/core/usecases"
	apperrors "github.com/samirrijal/venuehub/internal/pkg/errors"
	"github.com/samirrijal/venuehub/internal/workflows"
)

type venueProvider struct{ venues map[string]*domain.Venue }

func (p *venueProvider) GetVenues(ctx context.Context) ([]domain.Venue, error) {
	out := make([]domain.Venue, 0, len(p.venues))
	for _, v := range p.venues {
		out = append(out, *v.Clone())
	}
	return out, nil
}

func (p *venueProvider) GetVenue(ctx context.Context, id string) (*domain.Venue, error) {
	if v, ok := p.venues[id]; ok {
		return v.Clone(), nil
	}
	return nil, apperrors.ErrVenueNotFound(id, nil)
}

func (p *venueProvider) GetBuilding(ctx context.Context, id string) (*domain.Building, error) {
	return nil, apperrors.ErrBuildingNotFound(id, nil)
}

type configProvider struct{ raw *domain.RawAppConfig }

func (p *configProvider) GetConfig(ctx context.Context) (*domain.RawAppConfig, error) {
	return p.raw, nil
}

type activationSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env     *testsuite.TestWorkflowEnvironment
	configs *configProvider
	svc     *usecases.VenueService
}

func TestActivationWorkflow(t *testing.T) {
	suite.Run(t, new(activationSuite))
}

func (s *activationSuite) SetupTest() {
	s.configs = &configProvider{raw: &domain.RawAppConfig{
		AppSettings: domain.RawAppSettings{Title: "Campus"},
		VenueImages: map[string]string{"hq": "https://img/hq.png"},
	}}
	appConfigs := usecases.NewAppConfigService(s.configs, nil)

	venues := &venueProvider{venues: map[string]*domain.Venue{
		"v1": {
			ID:     "v1",
			Name:   "HQ",
			Anchor: domain.Point{Type: "Point", Coordinates: []float64{12.34, 56.78}},
			Geometry: domain.Polygon{
				Type:        "Polygon",
				Coordinates: [][][2]float64{{{10, 50}, {15, 50}, {15, 55}, {10, 55}}},
			},
		},
	}}
	s.svc = usecases.NewVenueService(venues, nil, appConfigs, nil, nil)

	s.env = s.NewTestWorkflowEnvironment()
	s.env.RegisterWorkflow(workflows.VenueActivationWorkflow)
	s.env.RegisterActivity(&workflows.ActivationActivities{Venues: s.svc, Configs: appConfigs})
}

func (s *activationSuite) AfterTest(suiteName, testName string) {
	s.env.AssertExpectations(s.T())
}

func (s *activationSuite) TestActivatesVenue() {
	s.env.ExecuteWorkflow(workflows.VenueActivationWorkflow, workflows.ActivationInput{VenueID: "v1", ReloadConfig: true})

	s.Require().True(s.env.IsWorkflowCompleted())
	s.Require().NoError(s.env.GetWorkflowError())

	var result workflows.ActivationResult
	s.Require().NoError(s.env.GetWorkflowResult(&result))
	s.Equal("v1", result.VenueID)
	s.True(result.OnlyVenue)
	s.False(result.Superseded)
	s.Require().NotNil(result.BoundingBox)
	s.Equal(domain.BoundingBox{East: 15, West: 10, North: 55, South: 50}, *result.BoundingBox)

	current := s.svc.Snapshot().Venue
	s.Require().NotNil(current)
	s.Equal("https://img/hq.png", current.Image, "config reload runs before activation")
}

func (s *activationSuite) TestInvalidConfigDoesNotBlockActivation() {
	s.configs.raw = &domain.RawAppConfig{AppSettings: domain.RawAppSettings{DisplayAliases: "maybe"}}

	s.env.ExecuteWorkflow(workflows.VenueActivationWorkflow, workflows.ActivationInput{VenueID: "v1", ReloadConfig: true})

	s.Require().True(s.env.IsWorkflowCompleted())
	s.Require().NoError(s.env.GetWorkflowError())
	s.Equal(usecases.StateActive, s.svc.Snapshot().State)
}

func (s *activationSuite) TestUnknownVenueIsNotRetried() {
	s.env.ExecuteWorkflow(workflows.VenueActivationWorkflow, workflows.ActivationInput{VenueID: "missing"})

	s.Require().True(s.env.IsWorkflowCompleted())
	err := s.env.GetWorkflowError()
	s.Require().Error(err)

	var appErr *temporal.ApplicationError
	s.Require().True(errors.As(err, &appErr))
	s.Equal(apperrors.ErrCodeVenueNotFound, appErr.Type())
	s.True(appErr.NonRetryable())
}

func (s *activationSuite) TestSupersededIsNotAFailure() {
	s.env.OnActivity(workflows.ActivityActivateVenue, mock.Anything, "v1").
		Return(&workflows.ActivationResult{VenueID: "v1", Superseded: true}, nil).Once()

	s.env.ExecuteWorkflow(workflows.VenueActivationWorkflow, workflows.ActivationInput{VenueID: "v1"})

	s.Require().True(s.env.IsWorkflowCompleted())
	s.Require().NoError(s.env.GetWorkflowError())

	var result workflows.ActivationResult
	s.Require().NoError(s.env.GetWorkflowResult(&result))
	s.True(result.Superseded)
}
