package config

import (
	"context"

	"github.com/collabhub/platform/project-service/application"
	"github.com/collabhub/platform/project-service/handlers"
	"github.com/collabhub/platform/project-service/infrastructure"
	"github.com/collabhub/platform/shared/events"
	sharedinfra "github.com/collabhub/platform/shared/infrastructure"
	"github.com/collabhub/platform/shared/logger"
	"github.com/collabhub/platform/shared/resilience"
	"github.com/collabhub/platform/shared/saga"
	"github.com/collabhub/platform/shared/telemetry"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	ProjectRepository     *infrastructure.PostgresProjectRepository
	ApplicationRepository *infrastructure.PostgresApplicationRepository
	EventStore            *sharedinfra.PostgresEventStore

	// Remote collaborators
	Registry    *resilience.Registry
	TeamGateway *infrastructure.HTTPTeamGateway
	Notifier    *resilience.NotificationDispatcher

	Orchestrator *saga.Orchestrator

	// Use Cases
	CreateProject     *application.CreateProject
	GetProject        *application.GetProject
	DeleteProject     *application.DeleteProject
	ApplyToProject    *application.ApplyToProject
	DecideApplication *application.DecideApplication
	ReleaseTeamMember *application.ReleaseTeamMember

	// HTTP Handlers
	ProjectHandlers *handlers.ProjectHandlers
	SagaHandlers    *handlers.SagaHandlers

	// Event Handlers
	ProjectEventHandlers *handlers.ProjectEventHandlers

	// Infrastructure; nil when not configured
	EventPublisher  *sharedinfra.SNSPublisherAdapter
	EventSubscriber *sharedinfra.SQSSubscriberAdapter

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	if config.Telemetry.Enabled {
		telConfig := telemetry.ProjectServiceConfig.
			WithOTLPEndpoint(config.Telemetry.OTLPEndpoint).
			WithEnvironment(config.Env)
		tel, telemetryShutdown, err := telemetry.InitTelemetry(ctx, telConfig)
		if err != nil {
			logger.Warn("continuing without telemetry", zap.Error(err))
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
		}
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", config.GetDatabaseURL())
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	deps.DB = db

	registry, err := resilience.NewRegistry(config.DependencyConfigs())
	if err != nil {
		deps.Close(ctx)
		return nil, errors.Wrap(err, "invalid remote dependency config")
	}
	deps.Registry = registry

	teamClient, err := registry.Client(resilience.TeamService)
	if err != nil {
		deps.Close(ctx)
		return nil, err
	}
	notificationClient, err := registry.Client(resilience.NotificationService)
	if err != nil {
		deps.Close(ctx)
		return nil, err
	}
	deps.TeamGateway = infrastructure.NewHTTPTeamGateway(teamClient)
	deps.Notifier = resilience.NewNotificationDispatcher(notificationClient)

	var publisher events.Publisher
	if config.AWS.SNSTopicArn != "" {
		deps.EventPublisher, err = sharedinfra.NewSNSPublisherAdapter(ctx, config.AWSConfig(), config.AWS.SNSTopicArn)
		if err != nil {
			deps.Close(ctx)
			return nil, errors.Wrap(err, "failed to create SNS publisher")
		}
		publisher = deps.EventPublisher
	} else {
		logger.Warn("aws.sns_topic_arn not set, integration events are disabled")
	}

	if config.AWS.SQSQueueURL != "" {
		deps.EventSubscriber, err = sharedinfra.NewSQSSubscriberAdapter(config.AWSConfig(), config.AWS.SQSQueueURL,
			sharedinfra.WithWorkers(config.AWS.SQSWorkers),
		)
		if err != nil {
			deps.Close(ctx)
			return nil, errors.Wrap(err, "failed to create SQS subscriber")
		}
	}

	deps.ProjectRepository = infrastructure.NewPostgresProjectRepository(db)
	deps.ApplicationRepository = infrastructure.NewPostgresApplicationRepository(db)
	deps.EventStore = sharedinfra.NewPostgresEventStore(db)

	deps.Orchestrator = saga.NewOrchestrator(
		saga.WithJournal(saga.NewEventStoreJournal(deps.EventStore)),
	)

	deps.CreateProject = application.NewCreateProject(deps.ProjectRepository, deps.TeamGateway, deps.Orchestrator, publisher)
	deps.GetProject = application.NewGetProject(deps.ProjectRepository, deps.ApplicationRepository)
	deps.DeleteProject = application.NewDeleteProject(deps.ProjectRepository, deps.TeamGateway, deps.Orchestrator, publisher)
	deps.ApplyToProject = application.NewApplyToProject(deps.ProjectRepository, deps.ApplicationRepository, deps.Notifier, publisher)
	deps.DecideApplication = application.NewDecideApplication(
		deps.ProjectRepository,
		deps.ApplicationRepository,
		deps.TeamGateway,
		deps.Notifier,
		deps.Orchestrator,
		publisher,
	)
	deps.ReleaseTeamMember = application.NewReleaseTeamMember(deps.ApplicationRepository, publisher)

	deps.ProjectHandlers = handlers.NewProjectHandlers(
		deps.CreateProject,
		deps.GetProject,
		deps.DeleteProject,
		deps.ApplyToProject,
		deps.DecideApplication,
	)
	deps.SagaHandlers = handlers.NewSagaHandlers(deps.EventStore)
	deps.ProjectEventHandlers = handlers.NewProjectEventHandlers(deps.ReleaseTeamMember)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	var errs error

	if d.EventSubscriber != nil {
		errs = multierr.Append(errs, errors.Wrap(d.EventSubscriber.Close(ctx), "failed to close event subscriber"))
	}

	if d.EventPublisher != nil {
		errs = multierr.Append(errs, errors.Wrap(d.EventPublisher.Close(), "failed to close event publisher"))
	}

	if d.DB != nil {
		errs = multierr.Append(errs, errors.Wrap(d.DB.Close(), "failed to close database"))
	}

	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	return errs
}
