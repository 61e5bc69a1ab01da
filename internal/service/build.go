package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"bpauto/internal/bps"
	"bpauto/internal/config"
	"bpauto/internal/domain"
	"bpauto/internal/expand"
	"bpauto/internal/payload"
	"bpauto/internal/repository"
	"bpauto/internal/superflow"
	"bpauto/internal/tcl"
)

// BuildService turns a configuration into a script, payload files and an
// archived plan
type BuildService struct {
	repo     repository.Repository
	eventBus *EventBus
	outDir   string
}

// BuildResult describes the artifacts of one build
type BuildResult struct {
	Plan       *domain.Plan
	Report     *expand.Report
	ScriptPath string
	Payloads   []string
}

// NewBuildService creates a build service writing into outDir. repo may be
// nil, in which case plans are not archived.
func NewBuildService(repo repository.Repository, eventBus *EventBus, outDir string) *BuildService {
	if eventBus == nil {
		eventBus = NewEventBus()
	}
	if outDir == "" {
		outDir = "."
	}
	return &BuildService{
		repo:     repo,
		eventBus: eventBus,
		outDir:   outDir,
	}
}

// Build runs every configured step in order
func (s *BuildService) Build(ctx context.Context, cfg *config.Config) (*BuildResult, error) {
	s.eventBus.Publish(Event{Type: EventBuildStarted, Payload: cfg.Connection.TesterIP})

	res, err := s.build(ctx, cfg)
	if err != nil {
		s.eventBus.Publish(Event{Type: EventBuildFailed, Payload: err.Error()})
		return nil, err
	}

	s.eventBus.Publish(Event{Type: EventBuildCompleted, Payload: res.Plan.Info()})
	return res, nil
}

func (s *BuildService) build(ctx context.Context, cfg *config.Config) (*BuildResult, error) {
	buf := tcl.NewBuffer()
	session := bps.NewSession(cfg.General.Prefix, buf)
	session.Connect(cfg.Connection.TesterIP, cfg.Connection.Login, cfg.Connection.Password)

	res := &BuildResult{Plan: &domain.Plan{}}
	if cfg.Network != nil {
		network := session.CreateNetwork(cfg.Network.Name)
		report, err := expand.New(network).Run(cfg.Network)
		if err != nil {
			return nil, fmt.Errorf("network %s: %w", network.Name(), err)
		}
		if err := network.Save(); err != nil {
			return nil, fmt.Errorf("network %s: %w", network.Name(), err)
		}
		res.Plan = network.Plan()
		res.Report = report
		s.eventBus.Publish(Event{Type: EventNetworkSaved, Payload: res.Plan.Info()})
	}

	builder := superflow.NewBuilder(session.Prefix(), buf)
	for _, sf := range cfg.Superflows {
		tmpl, err := superflow.Lookup(sf.Template)
		if err != nil {
			return nil, err
		}
		if err := builder.Create(sf.Name, tmpl, sf.Size, sf.File); err != nil {
			return nil, err
		}
		s.eventBus.Publish(Event{Type: EventSuperflowCreated, Payload: session.Prefix() + sf.Name})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.Plan.Commands = buf.Lines()
	res.Plan.CreatedAt = time.Now().UTC()

	for _, p := range cfg.Payloads {
		file, err := payload.Generate(s.outDir, p.FileName, p.Size, payload.Kind(p.Type))
		if err != nil {
			s.discard(ctx, res, false)
			return nil, fmt.Errorf("payload %s: %w", p.FileName, err)
		}
		res.Payloads = append(res.Payloads, file)
		s.eventBus.Publish(Event{Type: EventPayloadGenerated, Payload: file})
	}

	if s.repo != nil {
		if err := s.repo.SavePlan(ctx, res.Plan); err != nil {
			s.discard(ctx, res, false)
			return nil, fmt.Errorf("failed to archive plan: %w", err)
		}
		log.Printf("Archived plan %s", res.Plan.ID)
		s.eventBus.Publish(Event{Type: EventPlanArchived, Payload: res.Plan.ID})
	}

	// The script is written last so it only exists for a complete build
	path, err := buf.SaveCreate(s.outDir, session.Prefix())
	if err != nil {
		s.discard(ctx, res, s.repo != nil)
		return nil, fmt.Errorf("failed to write script: %w", err)
	}
	res.ScriptPath = path
	log.Printf("Wrote %s (%d commands)", path, buf.Len())
	s.eventBus.Publish(Event{Type: EventScriptWritten, Payload: path})

	return res, nil
}

// discard removes what a failed build already produced
func (s *BuildService) discard(ctx context.Context, res *BuildResult, archived bool) {
	for _, file := range res.Payloads {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to remove %s: %v", file, err)
		}
	}
	if archived {
		if err := s.repo.DeletePlan(context.WithoutCancel(ctx), res.Plan.ID); err != nil {
			log.Printf("Failed to drop archived plan %s: %v", res.Plan.ID, err)
		}
	}
}
