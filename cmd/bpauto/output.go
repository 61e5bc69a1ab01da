package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"bpauto/internal/codec"
	"bpauto/internal/domain"
	"bpauto/internal/repository"
	"bpauto/internal/service"
	"bpauto/internal/superflow"
)

func exportPlan(path string, plan *domain.Plan) error {
	exporter, err := codec.ForPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := exporter.Export(plan, f); err != nil {
		return err
	}
	log.Printf("Exported plan as %s to %s", exporter.Format(), path)
	return f.Close()
}

func printHistory(ctx context.Context, repo repository.Repository, limit int) error {
	plans, err := repo.ListPlans(ctx, limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNETWORK\tCREATED\tOBJECTS\tPATHS")
	for _, p := range plans {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
			p.ID, p.Network, p.CreatedAt.Local().Format("2006-01-02 15:04:05"), p.Objects, p.Paths)
	}
	return tw.Flush()
}

func logEvents(events <-chan service.Event) {
	for e := range events {
		switch e.Type {
		case service.EventBuildFailed:
			log.Printf("[%s] %v", e.Type, e.Payload)
		case service.EventNetworkSaved, service.EventBuildCompleted:
			if info, ok := e.Payload.(domain.PlanInfo); ok {
				log.Printf("[%s] %s: %d objects, %d paths", e.Type, info.Network, info.Objects, info.Paths)
			}
		default:
			log.Printf("[%s] %v", e.Type, e.Payload)
		}
	}
}

func printTemplates() error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TEMPLATE\tSIZING")
	for _, name := range superflow.Names() {
		tmpl, _ := superflow.Lookup(name)
		fmt.Fprintf(tw, "%s\t%s\n", name, tmpl.Kind)
	}
	return tw.Flush()
}
