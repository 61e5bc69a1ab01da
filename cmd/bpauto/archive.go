package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"bpauto/internal/codec"
	"bpauto/internal/repository"
)

// showPlan prints an archived plan as YAML, or exports it when exportPath is set
func showPlan(ctx context.Context, repo repository.Repository, id, exportPath string, w io.Writer) error {
	plan, err := repo.GetPlan(ctx, id)
	if err != nil {
		return err
	}
	if plan == nil {
		return fmt.Errorf("plan %s not found", id)
	}
	if exportPath != "" {
		return exportPlan(exportPath, plan)
	}
	return codec.NewYAMLCodec().Export(plan, w)
}

func deletePlan(ctx context.Context, repo repository.Repository, id string) error {
	plan, err := repo.GetPlan(ctx, id)
	if err != nil {
		return err
	}
	if plan == nil {
		return fmt.Errorf("plan %s not found", id)
	}
	if err := repo.DeletePlan(ctx, id); err != nil {
		return err
	}
	log.Printf("Deleted plan %s (%s)", id, plan.Network)
	return nil
}

// importPlan archives a plan previously exported as YAML or JSON
func importPlan(ctx context.Context, repo repository.Repository, path string) (string, error) {
	importer, err := codec.ImporterForPath(path)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	plan, err := importer.Parse(f)
	if err != nil {
		return "", err
	}
	if err := repo.SavePlan(ctx, plan); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", path, err)
	}
	log.Printf("Imported %s plan %s from %s", importer.Format(), plan.ID, path)
	return plan.ID, nil
}
