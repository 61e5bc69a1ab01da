package main

import (
	"bytes"
	"context"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bpauto/internal/config"
	"bpauto/internal/domain"
	"bpauto/internal/repository/sqlite"
)

func TestResolveConfigPath(t *testing.T) {
	if got, err := resolveConfigPath("lab.yaml"); err != nil || got != "lab.yaml" {
		t.Errorf("resolveConfigPath(lab.yaml) = %q, %v", got, err)
	}

	dir := t.TempDir()
	conf := filepath.Join(dir, "env.yaml")
	if err := os.WriteFile(conf, []byte("Connection: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BPAUTO_CONFIG", conf)
	if got, err := resolveConfigPath(""); err != nil || got != conf {
		t.Errorf("resolveConfigPath() = %q, %v, want %s", got, err, conf)
	}
}

func TestExportPlan(t *testing.T) {
	dir := t.TempDir()
	plan := &domain.Plan{
		Network:  "NN",
		Commands: []string{`set n [$bps createNetwork -name "NN"]`},
	}

	for _, name := range []string{"plan.yaml", "plan.json", "plan.tcl"} {
		path := filepath.Join(dir, name)
		if err := exportPlan(path, plan); err != nil {
			t.Fatalf("exportPlan(%s): %v", name, err)
		}
		data, err := os.ReadFile(path)
		if err != nil || !strings.Contains(string(data), "NN") {
			t.Errorf("%s: %q, %v", name, data, err)
		}
	}

	if err := exportPlan(filepath.Join(dir, "plan.csv"), plan); err == nil {
		t.Error("expected error for unknown extension")
	}
}

func TestWriteExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.yaml")
	if err := writeExample(path); err != nil {
		t.Fatalf("writeExample: %v", err)
	}
	if _, err := config.LoadFromPath(path); err != nil {
		t.Errorf("example does not load: %v", err)
	}
	if err := writeExample(path); err == nil {
		t.Error("overwriting an existing config should fail")
	}
}

func TestRunRejectsDeletePayloadsWithWatch(t *testing.T) {
	err := run(context.Background(), options{cleanup: true, watch: true})
	if err == nil || !strings.Contains(err.Error(), "-delete-payloads") {
		t.Fatalf("run() error = %v, want flag conflict", err)
	}
}

func TestRunArchiveFlagsNeedDB(t *testing.T) {
	for _, opts := range []options{{history: 5}, {showID: "x"}, {deleteID: "x"}, {importPath: "plan.yaml"}} {
		if err := run(context.Background(), opts); err == nil || !strings.Contains(err.Error(), "need -db") {
			t.Errorf("run(%+v) error = %v, want need -db", opts, err)
		}
	}
}

func TestImportShowDeletePlan(t *testing.T) {
	ctx := context.Background()
	repo, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("sqlite.New: %v", err)
	}
	defer repo.Close()

	dir := t.TempDir()
	exported := filepath.Join(dir, "plan.yaml")
	plan := &domain.Plan{
		ID:      "run-1",
		Network: "lab_NN",
		Objects: []domain.Object{
			{ID: 0, Name: "eth1", Class: domain.ClassInterface, Container: domain.NoObject, Number: 1, MAC: "02:1A:c5:01:00:00"},
			{ID: 1, Name: "A1", Class: domain.ClassIPStaticHosts, Container: 0, ContainerName: "eth1",
				IP: netip.MustParseAddr("10.0.0.10"), Netmask: 24, IPCount: 1, Tag: "A"},
			{ID: 2, Name: "B1", Class: domain.ClassIPStaticHosts, Container: 0, ContainerName: "eth1",
				IP: netip.MustParseAddr("10.1.0.10"), Netmask: 24, IPCount: 1, Tag: "B"},
		},
		Paths: []domain.Path{domain.NewPath("A1", "B1")},
	}
	if err := exportPlan(exported, plan); err != nil {
		t.Fatalf("exportPlan: %v", err)
	}

	id, err := importPlan(ctx, repo, exported)
	if err != nil {
		t.Fatalf("importPlan: %v", err)
	}
	if id != "run-1" {
		t.Errorf("imported ID = %q, want run-1", id)
	}
	if _, err := importPlan(ctx, repo, filepath.Join(dir, "plan.tcl")); err == nil {
		t.Error("TCL scripts should not be importable")
	}

	var out bytes.Buffer
	if err := showPlan(ctx, repo, id, "", &out); err != nil {
		t.Fatalf("showPlan: %v", err)
	}
	for _, want := range []string{"network: lab_NN", "container: eth1", "- - A1"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("showPlan output missing %q:\n%s", want, out.String())
		}
	}

	jsonPath := filepath.Join(dir, "shown.json")
	if err := showPlan(ctx, repo, id, jsonPath, &out); err != nil {
		t.Fatalf("showPlan to file: %v", err)
	}
	if data, err := os.ReadFile(jsonPath); err != nil || !strings.Contains(string(data), `"network": "lab_NN"`) {
		t.Errorf("exported JSON = %s, %v", data, err)
	}

	if err := deletePlan(ctx, repo, id); err != nil {
		t.Fatalf("deletePlan: %v", err)
	}
	if err := deletePlan(ctx, repo, id); err == nil {
		t.Error("deleting a missing plan should fail")
	}
	if err := showPlan(ctx, repo, id, "", &out); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("showPlan after delete error = %v", err)
	}
}
