package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bpauto/internal/config"
	"bpauto/internal/preflight"
	"bpauto/internal/repository"
	"bpauto/internal/repository/sqlite"
	"bpauto/internal/service"
	"bpauto/internal/watcher"
)

// options holds everything the command line controls
type options struct {
	configPath string
	outDir     string
	dbPath     string
	exportPath string
	upload     bool
	cleanup    bool
	preflight  bool
	watch      bool
	history    int
	showID     string
	deleteID   string
	importPath string
	initConfig bool
	templates  bool
	overrides  config.Overrides
}

func main() {
	var opts options
	flag.StringVar(&opts.outDir, "o", ".", "output directory for the script and payload files")
	flag.StringVar(&opts.dbPath, "db", "", "SQLite plan archive (disabled when empty)")
	flag.StringVar(&opts.exportPath, "export", "", "export the plan to a .yaml, .json or .tcl file")
	flag.BoolVar(&opts.upload, "upload", false, "upload generated payloads to the tester over SSH")
	flag.BoolVar(&opts.cleanup, "delete-payloads", false, "remove the configured payloads from the tester and exit")
	flag.BoolVar(&opts.preflight, "preflight", false, "check the tester's management ports with nmap first")
	flag.BoolVar(&opts.watch, "watch", false, "rebuild whenever the config file changes")
	flag.BoolVar(&opts.initConfig, "init", false, "write an example config to conf.yaml (or the default location) and exit")
	flag.BoolVar(&opts.templates, "templates", false, "list the known superflow templates and exit")
	flag.IntVar(&opts.history, "history", 0, "list the N most recent archived plans and exit (needs -db)")
	flag.StringVar(&opts.showID, "show", "", "print an archived plan as YAML, or write it to -export, and exit (needs -db)")
	flag.StringVar(&opts.deleteID, "delete-plan", "", "remove an archived plan and exit (needs -db)")
	flag.StringVar(&opts.importPath, "import", "", "archive a plan exported as .yaml or .json and exit (needs -db)")
	for _, name := range []string{"i", "tester-ip"} {
		flag.StringVar(&opts.overrides.TesterIP, name, "", "tester management IP")
	}
	for _, name := range []string{"l", "login"} {
		flag.StringVar(&opts.overrides.Login, name, "", "tester management login username")
	}
	for _, name := range []string{"p", "password"} {
		flag.StringVar(&opts.overrides.Password, name, "", "tester management password")
	}
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [conf.yaml]\n\nBreakingPoint test automation.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	opts.configPath = flag.Arg(0)

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bpauto: %v", err)
	}
}

func run(ctx context.Context, opts options) error {
	if opts.cleanup && opts.watch {
		return fmt.Errorf("-delete-payloads cannot be combined with -watch")
	}
	if opts.initConfig {
		return writeExample(opts.configPath)
	}
	if opts.templates {
		return printTemplates()
	}

	var repo repository.Repository
	if opts.dbPath != "" {
		r, err := sqlite.New(opts.dbPath)
		if err != nil {
			return fmt.Errorf("failed to open plan archive: %w", err)
		}
		defer r.Close()
		repo = r
		log.Printf("Plan archive opened: %s", opts.dbPath)
	}

	archiveOnly := opts.history > 0 || opts.showID != "" || opts.deleteID != "" || opts.importPath != ""
	if archiveOnly && repo == nil {
		return fmt.Errorf("-history, -show, -delete-plan and -import need -db")
	}
	switch {
	case opts.history > 0:
		return printHistory(ctx, repo, opts.history)
	case opts.showID != "":
		return showPlan(ctx, repo, opts.showID, opts.exportPath, os.Stdout)
	case opts.deleteID != "":
		return deletePlan(ctx, repo, opts.deleteID)
	case opts.importPath != "":
		_, err := importPlan(ctx, repo, opts.importPath)
		return err
	}

	path, err := resolveConfigPath(opts.configPath)
	if err != nil {
		return err
	}

	bus := service.NewEventBus()
	events := make(chan service.Event, 100)
	bus.Subscribe(events)
	go logEvents(events)

	b := &builder{
		opts: opts,
		path: path,
		svc:  service.NewBuildService(repo, bus, opts.outDir),
		bus:  bus,
	}
	if err := b.once(ctx); err != nil {
		if !opts.watch {
			return err
		}
		log.Printf("Build failed: %v", err)
	}
	if !opts.watch {
		return nil
	}

	w := watcher.New(func(string) {
		if err := b.once(ctx); err != nil {
			log.Printf("Build failed: %v", err)
		}
	}, path)
	return w.Watch(ctx)
}

func resolveConfigPath(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	path := config.FindConfigPath()
	if path == "" {
		return "", fmt.Errorf("no config file given and none found (set %s)", config.EnvConfigPath)
	}
	return path, nil
}

func writeExample(path string) error {
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Example().Save(path); err != nil {
		return err
	}
	log.Printf("Wrote example config to %s", path)
	return nil
}

// builder runs one load-check-build-publish cycle
type builder struct {
	opts options
	path string
	svc  *service.BuildService
	bus  *service.EventBus
}

func (b *builder) once(ctx context.Context) error {
	cfg, err := config.LoadFromPath(b.path)
	if err != nil {
		return err
	}
	if err := cfg.ApplyOverrides(b.opts.overrides); err != nil {
		return err
	}
	log.Printf("Loaded %s\n%s", b.path, cfg.Summary())

	payloads := service.NewPayloadService(service.NewUploader(cfg.Connection), b.bus)
	if b.opts.cleanup {
		return payloads.DeleteAll(ctx, cfg.Payloads)
	}

	if b.opts.preflight {
		checker := preflight.NewChecker(preflight.WithSSHPort(cfg.Connection.SSHPort))
		res, err := checker.Check(ctx, cfg.Connection.TesterIP)
		if err != nil {
			return fmt.Errorf("preflight: %w", err)
		}
		if err := res.Err(); err != nil {
			return fmt.Errorf("preflight: %w", err)
		}
	}

	if err := os.MkdirAll(b.opts.outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	res, err := b.svc.Build(ctx, cfg)
	if err != nil {
		return err
	}

	if b.opts.exportPath != "" {
		if err := exportPlan(b.opts.exportPath, res.Plan); err != nil {
			return err
		}
	}

	if b.opts.upload && len(res.Payloads) > 0 {
		if err := payloads.UploadAll(ctx, res.Payloads); err != nil {
			return err
		}
	}
	return nil
}
