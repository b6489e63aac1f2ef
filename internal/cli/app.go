// Package cli es la capa de presentación de terminal: traduce comandos en
// intents de los view-models y muestra su estado.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"vet-booking-client/internal/adapters/auth/jwtinspect"
	"vet-booking-client/internal/adapters/vetapi"
	"vet-booking-client/internal/platform/config"
	"vet-booking-client/internal/platform/logger"
	"vet-booking-client/internal/ports/auth"
	"vet-booking-client/internal/repository"
	"vet-booking-client/internal/session"
	"vet-booking-client/internal/viewmodel"

	"github.com/google/uuid"
)

var (
	ErrUsage       = errors.New("usage")
	ErrNotLoggedIn = errors.New("not logged in, run: vetapp login")
)

type command struct {
	name    string
	usage   string
	auth    bool
	handler func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{}

func register(c command) { commands[c.name] = c }

type app struct {
	cfg       *config.Config
	log       logger.Logger
	store     *session.Store
	repo      *repository.Repository
	inspector auth.TokenInspector
	out       io.Writer
	now       func() time.Time
}

// Run ejecuta un comando y devuelve el exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vetapp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "path to config.yml")
	fs.Usage = func() { printUsage(stderr) }
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		printUsage(stderr)
		return 2
	}

	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", name)
		printUsage(stderr)
		return 2
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "vetapp",
		Out:    stderr,
	}).With(map[string]any{"run_id": uuid.NewString(), "cmd": name})

	a, closeFn, err := newApp(ctx, cfg, log, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer closeFn()

	if cmd.auth && !a.store.Snapshot().IsLoggedIn {
		fmt.Fprintln(stderr, ErrNotLoggedIn)
		return 1
	}

	if err := cmd.handler(ctx, a, fs.Args()[1:]); err != nil {
		if errors.Is(err, ErrUsage) {
			fmt.Fprintf(stderr, "usage: vetapp %s %s\n", cmd.name, cmd.usage)
			return 2
		}
		fmt.Fprintln(stderr, viewmodel.Message(err))
		return 1
	}
	return 0
}

func newApp(ctx context.Context, cfg *config.Config, log logger.Logger, out io.Writer) (*app, func(), error) {
	backend, err := OpenSessionBackend(ctx, cfg.Session)
	if err != nil {
		return nil, nil, err
	}
	store := session.New(backend)
	if err := store.Load(ctx); err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	api, err := vetapi.NewClient(vetapi.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout})
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	a := &app{
		cfg:       cfg,
		log:       log,
		store:     store,
		repo:      repository.New(api),
		inspector: jwtinspect.New(),
		out:       out,
		now:       time.Now,
	}
	a.dropExpiredSession(ctx)

	return a, func() { _ = store.Close() }, nil
}

// dropExpiredSession limpia la sesión si el token declara un vencimiento pasado.
// Un token que no es JWT se conserva: solo el servidor puede rechazarlo.
func (a *app) dropExpiredSession(ctx context.Context) {
	snap := a.store.Snapshot()
	if snap.Token == "" {
		return
	}
	claims, err := a.inspector.Inspect(snap.Token)
	if err != nil || !claims.Expired(a.now()) {
		return
	}
	a.log.Info("session expired, clearing", map[string]any{"user_id": snap.UserID})
	if err := a.store.ClearAll(ctx); err != nil {
		a.log.Warn("clear expired session", map[string]any{"error": err.Error()})
	}
}

func (a *app) token() string { return a.store.Snapshot().Token }

func (a *app) printf(format string, args ...any) { fmt.Fprintf(a.out, format, args...) }

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: vetapp [-config path] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %-13s %s\n", n, commands[n].usage)
	}
}

// newFlags crea un FlagSet que no imprime ni sale por su cuenta.
func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func optDash(s *string) string {
	if s == nil {
		return "-"
	}
	return orDash(*s)
}
