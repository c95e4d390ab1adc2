package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/blogem/crm-web/config"
	"github.com/blogem/crm-web/crmapi"
	"github.com/blogem/crm-web/models"
	"github.com/blogem/crm-web/repositories"
	"github.com/blogem/crm-web/services"
	"github.com/blogem/crm-web/userctx"
)

func main() {
	entityType := flag.String("type", "", "entity type, e.g. ticket")
	entityID := flag.String("id", "", "entity id")
	page := flag.Int("page", 1, "audit page")
	limit := flag.Int("limit", 0, "audit entries per page (defaults to AUDIT_PAGE_LIMIT)")
	watch := flag.Bool("watch", false, "re-render on every poll tick when polling is enabled")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)

	if *entityType == "" || *entityID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	log.SetLevel(cfg.Server.Level())

	if *limit <= 0 {
		*limit = cfg.Timeline.AuditPageLimit
	}

	api, err := crmapi.NewClient(cfg.CRMAPI.BaseURL,
		crmapi.WithTimeout(cfg.CRMAPI.Timeout),
		crmapi.WithAuthCookie(cfg.CRMAPI.AuthCookie),
	)
	if err != nil {
		log.WithError(err).Fatal("Failed to create CRM API client")
	}

	user := cliUser(os.Getenv("CRM_API_TOKEN"), os.Getenv("CRM_ROLE"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = userctx.SetUser(ctx, user)

	srvs := services.NewServices(repositories.NewRepositories(api, nil), services.Options{
		AuditPageLimit: *limit,
		PollingEnabled: cfg.Timeline.PollingEnabled,
		PollInterval:   cfg.Timeline.PollInterval,
	})

	timeline, err := srvs.Timeline.Open(ctx, user, models.ParseEntityType(*entityType), *entityID, *page)
	renderTimeline(os.Stdout, timeline.Snapshot())

	if *watch && watchTimeline(ctx, srvs.Timeline, timeline, err, os.Stdout) {
		return
	}

	if err != nil {
		if !errors.Is(err, models.ErrAccessDenied) {
			log.WithError(err).Error("Failed to load timeline")
		}
		os.Exit(1)
	}
}

// watchTimeline re-renders the timeline on every poll tick. Only a timeline
// that opened cleanly is watched; it reports whether watching ran.
func watchTimeline(ctx context.Context, svc services.TimelineService, timeline *services.Timeline, openErr error, out io.Writer) bool {
	if openErr != nil {
		log.WithError(openErr).Warn("Not watching a timeline that failed to open")
		return false
	}
	if !svc.Poller().Enabled() {
		log.Warn("Polling is disabled; set TIMELINE_POLLING_ENABLED=true to watch")
		return false
	}

	svc.Watch(ctx, timeline, func(snap services.TimelineSnapshot) {
		fmt.Fprintln(out)
		renderTimeline(out, snap)
	})
	return true
}

// cliUser builds the caller identity from the environment; the role
// defaults to User.
func cliUser(token, role string) *models.User {
	if role == "" {
		role = string(models.RoleUser)
	}
	return &models.User{
		ID:          "cli",
		Username:    "cli",
		Role:        models.Role(role),
		AccessToken: token,
	}
}
