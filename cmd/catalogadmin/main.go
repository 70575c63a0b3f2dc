// Command catalogadmin is a line-oriented operator console for managing a
// remote product catalog. Filter, sort and search commands feed the sync
// engine; mutations go through the mutation coordinator and resync the
// listing under the operator's current filters.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/suteetoe/catalogadmin/internal/catalog"
	"github.com/suteetoe/catalogadmin/internal/engine"
	"github.com/suteetoe/catalogadmin/internal/refdata"
	"github.com/suteetoe/catalogadmin/pkg/config"
	"github.com/suteetoe/catalogadmin/pkg/logger"
	"github.com/suteetoe/catalogadmin/prometheus"
)

func main() {
	appConfig, err := config.Load("catalogadmin")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting catalogadmin", appConfig.LogConfig()...)

	prometheus.InitMetrics(appConfig)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := catalog.NewClient(&appConfig.API, log)
	notifier := &consoleNotifier{out: os.Stderr, messages: defaultMessages}
	cache := refdata.NewCache()

	controller := engine.NewController(client, notifier, log, appConfig.Sync.DebounceInterval)
	coordinator := engine.NewCoordinator(client, controller, notifier, log)

	view := newView(os.Stdout, cache)
	controller.OnChange(view.Render)

	// Categories are display-only, so their load does not gate the first
	// product fetch.
	go cache.Load(ctx, client, log)
	controller.Start(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	console := &console{
		ctx:         ctx,
		in:          scanner,
		client:      client,
		controller:  controller,
		coordinator: coordinator,
		cache:       cache,
		notifier:    notifier,
		log:         log,
	}

	fmt.Fprintln(os.Stderr, "catalogadmin ready, type 'help' for commands")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		console.handle(line)
		if ctx.Err() != nil {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		log.Error("stdin read failed", zap.Error(err))
	}
	log.Info("catalogadmin shutting down")
}
