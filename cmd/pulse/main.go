// cmd/pulse/main.go
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"deal-pulse/internal/common/config"
	"deal-pulse/internal/common/logger"
	"deal-pulse/internal/common/observability"
	"deal-pulse/internal/dataset"
	chatsession "deal-pulse/internal/pulse/chat-session"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (default: ./configs/config.yaml)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config load failed:", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("observability disabled", zap.Error(err))
	}
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startups, err := dataset.LoadFromConfig(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("dataset load failed", zap.Error(err))
	}
	zapLog.Info("dataset loaded", zap.String("source", cfg.Dataset.Source), zap.Int("count", len(startups)))

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg.Metrics.Address, zapLog)
	}

	engine, err := chatsession.NewEngine(nil)
	if err != nil {
		zapLog.Fatal("engine init failed", zap.Error(err))
	}

	session := chatsession.NewSession(chatsession.LoadConfig(cfg), engine, startups, log, obs)
	defer session.Close()

	out := bufio.NewWriter(os.Stdout)
	session.Subscribe(newRenderer(out))
	for _, msg := range session.Messages() {
		renderMessage(out, msg)
	}
	printHelp(out)
	out.Flush()

	lines := make(chan string)
	go readLines(os.Stdin, lines)

	for {
		fmt.Fprint(out, "> ")
		out.Flush()

		var line string
		select {
		case <-ctx.Done():
			zapLog.Info("shutdown signal received")
			return
		case l, ok := <-lines:
			if !ok {
				return
			}
			line = strings.TrimSpace(l)
		}

		if quit := handleLine(ctx, session, out, line); quit {
			return
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func serveMetrics(addr string, zapLog *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	zapLog.Info("metrics endpoint listening", zap.String("address", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zapLog.Error("metrics server stopped", zap.Error(err))
	}
}

func readLines(r io.Reader, lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
}

// handleLine runs one REPL command or query and reports whether to exit.
func handleLine(ctx context.Context, session *chatsession.Session, out *bufio.Writer, line string) bool {
	defer out.Flush()

	switch {
	case line == "/quit" || line == "/exit":
		return true
	case line == "/help":
		printHelp(out)
		return false
	case line == "/reset":
		session.Reset()
		return false
	case line == "/suggest":
		for i, q := range chatsession.SuggestedQueries {
			fmt.Fprintf(out, "  %d. %s\n", i+1, q)
		}
		return false
	case strings.HasPrefix(line, "/ask "):
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "/ask ")))
		if err != nil || n < 1 || n > len(chatsession.SuggestedQueries) {
			fmt.Fprintf(out, "pick a number between 1 and %d\n", len(chatsession.SuggestedQueries))
			return false
		}
		line = chatsession.SuggestedQueries[n-1]
	}

	if err := session.Submit(line); err != nil {
		switch {
		case errors.Is(err, chatsession.ErrInvalidSubmission):
			// blank input is ignored
		case errors.Is(err, chatsession.ErrSessionBusy):
			fmt.Fprintln(out, "still thinking, try again in a moment")
		default:
			fmt.Fprintln(out, "error:", err)
		}
		return false
	}

	out.Flush()
	if err := session.Wait(ctx); err != nil {
		return true
	}
	return false
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "commands: /suggest  /ask <n>  /reset  /help  /quit")
}
