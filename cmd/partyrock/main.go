package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bricks-cloud/partyrock/internal/config"
	"github.com/bricks-cloud/partyrock/internal/logger/zap"
	"github.com/bricks-cloud/partyrock/internal/provider/openai"
	"github.com/bricks-cloud/partyrock/internal/server/web/proxy"
	"github.com/bricks-cloud/partyrock/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	modePtr := flag.String("m", "dev", "select the mode that the partyrock proxy runs in")
	envPtr := flag.String("e", ".env", "path to an optional env file")
	flag.Parse()

	lg := zap.NewLogger(*modePtr)
	slg := lg.Sugar()

	if err := godotenv.Load(*envPtr); err != nil && !errors.Is(err, os.ErrNotExist) {
		slg.Warnf("failed to load env file %s: %v", *envPtr, err)
	}

	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.ParseEnvVariables()
	if err != nil {
		slg.Fatalf("cannot parse environment variables: %v", err)
	}

	if err := telemetry.Init(cfg, lg); err != nil {
		slg.Fatalf("cannot initialize telemetry: %v", err)
	}

	otelShutdown, err := telemetry.SetupOTelSDK(context.Background(), cfg)
	if err != nil {
		slg.Fatalf("cannot initialize open telemetry: %v", err)
	}

	tc, err := openai.NewTokenCounter()
	if err != nil {
		slg.Fatalf("error creating token counter: %v", err)
	}

	ps, err := proxy.NewProxyServer(lg, *modePtr, cfg, nil, tc)
	if err != nil {
		slg.Fatalf("error creating proxy http server: %v", err)
	}

	ps.Run()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slg.Infof("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ps.Shutdown(ctx); err != nil {
		slg.Debugf("proxy server shutdown: %v", err)
	}

	if err := otelShutdown(ctx); err != nil {
		slg.Debugf("open telemetry shutdown: %v", err)
	}

	if err := telemetry.Close(); err != nil {
		slg.Debugf("telemetry shutdown: %v", err)
	}

	slg.Infof("server exited")
}
