package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amterp/ra"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	idgrpc "github.com/weiawesome/uidgen/internal/grpc"
	"github.com/weiawesome/uidgen/internal/handler"
)

func registerServe(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("serve")
	cmd.SetDescription("Serve the HTTP and gRPC APIs")

	ctx.ServePort, _ = ra.NewInt("port").
		SetOptional(true).
		SetDefault(0).
		SetShort("p").
		SetFlagOnly(true).
		SetUsage("HTTP port (default server.port)").
		Register(cmd)

	ctx.ServeGRPCPort, _ = ra.NewInt("grpc-port").
		SetOptional(true).
		SetDefault(0).
		SetFlagOnly(true).
		SetUsage("gRPC port (default grpc.port)").
		Register(cmd)

	ctx.ServeUsed, _ = parent.RegisterCmd(cmd)
}

func runServe(app *App, port, grpcPort int) error {
	if port == 0 {
		port = app.Config.Server.Port
	}
	if grpcPort == 0 {
		grpcPort = app.Config.GRPC.Port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpLis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", app.Config.Server.Host, port))
	if err != nil {
		return fmt.Errorf("failed to listen for http: %w", err)
	}
	grpcLis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", app.Config.GRPC.Host, grpcPort))
	if err != nil {
		httpLis.Close()
		return fmt.Errorf("failed to listen for grpc: %w", err)
	}
	return serve(ctx, app, httpLis, grpcLis)
}

// serve runs both servers until ctx is done or either fails, then drains
// them.
func serve(ctx context.Context, app *App, httpLis, grpcLis net.Listener) error {
	logger := app.Logger

	gin.SetMode(gin.ReleaseMode)
	r := handler.NewRouter(handler.NewHandler(app.Service), logger)
	srv := &http.Server{Handler: r, ReadHeaderTimeout: 10 * time.Second}

	grpcServer := idgrpc.NewServer(app.Service, logger)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", httpLis.Addr().String()).Msg("http server listening")
		if err := srv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info().Str("addr", grpcLis.Addr().String()).Msg("grpc server listening")
		if err := grpcServer.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info().Msg("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("HTTP server forced to shutdown")
		}
		grpcServer.GracefulStop()
		return nil
	})

	err := g.Wait()
	if err != nil {
		logger.Error().Err(err).Msg("server failed")
	}
	logger.Info().Msg("uidgen stopped")
	return err
}
