package main

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

	"github.com/spf13/cobra"
	"github.com/taskshare/taskshare/todo"
	"github.com/taskshare/taskshare/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve shared tasks over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var serveAddr string

const shutdownTimeout = 5 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := web.NewHandler(web.Options{
		Resolver: reloadingResolver(a.store),
		Logger:   a.logger,
		BaseURL:  a.cfg.Share.BaseURL,
	})

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving shared tasks on http://%s\n", listener.Addr())
	a.logger.Info(ctx, "serving shared tasks", "addr", listener.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// reloadingResolver re-reads storage before each lookup so the server sees
// shares created by other taskshare processes.
func reloadingResolver(store *todo.Store) web.Resolver {
	return web.ResolverFunc(func(ctx context.Context, code string) (todo.SharedTask, error) {
		if err := store.Reload(ctx); err != nil {
			return todo.SharedTask{}, fmt.Errorf("reload: %w", err)
		}
		return store.Resolve(code)
	})
}
