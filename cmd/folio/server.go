package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/benjaminnamo/portfolio-chatbot/internal/api"
	"github.com/benjaminnamo/portfolio-chatbot/internal/session"
)

const sweepInterval = time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chat API for the web widget (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		withMCP, _ := cmd.Flags().GetBool("mcp")
		origins, _ := cmd.Flags().GetString("origins")
		return runServer(commandContext(cmd), port, withMCP, splitList(origins))
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port; overrides server.port")
	serveCmd.Flags().Bool("mcp", false, "also serve MCP over stdio")
	serveCmd.Flags().String("origins", "", "comma-separated CORS origins (default any)")
}

func runServer(ctx context.Context, port int, withMCP bool, origins []string) error {
	fmt.Fprintf(os.Stderr, "folio version %s\n", version)

	a, err := newApp(stderrLog)
	if err != nil {
		return err
	}
	if port != 0 {
		a.cfg.Server.Port = port
	}

	p := a.profile.Get()
	registry := session.NewRegistry(a.orch, session.Greeting(p), 0, 0)

	handler := api.NewRouter(api.Deps{
		Profile:        a.profile,
		Sessions:       registry,
		Logger:         a.logger,
		AllowedOrigins: origins,
	})

	addr := net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("listening", "addr", addr, "models", strings.Join(a.orch.Candidates(), ","))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		registry.Run(gctx, sweepInterval)
		return nil
	})

	if withMCP {
		mcpSrv := api.NewMCPServer(api.MCPDeps{
			Profile:   a.profile,
			Generator: a.orch,
			Version:   version,
		})
		stdioSrv := server.NewStdioServer(mcpSrv)
		g.Go(func() error {
			a.logger.Info("MCP server started (stdio transport)")
			if err := stdioSrv.Listen(gctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("MCP stdio server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// --- status ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether a folio server is running",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient()
		printStatus("Server", "%s", client.baseURL)

		if err := client.health(commandContext(cmd)); err != nil {
			printStatus("Health", "%s", colorize(colorRed, "unreachable"))
			return err
		}
		printStatus("Health", "%s", colorize(colorGreen, "ok"))

		var sugg struct {
			Suggestions []string `json:"suggestions"`
		}
		resp, err := client.get(commandContext(cmd), "/suggestions")
		if err != nil {
			return err
		}
		if err := decodeJSON(resp, &sugg); err != nil {
			return err
		}
		printStatus("Suggestions", "%d", len(sugg.Suggestions))
		return nil
	},
}
