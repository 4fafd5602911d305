package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/benjaminnamo/portfolio-chatbot/internal/config"
	"github.com/benjaminnamo/portfolio-chatbot/internal/session"
	"github.com/benjaminnamo/portfolio-chatbot/internal/tui"
)

// --- chat ---

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive chat window",
	RunE: func(cmd *cobra.Command, args []string) error {
		logFile, _ := cmd.Flags().GetString("log-file")
		dark, _ := cmd.Flags().GetBool("dark")

		// The chat window owns the terminal, so logs go to a file or nowhere.
		var logw io.Writer = io.Discard
		if logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			defer f.Close()
			logw = f
		}

		a, err := newApp(logw)
		if err != nil {
			return err
		}

		p := a.profile.Get()
		sess := session.New(uuid.NewString(), a.orch, session.Greeting(p))
		return tui.Run(commandContext(cmd), sess, tui.Options{
			Name:        p.FirstName(),
			Suggestions: session.SuggestedQuestions(p),
			Dark:        dark,
		})
	},
}

func init() {
	chatCmd.Flags().String("log-file", "", "write logs to this file")
	chatCmd.Flags().Bool("dark", false, "start with the dark theme")
}

// --- ask ---

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Ask a single question and print the answer",
	Long: `Ask a single question and print the answer.

Examples:
  folio ask "What are Benjamin's technical skills?"
  folio ask How can I contact Benjamin`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(strings.Join(args, " "))
		if question == "" {
			return session.ErrEmptyInput
		}

		if remote, _ := cmd.Flags().GetBool("remote"); remote {
			reply, err := askRemote(commandContext(cmd), newAPIClient(), question)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		}

		a, err := newApp(stderrLog)
		if err != nil {
			return err
		}

		sess := session.New(uuid.NewString(), a.orch, session.Greeting(a.profile.Get()))
		reply, err := sess.Ask(commandContext(cmd), question)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply.Content)
		return nil
	},
}

func init() {
	askCmd.Flags().Bool("remote", false, "ask through a running folio server instead of calling the gateway directly")
}

// askRemote opens a session on a running server and asks one question.
func askRemote(ctx context.Context, client *apiClient, question string) (string, error) {
	resp, err := client.post(ctx, "/sessions", nil)
	if err != nil {
		return "", err
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := decodeJSON(resp, &created); err != nil {
		return "", err
	}

	resp, err = client.post(ctx, "/sessions/"+created.ID+"/messages", map[string]string{"content": question})
	if err != nil {
		return "", err
	}
	var reply session.Message
	if err := decodeJSON(resp, &reply); err != nil {
		return "", err
	}
	return reply.Content, nil
}

// --- profile ---

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect the portfolio profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile the assistant answers from",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		path := profilePath
		if path == "" {
			if cfg, err := loadConfig(); err == nil {
				path = cfg.Profile.Path
			} else {
				path = config.DefaultProfilePath()
			}
		}

		logger := newLogger(logLevel, stderrLog)
		store, err := openProfileAt(path, logger)
		if err != nil {
			return err
		}
		printStatus("Source", "%s (%s)", store.Source(), path)

		out := cmd.OutOrStdout()
		switch format {
		case "json":
			fmt.Fprintln(out, store.Snapshot())
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(store.Get())
		default:
			return fmt.Errorf("unknown format %q (want json or yaml)", format)
		}
		return nil
	},
}

func init() {
	profileShowCmd.Flags().String("format", "json", "output format: json or yaml")
	profileCmd.AddCommand(profileShowCmd)
}

// --- models ---

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models available from the gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, _ := cmd.Flags().GetString("filter")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		models, err := newProxyClient(cfg).ListModels(commandContext(cmd))
		if err != nil {
			return err
		}

		candidates := map[string]bool{cfg.Proxy.PrimaryModel: true}
		for _, m := range cfg.Proxy.Fallbacks() {
			candidates[m] = true
		}

		ids := make([]string, 0, len(models))
		for _, m := range models {
			if filter != "" && !strings.Contains(strings.ToLower(m.ID), strings.ToLower(filter)) {
				continue
			}
			ids = append(ids, m.ID)
		}
		sort.Strings(ids)

		out := cmd.OutOrStdout()
		for _, id := range ids {
			if candidates[id] {
				fmt.Fprintf(out, "%s %s\n", id, colorize(colorGreen, "(configured)"))
			} else {
				fmt.Fprintln(out, id)
			}
		}
		return nil
	},
}

func init() {
	modelsCmd.Flags().String("filter", "", "only show model IDs containing this text")
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		for _, k := range keys {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the OpenRouter API key in the secrets file (read from stdin)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), 4096))
		if err != nil {
			return fmt.Errorf("reading key: %w", err)
		}
		if err := config.SetAPIKey(string(data)); err != nil {
			return err
		}
		printSuccess("API key stored in %s", config.SecretsPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
}
