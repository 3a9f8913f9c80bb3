package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"url-admin/pkg/cli/client"
	"url-admin/pkg/cli/logger"
	"url-admin/pkg/cli/tui"
	"url-admin/pkg/config"
	"url-admin/pkg/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/term"
)

// ErrSessionExpired is returned by one-shot commands when the backend
// rejected the stored token. The session has been cleared by then.
var ErrSessionExpired = errors.New("session expired, please log in")

// readPassword reads a line from the terminal without echo
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

type App struct {
	cfg     *config.Config
	session *session.Session
	client  *client.Client

	out io.Writer
}

func NewApp(cfg *config.Config) *App {
	return &App{
		cfg: cfg,
		out: os.Stdout,
	}
}

// getSession opens the configured session store once
func (a *App) getSession(ctx context.Context) (*session.Session, error) {
	if a.session != nil {
		return a.session, nil
	}
	s, err := session.Open(ctx, a.cfg)
	if err != nil {
		return nil, err
	}
	a.session = s
	return s, nil
}

// getClient returns the HTTP client, creating it if necessary
func (a *App) getClient(ctx context.Context) (*client.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	if a.cfg.CLI.APIBaseURL == "" {
		return nil, fmt.Errorf("API base URL not configured")
	}
	s, err := a.getSession(ctx)
	if err != nil {
		return nil, err
	}

	a.client = client.NewClient(a.cfg.CLI.APIBaseURL, s)
	return a.client, nil
}

// Close releases the session store
func (a *App) Close() error {
	if a.session == nil {
		return nil
	}
	return a.session.Close()
}

// checkAuth turns Unauthorized into ErrSessionExpired after clearing the
// stored token
func (a *App) checkAuth(err error) error {
	if !client.IsUnauthorized(err) {
		return err
	}
	logger.Info("unauthorized, clearing session")
	if a.session != nil {
		if clearErr := a.session.Clear(); clearErr != nil {
			logger.LogError(clearErr, "failed to clear session")
		}
	}
	return ErrSessionExpired
}

// ShowConfig displays the current configuration
func (a *App) ShowConfig() error {
	data, err := toml.Marshal(a.cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprintln(a.out, string(data))
	return nil
}

// SetConfig sets a configuration value
// Format: section.key=value (e.g., "cli.api_base_url=http://localhost:8080")
func (a *App) SetConfig(setStr string) error {
	parts := strings.SplitN(setStr, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid format: expected 'section.key=value'")
	}

	keyPath := strings.Split(parts[0], ".")
	value := parts[1]

	if len(keyPath) != 2 {
		return fmt.Errorf("invalid key format: expected 'section.key'")
	}

	section := keyPath[0]
	key := keyPath[1]

	// Work on a copy so a rejected value leaves the loaded config intact
	cfg := *a.cfg

	switch section {
	case "cli":
		switch key {
		case "api_base_url":
			cfg.CLI.APIBaseURL = value
		default:
			return fmt.Errorf("unknown cli key: %s", key)
		}
	case "session":
		switch key {
		case "backend":
			cfg.Session.Backend = value
		case "path":
			cfg.Session.Path = value
		default:
			return fmt.Errorf("unknown session key: %s", key)
		}
	case "log":
		switch key {
		case "level":
			cfg.Log.Level = value
		default:
			return fmt.Errorf("unknown log key: %s", key)
		}
	case "api":
		switch key {
		case "host":
			cfg.API.Host = value
		case "port":
			port, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid port value: %s", value)
			}
			cfg.API.Port = port
		case "username":
			cfg.API.Username = value
		case "password":
			cfg.API.Password = value
		case "jwt_secret":
			cfg.API.JWTSecret = value
		case "database_url":
			cfg.API.DatabaseURL = value
		default:
			return fmt.Errorf("unknown api key: %s", key)
		}
	default:
		return fmt.Errorf("unknown section: %s", section)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(&cfg); err != nil {
		return err
	}
	*a.cfg = cfg
	return nil
}

// Run starts the interactive console
func (a *App) Run(ctx context.Context) error {
	apiClient, err := a.getClient(ctx)
	if err != nil {
		return err
	}

	root, err := tui.NewRootModel(ctx, apiClient, a.session)
	if err != nil {
		return err
	}

	p := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running console: %w", err)
	}
	return nil
}
