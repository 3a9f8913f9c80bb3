package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"url-admin/pkg/cli/flow"
	"url-admin/pkg/cli/urls"
	"url-admin/pkg/models"
	"url-admin/pkg/utils"
)

// Login prompts for the password and stores the issued token
func (a *App) Login(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username is required (use --username)")
	}

	apiClient, err := a.getClient(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Password for %s: ", username)
	password, err := readPassword()
	fmt.Fprintln(a.out)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	lf, err := flow.NewLoginFlow(apiClient, a.session, func() {
		fmt.Fprintf(a.out, "✓ Logged in as %s\n", username)
	})
	if err != nil {
		return err
	}
	return lf.Submit(ctx, username, string(password))
}

// Logout forgets the stored token
func (a *App) Logout(ctx context.Context) error {
	s, err := a.getSession(ctx)
	if err != nil {
		return err
	}
	if err := s.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	fmt.Fprintln(a.out, "✓ Logged out")
	return nil
}

// ListURLs prints all records as a table
func (a *App) ListURLs(ctx context.Context) error {
	apiClient, err := a.getClient(ctx)
	if err != nil {
		return err
	}

	records, err := apiClient.ListURLs(ctx)
	if err != nil {
		return a.checkAuth(err)
	}

	urls.WriteTo(a.out, urls.FormatTableOutput(records))
	return nil
}

// AddURL validates raw and creates a record
func (a *App) AddURL(ctx context.Context, raw string, active bool) error {
	url, err := utils.ValidateURL(raw)
	if err != nil {
		return err
	}

	apiClient, err := a.getClient(ctx)
	if err != nil {
		return err
	}

	rec, err := apiClient.CreateURL(ctx, models.URLCreate{URL: url, Active: active})
	if err != nil {
		return a.checkAuth(err)
	}

	urls.WriteTo(a.out, urls.FormatSuccessMessage(rec))
	return nil
}

// DeleteURL removes the record with id
func (a *App) DeleteURL(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("id is required")
	}

	apiClient, err := a.getClient(ctx)
	if err != nil {
		return err
	}

	if err := apiClient.DeleteURL(ctx, id); err != nil {
		return a.checkAuth(err)
	}

	fmt.Fprintf(a.out, "✓ Deleted %s\n", id)
	return nil
}

// SetActive sets the active flag of one record. arg has the form ID=true|false.
func (a *App) SetActive(ctx context.Context, arg string) error {
	id, value, ok := strings.Cut(arg, "=")
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		return fmt.Errorf("invalid format, expected ID=true|false")
	}
	active, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("invalid active value %q, expected true or false", value)
	}

	apiClient, err := a.getClient(ctx)
	if err != nil {
		return err
	}

	rec, err := apiClient.UpdateURL(ctx, id, models.URLUpdate{Active: &active})
	if err != nil {
		return a.checkAuth(err)
	}

	fmt.Fprintf(a.out, "✓ %s active: %s\n", rec.ID, urls.FormatActive(rec.Active))
	return nil
}

// TestRandom prints one random active URL from the public endpoint
func (a *App) TestRandom(ctx context.Context) error {
	apiClient, err := a.getClient(ctx)
	if err != nil {
		return err
	}

	pub, err := apiClient.GetOnePublic(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, pub.URL)
	return nil
}
