package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/amhellmund/redo/internal/bootstrap"
	"github.com/amhellmund/redo/internal/handler"
	infraerrors "github.com/amhellmund/redo/internal/infrastructure/errors"
)

const healthcheckTimeout = 3 * time.Second

// ErrUnhealthy is returned when the probed service does not report ok.
var ErrUnhealthy = errors.New("service unhealthy")

func newHealthcheckCommand(opts *rootOptions) *cobra.Command {
	var (
		url     string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Probe a running server's /health endpoint",
		Long: "Probe a running server's /health endpoint and exit non-zero " +
			"unless it answers 200 with status ok. Intended for container health checks.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if url == "" {
				cfg, err := bootstrap.LoadConfig(opts.configPath)
				if err != nil {
					return err
				}
				url = localHealthURL(cfg.Service.Port)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := probeHealth(ctx, http.DefaultClient, url); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), handler.StatusOK)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "health URL (default http://127.0.0.1:$PORT/health)")
	cmd.Flags().DurationVar(&timeout, "timeout", healthcheckTimeout, "request timeout")

	return cmd
}

func localHealthURL(port int) string {
	return "http://" + net.JoinHostPort("127.0.0.1", strconv.Itoa(port)) + "/health"
}

// probeHealth succeeds only for a 200 response whose status field is "ok".
func probeHealth(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if httpErr := infraerrors.ParseHTTPError(resp); httpErr != nil {
			return fmt.Errorf("%w: %w", ErrUnhealthy, httpErr)
		}
		return fmt.Errorf("%w: status code %d", ErrUnhealthy, resp.StatusCode)
	}

	var body handler.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if body.Status != handler.StatusOK {
		return fmt.Errorf("%w: status %q", ErrUnhealthy, body.Status)
	}

	return nil
}
