package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sarif-mia/agency-website-sub000/internal/client"
	"github.com/sarif-mia/agency-website-sub000/internal/model"
	"github.com/spf13/cobra"
)

func newCallCmd(newClient func() *client.Client) *cobra.Command {
	var (
		method string
		data   string
	)
	cmd := &cobra.Command{
		Use:   "call <endpoint>",
		Short: "Call a backend endpoint, e.g. call /projects/?category=web",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &client.RequestOptions{Method: strings.ToUpper(method)}
			if data != "" {
				if !json.Valid([]byte(data)) {
					return fmt.Errorf("--data is not valid JSON")
				}
				opts.Body = data
			}

			res, err := newClient().Call(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			if res.Degraded() {
				fmt.Fprintf(cmd.ErrOrStderr(), "demo mode: %s (%v)\n", res.Outcome, res.Cause)
			}
			return printJSON(cmd, res.Body)
		},
	}
	cmd.Flags().StringVarP(&method, "method", "X", http.MethodGet, "HTTP method")
	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	return cmd
}

func newHealthCmd(newClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable and healthy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			res, err := c.Health.Check(cmd.Context())
			if err != nil {
				return err
			}
			if res.Degraded() {
				return fmt.Errorf("backend at %s is unreachable: %v", c.BaseURL(), res.Cause)
			}
			var status model.HealthStatus
			if err := res.Decode(&status); err != nil {
				return fmt.Errorf("decoding health status: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "backend %s: %s (version %s)\n", c.BaseURL(), status.Status, status.Version)
			return nil
		},
	}
}

func printJSON(cmd *cobra.Command, body []byte) error {
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		out.Reset()
		out.Write(body)
	}
	out.WriteByte('\n')
	_, err := cmd.OutOrStdout().Write(out.Bytes())
	return err
}
