package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	baseURL  string
	staffID  string
	password string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "crmctl",
	Short: "Terminal client for the agency CRM",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", envOr("CRM_URL", "http://localhost:3000"), "API base URL")
	rootCmd.PersistentFlags().StringVar(&staffID, "staff-id", os.Getenv("CRM_STAFF_ID"), "6-digit staff ID")
	rootCmd.PersistentFlags().StringVar(&password, "password", os.Getenv("CRM_PASSWORD"), "password (or CRM_PASSWORD)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log session refreshes")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(shellCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
