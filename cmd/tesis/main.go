// Package main provides the Tesis Assistant CLI entrypoint.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Glooskovint/TesisAssistantMVP/internal/advisor"
	"github.com/Glooskovint/TesisAssistantMVP/internal/config"
	"github.com/Glooskovint/TesisAssistantMVP/internal/guide"
	"github.com/Glooskovint/TesisAssistantMVP/internal/identity"
	"github.com/Glooskovint/TesisAssistantMVP/internal/logging"
	"github.com/Glooskovint/TesisAssistantMVP/internal/payment"
	"github.com/Glooskovint/TesisAssistantMVP/internal/picker"
	"github.com/Glooskovint/TesisAssistantMVP/internal/schedule"
	"github.com/Glooskovint/TesisAssistantMVP/internal/storage"
	"github.com/Glooskovint/TesisAssistantMVP/internal/tui"
)

var (
	version = "0.1.0"
	pretty  = true
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tesis",
		Short: "Tesis Assistant - asesoría y revisión de tesis",
		Long: `Tesis Assistant: guías en video, directorio de asesores y revisión
de documentos desde la terminal.

Usage modes:
  tesis             Start the interactive interface
  tesis <command>   Run a specific command (see below)

Use 'tesis asesores' to list advisors without entering the interface.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return fmt.Errorf("la interfaz interactiva requiere una terminal")
			}

			app, cleanup, err := buildApp()
			if err != nil {
				return err
			}
			defer cleanup()
			return tui.Run(app)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", true, "Pretty print output")

	rootCmd.AddCommand(asesoresCmd())
	rootCmd.AddCommand(guiasCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildApp wires the collaborators behind the interactive interface. The
// cleanup func closes the database.
func buildApp() (*tui.App, func(), error) {
	log := logging.New("tesis")
	paths := config.GetPaths()
	if err := config.EnsureDir(paths.Documents); err != nil {
		log.Warn("documents_dir_failed", map[string]interface{}{"dir": paths.Documents}, err)
	}

	store, err := storage.New(paths.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("abrir almacenamiento: %w", err)
	}
	cleanup := func() { store.Close() }

	ctx := context.Background()
	if err := store.SeedAdvisors(ctx, advisor.Seed()); err != nil {
		log.Warn("advisor_seed_failed", nil, err)
	}

	advisors := advisor.Seed()
	if stored, err := store.ListAdvisors(ctx); err == nil && len(stored) > 0 {
		advisors = stored
	}

	app := &tui.App{
		Scheduler: schedule.NewSystem(),
		Identity:  identity.NewLocal(store),
		Advisors:  advisor.New(advisors...),
		Guides:    guide.New(),
		Picker:    picker.New(paths.Documents),
		Payments:  payment.New(),
		Store:     store,
		Log:       log,
	}
	return app, cleanup, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show tesis version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tesis version %s\n", version)
		},
	}
}
