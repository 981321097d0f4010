package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fanatic84/TilesPlanner/internal/bootstrap"
	"github.com/fanatic84/TilesPlanner/internal/service"
)

// session holds the editor opened for one command invocation.
type session struct {
	editor *service.Editor
	stores *bootstrap.Stores
}

func newRootCmd() *cobra.Command {
	s := &session{}

	cmd := &cobra.Command{
		Use:           "boardctl",
		Short:         "Inspect and edit tile board workspaces from the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.open(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			s.close()
		},
	}

	cmd.PersistentFlags().String("workspace", "", "Workspace id to open instead of the last used one")
	cmd.PersistentFlags().Bool("view", false, "Render in view mode (hide cell ids)")

	cmd.AddCommand(
		newShowCmd(s),
		newListCmd(s),
		newNewCmd(s),
		newSelectCmd(s),
		newDeleteCmd(s),
		newPlaceCmd(s),
		newDropCmd(s),
		newClearCmd(s),
		newPaletteCmd(s),
	)
	return cmd
}

func (s *session) open(cmd *cobra.Command) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	log := bootstrap.ConfigureLogger(cfg)
	log.SetOutput(os.Stderr)
	if log.GetLevel() > logrus.WarnLevel && os.Getenv("LOG_LEVEL") == "" {
		log.SetLevel(logrus.WarnLevel)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	editor, stores, err := bootstrap.NewEditor(ctx, cfg)
	if err != nil {
		return err
	}
	s.editor, s.stores = editor, stores

	if id, _ := cmd.Flags().GetString("workspace"); id != "" {
		if err := editor.SwitchWorkspace(ctx, id); err != nil {
			return fmt.Errorf("open workspace %s: %w", id, err)
		}
	}
	if viewMode, _ := cmd.Flags().GetBool("view"); viewMode {
		editor.ToggleDesignerMode()
	}
	return nil
}

func (s *session) close() {
	if s.stores != nil {
		s.stores.Close()
		s.stores = nil
	}
}
