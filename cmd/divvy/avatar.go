package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"divvy/internal/api"
	"divvy/internal/config"
	"divvy/internal/session"
)

func avatarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "avatar <image-file>",
		Short: "Upload a profile avatar",
		Long: `Uploads an image as your profile avatar. Requires a saved session;
log in through the TUI first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := session.LoadState()
			if err != nil {
				return fmt.Errorf("failed to read saved session: %w", err)
			}
			if state.Token == "" {
				return fmt.Errorf("no saved session; log in first")
			}

			path := config.ExpandPath(args[0])
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer func() { _ = file.Close() }()

			info, err := file.Stat()
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", path, err)
			}

			bar := progressbar.DefaultBytes(info.Size(), "uploading")
			reader := progressbar.NewReader(file, bar)

			client := api.New(viper.GetString("server.url"), api.WithToken(state.Token))
			saved, err := client.UploadAvatar(cmd.Context(), filepath.Base(path), &reader)
			if err != nil {
				return fmt.Errorf("upload failed: %w", err)
			}

			fmt.Printf("Avatar updated: %s\n", saved)
			return nil
		},
	}
}
