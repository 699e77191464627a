package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/selfupdate"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Install the latest ukpip release",
	Long: `Download the ukpip release for this platform from GitHub, check it against
the release's SHA256SUMS and replace the running binary.

Use --version to install a specific release, including an older one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetString("version")

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(5 * time.Minute))
		tag, err := checker.Update(ctx, selfupdate.UpdateInput{
			CurrentVersion: version,
			TargetVersion:  target,
		}, printUpdateProgress)

		switch {
		case err == nil:
			fmt.Printf("ukpip %s installed. Restart ukpip to use it.\n", tag)
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Println("This is a development build; install a release build first.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Printf("ukpip %s is the latest release.\n", version)
			return nil
		case errors.Is(err, selfupdate.ErrNoAsset):
			return fmt.Errorf("%w\n\nDownload a build manually from https://github.com/sfmahdi38-cmd/ukpip-site/releases", err)
		case errors.Is(err, os.ErrPermission):
			return fmt.Errorf("%w\n\nThe binary's directory is not writable. Try: sudo ukpip update", err)
		}
		return err
	},
}

func printUpdateProgress(p selfupdate.Progress) {
	switch p.Stage {
	case selfupdate.StageCheck:
		fmt.Println("Looking for a new release...")
	case selfupdate.StageDownload:
		if p.Total > 0 {
			fmt.Printf("\rDownloading %s: %3d%%", p.Version, p.Received*100/p.Total)
		} else {
			fmt.Printf("\rDownloading %s: %d KB", p.Version, p.Received/1024)
		}
	case selfupdate.StageVerify:
		fmt.Println()
		fmt.Println("Verifying checksum...")
	case selfupdate.StageInstall:
		fmt.Println("Installing...")
	}
}

func init() {
	updateCmd.Flags().String("version", "", "Release tag to install (default: latest)")
}
