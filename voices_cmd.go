package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lectorhq/lector/speech"
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List the voices the selected engine can read with",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadSpeechConfig(cmd.Root())
		if err != nil {
			return err
		}
		synth, err := buildSynthesizer(cfg)
		if err != nil {
			return err
		}
		if !synth.Available() {
			return fmt.Errorf("%w: engine %q is not installed", speech.ErrSynthesizerUnavailable, cfg.Engine)
		}

		voices := synth.Voices()
		preferred, _ := speech.DefaultVoice(voices, cfg.Locale)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLANGUAGE\tWHERE\tSIZE\t")
		for _, v := range voices {
			where := "remote"
			if v.Local {
				where = "local"
			}
			size := ""
			if cfg.Engine == "piper" && cfg.Piper.DataDir != "" {
				if info, err := os.Stat(filepath.Join(cfg.Piper.DataDir, v.ID+".onnx")); err == nil {
					size = humanize.Bytes(uint64(info.Size())) //nolint:gosec
				}
			}
			marker := ""
			if v.ID == preferred.ID {
				marker = " *"
			}
			fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t\n", v.ID, marker, v.Language, where, size)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Println("\n* default for locale", cfg.Locale)
		return nil
	},
}
