// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-reader/internal/config"
	"github.com/mtreilly/arc-reader/internal/library"
	"github.com/mtreilly/arc-reader/internal/reader"
)

func newReadCmd(cfg *config.Config, store library.DocumentStore) *cobra.Command {
	var (
		wpmFlag   int
		autoPace  bool
		startWPM  int
		maxWPM    int
		fromFlag  int
		restart   bool
		textFlag  string
	)

	cmd := &cobra.Command{
		Use:   "read [document-id]",
		Short: "Play a document back word by word",
		Long: `Play a document from the library one word at a time.

Playback resumes from where you last stopped. Each word is held for a
delay derived from the rate, longer after sentence and clause endings.
Interrupt with Ctrl+C to stop; your position is saved automatically.

Examples:
  arc-reader read 1a2b3c4d                 # Resume a document
  arc-reader read 1a2b --wpm 400           # Override the rate
  arc-reader read 1a2b --restart           # Start over from word 0
  arc-reader read 1a2b --auto-pace         # Ramp the rate up gradually
  arc-reader read --text "words to flash"  # Read unsaved text directly`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && textFlag == "" {
				return fmt.Errorf("document ID or --text required")
			}

			sink := newTerminalSink(cfg.FocusHighlight)
			opts := reader.Options{
				WPM:          cfg.WPM,
				SaveDebounce: cfg.SaveDebounce(),
				Sink:         sink,
			}
			if autoPace || cfg.AutoPace {
				pace := reader.AutoPace{
					Enabled:  true,
					StartWPM: cfg.AutoPaceStartWPM,
					MaxWPM:   cfg.AutoPaceMaxWPM,
				}
				if startWPM > 0 {
					pace.StartWPM = startWPM
				}
				if maxWPM > 0 {
					pace.MaxWPM = maxWPM
				}
				opts.AutoPace = pace
			}
			player := reader.NewPlayer(store, opts)

			title := ""
			if len(args) > 0 {
				doc, err := resolveDocument(store, args[0])
				if err != nil {
					return err
				}
				player.LoadDocument(doc)
				title = doc.Title
			} else {
				player.LoadText(textFlag)
				title = reader.DeriveTitle(textFlag)
			}

			if restart {
				player.Reset()
			}
			if fromFlag >= 0 {
				player.Jump(fromFlag - player.Status().Index)
			}
			if wpmFlag > 0 {
				player.SetWPM(wpmFlag)
			}

			st := player.Status()
			fmt.Printf("%s  (%d words, from word %d at %d wpm)\n\n",
				truncate(title, 60), st.Total, st.Index, st.WPM)

			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigs)

			player.Play()

			ticker := time.NewTicker(200 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-sigs:
					player.Close()
					st := player.Status()
					fmt.Printf("\n\nStopped at word %d of %d (%d%%). Saved.\n",
						st.Index, st.Total, st.Percent)
					return nil
				case <-ticker.C:
					if player.Status().Phase == reader.PhaseFinished {
						player.Close()
						fmt.Println()
						return nil
					}
				}
			}
		},
	}

	cmd.Flags().IntVar(&wpmFlag, "wpm", 0, "Playback rate override")
	cmd.Flags().BoolVar(&autoPace, "auto-pace", false, "Ramp the rate from slow to fast over the document")
	cmd.Flags().IntVar(&startWPM, "start-wpm", 0, "Auto-pace starting rate")
	cmd.Flags().IntVar(&maxWPM, "max-wpm", 0, "Auto-pace ceiling rate")
	cmd.Flags().IntVar(&fromFlag, "from", -1, "Start from this word index")
	cmd.Flags().BoolVar(&restart, "restart", false, "Start from the beginning instead of resuming")
	cmd.Flags().StringVar(&textFlag, "text", "", "Read raw text instead of a library document")

	return cmd
}

// terminalSink renders frames in place on one terminal line, with the focus
// letter pinned to a fixed column so the eye never moves.
type terminalSink struct {
	highlight bool
	column    int
}

func newTerminalSink(highlight bool) *terminalSink {
	return &terminalSink{highlight: highlight, column: 20}
}

func (s *terminalSink) ShowWord(f reader.Frame) {
	pad := s.column - len([]rune(f.Left))
	if pad < 0 {
		pad = 0
	}
	focus := f.Focus
	if s.highlight && focus != "" {
		focus = "\033[1;31m" + focus + "\033[0m"
	}
	fmt.Printf("\r\033[K%s%s%s%s", strings.Repeat(" ", pad), f.Left, focus, f.Right)
}

func (s *terminalSink) ShowMessage(msg string) {
	if msg == "" {
		return
	}
	if msg == "Done" {
		return
	}
	fmt.Printf("\r\033[K%s", msg)
}

func (s *terminalSink) ShowStatus(reader.Status) {}
