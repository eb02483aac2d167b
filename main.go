// Package main provides the entry point for the lector CLI application.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/lectorhq/lector/extract"
	"github.com/lectorhq/lector/speech"
	"github.com/lectorhq/lector/speech/audio"
	"github.com/lectorhq/lector/speech/engines/gtts"
	"github.com/lectorhq/lector/speech/engines/mock"
	"github.com/lectorhq/lector/speech/engines/piper"
	"github.com/lectorhq/lector/ui"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	engineName string
	voiceID    string
	speechRate float64
	autoplay   bool
	readByLine bool
	watchFile  bool
	mouse      bool
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "lector [FILE]",
		Short: "Read documents aloud in your terminal",
		Long: paragraph(fmt.Sprintf(
			"\nOpen a document and have it %s, sentence by sentence, with the current position highlighted as you go.",
			keyword("read aloud"))),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.MaximumNArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: execute,
	}
)

func stdinIsPipe() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, fmt.Errorf("unable to stat stdin: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

func execute(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("lector needs a terminal to run in")
	}

	var (
		text string
		path string
	)

	// A pipe or an explicit - reads the document from stdin.
	if piped, err := stdinIsPipe(); err != nil {
		return err
	} else if piped || (len(args) == 1 && args[0] == "-") {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("unable to read stdin: %w", err)
		}
		text = string(b)
	} else {
		if len(args) == 0 {
			return errors.New("missing document: pass a file or pipe text in")
		}
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("unable to resolve path: %w", err)
		}
		path = abs
		text, err = extract.File(path)
		if err != nil {
			return err
		}
	}

	cfg, err := loadSpeechConfig(cmd)
	if err != nil {
		return err
	}

	ctrl, err := buildController(cfg)
	if err != nil {
		return err
	}
	if _, err := ctrl.LoadText(text); err != nil {
		return fmt.Errorf("unable to load document: %w", err)
	}

	uiCfg := ui.Config{
		Path:        path,
		Watch:       watchFile && path != "",
		Autoplay:    cfg.Autoplay,
		EnableMouse: mouse,
	}
	if _, err := ui.NewProgram(uiCfg, ctrl).Run(); err != nil {
		return fmt.Errorf("unable to run program: %w", err)
	}
	return nil
}

// loadSpeechConfig resolves speech settings: env defaults, then the config
// file, then explicit flags.
func loadSpeechConfig(cmd *cobra.Command) (speech.Config, error) {
	cfg, err := speech.LoadConfigFromViper()
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("engine") {
		cfg.Engine = engineName
	}
	if cmd.Flags().Changed("voice") {
		cfg.Voice = voiceID
	}
	if cmd.Flags().Changed("rate") {
		cfg.Rate = speechRate
	}
	if cmd.Flags().Changed("autoplay") {
		cfg.Autoplay = autoplay
	}
	if cmd.Flags().Changed("line-by-line") {
		cfg.ReadByLine = readByLine
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// buildController assembles the synthesizer stack and a controller tuned
// by the config.
func buildController(cfg speech.Config) (*speech.Controller, error) {
	synth, err := buildSynthesizer(cfg)
	if err != nil {
		return nil, err
	}

	if err := applyVoice(synth, cfg); err != nil {
		return nil, err
	}
	if err := synth.SetRate(cfg.Rate); err != nil {
		return nil, err
	}

	ctrl := speech.NewController(synth)
	ctrl.SetReadByLine(cfg.ReadByLine)
	return ctrl, nil
}

func buildSynthesizer(cfg speech.Config) (speech.Synthesizer, error) {
	switch cfg.Engine {
	case "piper":
		return piper.New(cfg.Piper, audio.NewPlayer()), nil
	case "gtts":
		return gtts.New(cfg.GTTS, audio.NewPlayer()), nil
	case "mock":
		return mock.New(), nil
	default:
		return nil, fmt.Errorf("unknown speech engine %q", cfg.Engine)
	}
}

// applyVoice selects the configured voice, or the best match for the
// locale when none is configured.
func applyVoice(synth speech.Synthesizer, cfg speech.Config) error {
	if !synth.Available() {
		// Leave voice selection alone; the controller surfaces the
		// unavailability on first use.
		return nil
	}
	if cfg.Voice != "" {
		for _, v := range synth.Voices() {
			if v.ID == cfg.Voice {
				return synth.SetVoice(v)
			}
		}
		return fmt.Errorf("%w: %s", speech.ErrVoiceNotFound, cfg.Voice)
	}
	v, err := speech.DefaultVoice(synth.Voices(), cfg.Locale)
	if err != nil {
		return err
	}
	return synth.SetVoice(v)
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

// setupLog routes logs away from the TUI. Debug logging goes to a file so
// it survives the alt screen.
func setupLog() (func() error, error) {
	if !debugRequested() {
		log.SetLevel(log.WarnLevel)
		log.SetOutput(io.Discard)
		return func() error { return nil }, nil
	}

	scope := gap.NewScope(gap.User, "lector")
	path, err := scope.LogPath("lector.log")
	if err != nil {
		return nil, fmt.Errorf("unable to resolve log path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec
		return nil, fmt.Errorf("unable to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}

	log.SetOutput(f)
	log.SetLevel(log.DebugLevel)
	log.SetReportCaller(true)
	log.Debug("logging started", "version", Version)
	return f.Close, nil
}

// debugRequested checks the flag before cobra parses it so logging is set
// up for the whole run.
func debugRequested() bool {
	if os.Getenv("LECTOR_DEBUG") != "" {
		return true
	}
	for _, arg := range os.Args[1:] {
		if arg == "--debug" || arg == "-d" {
			return true
		}
	}
	return false
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "write debug logs to the lector log file")
	rootCmd.Flags().StringVarP(&engineName, "engine", "e", "piper", "speech engine (piper, gtts, mock)")
	rootCmd.Flags().StringVarP(&voiceID, "voice", "v", "", "voice to read with")
	rootCmd.Flags().Float64VarP(&speechRate, "rate", "r", 1.0, "speaking rate multiplier")
	rootCmd.Flags().BoolVarP(&autoplay, "autoplay", "a", false, "start reading immediately")
	rootCmd.Flags().BoolVarP(&readByLine, "line-by-line", "l", false, "read one sentence at a time instead of whole sections")
	rootCmd.Flags().BoolVarP(&watchFile, "watch", "w", true, "reload the document when it changes on disk")
	rootCmd.Flags().BoolVarP(&mouse, "mouse", "m", false, "enable mouse wheel scrolling")
	_ = rootCmd.Flags().MarkHidden("mouse")

	// Config bindings
	_ = viper.BindPFlag("speech.engine", rootCmd.Flags().Lookup("engine"))
	_ = viper.BindPFlag("speech.voice", rootCmd.Flags().Lookup("voice"))
	_ = viper.BindPFlag("speech.rate", rootCmd.Flags().Lookup("rate"))
	_ = viper.BindPFlag("speech.autoplay", rootCmd.Flags().Lookup("autoplay"))
	_ = viper.BindPFlag("speech.read_by_line", rootCmd.Flags().Lookup("line-by-line"))

	rootCmd.AddCommand(configCmd, voicesCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "lector")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find the configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "lector")}, dirs...)
	}

	if c := os.Getenv("LECTOR_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("lector")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("lector")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "lector.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
