package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Danondso/soundswitch/internal/chime"
	"github.com/Danondso/soundswitch/internal/clipboard"
	"github.com/Danondso/soundswitch/internal/config"
	"github.com/Danondso/soundswitch/internal/device"
	"github.com/Danondso/soundswitch/internal/hotkey"
	"github.com/Danondso/soundswitch/internal/tui"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const usageText = `Usage: soundswitch [flags] [command]

Commands:
  (none)                          interactive mode with global hotkeys
  list                            list input and output devices
  set <input|output> <name|id>    make a device the system default
  cycle <input|output>            switch to the next device

Flags:
`

func run() {
	debug := flag.Bool("debug", false, "enable debug logging")
	backendFlag := flag.String("backend", "", "device backend: auto, coreaudio, pulse, portaudio, miniaudio (overrides config)")
	cfgPath := flag.String("config", config.DefaultPath(), "config file path")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usageText)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println("soundswitch", version)
		return
	}

	// Set up debug logger
	var dbg *log.Logger
	if *debug {
		dbg = log.New(os.Stderr, "[DEBUG] ", log.Ltime|log.Lmicroseconds)
	} else {
		dbg = log.New(io.Discard, "", 0)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	name := cfg.Backend
	if *backendFlag != "" {
		name = *backendFlag
	}
	be, err := openBackend(name, cfg, dbg)
	if err != nil {
		log.Fatalf("open backend: %v", err)
	}
	dbg.Printf("backend: %s", be.name)

	if args := flag.Args(); len(args) > 0 {
		sw := device.NewSwitcher(be.hal, device.NewRegistry(), cfg.Selection.Confirm, dbg)
		code := runCommand(os.Stdout, os.Stderr, sw, args)
		be.close()
		os.Exit(code)
	}

	runInteractive(cfg, *cfgPath, be, dbg, *debug)
	be.close()
}

func runInteractive(cfg *config.Config, cfgPath string, be *backendHandle, dbg *log.Logger, debug bool) {
	tui.RegisterCustomThemes(cfg.CustomThemes)

	chimePlayer, err := chime.New(cfg.Audio.Chime, cfg.Audio.ChimeEnabled, dbg)
	if err != nil {
		log.Fatalf("create chime player: %v", err)
	}

	// Parse both combos before anything else so a typo fails fast.
	type binding struct {
		dir   device.Direction
		combo string
	}
	var wanted []binding
	for _, b := range []binding{{device.Input, cfg.Hotkey.Input}, {device.Output, cfg.Hotkey.Output}} {
		if b.combo == "" {
			continue
		}
		if _, err := hotkey.ParseHotkeyCombo(b.combo); err != nil {
			log.Fatalf("hotkey %s: %v", b.dir, err)
		}
		wanted = append(wanted, b)
	}

	model := tui.NewModel(tui.Options{
		HAL:           be.hal,
		Registry:      device.NewRegistry(),
		Confirm:       cfg.Selection.Confirm,
		BackendName:   be.name,
		InputHotkey:   cfg.Hotkey.Input,
		OutputHotkey:  cfg.Hotkey.Output,
		Version:       version,
		ToastDuration: cfg.ToastDuration(),
		Chime:         chimePlayer,
		Copy:          clipboard.CopyText,
		Theme:         cfg.Theme,
		Logger:        dbg,
		Debug:         debug,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	// When debug is enabled, redirect logger output into the TUI debug panel
	if debug {
		dbg.SetOutput(tui.NewLogWriter(p))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go watch(ctx, be, cfg.PollInterval(), dbg, func() {
		p.Send(tui.RefreshRequestMsg{})
	})

	go func() {
		err := config.Watch(ctx, cfgPath, dbg, func(c *config.Config) {
			p.Send(tui.ConfigReloadedMsg{Config: c})
		})
		if err != nil && ctx.Err() == nil {
			dbg.Printf("watch: config: %v", err)
		}
	}()

	var bindings []hotkey.Binding
	for _, b := range wanted {
		listener, err := hotkey.NewFromConfig(b.combo, cfg.Hotkey.Device)
		if err != nil {
			dbg.Printf("hotkey: %s: %v", b.combo, err)
			go p.Send(tui.HotkeyErrorMsg{KeyName: b.combo, Err: err})
			continue
		}
		dir := b.dir
		bindings = append(bindings, hotkey.Binding{
			Listener: listener,
			OnDown: func() {
				dbg.Printf("hotkey down: %s", listener.KeyName())
				p.Send(tui.CycleMsg{Dir: dir})
			},
		})
	}
	results := hotkey.StartAll(ctx, bindings...)
	go func() {
		for r := range results {
			if r.Err != nil {
				p.Send(tui.HotkeyErrorMsg{KeyName: r.KeyName, Err: r.Err})
			}
		}
	}()

	if _, err := p.Run(); err != nil {
		log.Fatalf("TUI error: %v", err)
	}

	// Clean shutdown
	cancel()
	for _, b := range bindings {
		b.Listener.Stop()
	}
}

// watch forwards change notifications to post. If the native watcher dies
// it falls back to polling.
func watch(ctx context.Context, be *backendHandle, interval time.Duration, dbg *log.Logger, post func()) {
	err := device.NewBridge(be.watcher, post).Run(ctx)
	if ctx.Err() != nil {
		return
	}
	dbg.Printf("watch: %v, polling every %s", err, interval)
	_ = device.NewBridge(&device.PollWatcher{HAL: be.hal, Interval: interval}, post).Run(ctx)
}
