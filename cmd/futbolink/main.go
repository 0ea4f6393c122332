package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/futbolink/futbolink/internal/auth"
	"github.com/futbolink/futbolink/internal/config"
	"github.com/futbolink/futbolink/internal/credential"
	"github.com/futbolink/futbolink/internal/logging"
	"github.com/futbolink/futbolink/internal/tui"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	provider := auth.New(credential.NewStore())

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "--version", "-v":
			fmt.Println("futbolink " + version)
			return
		case "help", "--help", "-h":
			printHelp(os.Stdout)
			return
		case "logout":
			if err := provider.Clear(); err != nil {
				fail(err)
			}
			fmt.Println("logged out")
			return
		case "whoami":
			if err := runWhoami(os.Stdout, provider); err != nil {
				fail(err)
			}
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
			printHelp(os.Stderr)
			os.Exit(1)
		}
	}

	if err := runTUI(provider); err != nil {
		fail(err)
	}
}

func runTUI(provider *auth.Provider) error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogFile)
	if err != nil {
		// The TUI can run without diagnostics; say so once and move on.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		logger = nil
	} else {
		defer logger.Sync() //nolint:errcheck
	}

	app := tui.NewApp(provider, cfg, logger)
	_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

// runWhoami prints the identity baked into the stored session token.
func runWhoami(w io.Writer, provider *auth.Provider) error {
	st := provider.Load()
	if !st.IsAuthenticated {
		fmt.Fprintln(w, "not signed in")
		return nil
	}
	fmt.Fprintf(w, "%s (%s)\n", st.UserID, st.Role)
	return nil
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `futbolink — find teams, find players

Usage:
  futbolink            launch the interactive client
  futbolink whoami     show who the stored session belongs to
  futbolink logout     erase the stored session
  futbolink version    print the version

Configuration lives at ~/.config/futbolink/config.yaml. The API base URL
can also be set with FUTBOLINK_API_URL.
`)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
