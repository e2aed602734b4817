package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"libranet/library"
)

const (
	defaultJSONFile   = "libranet.json"
	defaultSQLiteFile = "libranet.db"
)

var (
	dataPath string
	backend  string
	verbose  bool

	mgr        *library.Manager
	closeStore func() error
)

var rootCmd = &cobra.Command{
	Use:           "libranet",
	Short:         "LibraNet lending library",
	Long:          "LibraNet tracks a lending library's catalog, members, fines and audiobook rentals.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return openManager()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if closeStore != nil {
			return closeStore()
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "path to the snapshot file (default libranet.json or libranet.db)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "json", "snapshot backend: json or sqlite")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func openManager() error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With("session", uuid.New().String())

	var (
		store library.Store
		err   error
	)
	switch strings.ToLower(backend) {
	case "json":
		path := dataPath
		if path == "" {
			path = defaultJSONFile
		}
		store, err = library.NewFileStore(path)
	case "sqlite":
		path := dataPath
		if path == "" {
			path = defaultSQLiteFile
		}
		var s *library.SQLiteStore
		s, err = library.NewSQLiteStore(path)
		if err == nil {
			closeStore = s.Close
		}
		store = s
	default:
		return fmt.Errorf("unknown backend %q (want json or sqlite)", backend)
	}
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	mgr, err = library.NewManager(store, library.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	return nil
}

// readPassword securely reads a password with masking.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(bytePassword)), nil
}

// authenticateMember prompts for and verifies the member's password before a
// circulation action. Members without a password pass straight through.
func authenticateMember(memberID int64) error {
	mem, err := mgr.GetMember(memberID)
	if err != nil {
		return err
	}
	if mem.PasswordHash == "" {
		return nil
	}
	password, err := readPassword("Enter your password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	return mgr.Authenticate(memberID, password)
}
