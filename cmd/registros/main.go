package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gestdata/registrosgo/internal/client/api"
	"github.com/gestdata/registrosgo/internal/client/cli"
	"github.com/gestdata/registrosgo/internal/client/staging"
	"github.com/gestdata/registrosgo/internal/config"
	"github.com/gestdata/registrosgo/internal/registro"
	"github.com/spf13/cobra"
)

var (
	apiURL      string
	stagingFile string
	transient   bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "registros: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := config.LoadClient()

	cmd := &cobra.Command{
		Use:   "registros",
		Short: "Record management client",
		Long: `registros stages employee/work-assignment records locally, imports them in
bulk from spreadsheets and commits them to the registros API. Staged records
survive restarts via a local snapshot file unless --transient is given.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&apiURL, "api-url", cfg.APIURL, "Base URL of the registros API")
	cmd.PersistentFlags().StringVar(&stagingFile, "staging-file", cfg.StagingFile, "Path of the staging snapshot file")
	cmd.PersistentFlags().BoolVar(&transient, "transient", false, "Keep the staging cache in memory only")
	cmd.AddCommand(
		newShellCmd(),
		newLoginCmd(),
		newAddCmd(),
		newImportCmd(),
		newListCmd(),
		newCommitCmd(),
		newRefreshCmd(),
		newDeleteCmd(),
		newClearCmd(),
		newExportCmd(),
		newTemplateCmd(),
	)
	return cmd
}

// newApp builds the client application shared by all subcommands
func newApp() (*cli.App, error) {
	path := stagingFile
	if transient {
		path = ""
	} else if path == "" {
		home, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, "registros", "staging.json")
	}

	store, restored, err := staging.Open(path)
	if err != nil {
		return nil, err
	}
	if restored {
		fmt.Printf("📦 %d registros restaurados del área de trabajo local\n", store.Len())
	}

	return cli.NewApp(api.New(apiURL), store), nil
}

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			app.Shell(cmd.Context())
			return nil
		},
	}
}

func newLoginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <usuario>",
		Short: "Verify credentials against the API",
		Long: `login checks a username/password pair against the API and reports whether a
token was issued. The token lives only for the current process, so commands
against a gateway with AUTH_REQUIRED=true should run inside 'shell', where
the session keeps the token.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if password == "" {
				fmt.Print("Contraseña: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimSpace(line)
			}
			return app.Login(cmd.Context(), args[0], password)
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	return cmd
}

func newAddCmd() *cobra.Command {
	var draft registro.Record
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Stage a single record",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return app.Add(cmd.Context(), draft)
		},
	}
	cmd.Flags().StringVar(&draft.Proyecto, "proyecto", "", "Project label (required)")
	cmd.Flags().StringVar(&draft.CentroOperacion, "centro", "", "Operation center")
	cmd.Flags().StringVar(&draft.Cargo, "cargo", "", "Job title")
	cmd.Flags().StringVar(&draft.Cedula, "cedula", "", "National id (required)")
	cmd.Flags().StringVar(&draft.Nombre, "nombre", "", "Full name (required)")
	cmd.Flags().StringVar(&draft.Numero, "numero", "", "Phone number")
	cmd.Flags().StringVar(&draft.Status, "status", "", "Status SI/NO (default SI)")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Stage records from a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return app.Import(cmd.Context(), args[0])
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the staged working set",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			app.List(cmd.Context())
			return nil
		},
	}
}

func newCommitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit",
		Short: "Send staged records to the API and reconcile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return app.Commit(cmd.Context())
		},
	}
}

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Replace the working set with the stored records",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return app.Refresh(cmd.Context())
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one record (durably when the id is authoritative)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return app.Delete(cmd.Context(), args[0])
		},
	}
}

func newClearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every record, stored and staged",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("clear removes every stored record; pass --yes to confirm")
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return app.Clear(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the wipe")
	return cmd
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Export the working set to a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return app.Export(cmd.Context(), args[0])
		},
	}
}

func newTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template <file.xlsx>",
		Short: "Write an import template with the expected columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return app.Template(args[0])
		},
	}
}
