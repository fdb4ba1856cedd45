package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"podshell/internal/app"
	"podshell/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// shellFlags holds the root command flags. Only flags set on the command
// line override the configuration files.
type shellFlags struct {
	kubeconfig  string
	kubeContext string
	container   string
	command     []string
	inputMode   string
	logFile     string
	debug       bool
}

var rootFlags shellFlags

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "podshell",
	Short: "Open an interactive shell in a Kubernetes pod",
	Long: `podshell lets you pick a namespace and a pod from the current cluster
and opens an interactive shell in it. The local terminal is switched to raw
mode for the session and window size changes are forwarded to the pod.

When the shell exits, or Ctrl+C ends the session, podshell returns to
namespace selection. Press q or esc in a list to quit.

Settings are read from ~/.config/podshell/config.yaml and
.podshell/config.yaml in the working directory. Flags take precedence.`,
	Args: cobra.NoArgs,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. unreachable cluster, invalid configuration)
	SilenceUsage: true,
	RunE:         runShell,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "podshell version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func runShell(cmd *cobra.Command, args []string) error {
	podshellCfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd.Flags(), rootFlags, &podshellCfg); err != nil {
		return err
	}

	application, err := app.NewApplication(app.NewConfig(rootFlags.debug, podshellCfg))
	if err != nil {
		return err
	}
	defer application.Close()

	// SIGINT belongs to the running session; SIGTERM ends the program.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	return application.Run(ctx)
}

// applyFlags overlays the flags that were set onto cfg and validates the
// result.
func applyFlags(flags *pflag.FlagSet, values shellFlags, cfg *config.PodshellConfig) error {
	if flags.Changed("kubeconfig") {
		cfg.Kube.Kubeconfig = values.kubeconfig
	}
	if flags.Changed("context") {
		cfg.Kube.Context = values.kubeContext
	}
	if flags.Changed("container") {
		cfg.Session.Container = values.container
	}
	if flags.Changed("command") {
		cfg.Session.Command = append([]string(nil), values.command...)
	}
	if flags.Changed("input-mode") {
		cfg.Session.InputMode = values.inputMode
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = values.logFile
	}
	return cfg.Validate()
}

func addShellFlags(flags *pflag.FlagSet, f *shellFlags) {
	flags.StringVar(&f.kubeconfig, "kubeconfig", "", "Path to the kubeconfig file (default: standard loading rules)")
	flags.StringVar(&f.kubeContext, "context", "", "Kubeconfig context to use (default: current context)")
	flags.StringVarP(&f.container, "container", "c", "", "Container to open the shell in (default: annotated or first container)")
	flags.StringArrayVar(&f.command, "command", nil, "Command to run in the pod, repeat for each argument (default: bash, falling back to sh)")
	flags.StringVar(&f.inputMode, "input-mode", "", "How local input is forwarded: raw or line")
	flags.StringVar(&f.logFile, "log-file", "", "Write logs to this file instead of stderr")
	flags.BoolVar(&f.debug, "debug", false, "Enable debug logging")
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())

	addShellFlags(rootCmd.Flags(), &rootFlags)
}
