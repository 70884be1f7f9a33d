package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/courseflow/internal/config"
	"github.com/abhisek/courseflow/internal/course"
	"github.com/abhisek/courseflow/internal/engine"
	"github.com/abhisek/courseflow/internal/logger"
	"github.com/abhisek/courseflow/internal/store"
	syncx "github.com/abhisek/courseflow/internal/sync"
)

var rootCmd = &cobra.Command{
	Use:   "courseflow",
	Short: "Course progression engine",
	Long: "Courseflow drives a learner's progression through a multi-module " +
		"course: unlock chains, completion tracking, playback state, and the " +
		"assignment submission workflow. This CLI is a developer harness over " +
		"the engine; the engine itself is consumed as a library.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A .env next to the binary can supply COURSEFLOW_* settings.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides COURSEFLOW_DB)")
	rootCmd.PersistentFlags().String("enrollment", "", "Path to an enrollment JSON payload (overrides COURSEFLOW_ENROLLMENT)")
	rootCmd.PersistentFlags().String("user", "", "Learner id (overrides COURSEFLOW_USER)")
	rootCmd.PersistentFlags().String("base-url", "", "Backend base URL; omit to run offline (overrides COURSEFLOW_API)")
	rootCmd.PersistentFlags().String("token", "", "Bearer token for the backend (overrides COURSEFLOW_TOKEN)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// stringSetting resolves flag > env > fallback, the same way the db
// path is resolved.
func stringSetting(cmd *cobra.Command, flag, env, fallback string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return fallback
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then COURSEFLOW_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// offlineAPI satisfies sync.API without a backend, so the harness can
// inspect and mutate local state with no network.
type offlineAPI struct{}

func (offlineAPI) FetchEnrollment(context.Context, string) (*course.Enrollment, error) {
	return nil, fmt.Errorf("offline: no backend configured")
}

func (offlineAPI) SubmitAssignment(context.Context, syncx.SubmitPayload) (*syncx.SubmitResult, error) {
	return nil, fmt.Errorf("offline: no backend configured")
}

func (offlineAPI) ResubmitAssignment(context.Context, string, syncx.SubmitPayload) (*syncx.SubmitResult, error) {
	return nil, fmt.Errorf("offline: no backend configured")
}

func (offlineAPI) SubmissionByID(context.Context, string) (*syncx.RemoteSubmission, error) {
	return nil, nil
}

func (offlineAPI) UpdateEnrollmentProgress(context.Context, string, int) error {
	return nil
}

func (offlineAPI) GenerateCertificate(context.Context, string) (*syncx.Certificate, error) {
	return nil, fmt.Errorf("offline: no backend configured")
}

// loadEngine wires an Engine from flags and environment. The returned
// cleanup closes the engine and its store.
func loadEngine(cmd *cobra.Command) (*engine.Engine, func(), error) {
	ctx := cmd.Context()

	enrPath := stringSetting(cmd, "enrollment", "COURSEFLOW_ENROLLMENT", "")
	if enrPath == "" {
		return nil, nil, fmt.Errorf("no enrollment payload: pass --enrollment or set COURSEFLOW_ENROLLMENT")
	}
	data, err := os.ReadFile(enrPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read enrollment payload: %w", err)
	}
	enr, err := course.DecodeEnrollment(data)
	if err != nil {
		return nil, nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(os.Getenv("COURSEFLOW_LOG"))
	if err != nil {
		log = zap.NewNop()
	}

	var api syncx.API = offlineAPI{}
	if baseURL := stringSetting(cmd, "base-url", "COURSEFLOW_API", ""); baseURL != "" {
		token := stringSetting(cmd, "token", "COURSEFLOW_TOKEN", "")
		api = syncx.WithRetry(syncx.NewClient(baseURL, token, log), syncx.DefaultRetryConfig())
	}

	eng := engine.New(ctx, engine.Options{
		Enrollment: enr,
		UserID:     stringSetting(cmd, "user", "COURSEFLOW_USER", ""),
		Repo:       st.Repo(),
		API:        api,
		Config:     config.DefaultConfig(),
		Logger:     log,
	})

	cleanup := func() {
		eng.Close(context.Background())
		st.Close()
		_ = log.Sync()
	}
	return eng, cleanup, nil
}
