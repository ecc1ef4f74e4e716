package main

import (
	"context"
	"io"
	"os"

	"github.com/jbeshir/expertise-predictor/classifier"
	"github.com/jbeshir/expertise-predictor/config"
	"github.com/jbeshir/expertise-predictor/data"
	"github.com/jbeshir/expertise-predictor/datasource"
	"github.com/jbeshir/expertise-predictor/filestore"
	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "expertise-predictor",
	Short: "Classify modeling sessions as novice or expert",
	Long: "expertise-predictor trains a classifier on per-sample modeling session features, " +
		"then scores sessions by windowed accuracy over relative modeling time.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config (overrides EXPERTISE_CONFIG env var)")
	rootCmd.PersistentFlags().String("dataset", "", "Dataset CSV path, relative to the storage root")
	rootCmd.PersistentFlags().String("model", "", "Model path, relative to the storage root")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(accuracyCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(serveCmd)
}

// app holds what every command needs once flags and config are resolved.
type app struct {
	cfg   *config.Config
	store *filestore.Store
	out   io.Writer
}

func newApp(cmd *cobra.Command, fs afero.Fs) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(fs, configPath)
	if err != nil {
		return nil, err
	}

	if p, _ := cmd.Flags().GetString("dataset"); p != "" {
		cfg.DatasetPath = p
	}
	if p, _ := cmd.Flags().GetString("model"); p != "" {
		cfg.ModelPath = p
	}

	return &app{
		cfg:   cfg,
		store: &filestore.Store{Fs: fs, Root: cfg.StorageRoot},
		out:   cmd.OutOrStdout(),
	}, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctxlogrus.WithFields(ctx, logrus.Fields{
		"command": cmd.Name(),
	})
}

func (a *app) newClassifier() (*classifier.Classifier, error) {
	strategy, err := classifier.NewSVM(a.cfg.SVM)
	if err != nil {
		return nil, err
	}
	return classifier.New(strategy, a.store), nil
}

func (a *app) loadDataset(ctx context.Context) (*data.Dataset, error) {
	l := &datasource.Loader{FileStore: a.store}
	return l.Load(ctx, a.cfg.DatasetPath)
}

func (a *app) loadClassifier(ctx context.Context) (*classifier.Classifier, error) {
	c, err := a.newClassifier()
	if err != nil {
		return nil, err
	}
	if err := c.Load(ctx, a.cfg.ModelPath); err != nil {
		return nil, err
	}
	ctxlogrus.Get(ctx).Debugf("Loaded model from %s using features %v", a.cfg.ModelPath, c.Features())
	return c, nil
}

// selectSessions returns every session, or just the one named.
func selectSessions(ds *data.Dataset, modelID string) ([]*data.Session, error) {
	if modelID == "" {
		return ds.Sessions, nil
	}
	s := ds.Session(modelID)
	if s == nil {
		return nil, errors.Errorf("no session %q in dataset", modelID)
	}
	return []*data.Session{s}, nil
}
