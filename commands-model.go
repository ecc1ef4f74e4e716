package main

import (
	"fmt"

	"github.com/jbeshir/expertise-predictor/datasource"
	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a model on the dataset and save it",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, afero.NewOsFs())
		if err != nil {
			return err
		}
		return a.train(cmd)
	},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score the saved model against the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, afero.NewOsFs())
		if err != nil {
			return err
		}
		return a.evaluate(cmd)
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Write per-sample predictions as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, afero.NewOsFs())
		if err != nil {
			return err
		}
		return a.classify(cmd)
	},
}

func init() {
	classifyCmd.Flags().String("session", "", "Only classify this session")
}

func (a *app) train(cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	l := ctxlogrus.Get(ctx)

	ds, err := a.loadDataset(ctx)
	if err != nil {
		return err
	}
	c, err := a.newClassifier()
	if err != nil {
		return err
	}
	if err := c.Train(ctx, ds); err != nil {
		return err
	}
	if exists, err := a.store.Exists(ctx, a.cfg.ModelPath); err != nil {
		return err
	} else if exists {
		l.Infof("Replacing existing model at %s", a.cfg.ModelPath)
	}
	if err := c.Save(ctx, a.cfg.ModelPath); err != nil {
		return err
	}

	l.Infof("Saved model trained on %d sessions over features %v to %s", len(ds.Sessions), c.Features(), a.cfg.ModelPath)
	return nil
}

func (a *app) evaluate(cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	ds, err := a.loadDataset(ctx)
	if err != nil {
		return err
	}
	c, err := a.loadClassifier(ctx)
	if err != nil {
		return err
	}
	eval, err := c.Evaluate(ctx, ds)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(a.out, eval.Summary())
	return err
}

func (a *app) classify(cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	ds, err := a.loadDataset(ctx)
	if err != nil {
		return err
	}
	modelID, _ := cmd.Flags().GetString("session")
	sessions, err := selectSessions(ds, modelID)
	if err != nil {
		return err
	}
	c, err := a.loadClassifier(ctx)
	if err != nil {
		return err
	}

	var rows []*datasource.PredictionRow
	for _, s := range sessions {
		sessionRows, err := datasource.PredictionRows(s, c.ClassifyBatch(ctx, s.Samples))
		if err != nil {
			return err
		}
		rows = append(rows, sessionRows...)
	}
	return datasource.ExportPredictions(a.out, rows)
}
