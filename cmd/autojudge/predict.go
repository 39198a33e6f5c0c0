package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/praveenr-web/AutoJudge/internal/application/dto"
	"github.com/praveenr-web/AutoJudge/internal/application/usecase"
	"github.com/praveenr-web/AutoJudge/internal/domain/model"
	"github.com/praveenr-web/AutoJudge/internal/domain/service"
	"github.com/praveenr-web/AutoJudge/internal/infrastructure/pipeline"
	"github.com/praveenr-web/AutoJudge/internal/presentation/cli"
)

// statementFlags are the problem statement flags shared by predict and features.
type statementFlags struct {
	description string
	input       string
	output      string
	json        bool
}

func (f *statementFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.description, "description", "d", "", `problem description ("-" reads it verbatim from stdin)`)
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "input format description")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output format description")
	cmd.Flags().BoolVar(&f.json, "json", false, "print JSON instead of formatted text")
}

func (f *statementFlags) request(stdin io.Reader) (dto.PredictDifficultyRequest, error) {
	description := f.description
	if description == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return dto.PredictDifficultyRequest{}, fmt.Errorf("failed to read description from stdin: %w", err)
		}
		description = string(data)
	}
	return dto.PredictDifficultyRequest{
		Description:       description,
		InputDescription:  f.input,
		OutputDescription: f.output,
	}, nil
}

func newPredictCmd(a *app) *cobra.Command {
	var flags statementFlags

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the difficulty class and score of a problem",
		Example: `  autojudge predict -d "Find the shortest path in a weighted graph" -i "n m, then m edges" -o "one integer"
  cat problem.txt | autojudge predict -d - --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(cmd.InOrStdin())
			if err != nil {
				return err
			}

			store := pipeline.NewStore(a.v.GetString(keyClassifierPath), a.v.GetString(keyRegressorPath), a.logger)
			predictor := service.NewDifficultyPredictor(store, a.logger)
			uc := usecase.NewPredictDifficulty(predictor, nil, a.logger)

			out := cli.NewPrinter(cmd.OutOrStdout())
			resp, err := uc.Execute(cmd.Context(), req)
			if err != nil {
				if !flags.json {
					reportFailure(cli.NewPrinter(cmd.ErrOrStderr()), err)
				}
				return err
			}

			if flags.json {
				return out.JSON(resp)
			}
			out.Prediction(resp)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// reportFailure prints a banner describing a failed prediction.
func reportFailure(p *cli.Printer, err error) {
	var unavailable *service.ModelUnavailableError
	var predErr *service.PredictionError

	switch {
	case errors.Is(err, model.ErrBlankDescription):
		p.Warning(dto.AdvisoryBlankDescription)
	case errors.As(err, &unavailable):
		p.Error("Difficulty models are unavailable. Check --classifier and --regressor.")
	case errors.As(err, &predErr):
		p.Error(fmt.Sprintf("The %s pipeline failed to predict.", predErr.Stage))
	default:
		p.Error("The difficulty could not be predicted.")
	}
}

func newFeaturesCmd(a *app) *cobra.Command {
	var flags statementFlags

	cmd := &cobra.Command{
		Use:   "features",
		Short: "Print the feature record built for a problem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(cmd.InOrStdin())
			if err != nil {
				return err
			}

			rec := model.BuildFeaturesFor(req.ToModel()).Rows[0]
			out := cli.NewPrinter(cmd.OutOrStdout())
			if flags.json {
				return out.JSON(rec)
			}
			out.Features(rec)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newInspectCmd(a *app) *cobra.Command {
	var (
		top    int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Validate the pipeline artifacts and print their summaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if top < 0 {
				return fmt.Errorf("--top must not be negative, got %d", top)
			}

			clf, err := pipeline.ReadArtifact(a.v.GetString(keyClassifierPath))
			if err != nil {
				return fmt.Errorf("classifier artifact: %w", err)
			}
			reg, err := pipeline.ReadArtifact(a.v.GetString(keyRegressorPath))
			if err != nil {
				return fmt.Errorf("regressor artifact: %w", err)
			}
			if _, err := pipeline.NewClassifier(clf); err != nil {
				return fmt.Errorf("classifier artifact: %w", err)
			}
			if _, err := pipeline.NewRegressor(reg); err != nil {
				return fmt.Errorf("regressor artifact: %w", err)
			}

			out := cli.NewPrinter(cmd.OutOrStdout())
			if asJSON {
				return out.JSON(map[string]pipeline.Summary{
					pipeline.KindClassifier: clf.Summarize(top),
					pipeline.KindRegressor:  reg.Summarize(top),
				})
			}
			out.Summary("Classifier", clf.Summarize(top))
			fmt.Fprintln(cmd.OutOrStdout())
			out.Summary("Regressor", reg.Summarize(top))
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 10, "number of highest-idf vocabulary terms to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of formatted text")
	return cmd
}
