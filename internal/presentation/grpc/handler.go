package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/praveenr-web/AutoJudge/internal/application/dto"
	"github.com/praveenr-web/AutoJudge/internal/application/usecase"
	"github.com/praveenr-web/AutoJudge/internal/domain/model"
	"github.com/praveenr-web/AutoJudge/internal/domain/service"
)

// PredictUseCase is the application capability behind PredictDifficulty.
type PredictUseCase interface {
	Execute(ctx context.Context, req dto.PredictDifficultyRequest) (dto.PredictionResponse, error)
}

var _ PredictUseCase = (*usecase.PredictDifficulty)(nil)

// Compile-time assertion that DifficultyServiceHandler implements DifficultyServiceServer.
var _ DifficultyServiceServer = (*DifficultyServiceHandler)(nil)

// DifficultyServiceHandler implements the gRPC DifficultyServiceServer interface.
type DifficultyServiceHandler struct {
	UnimplementedDifficultyServiceServer
	predict PredictUseCase
	logger  *slog.Logger
}

// NewDifficultyServiceHandler creates a new gRPC handler.
func NewDifficultyServiceHandler(predict PredictUseCase, logger *slog.Logger) *DifficultyServiceHandler {
	return &DifficultyServiceHandler{
		predict: predict,
		logger:  logger,
	}
}

// PredictDifficultyRequest represents the proto PredictDifficultyRequest message.
type PredictDifficultyRequest struct {
	Description       string `json:"description"`
	InputDescription  string `json:"input_description"`
	OutputDescription string `json:"output_description"`
}

// PredictDifficultyResponse represents the proto PredictDifficultyResponse message.
type PredictDifficultyResponse struct {
	ClassLabel     string  `json:"class_label"`
	Score          float64 `json:"score"`
	DisplayLabel   string  `json:"display_label"`
	DisplayScore   string  `json:"display_score"`
	Interpretation string  `json:"interpretation"`
	Message        string  `json:"message"`
}

// PredictDifficulty handles a difficulty prediction request.
func (h *DifficultyServiceHandler) PredictDifficulty(ctx context.Context, req *PredictDifficultyRequest) (*PredictDifficultyResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.predict.Execute(ctx, dto.PredictDifficultyRequest{
		Description:       req.Description,
		InputDescription:  req.InputDescription,
		OutputDescription: req.OutputDescription,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	return &PredictDifficultyResponse{
		ClassLabel:     result.ClassLabel,
		Score:          result.Score,
		DisplayLabel:   result.DisplayLabel,
		DisplayScore:   result.DisplayScore,
		Interpretation: result.Interpretation,
		Message:        result.Message,
	}, nil
}

func statusFromError(err error) error {
	var unavailable *service.ModelUnavailableError
	var predErr *service.PredictionError

	switch {
	case errors.Is(err, model.ErrBlankDescription):
		return status.Error(codes.InvalidArgument, dto.AdvisoryBlankDescription)
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	case errors.As(err, &unavailable):
		return status.Error(codes.Unavailable, "difficulty models are unavailable")
	case errors.As(err, &predErr):
		return status.Errorf(codes.Internal, "%s prediction failed", predErr.Stage)
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
