package usecase

import (
	"context"
	"fmt"

	"github.com/Burakyci/finis-bank/internal/application/dto"
	"github.com/Burakyci/finis-bank/internal/domain/port"
	"github.com/Burakyci/finis-bank/internal/domain/valueobject"
)

// GetApplicationUseCase retrieves one application for its owner.
type GetApplicationUseCase struct {
	appRepo port.ApplicationRepository
}

// NewGetApplicationUseCase wires dependencies.
func NewGetApplicationUseCase(appRepo port.ApplicationRepository) *GetApplicationUseCase {
	return &GetApplicationUseCase{appRepo: appRepo}
}

// Execute loads the application and enforces ownership.
func (uc *GetApplicationUseCase) Execute(
	ctx context.Context,
	req dto.GetApplicationRequest,
) (dto.ApplicationResponse, error) {
	if req.UserID == "" {
		return dto.ApplicationResponse{}, &valueobject.AuthRequiredError{}
	}

	app, err := uc.appRepo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("load application: %w", err)
	}
	if app.UserID() != req.UserID {
		return dto.ApplicationResponse{}, &valueobject.AuthRequiredError{
			Reason: "application belongs to another user",
		}
	}
	return toApplicationResponse(app), nil
}
