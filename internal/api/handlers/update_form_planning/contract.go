package update_form_planning

import (
	"context"

	updateFormPlanning "github.com/m04kA/SMC-SlotService/internal/usecase/update_form_planning"
)

type UpdateFormPlanningUseCase interface {
	Execute(ctx context.Context, req *updateFormPlanning.Request) (*updateFormPlanning.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
