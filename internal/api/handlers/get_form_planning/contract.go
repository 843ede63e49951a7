package get_form_planning

import (
	"context"

	getFormPlanning "github.com/m04kA/SMC-SlotService/internal/usecase/get_form_planning"
)

type GetFormPlanningUseCase interface {
	Execute(ctx context.Context, req *getFormPlanning.Request) (*getFormPlanning.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
