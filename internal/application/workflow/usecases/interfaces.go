package usecases

import (
	"context"

	ticketdto "redsys/internal/application/ticket/dto"
)

type TransitionTicketExecutor interface {
	Execute(ctx context.Context, cmd TransitionTicketCommand) (*ticketdto.TicketDTO, error)
}
