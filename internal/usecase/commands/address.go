package commands

import (
	"context"

	"servicemarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateAddressCommand struct {
	uow shared.UnitOfWork
}

func NewCreateAddressCommand(uow shared.UnitOfWork) *CreateAddressCommand {
	return &CreateAddressCommand{uow: uow}
}

func (c *CreateAddressCommand) Execute(ctx context.Context, userID uuid.UUID, params shared.AddressParams) (uuid.UUID, error) {
	var addressID uuid.UUID

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err := tx.Addresses().Create(ctx, userID, params)
		if err != nil {
			return err
		}
		addressID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return addressID, nil
}
