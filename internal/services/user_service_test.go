package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"quote-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMachine_ResolvesCatalogType(t *testing.T) {
	users := &fakeUsers{}
	productTypes := NewProductTypeService(&fakeProductTypes{types: tractorCatalog()}, nil, time.Minute, nil)
	svc := NewUserService(users, productTypes)

	machine, err := svc.AddMachine(context.Background(), "user-1", models.AddMachineRequest{
		Name:     " Big Red ",
		TypeName: "utility tractor",
		AgeYears: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), machine.ID)
	assert.Equal(t, "Big Red", machine.Name)
	require.NotNil(t, machine.TypeID)
	assert.Equal(t, int64(2), *machine.TypeID)
	assert.Equal(t, "Utility Tractor", machine.TypeName)
	assert.NotNil(t, machine.PreexistingConditions)

	listed, err := svc.ListMachines(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestAddMachine_UnknownTypeKeptAsText(t *testing.T) {
	svc := NewUserService(&fakeUsers{}, NewProductTypeService(&fakeProductTypes{types: tractorCatalog()}, nil, time.Minute, nil))

	machine, err := svc.AddMachine(context.Background(), "user-1", models.AddMachineRequest{Name: "Old Grey", TypeName: "Ferguson TE20"})
	require.NoError(t, err)
	assert.Nil(t, machine.TypeID)
	assert.Equal(t, "Ferguson TE20", machine.TypeName)
}

func TestAddMachine_TypeIDChecked(t *testing.T) {
	users := &fakeUsers{}
	svc := NewUserService(users, NewProductTypeService(&fakeProductTypes{types: tractorCatalog()}, nil, time.Minute, nil))

	id := int64(3)
	machine, err := svc.AddMachine(context.Background(), "user-1", models.AddMachineRequest{Name: "Old Red", TypeID: &id, TypeName: "old one"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), *machine.TypeID)
	assert.Equal(t, "Vintage Tractor", machine.TypeName)

	missing := int64(999)
	_, err = svc.AddMachine(context.Background(), "user-1", models.AddMachineRequest{Name: "Ghost", TypeID: &missing, TypeName: "Phantom"})
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.NotErrorIs(t, err, models.ErrPersistence)
	assert.Len(t, users.machines, 1)
}

func TestAddMachine_Errors(t *testing.T) {
	svc := NewUserService(&fakeUsers{err: errors.New("insert failed")}, nil)

	_, err := svc.AddMachine(context.Background(), "", models.AddMachineRequest{Name: "x", TypeName: "y"})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.AddMachine(context.Background(), "user-1", models.AddMachineRequest{Name: "x", TypeName: "y"})
	assert.ErrorIs(t, err, models.ErrPersistence)
}
