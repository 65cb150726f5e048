package services_test

import (
	"context"
	"testing"

	"github.com/c14220110/poliklinik-lab/internal/administrasi/services"
	"github.com/c14220110/poliklinik-lab/internal/common/memstore"
	cm "github.com/c14220110/poliklinik-lab/internal/common/models"
	"github.com/c14220110/poliklinik-lab/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasienService_GetPatient(t *testing.T) {
	store := memstore.New()
	store.Seed(nil, []cm.Patient{{ID: "7", Name: "Dewi", Age: 29}}, nil)
	svc := services.NewPasienService(store)
	ctx := context.Background()

	p, err := svc.GetPatient(ctx, " 7 ")
	require.NoError(t, err)
	assert.Equal(t, "Dewi", p.Name)

	_, err = svc.GetPatient(ctx, "")
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.GetPatient(ctx, "8")
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
}
