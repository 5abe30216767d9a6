package masterdata_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"production/internal/adapters/out/masterdata"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := masterdata.NewClient("")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestClient_GetJob(t *testing.T) {
	jobID := kernel.NewUUID()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/jobs/"+jobID.String(), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":%q,"title":"Office facade","customerName":"Borealis AS"}`, jobID.String())
	}))
	defer server.Close()

	client, err := masterdata.NewClient(server.URL)
	require.NoError(t, err)

	job, err := client.GetJob(context.Background(), jobID)
	require.NoError(t, err)
	assert.True(t, job.ID.IsEqual(jobID))
	assert.Equal(t, "Office facade", job.Title)
	assert.Equal(t, "Borealis AS", job.CustomerName)
}

func TestClient_GetSupplier(t *testing.T) {
	supplierID := kernel.NewUUID()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/suppliers/"+supplierID.String(), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":%q,"name":"Nordglass"}`, supplierID.String())
	}))
	defer server.Close()

	client, err := masterdata.NewClient(server.URL)
	require.NoError(t, err)

	supplier, err := client.GetSupplier(context.Background(), supplierID)
	require.NoError(t, err)
	assert.True(t, supplier.ID.IsEqual(supplierID))
	assert.Equal(t, "Nordglass", supplier.Name)
}

func TestClient_GetRole(t *testing.T) {
	roleID := kernel.NewUUID()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":%q,"name":"Glazing","estimatedDays":14}`, roleID.String())
	}))
	defer server.Close()

	client, err := masterdata.NewClient(server.URL)
	require.NoError(t, err)

	role, err := client.GetRole(context.Background(), roleID)
	require.NoError(t, err)
	assert.Equal(t, "Glazing", role.Name)
	assert.Equal(t, 14, role.EstimatedDays)
}

func TestClient_NotFoundMapsToObjectNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := masterdata.NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.GetJob(context.Background(), kernel.NewUUID())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestClient_ServerErrorIsNotObjectNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := masterdata.NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.GetSupplier(context.Background(), kernel.NewUUID())
	require.Error(t, err)
	assert.False(t, errors.Is(err, errs.ErrObjectNotFound))
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_RejectsZeroID(t *testing.T) {
	client, err := masterdata.NewClient("http://masterdata.local")
	require.NoError(t, err)

	_, err = client.GetRole(context.Background(), kernel.UUID{})
	require.Error(t, err)
}
