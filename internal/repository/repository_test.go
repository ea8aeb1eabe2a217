package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c5sim/coverage-sim-go/internal/database"
	"github.com/c5sim/coverage-sim-go/internal/models"
)

func strptr(s string) *string { return &s }

func TestCameraRepository_CreateAndList(t *testing.T) {
	conn, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer conn.Close()
	repo := NewCameraRepository(conn)

	cameras, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, cameras)

	created, err := repo.Create(models.CameraCreate{
		Latitude:  19.4326,
		Longitude: -99.1332,
		Type:      strptr("fija"),
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	_, err = repo.Create(models.CameraCreate{Latitude: 19.44, Longitude: -99.12})
	require.NoError(t, err)

	cameras, err = repo.List()
	require.NoError(t, err)
	require.Len(t, cameras, 2)
	assert.Equal(t, created.ID, cameras[0].ID)
	assert.InDelta(t, 19.4326, cameras[0].Latitude, 1e-9)
	require.NotNil(t, cameras[0].Type)
	assert.Equal(t, "fija", *cameras[0].Type)
	assert.Nil(t, cameras[1].Type)
}

func TestProposalRepository_SaveBatchAndList(t *testing.T) {
	conn, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer conn.Close()
	repo := NewProposalRepository(conn)

	saved, err := repo.SaveBatch([]models.ProposedCameraCreate{
		{Latitude: 19.40, Longitude: -99.15, Coverage: 85.5, Origin: strptr("manual")},
		{Latitude: 19.41, Longitude: -99.16, Coverage: 92.0},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Positive(t, saved[0].ID)
	assert.NotEqual(t, saved[0].ID, saved[1].ID)

	// origin defaults when absent
	require.NotNil(t, saved[1].Origin)
	assert.Equal(t, "simulacion", *saved[1].Origin)
	assert.Equal(t, "manual", *saved[0].Origin)

	listed, err := repo.List()
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.InDelta(t, 85.5, listed[0].Coverage, 1e-9)
	assert.InDelta(t, 92.0, listed[1].Coverage, 1e-9)
}

func TestProposalRepository_SaveBatchEmpty(t *testing.T) {
	conn, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer conn.Close()
	repo := NewProposalRepository(conn)

	saved, err := repo.SaveBatch(nil)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestUserRepository(t *testing.T) {
	conn, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer conn.Close()
	repo := NewUserRepository(conn)

	missing, err := repo.GetByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	u := &models.User{
		Name:          "Ana",
		FirstSurname:  "Lopez",
		SecondSurname: "Garcia",
		Email:         "ana@example.com",
		PasswordHash:  "$2a$10$fakehash",
	}
	require.NoError(t, repo.Create(u))
	assert.Positive(t, u.ID)

	got, err := repo.GetByEmail("ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "$2a$10$fakehash", got.PasswordHash)

	// unique email constraint
	dup := &models.User{
		Name: "Otra", FirstSurname: "X", SecondSurname: "Y",
		Email: "ana@example.com", PasswordHash: "h",
	}
	assert.Error(t, repo.Create(dup))
}
