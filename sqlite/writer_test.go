package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/clinicdir"
	"github.com/fwojciec/clinicdir/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClinicWriter(t *testing.T) {
	t.Parallel()

	t.Run("stores clinics under a new run in write order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		clinics := sqlite.NewClinicService(db)

		w, err := sqlite.NewClinicWriter(ctx, sqlite.NewRunService(db), clinics, "https://example.com")
		require.NoError(t, err)
		require.NotEmpty(t, w.Run.ID)

		for _, name := range []string{"alpha", "bravo"} {
			require.NoError(t, w.WriteClinic(ctx, &clinicdir.Clinic{
				Region: "North",
				Name:   name,
				URL:    "https://example.com/our-clinics/" + name + "/",
			}))
		}
		require.NoError(t, w.Close())

		stored, err := clinics.FindClinics(ctx, clinicdir.ClinicFilter{RunID: &w.Run.ID})
		require.NoError(t, err)
		require.Len(t, stored, 2)
		assert.Equal(t, "alpha", stored[0].Name)
		assert.Equal(t, 0, stored[0].Position)
		assert.Equal(t, "bravo", stored[1].Name)
		assert.Equal(t, 1, stored[1].Position)
	})

	t.Run("returns error when run cannot be created", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		_, err := sqlite.NewClinicWriter(context.Background(), sqlite.NewRunService(db), sqlite.NewClinicService(db), "")
		require.Error(t, err)
		assert.Equal(t, clinicdir.EINVALID, clinicdir.ErrorCode(err))
	})

	t.Run("leaves database open after close", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		w, err := sqlite.NewClinicWriter(ctx, sqlite.NewRunService(db), sqlite.NewClinicService(db), "https://example.com")
		require.NoError(t, err)
		require.NoError(t, w.Close())

		_, err = sqlite.NewRunService(db).FindRunByID(ctx, w.Run.ID)
		assert.NoError(t, err)
	})
}
