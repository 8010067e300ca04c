package history

import (
	"context"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/spencer-p/goldenhour/pkg/data"
)

func TestDBStore(t *testing.T) {
	dsn := os.Getenv("GOLDENHOUR_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("GOLDENHOUR_TEST_DATABASE_URL not set")
	}
	db, err := data.Open(dsn)
	require.NoError(t, err)

	ctx := context.Background()
	s := NewDBStore(db)
	visitor := uuid.NewString()

	want := Recent{place("a"), place("b"), place("c")}
	require.NoError(t, s.Save(ctx, visitor, want))
	got, err := s.Recent(ctx, visitor)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want,+got): %s", diff)
	}

	want = want.Add(place("c"))
	require.NoError(t, s.Save(ctx, visitor, want))
	got, err = s.Recent(ctx, visitor)
	require.NoError(t, err)
	if diff := cmp.Diff(labels(want), labels(got)); diff != "" {
		t.Errorf("(-want,+got): %s", diff)
	}

	require.NoError(t, s.Save(ctx, visitor, nil))
	got, err = s.Recent(ctx, visitor)
	require.NoError(t, err)
	require.Empty(t, got)
}
