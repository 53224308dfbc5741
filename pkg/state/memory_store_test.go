package state_test

import (
	"context"
	"testing"

	cascade "github.com/goliatone/go-cascade"
	"github.com/goliatone/go-cascade/pkg/state"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefIdentifier(t *testing.T) {
	cases := []struct {
		name    string
		ref     state.Ref
		want    string
		wantErr bool
	}{
		{name: "shared", ref: state.Ref{Domain: "miners", Name: "hot"}, want: "shared/miners/hot"},
		{name: "owned", ref: state.Ref{Domain: "miners", Owner: "u42", Name: "hot"}, want: "owner/u42/miners/hot"},
		{name: "missing domain", ref: state.Ref{Name: "hot"}, wantErr: true},
		{name: "missing name", ref: state.Ref{Domain: "miners"}, wantErr: true},
		{name: "separator in name", ref: state.Ref{Domain: "miners", Name: "a/b"}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.ref.Identifier()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMemoryStoreMintsMeta(t *testing.T) {
	ctx := context.Background()
	store := state.NewMemoryStore[cascade.FilterRecord]()
	ref := state.Ref{Domain: "miners", Owner: "u42", Name: "hot"}

	_, _, ok, err := store.Load(ctx, ref)
	require.NoError(t, err)
	assert.False(t, ok)

	record := cascade.FilterRecord{"type": cascade.One(cascade.String("S19XP"))}
	first, err := store.Save(ctx, ref, record, state.Meta{Extra: map[string]string{"by": "u42"}})
	require.NoError(t, err)
	_, err = uuid.Parse(first.SnapshotID)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ETag)
	assert.False(t, first.UpdatedAt.IsZero())

	second, err := store.Save(ctx, ref, record, state.Meta{SnapshotID: "snap-2"})
	require.NoError(t, err)
	assert.Equal(t, "snap-2", second.SnapshotID)
	assert.NotEqual(t, first.ETag, second.ETag)

	loaded, meta, ok, err := store.Load(ctx, ref)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, loaded.Equivalent(record))
	assert.Equal(t, second.ETag, meta.ETag)

	assert.Equal(t, []string{"owner/u42/miners/hot"}, store.Keys("owner/u42/"))
	assert.Empty(t, store.Keys("shared/"))
}

func TestMemoryStoreClonesExtra(t *testing.T) {
	ctx := context.Background()
	store := state.NewMemoryStore[cascade.FilterRecord]()
	ref := state.Ref{Domain: "miners", Name: "shared"}
	extra := map[string]string{"k": "v"}

	_, err := store.Save(ctx, ref, cascade.FilterRecord{}, state.Meta{Extra: extra})
	require.NoError(t, err)
	extra["k"] = "changed"

	_, meta, _, err := store.Load(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "v", meta.Extra["k"])
}
