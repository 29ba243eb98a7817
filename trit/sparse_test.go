package trit_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ternholo/engram/trit"
)

func TestNewSparse_RejectsOverlap(t *testing.T) {
	_, err := trit.NewSparse(10, []int32{1, 2}, []int32{2, 3})
	require.ErrorIs(t, err, trit.ErrInvalidSparseForm)
}

func TestNewSparse_DedupsAndSorts(t *testing.T) {
	v, err := trit.NewSparse(10, []int32{3, 1, 1, 2}, nil)
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3}, v.Pos)
}

func TestSparseDenseRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	v := randomSparse(t, rng, 2000, 80)

	dense := v.ToDense()
	back := dense.ToSparse()

	require.Equal(t, v.Pos, back.Pos)
	require.Equal(t, v.Neg, back.Neg)
}

func TestSparseDense_OpsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(43))
	a := randomSparse(t, rng, 2000, 80)
	b := randomSparse(t, rng, 2000, 80)

	bindSparse, err := trit.Bind(a, b)
	require.NoError(t, err)
	bindDense, err := trit.Bind(a.ToDense(), b.ToDense())
	require.NoError(t, err)
	require.Equal(t, bindSparse.ToSparse(), bindDense.ToSparse())

	bundleSparse, err := trit.Bundle(a, b)
	require.NoError(t, err)
	bundleDense, err := trit.Bundle(a.ToDense(), b.ToDense())
	require.NoError(t, err)
	require.Equal(t, bundleSparse.ToSparse(), bundleDense.ToSparse())

	dotSparse, err := trit.Dot(a, b)
	require.NoError(t, err)
	dotDense, err := trit.Dot(a.ToDense(), b.ToDense())
	require.NoError(t, err)
	require.Equal(t, dotSparse, dotDense)
}

func TestBindSparse_MatchesDenseBind(t *testing.T) {
	rng := rand.New(rand.NewSource(44))
	a := randomSparse(t, rng, 1500, 60)
	b := randomSparse(t, rng, 1500, 60)

	viaSparse, err := trit.BindSparse(a, b)
	require.NoError(t, err)

	viaDense, err := trit.Bind(a, b)
	require.NoError(t, err)

	require.Equal(t, viaDense.ToSparse(), viaSparse)
}

func TestValidate(t *testing.T) {
	good, err := trit.NewSparse(10, []int32{1, 2}, []int32{5})
	require.NoError(t, err)
	require.NoError(t, good.Validate())

	bad := trit.SparseVector{Dim: 10, Pos: []int32{2, 1}}
	require.ErrorIs(t, bad.Validate(), trit.ErrInvalidSparseForm)
}
