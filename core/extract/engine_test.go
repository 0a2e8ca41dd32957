package extract

import (
	"context"
	"errors"
	"testing"

	"data-extractor/core/fault"
	"data-extractor/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUnit struct {
	fields []string
	values map[string]string
}

func (u fakeUnit) Fields() []string { return u.fields }

func (u fakeUnit) Value(field string) string { return u.values[field] }

type fakeCursor struct {
	units   []Unit
	failAt  int
	failErr error
	closed  bool
	headers []string
}

func (c *fakeCursor) Next(_ context.Context) (Unit, error) {
	if c.failErr != nil && c.failAt == 0 {
		return nil, c.failErr
	}
	c.failAt--
	if len(c.units) == 0 {
		return nil, nil
	}
	u := c.units[0]
	c.units = c.units[1:]
	return u, nil
}

func (c *fakeCursor) Close(_ context.Context) error {
	c.closed = true
	return nil
}

type fakeHeaderCursor struct {
	*fakeCursor
}

func (c fakeHeaderCursor) Headers() []string { return c.headers }

type fakeSource struct {
	mode    HeaderMode
	cursor  Cursor
	openErr error
	fixed   []string
}

func (s *fakeSource) Name() string { return "fake" }

func (s *fakeSource) Mode() HeaderMode { return s.mode }

func (s *fakeSource) Open(_ context.Context) (Cursor, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	return s.cursor, nil
}

type fixedSource struct {
	fakeSource
}

func (s *fixedSource) Headers() []string { return s.fixed }

func doc(pairs ...string) Unit {
	u := fakeUnit{values: map[string]string{}}
	for i := 0; i+1 < len(pairs); i += 2 {
		u.fields = append(u.fields, pairs[i])
		u.values[pairs[i]] = pairs[i+1]
	}
	return u
}

func cursorOf(units ...Unit) *fakeCursor {
	return &fakeCursor{units: units, failAt: -1}
}

func TestRun_DeclaredOrder(t *testing.T) {
	cur := cursorOf(doc("id", "1", "name", "Alice"), doc("id", "2", "name", "Bob"))
	src := &fakeSource{mode: Declared, cursor: cur}

	res, err := Run(context.Background(), src, []string{"name", "id"}, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, res.Table.Headers)
	assert.Equal(t, [][]string{{"1", "Alice"}, {"2", "Bob"}}, res.Table.Rows)
	assert.Equal(t, "fake", res.Source)
	assert.NotEmpty(t, res.RunID)
	assert.True(t, cur.closed)
}

func TestRun_SortedHeterogeneousUnits(t *testing.T) {
	cur := cursorOf(doc("b", "2", "a", "1"), doc("a", "3", "c", "9"))
	src := &fakeSource{mode: Sorted, cursor: cur}

	res, err := Run(context.Background(), src, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, res.Table.Headers)
	assert.Equal(t, [][]string{{"1", "2"}, {"3", ""}}, res.Table.Rows)
}

func TestRun_SortedDoesNotMutateUnitFields(t *testing.T) {
	first := doc("b", "2", "a", "1")
	src := &fakeSource{mode: Sorted, cursor: cursorOf(first)}

	_, err := Run(context.Background(), src, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, first.Fields())
}

func TestRun_ZeroUnits(t *testing.T) {
	t.Run("declared yields empty table and skips reconciliation", func(t *testing.T) {
		src := &fakeSource{mode: Declared, cursor: cursorOf()}

		res, err := Run(context.Background(), src, []string{"anything"}, nil)

		require.NoError(t, err)
		assert.Empty(t, res.Table.Headers)
		assert.Empty(t, res.Table.Rows)
	})

	t.Run("fixed keeps its headers", func(t *testing.T) {
		src := &fixedSource{fakeSource{mode: Fixed, cursor: cursorOf(), fixed: []string{"Key", "Value"}}}

		res, err := Run(context.Background(), src, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"Key", "Value"}, res.Table.Headers)
		assert.Empty(t, res.Table.Rows)
	})

	t.Run("header cursor still reconciles", func(t *testing.T) {
		cur := fakeHeaderCursor{&fakeCursor{failAt: -1, headers: []string{"x", "y"}}}
		src := &fakeSource{mode: Declared, cursor: cur}

		_, err := Run(context.Background(), src, []string{"x"}, nil)

		require.Error(t, err)
		assert.True(t, fault.Is(err, fault.KindSchemaMismatch))
	})

	t.Run("header cursor without headers yields empty table", func(t *testing.T) {
		cur := fakeHeaderCursor{&fakeCursor{failAt: -1, headers: []string{}}}
		src := &fakeSource{mode: Declared, cursor: cur}

		res, err := Run(context.Background(), src, []string{"x"}, nil)

		require.NoError(t, err)
		assert.Empty(t, res.Table.Headers)
		assert.Empty(t, res.Table.Rows)
	})
}

func TestRun_HeaderCursorUsesDeclaredHeaders(t *testing.T) {
	cur := fakeHeaderCursor{cursorOf(doc("x", "1"), doc("x", "2", "y", "3"))}
	cur.headers = []string{"x", "y"}
	src := &fakeSource{mode: Declared, cursor: cur}

	res, err := Run(context.Background(), src, []string{"y", "x"}, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, res.Table.Headers)
	assert.Equal(t, [][]string{{"1", ""}, {"2", "3"}}, res.Table.Rows)
}

func TestRun_SchemaMismatch(t *testing.T) {
	src := &fakeSource{mode: Declared, cursor: cursorOf(doc("id", "1", "name", "Alice"))}

	res, err := Run(context.Background(), src, []string{"id", "email"}, nil)

	require.Error(t, err)
	assert.Nil(t, res)

	var fe *fault.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fault.KindSchemaMismatch, fe.Kind)
	assert.Equal(t, fault.StageDiscovering, fe.Stage)
	assert.Equal(t, "fake", fe.Backend)

	var mm *reconcile.MismatchError
	require.ErrorAs(t, err, &mm)
	assert.Equal(t, []string{"id", "email"}, mm.Expected)
	assert.Equal(t, []string{"id", "name"}, mm.Discovered)
}

func TestRun_FixedIgnoresExpectedWithWarning(t *testing.T) {
	src := &fixedSource{fakeSource{
		mode:   Fixed,
		cursor: cursorOf(doc("Key", "k1", "Value", "v1")),
		fixed:  []string{"Key", "Value"},
	}}

	res, err := Run(context.Background(), src, []string{"a", "b", "c"}, nil)

	require.NoError(t, err)
	assert.Len(t, res.Warnings, 1)
	assert.Equal(t, [][]string{{"k1", "v1"}}, res.Table.Rows)
}

func TestRun_FixedWithoutHeadersIsConfigurationError(t *testing.T) {
	src := &fakeSource{mode: Fixed, cursor: cursorOf()}

	_, err := Run(context.Background(), src, nil, nil)

	assert.True(t, fault.Is(err, fault.KindConfiguration))
}

func TestRun_ConnectionFailure(t *testing.T) {
	src := &fakeSource{mode: Declared, openErr: errors.New("dial tcp: refused")}

	res, err := Run(context.Background(), src, nil, nil)

	assert.Nil(t, res)
	var fe *fault.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fault.KindConnection, fe.Kind)
	assert.Equal(t, fault.StageConnecting, fe.Stage)
	assert.Contains(t, err.Error(), "dial tcp: refused")
}

func TestRun_ClassifiedErrorsPassThrough(t *testing.T) {
	src := &fakeSource{mode: Declared, openErr: fault.Configuration("fake", "missing index")}

	_, err := Run(context.Background(), src, nil, nil)

	assert.True(t, fault.Is(err, fault.KindConfiguration))
}

func TestRun_FailureMidStreamDiscardsRows(t *testing.T) {
	cur := cursorOf(doc("id", "1"), doc("id", "2"), doc("id", "3"))
	cur.failAt = 2
	cur.failErr = errors.New("connection reset")
	src := &fakeSource{mode: Declared, cursor: cur}

	res, err := Run(context.Background(), src, nil, nil)

	assert.Nil(t, res)
	var fe *fault.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fault.KindSourceProtocol, fe.Kind)
	assert.Equal(t, fault.StageStreaming, fe.Stage)
	assert.True(t, cur.closed)
}

func TestRun_FailureOnFirstUnit(t *testing.T) {
	cur := cursorOf()
	cur.failAt = 0
	cur.failErr = errors.New("bad envelope")
	src := &fakeSource{mode: Sorted, cursor: cur}

	_, err := Run(context.Background(), src, nil, nil)

	var fe *fault.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fault.StageDiscovering, fe.Stage)
}

func TestRun_RowsAlignedToHeaders(t *testing.T) {
	cur := cursorOf(doc("a", "1", "b", "2"), doc("b", "x"), doc("z", "q"), doc("a", "1", "b", "2", "c", "3"))
	src := &fakeSource{mode: Sorted, cursor: cur}

	res, err := Run(context.Background(), src, nil, nil)

	require.NoError(t, err)
	require.NoError(t, res.Table.Validate())
	assert.Equal(t, 4, res.Table.Len())
}

func TestHeaderMode_String(t *testing.T) {
	assert.Equal(t, "declared", Declared.String())
	assert.Equal(t, "sorted", Sorted.String())
	assert.Equal(t, "fixed", Fixed.String())
	assert.Equal(t, "unknown", HeaderMode(42).String())
}
