package expr

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"integer", "1 + 2", "3"},
		{"integral division", "10 / 2", "5"},
		{"fraction", "7 / 2", "3.5"},
		{"negative", "-4 * 2", "-8"},
		{"string", `"abc"`, "abc"},
		{"concat", `"a" .. "b" .. 1`, "ab1"},
		{"string library", `string.upper("hi")`, "HI"},
		{"math library", "math.max(3, 9, 4)", "9"},
		{"boolean", "1 < 2", "true"},
		{"nil", "nil", ""},
		{"first of many", "1, 2", "1"},
		{"repeat", `string.rep("-", 3)`, "---"},
	}
	e := New()
	defer e.Close()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Eval(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	e := New()
	defer e.Close()

	_, err := e.Eval("   ")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = e.Eval("1 +")
	var ee *Error
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "1 +", ee.Source)
	assert.True(t, strings.HasPrefix(err.Error(), "E15"))

	_, err = e.Eval(`error("boom")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	_, err = e.Eval("{}")
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	// The state survives errors.
	got, err := e.Eval("2 * 21")
	require.NoError(t, err)
	assert.Equal(t, "42", got)
}

func TestSandbox(t *testing.T) {
	e := New()
	defer e.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "io", "os"} {
		t.Run(name, func(t *testing.T) {
			got, err := e.Eval("type(" + name + ")")
			require.NoError(t, err)
			assert.Equal(t, "nil", got)
		})
	}
}

func TestExecPrint(t *testing.T) {
	e := New()
	defer e.Close()

	out, err := e.Exec(`x = 5 print("x is", x) print(x * 2)`)
	require.NoError(t, err)
	assert.Equal(t, "x is\t5\n10", out)

	// Globals persist between calls.
	got, err := e.Eval("x + 1")
	require.NoError(t, err)
	assert.Equal(t, "6", got)

	out, err = e.Exec("y = 1")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDefine(t *testing.T) {
	e := New()
	defer e.Close()

	require.NoError(t, e.Define("join", func(args []string) (string, error) {
		return strings.Join(args, "+"), nil
	}))
	require.NoError(t, e.Define("fail", func([]string) (string, error) {
		return "", errors.New("host failure")
	}))

	got, err := e.Eval(`editor.join("a", 2, true)`)
	require.NoError(t, err)
	assert.Equal(t, "a+2+true", got)

	_, err = e.Eval("editor.fail()")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host failure")

	require.NoError(t, e.SetVar("filename", "main.go"))
	got, err = e.Eval("filename")
	require.NoError(t, err)
	assert.Equal(t, "main.go", got)
}

func TestTimeout(t *testing.T) {
	e := New(WithTimeout(50 * time.Millisecond))
	defer e.Close()

	_, err := e.Exec("while true do end")
	assert.ErrorIs(t, err, ErrTimeout)

	got, err := e.Eval("1")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}

func TestClose(t *testing.T) {
	e := New()
	e.Close()
	e.Close()

	_, err := e.Eval("1")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = e.Exec("x = 1")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, e.Define("f", nil), ErrClosed)
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-3, "-3"},
		{0.25, "0.25"},
		{1e20, "1e+20"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatNumber(tt.in))
	}
}
