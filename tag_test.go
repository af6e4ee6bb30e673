package notetag

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ExtractTag(t *testing.T) {
	t.Run("should match a bare tag with no text and no params", func(t *testing.T) {
		a, ok := ExtractTag("<foo>", "foo")
		require.True(t, ok)
		assert.Equal(t, "", a.Text)
		assert.NotNil(t, a.Params)
		assert.Empty(t, a.Params)
	})

	t.Run("should split and trim params", func(t *testing.T) {
		a, ok := ExtractTag("<foo: a, b, c>", "foo")
		require.True(t, ok)
		assert.Equal(t, []string{"a", "b", "c"}, a.Params)
	})

	t.Run("should capture text between open and close", func(t *testing.T) {
		a, ok := ExtractTag("<foo>hello</foo>", "foo")
		require.True(t, ok)
		assert.Equal(t, "hello", a.Text)
		assert.Empty(t, a.Params)
	})

	t.Run("should report no match on name mismatch", func(t *testing.T) {
		_, ok := ExtractTag("<bar>", "foo")
		assert.False(t, ok)
	})

	t.Run("should match case-insensitively", func(t *testing.T) {
		_, ok := ExtractTag("<FOO>", "foo")
		assert.True(t, ok)

		a, ok := ExtractTag("<Foo: 1>body</FOO>", "fOo")
		require.True(t, ok)
		assert.Equal(t, "body", a.Text)
		assert.Equal(t, []string{"1"}, a.Params)
	})

	t.Run("should read params and text together", func(t *testing.T) {
		a, ok := ExtractTag("intro <skill: fire , 20,x>Burns the target.</skill> outro", "skill")
		require.True(t, ok)
		assert.Equal(t, []string{"fire", "20", "x"}, a.Params)
		assert.Equal(t, "Burns the target.", a.Text)
	})

	t.Run("should allow blanks around the colon and before the close", func(t *testing.T) {
		a, ok := ExtractTag("<foo \t: a>", "foo")
		require.True(t, ok)
		assert.Equal(t, []string{"a"}, a.Params)

		a, ok = ExtractTag("<foo  >x</foo>", "foo")
		require.True(t, ok)
		assert.Equal(t, "x", a.Text)
	})

	t.Run("should skip a longer name with the same prefix", func(t *testing.T) {
		a, ok := ExtractTag("<foobar: 1><foo: 2>", "foo")
		require.True(t, ok)
		assert.Equal(t, []string{"2"}, a.Params)
	})

	t.Run("should use only the first match", func(t *testing.T) {
		a, ok := ExtractTag("<foo: 1>one</foo><foo: 2>two</foo>", "foo")
		require.True(t, ok)
		assert.Equal(t, []string{"1"}, a.Params)
		assert.Equal(t, "one", a.Text)
	})

	t.Run("should leave text empty when the body holds another tag", func(t *testing.T) {
		a, ok := ExtractTag("<foo>a <b>c</b></foo>", "foo")
		require.True(t, ok)
		assert.Equal(t, "", a.Text)
	})

	t.Run("should leave text empty when the close tag is missing or different", func(t *testing.T) {
		a, ok := ExtractTag("<foo>dangling", "foo")
		require.True(t, ok)
		assert.Equal(t, "", a.Text)

		a, ok = ExtractTag("<foo>x</bar>", "foo")
		require.True(t, ok)
		assert.Equal(t, "", a.Text)
	})

	t.Run("should keep multi-line bodies", func(t *testing.T) {
		a, ok := ExtractTag("<desc>line one\nline two</desc>", "desc")
		require.True(t, ok)
		assert.Equal(t, "line one\nline two", a.Text)
	})

	t.Run("should not match an unterminated opening marker", func(t *testing.T) {
		_, ok := ExtractTag("<foo: a, b", "foo")
		assert.False(t, ok)
		_, ok = ExtractTag("<foo x>", "foo")
		assert.False(t, ok)
	})

	t.Run("should treat the name literally", func(t *testing.T) {
		_, ok := ExtractTag("<ab>", "a.")
		assert.False(t, ok)
		_, ok = ExtractTag("<a.>", "a.")
		assert.True(t, ok)
	})

	t.Run("should keep an empty colon list as no params", func(t *testing.T) {
		a, ok := ExtractTag("<foo:>", "foo")
		require.True(t, ok)
		assert.Empty(t, a.Params)
	})
}

func Test_ExtractTagWithDefaults(t *testing.T) {
	t.Run("should keep defaults when the match does not produce them", func(t *testing.T) {
		def := Annotation{Text: "none", Params: []string{"d"}}
		a, ok := ExtractTagWithDefaults("<foo>", "foo", def)
		require.True(t, ok)
		assert.Equal(t, "none", a.Text)
		assert.Equal(t, []string{"d"}, a.Params)
	})

	t.Run("should override defaults with matched values", func(t *testing.T) {
		def := Annotation{Text: "none", Params: []string{"d"}}
		a, ok := ExtractTagWithDefaults("<foo: x>body</foo>", "foo", def)
		require.True(t, ok)
		assert.Equal(t, "body", a.Text)
		assert.Equal(t, []string{"x"}, a.Params)
	})

	t.Run("should keep default text for an empty body", func(t *testing.T) {
		a, ok := ExtractTagWithDefaults("<foo></foo>", "foo", Annotation{Text: "none"})
		require.True(t, ok)
		assert.Equal(t, "none", a.Text)
	})

	t.Run("should not alias the defaults params", func(t *testing.T) {
		def := Annotation{Params: []string{"d"}}
		a, ok := ExtractTagWithDefaults("<foo>", "foo", def)
		require.True(t, ok)
		a.Params[0] = "changed"
		assert.Equal(t, "d", def.Params[0])
	})

	t.Run("should return nothing on no match", func(t *testing.T) {
		a, ok := ExtractTagWithDefaults("plain text", "foo", Annotation{Text: "none"})
		assert.False(t, ok)
		assert.Equal(t, Annotation{}, a)
	})
}

func Test_Annotation_Param(t *testing.T) {
	a := Annotation{Params: []string{"a", "b"}}
	if a.Param(1) != "b" {
		t.Fatalf("want b, got %q", a.Param(1))
	}
	if a.Param(2) != "" || a.Param(-1) != "" {
		t.Fatalf("out of range params should be empty")
	}
}

func Test_ExtractTag_Should_Stay_Linear_On_Unclosed_Openers(t *testing.T) {
	text := strings.Repeat("<foo:", 1<<20)

	start := time.Now()
	_, ok := ExtractTag(text, "foo")
	elapsed := time.Since(start)

	assert.False(t, ok)
	assert.Less(t, elapsed, 2*time.Second, "scan of %d bytes took %s", len(text), elapsed)

	a, ok := ExtractTag(text+"1>", "foo")
	require.True(t, ok)
	require.Len(t, a.Params, 1)
	assert.Equal(t, strings.Repeat("<foo:", 1<<20-1)+"1", a.Params[0])
}
