package shell

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/DanielFadlon/simple-store/internal/domain"
	"github.com/DanielFadlon/simple-store/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() *store.Store {
	return store.New([]domain.Item{
		{Name: "Milk", Price: 5, Hashtags: []string{"dairy"}, Description: "1L"},
		{Name: "Bread", Price: 8, Hashtags: []string{"bakery"}, Description: "rye"},
		{Name: "Butter", Price: 12, Hashtags: []string{"dairy"}, Description: "salted"},
	})
}

func run(t *testing.T, st store.Catalog, input string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), strings.NewReader(input), &out, st))
	return out.String()
}

func TestRun_AddAndCheckout(t *testing.T) {
	st := newStore()

	out := run(t, st, "add Milk\nadd Bread\ncheckout\nexit\n")

	assert.Contains(t, out, "added to cart")
	assert.Contains(t, out, "total: 13")
	assert.Equal(t, 13, st.Checkout())
}

func TestRun_Errors(t *testing.T) {
	st := newStore()

	out := run(t, st, "add B\nadd Caviar\nadd Milk\nadd Milk\nremove Bread\n")

	assert.Contains(t, out, `"B" matches more than one item`)
	assert.Contains(t, out, `no item matches "Caviar"`)
	assert.Contains(t, out, "already in the cart")
	assert.Contains(t, out, `no item matches "Bread"`)
	assert.Len(t, st.CartItems(), 1)
}

func TestRun_Search(t *testing.T) {
	st := newStore()

	out := run(t, st, "hashtag dairy\n")
	assert.Contains(t, out, "Milk")
	assert.Contains(t, out, "Butter")
	assert.NotContains(t, out, "Bread")

	out = run(t, st, "name Cav\nhashtag\n")
	assert.Contains(t, out, "(no items)")
	assert.Contains(t, out, "usage: hashtag <tag>")
}

func TestRun_CartAndRemove(t *testing.T) {
	st := newStore()

	out := run(t, st, "add Butter\ncart\nremove Butt\ncart\n")

	assert.Contains(t, out, "subtotal: 12")
	assert.Contains(t, out, "removed from cart")
	assert.Contains(t, out, "subtotal: 0")
	assert.Empty(t, st.CartItems())
}

func TestRun_UnknownCommand(t *testing.T) {
	out := run(t, newStore(), "buy milk\nhelp\n")

	assert.Contains(t, out, `unknown command "buy"`)
	assert.Contains(t, out, "commands:")
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := Run(ctx, strings.NewReader("add Milk\n"), &out, newStore())
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestRun_QuotedArgument(t *testing.T) {
	st := store.New([]domain.Item{
		{Name: "Rye Bread", Price: 9},
		{Name: "Breadsticks", Price: 4},
	})

	out := run(t, st, "add Bread\nadd \" Bread\"\nadd \"Bread\ncart\n")

	assert.Contains(t, out, `"Bread" matches more than one item`)
	assert.Contains(t, out, "added to cart")
	assert.Contains(t, out, "unterminated quote in argument")
	require.Len(t, st.CartItems(), 1)
	assert.Equal(t, "Rye Bread", st.CartItems()[0].Name)
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		line    string
		command string
		arg     string
	}{
		{"  ADD Milk  ", "add", "Milk"},
		{`remove " Bread"`, "remove", " Bread"},
		{"cart", "cart", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		command, arg, err := splitCommand(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.command, command, tt.line)
		assert.Equal(t, tt.arg, arg, tt.line)
	}
}

func TestRun_CancelWhileWaitingForInput(t *testing.T) {
	in, w := io.Pipe()
	t.Cleanup(func() { w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, in, io.Discard, newStore())
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("shell did not stop after cancel")
	}
}
