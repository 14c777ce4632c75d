// Package shell is a line-oriented console over a single shopping session.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/DanielFadlon/simple-store/internal/domain"
	"github.com/DanielFadlon/simple-store/internal/store"
	"github.com/pkg/errors"
)

const prompt = "> "

const helpText = `commands:
  list               show every catalog item
  name <fragment>    search items by name
  hashtag <tag>      search items by hashtag
  add <fragment>     add the matching item to the cart
  remove <fragment>  remove the matching item from the cart
                     quote a fragment to keep spaces: add " Bread"
  cart               show the cart
  checkout           show the cart total
  help               show this message
  exit               leave the shell`

// Run reads commands from in until exit, EOF or ctx is done.
// Store errors are reported to out and do not stop the loop.
func Run(ctx context.Context, in io.Reader, out io.Writer, st store.Catalog) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go readLines(ctx, in, lines, scanErr)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(out, prompt)
		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(out)
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(<-scanErr, "read command")
		}

		command, arg, err := splitCommand(line)
		if err != nil {
			fmt.Fprintln(out, "unterminated quote in argument")
			continue
		}
		switch command {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "help":
			fmt.Fprintln(out, helpText)
		case "list":
			printItems(out, st.Items())
		case "name":
			printItems(out, st.SearchByName(arg))
		case "hashtag":
			if arg == "" {
				fmt.Fprintln(out, "usage: hashtag <tag>")
				continue
			}
			printItems(out, st.SearchByHashtag(arg))
		case "add":
			if err := st.AddItem(arg); err != nil {
				fmt.Fprintln(out, describe(err, arg))
				continue
			}
			fmt.Fprintln(out, "added to cart")
		case "remove":
			if err := st.RemoveItem(arg); err != nil {
				fmt.Fprintln(out, describe(err, arg))
				continue
			}
			fmt.Fprintln(out, "removed from cart")
		case "cart":
			items := st.CartItems()
			printItems(out, items)
			fmt.Fprintf(out, "subtotal: %d\n", st.Checkout())
		case "checkout":
			fmt.Fprintf(out, "total: %d\n", st.Checkout())
		default:
			fmt.Fprintf(out, "unknown command %q, type help\n", command)
		}
	}
}

// readLines feeds lines until EOF or ctx is done. A read blocked on in
// outlives ctx; it ends with the next line or when in is closed.
func readLines(ctx context.Context, in io.Reader, lines chan<- string, scanErr chan<- error) {
	defer close(lines)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
	scanErr <- scanner.Err()
}

// splitCommand returns the lower-cased command word and its argument.
// A double-quoted argument is taken verbatim, so `add " Bread"` keeps
// the leading space.
func splitCommand(line string) (string, string, error) {
	command, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, `"`) {
		unquoted, err := strconv.Unquote(arg)
		if err != nil {
			return "", "", errors.Wrapf(err, "argument %s", arg)
		}
		arg = unquoted
	}
	return strings.ToLower(command), arg, nil
}

func printItems(out io.Writer, items []domain.Item) {
	if len(items) == 0 {
		fmt.Fprintln(out, "(no items)")
		return
	}
	for _, item := range items {
		fmt.Fprintf(out, "%-24s %6d  %s", item.Name, item.Price, item.Description)
		if len(item.Hashtags) > 0 {
			fmt.Fprintf(out, "  #%s", strings.Join(item.Hashtags, " #"))
		}
		fmt.Fprintln(out)
	}
}

func describe(err error, fragment string) string {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return fmt.Sprintf("no item matches %q", fragment)
	case errors.Is(err, domain.ErrAmbiguousMatch):
		return fmt.Sprintf("%q matches more than one item, be more specific", fragment)
	case errors.Is(err, domain.ErrDuplicateItem):
		return "that item is already in the cart"
	default:
		return fmt.Sprintf("error: %v", err)
	}
}
