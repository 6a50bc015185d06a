package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskshare/taskshare/internal/listflags"
	"github.com/taskshare/taskshare/internal/ui"
	"github.com/taskshare/taskshare/sharelink"
	"github.com/taskshare/taskshare/todo"
)

// share
var shareCmd = &cobra.Command{
	Use:   "share <id>",
	Short: "Create a share link for a task",
	Long: `Create a share link for a task.

Sharing a task that is already shared replaces its link; the old link
stops working.`,
	Args: cobra.ExactArgs(1),
	RunE: runShare,
}

var (
	shareEmail string
	shareJSON  bool
)

// unshare
var unshareCmd = &cobra.Command{
	Use:   "unshare <id>",
	Short: "Revoke the share link of a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnshare,
}

// shared
var sharedCmd = &cobra.Command{
	Use:   "shared",
	Short: "List shared tasks",
	Args:  cobra.NoArgs,
	RunE:  runShared,
}

var sharedJSON bool

// resolve
var resolveCmd = &cobra.Command{
	Use:   "resolve <code-or-url>",
	Short: "Show the task behind a share link",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

var resolveJSON bool

func init() {
	rootCmd.AddCommand(shareCmd, unshareCmd, sharedCmd, resolveCmd)

	shareCmd.Flags().StringVar(&shareEmail, "email", "", "Print a mailto link addressed to this email")
	listflags.AddJSONFlag(shareCmd, &shareJSON)
	listflags.AddJSONFlag(sharedCmd, &sharedJSON)
	listflags.AddJSONFlag(resolveCmd, &resolveJSON)
}

// shareURL builds the public link for a share code.
func (a *app) shareURL(code string) string {
	return sharelink.URL(a.cfg.Share.BaseURL, code)
}

type shareOutput struct {
	ID     string `json:"id"`
	Code   string `json:"shareCode"`
	URL    string `json:"url"`
	Mailto string `json:"mailto,omitempty"`
}

func runShare(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := a.resolveID(args[0])
	if err != nil {
		return err
	}
	task, err := a.store.Get(id)
	if err != nil {
		return err
	}

	code, err := a.store.Share(commandContext(cmd), id)
	if code == "" {
		return err
	}
	persistErr := err

	out := shareOutput{ID: id, Code: code, URL: a.shareURL(code)}
	if shareEmail != "" {
		out.Mailto, err = sharelink.Mailto(task.Title, out.URL, shareEmail)
		if err != nil {
			return errors.Join(err, persistErr)
		}
	}

	w := cmd.OutOrStdout()
	if shareJSON {
		if err := encodeJSON(w, out); err != nil {
			return err
		}
		return persistErr
	}

	fmt.Fprintln(w, out.URL)
	if out.Mailto != "" {
		fmt.Fprintln(w, out.Mailto)
	}
	return persistErr
}

func runUnshare(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := a.resolveID(args[0])
	if err != nil {
		return err
	}
	if !a.store.IsShared(id) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is not shared\n", a.highlighter()(id))
		return nil
	}

	err = a.store.Revoke(commandContext(cmd), id)
	fmt.Fprintf(cmd.OutOrStdout(), "Unshared %s\n", a.highlighter()(id))
	return err
}

func runShared(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	shared := a.store.ListShared()
	w := cmd.OutOrStdout()
	if sharedJSON {
		return encodeJSON(w, shared)
	}
	if len(shared) == 0 {
		fmt.Fprintln(w, "No shared tasks.")
		return nil
	}

	highlight := a.highlighter()
	table := ui.NewTable([]string{"ID", "CODE", "SHARED", "TITLE", "URL"}, len(shared))
	for _, item := range shared {
		table.AddRow(
			highlight(item.ID),
			item.ShareCode,
			ui.FormatTimeAgo(item.SharedAt, time.Now()),
			ui.TruncateCell(item.Title),
			a.shareURL(item.ShareCode),
		)
	}
	fmt.Fprint(w, table.String())
	return nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	code, err := sharelink.CodeFromInput(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	task, err := a.store.Resolve(code)
	if err != nil {
		if errors.Is(err, todo.ErrDanglingShare) {
			a.logger.Warn(commandContext(cmd), "share code references a deleted task", "code", code)
		}
		return err
	}

	if resolveJSON {
		return encodeJSON(cmd.OutOrStdout(), task)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderSharedCard(task, cardWidth))
	return nil
}
