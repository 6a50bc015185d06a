package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/taskshare/taskshare/internal/editor"
	"github.com/taskshare/taskshare/internal/listflags"
	"github.com/taskshare/taskshare/todo"
)

// add
var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task",
	Long: `Add a task.

By default, opens $EDITOR to edit a TOML representation of the task
when running interactively. Use --no-edit to skip the editor, or
--edit to force opening the editor even when not interactive.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

var (
	addDescription string
	addPriority    string
	addDue         string
	addEdit        bool
	addNoEdit      bool
)

// list
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var (
	listStatus   string
	listPriority string
	listSearch   string
	listSort     string
	listDueFrom  string
	listDueTo    string
	listJSON     bool
)

// show
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var showJSON bool

// edit
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task",
	Long: `Edit a task.

Opens $EDITOR when running interactively and no field flags are given.
Use --no-edit to skip the editor, or --edit to force it.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editTitle       string
	editDescription string
	editPriority    string
	editDue         string
	editClearDue    bool
	editEdit        bool
	editNoEdit      bool
)

// toggle
var toggleCmd = &cobra.Command{
	Use:   "toggle <id>...",
	Short: "Toggle completion of one or more tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runToggle,
}

// delete
var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more tasks and their share links",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(addCmd, listCmd, showCmd, editCmd, toggleCmd, deleteCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Description (use '-' to read from stdin)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Priority (none, low, medium, high)")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().BoolVarP(&addEdit, "edit", "e", false, "Open $EDITOR (default if interactive)")
	addCmd.Flags().BoolVar(&addNoEdit, "no-edit", false, "Do not open $EDITOR")

	listCmd.Flags().StringVar(&listStatus, "status", "all", "Filter by status (all, active, completed)")
	listCmd.Flags().StringVar(&listPriority, "priority", "all", "Filter by priority (all, none, low, medium, high)")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Filter by text in title or description")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort by dateCreated, dueDate or priority")
	listCmd.Flags().StringVar(&listDueFrom, "due-from", "", "Only tasks due on or after this date")
	listCmd.Flags().StringVar(&listDueTo, "due-to", "", "Only tasks due on or before this date")
	listflags.AddJSONFlag(listCmd, &listJSON)

	listflags.AddJSONFlag(showCmd, &showJSON)

	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVar(&editDescription, "description", "", "New description (use '-' to read from stdin)")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "New priority (none, low, medium, high)")
	editCmd.Flags().StringVar(&editDue, "due", "", "New due date (YYYY-MM-DD)")
	editCmd.Flags().BoolVar(&editClearDue, "clear-due", false, "Remove the due date")
	editCmd.Flags().BoolVarP(&editEdit, "edit", "e", false, "Open $EDITOR (default if interactive)")
	editCmd.Flags().BoolVar(&editNoEdit, "no-edit", false, "Do not open $EDITOR")
	editCmd.MarkFlagsMutuallyExclusive("due", "clear-due")

	addDescriptionFlagAliases(addCmd, editCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	description, err := readDescription(addDescription, cmd.InOrStdin())
	if err != nil {
		return err
	}

	var draft todo.Draft
	if shouldUseEditor(addHasFieldFlags(cmd.Flags(), args), addEdit, addNoEdit, editor.IsInteractive()) {
		data := editor.DefaultCreateData()
		if len(args) > 0 {
			data.Title = args[0]
		}
		if addPriority != "" {
			data.Priority = addPriority
		}
		data.Due = addDue
		data.Description = description

		parsed, err := editor.EditTaskWithData(data)
		if err != nil {
			return err
		}
		draft = parsed.ToDraft()
	} else {
		if len(args) == 0 {
			return errors.New("title is required (use --edit to open editor)")
		}
		draft, err = draftFromFlags(args[0], description, addPriority, addDue)
		if err != nil {
			return err
		}
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	created, err := a.store.Create(commandContext(cmd), draft)
	if created.ID == "" {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s\n", a.highlighter()(created.ID), created.Title)
	return err
}

// addHasFieldFlags reports whether add was given anything that fills in the
// task, so the editor is only opened for a bare `add`.
func addHasFieldFlags(flags *pflag.FlagSet, args []string) bool {
	return len(args) > 0 ||
		flags.Changed("description") ||
		flags.Changed("priority") ||
		flags.Changed("due")
}

// editHasFieldFlags reports whether edit was given any field to change.
func editHasFieldFlags(flags *pflag.FlagSet) bool {
	return flags.Changed("title") ||
		flags.Changed("description") ||
		flags.Changed("priority") ||
		flags.Changed("due") ||
		flags.Changed("clear-due")
}

func draftFromFlags(title, description, priority, due string) (todo.Draft, error) {
	draft := todo.Draft{Title: title, Description: description}

	p, err := todo.ParsePriority(priority)
	if err != nil {
		return todo.Draft{}, err
	}
	draft.Priority = p

	if due != "" {
		d, err := todo.ParseDate(due)
		if err != nil {
			return todo.Draft{}, err
		}
		draft.DueDate = &d
	}
	return draft, nil
}

// shouldUseEditor decides whether to open $EDITOR: --edit forces it,
// --no-edit skips it, and otherwise it opens only when no field flags were
// given and stdin is a terminal.
func shouldUseEditor(hasFieldFlags bool, editFlag bool, noEditFlag bool, interactive bool) bool {
	if editFlag {
		return true
	}
	if noEditFlag || hasFieldFlags {
		return false
	}
	return interactive
}

func runList(cmd *cobra.Command, args []string) error {
	opts, err := listQueryOptions()
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	tasks := todo.Query(a.store.Tasks(), opts)
	if listJSON {
		return encodeJSON(cmd.OutOrStdout(), tasks)
	}
	printTaskTable(cmd.OutOrStdout(), tasks, a.highlighter(), time.Now())
	return nil
}

func listQueryOptions() (todo.QueryOptions, error) {
	status, err := todo.ParseStatusFilter(listStatus)
	if err != nil {
		return todo.QueryOptions{}, err
	}
	priority, err := todo.ParsePriorityFilter(listPriority)
	if err != nil {
		return todo.QueryOptions{}, err
	}
	sortBy, err := todo.ParseSortKey(listSort)
	if err != nil {
		return todo.QueryOptions{}, err
	}

	opts := todo.QueryOptions{
		Status:     status,
		Priority:   priority,
		SearchText: listSearch,
		SortBy:     sortBy,
	}

	if listDueFrom != "" || listDueTo != "" {
		var r todo.DateRange
		if listDueFrom != "" {
			if r.Start, err = todo.ParseDate(listDueFrom); err != nil {
				return todo.QueryOptions{}, fmt.Errorf("--due-from: %w", err)
			}
		}
		if listDueTo != "" {
			if r.End, err = todo.ParseDate(listDueTo); err != nil {
				return todo.QueryOptions{}, fmt.Errorf("--due-to: %w", err)
			}
		}
		opts.DueBetween = &r
	}
	return opts, nil
}

func runShow(cmd *cobra.Command, args []string) error {
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

	if showJSON {
		return encodeJSON(cmd.OutOrStdout(), task)
	}

	shareURL := ""
	if code, ok := a.store.ShareCode(id); ok {
		shareURL = a.shareURL(code)
	}
	printTaskDetail(cmd.OutOrStdout(), task, shareURL, a.highlighter(), time.Now())
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	hasFieldFlags := editHasFieldFlags(flags)

	description, err := readDescription(editDescription, cmd.InOrStdin())
	if err != nil {
		return err
	}

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

	if shouldUseEditor(hasFieldFlags, editEdit, editNoEdit, editor.IsInteractive()) {
		data := editor.DataFromTask(&task)
		if flags.Changed("title") {
			data.Title = editTitle
		}
		if flags.Changed("description") {
			data.Description = description
		}
		if flags.Changed("priority") {
			data.Priority = editPriority
		}
		if flags.Changed("due") {
			data.Due = editDue
		}
		if editClearDue {
			data.Due = ""
		}

		parsed, err := editor.EditTaskWithData(data)
		if err != nil {
			return err
		}
		task = parsed.ApplyTo(task)
	} else {
		if !hasFieldFlags {
			return errors.New("at least one field flag is required (use --edit to open editor)")
		}
		if task, err = applyEditFlags(cmd, task, description); err != nil {
			return err
		}
	}

	updated, err := a.store.Update(commandContext(cmd), task)
	if updated.ID == "" {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s\n", a.highlighter()(updated.ID), updated.Title)
	return err
}

func applyEditFlags(cmd *cobra.Command, task todo.Task, description string) (todo.Task, error) {
	flags := cmd.Flags()
	if flags.Changed("title") {
		task.Title = editTitle
	}
	if flags.Changed("description") {
		task.Description = description
	}
	if flags.Changed("priority") {
		p, err := todo.ParsePriority(editPriority)
		if err != nil {
			return todo.Task{}, err
		}
		task.Priority = p
	}
	if flags.Changed("due") {
		d, err := todo.ParseDate(editDue)
		if err != nil {
			return todo.Task{}, err
		}
		task.DueDate = &d
	}
	if editClearDue {
		task.DueDate = nil
	}
	return task, nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	highlight := a.highlighter()
	var persistErrs []error
	for _, arg := range args {
		id, err := a.resolveID(arg)
		if err != nil {
			return err
		}
		task, err := a.store.ToggleComplete(commandContext(cmd), id)
		if err != nil && !errors.Is(err, todo.ErrPersist) {
			return err
		}
		persistErrs = append(persistErrs, err)

		state := "Reopened"
		if task.Completed {
			state = "Completed"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", state, highlight(task.ID), task.Title)
	}
	return errors.Join(persistErrs...)
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	// Resolve every prefix before deleting so a typo deletes nothing.
	ids := make([]string, 0, len(args))
	for _, arg := range args {
		id, err := a.resolveID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	var persistErrs []error
	for _, id := range ids {
		task, err := a.store.Get(id)
		if err != nil {
			return err
		}
		if err := a.store.Delete(commandContext(cmd), id); err != nil {
			if !errors.Is(err, todo.ErrPersist) {
				return err
			}
			persistErrs = append(persistErrs, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: %s\n", task.ID, task.Title)
	}
	return errors.Join(persistErrs...)
}
