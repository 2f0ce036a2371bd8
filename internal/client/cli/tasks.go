package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskboard/taskboard-be/internal/client/api"
)

var errMissingID = errors.New("task id required")

// ListTasks prints the caller's tasks. Arguments of the form status=X or
// priority=X become exact filters; any other argument is search text.
func (a *App) ListTasks(args []string) error {
	var filter api.TaskFilter
	var search []string
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "status="):
			filter.Status = strings.TrimPrefix(arg, "status=")
		case strings.HasPrefix(arg, "priority="):
			filter.Priority = strings.TrimPrefix(arg, "priority=")
		default:
			search = append(search, arg)
		}
	}
	filter.Search = strings.Join(search, " ")

	tasks, err := a.api.ListTasks(filter)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks")
		return nil
	}

	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = " due " + t.DueDate.Format("2006-01-02")
		}
		fmt.Fprintf(a.out, "%s  [%s/%s]%s  %s\n", t.ID, t.Status, t.Priority, due, t.Title)
		if t.Description != "" {
			fmt.Fprintf(a.out, "    %s\n", t.Description)
		}
	}
	return nil
}

// AddTask prompts for the task fields and creates it. Blank status and
// priority fall back to the server defaults (todo/medium).
func (a *App) AddTask() error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}
	status, err := getSimpleText(a.reader, "Status (todo/in-progress/done, blank=todo)", a.out)
	if err != nil {
		return err
	}
	priority, err := getSimpleText(a.reader, "Priority (low/medium/high, blank=medium)", a.out)
	if err != nil {
		return err
	}
	dueDate, err := getSimpleText(a.reader, "Due date (YYYY-MM-DD, optional)", a.out)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{"title": title}
	if description != "" {
		fields["description"] = description
	}
	if status != "" {
		fields["status"] = status
	}
	if priority != "" {
		fields["priority"] = priority
	}
	if dueDate != "" {
		fields["dueDate"] = dueDate
	}

	task, err := a.api.CreateTask(fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created task %s\n", task.ID)
	return nil
}

// EditTask prompts for each field of the given task and sends only what
// changed. Blank input keeps a field; "-" on the due date clears it.
func (a *App) EditTask(args []string) error {
	if len(args) == 0 {
		return errMissingID
	}
	id := args[0]

	fields := map[string]interface{}{}
	for _, p := range []struct{ label, key string }{
		{"Title", "title"},
		{"Description", "description"},
		{"Status (todo/in-progress/done)", "status"},
		{"Priority (low/medium/high)", "priority"},
	} {
		value, err := getSimpleText(a.reader, p.label+" (blank=keep)", a.out)
		if err != nil {
			return err
		}
		if value != "" {
			fields[p.key] = value
		}
	}

	dueDate, err := getSimpleText(a.reader, "Due date (YYYY-MM-DD, blank=keep, -=clear)", a.out)
	if err != nil {
		return err
	}
	switch dueDate {
	case "":
		// keep
	case "-":
		fields["dueDate"] = nil
	default:
		fields["dueDate"] = dueDate
	}

	if len(fields) == 0 {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	task, err := a.api.UpdateTask(id, fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated task %s\n", task.ID)
	return nil
}

// DoneTask marks a task as done.
func (a *App) DoneTask(args []string) error {
	if len(args) == 0 {
		return errMissingID
	}
	task, err := a.api.UpdateTask(args[0], map[string]interface{}{"status": "done"})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Done: %s\n", task.Title)
	return nil
}

// RemoveTask deletes a task.
func (a *App) RemoveTask(args []string) error {
	if len(args) == 0 {
		return errMissingID
	}
	if err := a.api.DeleteTask(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}
