package cli

import (
	"errors"
	"fmt"
	"strings"
)

var errMissingNoteID = errors.New("note id required")

// ListNotes prints the caller's notes, most recently updated first.
func (a *App) ListNotes() error {
	notes, err := a.api.ListNotes()
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Fprintln(a.out, "No notes")
		return nil
	}

	for _, n := range notes {
		tags := ""
		if len(n.Tags) > 0 {
			tags = "  #" + strings.Join(n.Tags, " #")
		}
		fmt.Fprintf(a.out, "%s  %s%s\n", n.ID, n.Title, tags)
		if n.Content != "" {
			fmt.Fprintf(a.out, "    %s\n", n.Content)
		}
	}
	return nil
}

// AddNote prompts for the note fields and creates it. Tags are entered as a
// comma-separated list.
func (a *App) AddNote() error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := getSimpleText(a.reader, "Content (optional)", a.out)
	if err != nil {
		return err
	}
	tagsLine, err := getSimpleText(a.reader, "Tags (comma-separated, optional)", a.out)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{"title": title}
	if content != "" {
		fields["content"] = content
	}
	if tags := splitTags(tagsLine); len(tags) > 0 {
		fields["tags"] = tags
	}

	note, err := a.api.CreateNote(fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created note %s\n", note.ID)
	return nil
}

// EditNote prompts for each field of the given note and sends only what
// changed. A "-" on tags clears the whole list.
func (a *App) EditNote(args []string) error {
	if len(args) == 0 {
		return errMissingNoteID
	}
	id := args[0]

	fields := map[string]interface{}{}

	title, err := getSimpleText(a.reader, "Title (blank=keep)", a.out)
	if err != nil {
		return err
	}
	if title != "" {
		fields["title"] = title
	}

	content, err := getSimpleText(a.reader, "Content (blank=keep)", a.out)
	if err != nil {
		return err
	}
	if content != "" {
		fields["content"] = content
	}

	tagsLine, err := getSimpleText(a.reader, "Tags (comma-separated, blank=keep, -=clear)", a.out)
	if err != nil {
		return err
	}
	switch tagsLine {
	case "":
		// keep
	case "-":
		fields["tags"] = []string{}
	default:
		fields["tags"] = splitTags(tagsLine)
	}

	if len(fields) == 0 {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	note, err := a.api.UpdateNote(id, fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated note %s\n", note.ID)
	return nil
}

// RemoveNote deletes a note.
func (a *App) RemoveNote(args []string) error {
	if len(args) == 0 {
		return errMissingNoteID
	}
	if err := a.api.DeleteNote(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}

func splitTags(line string) []string {
	if line == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(line, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
