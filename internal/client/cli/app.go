package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/taskboard/taskboard-be/internal/client/api"
	"github.com/taskboard/taskboard-be/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// App is the interactive Taskboard client. It owns the API client and the
// session manager; command handlers read input, call the API and print the
// result.
type App struct {
	api     *api.Client
	session *session.Manager
	reader  *bufio.Reader
	out     io.Writer
}

// New creates the CLI app. A persisted token is primed onto the API client
// so every outgoing call carries it.
func New(client *api.Client, sessions *session.Manager) *App {
	a := &App{
		api:     client,
		session: sessions,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}

	sess := sessions.Current()
	if sess.Authenticated() {
		client.SetToken(sess.Token)
		// Token without a cached user: refresh once, best-effort. The
		// session stays usable either way; an expired token surfaces as a
		// 401 on the next call.
		if sess.User == nil {
			if user, err := client.GetProfile(); err == nil {
				_ = sessions.SetUser(user)
			}
		}
	}
	return a
}

func (a *App) status() string {
	sess := a.session.Current()
	if sess.Authenticated() && sess.User != nil {
		return sess.User.Email
	}
	if sess.Authenticated() {
		return "logged in"
	}
	return "anonymous"
}

func (a *App) isLoggedIn() bool {
	return a.session.Current().Authenticated()
}

// Run starts the read-eval-print loop. It exits on EOF or when the user
// types "exit" or "quit".
func (a *App) Run() {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprintf(a.out, "tb> %s > ", a.status())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			a.printHelp()
		case "register":
			a.report(a.Register())
		case "login":
			a.report(a.Login())
		case "logout":
			a.report(a.Logout())
		case "whoami":
			a.report(a.Whoami())
		case "profile":
			a.report(a.ShowProfile())
		case "editprofile":
			a.report(a.EditProfile())
		case "passwd":
			a.report(a.ChangePassword())
		case "tasks":
			a.report(a.ListTasks(args))
		case "addtask":
			a.report(a.AddTask())
		case "edittask":
			a.report(a.EditTask(args))
		case "donetask":
			a.report(a.DoneTask(args))
		case "rmtask":
			a.report(a.RemoveTask(args))
		case "notes":
			a.report(a.ListNotes())
		case "addnote":
			a.report(a.AddNote())
		case "editnote":
			a.report(a.EditNote(args))
		case "rmnote":
			a.report(a.RemoveNote(args))
		case "exit", "quit":
			return
		default:
			fmt.Fprintf(a.out, "Unknown command %q, try \"help\"\n", cmd)
		}
	}
}

// report prints command errors; the server's message field is surfaced
// verbatim.
func (a *App) report(err error) {
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
	}
}

func (a *App) printHelp() {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Available commands: whoami, profile, editprofile, passwd,")
		fmt.Fprintln(a.out, "  tasks [search] [status=..] [priority=..], addtask, edittask <id>, donetask <id>, rmtask <id>,")
		fmt.Fprintln(a.out, "  notes, addnote, editnote <id>, rmnote <id>, logout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: register, login, exit")
	}
}
